package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/nissyi-gh/highstill/internal/announce"
	"github.com/nissyi-gh/highstill/internal/importer"
	"github.com/nissyi-gh/highstill/internal/model"
	"github.com/nissyi-gh/highstill/internal/store"
	"github.com/spf13/cobra"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

// fieldFlags registers the five task fields on cmd.
func fieldFlags(cmd *cobra.Command, f *store.Fields) {
	cmd.Flags().StringVarP(&f.Title, "title", "t", "", "event title")
	cmd.Flags().StringVarP(&f.Description, "description", "d", "", "what is happening")
	cmd.Flags().StringVar(&f.DueDate, "date", "", "date as YYYY-MM-DD")
	cmd.Flags().StringVarP((*string)(&f.Priority), "priority", "p", "", "Low, Medium or High")
	cmd.Flags().StringVarP(&f.Location, "location", "l", "", "where it takes place")
}

func newAddCmd(a *app) *cobra.Command {
	var f store.Fields
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a new event",
		Example: `  highstill add -t "Friday folk night" -d "Three acts" --date 2025-05-02 -p High -l "Main hall"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.store.Add(f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "id: %d\n", t.ID)
			return nil
		},
	}
	fieldFlags(cmd, &f)
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var f store.Fields
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an event; fields not given keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := a.store.Get(id)
			if err != nil {
				return err
			}

			merged := store.FieldsOf(current)
			flags := cmd.Flags()
			if flags.Changed("title") {
				merged.Title = f.Title
			}
			if flags.Changed("description") {
				merged.Description = f.Description
			}
			if flags.Changed("date") {
				merged.DueDate = f.DueDate
			}
			if flags.Changed("priority") {
				merged.Priority = f.Priority
			}
			if flags.Changed("location") {
				merged.Location = f.Location
			}

			_, err = a.store.Update(id, merged)
			return err
		},
	}
	fieldFlags(cmd, &f)
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var order string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in the chosen order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if order == "" {
				order = a.cfg.UI.Sort
			}
			sorted := a.store.SortedView(model.ParseSortOrder(order))
			fmt.Fprint(cmd.OutOrStdout(), announce.Digest(sorted, a.store.Summary()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&order, "sort", "s", "", "date-asc, date-desc, title-asc, title-desc, priority or default")
	return cmd
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Mark an event completed, or pending again",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = a.store.ToggleComplete(id)
			return err
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an event after confirmation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := a.store.Get(id)
			if err != nil {
				return err
			}

			confirmed := yes
			if !confirmed {
				fmt.Fprintf(cmd.OutOrStdout(), "Are you sure you want to delete %q? [y/N] ", t.Title)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				confirmed = answer == "y" || answer == "yes"
			}

			_, err = a.store.Delete(id, confirmed)
			if errors.Is(err, store.ErrCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show total, completed and pending counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sum := a.store.Summary()
			fmt.Fprintf(cmd.OutOrStdout(), "Total:     %d\nCompleted: %d\nPending:   %d\n", sum.Total, sum.Completed, sum.Pending)
			return nil
		},
	}
}

func newAnnounceCmd(a *app) *cobra.Command {
	var copyOut bool
	cmd := &cobra.Command{
		Use:   "announce <id>",
		Short: "Print a ready-to-post announcement for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := a.store.Get(id)
			if err != nil {
				return err
			}
			text := announce.Event(t)
			if copyOut {
				if err := clipboard.WriteAll(text); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Announcement copied to clipboard.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyOut, "copy", false, "copy to the clipboard instead of printing")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Add events from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			n, err := importer.Import(a.store, string(data))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d task(s).\n", n)
			return err
		},
	}
}
