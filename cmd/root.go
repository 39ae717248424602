package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nissyi-gh/highstill/internal/config"
	"github.com/nissyi-gh/highstill/internal/kv"
	"github.com/nissyi-gh/highstill/internal/model"
	"github.com/nissyi-gh/highstill/internal/notify"
	"github.com/nissyi-gh/highstill/internal/store"
	"github.com/nissyi-gh/highstill/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// app holds everything a command needs once configuration is loaded.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	backend kv.Backend
	store   *store.TaskStore
	toasts  *notify.Recorder
	logFile io.Closer
	closed  bool
}

// close releases the backend and log file. It is safe to call more than once.
func (a *app) close() {
	if a.closed {
		return
	}
	a.closed = true
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Warn("close backend", "error", err)
		}
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	a := &app{}
	if err := run(a, newRootCmd(a)); err != nil {
		os.Exit(1)
	}
}

// run executes root and then closes whatever a opened, including when the
// command failed and cobra skipped its post-run hooks.
func run(a *app, root *cobra.Command) error {
	defer a.close()
	return root.Execute()
}

// newRootCmd builds the command tree around a. Without a subcommand it starts
// the TUI.
func newRootCmd(a *app) *cobra.Command {
	v := viper.New()
	var (
		cfgFile string
		verbose bool
	)

	root := &cobra.Command{
		Use:   "highstill",
		Short: "Manage the High Still event board.",
		Long: `highstill keeps the venue's events and tasks in a local store.
Run it without arguments for the interactive board, or use a subcommand.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			if verbose {
				cfg.Log.Level = "debug"
			}
			a.cfg = cfg
			return a.open(cmd, cmd.Parent() == nil)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(ui.NewModel(a.store, a.toasts, model.ParseSortOrder(a.cfg.UI.Sort)), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run board: %w", err)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.highstill.yaml or $XDG_CONFIG_HOME/highstill/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.String("backend", "", "storage backend: sqlite, file or memory")
	flags.String("data", "", "database file (sqlite) or directory (file)")
	_ = v.BindPFlag("storage.backend", flags.Lookup("backend"))
	_ = v.BindPFlag("storage.path", flags.Lookup("data"))

	root.AddCommand(
		newAddCmd(a),
		newEditCmd(a),
		newListCmd(a),
		newToggleCmd(a),
		newDeleteCmd(a),
		newSummaryCmd(a),
		newAnnounceCmd(a),
		newImportCmd(a),
	)
	return root
}

// open sets up logging, the backend and the loaded store. When tui is true
// logs go to a file and notifications are collected for the board; otherwise
// logs go to stderr and notifications are printed.
func (a *app) open(cmd *cobra.Command, tui bool) error {
	level := new(slog.LevelVar)
	if err := level.UnmarshalText([]byte(a.cfg.Log.Level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	var logOut io.Writer = cmd.ErrOrStderr()
	if tui {
		f, err := openLogFile(a.cfg.Log.File)
		if err != nil {
			return err
		}
		a.logFile = f
		logOut = f
	}
	a.logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	backend, err := kv.Open(a.cfg.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	a.backend = backend

	tag, err := language.Parse(a.cfg.UI.Locale)
	if err != nil {
		return fmt.Errorf("ui locale: %w", err)
	}

	var sink notify.Notifier
	if tui {
		a.toasts = &notify.Recorder{}
		sink = notify.Multi{notify.Log{Logger: a.logger}, a.toasts}
	} else {
		sink = printer(cmd.OutOrStdout())
	}

	var st *store.TaskStore
	st = store.New(backend,
		store.WithKey(a.cfg.Storage.Key),
		store.WithLocale(tag),
		store.WithLogger(a.logger),
		store.WithNotifier(sink),
		store.WithSaveHook(func() {
			if latest, ok := st.Latest(); ok {
				a.logger.Debug("latest activity", "id", latest.ID, "title", latest.Title, "due", latest.DueDate)
			}
		}),
	)
	st.Load()
	a.store = st

	a.logger.Debug("store ready", "backend", a.cfg.Storage.Backend, "key", a.cfg.Storage.Key, "tasks", len(st.Tasks()))
	return nil
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		dir, err := config.StateDir()
		if err != nil {
			return nil, fmt.Errorf("determine log dir: %w", err)
		}
		path = filepath.Join(dir, "highstill.log")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

var severityMarks = map[model.Severity]string{
	model.SeveritySuccess: "✔",
	model.SeverityWarning: "!",
	model.SeverityDanger:  "✘",
	model.SeverityInfo:    "i",
}

// printer writes notifications as single lines for the CLI.
func printer(w io.Writer) notify.Notifier {
	return notify.Func(func(message string, severity model.Severity) {
		fmt.Fprintf(w, "%s %s\n", severityMarks[severity], message)
	})
}
