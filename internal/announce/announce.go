package announce

import (
	"fmt"
	"strings"

	"github.com/nissyi-gh/highstill/internal/model"
)

const venue = "High Still"

// Event returns a plain-text announcement for a single event, suitable for
// pasting into a post or newsletter.
func Event(t model.Task) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s at %s\n", t.Title, venue))

	when := t.DueDate
	if d, ok := t.Due(); ok {
		when = d.Format("Monday, 2 January 2006")
	}
	sb.WriteString(fmt.Sprintf("When:  %s\n", when))
	sb.WriteString(fmt.Sprintf("Where: %s\n", t.Location))

	if t.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(t.Description)
		sb.WriteString("\n")
	}

	if t.Completed {
		sb.WriteString("\n(This event has already taken place.)\n")
	} else if t.Priority == model.PriorityHigh {
		sb.WriteString("\nDon't miss it!\n")
	}

	return sb.String()
}

// Digest returns a short listing of tasks preceded by the summary counts.
func Digest(tasks []model.Task, sum model.Summary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%d total, %d completed, %d pending\n", sum.Total, sum.Completed, sum.Pending))
	if len(tasks) == 0 {
		sb.WriteString("\nNo tasks found. Add your first task with `highstill add`.\n")
		return sb.String()
	}

	sb.WriteString("\n")
	for _, t := range tasks {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		sb.WriteString(fmt.Sprintf("%s %-13d %s  %-6s  %s @ %s\n", check, t.ID, t.DueDate, t.Priority, t.Title, t.Location))
	}
	return sb.String()
}
