package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/nissyi-gh/highstill/internal/model"
)

// TaskItem wraps model.Task to satisfy the list.DefaultItem interface.
type TaskItem struct {
	Task model.Task
	// Now is the reference time for the due-date marks.
	Now time.Time
}

func (i TaskItem) Title() string {
	check := "[ ]"
	if i.Task.Completed {
		check = "[x]"
	}
	dueMark := ""
	if i.Task.IsOverdue(i.Now) {
		dueMark = "⚠️ "
	} else if i.Task.IsDueToday(i.Now) {
		dueMark = "📅 "
	}
	return fmt.Sprintf("%s %s%s %s", check, dueMark, i.Task.Title, priorityStyle(i.Task.Priority).Render(string(i.Task.Priority)))
}

func (i TaskItem) Description() string {
	return fmt.Sprintf("    %s @ %s", i.Task.DueDate, i.Task.Location)
}

func (i TaskItem) FilterValue() string {
	return i.Task.Title + " " + i.Task.Location
}

// buildItems wraps tasks in display order.
func buildItems(tasks []model.Task, now time.Time) []list.Item {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = TaskItem{Task: t, Now: now}
	}
	return items
}
