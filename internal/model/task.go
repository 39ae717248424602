package model

import "time"

// DateLayout is the format of Task.DueDate.
const DateLayout = "2006-01-02"

// StorageKey is the backend key holding the serialized task list.
const StorageKey = "highStillTasks"

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists the priority levels from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Rank orders priorities so that High > Medium > Low. Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Next returns the priority that follows p, wrapping from High back to Low.
func (p Priority) Next() Priority {
	for i, q := range Priorities {
		if q == p {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return PriorityLow
}

// Task represents a single event or reminder on the venue board.
type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate"`
	Priority    Priority `json:"priority"`
	Location    string   `json:"location"`
	Completed   bool     `json:"completed"`
}

// Due parses DueDate. ok is false when the date is malformed.
func (t Task) Due() (time.Time, bool) {
	d, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// IsDueToday returns true if the task's due date is the same day as now.
func (t Task) IsDueToday(now time.Time) bool {
	return t.DueDate == now.Format(DateLayout)
}

// IsOverdue returns true if the task is past its due date and not completed.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed {
		return false
	}
	if _, ok := t.Due(); !ok {
		return false
	}
	return t.DueDate < now.Format(DateLayout)
}

// Summary holds the derived counts shown above the task listing.
type Summary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}
