package announce

import (
	"testing"

	"github.com/nissyi-gh/highstill/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestEvent(t *testing.T) {
	task := model.Task{
		ID:          1,
		Title:       "Friday folk night",
		Description: "Three acts, doors at 7",
		DueDate:     "2025-05-02",
		Priority:    model.PriorityHigh,
		Location:    "Main hall",
	}

	out := Event(task)
	assert.Contains(t, out, "Friday folk night at High Still")
	assert.Contains(t, out, "When:  Friday, 2 May 2025")
	assert.Contains(t, out, "Where: Main hall")
	assert.Contains(t, out, "Three acts, doors at 7")
	assert.Contains(t, out, "Don't miss it!")

	task.Completed = true
	assert.Contains(t, Event(task), "already taken place")
}

func TestEvent_KeepsUnparsedDate(t *testing.T) {
	out := Event(model.Task{Title: "x", DueDate: "someday", Location: "y"})
	assert.Contains(t, out, "When:  someday")
}

func TestDigest(t *testing.T) {
	empty := Digest(nil, model.Summary{})
	assert.Contains(t, empty, "0 total, 0 completed, 0 pending")
	assert.Contains(t, empty, "No tasks found")

	out := Digest([]model.Task{
		{ID: 2, Title: "b", DueDate: "2025-01-02", Priority: model.PriorityLow, Location: "x", Completed: true},
		{ID: 1, Title: "a", DueDate: "2025-01-01", Priority: model.PriorityHigh, Location: "y"},
	}, model.Summary{Total: 2, Completed: 1, Pending: 1})

	assert.Contains(t, out, "2 total, 1 completed, 1 pending")
	assert.Contains(t, out, "[x] 2")
	assert.Contains(t, out, "[ ] 1")
	assert.Contains(t, out, "a @ y")
}
