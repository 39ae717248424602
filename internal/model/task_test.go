package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_JSONFieldNames(t *testing.T) {
	task := Task{ID: 42, Title: "Gig", Description: "desc", DueDate: "2025-01-01", Priority: PriorityHigh, Location: "Venue A"}

	data, err := json.Marshal(task)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":42,"title":"Gig","description":"desc","dueDate":"2025-01-01","priority":"High","location":"Venue A","completed":false}`, string(data))
}

func TestTask_DueHelpers(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	today := Task{DueDate: "2025-03-10"}
	assert.True(t, today.IsDueToday(now))
	assert.False(t, today.IsOverdue(now))

	past := Task{DueDate: "2025-03-09"}
	assert.True(t, past.IsOverdue(now))
	past.Completed = true
	assert.False(t, past.IsOverdue(now))

	bad := Task{DueDate: "soon"}
	_, ok := bad.Due()
	assert.False(t, ok)
	assert.False(t, bad.IsOverdue(now))
}

func TestPriority_RankAndNext(t *testing.T) {
	assert.Greater(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Equal(t, 0, Priority("Urgent").Rank())

	assert.Equal(t, PriorityMedium, PriorityLow.Next())
	assert.Equal(t, PriorityLow, PriorityHigh.Next())
	assert.Equal(t, PriorityLow, Priority("").Next())
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortTitleDesc, ParseSortOrder("title-desc"))
	assert.Equal(t, SortDefault, ParseSortOrder("nonsense"))
	assert.Equal(t, SortDateDesc, SortDefault.Next())
}
