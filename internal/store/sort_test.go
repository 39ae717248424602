package store

import (
	"testing"

	"github.com/nissyi-gh/highstill/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func ids(tasks []model.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestSortTasks_PriorityIsStable(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Priority: model.PriorityHigh},
		{ID: 2, Priority: model.PriorityHigh},
		{ID: 3, Priority: model.PriorityLow},
	}
	got := sortTasks(tasks, model.SortPriority, collate.New(language.English))
	assert.Equal(t, []int64{1, 2, 3}, ids(got))

	mixed := []model.Task{
		{ID: 1, Priority: model.PriorityLow},
		{ID: 2, Priority: model.PriorityMedium},
		{ID: 3, Priority: model.PriorityHigh},
		{ID: 4, Priority: model.PriorityMedium},
	}
	got = sortTasks(mixed, model.SortPriority, collate.New(language.English))
	assert.Equal(t, []int64{3, 2, 4, 1}, ids(got))
}

func TestSortTasks_ByDate(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, DueDate: "2025-03-01"},
		{ID: 2, DueDate: "2024-12-31"},
		{ID: 3, DueDate: "not a date"},
		{ID: 4, DueDate: "2025-03-01"},
	}
	coll := collate.New(language.English)

	assert.Equal(t, []int64{2, 1, 4, 3}, ids(sortTasks(tasks, model.SortDateAsc, coll)))
	assert.Equal(t, []int64{1, 4, 2, 3}, ids(sortTasks(tasks, model.SortDateDesc, coll)))
}

func TestSortTasks_ByTitleUsesCollation(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "zydeco night"},
		{ID: 2, Title: "Élan quartet"},
		{ID: 3, Title: "bluegrass"},
		{ID: 4, Title: "Encore"},
	}
	coll := collate.New(language.English)

	assert.Equal(t, []int64{3, 2, 4, 1}, ids(sortTasks(tasks, model.SortTitleAsc, coll)))
	assert.Equal(t, []int64{1, 4, 2, 3}, ids(sortTasks(tasks, model.SortTitleDesc, coll)))
}

func TestSortTasks_DefaultIsNewestFirst(t *testing.T) {
	tasks := []model.Task{{ID: 10}, {ID: 30}, {ID: 20}}
	coll := collate.New(language.English)

	assert.Equal(t, []int64{30, 20, 10}, ids(sortTasks(tasks, model.SortDefault, coll)))
	assert.Equal(t, []int64{30, 20, 10}, ids(sortTasks(tasks, model.ParseSortOrder("bogus"), coll)))
}

func TestTaskStore_SortedViewDoesNotMutate(t *testing.T) {
	s, _, _ := setupTestStore(t)
	for _, f := range []Fields{
		{Title: "b", Description: "d", DueDate: "2025-01-02", Priority: model.PriorityLow, Location: "x"},
		{Title: "a", Description: "d", DueDate: "2025-01-01", Priority: model.PriorityHigh, Location: "x"},
	} {
		_, err := s.Add(f)
		require.NoError(t, err)
	}

	sorted := s.SortedView(model.SortTitleAsc)
	assert.Equal(t, "a", sorted[0].Title)
	assert.Equal(t, "b", s.Tasks()[0].Title)
}
