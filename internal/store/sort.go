package store

import (
	"cmp"
	"slices"

	"github.com/nissyi-gh/highstill/internal/model"
	"golang.org/x/text/collate"
)

// SortedView returns a copy of the collection in the requested order.
// Sorting is stable, so ties keep insertion order.
func (s *TaskStore) SortedView(order model.SortOrder) []model.Task {
	s.mustBeReady()
	return sortTasks(s.tasks, order, s.collator)
}

func sortTasks(tasks []model.Task, order model.SortOrder, coll *collate.Collator) []model.Task {
	out := slices.Clone(tasks)
	switch order {
	case model.SortDateAsc:
		slices.SortStableFunc(out, func(a, b model.Task) int { return compareDue(a, b, false) })
	case model.SortDateDesc:
		slices.SortStableFunc(out, func(a, b model.Task) int { return compareDue(a, b, true) })
	case model.SortTitleAsc:
		slices.SortStableFunc(out, func(a, b model.Task) int { return coll.CompareString(a.Title, b.Title) })
	case model.SortTitleDesc:
		slices.SortStableFunc(out, func(a, b model.Task) int { return coll.CompareString(b.Title, a.Title) })
	case model.SortPriority:
		slices.SortStableFunc(out, func(a, b model.Task) int { return cmp.Compare(b.Priority.Rank(), a.Priority.Rank()) })
	default:
		slices.SortStableFunc(out, func(a, b model.Task) int { return cmp.Compare(b.ID, a.ID) })
	}
	return out
}

// compareDue orders by parsed due date. Malformed dates go last in either direction.
func compareDue(a, b model.Task, desc bool) int {
	da, okA := a.Due()
	db, okB := b.Due()
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	if desc {
		return db.Compare(da)
	}
	return da.Compare(db)
}
