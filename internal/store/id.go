package store

import "time"

// IDAllocator hands out task ids. Observe tells it about ids already in use
// so that Next never returns one of them.
type IDAllocator interface {
	Next() int64
	Observe(id int64)
}

// ClockAllocator issues millisecond timestamps, bumped past the last issued
// or observed id so two tasks created in the same millisecond stay distinct.
type ClockAllocator struct {
	Now  func() time.Time
	last int64
}

func (a *ClockAllocator) Next() int64 {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	id := now().UnixMilli()
	if id <= a.last {
		id = a.last + 1
	}
	a.last = id
	return id
}

func (a *ClockAllocator) Observe(id int64) {
	if id > a.last {
		a.last = id
	}
}

// SequenceAllocator issues 1, 2, 3, ...
type SequenceAllocator struct {
	last int64
}

func (a *SequenceAllocator) Next() int64 {
	a.last++
	return a.last
}

func (a *SequenceAllocator) Observe(id int64) {
	if id > a.last {
		a.last = id
	}
}
