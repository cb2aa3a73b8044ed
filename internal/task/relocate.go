package task

import (
	"context"
	"fmt"

	"github.com/javiermolinar/termini/internal/dateutil"
)

// Relocation describes the outcome of moving a task to another date.
type Relocation struct {
	Task *Task
	From dateutil.Date
	To   dateutil.Date

	// RebuildNeeded is set when the store was written and any grid built
	// from the previous state is stale.
	RebuildNeeded bool
}

// Moved returns true if the task changed date.
func (r Relocation) Moved() bool {
	return r.From != r.To
}

// Relocator changes task due dates through a Store. It never rebuilds
// grids; callers reload when RebuildNeeded is set.
type Relocator struct {
	store Store
}

// NewRelocator creates a Relocator writing to store.
func NewRelocator(store Store) *Relocator {
	return &Relocator{store: store}
}

// Relocate moves the task with the given id to newDate. Moving a task to
// the date it already has does not write to the store. Past dates are
// accepted. Concurrent relocations of the same task are last-writer-wins.
func (r *Relocator) Relocate(ctx context.Context, id string, newDate dateutil.Date) (Relocation, error) {
	if newDate.IsZero() {
		return Relocation{}, dateutil.ErrInvalidDate
	}

	t, err := r.store.Get(ctx, id)
	if err != nil {
		return Relocation{}, fmt.Errorf("loading task %s: %w", id, err)
	}

	res := Relocation{Task: t, From: t.DueDate, To: newDate}
	if !res.Moved() {
		return res, nil
	}

	t.DueDate = newDate
	if err := r.store.Upsert(ctx, t); err != nil {
		return Relocation{}, fmt.Errorf("relocating task %s: %w", id, err)
	}

	res.RebuildNeeded = true
	return res, nil
}
