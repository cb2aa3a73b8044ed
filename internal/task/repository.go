package task

import (
	"context"

	"github.com/javiermolinar/termini/internal/dateutil"
)

// Store defines the storage interface for tasks.
type Store interface {
	// Upsert creates the task when its ID is empty (assigning one) and
	// replaces the stored task otherwise. It stamps CreatedAt and UpdatedAt.
	Upsert(ctx context.Context, t *Task) error

	// Get retrieves a task by ID. Returns ErrTaskNotFound if it does not exist.
	Get(ctx context.Context, id string) (*Task, error)

	// Delete removes a task by ID. Returns ErrTaskNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// Query returns the tasks due within r (inclusive), ordered by due date
	// and then by creation time.
	Query(ctx context.Context, r dateutil.Range) ([]*Task, error)

	// Close releases any resources held by the store.
	Close() error
}
