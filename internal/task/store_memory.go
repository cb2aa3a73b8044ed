package task

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/termini/internal/dateutil"
)

// MemoryStore is an in-memory Store. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]Task
	now   func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[string]Task),
		now:   time.Now,
	}
}

// Upsert implements Store.
func (s *MemoryStore) Upsert(ctx context.Context, t *Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if t.DueDate.IsZero() {
		return dateutil.ErrInvalidDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if existing, ok := s.tasks[t.ID]; ok {
		t.CreatedAt = existing.CreatedAt
	} else if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.Status == "" {
		t.Status = StatusTodo
	}
	t.UpdatedAt = now

	s.tasks[t.ID] = *t
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	t, ok := s.tasks[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrTaskNotFound
	}
	return &t, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// Query implements Store.
func (s *MemoryStore) Query(ctx context.Context, r dateutil.Range) ([]*Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]*Task, 0)
	for _, t := range s.tasks {
		if r.Contains(t.DueDate) {
			out = append(out, &t)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, compareTasks)
	return out, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}

// compareTasks orders tasks by due date, creation time and ID.
func compareTasks(a, b *Task) int {
	if c := a.DueDate.Compare(b.DueDate); c != 0 {
		return c
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
