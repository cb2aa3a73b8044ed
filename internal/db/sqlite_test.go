package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/termini/internal/dateutil"
	"github.com/javiermolinar/termini/internal/deadline"
	"github.com/javiermolinar/termini/internal/task"
)

func TestUpsert_Create(t *testing.T) {
	repo := newTestRepo(t)

	tsk := &task.Task{
		Title:        "File appeal",
		DueDate:      dateutil.MustParse("2025-11-13"),
		Practice:     "RG 1234/2025",
		Client:       "Rossi",
		Counterparty: "Bianchi",
		Category:     "Impugnazione",
		Priority:     task.PriorityHigh,
		Notes:        "check service date",
	}

	if err := repo.Upsert(context.Background(), tsk); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if tsk.ID == "" {
		t.Fatal("expected ID to be set after insert")
	}
	if tsk.Status != task.StatusTodo {
		t.Errorf("expected default status todo, got %q", tsk.Status)
	}

	got, err := repo.Get(context.Background(), tsk.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != tsk.Title || got.DueDate != tsk.DueDate {
		t.Errorf("got %+v", got)
	}
	if got.Practice != "RG 1234/2025" || got.Client != "Rossi" || got.Counterparty != "Bianchi" {
		t.Errorf("pass-through fields not stored: %+v", got)
	}
	if got.Category != "Impugnazione" || got.Priority != task.PriorityHigh || got.Notes != "check service date" {
		t.Errorf("pass-through fields not stored: %+v", got)
	}
	if !got.CreatedAt.Equal(tsk.CreatedAt) {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, tsk.CreatedAt)
	}
}

func TestUpsert_Update(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tsk := mustCreate(t, repo, "Memorial", "2025-10-10")
	created := tsk.CreatedAt

	tsk.Title = "Memorial filed"
	tsk.Status = task.StatusDone
	tsk.DueDate = dateutil.MustParse("2025-10-12")
	tsk.CreatedAt = time.Time{}
	if err := repo.Upsert(ctx, tsk); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := repo.Get(ctx, tsk.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Memorial filed" || got.Status != task.StatusDone {
		t.Errorf("update not stored: %+v", got)
	}
	if got.DueDate != dateutil.MustParse("2025-10-12") {
		t.Errorf("due date: got %v", got.DueDate)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed from %v to %v", created, got.CreatedAt)
	}
	if !tsk.CreatedAt.Equal(created) {
		t.Errorf("caller's CreatedAt not refreshed: %v", tsk.CreatedAt)
	}
	if !got.UpdatedAt.After(created) {
		t.Errorf("UpdatedAt %v not after %v", got.UpdatedAt, created)
	}
}

func TestUpsert_Validation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Upsert(ctx, &task.Task{DueDate: dateutil.MustParse("2025-10-10")}); !errors.Is(err, task.ErrEmptyTitle) {
		t.Errorf("got %v, want %v", err, task.ErrEmptyTitle)
	}
	if err := repo.Upsert(ctx, &task.Task{Title: "x"}); !errors.Is(err, dateutil.ErrInvalidDate) {
		t.Errorf("got %v, want %v", err, dateutil.ErrInvalidDate)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("got %v, want %v", err, task.ErrTaskNotFound)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	tsk := mustCreate(t, repo, "Hearing", "2025-10-10")

	if err := repo.Delete(ctx, tsk.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.Get(ctx, tsk.ID); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("got %v, want %v", err, task.ErrTaskNotFound)
	}
	if err := repo.Delete(ctx, tsk.ID); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("got %v, want %v", err, task.ErrTaskNotFound)
	}
}

func TestQuery(t *testing.T) {
	repo := newTestRepo(t)

	mustCreate(t, repo, "late", "2025-10-31")
	mustCreate(t, repo, "first", "2025-10-01")
	mustCreate(t, repo, "before", "2025-09-30")
	mustCreate(t, repo, "second", "2025-10-01")
	mustCreate(t, repo, "after", "2025-11-01")

	r, err := dateutil.NewRange(dateutil.MustParse("2025-10-01"), dateutil.MustParse("2025-10-31"))
	if err != nil {
		t.Fatalf("NewRange failed: %v", err)
	}
	tasks, err := repo.Query(context.Background(), r)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	want := []string{"first", "second", "late"}
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
	}
	for i, title := range want {
		if tasks[i].Title != title {
			t.Errorf("position %d: got %s, want %s", i, tasks[i].Title, title)
		}
	}
}

func TestQuery_Empty(t *testing.T) {
	repo := newTestRepo(t)

	tasks, err := repo.Query(context.Background(), dateutil.Range{
		Start: dateutil.MustParse("2025-01-01"),
		End:   dateutil.MustParse("2025-12-31"),
	})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", tasks)
	}
}

func TestRelocateThroughStore(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	tsk := mustCreate(t, repo, "Memorial", "2025-10-10")

	res, err := task.NewRelocator(repo).Relocate(ctx, tsk.ID, dateutil.MustParse("2025-10-20"))
	if err != nil {
		t.Fatalf("Relocate failed: %v", err)
	}
	if !res.RebuildNeeded {
		t.Error("expected rebuild signal")
	}

	today := dateutil.MustParse("2025-10-01")
	span := task.BuildMonthGrid(today, nil, today).Span()
	tasks, err := repo.Query(ctx, span)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	grid := task.BuildMonthGrid(today, tasks, today)
	if grid.DayByDate(dateutil.MustParse("2025-10-10")).HasTasks() {
		t.Error("task still on the old date")
	}
	if !grid.DayByDate(dateutil.MustParse("2025-10-20")).HasTasks() {
		t.Error("task missing from the new date")
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termini.db")

	repo, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tsk := mustCreate(t, repo, "Hearing", "2025-10-10")
	if err := repo.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Migrations run again without error and data survives.
	repo, err = New(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = repo.Close() }()

	if _, err := repo.Get(context.Background(), tsk.ID); err != nil {
		t.Errorf("Get after reopen failed: %v", err)
	}
}

func TestArchiveComputation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	calc := deadline.NewCalculator(nil, nil)
	c, err := calc.Compute(deadline.Request{
		Start:      dateutil.MustParse("2025-07-15"),
		TermTypeID: "termini_processuali_civili",
		Today:      dateutil.MustParse("2025-11-06"),
	})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	tsk := mustCreate(t, repo, "Civil term", c.ComputedDate.Format())

	firstID, err := repo.ArchiveComputation(ctx, c, "")
	if err != nil {
		t.Fatalf("ArchiveComputation failed: %v", err)
	}
	secondID, err := repo.ArchiveComputation(ctx, c, tsk.ID)
	if err != nil {
		t.Fatalf("ArchiveComputation failed: %v", err)
	}
	if secondID <= firstID {
		t.Errorf("expected increasing ids, got %d then %d", firstID, secondID)
	}

	list, err := repo.ListComputations(ctx, 0)
	if err != nil {
		t.Fatalf("ListComputations failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d computations, want 2", len(list))
	}

	newest := list[0]
	if newest.ID != secondID || newest.TaskID != tsk.ID {
		t.Errorf("expected newest first linked to %s, got id %d task %q", tsk.ID, newest.ID, newest.TaskID)
	}
	if newest.ComputedDate != dateutil.MustParse("2025-11-13") || newest.SuspensionDaysApplied != 31 {
		t.Errorf("computation not round-tripped: %+v", newest.Computation)
	}
	if newest.StartDate != c.StartDate || newest.Today != c.Today || newest.RawEndDate != c.RawEndDate {
		t.Errorf("dates not round-tripped: %+v", newest.Computation)
	}
	if !newest.Urgent || newest.DaysRemaining != 7 || newest.Category != c.Category {
		t.Errorf("derived fields not round-tripped: %+v", newest.Computation)
	}
	if len(newest.Notes) != len(c.Notes) || newest.Notes[0] != c.Notes[0] {
		t.Errorf("notes: got %v, want %v", newest.Notes, c.Notes)
	}
	if list[1].TaskID != "" {
		t.Errorf("expected unlinked computation, got %q", list[1].TaskID)
	}

	limited, err := repo.ListComputations(ctx, 1)
	if err != nil {
		t.Fatalf("ListComputations failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != secondID {
		t.Errorf("limit not applied: %+v", limited)
	}

	// Deleting the task keeps the archive entry but unlinks it.
	if err := repo.Delete(ctx, tsk.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	list, err = repo.ListComputations(ctx, 0)
	if err != nil {
		t.Fatalf("ListComputations failed: %v", err)
	}
	if len(list) != 2 || list[0].TaskID != "" {
		t.Errorf("expected unlinked archive entries, got %+v", list)
	}
}

func mustCreate(t *testing.T, repo *SQLite, title, due string) *task.Task {
	t.Helper()
	tsk := &task.Task{Title: title, DueDate: dateutil.MustParse(due)}
	if err := repo.Upsert(context.Background(), tsk); err != nil {
		t.Fatalf("Upsert %s failed: %v", title, err)
	}
	return tsk
}

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	clock := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}
