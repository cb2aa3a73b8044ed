package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/javiermolinar/termini/internal/dateutil"
	"github.com/javiermolinar/termini/internal/deadline"
	"github.com/javiermolinar/termini/internal/task"
)

type failingStore struct {
	task.Store
	err error
}

func (f failingStore) Query(context.Context, dateutil.Range) ([]*task.Task, error) {
	return nil, f.err
}

type archivingStore struct {
	*task.MemoryStore
	archived []string
}

func (a *archivingStore) ArchiveComputation(_ context.Context, _ *deadline.Computation, taskID string) (int64, error) {
	a.archived = append(a.archived, taskID)
	return int64(len(a.archived)), nil
}

func seed(t *testing.T, store task.Store, title string, due dateutil.Date) *task.Task {
	t.Helper()
	tk, err := task.New(title, due, "")
	if err != nil {
		t.Fatalf("task.New: %v", err)
	}
	if err := store.Upsert(context.Background(), tk); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	return tk
}

func TestLoadMonthReturnsMonthLoadedMsg(t *testing.T) {
	store := task.NewMemoryStore()
	today := dateutil.New(2025, 11, 6)
	seed(t, store, "Memoria", dateutil.New(2025, 11, 13))
	seed(t, store, "Old", dateutil.New(2024, 1, 10))
	seed(t, store, "Leading day", dateutil.New(2025, 10, 27))

	msg := LoadMonth(store, dateutil.New(2025, 11, 20), today)()

	loaded, ok := msg.(MonthLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want MonthLoadedMsg", msg)
	}
	if loaded.Anchor != dateutil.New(2025, 11, 1) {
		t.Errorf("Anchor = %s, want 2025-11-01", loaded.Anchor)
	}
	if got := len(loaded.Grid.AllTasks()); got != 2 {
		t.Errorf("grid tasks = %d, want 2", got)
	}
	day := loaded.Grid.DayByDate(dateutil.New(2025, 11, 13))
	if day == nil || len(day.Tasks) != 1 || day.Tasks[0].Title != "Memoria" {
		t.Fatalf("day 13 = %+v", day)
	}
	if loaded.Counters.Overdue != 2 || loaded.Counters.ThisWeek != 1 {
		t.Errorf("Counters = %+v, want 2 overdue and 1 this week", loaded.Counters)
	}
}

func TestLoadMonthReportsStoreErrors(t *testing.T) {
	boom := errors.New("boom")
	msg := LoadMonth(failingStore{err: boom}, dateutil.New(2025, 11, 1), dateutil.New(2025, 11, 6))()

	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("msg type = %T, want ErrMsg", msg)
	}
	if !errors.Is(errMsg.Err, boom) {
		t.Fatalf("err = %v, want wrapped boom", errMsg.Err)
	}
}

func TestRelocate(t *testing.T) {
	store := task.NewMemoryStore()
	tk := seed(t, store, "Udienza", dateutil.New(2025, 11, 13))

	msg := Relocate(task.NewRelocator(store), tk.ID, dateutil.New(2025, 11, 20))()
	moved, ok := msg.(RelocatedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want RelocatedMsg", msg)
	}
	if !moved.Relocation.RebuildNeeded {
		t.Error("RebuildNeeded = false, want true")
	}

	msg = Relocate(task.NewRelocator(store), "missing", dateutil.New(2025, 11, 20))()
	errMsg, ok := msg.(ErrMsg)
	if !ok || !errors.Is(errMsg.Err, task.ErrTaskNotFound) {
		t.Fatalf("msg = %#v, want ErrMsg wrapping ErrTaskNotFound", msg)
	}
}

func TestSaveTaskArchivesComputation(t *testing.T) {
	store := &archivingStore{MemoryStore: task.NewMemoryStore()}
	tk, _ := task.New("Appello", dateutil.New(2025, 12, 1), "")
	c := &deadline.Computation{TermTypeID: "appello_sentenza"}

	msg := SaveTask(store, tk, c)()
	saved, ok := msg.(TaskSavedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want TaskSavedMsg", msg)
	}
	if saved.ArchiveID != 1 {
		t.Errorf("ArchiveID = %d, want 1", saved.ArchiveID)
	}
	if len(store.archived) != 1 || store.archived[0] != tk.ID {
		t.Errorf("archived = %v, want [%s]", store.archived, tk.ID)
	}
}

func TestSaveTaskWithoutArchive(t *testing.T) {
	store := task.NewMemoryStore()
	tk, _ := task.New("Appello", dateutil.New(2025, 12, 1), "")

	msg := SaveTask(store, tk, &deadline.Computation{})()
	saved, ok := msg.(TaskSavedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want TaskSavedMsg", msg)
	}
	if saved.ArchiveID != 0 {
		t.Errorf("ArchiveID = %d, want 0", saved.ArchiveID)
	}
	if _, err := store.Get(context.Background(), tk.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	store := task.NewMemoryStore()
	tk := seed(t, store, "Scadenza", dateutil.New(2025, 11, 13))

	if _, ok := DeleteTask(store, tk)().(TaskDeletedMsg); !ok {
		t.Fatal("expected TaskDeletedMsg")
	}
	if _, ok := DeleteTask(store, tk)().(ErrMsg); !ok {
		t.Fatal("expected ErrMsg deleting twice")
	}
}

func TestComputeDeadline(t *testing.T) {
	calc := deadline.NewCalculator(nil, nil)
	days := 45
	msg := ComputeDeadline(calc, deadline.Request{
		Start:      dateutil.New(2025, 9, 1),
		TermTypeID: "termini_generici",
		CustomDays: &days,
		Today:      dateutil.New(2025, 9, 1),
	})()

	computed, ok := msg.(DeadlineComputedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want DeadlineComputedMsg", msg)
	}
	if got := computed.Computation.ComputedDate; got != dateutil.New(2025, 10, 16) {
		t.Errorf("ComputedDate = %s, want 2025-10-16", got)
	}

	if _, ok := ComputeDeadline(calc, deadline.Request{Today: dateutil.New(2025, 9, 1)})().(ErrMsg); !ok {
		t.Fatal("expected ErrMsg for a zero start date")
	}
}

func TestCopyToClipboard(t *testing.T) {
	prev := writeClipboard
	defer func() { writeClipboard = prev }()

	var got string
	writeClipboard = func(s string) error {
		got = s
		return nil
	}
	if _, ok := CopyToClipboard("13/11/2025")().(CopiedMsg); !ok {
		t.Fatal("expected CopiedMsg")
	}
	if got != "13/11/2025" {
		t.Errorf("clipboard = %q", got)
	}

	writeClipboard = func(string) error { return errors.New("no clipboard") }
	if _, ok := CopyToClipboard("x")().(ErrMsg); !ok {
		t.Fatal("expected ErrMsg")
	}
}
