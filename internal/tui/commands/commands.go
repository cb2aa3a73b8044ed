// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/termini/internal/dateutil"
	"github.com/javiermolinar/termini/internal/deadline"
	"github.com/javiermolinar/termini/internal/task"
)

// CounterHorizon is how far past today the counters look.
const CounterHorizon = 7

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// MonthLoadedMsg is sent when the tasks of a month page are loaded.
type MonthLoadedMsg struct {
	Anchor   dateutil.Date // first of the month
	Grid     *task.MonthGrid
	Counters task.Counters
}

// RelocatedMsg is sent after a task was moved to another date.
type RelocatedMsg struct {
	Relocation task.Relocation
}

// TaskSavedMsg is sent after a task was created or updated.
type TaskSavedMsg struct {
	Task      *task.Task
	ArchiveID int64 // zero when no computation was archived
}

// TaskDeletedMsg is sent after a task was removed.
type TaskDeletedMsg struct {
	Task *task.Task
}

// DeadlineComputedMsg carries the result of a deadline computation.
type DeadlineComputedMsg struct {
	Computation *deadline.Computation
}

// CopiedMsg is sent when text was written to the system clipboard.
type CopiedMsg struct {
	Text string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// Archiver is implemented by stores that keep deadline computations.
type Archiver interface {
	ArchiveComputation(ctx context.Context, c *deadline.Computation, taskID string) (int64, error)
}

// LoadMonth loads the month page containing anchor, together with the
// deadline counters relative to today.
func LoadMonth(store task.Store, anchor, today dateutil.Date) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		anchor = anchor.FirstOfMonth()

		span := task.BuildMonthGrid(anchor, nil, today).Span()
		tasks, err := store.Query(ctx, span)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading %s: %w", anchor.Format(), err)}
		}

		// Overdue tasks can be arbitrarily old.
		pending, err := store.Query(ctx, dateutil.Range{
			Start: dateutil.New(1, 1, 1),
			End:   today.AddDays(CounterHorizon),
		})
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading counters: %w", err)}
		}

		return MonthLoadedMsg{
			Anchor:   anchor,
			Grid:     task.BuildMonthGrid(anchor, tasks, today),
			Counters: task.CountDeadlines(pending, today),
		}
	}
}

// Relocate moves a task to date.
func Relocate(r *task.Relocator, id string, date dateutil.Date) tea.Cmd {
	return func() tea.Msg {
		res, err := r.Relocate(context.Background(), id, date)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return RelocatedMsg{Relocation: res}
	}
}

// SaveTask stores t. When c is set and the store keeps an archive, the
// computation is archived and linked to the task.
func SaveTask(store task.Store, t *task.Task, c *deadline.Computation) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := store.Upsert(ctx, t); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving task: %w", err)}
		}

		msg := TaskSavedMsg{Task: t}
		if c == nil {
			return msg
		}
		if ar, ok := store.(Archiver); ok {
			id, err := ar.ArchiveComputation(ctx, c, t.ID)
			if err != nil {
				return ErrMsg{Err: fmt.Errorf("archiving computation: %w", err)}
			}
			msg.ArchiveID = id
		}
		return msg
	}
}

// DeleteTask removes t from the store.
func DeleteTask(store task.Store, t *task.Task) tea.Cmd {
	return func() tea.Msg {
		if err := store.Delete(context.Background(), t.ID); err != nil {
			return ErrMsg{Err: fmt.Errorf("deleting task: %w", err)}
		}
		return TaskDeletedMsg{Task: t}
	}
}

// ComputeDeadline runs a deadline computation.
func ComputeDeadline(calc *deadline.Calculator, req deadline.Request) tea.Cmd {
	return func() tea.Msg {
		c, err := calc.Compute(req)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return DeadlineComputedMsg{Computation: c}
	}
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("clipboard unavailable: %w", err)}
		}
		return CopiedMsg{Text: text}
	}
}
