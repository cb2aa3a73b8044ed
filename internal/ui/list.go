package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/termini/internal/dateutil"
	"github.com/javiermolinar/termini/internal/task"
)

// allDates spans every date a task can carry.
var allDates = dateutil.Range{
	Start: dateutil.New(1, 1, 1),
	End:   dateutil.New(9999, 12, 31),
}

func (a *App) listCmd() *cobra.Command {
	var (
		from     string
		to       string
		openOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in a date range",
		Long: `List all tasks due within a date range.

If no dates are specified, lists the next 30 days.
If only --from is specified, lists tasks for that single day.
If both --from and --to are specified, lists tasks in that range (inclusive).`,
		Example: `  termini list
  termini list --from=2025-10-01
  termini list --from=2025-10-01 --to=2025-10-31 --open`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			r, err := a.listRange(from, to)
			if err != nil {
				return err
			}

			tasks, err := a.store.Query(context.Background(), r)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			today := a.today()
			shown := 0
			var currentDate dateutil.Date
			for _, t := range tasks {
				if openOnly && !t.IsOpen() {
					continue
				}
				if t.DueDate != currentDate {
					if shown > 0 {
						a.println()
					}
					a.printf("=== %s ===\n", t.DueDate.Format())
					currentDate = t.DueDate
				}
				printTaskRow(a.out, t, today)
				shown++
			}

			if shown == 0 {
				a.println("No tasks found in the specified date range.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start date (defaults to today)")
	cmd.Flags().StringVar(&to, "to", "", "End date (defaults to --from, or 30 days ahead)")
	cmd.Flags().BoolVar(&openOnly, "open", false, "Only show tasks still to do")

	return cmd
}

func (a *App) listRange(from, to string) (dateutil.Range, error) {
	start, err := a.parseDate(from)
	if err != nil {
		return dateutil.Range{}, err
	}

	var end dateutil.Date
	switch {
	case to != "":
		end, err = a.parseDate(to)
		if err != nil {
			return dateutil.Range{}, err
		}
	case from != "":
		end = start
	default:
		end = start.AddDays(30)
	}
	return dateutil.NewRange(start, end)
}

// resolveTask loads a task by full id or by a unique id prefix.
func (a *App) resolveTask(ctx context.Context, ref string) (*task.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, task.ErrTaskNotFound
	}

	t, err := a.store.Get(ctx, ref)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, task.ErrTaskNotFound) {
		return nil, err
	}

	all, err := a.store.Query(ctx, allDates)
	if err != nil {
		return nil, fmt.Errorf("searching tasks: %w", err)
	}

	var match *task.Task
	for _, candidate := range all {
		if !strings.HasPrefix(candidate.ID, ref) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("id prefix %q matches more than one task", ref)
		}
		match = candidate
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, ref)
	}
	return match, nil
}

func (a *App) doneCmd() *cobra.Command {
	var reopen bool

	cmd := &cobra.Command{
		Use:   "done [task_id]",
		Short: "Mark a task as done",
		Long: `Mark a task as done, or back to todo with --reopen.

The id may be abbreviated to any unique prefix.

Example:
  termini done 3f2a9c1e`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			ctx := context.Background()
			t, err := a.resolveTask(ctx, args[0])
			if err != nil {
				return err
			}

			t.Status = task.StatusDone
			if reopen {
				t.Status = task.StatusTodo
			}
			if err := a.store.Upsert(ctx, t); err != nil {
				return fmt.Errorf("updating task: %w", err)
			}

			a.printf("Task %s is now %s: %s\n", shortID(t.ID), t.Status, t.Title)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reopen, "reopen", false, "Mark the task as todo again")
	return cmd
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [task_id]",
		Short: "Delete a task",
		Long: `Delete a task permanently. Archived computations linked to it are kept.

Example:
  termini delete 3f2a9c1e`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			ctx := context.Background()
			t, err := a.resolveTask(ctx, args[0])
			if err != nil {
				return err
			}

			if err := a.store.Delete(ctx, t.ID); err != nil {
				return fmt.Errorf("deleting task: %w", err)
			}

			a.printf("Deleted task %s: %s\n", shortID(t.ID), t.Title)
			return nil
		},
	}
}
