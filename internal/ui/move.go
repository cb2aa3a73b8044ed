package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/termini/internal/debuglog"
	"github.com/javiermolinar/termini/internal/task"
)

func (a *App) moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <task-id> <date>",
		Short: "Move a task to a new due date",
		Long: `Move a task to another due date. Past dates are accepted.

Moving a task to the date it already has changes nothing.`,
		Example: `  termini move 3f2a9c1e 2025-10-20
  termini move 3f2a9c1e next-monday`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			newDate, err := a.parseDate(args[1])
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}

			ctx := context.Background()
			t, err := a.resolveTask(ctx, args[0])
			if err != nil {
				return err
			}

			reloc, err := task.NewRelocator(a.store).Relocate(ctx, t.ID, newDate)
			if err != nil {
				return err
			}
			debuglog.LogRelocation(reloc)

			if !reloc.Moved() {
				a.printf("Task %s is already due %s\n", shortID(t.ID), reloc.To.Format())
				return nil
			}
			a.printf("Moved task %s: %s %s → %s\n",
				shortID(t.ID), reloc.Task.Title, reloc.From.Format(), reloc.To.Format())
			return nil
		},
	}
}
