package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/termini/internal/task"
)

// taskFields holds the pass-through attributes shared by commands that
// create tasks.
type taskFields struct {
	practice     string
	client       string
	counterparty string
	category     string
	priority     string
	notes        string
}

func (f *taskFields) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.practice, "practice", "", "Case or file reference")
	cmd.Flags().StringVar(&f.client, "client", "", "Client name")
	cmd.Flags().StringVar(&f.counterparty, "counterparty", "", "Opposing party")
	cmd.Flags().StringVar(&f.category, "category", "", "Category label (e.g. Processuale)")
	cmd.Flags().StringVar(&f.priority, "priority", "medium", "Priority: low, medium or high")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
}

func (f *taskFields) apply(t *task.Task) {
	t.Practice = f.practice
	t.Client = f.client
	t.Counterparty = f.counterparty
	t.Notes = f.notes
	if f.category != "" {
		t.Category = f.category
	}
}

func (a *App) addCmd() *cobra.Command {
	var (
		due    string
		fields taskFields
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a dated task to the calendar.

Example:
  termini add "Deposito memoria" --due=2025-11-13 --practice=RG-1234/2025 --category=Deposito`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			dueDate, err := a.parseDate(due)
			if err != nil {
				return err
			}

			t, err := task.New(args[0], dueDate, fields.priority)
			if err != nil {
				return err
			}
			fields.apply(t)

			if err := a.store.Upsert(context.Background(), t); err != nil {
				return fmt.Errorf("creating task: %w", err)
			}

			a.printf("Created task %s: %s due %s\n", shortID(t.ID), t.Title, t.DueDate.Format())
			return nil
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, DD/MM/YYYY or relative, default: today)")
	fields.register(cmd)

	return cmd
}
