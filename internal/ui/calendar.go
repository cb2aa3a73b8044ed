package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/termini/internal/debuglog"
	"github.com/javiermolinar/termini/internal/task"
)

func (a *App) monthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month [date]",
		Short: "Show the month calendar",
		Long: `Show the six-week calendar of the month containing the date
(default: today), followed by the tasks due in that span.`,
		Example: `  termini month
  termini month 2025-11-01`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			anchor := a.today()
			if len(args) == 1 {
				var err error
				if anchor, err = a.parseDate(args[0]); err != nil {
					return err
				}
			}

			today := a.today()
			empty := task.BuildMonthGrid(anchor, nil, today)
			tasks, err := a.store.Query(context.Background(), empty.Span())
			if err != nil {
				return fmt.Errorf("loading tasks: %w", err)
			}

			grid := task.BuildMonthGrid(anchor, tasks, today)
			debuglog.LogGrid(grid, "cli_month")
			printMonth(a.out, grid, today, monthCellWidth(termWidth()))
			return nil
		},
	}
}

func (a *App) weekCmd() *cobra.Command {
	var weekend, workWeek bool

	cmd := &cobra.Command{
		Use:   "week [date]",
		Short: "Show the tasks of a week",
		Long: `Show Monday through Sunday of the week containing the date
(default: today). The weekend follows the calendar.include_weekend setting
unless --weekend or --work-week is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			anchor := a.today()
			if len(args) == 1 {
				var err error
				if anchor, err = a.parseDate(args[0]); err != nil {
					return err
				}
			}

			include := a.config.Calendar.IncludeWeekend
			if cmd.Flags().Changed("weekend") {
				include = weekend
			}
			if workWeek {
				include = false
			}

			today := a.today()
			span := task.BuildWeekGrid(anchor, nil, today, include).Span()
			tasks, err := a.store.Query(context.Background(), span)
			if err != nil {
				return fmt.Errorf("loading tasks: %w", err)
			}

			printWeek(a.out, task.BuildWeekGrid(anchor, tasks, today, include), today)
			return nil
		},
	}

	cmd.Flags().BoolVar(&weekend, "weekend", false, "Include Saturday and Sunday")
	cmd.Flags().BoolVar(&workWeek, "work-week", false, "Show Monday to Friday only")
	return cmd
}

func (a *App) countersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "counters",
		Short: "Summarise open deadlines",
		Long:  `Count open tasks due today, tomorrow, within the next week, and overdue.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			tasks, err := a.store.Query(context.Background(), allDates)
			if err != nil {
				return fmt.Errorf("loading tasks: %w", err)
			}

			c := task.CountDeadlines(tasks, a.today())
			a.printf("\n  %s\n", formatHeader("DEADLINES"))
			a.printf("  Overdue:    %s\n", colorOverdue.Sprint(c.Overdue))
			a.printf("  Today:      %s\n", colorUrgent.Sprint(c.Today))
			a.printf("  Tomorrow:   %d\n", c.Tomorrow)
			a.printf("  This week:  %d\n", c.ThisWeek)
			a.printf("  Total:      %d\n\n", c.Total())
			return nil
		},
	}
}
