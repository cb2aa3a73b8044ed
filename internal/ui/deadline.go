package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/termini/internal/dateutil"
	"github.com/javiermolinar/termini/internal/deadline"
	"github.com/javiermolinar/termini/internal/debuglog"
	"github.com/javiermolinar/termini/internal/task"
	"github.com/javiermolinar/termini/internal/term"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

func (a *App) deadlineCmd() *cobra.Command {
	var (
		days      int
		months    int
		years     int
		backward  bool
		free      bool
		today     string
		save      bool
		taskTitle string
		copyDate  bool
		fields    taskFields
	)

	cmd := &cobra.Command{
		Use:   "deadline <start> [term-id]",
		Short: "Compute a deadline",
		Long: `Compute the deadline of a term starting from a date, applying the
configured suspension policy.

With a term id the term comes from the catalogue. Use "termini terms" to
list term ids. The generic term (` + term.GenericID + `) needs --days.

Without a term id the term is given by exactly one of --days, --months or
--years and counted under art. 155 c.p.c.: a deadline on a Saturday, a
Sunday or a national holiday moves to the next working day. --backward
counts back from the start date and moves to the previous working day.
--free marks a termine libero, which ignores the suspension and holidays.`,
		Example: `  termini deadline 2025-07-15 comparsa_conclusionale
  termini deadline 15/07/2025 termini_generici --days=45
  termini deadline today appello_sentenza --save --task="Appello Rossi"
  termini deadline 31/01/2025 --months=6
  termini deadline 2025-11-20 --days=20 --backward`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := a.parseDate(args[0])
			if err != nil {
				return fmt.Errorf("invalid start date: %w", err)
			}

			now := a.today()
			if today != "" {
				if now, err = a.parseDate(today); err != nil {
					return fmt.Errorf("invalid --today: %w", err)
				}
			}

			calc, err := a.calculator()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if len(args) == 1 {
				length, unit, err := procedural(flags.Changed("days"), days, flags.Changed("months"), months, flags.Changed("years"), years)
				if err != nil {
					return err
				}
				if save {
					return fmt.Errorf("procedural terms are not archived; use --task to keep the deadline")
				}

				r, err := calc.Procedural(start, length, unit, deadline.ProceduralOptions{Backward: backward, Free: free})
				if err != nil {
					return err
				}
				printProcedural(a.out, r, now)
				a.copyDeadline(copyDate, r.Final)
				if taskTitle == "" {
					return nil
				}
				return a.saveProcedural(r, taskTitle, fields)
			}

			if flags.Changed("months") || flags.Changed("years") || backward || free {
				return fmt.Errorf("--months, --years, --backward and --free apply only without a term id")
			}

			req := deadline.Request{Start: start, TermTypeID: args[1], Today: now}
			if flags.Changed("days") {
				req.CustomDays = &days
			}

			c, err := calc.Compute(req)
			if err != nil {
				return err
			}
			debuglog.LogComputation(c)
			printComputation(a.out, c)
			a.copyDeadline(copyDate, c.ComputedDate)

			if !save && taskTitle == "" {
				return nil
			}
			return a.saveComputation(c, taskTitle, fields)
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Day count for the generic term, or a term in days")
	cmd.Flags().IntVar(&months, "months", 0, "Term in months (no term id)")
	cmd.Flags().IntVar(&years, "years", 0, "Term in years (no term id)")
	cmd.Flags().BoolVar(&backward, "backward", false, "Count back from the start date (no term id)")
	cmd.Flags().BoolVar(&free, "free", false, "Termine libero: no suspension or holiday shift (no term id)")
	cmd.Flags().StringVar(&today, "today", "", "Reference date for days remaining (default: today)")
	cmd.Flags().BoolVar(&save, "save", false, "Archive the computation")
	cmd.Flags().StringVar(&taskTitle, "task", "", "Create a task due on the deadline (implies --save)")
	cmd.Flags().BoolVar(&copyDate, "copy", false, "Copy the deadline to the clipboard")
	fields.register(cmd)

	return cmd
}

// procedural picks the length and unit of a term given without a term id.
// Exactly one unit flag must be set.
func procedural(daysSet bool, days int, monthsSet bool, months int, yearsSet bool, years int) (int, deadline.Unit, error) {
	var (
		length int
		unit   deadline.Unit
		n      int
	)
	if daysSet {
		length, unit, n = days, deadline.UnitDays, n+1
	}
	if monthsSet {
		length, unit, n = months, deadline.UnitMonths, n+1
	}
	if yearsSet {
		length, unit, n = years, deadline.UnitYears, n+1
	}
	if n != 1 {
		return 0, "", fmt.Errorf("without a term id give exactly one of --days, --months or --years")
	}
	return length, unit, nil
}

func (a *App) copyDeadline(enabled bool, d dateutil.Date) {
	if !enabled {
		return
	}
	if err := writeClipboard(d.FormatItalian()); err != nil {
		a.printf("%s\n", formatMuted("Clipboard unavailable: "+err.Error()))
		return
	}
	a.printf("Copied %s to clipboard\n", d.FormatItalian())
}

// saveProcedural creates a task due on the final date of r.
func (a *App) saveProcedural(r *deadline.ProceduralResult, title string, fields taskFields) error {
	if err := a.ensureStore(); err != nil {
		return err
	}

	t, err := task.New(title, r.Final, fields.priority)
	if err != nil {
		return err
	}
	fields.apply(t)
	if t.Notes == "" {
		t.Notes = r.Label()
	}
	if err := a.store.Upsert(context.Background(), t); err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	a.printf("Created task %s: %s due %s\n", shortID(t.ID), t.Title, t.DueDate.Format())
	return nil
}

// saveComputation archives c and, when title is set, creates a task due on
// the computed date.
func (a *App) saveComputation(c *deadline.Computation, title string, fields taskFields) error {
	if err := a.ensureStore(); err != nil {
		return err
	}
	ctx := context.Background()

	var taskID string
	if title != "" {
		t, err := task.New(title, c.ComputedDate, fields.priority)
		if err != nil {
			return err
		}
		t.Category = string(c.Category)
		fields.apply(t)
		if t.Notes == "" {
			t.Notes = fmt.Sprintf("%s from %s", c.TermLabel, c.StartDate.FormatItalian())
		}
		if err := a.store.Upsert(ctx, t); err != nil {
			return fmt.Errorf("creating task: %w", err)
		}
		taskID = t.ID
		a.printf("Created task %s: %s due %s\n", shortID(t.ID), t.Title, t.DueDate.Format())
	}

	ar, ok := a.archive()
	if !ok {
		a.println(formatMuted("The current store does not keep a computation archive."))
		return nil
	}
	id, err := ar.ArchiveComputation(ctx, c, taskID)
	if err != nil {
		return err
	}
	a.printf("Archived computation #%d\n", id)
	return nil
}

func (a *App) termsCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "terms",
		Short: "List the available term types",
		Example: `  termini terms
  termini terms --search appello`,
		RunE: func(_ *cobra.Command, _ []string) error {
			reg := term.Standard()
			types := reg.List()
			if search != "" {
				types = reg.Search(search)
			}
			if len(types) == 0 {
				a.printf("No term types match %q.\n", search)
				return nil
			}

			var current term.Category
			for _, tt := range types {
				if tt.Category != current {
					a.printf("\n  %s\n", categoryChip(string(tt.Category)))
					current = tt.Category
				}
				count := fmt.Sprintf("%3d days", tt.DayCount)
				if tt.IsVariable() {
					count = "variable"
				}
				a.printf("    %-30s %s  %s\n", tt.ID, formatMuted(count), tt.Label)
			}
			a.println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by id, label or description")
	return cmd
}

func (a *App) historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show archived deadline computations",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			ar, ok := a.archive()
			if !ok {
				return fmt.Errorf("the current store does not keep a computation archive")
			}

			items, err := ar.ListComputations(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				a.println("No archived computations.")
				return nil
			}

			today := a.today()
			for _, it := range items {
				remaining := today.DaysUntil(it.ComputedDate)
				line := fmt.Sprintf("  #%-4d %s  %-28s %s → %s",
					it.ID,
					formatMuted(it.CreatedAt.Local().Format("2006-01-02 15:04")),
					truncate(it.TermLabel, 28),
					it.StartDate.Format(),
					formatStatus(deadline.Classify(remaining), it.ComputedDate.Format()))
				if it.TaskID != "" {
					line += "  " + formatMuted("task "+shortID(it.TaskID))
				}
				a.println(strings.TrimRight(line, " "))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show (0 for all)")
	return cmd
}

func (a *App) intervalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interval <from> <to>",
		Short: "Count the days between two dates",
		Long: `Count the days strictly between two dates, both ends excluded, and
how many of them count toward a term under the suspension policy.`,
		Example: `  termini interval 2025-07-30 2025-08-04`,
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			from, err := a.parseDate(args[0])
			if err != nil {
				return err
			}
			to, err := a.parseDate(args[1])
			if err != nil {
				return err
			}

			calc, err := a.calculator()
			if err != nil {
				return err
			}
			r, err := calc.Interval(from, to)
			if err != nil {
				return err
			}

			a.printf("\n  %s\n", formatHeader(fmt.Sprintf("%s → %s", r.From.FormatItalian(), r.To.FormatItalian())))
			a.printf("  Calendar days:  %d\n", r.CalendarDays)
			a.printf("  Working days:   %d\n", r.WorkingDays)
			a.printf("  Weekend days:   %d\n", r.WeekendDays)
			a.printf("  Suspended days: %d\n", r.SuspendedDays)
			a.printf("  Counting days:  %s\n\n", formatHeader(fmt.Sprint(r.CountingDays())))
			return nil
		},
	}
}
