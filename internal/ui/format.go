package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/termini/internal/dateutil"
	"github.com/javiermolinar/termini/internal/deadline"
	"github.com/javiermolinar/termini/internal/task"
	"github.com/javiermolinar/termini/internal/term"
	"github.com/javiermolinar/termini/internal/tui/theme"
)

// Cell widths for the month table.
const (
	minCellWidth = 6
	maxCellWidth = 18
)

// categoryChip renders a category label on its catalogue colour.
func categoryChip(name string) string {
	info := term.Category(name).Info()
	return lipgloss.NewStyle().
		Background(lipgloss.Color(info.Color)).
		Foreground(lipgloss.Color(theme.TextOn(info.Color))).
		Padding(0, 1).
		Render(info.Label)
}

// statusSymbol returns the status indicator for a task.
func statusSymbol(s task.Status) string {
	if s == task.StatusDone {
		return "✓"
	}
	return "○"
}

// shortID returns the first block of a task id.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// taskStatus classifies an open task by its due date. Done tasks count
// as upcoming so they are never shown as overdue.
func taskStatus(t *task.Task, today dateutil.Date) deadline.Status {
	if !t.IsOpen() {
		return deadline.StatusUpcoming
	}
	return deadline.Classify(today.DaysUntil(t.DueDate))
}

// printTaskRow prints a single task row with consistent formatting.
func printTaskRow(w io.Writer, t *task.Task, today dateutil.Date) {
	due := formatStatus(taskStatus(t, today), t.DueDate.Format())
	line := fmt.Sprintf("  %s  %s  %s  %s", statusSymbol(t.Status), formatMuted(shortID(t.ID)), due, t.Title)
	if t.Category != "" {
		line += "  " + categoryChip(t.Category)
	}
	if t.Practice != "" {
		line += "  " + formatMuted("["+t.Practice+"]")
	}
	_, _ = fmt.Fprintln(w, line)
}

// printComputation prints the result of a deadline computation.
func printComputation(w io.Writer, c *deadline.Computation) {
	status := c.Status()
	_, _ = fmt.Fprintf(w, "\n  %s  %s\n", formatHeader(c.TermLabel), categoryChip(string(c.Category)))
	_, _ = fmt.Fprintln(w, "  "+strings.Repeat("─", 40))
	_, _ = fmt.Fprintf(w, "  Start:      %s (%s)\n", c.StartDate.Format(), c.StartDate.FormatItalian())
	_, _ = fmt.Fprintf(w, "  Days:       %d\n", c.DayCount)
	if c.SuspensionDaysApplied > 0 {
		_, _ = fmt.Fprintf(w, "  Raw end:    %s\n", c.RawEndDate.Format())
		_, _ = fmt.Fprintf(w, "  Suspended:  %d days\n", c.SuspensionDaysApplied)
	}
	_, _ = fmt.Fprintf(w, "  Deadline:   %s (%s, %s)\n",
		formatStatus(status, c.ComputedDate.Format()),
		c.ComputedDate.FormatItalian(),
		c.ComputedDate.Weekday())
	_, _ = fmt.Fprintf(w, "  Remaining:  %s\n", formatStatus(status, remainingLabel(c.DaysRemaining)))

	if len(c.Notes) > 0 {
		_, _ = fmt.Fprintln(w)
		for _, n := range c.Notes {
			_, _ = fmt.Fprintf(w, "  %s %s\n", formatMuted("•"), n)
		}
	}
	_, _ = fmt.Fprintln(w)
}

func printProcedural(w io.Writer, r *deadline.ProceduralResult, today dateutil.Date) {
	remaining := today.DaysUntil(r.Final)
	status := deadline.Classify(remaining)

	kind := "ordinary term"
	switch {
	case r.Free && r.Backward:
		kind = "free term, backward"
	case r.Free:
		kind = "free term"
	case r.Backward:
		kind = "backward term"
	}
	_, _ = fmt.Fprintf(w, "\n  %s  %s\n", formatHeader(r.Label()), formatMuted(kind))
	_, _ = fmt.Fprintln(w, "  "+strings.Repeat("─", 40))
	_, _ = fmt.Fprintf(w, "  Start:      %s (%s)\n", r.Start.Format(), r.Start.FormatItalian())
	_, _ = fmt.Fprintf(w, "  Term:       %d %s\n", r.Length, r.Unit)
	if r.RawEnd != r.Final {
		_, _ = fmt.Fprintf(w, "  Raw end:    %s\n", r.RawEnd.Format())
	}
	if r.SuspendedDays > 0 {
		_, _ = fmt.Fprintf(w, "  Suspended:  %d days\n", r.SuspendedDays)
	}
	_, _ = fmt.Fprintf(w, "  Deadline:   %s (%s, %s)\n",
		formatStatus(status, r.Final.Format()),
		r.Final.FormatItalian(),
		r.Final.Weekday())
	_, _ = fmt.Fprintf(w, "  Remaining:  %s\n", formatStatus(status, remainingLabel(remaining)))

	if len(r.Notes) > 0 {
		_, _ = fmt.Fprintln(w)
		for _, n := range r.Notes {
			_, _ = fmt.Fprintf(w, "  %s %s\n", formatMuted("•"), n)
		}
	}
	_, _ = fmt.Fprintln(w)
}

func remainingLabel(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("%d days (overdue)", days)
	case days == 0:
		return "due today"
	case days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

// monthCellWidth picks a cell width that fits seven columns in the terminal.
func monthCellWidth(width int) int {
	w := (width - 2) / task.DaysPerWeek
	return max(minCellWidth, min(maxCellWidth, w))
}

// printMonth renders a month grid as a table followed by its task list.
func printMonth(w io.Writer, g *task.MonthGrid, today dateutil.Date, cellWidth int) {
	title := fmt.Sprintf("%s %d", g.Month, g.Year)
	_, _ = fmt.Fprintf(w, "\n  %s\n", formatHeader(title))

	var header strings.Builder
	header.WriteString("  ")
	for i := range task.DaysPerWeek {
		header.WriteString(pad(task.WeekdayShortName(i), cellWidth))
	}
	_, _ = fmt.Fprintln(w, formatMuted(header.String()))

	for row := range task.MonthRows {
		var line strings.Builder
		line.WriteString("  ")
		for col := range task.DaysPerWeek {
			line.WriteString(renderCell(&g.Cells[row][col], cellWidth))
		}
		_, _ = fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}

	tasks := g.AllTasks()
	if len(tasks) == 0 {
		_, _ = fmt.Fprintf(w, "\n  %s\n\n", formatMuted("No tasks in this period."))
		return
	}
	_, _ = fmt.Fprintln(w)
	for _, t := range tasks {
		printTaskRow(w, t, today)
	}
	_, _ = fmt.Fprintln(w)
}

// renderCell returns one padded calendar cell: the day number, followed by
// the task count and, when the cell is wide enough, the first title.
func renderCell(d *task.CalendarDay, width int) string {
	text := fmt.Sprintf("%2d", d.DayNumber)
	if n := len(d.Tasks); n > 0 {
		text += fmt.Sprintf("•%d", n)
		if room := width - len(text) - 2; room >= 6 {
			text += " " + truncate(d.Tasks[0].Title, room)
		}
	}
	cell := pad(text, width)

	switch {
	case d.IsToday:
		return formatToday(cell)
	case !d.IsCurrentPeriod:
		return formatMuted(cell)
	case d.HasTasks():
		return formatHeader(cell)
	default:
		return cell
	}
}

// printWeek renders a week grid one day per block.
func printWeek(w io.Writer, g *task.WeekGrid, today dateutil.Date) {
	span := g.Span()
	title := fmt.Sprintf("WEEK: %s - %s", span.Start.FormatItalian(), span.End.FormatItalian())
	_, _ = fmt.Fprintf(w, "\n  %s\n", formatHeader(title))
	_, _ = fmt.Fprintln(w, "  "+strings.Repeat("─", 40))

	for i, d := range g.Days() {
		name := fmt.Sprintf("%s %s", task.WeekdayName(i), d.Date.FormatItalian())
		if d.IsToday {
			name = formatToday(name + " (today)")
		} else {
			name = formatHeader(name)
		}
		_, _ = fmt.Fprintf(w, "  %s\n", name)
		if !d.HasTasks() {
			_, _ = fmt.Fprintf(w, "    %s\n", formatMuted("-"))
			continue
		}
		for _, t := range d.Tasks {
			printTaskRow(w, t, today)
		}
	}
	_, _ = fmt.Fprintln(w)
}

// pad right-pads s with spaces to width runes.
func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
