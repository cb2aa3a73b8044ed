package task

import (
	"time"

	"github.com/javiermolinar/termini/internal/dateutil"
)

// Grid dimensions.
const (
	MonthRows     = 6
	DaysPerWeek   = 7
	WorkWeekDays  = 5
	MonthGridSize = MonthRows * DaysPerWeek
)

// CalendarDay is one cell of a calendar grid.
type CalendarDay struct {
	Date            dateutil.Date
	DayNumber       int
	IsCurrentPeriod bool // inside the anchor month, always true for weeks
	IsToday         bool
	IsPast          bool
	Tasks           []*Task
}

// HasTasks returns true if any task is due on the day.
func (d *CalendarDay) HasTasks() bool {
	return len(d.Tasks) > 0
}

func newCalendarDay(date, today dateutil.Date, current bool, idx *Index) CalendarDay {
	return CalendarDay{
		Date:            date,
		DayNumber:       date.Day,
		IsCurrentPeriod: current,
		IsToday:         date == today,
		IsPast:          date.Before(today),
		Tasks:           idx.TasksForDate(date),
	}
}

// MonthGrid is a Monday-first 6x7 view of a month.
type MonthGrid struct {
	Year  int
	Month time.Month
	Cells [MonthRows][DaysPerWeek]CalendarDay
}

// BuildMonthGrid builds the grid for the month containing anchor. The first
// cell is the Monday on or before the 1st of the month. Tasks due outside
// the 42 visible days are dropped. tasks is not modified.
func BuildMonthGrid(anchor dateutil.Date, tasks []*Task, today dateutil.Date) *MonthGrid {
	idx := BuildIndex(tasks)
	first := anchor.FirstOfMonth()
	start := first.StartOfWeek()

	g := &MonthGrid{Year: first.Year, Month: first.Month}
	for row := 0; row < MonthRows; row++ {
		for col := 0; col < DaysPerWeek; col++ {
			d := start.AddDays(row*DaysPerWeek + col)
			current := d.Year == first.Year && d.Month == first.Month
			g.Cells[row][col] = newCalendarDay(d, today, current, idx)
		}
	}
	return g
}

// Days returns the 42 cells in row-major order.
func (g *MonthGrid) Days() []CalendarDay {
	out := make([]CalendarDay, 0, MonthGridSize)
	for row := range g.Cells {
		out = append(out, g.Cells[row][:]...)
	}
	return out
}

// Span returns the range covered by the grid, including the leading and
// trailing days of the adjacent months.
func (g *MonthGrid) Span() dateutil.Range {
	return dateutil.Range{
		Start: g.Cells[0][0].Date,
		End:   g.Cells[MonthRows-1][DaysPerWeek-1].Date,
	}
}

// DayByDate returns the cell for date, nil if it is not on the grid.
func (g *MonthGrid) DayByDate(date dateutil.Date) *CalendarDay {
	if !g.Span().Contains(date) {
		return nil
	}
	offset := g.Cells[0][0].Date.DaysUntil(date)
	return &g.Cells[offset/DaysPerWeek][offset%DaysPerWeek]
}

// AllTasks returns the tasks of every cell in date order.
func (g *MonthGrid) AllTasks() []*Task {
	return collectTasks(g.Days())
}

// Anchor returns the first day of the grid's month.
func (g *MonthGrid) Anchor() dateutil.Date {
	return dateutil.New(g.Year, g.Month, 1)
}

// WeekGrid is a Monday-first view of one week, with or without the weekend.
type WeekGrid struct {
	Cells []CalendarDay
}

// BuildWeekGrid builds the grid for the week containing anchor. It has 7
// cells when includeWeekend is set and 5 (Monday to Friday) otherwise.
// tasks is not modified.
func BuildWeekGrid(anchor dateutil.Date, tasks []*Task, today dateutil.Date, includeWeekend bool) *WeekGrid {
	idx := BuildIndex(tasks)
	monday := anchor.StartOfWeek()

	n := WorkWeekDays
	if includeWeekend {
		n = DaysPerWeek
	}

	g := &WeekGrid{Cells: make([]CalendarDay, n)}
	for i := range n {
		g.Cells[i] = newCalendarDay(monday.AddDays(i), today, true, idx)
	}
	return g
}

// Days returns the cells, Monday first.
func (g *WeekGrid) Days() []CalendarDay {
	out := make([]CalendarDay, len(g.Cells))
	copy(out, g.Cells)
	return out
}

// Span returns the range covered by the grid.
func (g *WeekGrid) Span() dateutil.Range {
	return dateutil.Range{Start: g.Cells[0].Date, End: g.Cells[len(g.Cells)-1].Date}
}

// DayByDate returns the cell for date, nil if it is not on the grid.
func (g *WeekGrid) DayByDate(date dateutil.Date) *CalendarDay {
	for i := range g.Cells {
		if g.Cells[i].Date == date {
			return &g.Cells[i]
		}
	}
	return nil
}

// AllTasks returns the tasks of every cell in date order.
func (g *WeekGrid) AllTasks() []*Task {
	return collectTasks(g.Cells)
}

func collectTasks(days []CalendarDay) []*Task {
	var result []*Task
	for _, d := range days {
		result = append(result, d.Tasks...)
	}
	return result
}

// WeekdayName returns the name of the weekday (0=Monday).
func WeekdayName(weekday int) string {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return names[weekday]
}

// WeekdayShortName returns the short name of the weekday (0=Monday).
func WeekdayShortName(weekday int) string {
	names := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return names[weekday]
}
