package task

import (
	"fmt"
	"testing"
	"time"

	"github.com/javiermolinar/termini/internal/dateutil"
)

func d(s string) dateutil.Date {
	return dateutil.MustParse(s)
}

func taskOn(id, due string) *Task {
	return &Task{ID: id, Title: id, DueDate: d(due), Status: StatusTodo}
}

func TestBuildIndex(t *testing.T) {
	tasks := []*Task{
		taskOn("a", "2025-10-01"),
		taskOn("b", "2025-10-02"),
		nil,
		taskOn("c", "2025-10-01"),
	}
	idx := BuildIndex(tasks)

	if idx.Len() != 3 {
		t.Errorf("Len() = %d, want 3", idx.Len())
	}
	if idx.Dates() != 2 {
		t.Errorf("Dates() = %d, want 2", idx.Dates())
	}

	got := idx.TasksForDate(d("2025-10-01"))
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("expected [a c] in input order, got %v", ids(got))
	}

	empty := idx.TasksForDate(d("2025-12-25"))
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected an empty non-nil slice, got %v", empty)
	}

	// The returned slice is a copy.
	got[0] = nil
	if idx.TasksForDate(d("2025-10-01"))[0] == nil {
		t.Error("modifying the returned slice changed the index")
	}
}

func TestBuildMonthGrid_Layout(t *testing.T) {
	tests := []struct {
		anchor    string
		wantFirst string
		wantLast  string
	}{
		// February 1st 2025 is a Saturday.
		{"2025-02-14", "2025-01-27", "2025-03-09"},
		// September 1st 2025 is a Monday.
		{"2025-09-30", "2025-09-01", "2025-10-12"},
		// February 1st 2026 is a Sunday.
		{"2026-02-01", "2026-01-26", "2026-03-08"},
	}

	for _, tt := range tests {
		t.Run(tt.anchor, func(t *testing.T) {
			g := BuildMonthGrid(d(tt.anchor), nil, d("2025-01-01"))
			span := g.Span()
			if span.Start != d(tt.wantFirst) {
				t.Errorf("first cell %v, want %s", span.Start, tt.wantFirst)
			}
			if span.End != d(tt.wantLast) {
				t.Errorf("last cell %v, want %s", span.End, tt.wantLast)
			}
			if g.Cells[0][0].Date.Weekday() != time.Monday {
				t.Errorf("first cell is a %s", g.Cells[0][0].Date.Weekday())
			}
		})
	}
}

func TestBuildMonthGrid_AllMonths(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		for month := time.January; month <= time.December; month++ {
			anchor := dateutil.New(year, month, 15)
			g := BuildMonthGrid(anchor, nil, anchor)
			days := g.Days()

			name := fmt.Sprintf("%d-%02d", year, int(month))
			if len(days) != MonthGridSize {
				t.Fatalf("%s: got %d cells", name, len(days))
			}
			if days[0].Date.Weekday() != time.Monday {
				t.Errorf("%s: grid starts on %s", name, days[0].Date.Weekday())
			}

			seen := make(map[dateutil.Date]bool)
			current := 0
			for i, day := range days {
				if seen[day.Date] {
					t.Errorf("%s: duplicate date %v", name, day.Date)
				}
				seen[day.Date] = true
				if i > 0 && days[i-1].Date.AddDays(1) != day.Date {
					t.Errorf("%s: cells %d and %d are not consecutive", name, i-1, i)
				}
				if day.DayNumber != day.Date.Day {
					t.Errorf("%s: day number %d for %v", name, day.DayNumber, day.Date)
				}
				if day.IsCurrentPeriod {
					current++
				}
			}

			if !seen[anchor.FirstOfMonth()] || !seen[anchor.LastOfMonth()] {
				t.Errorf("%s: grid does not cover the whole month", name)
			}
			if current != anchor.LastOfMonth().Day {
				t.Errorf("%s: %d cells in the current month, want %d", name, current, anchor.LastOfMonth().Day)
			}
		}
	}
}

func TestBuildMonthGrid_TodayAndPast(t *testing.T) {
	today := d("2025-10-15")
	g := BuildMonthGrid(today, nil, today)

	todays := 0
	for _, day := range g.Days() {
		if day.IsToday {
			todays++
			if day.Date != today {
				t.Errorf("IsToday set on %v", day.Date)
			}
		}
		if day.IsPast != day.Date.Before(today) {
			t.Errorf("IsPast wrong for %v", day.Date)
		}
	}
	if todays != 1 {
		t.Errorf("expected exactly one today cell, got %d", todays)
	}

	if g.Anchor() != d("2025-10-01") {
		t.Errorf("Anchor() = %v", g.Anchor())
	}
}

func TestBuildMonthGrid_Partition(t *testing.T) {
	var tasks []*Task
	start := d("2025-08-01")
	for i := 0; i < 120; i++ {
		due := start.AddDays(i)
		tasks = append(tasks, &Task{ID: fmt.Sprintf("t%d", i), DueDate: due})
		if i%3 == 0 {
			tasks = append(tasks, &Task{ID: fmt.Sprintf("t%d-b", i), DueDate: due})
		}
	}
	before := make([]dateutil.Date, len(tasks))
	for i, tk := range tasks {
		before[i] = tk.DueDate
	}

	g := BuildMonthGrid(d("2025-10-10"), tasks, d("2025-10-10"))
	span := g.Span()

	inSpan := make(map[string]bool)
	for _, tk := range tasks {
		if span.Contains(tk.DueDate) {
			inSpan[tk.ID] = true
		}
	}

	seen := make(map[string]bool)
	for _, day := range g.Days() {
		for _, tk := range day.Tasks {
			if seen[tk.ID] {
				t.Errorf("task %s appears twice", tk.ID)
			}
			seen[tk.ID] = true
			if tk.DueDate != day.Date {
				t.Errorf("task %s due %v placed on %v", tk.ID, tk.DueDate, day.Date)
			}
			if !inSpan[tk.ID] {
				t.Errorf("task %s is outside the grid span", tk.ID)
			}
		}
	}
	if len(seen) != len(inSpan) {
		t.Errorf("grid holds %d tasks, want %d", len(seen), len(inSpan))
	}
	if len(g.AllTasks()) != len(inSpan) {
		t.Errorf("AllTasks() returned %d tasks, want %d", len(g.AllTasks()), len(inSpan))
	}

	for i, tk := range tasks {
		if tk.DueDate != before[i] {
			t.Fatalf("input task %s was modified", tk.ID)
		}
	}
}

func TestMonthGrid_DayByDate(t *testing.T) {
	tasks := []*Task{taskOn("a", "2025-09-30")}
	g := BuildMonthGrid(d("2025-10-01"), tasks, d("2025-10-01"))

	// September 29th 2025 is a Monday, so the grid starts there.
	cell := g.DayByDate(d("2025-09-30"))
	if cell == nil {
		t.Fatal("expected a cell for 2025-09-30")
	}
	if cell.IsCurrentPeriod {
		t.Error("2025-09-30 is not in October")
	}
	if !cell.HasTasks() || cell.Tasks[0].ID != "a" {
		t.Errorf("expected task a, got %v", ids(cell.Tasks))
	}

	if g.DayByDate(d("2025-09-28")) != nil {
		t.Error("expected nil for a date before the grid")
	}
	if g.DayByDate(d("2025-11-10")) != nil {
		t.Error("expected nil for a date after the grid")
	}
}

func TestBuildWeekGrid(t *testing.T) {
	tasks := []*Task{
		taskOn("mon", "2025-10-13"),
		taskOn("sat", "2025-10-18"),
		taskOn("next", "2025-10-20"),
	}
	today := d("2025-10-15")

	t.Run("with weekend", func(t *testing.T) {
		g := BuildWeekGrid(d("2025-10-16"), tasks, today, true)
		if len(g.Days()) != 7 {
			t.Fatalf("got %d cells, want 7", len(g.Days()))
		}
		if g.Span().Start != d("2025-10-13") || g.Span().End != d("2025-10-19") {
			t.Errorf("span %v..%v", g.Span().Start, g.Span().End)
		}
		if got := ids(g.AllTasks()); len(got) != 2 || got[0] != "mon" || got[1] != "sat" {
			t.Errorf("got tasks %v", got)
		}
		for _, day := range g.Days() {
			if !day.IsCurrentPeriod {
				t.Errorf("%v should be in the current period", day.Date)
			}
		}
		if !g.DayByDate(today).IsToday {
			t.Error("expected today to be flagged")
		}
	})

	t.Run("working days only", func(t *testing.T) {
		g := BuildWeekGrid(d("2025-10-19"), tasks, today, false)
		if len(g.Days()) != 5 {
			t.Fatalf("got %d cells, want 5", len(g.Days()))
		}
		if g.Span().End != d("2025-10-17") {
			t.Errorf("last cell %v, want Friday", g.Span().End)
		}
		if g.DayByDate(d("2025-10-18")) != nil {
			t.Error("Saturday should not be on a working week grid")
		}
		if got := ids(g.AllTasks()); len(got) != 1 || got[0] != "mon" {
			t.Errorf("got tasks %v", got)
		}
	})
}

func TestWeekdayName(t *testing.T) {
	if WeekdayName(0) != "Monday" || WeekdayShortName(6) != "Sun" {
		t.Error("unexpected weekday names")
	}
	if WeekdayName(7) != "" || WeekdayShortName(-1) != "" {
		t.Error("expected empty string out of range")
	}
}

func ids(tasks []*Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
