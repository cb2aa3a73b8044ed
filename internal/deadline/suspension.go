package deadline

import (
	"fmt"
	"time"

	"github.com/javiermolinar/termini/internal/dateutil"
)

// Suspension is the result of applying a SuspensionRule to a raw interval.
type Suspension struct {
	ShiftedEnd    dateutil.Date
	SuspendedDays int
}

// SuspensionRule decides which days do not count toward a term.
// Implementations must be pure: the same input always gives the same output.
type SuspensionRule interface {
	// Apply shifts rawEnd forward by the non-counting days in [start, rawEnd],
	// repeating until the shifted interval picks up no new suspended days.
	Apply(start, rawEnd dateutil.Date) Suspension

	// CountIn returns the number of non-counting days in [start, end].
	CountIn(start, end dateutil.Date) int

	// Name describes the rule for computation notes.
	Name() string
}

// MonthDay is a day of the year without a year.
type MonthDay struct {
	Month time.Month
	Day   int
}

func (md MonthDay) in(year int) dateutil.Date {
	return dateutil.Date{Year: year, Month: md.Month, Day: md.Day}
}

// startIn returns the first day of a window opening on md. A day missing
// from that year (02-29) opens the window on the next day.
func (md MonthDay) startIn(year int) dateutil.Date {
	return dateutil.New(year, md.Month, md.Day)
}

// endIn returns the last day of a window closing on md, clamped to the end
// of the month.
func (md MonthDay) endIn(year int) dateutil.Date {
	last := dateutil.New(year, md.Month, 1).LastOfMonth()
	if md.Day > last.Day {
		return last
	}
	return md.in(year)
}

func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

// ParseMonthDay parses "MM-DD".
func ParseMonthDay(s string) (MonthDay, error) {
	// 2024 is a leap year, so 02-29 is accepted.
	d, err := dateutil.Parse("2024-" + s)
	if err != nil || len(s) != 5 {
		return MonthDay{}, fmt.Errorf("%q must be in MM-DD format", s)
	}
	return MonthDay{Month: d.Month, Day: d.Day}, nil
}

// RecessRule suspends a fixed window of every year, bounds included.
// The window must not wrap around the new year.
type RecessRule struct {
	From MonthDay
	To   MonthDay
}

// DefaultRecess returns the statutory summer recess: August 1 to August 31.
func DefaultRecess() RecessRule {
	return RecessRule{
		From: MonthDay{Month: time.August, Day: 1},
		To:   MonthDay{Month: time.August, Day: 31},
	}
}

// NewRecessRule validates and builds a RecessRule.
func NewRecessRule(from, to MonthDay) (RecessRule, error) {
	if from.in(2024).After(to.in(2024)) {
		return RecessRule{}, fmt.Errorf("recess window %s..%s wraps around the year", from, to)
	}
	return RecessRule{From: from, To: to}, nil
}

// Apply implements SuspensionRule.
func (r RecessRule) Apply(start, rawEnd dateutil.Date) Suspension {
	if rawEnd.Before(start) {
		return Suspension{ShiftedEnd: rawEnd}
	}

	// Shifting the end can pull more of a window, or a later year's window,
	// into the interval. Recount until the total is stable.
	count := 0
	for {
		n := r.CountIn(start, rawEnd.AddDays(count))
		if n == count {
			break
		}
		count = n
	}

	return Suspension{
		ShiftedEnd:    rawEnd.AddDays(count),
		SuspendedDays: count,
	}
}

// CountIn implements SuspensionRule.
func (r RecessRule) CountIn(start, end dateutil.Date) int {
	if end.Before(start) {
		return 0
	}
	total := 0
	for year := start.Year; year <= end.Year; year++ {
		lo := maxDate(start, r.From.startIn(year))
		hi := minDate(end, r.To.endIn(year))
		if !hi.Before(lo) {
			total += lo.DaysUntil(hi) + 1
		}
	}
	return total
}

// Name implements SuspensionRule.
func (r RecessRule) Name() string {
	return fmt.Sprintf("recess %s..%s", r.From, r.To)
}

// NoSuspension counts every day.
type NoSuspension struct{}

// Apply implements SuspensionRule.
func (NoSuspension) Apply(_, rawEnd dateutil.Date) Suspension {
	return Suspension{ShiftedEnd: rawEnd}
}

// CountIn implements SuspensionRule.
func (NoSuspension) CountIn(_, _ dateutil.Date) int {
	return 0
}

// Name implements SuspensionRule.
func (NoSuspension) Name() string {
	return "none"
}

func maxDate(a, b dateutil.Date) dateutil.Date {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b dateutil.Date) dateutil.Date {
	if a.Before(b) {
		return a
	}
	return b
}
