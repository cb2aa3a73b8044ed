package deadline

import "github.com/javiermolinar/termini/internal/dateutil"

// IntervalResult describes the days strictly between two dates.
type IntervalResult struct {
	From          dateutil.Date
	To            dateutil.Date
	CalendarDays  int // days between the two dates, both ends excluded
	WorkingDays   int // Monday to Friday among CalendarDays
	WeekendDays   int
	SuspendedDays int // days among CalendarDays that the rule does not count
}

// CountingDays returns the calendar days that count toward a term.
func (r IntervalResult) CountingDays() int {
	return r.CalendarDays - r.SuspendedDays
}

// Interval counts the days strictly between a and b using the calculator's
// suspension rule. The dates may be given in either order but must differ.
func (c *Calculator) Interval(a, b dateutil.Date) (IntervalResult, error) {
	return Interval(a, b, c.rule)
}

// Interval counts the days strictly between a and b. A nil rule counts no
// suspended days.
func Interval(a, b dateutil.Date, rule SuspensionRule) (IntervalResult, error) {
	if a.IsZero() || b.IsZero() {
		return IntervalResult{}, dateutil.ErrInvalidDate
	}
	if a == b {
		return IntervalResult{}, ErrInvalidInterval
	}
	if b.Before(a) {
		a, b = b, a
	}
	if rule == nil {
		rule = NoSuspension{}
	}

	res := IntervalResult{From: a, To: b}
	first, last := a.AddDays(1), b.AddDays(-1)
	for d := first; !d.After(last); d = d.AddDays(1) {
		res.CalendarDays++
		if d.IsWeekend() {
			res.WeekendDays++
		} else {
			res.WorkingDays++
		}
	}
	if res.CalendarDays > 0 {
		res.SuspendedDays = rule.CountIn(first, last)
	}
	return res, nil
}
