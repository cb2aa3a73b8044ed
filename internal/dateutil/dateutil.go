// Package dateutil provides a timezone-free calendar date and the parsing
// and arithmetic helpers built on it.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDate        = errors.New("date must be in YYYY-MM-DD or DD/MM/YYYY format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

const (
	isoLayout     = "2006-01-02"
	italianLayout = "02/01/2006"
	secondsPerDay = 24 * 60 * 60
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Date is a calendar day with no time-of-day and no location.
// The zero value is not a valid date; use IsZero to detect it.
// Date is comparable and can be used as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the normalized date for year, month and day.
// Out-of-range values roll over the same way time.Date does.
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime returns the calendar date of t as seen in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Parse parses s as YYYY-MM-DD or DD/MM/YYYY.
// It never substitutes a default: empty or malformed input is ErrInvalidDate.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	for _, layout := range []string{isoLayout, italianLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// MustParse is like Parse but panics on error. Intended for tests and
// static tables.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Format returns d as YYYY-MM-DD.
func (d Date) Format() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// FormatItalian returns d as DD/MM/YYYY.
func (d Date) FormatItalian() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

func (d Date) String() string {
	return d.Format()
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.Format()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return New(d.Year, d.Month, d.Day+n)
}

// AddMonths returns d shifted by n months. The day is clamped to the last
// day of the target month (Jan 31 + 1 month = Feb 28/29).
func (d Date) AddMonths(n int) Date {
	first := New(d.Year, d.Month+time.Month(n), 1)
	last := first.LastOfMonth()
	if d.Day > last.Day {
		return last
	}
	return Date{Year: first.Year, Month: first.Month, Day: d.Day}
}

// DaysUntil returns the signed number of days from d to other.
// It is negative when other is before d.
func (d Date) DaysUntil(other Date) int {
	return int((other.Time().Unix() - d.Time().Unix()) / secondsPerDay)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// IsWeekend reports whether d is a Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// Equal reports whether d and other are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d == other
}

// StartOfWeek returns the Monday on or before d.
func (d Date) StartOfWeek() Date {
	weekday := int(d.Weekday())
	// Convert Sunday (0) to 7 for easier calculation
	if weekday == 0 {
		weekday = 7
	}
	return d.AddDays(-(weekday - 1))
}

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// LastOfMonth returns the last day of d's month.
func (d Date) LastOfMonth() Date {
	return New(d.Year, d.Month+1, 0)
}

// WeekRange returns the Monday and Sunday of the ISO week containing d.
func WeekRange(d Date) (monday, sunday Date) {
	monday = d.StartOfWeek()
	return monday, monday.AddDays(6)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Range is an inclusive span of calendar dates.
type Range struct {
	Start Date
	End   Date
}

// NewRange creates a Range, rejecting an end before the start.
func NewRange(start, end Date) (Range, error) {
	if end.Before(start) {
		return Range{}, ErrEndDateBeforeStart
	}
	return Range{Start: start, End: end}, nil
}

// Contains reports whether d lies within the range, bounds included.
func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns the number of days in the range, bounds included.
func (r Range) Days() int {
	return r.Start.DaysUntil(r.End) + 1
}

// ParseRelative parses a date string that can be:
//   - Empty string or "today": returns today
//   - Absolute date: "2025-01-15" or "15/01/2025"
//   - Keywords: "tomorrow", "yesterday"
//   - Weekday names: "monday" through "sunday" (next occurrence, always future)
//   - Next prefixed: "next-monday" through "next-sunday", "next-week"
//
// All inputs are case-insensitive. Past absolute dates are accepted.
func ParseRelative(s string, today Date) (Date, error) {
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	case "next-week":
		return today.AddDays(7), nil
	}

	if strings.HasPrefix(input, "next-") {
		weekdayName := strings.TrimPrefix(input, "next-")
		if target, ok := weekdayMap[weekdayName]; ok {
			return nextWeekday(today, target), nil
		}
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	if target, ok := weekdayMap[input]; ok {
		return nextWeekday(today, target), nil
	}

	return Parse(input)
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today Date, target time.Weekday) Date {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDays(daysUntil)
}
