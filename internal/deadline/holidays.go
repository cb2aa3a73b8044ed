package deadline

import (
	"sort"
	"time"

	"github.com/javiermolinar/termini/internal/dateutil"
)

// Holiday is an Italian national public holiday.
type Holiday struct {
	Date dateutil.Date
	Name string
}

var fixedHolidays = []struct {
	day  MonthDay
	name string
}{
	{MonthDay{time.January, 1}, "Capodanno"},
	{MonthDay{time.January, 6}, "Epifania"},
	{MonthDay{time.April, 25}, "Festa della Liberazione"},
	{MonthDay{time.May, 1}, "Festa del Lavoro"},
	{MonthDay{time.June, 2}, "Festa della Repubblica"},
	{MonthDay{time.August, 15}, "Ferragosto"},
	{MonthDay{time.November, 1}, "Ognissanti"},
	{MonthDay{time.December, 8}, "Immacolata Concezione"},
	{MonthDay{time.December, 25}, "Natale"},
	{MonthDay{time.December, 26}, "Santo Stefano"},
}

// Easter returns Easter Sunday of a Gregorian year (anonymous Gregorian
// algorithm).
func Easter(year int) dateutil.Date {
	a := year % 19
	b, c := year/100, year%100
	d, e := b/4, b%4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i, k := c/4, c%4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	n := h + l - 7*m + 114
	return dateutil.New(year, time.Month(n/31), n%31+1)
}

// Holidays returns the national holidays of year in date order.
func Holidays(year int) []Holiday {
	out := make([]Holiday, 0, len(fixedHolidays)+2)
	for _, fh := range fixedHolidays {
		out = append(out, Holiday{Date: fh.day.in(year), Name: fh.name})
	}
	easter := Easter(year)
	out = append(out,
		Holiday{Date: easter, Name: "Pasqua"},
		Holiday{Date: easter.AddDays(1), Name: "Lunedì dell'Angelo"},
	)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// HolidayName returns the name of the national holiday falling on d.
func HolidayName(d dateutil.Date) (string, bool) {
	for _, h := range Holidays(d.Year) {
		if h.Date == d {
			return h.Name, true
		}
	}
	return "", false
}

// IsWorkingDay reports whether d is a weekday other than a national holiday.
func IsWorkingDay(d dateutil.Date) bool {
	if d.IsWeekend() {
		return false
	}
	_, holiday := HolidayName(d)
	return !holiday
}

// nextWorkingDay returns the first working day after d.
func nextWorkingDay(d dateutil.Date) dateutil.Date {
	d = d.AddDays(1)
	for !IsWorkingDay(d) {
		d = d.AddDays(1)
	}
	return d
}

// previousWorkingDay returns the last working day before d.
func previousWorkingDay(d dateutil.Date) dateutil.Date {
	d = d.AddDays(-1)
	for !IsWorkingDay(d) {
		d = d.AddDays(-1)
	}
	return d
}
