package deadline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/termini/internal/dateutil"
)

// Unit is the unit a procedural term is expressed in.
type Unit string

const (
	UnitDays   Unit = "days"
	UnitMonths Unit = "months"
	UnitYears  Unit = "years"
)

// Upper bounds of a procedural term, per unit.
const (
	MaxTermDays   = 3650
	MaxTermMonths = 120
	MaxTermYears  = 10
)

var (
	ErrInvalidUnit       = errors.New("unit must be days, months or years")
	ErrInvalidTermLength = errors.New("term length out of range")
)

// ParseUnit parses a unit name. Singular forms and the first letter are
// accepted.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d", "day", "days":
		return UnitDays, nil
	case "m", "month", "months":
		return UnitMonths, nil
	case "y", "year", "years":
		return UnitYears, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidUnit, s)
}

func (u Unit) max() int {
	switch u {
	case UnitMonths:
		return MaxTermMonths
	case UnitYears:
		return MaxTermYears
	default:
		return MaxTermDays
	}
}

// ProceduralOptions tunes a procedural term.
type ProceduralOptions struct {
	// Rule supplies the suspended days. Nil suspends nothing.
	Rule SuspensionRule

	// Backward counts the term back from the start date, as for deadlines
	// that must be met a given time before a hearing.
	Backward bool

	// Free marks a "termine libero": no suspension applies and a deadline
	// on a holiday is not moved.
	Free bool
}

// ProceduralResult is a term counted under art. 155 c.p.c.
type ProceduralResult struct {
	Start    dateutil.Date
	Length   int
	Unit     Unit
	Backward bool
	Free     bool

	// RawEnd is the start moved by the length alone.
	RawEnd dateutil.Date

	// Computed applies the suspension and the Saturday rule to RawEnd.
	Computed dateutil.Date

	// Final moves Computed off Sundays and holidays.
	Final dateutil.Date

	SuspendedDays int
	Notes         []string
}

// Label describes the term, e.g. "3 months from 31/01/2025".
func (r *ProceduralResult) Label() string {
	dir := "from"
	if r.Backward {
		dir = "before"
	}
	unit := string(r.Unit)
	if r.Length == 1 {
		unit = strings.TrimSuffix(unit, "s")
	}
	return fmt.Sprintf("%d %s %s %s", r.Length, unit, dir, r.Start.FormatItalian())
}

// Procedural counts a term of length units from start. Day terms follow
// the day count (ex numeratio dierum); month and year terms land on the
// same day number (ex nominatione dierum), clamped to the end of shorter
// months.
//
// A deadline falling on a Saturday moves to the next working day, or to
// the previous one for a backward term. A deadline on a Sunday or a
// national holiday moves the same way unless the term is free.
func Procedural(start dateutil.Date, length int, unit Unit, opts ProceduralOptions) (*ProceduralResult, error) {
	if start.IsZero() {
		return nil, fmt.Errorf("start date: %w", dateutil.ErrInvalidDate)
	}
	unit, err := ParseUnit(string(unit))
	if err != nil {
		return nil, err
	}
	if length < 1 || length > unit.max() {
		return nil, fmt.Errorf("%w: %d %s, allowed 1 to %d", ErrInvalidTermLength, length, unit, unit.max())
	}

	res := &ProceduralResult{
		Start:    start,
		Length:   length,
		Unit:     unit,
		Backward: opts.Backward,
		Free:     opts.Free,
	}

	sign := 1
	if opts.Backward {
		sign = -1
	}
	switch unit {
	case UnitDays:
		res.RawEnd = start.AddDays(sign * length)
	case UnitMonths:
		res.RawEnd = start.AddMonths(sign * length)
	case UnitYears:
		res.RawEnd = start.AddMonths(sign * length * 12)
	}
	if unit != UnitDays && res.RawEnd.Day != start.Day {
		res.Notes = append(res.Notes, fmt.Sprintf("no day %d in %s %d: end of month used",
			start.Day, res.RawEnd.Month, res.RawEnd.Year))
	}

	end := res.RawEnd
	if opts.Rule != nil && !opts.Free {
		var susp Suspension
		if opts.Backward {
			susp = applyBackward(opts.Rule, start, end)
		} else {
			susp = opts.Rule.Apply(start, end)
		}
		if susp.SuspendedDays > 0 {
			res.SuspendedDays = susp.SuspendedDays
			res.Notes = append(res.Notes, fmt.Sprintf("suspension %s: %d days", opts.Rule.Name(), susp.SuspendedDays))
		}
		end = susp.ShiftedEnd
	}

	if end.Weekday() == time.Saturday {
		moved := shiftOffNonWorking(end, opts.Backward)
		res.Notes = append(res.Notes, fmt.Sprintf("art. 155 c.5 c.p.c.: Saturday %s moved to %s",
			end.FormatItalian(), moved.FormatItalian()))
		end = moved
	}
	res.Computed = end

	final := end
	if !IsWorkingDay(final) {
		reason := final.Weekday().String()
		if name, ok := HolidayName(final); ok {
			reason = name
		}
		if opts.Free {
			res.Notes = append(res.Notes, fmt.Sprintf("free term: deadline kept on %s (%s)", final.FormatItalian(), reason))
		} else {
			moved := shiftOffNonWorking(final, opts.Backward)
			res.Notes = append(res.Notes, fmt.Sprintf("art. 155 c.4 c.p.c.: %s (%s) moved to %s",
				final.FormatItalian(), reason, moved.FormatItalian()))
			final = moved
		}
	}
	res.Final = final

	return res, nil
}

// Procedural counts a term with the calculator's suspension rule unless
// opts sets one.
func (c *Calculator) Procedural(start dateutil.Date, length int, unit Unit, opts ProceduralOptions) (*ProceduralResult, error) {
	if opts.Rule == nil {
		opts.Rule = c.rule
	}
	return Procedural(start, length, unit, opts)
}

func shiftOffNonWorking(d dateutil.Date, backward bool) dateutil.Date {
	if backward {
		return previousWorkingDay(d)
	}
	return nextWorkingDay(d)
}

// applyBackward moves rawEnd earlier by the suspended days in
// [rawEnd, start], recounting until the window stops growing.
func applyBackward(rule SuspensionRule, start, rawEnd dateutil.Date) Suspension {
	if start.Before(rawEnd) {
		return Suspension{ShiftedEnd: rawEnd}
	}
	count := 0
	for {
		n := rule.CountIn(rawEnd.AddDays(-count), start)
		if n == count {
			break
		}
		count = n
	}
	return Suspension{
		ShiftedEnd:    rawEnd.AddDays(-count),
		SuspendedDays: count,
	}
}
