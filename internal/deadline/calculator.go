// Package deadline computes legal deadlines from a start date, a term type
// and a suspension policy.
package deadline

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/termini/internal/dateutil"
	"github.com/javiermolinar/termini/internal/term"
)

// Validation errors.
var (
	ErrInvalidDayCount = errors.New("day count must be between 1 and 365")
	ErrInvalidInterval = errors.New("interval dates must differ")
)

// Day count bounds for any resolved term.
const (
	MinDays = 1
	MaxDays = 365
)

// UrgentWindow is the number of days ahead within which a deadline is urgent.
const UrgentWindow = 7

// Status classifies a deadline relative to today.
type Status string

const (
	StatusOverdue  Status = "overdue"
	StatusUrgent   Status = "urgent"
	StatusUpcoming Status = "upcoming"
)

// Classify returns the status for a signed days-remaining value.
func Classify(daysRemaining int) Status {
	switch {
	case daysRemaining < 0:
		return StatusOverdue
	case daysRemaining <= UrgentWindow:
		return StatusUrgent
	default:
		return StatusUpcoming
	}
}

// Request holds the inputs of a deadline computation.
// CustomDays is only consulted for the generic term type or for an id
// that is not in the registry.
type Request struct {
	Start      dateutil.Date
	TermTypeID string
	CustomDays *int
	Today      dateutil.Date
}

// Computation is the result of a deadline computation.
type Computation struct {
	StartDate             dateutil.Date
	TermTypeID            string
	TermLabel             string
	Category              term.Category
	DayCount              int
	RawEndDate            dateutil.Date
	ComputedDate          dateutil.Date
	Today                 dateutil.Date
	DaysRemaining         int
	SuspensionDaysApplied int
	Urgent                bool
	Notes                 []string
}

// Status returns the deadline status relative to the computation's today.
func (c *Computation) Status() Status {
	return Classify(c.DaysRemaining)
}

// Calculator combines a term registry and a suspension rule.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	registry *term.Registry
	rule     SuspensionRule
}

// NewCalculator creates a Calculator.
// A nil registry means term.Standard(); a nil rule means DefaultRecess().
func NewCalculator(registry *term.Registry, rule SuspensionRule) *Calculator {
	if registry == nil {
		registry = term.Standard()
	}
	if rule == nil {
		rule = DefaultRecess()
	}
	return &Calculator{registry: registry, rule: rule}
}

// Rule returns the suspension rule in use.
func (c *Calculator) Rule() SuspensionRule {
	return c.rule
}

// Registry returns the term registry in use.
func (c *Calculator) Registry() *term.Registry {
	return c.registry
}

// Compute resolves the term, applies the suspension rule and derives the
// remaining days and urgency against req.Today.
func (c *Calculator) Compute(req Request) (*Computation, error) {
	if req.Start.IsZero() {
		return nil, fmt.Errorf("start date: %w", dateutil.ErrInvalidDate)
	}
	if req.Today.IsZero() {
		return nil, fmt.Errorf("today: %w", dateutil.ErrInvalidDate)
	}

	tt, notes, err := c.resolve(req.TermTypeID, req.CustomDays)
	if err != nil {
		return nil, err
	}

	rawEnd := req.Start.AddDays(tt.DayCount)
	susp := c.rule.Apply(req.Start, rawEnd)
	if susp.SuspendedDays > 0 {
		notes = append(notes, fmt.Sprintf("suspension %s: +%d days", c.rule.Name(), susp.SuspendedDays))
	}

	computed := susp.ShiftedEnd
	remaining := req.Today.DaysUntil(computed)

	if computed.IsWeekend() {
		notes = append(notes, fmt.Sprintf("deadline falls on a %s", computed.Weekday()))
	}
	if remaining < 0 {
		notes = append(notes, fmt.Sprintf("overdue by %d days", -remaining))
	}

	return &Computation{
		StartDate:             req.Start,
		TermTypeID:            tt.ID,
		TermLabel:             tt.Label,
		Category:              tt.Category,
		DayCount:              tt.DayCount,
		RawEndDate:            rawEnd,
		ComputedDate:          computed,
		Today:                 req.Today,
		DaysRemaining:         remaining,
		SuspensionDaysApplied: susp.SuspendedDays,
		Urgent:                remaining >= 0 && remaining <= UrgentWindow,
		Notes:                 notes,
	}, nil
}

// resolve returns the term type with its day count filled in.
func (c *Calculator) resolve(id string, customDays *int) (term.TermType, []string, error) {
	var notes []string

	tt, err := c.registry.Lookup(id)
	switch {
	case err != nil && customDays == nil:
		return term.TermType{}, nil, err
	case err != nil:
		tt = term.TermType{ID: id, Label: id, Category: term.CategoryGenerico}
		notes = append(notes, fmt.Sprintf("unknown term type %q computed as a custom term", id))
	}

	switch {
	case tt.IsVariable() && customDays == nil:
		return term.TermType{}, nil, fmt.Errorf("%w: term type %q needs a custom day count", ErrInvalidDayCount, tt.ID)
	case tt.IsVariable():
		tt.DayCount = *customDays
	case customDays != nil && *customDays != tt.DayCount:
		notes = append(notes, fmt.Sprintf("custom day count %d ignored for fixed term", *customDays))
	}

	if tt.DayCount < MinDays || tt.DayCount > MaxDays {
		return term.TermType{}, nil, fmt.Errorf("%w: got %d", ErrInvalidDayCount, tt.DayCount)
	}

	notes = append([]string{fmt.Sprintf("%s: %d days", tt.Label, tt.DayCount)}, notes...)
	return tt, notes, nil
}
