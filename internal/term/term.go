// Package term defines the catalogue of deadline term types.
package term

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTermType is returned when a term type id is not registered.
var ErrInvalidTermType = errors.New("invalid term type")

// GenericID is the id of the term type whose day count is supplied by the caller.
const GenericID = "termini_generici"

// Category groups term types by the kind of proceeding.
type Category string

const (
	CategoryProcessuale  Category = "Processuale"
	CategoryFamiglia     Category = "Famiglia"
	CategoryEsecuzione   Category = "Esecuzione"
	CategoryImpugnazione Category = "Impugnazione"
	CategoryDeposito     Category = "Deposito"
	CategoryVarie        Category = "Varie"
	CategoryGenerico     Category = "Generico"
)

// CategoryInfo holds the display attributes of a category.
type CategoryInfo struct {
	Category Category
	Label    string
	Color    string // hex foreground
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryProcessuale:  {CategoryProcessuale, "Processuale", "#1E40AF"},
	CategoryFamiglia:     {CategoryFamiglia, "Famiglia", "#9D174D"},
	CategoryEsecuzione:   {CategoryEsecuzione, "Esecuzione", "#9A3412"},
	CategoryImpugnazione: {CategoryImpugnazione, "Impugnazione", "#991B1B"},
	CategoryDeposito:     {CategoryDeposito, "Deposito", "#166534"},
	CategoryVarie:        {CategoryVarie, "Varie", "#1F2937"},
	CategoryGenerico:     {CategoryGenerico, "Generico", "#6B21A8"},
}

// unknownCategory is used for categories outside the catalogue.
var unknownCategory = CategoryInfo{Label: "Altro", Color: "#1F2937"}

// Info returns the display attributes of c.
// Unknown categories get a neutral grey.
func (c Category) Info() CategoryInfo {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	info := unknownCategory
	info.Category = c
	if c != "" {
		info.Label = string(c)
	}
	return info
}

// Valid returns true if c is one of the catalogue categories.
func (c Category) Valid() bool {
	_, ok := categoryInfo[c]
	return ok
}

// TermType is a named rule mapping a start date to a deadline.
// DayCount is zero for the generic type, which takes a caller-supplied count.
type TermType struct {
	ID          string
	Label       string
	DayCount    int
	Category    Category
	Description string
}

// IsVariable returns true if the term type has no fixed day count.
func (t TermType) IsVariable() bool {
	return t.DayCount == 0
}

// Registry is an immutable, ordered catalogue of term types.
type Registry struct {
	types []TermType
	byID  map[string]int
}

// NewRegistry builds a registry from types.
// Duplicate ids and fixed types without a positive day count are rejected.
func NewRegistry(types []TermType) (*Registry, error) {
	r := &Registry{
		types: make([]TermType, 0, len(types)),
		byID:  make(map[string]int, len(types)),
	}
	for _, t := range types {
		if t.ID == "" {
			return nil, errors.New("term type id cannot be empty")
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate term type %q", t.ID)
		}
		if t.DayCount < 0 || (t.DayCount == 0 && t.ID != GenericID) {
			return nil, fmt.Errorf("term type %q: day count must be at least 1", t.ID)
		}
		r.byID[t.ID] = len(r.types)
		r.types = append(r.types, t)
	}
	return r, nil
}

// Lookup returns the term type registered under id.
func (r *Registry) Lookup(id string) (TermType, error) {
	i, ok := r.byID[id]
	if !ok {
		return TermType{}, fmt.Errorf("%w: %q", ErrInvalidTermType, id)
	}
	return r.types[i], nil
}

// List returns all term types grouped by category.
// Categories appear in order of first registration and types keep their
// registration order within a category.
func (r *Registry) List() []TermType {
	var order []Category
	groups := make(map[Category][]TermType)
	for _, t := range r.types {
		if _, seen := groups[t.Category]; !seen {
			order = append(order, t.Category)
		}
		groups[t.Category] = append(groups[t.Category], t)
	}

	result := make([]TermType, 0, len(r.types))
	for _, c := range order {
		result = append(result, groups[c]...)
	}
	return result
}

// Categories returns the categories present in the registry, in List order.
func (r *Registry) Categories() []CategoryInfo {
	seen := make(map[Category]bool)
	var result []CategoryInfo
	for _, t := range r.types {
		if seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		result = append(result, t.Category.Info())
	}
	return result
}

// Search returns the term types whose id, label or description contains
// query, case-insensitively, in List order.
func (r *Registry) Search(query string) []TermType {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return r.List()
	}
	var result []TermType
	for _, t := range r.List() {
		if strings.Contains(strings.ToLower(t.ID), q) ||
			strings.Contains(strings.ToLower(t.Label), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			result = append(result, t)
		}
	}
	return result
}

// Len returns the number of registered term types.
func (r *Registry) Len() int {
	return len(r.types)
}
