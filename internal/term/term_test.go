package term

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	r := Standard()

	tt, err := r.Lookup("termini_processuali_civili")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tt.DayCount != 90 {
		t.Errorf("expected 90 days, got %d", tt.DayCount)
	}
	if tt.Category != CategoryProcessuale {
		t.Errorf("expected Processuale, got %s", tt.Category)
	}

	if _, err := r.Lookup("unknown-id"); !errors.Is(err, ErrInvalidTermType) {
		t.Errorf("got error %v, want %v", err, ErrInvalidTermType)
	}
}

func TestGenericIsVariable(t *testing.T) {
	g, err := Standard().Lookup(GenericID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.IsVariable() {
		t.Error("generic term type should be variable")
	}
	if g.Category != CategoryGenerico {
		t.Errorf("expected Generico, got %s", g.Category)
	}

	for _, tt := range Standard().List() {
		if tt.ID != GenericID && tt.IsVariable() {
			t.Errorf("%s should have a fixed day count", tt.ID)
		}
	}
}

func TestList_GroupedByCategory(t *testing.T) {
	list := Standard().List()
	if len(list) != Standard().Len() {
		t.Fatalf("List returned %d types, registry has %d", len(list), Standard().Len())
	}

	// Once a category has been left it must not come back.
	closed := make(map[Category]bool)
	var current Category
	for _, tt := range list {
		if tt.Category != current {
			if closed[tt.Category] {
				t.Fatalf("category %s appears in two groups", tt.Category)
			}
			if current != "" {
				closed[current] = true
			}
			current = tt.Category
		}
	}

	// procedimento_semplificato is registered after separazione_divorzio but
	// belongs to the first category, so it is pulled forward.
	want := []string{
		"termini_processuali_civili",
		"memorie_repliche",
		"procedimento_semplificato",
		"termini_183_190",
		"separazione_divorzio",
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, list[i].ID, id)
		}
	}
}

func TestCategories(t *testing.T) {
	cats := Standard().Categories()
	want := []Category{
		CategoryProcessuale,
		CategoryFamiglia,
		CategoryEsecuzione,
		CategoryImpugnazione,
		CategoryDeposito,
		CategoryVarie,
		CategoryGenerico,
	}
	if len(cats) != len(want) {
		t.Fatalf("got %d categories, want %d", len(cats), len(want))
	}
	for i, c := range want {
		if cats[i].Category != c {
			t.Errorf("position %d: got %s, want %s", i, cats[i].Category, c)
		}
		if cats[i].Color == "" || cats[i].Label == "" {
			t.Errorf("category %s is missing display attributes", c)
		}
	}
}

func TestCategoryInfo_Unknown(t *testing.T) {
	info := Category("Udienza").Info()
	if info.Label != "Udienza" {
		t.Errorf("expected label to fall back to the raw name, got %q", info.Label)
	}
	if info.Color != unknownCategory.Color {
		t.Errorf("expected neutral colour, got %q", info.Color)
	}
	if Category("Udienza").Valid() {
		t.Error("Udienza is not a catalogue category")
	}
	if Category("").Info().Label != unknownCategory.Label {
		t.Error("empty category should use the fallback label")
	}
}

func TestSearch(t *testing.T) {
	r := Standard()

	got := r.Search("IMPUGNAZIONI")
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}
	for _, tt := range got {
		if tt.Category != CategoryImpugnazione {
			t.Errorf("unexpected match %s", tt.ID)
		}
	}

	if got := r.Search("ctu"); len(got) != 1 || got[0].ID != "deposito_ctu" {
		t.Errorf("expected deposito_ctu, got %v", got)
	}
	if got := r.Search("  "); len(got) != r.Len() {
		t.Errorf("blank query should return everything, got %d", len(got))
	}
	if got := r.Search("nothing matches this"); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestNewRegistry_Errors(t *testing.T) {
	tests := []struct {
		name  string
		types []TermType
	}{
		{"empty id", []TermType{{DayCount: 3}}},
		{"duplicate", []TermType{{ID: "a", DayCount: 1}, {ID: "a", DayCount: 2}}},
		{"fixed type without days", []TermType{{ID: "a"}}},
		{"negative days", []TermType{{ID: "a", DayCount: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.types); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
