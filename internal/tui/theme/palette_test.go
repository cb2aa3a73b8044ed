package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func darkBase() *Theme {
	return &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Today:       "#0000ff",
		Urgent:      "#ff8800",
		Overdue:     "#ff0044",
		Warning:     "#888888",
		HelpKey:     "#ff0000",
		HelpDesc:    "#aaaaaa",
	}
}

func TestNewPalette_CellShades(t *testing.T) {
	base := darkBase()
	palette := NewPalette(base)

	if palette.CurrentBg != lipgloss.Color(base.BgHighlight) {
		t.Fatalf("CurrentBg = %q, want %q", palette.CurrentBg, base.BgHighlight)
	}
	if palette.OtherBg != lipgloss.Color(base.Bg) {
		t.Fatalf("OtherBg = %q, want %q", palette.OtherBg, base.Bg)
	}
	if palette.PastBg != lipgloss.Color(muteColor(base.BgHighlight)) {
		t.Fatalf("PastBg = %q, want %q", palette.PastBg, muteColor(base.BgHighlight))
	}
	if palette.MoveBg != lipgloss.Color(darkenColor(base.Warning)) {
		t.Fatalf("MoveBg = %q, want %q", palette.MoveBg, darkenColor(base.Warning))
	}
	if palette.TaskBg != lipgloss.Color(alternateShade(base.BgHighlight, false)) {
		t.Fatalf("TaskBg = %q, want %q", palette.TaskBg, alternateShade(base.BgHighlight, false))
	}
	if palette.HelpKey.Dark != base.HelpKey {
		t.Fatalf("HelpKey.Dark = %q, want %q", palette.HelpKey.Dark, base.HelpKey)
	}
}

func TestNewPalette_LightThemeBlendsMoveShade(t *testing.T) {
	base := &Theme{
		Bg:          "#f5f5f5",
		BgHighlight: "#eeeeee",
		BgSelection: "#e0e0e0",
		Fg:          "#222222",
		FgMuted:     "#555555",
		Accent:      "#2f6feb",
		Warning:     "#c2410c",
	}

	palette := NewPalette(base)
	if relativeLuminance(string(palette.MoveBg)) <= relativeLuminance(base.Warning) {
		t.Fatalf("MoveBg luminance = %f, want greater than Warning", relativeLuminance(string(palette.MoveBg)))
	}
}

func TestNewPalette_NilUsesMocha(t *testing.T) {
	palette := NewPalette(nil)
	mocha, err := Load("mocha")
	if err != nil {
		t.Fatalf("Load(mocha) unexpected error: %v", err)
	}
	if palette.Bg != lipgloss.Color(mocha.Bg) {
		t.Fatalf("Bg = %q, want %q", palette.Bg, mocha.Bg)
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := chooseTextColor(bg, lightText, darkText); got != darkText {
		t.Fatalf("chooseTextColor(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}

func TestTextOn(t *testing.T) {
	if got := TextOn("#1F2937"); got != "#ffffff" {
		t.Errorf("TextOn(dark) = %q, want white", got)
	}
	if got := TextOn("#FBBF24"); got != "#111827" {
		t.Errorf("TextOn(amber) = %q, want near black", got)
	}
}
