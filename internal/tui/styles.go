package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/termini/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Title and weekday row
	TitleStyle         lipgloss.Style
	SummaryStyle       lipgloss.Style
	DayHeaderStyle     lipgloss.Style
	WeekendHeaderStyle lipgloss.Style

	// Task lines, backgrounds are set per cell
	TaskStyle        lipgloss.Style
	TaskDoneStyle    lipgloss.Style
	TaskUrgentStyle  lipgloss.Style
	TaskOverdueStyle lipgloss.Style
	TaskMovingStyle  lipgloss.Style
	MorePreviewStyle lipgloss.Style

	// Footer
	DetailStyle lipgloss.Style
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style

	AppStyle lipgloss.Style
}

// cellKind selects the background of a calendar cell.
type cellKind int

const (
	cellCurrent cellKind = iota
	cellOther
	cellPast
	cellCursor
	cellMoveTarget
)

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	bg := lipgloss.NewStyle().Background(p.Bg)

	return &Styles{
		palette: p,

		TitleStyle:         bg.Foreground(p.Accent).Bold(true),
		SummaryStyle:       bg.Foreground(p.FgMuted),
		DayHeaderStyle:     bg.Foreground(p.Fg).Bold(true),
		WeekendHeaderStyle: bg.Foreground(p.FgMuted).Bold(true),

		TaskStyle:        lipgloss.NewStyle().Foreground(p.Fg),
		TaskDoneStyle:    lipgloss.NewStyle().Foreground(p.FgMuted).Strikethrough(true),
		TaskUrgentStyle:  lipgloss.NewStyle().Foreground(p.Urgent).Bold(true),
		TaskOverdueStyle: lipgloss.NewStyle().Foreground(p.Overdue).Bold(true),
		TaskMovingStyle:  lipgloss.NewStyle().Foreground(p.Warning).Italic(true),
		MorePreviewStyle: lipgloss.NewStyle().Foreground(p.FgMuted),

		DetailStyle: bg.Foreground(p.Fg),
		StatusStyle: bg.Foreground(p.Accent),
		ErrorStyle:  bg.Foreground(p.Overdue).Bold(true),
		HelpStyle:   bg.Foreground(p.FgMuted),
		PromptStyle: bg.Foreground(p.Fg),

		AppStyle: bg.Foreground(p.Fg),
	}
}

// cellBackground returns the background color for a cell kind.
func (s *Styles) cellBackground(kind cellKind) lipgloss.Color {
	switch kind {
	case cellOther:
		return s.palette.OtherBg
	case cellPast:
		return s.palette.PastBg
	case cellCursor:
		return s.palette.BgSelection
	case cellMoveTarget:
		return s.palette.MoveBg
	default:
		return s.palette.CurrentBg
	}
}

// cellStyle returns the block style of a cell.
func (s *Styles) cellStyle(kind cellKind) lipgloss.Style {
	fg := s.palette.Fg
	switch kind {
	case cellOther, cellPast:
		fg = s.palette.FgMuted
	case cellCursor:
		fg = s.palette.TextOnSelection
	case cellMoveTarget:
		fg = theme.Color(theme.TextOn(string(s.palette.MoveBg)))
	}
	return lipgloss.NewStyle().
		Background(s.cellBackground(kind)).
		Foreground(fg)
}

// dayNumberStyle returns the style of the day number in a cell.
func (s *Styles) dayNumberStyle(kind cellKind, today bool) lipgloss.Style {
	style := s.cellStyle(kind)
	if today {
		return style.Foreground(s.palette.Today).Bold(true).Underline(true)
	}
	return style
}

// selectedTaskStyle highlights the selected task line of the cursor cell.
func (s *Styles) selectedTaskStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(s.palette.TaskBg).
		Foreground(theme.Color(theme.TextOn(string(s.palette.TaskBg)))).
		Bold(true)
}

// helpKeyStyle and helpDescStyle style the bubbles help view.
func (s *Styles) helpKeyStyle() lipgloss.Style {
	return lipgloss.NewStyle().Background(s.palette.Bg).Foreground(s.palette.HelpKey)
}

func (s *Styles) helpDescStyle() lipgloss.Style {
	return lipgloss.NewStyle().Background(s.palette.Bg).Foreground(s.palette.HelpDesc)
}

func (s *Styles) colorBg() lipgloss.Color {
	return s.palette.Bg
}
