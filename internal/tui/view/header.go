package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/termini/internal/task"
)

// MonthTitle returns the title of a month page, e.g. "November 2025".
func MonthTitle(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month, year)
}

// WeekdayLabels returns the Monday-first column labels, long names when
// the column is wide enough.
func WeekdayLabels(colWidth int) []string {
	labels := make([]string, task.DaysPerWeek)
	for i := range labels {
		name := task.WeekdayName(i)
		if len(name)+1 > colWidth {
			name = task.WeekdayShortName(i)
		}
		labels[i] = name
	}
	return labels
}

// HeaderState holds what is needed to render the header.
type HeaderState struct {
	InnerW       int
	ColWidth     int
	Title        string
	Summary      string
	TitleStyle   lipgloss.Style
	SummaryStyle lipgloss.Style
	DayStyle     lipgloss.Style
	WeekendStyle lipgloss.Style
	Bg           lipgloss.Color
}

// RenderHeader renders the title line and the weekday row.
func RenderHeader(state HeaderState) string {
	title := state.TitleStyle.Render(state.Title)
	if state.Summary != "" {
		gap := state.InnerW - lipgloss.Width(title) - lipgloss.Width(state.Summary) - 1
		if gap > 0 {
			title += strings.Repeat(" ", gap) + state.SummaryStyle.Render(state.Summary)
		}
	}
	titleLine := PadLinesWithBackground(Truncate(title, state.InnerW), state.InnerW, 1, state.Bg)

	labels := WeekdayLabels(state.ColWidth)
	cols := make([]string, len(labels))
	for i, l := range labels {
		style := state.DayStyle
		if i >= task.WorkWeekDays {
			style = state.WeekendStyle
		}
		cols[i] = style.Width(state.ColWidth).Render(Truncate(l, state.ColWidth))
	}
	days := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	return lipgloss.JoinVertical(lipgloss.Left, titleLine, days)
}
