package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/termini/internal/deadline"
)

// Color definitions for consistent styling across the UI.
var (
	// Overdue: bold red, needs attention now
	colorOverdue = color.New(color.FgRed, color.Bold)

	// Urgent: yellow, within the urgent window
	colorUrgent = color.New(color.FgYellow)

	// Upcoming: green, nothing to worry about yet
	colorUpcoming = color.New(color.FgGreen)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Today in calendar tables
	colorToday = color.New(color.FgCyan, color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatStatus colours s according to a deadline status.
func formatStatus(status deadline.Status, s string) string {
	switch status {
	case deadline.StatusOverdue:
		return colorOverdue.Sprint(s)
	case deadline.StatusUrgent:
		return colorUrgent.Sprint(s)
	default:
		return colorUpcoming.Sprint(s)
	}
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatToday highlights the current day.
func formatToday(s string) string {
	return colorToday.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
