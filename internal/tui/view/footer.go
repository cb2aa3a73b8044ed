package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterModel contains content and styles for rendering the footer.
type FooterModel struct {
	InnerW      int
	FooterH     int
	DetailLines []string
	StatusText  string
	HelpText    string
	PromptLines []string
	ShowPrompt  bool
	DetailStyle lipgloss.Style
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style
	Bg          lipgloss.Color
}

// RenderFooter renders the day detail, prompt, status and help lines. The
// detail is clamped so the status and help lines always fit.
func RenderFooter(model FooterModel) string {
	if model.FooterH <= 0 {
		return ""
	}

	var tail []string
	if model.ShowPrompt {
		for _, l := range model.PromptLines {
			tail = append(tail, footerLine(model.InnerW, model.PromptStyle, l))
		}
	}
	tail = append(tail,
		footerLine(model.InnerW, model.StatusStyle, model.StatusText),
		footerLine(model.InnerW, model.HelpStyle, model.HelpText),
	)
	if len(tail) > model.FooterH {
		tail = tail[len(tail)-model.FooterH:]
	}

	room := model.FooterH - len(tail)
	detail := ClampPromptLines(model.DetailLines, room, model.InnerW)
	lines := make([]string, 0, model.FooterH)
	for _, l := range detail {
		lines = append(lines, footerLine(model.InnerW, model.DetailStyle, l))
	}
	lines = append(lines, tail...)

	return PlaceBox(model.InnerW, model.FooterH, lipgloss.Bottom, strings.Join(lines, "\n"), model.Bg)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := max(0, width-frameW)
	return style.Width(contentWidth).Render(Truncate(content, contentWidth))
}
