package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/termini/internal/task"
	"github.com/javiermolinar/termini/internal/tui/view"
)

const (
	headerHeight    = 2
	minRowHeight    = 2
	minColWidth     = 4
	footerMinHeight = 3
)

// layout holds the sizes of one frame.
type layout struct {
	innerW   int
	colWidth int
	rowH     int
	footerH  int
}

// View renders the TUI.
func (m Model) View() string {
	return view.Render(view.ViewState{
		Width:            m.width,
		Height:           m.height,
		Content:          m.renderAppContent(),
		EmptyPlaceholder: "Loading...",
	})
}

func (m Model) computeLayout(detail, prompt int) (layout, bool) {
	colWidth := m.width / task.DaysPerWeek
	maxFooter := m.height - headerHeight - task.MonthRows*minRowHeight
	if colWidth < minColWidth || maxFooter < footerMinHeight {
		return layout{}, false
	}

	footerH := min(max(detail+prompt+2, footerMinHeight), maxFooter)
	gridH := m.height - headerHeight - footerH
	rowH := gridH / task.MonthRows
	footerH += gridH - rowH*task.MonthRows

	return layout{
		innerW:   m.width,
		colWidth: colWidth,
		rowH:     rowH,
		footerH:  footerH,
	}, true
}

func (m Model) renderAppContent() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	detail := m.detailLines()
	prompt := view.ClampPromptLines(m.promptLines(m.width), promptMaxLines, m.width)
	if m.mode != ModePrompt {
		prompt = nil
	}

	l, ok := m.computeLayout(len(detail), len(prompt))
	if !ok {
		return "Terminal too small"
	}

	header := view.RenderHeader(view.HeaderState{
		InnerW:       l.innerW,
		ColWidth:     l.colWidth,
		Title:        view.MonthTitle(m.anchor.Year, m.anchor.Month),
		Summary:      m.countersSummary(),
		TitleStyle:   m.styles.TitleStyle,
		SummaryStyle: m.styles.SummaryStyle,
		DayStyle:     m.styles.DayHeaderStyle,
		WeekendStyle: m.styles.WeekendHeaderStyle,
		Bg:           m.styles.colorBg(),
	})

	statusStyle := m.styles.StatusStyle
	if m.err != nil {
		statusStyle = m.styles.ErrorStyle
	}
	footer := view.RenderFooter(view.FooterModel{
		InnerW:      l.innerW,
		FooterH:     l.footerH,
		DetailLines: detail,
		StatusText:  m.statusText(),
		HelpText:    m.renderHelp(),
		PromptLines: prompt,
		ShowPrompt:  m.mode == ModePrompt,
		DetailStyle: m.styles.DetailStyle,
		StatusStyle: statusStyle,
		HelpStyle:   m.styles.HelpStyle,
		PromptStyle: m.styles.PromptStyle,
		Bg:          m.styles.colorBg(),
	})

	content := lipgloss.JoinVertical(lipgloss.Left, view.PadLinesWithBackground(header, l.innerW, headerHeight, m.styles.colorBg()), m.renderGrid(l), footer)
	app := m.styles.AppStyle.Render(content)
	return view.PadLinesWithBackground(app, m.width, m.height, m.styles.colorBg())
}

func (m Model) renderGrid(l layout) string {
	grid := m.grid
	if grid == nil {
		grid = task.BuildMonthGrid(m.anchor, nil, m.today())
	}

	rows := make([]string, task.MonthRows)
	for r := 0; r < task.MonthRows; r++ {
		cells := make([]string, task.DaysPerWeek)
		for c := 0; c < task.DaysPerWeek; c++ {
			cells[c] = m.renderCell(&grid.Cells[r][c], l.colWidth, l.rowH)
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		rows[r] = view.PadLinesWithBackground(row, l.innerW, l.rowH, m.styles.colorBg())
	}
	return strings.Join(rows, "\n")
}

func (m Model) cellKindFor(day *task.CalendarDay) cellKind {
	switch {
	case day.Date == m.cursor && m.mode == ModeMove:
		return cellMoveTarget
	case day.Date == m.cursor:
		return cellCursor
	case !day.IsCurrentPeriod:
		return cellOther
	case day.IsPast:
		return cellPast
	default:
		return cellCurrent
	}
}

func (m Model) renderCell(day *task.CalendarDay, width, height int) string {
	kind := m.cellKindFor(day)
	bg := m.styles.cellBackground(kind)
	base := m.styles.cellStyle(kind)

	lines := []string{m.styles.dayNumberStyle(kind, day.IsToday).Render(fmt.Sprintf(" %2d", day.DayNumber))}
	room := height - 1

	var entries []string
	if kind == cellMoveTarget && m.moving != nil {
		entries = append(entries, m.styles.TaskMovingStyle.Background(bg).Render("→ "+m.moving.Title))
	}
	for i, t := range day.Tasks {
		style := m.taskStyle(t).Background(bg)
		if kind == cellCursor && i == m.selected {
			style = m.styles.selectedTaskStyle()
		}
		if m.moving != nil && t.ID == m.moving.ID {
			style = m.styles.TaskMovingStyle.Background(bg)
		}
		entries = append(entries, base.Render(" ")+style.Render(statusSymbol(t)+" "+t.Title))
	}

	if len(entries) > room && room > 0 {
		hidden := len(entries) - room + 1
		entries = append(entries[:room-1], m.styles.MorePreviewStyle.Background(bg).Render(fmt.Sprintf(" +%d more", hidden)))
	}
	lines = append(lines, entries...)

	return view.RenderCell(lines, width, height, base)
}

// taskStyle colors a task line by how soon it is due.
func (m Model) taskStyle(t *task.Task) lipgloss.Style {
	if !t.IsOpen() {
		return m.styles.TaskDoneStyle
	}
	days := m.today().DaysUntil(t.DueDate)
	switch {
	case days < 0:
		return m.styles.TaskOverdueStyle
	case days <= 7:
		return m.styles.TaskUrgentStyle
	default:
		return m.styles.TaskStyle
	}
}

func statusSymbol(t *task.Task) string {
	if t.Status == task.StatusDone {
		return "✓"
	}
	return "○"
}

func (m Model) countersSummary() string {
	c := m.counters
	return fmt.Sprintf("%d overdue · %d today · %d tomorrow · %d this week", c.Overdue, c.Today, c.Tomorrow, c.ThisWeek)
}

// detailLines describes the cursor day below the grid.
func (m Model) detailLines() []string {
	if m.help.ShowAll {
		return strings.Split(m.help.FullHelpView(m.keys.FullHelp()), "\n")
	}

	tasks := m.cursorTasks()
	head := fmt.Sprintf("%s %s · %s", m.cursor.Weekday(),
		m.cursor.FormatItalian(), remainingLabel(m.today().DaysUntil(m.cursor)))
	switch len(tasks) {
	case 0:
		head += " · no tasks"
	case 1:
		head += " · 1 task"
	default:
		head += fmt.Sprintf(" · %d tasks", len(tasks))
	}
	lines := []string{head}

	for i, t := range tasks {
		marker := "  "
		if i == m.selected {
			marker = "› "
		}
		line := marker + statusSymbol(t) + " " + t.Title
		var extra []string
		for _, s := range []string{t.Practice, t.Client, t.Category} {
			if s != "" {
				extra = append(extra, s)
			}
		}
		if len(extra) > 0 {
			line += " (" + strings.Join(extra, ", ") + ")"
		}
		lines = append(lines, line)
	}

	if c := m.lastComputation; c != nil && c.ComputedDate == m.cursor {
		line := fmt.Sprintf("Deadline: %s from %s, %d days", c.TermLabel, c.StartDate.FormatItalian(), c.DayCount)
		if c.SuspensionDaysApplied > 0 {
			line += fmt.Sprintf(" +%d suspended", c.SuspensionDaysApplied)
		}
		lines = append(lines, line)
		for _, n := range c.Notes {
			lines = append(lines, "  "+n)
		}
	}
	return lines
}

func (m Model) statusText() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	switch {
	case m.mode == ModeMove && m.moving != nil:
		return fmt.Sprintf("Moving %s: %s → %s", m.moving.Title, m.moveFrom.FormatItalian(), m.cursor.FormatItalian())
	case m.loading:
		return "Loading..."
	}
	return ""
}

// renderHelp renders the help bar for the current mode.
func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = false
	var keys help.KeyMap = m.keys
	switch m.mode {
	case ModeMove:
		keys = newMoveKeyMap(m.keys)
	case ModePrompt:
		keys = newPromptKeyMap()
	}
	return h.View(keys)
}
