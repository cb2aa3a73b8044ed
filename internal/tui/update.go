package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/termini/internal/dateutil"
	"github.com/javiermolinar/termini/internal/debuglog"
	"github.com/javiermolinar/termini/internal/task"
	"github.com/javiermolinar/termini/internal/tui/commands"
	"github.com/javiermolinar/termini/internal/tui/input"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case commands.MonthLoadedMsg:
		if msg.Anchor != m.anchor {
			// A newer navigation superseded this load.
			return m, nil
		}
		m.grid = msg.Grid
		m.counters = msg.Counters
		m.loading = false
		if m.pendingSelectID != "" {
			m.selectByID(m.pendingSelectID)
			m.pendingSelectID = ""
		}
		m.clampSelection()
		debuglog.LogGrid(msg.Grid, "tui_load")
		return m, nil

	case commands.RelocatedMsg:
		r := msg.Relocation
		debuglog.LogRelocation(r)
		if !r.Moved() {
			next := m.setStatus(fmt.Sprintf("%s is already due %s", r.Task.Title, r.To.FormatItalian()))
			return m, next
		}
		m.pendingSelectID = r.Task.ID
		status := m.setStatus(fmt.Sprintf("Moved %s: %s → %s", r.Task.Title, r.From.FormatItalian(), r.To.FormatItalian()))
		if !r.RebuildNeeded {
			return m, status
		}
		next := tea.Batch(status, m.reload())
		return m, next

	case commands.TaskSavedMsg:
		text := "Saved " + msg.Task.Title
		if msg.ArchiveID > 0 {
			text += fmt.Sprintf(" (computation #%d)", msg.ArchiveID)
			m.lastComputation = nil
		}
		m.pendingSelectID = msg.Task.ID
		next := tea.Batch(m.setStatus(text), m.reload())
		return m, next

	case commands.TaskDeletedMsg:
		next := tea.Batch(m.setStatus("Deleted "+msg.Task.Title), m.reload())
		return m, next

	case commands.DeadlineComputedMsg:
		c := msg.Computation
		debuglog.LogComputation(c)
		m.lastComputation = c
		cmd := m.jumpTo(c.ComputedDate, "deadline")
		status := m.setStatus(fmt.Sprintf("%s: %s (%s) · /add to create a task",
			c.TermLabel, c.ComputedDate.FormatItalian(), remainingLabel(c.DaysRemaining)))
		return m, tea.Batch(status, cmd)

	case commands.CopiedMsg:
		next := m.setStatus("Copied " + msg.Text)
		return m, next

	case commands.ErrMsg:
		debuglog.LogError("tui", msg.Err)
		m.err = msg.Err
		m.loading = false
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = m.now().Add(5 * time.Second)
		return m, nil

	case commands.StatusMsgCmd:
		next := m.setStatus(msg.Msg)
		return m, next

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.err = nil
		}
		return m, nil
	}

	// Handle prompt input when in prompt mode
	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	return m, nil
}

// setStatus shows a temporary status message.
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusMsg = text
	m.err = nil
	m.statusTime = m.now().Add(statusTTL)
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// reload loads the displayed month again.
func (m *Model) reload() tea.Cmd {
	m.loading = true
	return commands.LoadMonth(m.store, m.anchor, m.today())
}

// jumpTo moves the cursor to date, switching month when needed.
func (m *Model) jumpTo(date dateutil.Date, reason string) tea.Cmd {
	m.cursor = date
	debuglog.LogCursorMove(date, reason)

	m.selected = -1

	anchor := date.FirstOfMonth()
	if anchor == m.anchor {
		m.clampSelection()
		return nil
	}

	m.anchor = anchor
	m.grid = task.BuildMonthGrid(anchor, nil, m.today())
	return m.reload()
}

func (m *Model) setMode(mode Mode, reason string) {
	if m.mode == mode {
		return
	}
	debuglog.LogModeChange(m.mode.String(), mode.String(), reason)
	m.mode = mode
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	debuglog.LogKeyPress(msg.String())

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeMove:
		return m.handleMoveKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// cursorKey applies the navigation bindings shared by normal and move mode.
func (m *Model) cursorKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Left):
		return m.jumpTo(m.cursor.AddDays(-1), "left"), true
	case key.Matches(msg, m.keys.Right):
		return m.jumpTo(m.cursor.AddDays(1), "right"), true
	case key.Matches(msg, m.keys.Up):
		return m.jumpTo(m.cursor.AddDays(-task.DaysPerWeek), "up"), true
	case key.Matches(msg, m.keys.Down):
		return m.jumpTo(m.cursor.AddDays(task.DaysPerWeek), "down"), true
	case key.Matches(msg, m.keys.PrevMonth):
		return m.jumpTo(m.cursor.AddMonths(-1), "prev_month"), true
	case key.Matches(msg, m.keys.NextMonth):
		return m.jumpTo(m.cursor.AddMonths(1), "next_month"), true
	case key.Matches(msg, m.keys.Today):
		return m.jumpTo(m.today(), "today"), true
	}
	return nil, false
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.cursorKey(msg); ok {
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if n := len(m.cursorTasks()); n > 0 {
			m.selected = (m.selected + 1) % n
		}
		return m, nil

	case key.Matches(msg, m.keys.Move):
		t := m.selectedTask()
		if t == nil {
			next := m.setStatus("No task to move on " + m.cursor.FormatItalian())
			return m, next
		}
		m.moving = t
		m.moveFrom = t.DueDate
		m.setMode(ModeMove, "move_started")
		return m, nil

	case key.Matches(msg, m.keys.Done):
		next := m.toggleDone()
		return m, next

	case key.Matches(msg, m.keys.Copy):
		return m, commands.CopyToClipboard(m.cursor.FormatItalian())

	case key.Matches(msg, m.keys.Add):
		return m.openPrompt("/add ")

	case key.Matches(msg, m.keys.Deadline):
		return m.openPrompt("/deadline " + m.cursor.Format() + " ")

	case key.Matches(msg, m.keys.Prompt):
		return m.openPrompt("/")
	}

	return m, nil
}

// handleMoveKeys handles keys in move mode. The cursor is the drop target.
func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.setMode(ModeNormal, "move_cancelled")
		from := m.moveFrom
		m.moving = nil
		cmd := m.jumpTo(from, "move_cancelled")
		next := tea.Batch(cmd, m.setStatus("Move cancelled"))
		return m, next

	case "enter":
		t := m.moving
		m.moving = nil
		m.setMode(ModeNormal, "move_confirmed")
		return m, commands.Relocate(m.relocator, t.ID, m.cursor)
	}

	if cmd, ok := m.cursorKey(msg); ok {
		return m, cmd
	}
	return m, nil
}

// handlePromptKeys handles keys in prompt mode.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt("prompt_cancelled")
		return m, nil

	case "enter":
		value := m.prompt.Value()
		m.closePrompt("prompt_submitted")
		return m.handlePromptSubmit(value)

	case "tab":
		if completion, ok := input.PromptAutocomplete(m.prompt.Value(), promptCommands); ok {
			m.prompt.SetValue(completion)
			m.prompt.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) openPrompt(value string) (tea.Model, tea.Cmd) {
	m.setMode(ModePrompt, "prompt_opened")
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	m.prompt.Focus()
	return m, textinput.Blink
}

func (m *Model) closePrompt(reason string) {
	m.setMode(ModeNormal, reason)
	m.prompt.Blur()
	m.prompt.SetValue("")
}

// toggleDone flips the selected task between todo and done.
func (m *Model) toggleDone() tea.Cmd {
	t := m.selectedTask()
	if t == nil {
		return m.setStatus("No task selected")
	}
	updated := t.Clone()
	if updated.Status == task.StatusDone {
		updated.Status = task.StatusTodo
	} else {
		updated.Status = task.StatusDone
	}
	return commands.SaveTask(m.store, updated, nil)
}

// remainingLabel describes a day count relative to today.
func remainingLabel(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	default:
		return fmt.Sprintf("in %d days", days)
	}
}
