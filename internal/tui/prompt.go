package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/termini/internal/dateutil"
	"github.com/javiermolinar/termini/internal/deadline"
	"github.com/javiermolinar/termini/internal/task"
	"github.com/javiermolinar/termini/internal/tui/commands"
	"github.com/javiermolinar/termini/internal/tui/input"
	"github.com/javiermolinar/termini/internal/tui/view"
)

var promptCommands = []input.PromptCommand{
	{
		Name:        "/deadline",
		Usage:       "<start> <term-id> [days]",
		Description: "Compute a deadline and jump to it",
	},
	{
		Name:        "/add",
		Usage:       "<title>",
		Description: "Add a task on the selected day",
	},
	{
		Name:        "/goto",
		Usage:       "<date>",
		Description: "Jump to a date",
	},
	{
		Name:        "/done",
		Description: "Toggle the selected task",
	},
	{
		Name:        "/delete",
		Description: "Delete the selected task",
	},
	{
		Name:        "/copy",
		Description: "Copy the selected date",
	},
	{
		Name:        "/help",
		Description: "Show the key bindings",
	},
	{
		Name:        "/quit",
		Description: "Leave the calendar",
	},
}

const promptMaxLines = 6

func (m Model) promptLines(contentWidth int) []string {
	state := view.PromptState{
		Value:      m.prompt.Value(),
		Cursor:     m.promptCursor(),
		ModePrompt: m.mode == ModePrompt,
	}
	return view.PromptLines(state, contentWidth, promptCommands)
}

func (m Model) promptCursor() string {
	if m.mode == ModePrompt {
		return "_"
	}
	return ""
}

// handlePromptSubmit runs a submitted prompt line. Text without a leading
// slash adds a task with that title.
func (m Model) handlePromptSubmit(value string) (tea.Model, tea.Cmd) {
	p := input.Parse(value)

	switch p.Command {
	case "":
		if p.Rest == "" {
			return m, nil
		}
		next := m.addTask(strings.Join(p.Args, " "))
		return m, next

	case "/add":
		next := m.addTask(strings.Join(p.Args, " "))
		return m, next

	case "/deadline":
		req, err := m.deadlineRequest(p.Args)
		if err != nil {
			next := m.setStatus(err.Error())
			return m, next
		}
		return m, commands.ComputeDeadline(m.calc, req)

	case "/goto":
		if len(p.Args) != 1 {
			next := m.setStatus("Usage: /goto <date>")
			return m, next
		}
		date, err := dateutil.ParseRelative(p.Args[0], m.today())
		if err != nil {
			next := m.setStatus(fmt.Sprintf("Invalid date %q", p.Args[0]))
			return m, next
		}
		next := m.jumpTo(date, "goto")
		return m, next

	case "/done":
		next := m.toggleDone()
		return m, next

	case "/delete":
		t := m.selectedTask()
		if t == nil {
			next := m.setStatus("No task selected")
			return m, next
		}
		return m, commands.DeleteTask(m.store, t)

	case "/copy":
		return m, commands.CopyToClipboard(m.cursor.FormatItalian())

	case "/help":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case "/quit":
		return m, tea.Quit
	}

	next := m.setStatus(fmt.Sprintf("Unknown command %s", p.Command))
	return m, next
}

// deadlineRequest builds a computation request from /deadline arguments.
func (m Model) deadlineRequest(args []string) (deadline.Request, error) {
	if len(args) < 2 || len(args) > 3 {
		return deadline.Request{}, errors.New("usage: /deadline <start> <term-id> [days]")
	}

	today := m.today()
	start, err := dateutil.ParseRelative(args[0], today)
	if err != nil {
		return deadline.Request{}, fmt.Errorf("invalid start date %q", args[0])
	}

	req := deadline.Request{Start: start, TermTypeID: args[1], Today: today}
	if len(args) == 3 {
		days, err := strconv.Atoi(args[2])
		if err != nil {
			return deadline.Request{}, fmt.Errorf("invalid day count %q", args[2])
		}
		req.CustomDays = &days
	}
	return req, nil
}

// addTask creates a task due on the cursor date. When the last computed
// deadline falls on that date the task inherits its category and the
// computation is archived with it.
func (m *Model) addTask(title string) tea.Cmd {
	c := m.lastComputation
	if c != nil && c.ComputedDate != m.cursor {
		c = nil
	}
	if title == "" && c != nil {
		title = c.TermLabel
	}

	t, err := task.New(title, m.cursor, "")
	if err != nil {
		return m.setStatus(fmt.Sprintf("Cannot add task: %v", err))
	}
	if c != nil {
		t.Category = string(c.Category)
		t.Notes = fmt.Sprintf("%s from %s", c.TermLabel, c.StartDate.FormatItalian())
	}
	return commands.SaveTask(m.store, t, c)
}
