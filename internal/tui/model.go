// Package tui provides the interactive month calendar of termini.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/termini/internal/config"
	"github.com/javiermolinar/termini/internal/dateutil"
	"github.com/javiermolinar/termini/internal/deadline"
	"github.com/javiermolinar/termini/internal/task"
	"github.com/javiermolinar/termini/internal/tui/commands"
	"github.com/javiermolinar/termini/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMove        // Relocating the selected task
	ModePrompt
)

func (m Mode) String() string {
	switch m {
	case ModeMove:
		return "move"
	case ModePrompt:
		return "prompt"
	default:
		return "normal"
	}
}

const statusTTL = 3 * time.Second

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store     task.Store
	relocator *task.Relocator
	calc      *deadline.Calculator
	config    *config.Config
	now       func() time.Time

	// Theme and styles
	theme  *theme.Theme
	styles *Styles
	keys   keyMap
	help   help.Model

	// Calendar state
	anchor   dateutil.Date // first of the displayed month
	cursor   dateutil.Date
	grid     *task.MonthGrid
	counters task.Counters
	selected int // index into the cursor day's tasks, -1 when it has none
	mode     Mode
	loading  bool

	// Move mode
	moving   *task.Task
	moveFrom dateutil.Date

	// Task to select once the next month load arrives
	pendingSelectID string

	// Last deadline computed from the prompt
	lastComputation *deadline.Computation

	// Components
	prompt textinput.Model

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Error state
	err error
}

// New creates a new TUI model. A nil calc uses the standard terms with
// the configured suspension rule; a nil now uses time.Now.
func New(store task.Store, cfg *config.Config, calc *deadline.Calculator, now func() time.Time) *Model {
	if cfg == nil {
		cfg = config.Default()
	}
	if now == nil {
		now = time.Now
	}
	if calc == nil {
		rule, err := cfg.SuspensionRule()
		if err != nil {
			rule = nil
		}
		calc = deadline.NewCalculator(nil, rule)
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "/deadline ..."
	ti.CharLimit = 256

	// Load theme from config
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		// Fallback to mocha on error
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	h := help.New()
	h.Styles.ShortKey = styles.helpKeyStyle()
	h.Styles.ShortDesc = styles.helpDescStyle()
	h.Styles.ShortSeparator = styles.helpDescStyle()
	h.Styles.FullKey = styles.helpKeyStyle()
	h.Styles.FullDesc = styles.helpDescStyle()
	h.Styles.FullSeparator = styles.helpDescStyle()
	h.Styles.Ellipsis = styles.helpDescStyle()

	today := dateutil.FromTime(now())
	anchor := today.FirstOfMonth()

	return &Model{
		store:     store,
		relocator: task.NewRelocator(store),
		calc:      calc,
		config:    cfg,
		now:       now,
		theme:     t,
		styles:    styles,
		keys:      defaultKeyMap(),
		help:      h,
		anchor:    anchor,
		cursor:    today,
		grid:      task.BuildMonthGrid(anchor, nil, today),
		selected:  -1,
		mode:      ModeNormal,
		loading:   true,
		prompt:    ti,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadMonth(m.store, m.anchor, m.today())
}

// Run starts the TUI.
func Run(store task.Store, cfg *config.Config, calc *deadline.Calculator, now func() time.Time) error {
	model := New(store, cfg, calc, now)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) today() dateutil.Date {
	return dateutil.FromTime(m.now())
}

// cursorDay returns the grid cell under the cursor.
func (m Model) cursorDay() *task.CalendarDay {
	if m.grid == nil {
		return nil
	}
	return m.grid.DayByDate(m.cursor)
}

// cursorTasks returns the tasks due on the cursor date.
func (m Model) cursorTasks() []*task.Task {
	day := m.cursorDay()
	if day == nil {
		return nil
	}
	return day.Tasks
}

// selectedTask returns the selected task of the cursor day, or nil.
func (m Model) selectedTask() *task.Task {
	tasks := m.cursorTasks()
	if m.selected < 0 || m.selected >= len(tasks) {
		return nil
	}
	return tasks[m.selected]
}

// clampSelection keeps the selection inside the cursor day's tasks,
// selecting the first task when the current index is out of range.
func (m *Model) clampSelection() {
	n := len(m.cursorTasks())
	switch {
	case n == 0:
		m.selected = -1
	case m.selected < 0 || m.selected >= n:
		m.selected = 0
	}
}

// selectByID selects the task with the given id if it is due on the
// cursor date.
func (m *Model) selectByID(id string) bool {
	for i, t := range m.cursorTasks() {
		if t.ID == id {
			m.selected = i
			return true
		}
	}
	return false
}

// Mode returns the current interaction mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Cursor returns the date under the cursor.
func (m Model) Cursor() dateutil.Date {
	return m.cursor
}
