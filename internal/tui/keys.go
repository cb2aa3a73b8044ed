package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings of normal mode.
type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Select    key.Binding
	Move      key.Binding
	Done      key.Binding
	Add       key.Binding
	Deadline  key.Binding
	Copy      key.Binding
	Prompt    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "day")),
		Right:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "day")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "week")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "week")),
		PrevMonth: key.NewBinding(key.WithKeys("[", "H", "pgup"), key.WithHelp("[", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("]", "L", "pgdown"), key.WithHelp("]", "next month")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Select:    key.NewBinding(key.WithKeys("tab", "enter"), key.WithHelp("tab", "next task")),
		Move:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Done:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "done")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Deadline:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compute")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy date")),
		Prompt:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Move, k.Done, k.Deadline, k.Prompt, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.PrevMonth, k.NextMonth, k.Today},
		{k.Select, k.Move, k.Done, k.Add},
		{k.Deadline, k.Copy, k.Prompt},
		{k.Help, k.Quit},
	}
}

// moveKeyMap is shown while a task is being moved.
type moveKeyMap struct {
	keyMap
	Confirm key.Binding
	Cancel  key.Binding
}

func newMoveKeyMap(k keyMap) moveKeyMap {
	return moveKeyMap{
		keyMap:  k,
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop here")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k moveKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Up, k.PrevMonth, k.NextMonth, k.Confirm, k.Cancel}
}

func (k moveKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// promptKeyMap is shown while the command prompt is open.
type promptKeyMap struct {
	Complete key.Binding
	Submit   key.Binding
	Cancel   key.Binding
}

func newPromptKeyMap() promptKeyMap {
	return promptKeyMap{
		Complete: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k promptKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Complete, k.Submit, k.Cancel}
}

func (k promptKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
