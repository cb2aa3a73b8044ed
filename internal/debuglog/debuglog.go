// Package debuglog writes JSON-lines debug events to a file when debug mode
// is enabled. Every function is a no-op otherwise.
package debuglog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/javiermolinar/termini/internal/dateutil"
	"github.com/javiermolinar/termini/internal/deadline"
	"github.com/javiermolinar/termini/internal/task"
)

// DefaultPath is the fixed path for debug logs.
const DefaultPath = "termini-debug.log"

// Logger writes structured entries, one JSON object per line.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	c   io.Closer
	seq int
	now func() time.Time
}

// New creates a Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{w: w, now: time.Now}
}

var std *Logger

// Init enables the package logger, writing to path (DefaultPath when empty).
// When enabled is false the package logger is disabled.
func Init(enabled bool, path string) error {
	if !enabled {
		std = nil
		return nil
	}
	if path == "" {
		path = DefaultPath
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	l := New(f)
	l.c = f
	std = l

	Event("DEBUG_START", map[string]any{
		"log_file": path,
		"time":     time.Now().Format(time.RFC3339),
	})
	return nil
}

// SetLogger replaces the package logger. A nil logger disables logging.
func SetLogger(l *Logger) {
	std = l
}

// Close writes a final entry and closes the log file.
func Close() {
	if std == nil {
		return
	}
	Event("DEBUG_END", map[string]any{
		"time": time.Now().Format(time.RFC3339),
	})
	if std.c != nil {
		_ = std.c.Close()
	}
	std = nil
}

// Enabled reports whether debug logging is on.
func Enabled() bool {
	return std != nil
}

// Event logs a named event with arbitrary fields.
func Event(name string, data map[string]any) {
	std.Log(name, data)
}

// Log writes a structured log entry.
func (l *Logger) Log(event string, data map[string]any) {
	if l == nil || l.w == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	entry := map[string]any{
		"seq":   l.seq,
		"ts":    l.now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(l.w, "%s\n", b)
}

// LogKeyPress logs a key press.
func LogKeyPress(key string) {
	if !Enabled() {
		return
	}
	Event("KEY_PRESS", map[string]any{"key": key})
}

// LogModeChange logs a TUI mode change.
func LogModeChange(from, to, reason string) {
	if !Enabled() {
		return
	}
	Event("MODE_CHANGE", map[string]any{
		"from":   from,
		"to":     to,
		"reason": reason,
	})
}

// LogCursorMove logs cursor movement on a calendar grid.
func LogCursorMove(date dateutil.Date, reason string) {
	if !Enabled() {
		return
	}
	Event("CURSOR_MOVE", map[string]any{
		"date":   date.Format(),
		"reason": reason,
	})
}

// LogComputation logs a deadline computation.
func LogComputation(c *deadline.Computation) {
	if !Enabled() || c == nil {
		return
	}
	Event("COMPUTATION", map[string]any{
		"start":          c.StartDate.Format(),
		"term_type":      c.TermTypeID,
		"day_count":      c.DayCount,
		"raw_end":        c.RawEndDate.Format(),
		"computed":       c.ComputedDate.Format(),
		"today":          c.Today.Format(),
		"days_remaining": c.DaysRemaining,
		"suspended_days": c.SuspensionDaysApplied,
		"urgent":         c.Urgent,
	})
}

// LogRelocation logs a task relocation.
func LogRelocation(r task.Relocation) {
	if !Enabled() || r.Task == nil {
		return
	}
	Event("RELOCATION", map[string]any{
		"task_id":        r.Task.ID,
		"title":          truncate(r.Task.Title, 30),
		"from":           r.From.Format(),
		"to":             r.To.Format(),
		"rebuild_needed": r.RebuildNeeded,
	})
}

// LogGrid logs the tasks placed on a month grid.
func LogGrid(g *task.MonthGrid, action string) {
	if !Enabled() || g == nil {
		return
	}
	tasks := g.AllTasks()
	positions := make([]map[string]any, 0, len(tasks))
	for _, t := range tasks {
		positions = append(positions, map[string]any{
			"id":    t.ID,
			"title": truncate(t.Title, 20),
			"due":   t.DueDate.Format(),
		})
	}
	Event("MONTH_GRID", map[string]any{
		"action": action,
		"month":  fmt.Sprintf("%d-%02d", g.Year, int(g.Month)),
		"tasks":  positions,
	})
}

// LogError logs an error.
func LogError(context string, err error) {
	if !Enabled() || err == nil {
		return
	}
	Event("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
