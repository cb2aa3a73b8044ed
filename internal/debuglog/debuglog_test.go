package debuglog

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/termini/internal/dateutil"
	"github.com/javiermolinar/termini/internal/task"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(New(&buf))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func entries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestDisabledIsNoop(t *testing.T) {
	SetLogger(nil)
	if Enabled() {
		t.Fatal("expected logging disabled")
	}
	// Must not panic.
	Event("X", nil)
	LogKeyPress("q")
	LogError("ctx", errors.New("boom"))
	LogRelocation(task.Relocation{})
	Close()
}

func TestEventSequence(t *testing.T) {
	buf := capture(t)

	Event("FIRST", map[string]any{"a": 1})
	LogKeyPress("enter")

	got := entries(t, buf)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0]["event"] != "FIRST" || got[0]["seq"] != float64(1) || got[0]["a"] != float64(1) {
		t.Errorf("unexpected first entry: %v", got[0])
	}
	if got[1]["event"] != "KEY_PRESS" || got[1]["key"] != "enter" || got[1]["seq"] != float64(2) {
		t.Errorf("unexpected second entry: %v", got[1])
	}
}

func TestLogRelocation(t *testing.T) {
	buf := capture(t)

	LogRelocation(task.Relocation{
		Task:          &task.Task{ID: "abc", Title: "A very long task title that will be truncated"},
		From:          dateutil.MustParse("2025-10-10"),
		To:            dateutil.MustParse("2025-10-20"),
		RebuildNeeded: true,
	})

	got := entries(t, buf)
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	e := got[0]
	if e["task_id"] != "abc" || e["from"] != "2025-10-10" || e["to"] != "2025-10-20" || e["rebuild_needed"] != true {
		t.Errorf("unexpected entry: %v", e)
	}
	if title := e["title"].(string); len([]rune(title)) != 30 || !strings.HasSuffix(title, "...") {
		t.Errorf("expected truncated title, got %q", title)
	}
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := Init(true, path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	LogError("loading", errors.New("boom"))
	Close()

	if Enabled() {
		t.Error("expected logging disabled after Close")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	got := entries(t, bytes.NewBuffer(data))
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	if got[0]["event"] != "DEBUG_START" || got[1]["event"] != "ERROR" || got[2]["event"] != "DEBUG_END" {
		t.Errorf("unexpected events: %v", got)
	}
	if got[1]["error"] != "boom" {
		t.Errorf("unexpected error field: %v", got[1])
	}
}

func TestInitDisabled(t *testing.T) {
	if err := Init(false, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Enabled() {
		t.Error("expected logging disabled")
	}
}
