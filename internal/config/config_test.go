package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/termini/internal/dateutil"
	"github.com/javiermolinar/termini/internal/deadline"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Deadline.Suspension != SuspensionRecess {
		t.Errorf("expected suspension recess, got %s", cfg.Deadline.Suspension)
	}
	if cfg.Deadline.RecessStart != "08-01" || cfg.Deadline.RecessEnd != "08-31" {
		t.Errorf("expected August recess, got %s..%s", cfg.Deadline.RecessStart, cfg.Deadline.RecessEnd)
	}
	if !cfg.Calendar.IncludeWeekend {
		t.Error("expected weekend included by default")
	}
	if cfg.UI.NoColor {
		t.Error("expected colour enabled by default")
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("expected ollama provider by default, got %s", cfg.LLM.Provider)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Deadline.Suspension != SuspensionRecess {
		t.Errorf("expected default suspension, got %s", cfg.Deadline.Suspension)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[deadline]
suspension = "recess"
recess_start = "08-05"
recess_end = "08-20"

[calendar]
include_weekend = false

[storage]
db_path = "/tmp/test.db"

[ui]
no_color = true
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Deadline.RecessStart != "08-05" || cfg.Deadline.RecessEnd != "08-20" {
		t.Errorf("got recess %s..%s", cfg.Deadline.RecessStart, cfg.Deadline.RecessEnd)
	}
	if cfg.Calendar.IncludeWeekend {
		t.Error("expected include_weekend false")
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if !cfg.UI.NoColor {
		t.Error("expected no_color true")
	}
	// Unset keys keep their defaults.
	if cfg.UI.Theme != "mocha" {
		t.Errorf("expected default theme, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[deadline\nsuspension ="), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv("TERMINI_SUSPENSION", "none")
	t.Setenv("TERMINI_INCLUDE_WEEKEND", "false")
	t.Setenv("TERMINI_DB_PATH", "/custom/path.db")
	t.Setenv("TERMINI_NO_COLOR", "1")
	t.Setenv("TERMINI_UI_THEME", "latte")

	cfg, err := LoadFrom("/nonexistent/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Deadline.Suspension != SuspensionNone {
		t.Errorf("expected suspension none, got %s", cfg.Deadline.Suspension)
	}
	if cfg.Calendar.IncludeWeekend {
		t.Error("expected include_weekend false from env")
	}
	if cfg.Storage.DBPath != "/custom/path.db" {
		t.Errorf("expected db_path /custom/path.db, got %s", cfg.Storage.DBPath)
	}
	if !cfg.UI.NoColor {
		t.Error("expected no_color from env")
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_LLM(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := `
[llm]
provider = "lmstudio"
model = "mistral-7b"
base_url = "http://127.0.0.1:1234/v1"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := LLMConfig{Provider: "lmstudio", Model: "mistral-7b", BaseURL: "http://127.0.0.1:1234/v1"}
	if cfg.LLM != want {
		t.Errorf("got %+v, want %+v", cfg.LLM, want)
	}

	t.Setenv("TERMINI_LLM_PROVIDER", "ollama")
	t.Setenv("TERMINI_LLM_MODEL", "qwen2.5")
	t.Setenv("TERMINI_LLM_BASE_URL", "http://gpu:11434")
	cfg, err = LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = LLMConfig{Provider: "ollama", Model: "qwen2.5", BaseURL: "http://gpu:11434"}
	if cfg.LLM != want {
		t.Errorf("env overrides: got %+v, want %+v", cfg.LLM, want)
	}
}

func TestLoadFrom_EnvRecessWindow(t *testing.T) {
	t.Setenv("TERMINI_RECESS_START", "07-15")
	t.Setenv("TERMINI_RECESS_END", "08-15")

	cfg, err := LoadFrom("/nonexistent/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Deadline.RecessStart != "07-15" || cfg.Deadline.RecessEnd != "08-15" {
		t.Errorf("got recess %s..%s", cfg.Deadline.RecessStart, cfg.Deadline.RecessEnd)
	}
}

func TestLoadFrom_InvalidEnvBool(t *testing.T) {
	t.Setenv("TERMINI_INCLUDE_WEEKEND", "sometimes")

	if _, err := LoadFrom("/nonexistent/config.toml"); err == nil {
		t.Error("expected error for invalid boolean")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"no suspension", func(c *Config) { c.Deadline.Suspension = "none" }, false},
		{"upper case policy", func(c *Config) { c.Deadline.Suspension = "RECESS" }, false},
		{"unknown policy", func(c *Config) { c.Deadline.Suspension = "holidays" }, true},
		{"bad recess start", func(c *Config) { c.Deadline.RecessStart = "8-1" }, true},
		{"bad recess end", func(c *Config) { c.Deadline.RecessEnd = "08-32" }, true},
		{"wrapping window", func(c *Config) {
			c.Deadline.RecessStart = "12-23"
			c.Deadline.RecessEnd = "01-06"
		}, true},
		{"bad window ignored without recess", func(c *Config) {
			c.Deadline.Suspension = "none"
			c.Deadline.RecessStart = "nonsense"
		}, false},
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }, true},
		{"llm provider any case", func(c *Config) { c.LLM.Provider = "Groq" }, false},
		{"empty llm provider", func(c *Config) { c.LLM.Provider = "" }, false},
		{"unknown llm provider", func(c *Config) { c.LLM.Provider = "watsonx" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSuspensionRule(t *testing.T) {
	cfg := Default()
	rule, err := cfg.SuspensionRule()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rule != deadline.DefaultRecess() {
		t.Errorf("expected default recess, got %v", rule.Name())
	}

	start := dateutil.MustParse("2025-07-15")
	got := rule.Apply(start, start.AddDays(90))
	if got.SuspendedDays != 31 {
		t.Errorf("expected 31 suspended days, got %d", got.SuspendedDays)
	}

	cfg.Deadline.Suspension = SuspensionNone
	rule, err = cfg.SuspensionRule()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := rule.(deadline.NoSuspension); !ok {
		t.Errorf("expected NoSuspension, got %T", rule)
	}

	cfg.Deadline.Suspension = "other"
	if _, err := cfg.SuspensionRule(); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot get home dir")
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.toml")

	cfg := Default()
	cfg.Deadline.Suspension = SuspensionNone
	cfg.Calendar.IncludeWeekend = false
	cfg.Storage.DBPath = "/tmp/saved.db"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if loaded.Deadline.Suspension != SuspensionNone {
		t.Errorf("expected suspension none, got %s", loaded.Deadline.Suspension)
	}
	if loaded.Calendar.IncludeWeekend {
		t.Error("expected include_weekend false")
	}
	if loaded.Storage.DBPath != "/tmp/saved.db" {
		t.Errorf("expected db_path /tmp/saved.db, got %s", loaded.Storage.DBPath)
	}
}
