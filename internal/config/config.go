// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/termini/internal/deadline"
	"github.com/javiermolinar/termini/internal/llm"
)

// Suspension policy names.
const (
	SuspensionRecess = "recess"
	SuspensionNone   = "none"
)

// Config holds the application configuration.
type Config struct {
	Deadline DeadlineConfig `toml:"deadline"`
	Calendar CalendarConfig `toml:"calendar"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
	LLM      LLMConfig      `toml:"llm"`
}

// DeadlineConfig holds the suspension policy applied to every term.
type DeadlineConfig struct {
	Suspension  string `toml:"suspension"`   // "recess" or "none"
	RecessStart string `toml:"recess_start"` // "MM-DD"
	RecessEnd   string `toml:"recess_end"`   // "MM-DD"
}

// CalendarConfig holds calendar display settings.
type CalendarConfig struct {
	IncludeWeekend bool `toml:"include_weekend"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds terminal output settings.
type UIConfig struct {
	Theme   string `toml:"theme"` // "mocha", "latte"
	NoColor bool   `toml:"no_color"`
}

// LLMConfig holds the chat model used by the ask command.
type LLMConfig struct {
	Provider string `toml:"provider"` // "ollama", "lmstudio", "groq", "copilot"
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Deadline: DeadlineConfig{
			Suspension:  SuspensionRecess,
			RecessStart: "08-01",
			RecessEnd:   "08-31",
		},
		Calendar: CalendarConfig{
			IncludeWeekend: true,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		LLM: LLMConfig{
			Provider: llm.ProviderOllama,
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "termini.db"
	}
	return filepath.Join(home, ".local", "share", "termini", "termini.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "termini", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("TERMINI_SUSPENSION"); v != "" {
		cfg.Deadline.Suspension = v
	}
	if v := os.Getenv("TERMINI_RECESS_START"); v != "" {
		cfg.Deadline.RecessStart = v
	}
	if v := os.Getenv("TERMINI_RECESS_END"); v != "" {
		cfg.Deadline.RecessEnd = v
	}

	if v := os.Getenv("TERMINI_INCLUDE_WEEKEND"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TERMINI_INCLUDE_WEEKEND: %w", err)
		}
		cfg.Calendar.IncludeWeekend = b
	}

	if v := os.Getenv("TERMINI_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("TERMINI_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("TERMINI_NO_COLOR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TERMINI_NO_COLOR: %w", err)
		}
		cfg.UI.NoColor = b
	}

	if v := os.Getenv("TERMINI_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("TERMINI_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("TERMINI_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Deadline.Suspension) {
	case SuspensionNone:
	case SuspensionRecess:
		if _, err := c.recessRule(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("suspension must be %q or %q, got %q", SuspensionRecess, SuspensionNone, c.Deadline.Suspension)
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}

	if p := strings.ToLower(c.LLM.Provider); p != "" && !slices.Contains(llm.Providers(), p) {
		return fmt.Errorf("llm provider must be one of %s, got %q", strings.Join(llm.Providers(), ", "), c.LLM.Provider)
	}
	return nil
}

// SuspensionRule builds the configured suspension policy.
func (c *Config) SuspensionRule() (deadline.SuspensionRule, error) {
	switch strings.ToLower(c.Deadline.Suspension) {
	case SuspensionNone:
		return deadline.NoSuspension{}, nil
	case SuspensionRecess:
		return c.recessRule()
	default:
		return nil, fmt.Errorf("unknown suspension policy %q", c.Deadline.Suspension)
	}
}

func (c *Config) recessRule() (deadline.RecessRule, error) {
	from, err := deadline.ParseMonthDay(c.Deadline.RecessStart)
	if err != nil {
		return deadline.RecessRule{}, fmt.Errorf("recess_start: %w", err)
	}
	to, err := deadline.ParseMonthDay(c.Deadline.RecessEnd)
	if err != nil {
		return deadline.RecessRule{}, fmt.Errorf("recess_end: %w", err)
	}
	return deadline.NewRecessRule(from, to)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return string(data)
}
