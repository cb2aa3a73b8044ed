package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/termini/internal/config"
	"github.com/javiermolinar/termini/internal/llm"
	"github.com/javiermolinar/termini/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  termini config
  termini config show`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runConfigInteractive()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			a.printf("# %s\n", a.configPath)
			a.printf("%s", a.config.String())
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", a.configPath)
			}
			if err := config.Default().SaveTo(a.configPath); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			a.printf("Created %s\n", a.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}

func (a *App) runConfigInteractive() error {
	a.printf("Config file: %s\n\n", a.configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(a.configPath)
	if os.IsNotExist(fileErr) {
		a.println("No config file found. Creating with default values...")
		if err := cfg.SaveTo(a.configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		a.printf("Created %s\n\n", a.configPath)
	}

	printConfig(a.out, cfg)

	reader := bufio.NewReader(a.in)
	if !promptYesNo(reader, a.out, "\nWould you like to edit the configuration?") {
		return nil
	}

	p := prompter{r: reader, w: a.out}
	cfg.Deadline.Suspension = p.choice("Suspension policy", cfg.Deadline.Suspension,
		[]string{config.SuspensionRecess, config.SuspensionNone})
	if cfg.Deadline.Suspension == config.SuspensionRecess {
		cfg.Deadline.RecessStart = p.value("Recess start (MM-DD)", cfg.Deadline.RecessStart)
		cfg.Deadline.RecessEnd = p.value("Recess end (MM-DD)", cfg.Deadline.RecessEnd)
	}
	cfg.Calendar.IncludeWeekend = p.boolean("Show weekend in week view", cfg.Calendar.IncludeWeekend)
	cfg.Storage.DBPath = p.value("Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = p.choice("UI theme", cfg.UI.Theme, theme.Available())
	cfg.UI.NoColor = p.boolean("Disable colour", cfg.UI.NoColor)

	provider := strings.ToLower(cfg.LLM.Provider)
	if provider == "" {
		provider = llm.ProviderOllama
	}
	cfg.LLM.Provider = p.choice("LLM provider", provider, llm.Providers())
	cfg.LLM.Model = p.value("LLM model (empty for the provider default)", cfg.LLM.Model)
	cfg.LLM.BaseURL = p.value("LLM base URL (empty for the provider default)", cfg.LLM.BaseURL)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(a.configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	a.println("\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintln(w, "Current configuration:")
	_, _ = fmt.Fprintln(w, "──────────────────────")
	_, _ = fmt.Fprintln(w, "[deadline]")
	_, _ = fmt.Fprintf(w, "  suspension      = %s\n", cfg.Deadline.Suspension)
	_, _ = fmt.Fprintf(w, "  recess_start    = %s\n", cfg.Deadline.RecessStart)
	_, _ = fmt.Fprintf(w, "  recess_end      = %s\n", cfg.Deadline.RecessEnd)
	_, _ = fmt.Fprintln(w, "\n[calendar]")
	_, _ = fmt.Fprintf(w, "  include_weekend = %t\n", cfg.Calendar.IncludeWeekend)
	_, _ = fmt.Fprintln(w, "\n[storage]")
	_, _ = fmt.Fprintf(w, "  db_path         = %s\n", cfg.Storage.DBPath)
	_, _ = fmt.Fprintln(w, "\n[ui]")
	_, _ = fmt.Fprintf(w, "  theme           = %s\n", cfg.UI.Theme)
	_, _ = fmt.Fprintf(w, "  no_color        = %t\n", cfg.UI.NoColor)
	_, _ = fmt.Fprintln(w, "\n[llm]")
	_, _ = fmt.Fprintf(w, "  provider        = %s\n", cfg.LLM.Provider)
	_, _ = fmt.Fprintf(w, "  model           = %s\n", cfg.LLM.Model)
	_, _ = fmt.Fprintf(w, "  base_url        = %s\n", cfg.LLM.BaseURL)
}

func promptYesNo(r *bufio.Reader, w io.Writer, question string) bool {
	_, _ = fmt.Fprintf(w, "%s [y/N]: ", question)
	input, _ := r.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

// prompter reads answers line by line. An empty answer keeps the current
// value, and so does end of input.
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func (p prompter) value(label, current string) string {
	if current == "" {
		_, _ = fmt.Fprintf(p.w, "  %s: ", label)
	} else {
		_, _ = fmt.Fprintf(p.w, "  %s [%s]: ", label, current)
	}
	input, err := p.r.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" && err != nil {
		_, _ = fmt.Fprintln(p.w)
	}
	if input == "" {
		return current
	}
	return input
}

func (p prompter) boolean(label string, current bool) bool {
	for {
		value := p.value(label+" (true/false)", strconv.FormatBool(current))
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
		_, _ = fmt.Fprintf(p.w, "  Invalid value %q\n", value)
	}
}

func (p prompter) choice(label, current string, options []string) string {
	joined := strings.Join(options, ", ")
	full := fmt.Sprintf("%s (%s)", label, joined)
	for {
		value := strings.ToLower(p.value(full, current))
		for _, o := range options {
			if value == o {
				return value
			}
		}
		_, _ = fmt.Fprintf(p.w, "  Invalid value %q. Available: %s\n", value, joined)
	}
}
