package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/termini/internal/config"
	"github.com/javiermolinar/termini/internal/dateutil"
	"github.com/javiermolinar/termini/internal/db"
	"github.com/javiermolinar/termini/internal/deadline"
	"github.com/javiermolinar/termini/internal/debuglog"
	"github.com/javiermolinar/termini/internal/task"
	"github.com/javiermolinar/termini/internal/term"
	"github.com/javiermolinar/termini/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// Archive stores deadline computations. Implemented by *db.SQLite.
type Archive interface {
	ArchiveComputation(ctx context.Context, c *deadline.Computation, taskID string) (int64, error)
	ListComputations(ctx context.Context, limit int) ([]db.ArchivedComputation, error)
}

// App holds the CLI application state.
type App struct {
	store  task.Store
	config *config.Config
	root   *cobra.Command
	in     io.Reader
	out    io.Writer
	now    func() time.Time
	debug  bool // Enable debug logging
	owned  bool // store was opened by the App and must be closed

	configPath string
}

// NewApp creates a new CLI application with the given store and config.
// A nil store is opened lazily from the configured database path.
func NewApp(store task.Store, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{
		store:      store,
		config:     cfg,
		in:         os.Stdin,
		out:        os.Stdout,
		now:        time.Now,
		configPath: config.DefaultConfigPath(),
	}

	a.root = &cobra.Command{
		Use:   "termini",
		Short: "Legal deadline calculator and calendar",
		Long: `Termini computes procedural deadlines with the summer recess
suspension and keeps dated tasks on a month calendar.

Run without arguments to open the interactive calendar.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if a.config.UI.NoColor {
				DisableColor()
			}
			return debuglog.Init(a.debug, "")
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			debuglog.Close()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			calc, err := a.calculator()
			if err != nil {
				return err
			}
			return tui.Run(a.store, a.config, calc, a.now)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes "+debuglog.DefaultPath+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.termsCmd())
	a.root.AddCommand(a.deadlineCmd())
	a.root.AddCommand(a.historyCmd())
	a.root.AddCommand(a.intervalCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.doneCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.monthCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.countersCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.askCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			a.printf("termini %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// SetArgs overrides the command line arguments.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// SetOutput redirects command output.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// SetClock replaces the wall clock used to derive today.
func (a *App) SetClock(now func() time.Time) {
	a.now = now
}

// Close releases the store if the App opened it.
func (a *App) Close() error {
	if a.owned && a.store != nil {
		return a.store.Close()
	}
	return nil
}

// ensureStore opens the configured database on first use.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}

	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	store, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.store = store
	a.owned = true
	return nil
}

// archive returns the store as an Archive when it supports it.
func (a *App) archive() (Archive, bool) {
	ar, ok := a.store.(Archive)
	return ar, ok
}

func (a *App) calculator() (*deadline.Calculator, error) {
	rule, err := a.config.SuspensionRule()
	if err != nil {
		return nil, fmt.Errorf("suspension policy: %w", err)
	}
	return deadline.NewCalculator(term.Standard(), rule), nil
}

func (a *App) today() dateutil.Date {
	return dateutil.FromTime(a.now())
}

// parseDate parses an absolute or relative date against today.
func (a *App) parseDate(s string) (dateutil.Date, error) {
	return dateutil.ParseRelative(s, a.today())
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	_, _ = fmt.Fprintln(a.out, args...)
}
