// Command termini computes Italian civil procedure deadlines and keeps the
// resulting tasks on a calendar.
package main

import (
	"fmt"
	"os"

	"github.com/javiermolinar/termini/internal/config"
	"github.com/javiermolinar/termini/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	app := ui.NewApp(nil, cfg)
	defer func() {
		// Report close errors only when the command succeeded.
		if cerr := app.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing store: %w", cerr)
		}
	}()
	return app.Execute()
}
