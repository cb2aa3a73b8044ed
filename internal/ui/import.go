package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/termini/internal/db"
	"github.com/javiermolinar/termini/internal/task"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [database_path]",
		Short: "Import tasks from another database",
		Long: `Import all tasks from another termini database into the current one.

Task ids are kept, so importing the same database twice updates the
tasks instead of duplicating them.

Example:
  termini import /path/to/other.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			destPath, err := resolvePath(a.config.Storage.DBPath)
			if err != nil {
				return err
			}

			if sourcePath == destPath {
				return fmt.Errorf("source database matches current database")
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source database does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source database: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source database path is a directory: %s", sourcePath)
			}

			count, err := importTasks(context.Background(), a.store, sourcePath)
			if err != nil {
				return err
			}

			a.printf("Imported %d tasks from %s\n", count, sourcePath)
			return nil
		},
	}

	return cmd
}

func importTasks(ctx context.Context, dest task.Store, sourcePath string) (int, error) {
	source, err := db.New(sourcePath)
	if err != nil {
		return 0, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = source.Close() }()

	tasks, err := source.Query(ctx, allDates)
	if err != nil {
		return 0, fmt.Errorf("listing source tasks: %w", err)
	}

	imported := 0
	for _, t := range tasks {
		if err := dest.Upsert(ctx, t); err != nil {
			return imported, fmt.Errorf("importing task %q: %w", t.Title, err)
		}
		imported++
	}

	return imported, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
