// Package db provides SQLite storage for tasks and archived deadline
// computations.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/termini/internal/dateutil"
	"github.com/javiermolinar/termini/internal/task"
)

// timestampLayout sorts lexically in chronological order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite implements task.Store using SQLite.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

var _ task.Store = (*SQLite)(nil)

// New opens the database at path and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Upsert implements task.Store.
func (s *SQLite) Upsert(ctx context.Context, t *task.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return task.ErrEmptyTitle
	}
	if t.DueDate.IsZero() {
		return dateutil.ErrInvalidDate
	}

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = task.StatusTodo
	}
	if t.Priority == "" {
		t.Priority = task.PriorityMedium
	}
	now := s.now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}

	query := `
		INSERT INTO tasks (
			id, title, due_date, practice, client, counterparty,
			category, priority, status, notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title        = excluded.title,
			due_date     = excluded.due_date,
			practice     = excluded.practice,
			client       = excluded.client,
			counterparty = excluded.counterparty,
			category     = excluded.category,
			priority     = excluded.priority,
			status       = excluded.status,
			notes        = excluded.notes,
			updated_at   = excluded.updated_at
		RETURNING created_at
	`

	var createdAt string
	err := s.db.QueryRowContext(ctx, query,
		t.ID,
		t.Title,
		t.DueDate.Format(),
		t.Practice,
		t.Client,
		t.Counterparty,
		t.Category,
		t.Priority,
		t.Status,
		t.Notes,
		formatTimestamp(t.CreatedAt),
		formatTimestamp(now),
	).Scan(&createdAt)
	if err != nil {
		return fmt.Errorf("upserting task: %w", err)
	}

	t.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return fmt.Errorf("parsing created at: %w", err)
	}
	t.UpdatedAt = now

	return nil
}

// Get implements task.Store.
func (s *SQLite) Get(ctx context.Context, id string) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	t, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, task.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}
	return t, nil
}

// Delete implements task.Store. Archived computations linked to the task
// are kept and unlinked.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE deadline_computations SET task_id = NULL WHERE task_id = ?`, id); err != nil {
		return fmt.Errorf("unlinking computations: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return task.ErrTaskNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Query implements task.Store.
func (s *SQLite) Query(ctx context.Context, r dateutil.Range) ([]*task.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE due_date >= ? AND due_date <= ?
		ORDER BY due_date, created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, r.Start.Format(), r.End.Format())
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*task.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return tasks, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

const taskColumns = `id, title, due_date, practice, client, counterparty,
	category, priority, status, notes, created_at, updated_at`

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*task.Task, error) {
	var (
		t         task.Task
		dueDate   string
		createdAt string
		updatedAt string
	)

	err := row.Scan(
		&t.ID,
		&t.Title,
		&dueDate,
		&t.Practice,
		&t.Client,
		&t.Counterparty,
		&t.Category,
		&t.Priority,
		&t.Status,
		&t.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if t.DueDate, err = parseDate(dueDate); err != nil {
		return nil, fmt.Errorf("parsing due date: %w", err)
	}
	if t.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	if t.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated at: %w", err)
	}

	return &t, nil
}

// parseDate parses a stored due date. Values written by other tools may
// carry a midnight time suffix, which is ignored.
func parseDate(s string) (dateutil.Date, error) {
	if len(s) > 10 && s[10] == 'T' {
		s = s[:10]
	}
	return dateutil.Parse(s)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{timestampLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}
