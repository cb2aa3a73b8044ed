package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/javiermolinar/termini/internal/dateutil"
	"github.com/javiermolinar/termini/internal/deadline"
	"github.com/javiermolinar/termini/internal/term"
)

// ArchivedComputation is a stored deadline computation.
type ArchivedComputation struct {
	ID        int64
	TaskID    string // empty when not linked to a task
	CreatedAt time.Time
	deadline.Computation
}

// ArchiveComputation stores a computation, optionally linked to a task,
// and returns its archive id.
func (s *SQLite) ArchiveComputation(ctx context.Context, c *deadline.Computation, taskID string) (int64, error) {
	notes, err := json.Marshal(c.Notes)
	if err != nil {
		return 0, fmt.Errorf("encoding notes: %w", err)
	}

	var link sql.NullString
	if taskID != "" {
		link = sql.NullString{String: taskID, Valid: true}
	}

	query := `
		INSERT INTO deadline_computations (
			task_id, start_date, term_type_id, term_label, category, day_count,
			raw_end_date, computed_date, today, days_remaining, suspended_days,
			urgent, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		link,
		c.StartDate.Format(),
		c.TermTypeID,
		c.TermLabel,
		string(c.Category),
		c.DayCount,
		c.RawEndDate.Format(),
		c.ComputedDate.Format(),
		c.Today.Format(),
		c.DaysRemaining,
		c.SuspensionDaysApplied,
		c.Urgent,
		string(notes),
		formatTimestamp(s.now()),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting computation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	return id, nil
}

// ListComputations returns the most recent archived computations, newest
// first. A limit of zero or less returns all of them.
func (s *SQLite) ListComputations(ctx context.Context, limit int) ([]ArchivedComputation, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `
		SELECT id, task_id, start_date, term_type_id, term_label, category, day_count,
		       raw_end_date, computed_date, today, days_remaining, suspended_days,
		       urgent, notes, created_at
		FROM deadline_computations
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying computations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []ArchivedComputation
	for rows.Next() {
		var (
			a                                   ArchivedComputation
			taskID                              sql.NullString
			category, notes, createdAt          string
			start, rawEnd, computed, todayValue string
		)

		err := rows.Scan(
			&a.ID,
			&taskID,
			&start,
			&a.TermTypeID,
			&a.TermLabel,
			&category,
			&a.DayCount,
			&rawEnd,
			&computed,
			&todayValue,
			&a.DaysRemaining,
			&a.SuspensionDaysApplied,
			&a.Urgent,
			&notes,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning computation: %w", err)
		}

		a.TaskID = taskID.String
		a.Category = term.Category(category)
		if err := json.Unmarshal([]byte(notes), &a.Notes); err != nil {
			return nil, fmt.Errorf("decoding notes: %w", err)
		}
		for _, f := range []struct {
			dst *dateutil.Date
			src string
		}{
			{&a.StartDate, start},
			{&a.RawEndDate, rawEnd},
			{&a.ComputedDate, computed},
			{&a.Today, todayValue},
		} {
			if *f.dst, err = parseDate(f.src); err != nil {
				return nil, fmt.Errorf("parsing computation date: %w", err)
			}
		}
		if a.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}

		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating computations: %w", err)
	}

	return out, nil
}
