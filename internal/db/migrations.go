package db

import "fmt"

// migrations are applied in order; PRAGMA user_version records how many ran.
var migrations = []string{
	`
		CREATE TABLE IF NOT EXISTS tasks (
			id            TEXT PRIMARY KEY,
			title         TEXT NOT NULL,
			due_date      TEXT NOT NULL,
			practice      TEXT NOT NULL DEFAULT '',
			client        TEXT NOT NULL DEFAULT '',
			counterparty  TEXT NOT NULL DEFAULT '',
			category      TEXT NOT NULL DEFAULT '',
			priority      TEXT NOT NULL DEFAULT 'medium' CHECK(priority IN ('low', 'medium', 'high')),
			status        TEXT NOT NULL DEFAULT 'todo' CHECK(status IN ('todo', 'done')),
			notes         TEXT NOT NULL DEFAULT '',
			created_at    TEXT NOT NULL,
			updated_at    TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(due_date);
		CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
	`,
	`
		CREATE TABLE IF NOT EXISTS deadline_computations (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id         TEXT REFERENCES tasks(id) ON DELETE SET NULL,
			start_date      TEXT NOT NULL,
			term_type_id    TEXT NOT NULL,
			term_label      TEXT NOT NULL,
			category        TEXT NOT NULL,
			day_count       INTEGER NOT NULL,
			raw_end_date    TEXT NOT NULL,
			computed_date   TEXT NOT NULL,
			today           TEXT NOT NULL,
			days_remaining  INTEGER NOT NULL,
			suspended_days  INTEGER NOT NULL,
			urgent          INTEGER NOT NULL,
			notes           TEXT NOT NULL DEFAULT '[]',
			created_at      TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_computations_task ON deadline_computations(task_id);
	`,
}

// migrate runs pending database migrations.
func (s *SQLite) migrate() error {
	var version int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := s.db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("applying migration %d: %w", i+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := s.db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			return fmt.Errorf("recording schema version %d: %w", i+1, err)
		}
	}

	return nil
}
