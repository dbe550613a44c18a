// Package history persists diagnostic runs to a local SQLite database
// so results can be compared across invocations.
package history

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"netdiag/internal/diag"
	"netdiag/internal/probe"
)

// Store wraps the SQLite connection.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL keeps writes from blocking a concurrent reader.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		gateway TEXT,
		overall TEXT NOT NULL,
		results TEXT NOT NULL,
		created_at TEXT DEFAULT (datetime('now'))
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_overall ON runs(overall);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores one completed run.
func (s *Store) Insert(run *diag.Run) error {
	results, err := json.Marshal(run.Results)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO runs (started_at, gateway, overall, results)
		VALUES (?, ?, ?, ?)
	`, run.StartedAt.Format(time.RFC3339), run.Gateway, run.Overall.String(), string(results))

	return err
}

// Recent returns the newest runs, most recent first.
func (s *Store) Recent(limit int) ([]diag.Run, error) {
	rows, err := s.db.Query(`
		SELECT started_at, gateway, overall, results
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []diag.Run
	for rows.Next() {
		var startedAt, gateway, overall, results string
		if err := rows.Scan(&startedAt, &gateway, &overall, &results); err != nil {
			return nil, err
		}

		var run diag.Run
		if run.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, err
		}
		run.Gateway = gateway
		if err := run.Overall.UnmarshalJSON([]byte(`"` + overall + `"`)); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(results), &run.Results); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CountByOverall returns how many stored runs ended with each status.
func (s *Store) CountByOverall() (map[probe.Status]int, error) {
	rows, err := s.db.Query(`SELECT overall, COUNT(*) FROM runs GROUP BY overall`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[probe.Status]int)
	for rows.Next() {
		var overall string
		var n int
		if err := rows.Scan(&overall, &n); err != nil {
			return nil, err
		}
		var status probe.Status
		if err := status.UnmarshalJSON([]byte(`"` + overall + `"`)); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
