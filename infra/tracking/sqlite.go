package tracking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteTracker persists run tracking in a SQLite database. Status and
// runtime live in one row per scenario so a single query returns both.
type SQLiteTracker struct {
	db *sql.DB
}

// NewSQLiteTracker opens or creates the database and ensures schema.
func NewSQLiteTracker(path string) (*SQLiteTracker, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS scenario_tracking (
        scenario_id TEXT PRIMARY KEY,
        status TEXT NOT NULL DEFAULT '',
        runtime TEXT NOT NULL DEFAULT '',
        updated_at INTEGER NOT NULL
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteTracker{db: db}, nil
}

func (t *SQLiteTracker) UpdateStatus(ctx context.Context, scenarioID, status string) error {
	_, err := t.db.ExecContext(ctx, `INSERT INTO scenario_tracking (scenario_id, status, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT(scenario_id) DO UPDATE SET
            status = excluded.status,
            updated_at = excluded.updated_at`,
		scenarioID, status, time.Now().Unix())
	return err
}

func (t *SQLiteTracker) UpdateRuntime(ctx context.Context, scenarioID, runtime string) error {
	_, err := t.db.ExecContext(ctx, `INSERT INTO scenario_tracking (scenario_id, runtime, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT(scenario_id) DO UPDATE SET
            runtime = excluded.runtime,
            updated_at = excluded.updated_at`,
		scenarioID, runtime, time.Now().Unix())
	return err
}

func (t *SQLiteTracker) Status(ctx context.Context, scenarioID string) (string, error) {
	return t.column(ctx, scenarioID, "status")
}

func (t *SQLiteTracker) Runtime(ctx context.Context, scenarioID string) (string, error) {
	return t.column(ctx, scenarioID, "runtime")
}

func (t *SQLiteTracker) column(ctx context.Context, scenarioID, column string) (string, error) {
	// column is one of the two fixed names above, never user input.
	var v string
	err := t.db.QueryRowContext(ctx,
		`SELECT `+column+` FROM scenario_tracking WHERE scenario_id = ?`, scenarioID).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// Close closes the underlying database.
func (t *SQLiteTracker) Close() error { return t.db.Close() }
