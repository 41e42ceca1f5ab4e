// Package recorder stores order parameter time series of batch runs in SQLite.
// It only appends metrics; nothing is ever read back into a simulation.
package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/simulation"
	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/vicsek"
)

// DB wraps a SQLite connection holding recorded runs.
type DB struct {
	conn *sqlx.DB
	now  func() time.Time
}

// Run is one row of the runs table.
type Run struct {
	ID         string `db:"id"`
	StartedAt  int64  `db:"started_at"` // Unix nanoseconds
	ParamsJSON string `db:"params_json"`
}

// Started returns the start time of the run in UTC.
func (r Run) Started() time.Time {
	return time.Unix(0, r.StartedAt).UTC()
}

// Sample is one row of the samples table.
type Sample struct {
	RunID          string  `db:"run_id"`
	Tick           int64   `db:"tick"`
	OrderParameter float64 `db:"order_parameter"`
	Agents         int     `db:"agents"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn, now: time.Now}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		params_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS samples (
		run_id TEXT NOT NULL REFERENCES runs(id),
		tick INTEGER NOT NULL,
		order_parameter REAL NOT NULL,
		agents INTEGER NOT NULL,
		PRIMARY KEY (run_id, tick)
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// StartRun registers a run with its parameters and returns a recorder
// appending samples to it.
func (db *DB) StartRun(ctx context.Context, p vicsek.Params) (*RunRecorder, error) {
	paramsJSON, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}
	id := uuid.NewString()
	_, err = db.conn.ExecContext(ctx,
		"INSERT INTO runs (id, started_at, params_json) VALUES (?, ?, ?)",
		id, db.now().UnixNano(), string(paramsJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return &RunRecorder{db: db, id: id}, nil
}

// Runs lists every recorded run, oldest first.
func (db *DB) Runs(ctx context.Context) ([]Run, error) {
	var runs []Run
	err := db.conn.SelectContext(ctx, &runs,
		"SELECT id, started_at, params_json FROM runs ORDER BY started_at, id")
	return runs, err
}

// Samples returns the samples of a run ordered by tick.
func (db *DB) Samples(ctx context.Context, runID string) ([]Sample, error) {
	var samples []Sample
	err := db.conn.SelectContext(ctx, &samples,
		"SELECT run_id, tick, order_parameter, agents FROM samples WHERE run_id = ? ORDER BY tick",
		runID,
	)
	return samples, err
}

// RunRecorder appends the samples of a single run.
type RunRecorder struct {
	db *DB
	id string
}

var _ simulation.SampleSink = (*RunRecorder)(nil)

// ID returns the run identifier.
func (r *RunRecorder) ID() string { return r.id }

// Record stores one summary. Recording the same tick twice replaces it.
func (r *RunRecorder) Record(ctx context.Context, s simulation.Summary) error {
	_, err := r.db.conn.NamedExecContext(ctx,
		`INSERT OR REPLACE INTO samples (run_id, tick, order_parameter, agents)
		VALUES (:run_id, :tick, :order_parameter, :agents)`,
		Sample{
			RunID:          r.id,
			Tick:           int64(s.Tick),
			OrderParameter: s.OrderParameter,
			Agents:         s.Population,
		},
	)
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	return nil
}
