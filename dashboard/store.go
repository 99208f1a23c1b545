// Package dashboard records test outcomes in SQLite and serves a live HTML
// view of them. Writers are test processes, each appending result rows for
// its own run; the server process watches the database and re-renders the
// page when new rows land. The database and the rendered file are the only
// cross-process shared state.
package dashboard

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/hazyhaar/basecase/dbopen"
)

// Status of one test result row.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result is one recorded test outcome.
type Result struct {
	RunID      string
	TestName   string
	Status     Status
	Duration   time.Duration
	Message    string
	RecordedAt time.Time
}

// Run groups the results of one process invocation.
type Run struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time // zero while running
	Label      string
	Host       string
}

// Summary aggregates a run's results.
type Summary struct {
	Run     Run
	Passed  int
	Failed  int
	Skipped int
	Total   int
}

// Store is the dashboard database handle.
type Store struct {
	DB *sql.DB
}

// Open opens (or creates) the results database at path and applies the
// schema.
func Open(path string, opts ...dbopen.Option) (*Store, error) {
	allOpts := append([]dbopen.Option{
		dbopen.WithMkdirAll(),
		dbopen.WithSchema(Schema),
	}, opts...)

	db, err := dbopen.Open(path, allOpts...)
	if err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// StartRun registers a run. label is free-form (suite name, CI job).
func (s *Store) StartRun(ctx context.Context, runID, label string) error {
	host, _ := os.Hostname()
	_, err := dbopen.Exec(ctx, s.DB,
		`INSERT INTO test_runs (run_id, started_at, label, host) VALUES (?, ?, ?, ?)`,
		runID, time.Now().UnixMilli(), label, host)
	if err != nil {
		return fmt.Errorf("dashboard: start run: %w", err)
	}
	return nil
}

// FinishRun stamps the run's end time.
func (s *Store) FinishRun(ctx context.Context, runID string) error {
	res, err := dbopen.Exec(ctx, s.DB,
		`UPDATE test_runs SET finished_at = ? WHERE run_id = ?`,
		time.Now().UnixMilli(), runID)
	if err != nil {
		return fmt.Errorf("dashboard: finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("dashboard: finish run: unknown run %q", runID)
	}
	return nil
}

// RecordResult appends one result row.
func (s *Store) RecordResult(ctx context.Context, r Result) error {
	if r.RunID == "" || r.TestName == "" {
		return fmt.Errorf("dashboard: record result: run id and test name required")
	}
	at := r.RecordedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := dbopen.Exec(ctx, s.DB,
		`INSERT INTO test_results (run_id, test_name, status, duration_ms, message, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.RunID, r.TestName, string(r.Status), r.Duration.Milliseconds(), r.Message, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("dashboard: record result: %w", err)
	}
	return nil
}

// RunSummary aggregates one run.
func (s *Store) RunSummary(ctx context.Context, runID string) (*Summary, error) {
	run, err := s.run(ctx, runID)
	if err != nil {
		return nil, err
	}
	sum := &Summary{Run: *run}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM test_results WHERE run_id = ? GROUP BY status`, runID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: run summary: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("dashboard: run summary: %w", err)
		}
		switch Status(status) {
		case StatusPassed:
			sum.Passed = n
		case StatusFailed:
			sum.Failed = n
		case StatusSkipped:
			sum.Skipped = n
		}
		sum.Total += n
	}
	return sum, rows.Err()
}

func (s *Store) run(ctx context.Context, runID string) (*Run, error) {
	var r Run
	var started, finished sql.NullInt64
	err := s.DB.QueryRowContext(ctx,
		`SELECT run_id, started_at, finished_at, label, host FROM test_runs WHERE run_id = ?`,
		runID).Scan(&r.RunID, &started, &finished, &r.Label, &r.Host)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("dashboard: unknown run %q", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("dashboard: load run: %w", err)
	}
	if started.Valid {
		r.StartedAt = time.UnixMilli(started.Int64)
	}
	if finished.Valid {
		r.FinishedAt = time.UnixMilli(finished.Int64)
	}
	return &r, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT run_id FROM test_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: recent runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("dashboard: recent runs: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(ids))
	for _, id := range ids {
		sum, err := s.RunSummary(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *sum)
	}
	return out, nil
}

// Results returns a run's result rows in recording order.
func (s *Store) Results(ctx context.Context, runID string) ([]Result, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT run_id, test_name, status, duration_ms, message, recorded_at
		 FROM test_results WHERE run_id = ? ORDER BY recorded_at, id`, runID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		var status string
		var durMS, at int64
		if err := rows.Scan(&r.RunID, &r.TestName, &status, &durMS, &r.Message, &at); err != nil {
			return nil, fmt.Errorf("dashboard: results: %w", err)
		}
		r.Status = Status(status)
		r.Duration = time.Duration(durMS) * time.Millisecond
		r.RecordedAt = time.UnixMilli(at)
		out = append(out, r)
	}
	return out, rows.Err()
}
