package dashboard

// Schema is the dashboard results DDL. Applied on open; idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS test_runs (
	run_id      TEXT PRIMARY KEY,
	started_at  INTEGER NOT NULL,
	finished_at INTEGER,
	label       TEXT NOT NULL DEFAULT '',
	host        TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS test_results (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL REFERENCES test_runs(run_id),
	test_name   TEXT NOT NULL,
	status      TEXT NOT NULL CHECK (status IN ('passed', 'failed', 'skipped')),
	duration_ms INTEGER NOT NULL DEFAULT 0,
	message     TEXT NOT NULL DEFAULT '',
	recorded_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_results_run ON test_results(run_id, recorded_at);
CREATE INDEX IF NOT EXISTS idx_runs_started ON test_runs(started_at DESC);
`
