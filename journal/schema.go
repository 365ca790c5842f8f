package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	model TEXT NOT NULL,
	n_paths INTEGER NOT NULL,
	horizon_quarters INTEGER NOT NULL,
	objective TEXT NOT NULL,
	forward_ratio REAL NOT NULL,
	option_ratio REAL NOT NULL,
	natural_ratio REAL NOT NULL,
	expected_npm REAL NOT NULL,
	npm_volatility REAL NOT NULL,
	cvar_95 REAL NOT NULL,
	success INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS frontier (
	run_id TEXT NOT NULL,
	hedge_level REAL NOT NULL,
	expected_npm REAL NOT NULL,
	npm_volatility REAL NOT NULL,
	cvar_95 REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_frontier_run ON frontier(run_id);
`
