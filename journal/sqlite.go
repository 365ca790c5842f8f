package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, time, model, n_paths, horizon_quarters, objective,
		 forward_ratio, option_ratio, natural_ratio,
		 expected_npm, npm_volatility, cvar_95, success)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Time, r.Model, r.NPaths, r.HorizonQuarters, r.Objective,
		r.Forwards, r.Options, r.Natural, r.ExpectedNPM, r.NPMVolatility,
		r.CVaR95, r.Success,
	)
	return err
}

func (j *SQLite) RecordFrontier(points []FrontierRecord) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	for _, p := range points {
		if _, err := tx.Exec(`
			INSERT INTO frontier (run_id, hedge_level, expected_npm, npm_volatility, cvar_95)
			VALUES (?, ?, ?, ?, ?)`,
			p.RunID, p.HedgeLevel, p.ExpectedNPM, p.NPMVolatility, p.CVaR95,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetRun fetches a stored run summary by id.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	var r RunRecord
	err := j.db.QueryRow(`
		SELECT run_id, time, model, n_paths, horizon_quarters, objective,
		       forward_ratio, option_ratio, natural_ratio,
		       expected_npm, npm_volatility, cvar_95, success
		FROM runs WHERE run_id = ?`, runID,
	).Scan(&r.RunID, &r.Time, &r.Model, &r.NPaths, &r.HorizonQuarters,
		&r.Objective, &r.Forwards, &r.Options, &r.Natural,
		&r.ExpectedNPM, &r.NPMVolatility, &r.CVaR95, &r.Success)
	return r, err
}

// ListFrontier fetches the frontier points of a run in hedge-level order.
func (j *SQLite) ListFrontier(runID string) ([]FrontierRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, hedge_level, expected_npm, npm_volatility, cvar_95
		FROM frontier WHERE run_id = ? ORDER BY hedge_level`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FrontierRecord
	for rows.Next() {
		var p FrontierRecord
		if err := rows.Scan(&p.RunID, &p.HedgeLevel, &p.ExpectedNPM, &p.NPMVolatility, &p.CVaR95); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
