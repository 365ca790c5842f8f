// Package journal records optimization runs and their efficient frontiers
// to CSV files or a SQLite database. It stores run summaries only, never
// scenario paths.
package journal

import "time"

// RunRecord summarizes one optimization run.
type RunRecord struct {
	RunID           string
	Time            time.Time
	Model           string
	NPaths          int
	HorizonQuarters int
	Objective       string

	Forwards float64
	Options  float64
	Natural  float64

	ExpectedNPM   float64
	NPMVolatility float64
	CVaR95        float64
	Success       bool
}

// FrontierRecord is one efficient-frontier point belonging to a run.
type FrontierRecord struct {
	RunID         string
	HedgeLevel    float64
	ExpectedNPM   float64
	NPMVolatility float64
	CVaR95        float64
}

// Journal persists run summaries.
type Journal interface {
	RecordRun(RunRecord) error
	RecordFrontier([]FrontierRecord) error
	Close() error
}
