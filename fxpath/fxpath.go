// Package fxpath generates Monte Carlo scenario paths for an FX rate under
// four alternative stochastic models: geometric Brownian motion, a two-state
// regime-switching process, Merton jump-diffusion, and GARCH(1,1).
package fxpath

import "fmt"

// Model selects the stochastic process used to evolve the rate.
type Model string

const (
	ModelGBM    Model = "gbm"
	ModelRegime Model = "regime"
	ModelJump   Model = "jump"
	ModelGARCH  Model = "garch"
)

// DriftMode selects how the annualized drift is resolved.
type DriftMode string

const (
	DriftZero       DriftMode = "zero"
	DriftCustom     DriftMode = "custom"
	DriftHistorical DriftMode = "historical"
)

// dt is the quarterly time step in years.
const dt = 0.25

// Config holds the full parameterization of a simulation run.
type Config struct {
	Model           Model     `json:"model" yaml:"model"`
	NPaths          int       `json:"n_paths" yaml:"n_paths"`
	HorizonQuarters int       `json:"horizon_quarters" yaml:"horizon_quarters"`
	SigmaAnnual     float64   `json:"sigma_annual" yaml:"sigma_annual"`
	DriftMode       DriftMode `json:"drift_mode" yaml:"drift_mode"`
	CustomDrift     float64   `json:"custom_drift,omitempty" yaml:"custom_drift,omitempty"`
	SpotRate        float64   `json:"spot_rate" yaml:"spot_rate"`

	// Risk-free rates, annualized. The historical drift mode uses their
	// differential (covered interest parity).
	DomesticRate float64 `json:"r_domestic" yaml:"r_domestic"`
	ForeignRate  float64 `json:"r_foreign" yaml:"r_foreign"`

	TransactionCostBps float64 `json:"transaction_cost_bps" yaml:"transaction_cost_bps"`
	Seed               uint64  `json:"seed" yaml:"seed"`

	// Model-specific parameters. Zero values fall back to the documented
	// defaults, so most callers never set these.
	Regime RegimeParams `json:"regime,omitempty" yaml:"regime,omitempty"`
	Jump   JumpParams   `json:"jump,omitempty" yaml:"jump,omitempty"`
	GARCH  GARCHParams  `json:"garch,omitempty" yaml:"garch,omitempty"`
}

// RegimeParams are the Markov transition probabilities per quarterly step.
type RegimeParams struct {
	PLowToHigh float64 `json:"p_low_to_high,omitempty" yaml:"p_low_to_high,omitempty"`
	PHighToLow float64 `json:"p_high_to_low,omitempty" yaml:"p_high_to_low,omitempty"`
}

func (p RegimeParams) orDefault() RegimeParams {
	if p == (RegimeParams{}) {
		return RegimeParams{PLowToHigh: 0.1, PHighToLow: 0.2}
	}
	return p
}

// JumpParams parameterize the Merton compound jump term. Intensity is the
// expected number of jumps per year; Mean and Std describe the log jump size.
type JumpParams struct {
	Intensity float64 `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	Mean      float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	Std       float64 `json:"std,omitempty" yaml:"std,omitempty"`
}

func (p JumpParams) orDefault() JumpParams {
	if p == (JumpParams{}) {
		return JumpParams{Intensity: 2.0, Mean: -0.02, Std: 0.05}
	}
	return p
}

// GARCHParams are the variance recursion coefficients. Alpha+Beta must be
// strictly below one or the long-run variance is undefined.
type GARCHParams struct {
	Omega float64 `json:"omega,omitempty" yaml:"omega,omitempty"`
	Alpha float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	Beta  float64 `json:"beta,omitempty" yaml:"beta,omitempty"`
}

func (p GARCHParams) orDefault() GARCHParams {
	if p == (GARCHParams{}) {
		return GARCHParams{Omega: 1e-4, Alpha: 0.1, Beta: 0.85}
	}
	return p
}

// Drift resolves the annualized drift according to the configured mode.
// Historical mode uses the domestic-minus-foreign rate differential.
func (c Config) Drift() float64 {
	switch c.DriftMode {
	case DriftZero:
		return 0
	case DriftCustom:
		return c.CustomDrift
	default:
		return c.DomesticRate - c.ForeignRate
	}
}

// Matrix holds simulated FX rate paths. Every row has HorizonQuarters+1
// columns and starts at Spot. A Matrix is generated once per run and shared
// read-only by every downstream evaluation; callers must not mutate Rows,
// since hedge comparisons are only meaningful against identical paths.
type Matrix struct {
	Spot    float64     `json:"spot"`
	Horizon int         `json:"horizon_quarters"`
	Rows    [][]float64 `json:"rows"`
}

// NPaths reports the number of simulated paths.
func (m *Matrix) NPaths() int { return len(m.Rows) }

// Columns reports the number of time columns, including the spot column.
func (m *Matrix) Columns() int { return m.Horizon + 1 }

// Final returns a copy of the last column, the cross-sectional distribution
// of rates at the end of the horizon.
func (m *Matrix) Final() []float64 {
	out := make([]float64, len(m.Rows))
	for i, row := range m.Rows {
		out[i] = row[len(row)-1]
	}
	return out
}

func newMatrix(spot float64, nPaths, horizon int) *Matrix {
	rows := make([][]float64, nPaths)
	for i := range rows {
		rows[i] = make([]float64, horizon+1)
		rows[i][0] = spot
	}
	return &Matrix{Spot: spot, Horizon: horizon, Rows: rows}
}

// Generate produces a scenario matrix under the configured model. The same
// Config (including Seed) always yields the same Matrix. An unrecognized
// model tag is a configuration error, never a silent fallback.
func Generate(cfg Config) (*Matrix, error) {
	mu := cfg.Drift()
	switch cfg.Model {
	case ModelGBM:
		return gbmPaths(cfg, mu), nil
	case ModelRegime:
		return regimePaths(cfg, mu), nil
	case ModelJump:
		return jumpPaths(cfg, mu), nil
	case ModelGARCH:
		return garchPaths(cfg, mu)
	default:
		return nil, fmt.Errorf("unknown path model %q", cfg.Model)
	}
}
