// Package hedge values the three hedge instruments against a scenario
// matrix: forward contracts, at-the-money put options, and a heuristic
// natural hedge, net of transaction costs.
package hedge

import (
	"math"

	"github.com/rustyeddy/fxhedge/fxpath"
)

const (
	// DefaultNotionalUSD is the fixed exposure every hedge is written
	// against. All P&L matrices are in domestic currency units on this
	// notional before the profitability projector rescales them.
	DefaultNotionalUSD = 100_000_000.0

	// NaturalOffsetFactor models the partial automatic cost absorption
	// from foreign-currency-denominated costs: only half of a rate move
	// is treated as offset.
	NaturalOffsetFactor = 0.5

	bpsDivisor = 10_000.0
)

// Config holds the hedge mix. Each ratio is the hedged fraction of the
// notional in [0, 1]; the three together should not exceed one.
type Config struct {
	ForwardRatio float64 `json:"forwards" yaml:"forwards"`
	OptionRatio  float64 `json:"options" yaml:"options"`
	NaturalRatio float64 `json:"natural" yaml:"natural"`
	TenorMonths  int     `json:"tenor_months" yaml:"tenor_months"`
}

// TenorYears converts the contract tenor to year fractions.
func (c Config) TenorYears() float64 { return float64(c.TenorMonths) / 12.0 }

// TotalRatio is the combined hedged fraction across instruments.
func (c Config) TotalRatio() float64 {
	return c.ForwardRatio + c.OptionRatio + c.NaturalRatio
}

// Result holds per-path/per-period P&L for each instrument, their total net
// of amortized transaction costs, and the scalar pricing by-products.
// Matrices share the scenario matrix shape; column 0 is the inception
// period, where instrument P&L is zero by construction.
type Result struct {
	ForwardPnL [][]float64 `json:"forward_pnl"`
	OptionPnL  [][]float64 `json:"option_pnl"`
	NaturalPnL [][]float64 `json:"natural_pnl"`
	TotalPnL   [][]float64 `json:"total_pnl"`

	ForwardRate      float64 `json:"forward_rate"`
	OptionStrike     float64 `json:"option_strike"`
	OptionPremium    float64 `json:"option_premium"`
	TransactionCosts float64 `json:"transaction_costs"`
}

// Value computes the hedge P&L of cfg against every path and period of m.
//
// The option leg is an at-the-money put priced by Garman-Kohlhagen; its
// premium is deducted at every period, not amortized once. Transaction
// costs (costBps on forward notional, and on the option premium) are
// amortized evenly across all columns of the total.
func Value(m *fxpath.Matrix, spot float64, cfg Config, rates Rates, sigma, costBps float64) *Result {
	nPaths := m.NPaths()
	cols := m.Columns()
	tenor := cfg.TenorYears()

	fwd := ForwardRate(spot, rates, tenor)
	strike := spot // ATM
	premium := GarmanKohlhagenPut(spot, strike, rates, sigma, tenor)

	forwardTC := cfg.ForwardRatio * DefaultNotionalUSD * spot * (costBps / bpsDivisor)
	optionTC := cfg.OptionRatio * premium * (costBps / bpsDivisor)
	totalTC := forwardTC + optionTC
	amortized := totalTC / float64(cols)

	r := &Result{
		ForwardPnL:       zeros(nPaths, cols),
		OptionPnL:        zeros(nPaths, cols),
		NaturalPnL:       zeros(nPaths, cols),
		TotalPnL:         zeros(nPaths, cols),
		ForwardRate:      fwd,
		OptionStrike:     strike,
		OptionPremium:    premium,
		TransactionCosts: totalTC,
	}

	for i, row := range m.Rows {
		for t := 1; t < cols; t++ {
			spotT := row[t]
			r.ForwardPnL[i][t] = cfg.ForwardRatio * DefaultNotionalUSD * (spotT - fwd)
			r.OptionPnL[i][t] = cfg.OptionRatio*DefaultNotionalUSD*math.Max(strike-spotT, 0) - premium
			r.NaturalPnL[i][t] = cfg.NaturalRatio * DefaultNotionalUSD * (spotT - spot) * NaturalOffsetFactor
		}
		for t := 0; t < cols; t++ {
			r.TotalPnL[i][t] = r.ForwardPnL[i][t] + r.OptionPnL[i][t] + r.NaturalPnL[i][t] - amortized
		}
	}
	return r
}

func zeros(rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}
	return out
}
