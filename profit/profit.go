// Package profit translates FX scenario paths and hedge P&L into firm-level
// profitability distributions: net profit margin and return on assets.
package profit

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/rustyeddy/fxhedge/fxpath"
	"github.com/rustyeddy/fxhedge/hedge"
)

// notionalScaleDivisor converts hedge P&L from the fixed USD notional
// convention down to firm scale; the scale factor is
// exportShare * quarterlyRevenue / notionalScaleDivisor.
const notionalScaleDivisor = 100.0

// FirmProfile describes the firm's quarterly economics and FX exposure
// shares. Revenue and cost are in domestic currency units.
type FirmProfile struct {
	RevenueQ float64 `json:"revenue_q" yaml:"revenue_q"`
	CostQ    float64 `json:"cost_q" yaml:"cost_q"`
	Assets   float64 `json:"assets" yaml:"assets"`

	// ExportShare (theta) is the fraction of revenue earned abroad,
	// ForeignCostShare (kappa) the fraction of costs paid abroad, and
	// PassThrough (psi) the fraction of an FX move passed into pricing.
	ExportShare      float64 `json:"export_share_theta" yaml:"export_share_theta"`
	ForeignCostShare float64 `json:"foreign_cost_share_kappa" yaml:"foreign_cost_share_kappa"`
	PassThrough      float64 `json:"pass_through_psi" yaml:"pass_through_psi"`
}

// BaseProfit is the quarterly profit absent any FX move or hedge.
func (f FirmProfile) BaseProfit() float64 { return f.RevenueQ - f.CostQ }

// Summary holds cross-sectional statistics of a final-period distribution.
type Summary struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Median float64 `json:"median"`
	P05    float64 `json:"p05"`
	P95    float64 `json:"p95"`
}

// Result carries the per-path/per-period profitability matrices plus
// final-period summaries. Matrices share the scenario matrix shape.
type Result struct {
	NPM          [][]float64 `json:"npm"`
	ROA          [][]float64 `json:"roa"`
	NetProfit    [][]float64 `json:"net_profit"`
	Revenue      [][]float64 `json:"revenue"`
	Cost         [][]float64 `json:"cost"`
	DeltaRevenue [][]float64 `json:"delta_revenue"`
	DeltaCost    [][]float64 `json:"delta_cost"`

	NPMSummary    Summary `json:"npm_summary"`
	ROASummary    Summary `json:"roa_summary"`
	ProfitSummary Summary `json:"profit_summary"`
}

// Project applies the FX paths and hedge P&L to the firm's economics.
//
// Revenue moves by theta * R0 * (S_t/S0 - 1) * (1 - psi): only the share
// earned abroad, net of price pass-through. Cost moves by the full
// kappa * C0 * (S_t/S0 - 1). Hedge P&L is rescaled from notional to firm
// scale before entering the profit line. NPM is guarded to zero wherever
// revenue is non-positive; ROA divides by assets, validated positive
// upstream.
func Project(m *fxpath.Matrix, firm FirmProfile, h *hedge.Result) *Result {
	nPaths := m.NPaths()
	cols := m.Columns()
	scale := firm.ExportShare * firm.RevenueQ / notionalScaleDivisor

	r := &Result{
		NPM:          zeros(nPaths, cols),
		ROA:          zeros(nPaths, cols),
		NetProfit:    zeros(nPaths, cols),
		Revenue:      zeros(nPaths, cols),
		Cost:         zeros(nPaths, cols),
		DeltaRevenue: zeros(nPaths, cols),
		DeltaCost:    zeros(nPaths, cols),
	}

	for i, row := range m.Rows {
		for t := 0; t < cols; t++ {
			fxChange := row[t]/m.Spot - 1

			dRev := firm.ExportShare * firm.RevenueQ * fxChange * (1 - firm.PassThrough)
			dCost := firm.ForeignCostShare * firm.CostQ * fxChange
			revenue := firm.RevenueQ + dRev
			cost := firm.CostQ + dCost
			netProfit := revenue - cost + h.TotalPnL[i][t]*scale

			r.DeltaRevenue[i][t] = dRev
			r.DeltaCost[i][t] = dCost
			r.Revenue[i][t] = revenue
			r.Cost[i][t] = cost
			r.NetProfit[i][t] = netProfit
			if revenue > 0 {
				r.NPM[i][t] = netProfit / revenue
			}
			r.ROA[i][t] = netProfit / firm.Assets
		}
	}

	r.NPMSummary = summarize(finalColumn(r.NPM))
	r.ROASummary = summarize(finalColumn(r.ROA))
	r.ProfitSummary = summarize(finalColumn(r.NetProfit))
	return r
}

// FinalNPM returns the final-period NPM cross-section.
func (r *Result) FinalNPM() []float64 { return finalColumn(r.NPM) }

// FinalROA returns the final-period ROA cross-section.
func (r *Result) FinalROA() []float64 { return finalColumn(r.ROA) }

// FinalNetProfit returns the final-period net profit cross-section.
func (r *Result) FinalNetProfit() []float64 { return finalColumn(r.NetProfit) }

func finalColumn(mat [][]float64) []float64 {
	out := make([]float64, len(mat))
	for i, row := range mat {
		out[i] = row[len(row)-1]
	}
	return out
}

func summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return Summary{
		Mean:   stat.Mean(values, nil),
		Std:    stat.PopStdDev(values, nil),
		Median: stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		P05:    stat.Quantile(0.05, stat.LinInterp, sorted, nil),
		P95:    stat.Quantile(0.95, stat.LinInterp, sorted, nil),
	}
}

func zeros(rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}
	return out
}
