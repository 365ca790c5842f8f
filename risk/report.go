package risk

import "github.com/rustyeddy/fxhedge/profit"

// Report carries the metric set for each profitability distribution.
type Report struct {
	NPM       Metrics `json:"npm"`
	ROA       Metrics `json:"roa"`
	NetProfit Metrics `json:"net_profit"`
}

// Compute summarizes the final-period NPM, ROA, and net profit
// distributions of a projection result.
func Compute(p *profit.Result) *Report {
	return &Report{
		NPM:       Summarize(p.FinalNPM(), 0),
		ROA:       Summarize(p.FinalROA(), 0),
		NetProfit: Summarize(p.FinalNetProfit(), 0),
	}
}

// Effectiveness compares an unhedged and a hedged report on NPM risk.
type Effectiveness struct {
	CVaRReductionPct       float64 `json:"cvar_reduction_pct"`
	VolatilityReductionPct float64 `json:"volatility_reduction_pct"`
	MedianNPMChangeBps     float64 `json:"median_npm_change_bps"`

	UnhedgedCVaR       float64 `json:"unhedged_cvar"`
	HedgedCVaR         float64 `json:"hedged_cvar"`
	UnhedgedVolatility float64 `json:"unhedged_volatility"`
	HedgedVolatility   float64 `json:"hedged_volatility"`
}

// CompareEffectiveness measures how much a hedge improved the NPM
// distribution: CVaR(95) and volatility reduction in percent, and the
// median NPM shift in basis points.
func CompareEffectiveness(unhedged, hedged *Report) Effectiveness {
	e := Effectiveness{
		UnhedgedCVaR:       unhedged.NPM.CVaR[95],
		HedgedCVaR:         hedged.NPM.CVaR[95],
		UnhedgedVolatility: unhedged.NPM.Volatility,
		HedgedVolatility:   hedged.NPM.Volatility,
	}
	if e.UnhedgedCVaR != 0 {
		e.CVaRReductionPct = (e.UnhedgedCVaR - e.HedgedCVaR) / e.UnhedgedCVaR * 100
	}
	if e.UnhedgedVolatility != 0 {
		e.VolatilityReductionPct = (e.UnhedgedVolatility - e.HedgedVolatility) / e.UnhedgedVolatility * 100
	}
	e.MedianNPMChangeBps = (hedged.NPM.Percentiles[50] - unhedged.NPM.Percentiles[50]) * 10_000
	return e
}
