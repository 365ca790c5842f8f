package profit

import "gonum.org/v1/gonum/stat"

// Waterfall attributes the mean final-period profit to its components:
// the base book, the FX move on revenue and cost, and the hedge.
type Waterfall struct {
	BaseProfit        float64 `json:"base_profit"`
	FXRevenueImpact   float64 `json:"fx_revenue_impact"`
	FXCostImpact      float64 `json:"fx_cost_impact"`
	HedgeContribution float64 `json:"hedge_contribution"`
	FinalProfit       float64 `json:"final_profit"`
}

// ComputeWaterfall builds the attribution from a projection result. All
// components are means over the final-period cross-section, so the parts
// sum to FinalProfit exactly.
func ComputeWaterfall(r *Result, firm FirmProfile) Waterfall {
	dRev := stat.Mean(finalColumn(r.DeltaRevenue), nil)
	dCost := stat.Mean(finalColumn(r.DeltaCost), nil)
	final := stat.Mean(finalColumn(r.NetProfit), nil)

	base := firm.BaseProfit()
	return Waterfall{
		BaseProfit:        base,
		FXRevenueImpact:   dRev,
		FXCostImpact:      -dCost,
		HedgeContribution: final - base - dRev + dCost,
		FinalProfit:       final,
	}
}
