package fxpath

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Diagnostics summarizes statistical sanity checks over a generated matrix.
type Diagnostics struct {
	AllPositive  bool    `json:"all_positive"`
	MinRate      float64 `json:"min_rate"`
	SpotAligned  bool    `json:"spot_aligned"`
	TargetVol    float64 `json:"target_vol"`
	RealizedVol  float64 `json:"realized_vol"`
	OutlierShare float64 `json:"outlier_share"`
	Passed       bool    `json:"passed"`
}

// Check runs distribution-level sanity tests on a matrix: strict positivity,
// first-column alignment with spot, annualized realized volatility against
// the configured target, and the share of final values beyond five standard
// deviations. A realized volatility within 50% of target passes.
func Check(m *Matrix, sigmaAnnual float64) Diagnostics {
	d := Diagnostics{AllPositive: true, SpotAligned: true, TargetVol: sigmaAnnual}
	d.MinRate = math.Inf(1)

	var logReturns []float64
	for _, row := range m.Rows {
		if math.Abs(row[0]-m.Spot) > 1e-9 {
			d.SpotAligned = false
		}
		for t, v := range row {
			if v < d.MinRate {
				d.MinRate = v
			}
			if v <= 0 {
				d.AllPositive = false
				continue
			}
			if t > 0 && row[t-1] > 0 {
				logReturns = append(logReturns, math.Log(v/row[t-1]))
			}
		}
	}

	// Quarterly log-returns annualize with sqrt(1/dt). PopStdDev is NaN on
	// an empty slice, so guard the degenerate single-column case.
	if len(logReturns) > 0 {
		d.RealizedVol = stat.PopStdDev(logReturns, nil) * math.Sqrt(1/dt)
	}

	final := m.Final()
	mean := stat.Mean(final, nil)
	std := stat.PopStdDev(final, nil)
	outliers := 0
	for _, v := range final {
		if math.Abs(v-mean) > 5*std {
			outliers++
		}
	}
	if len(final) > 0 {
		d.OutlierShare = float64(outliers) / float64(len(final))
	}

	volOK := sigmaAnnual > 0 && math.Abs(d.RealizedVol-sigmaAnnual) < 0.5*sigmaAnnual
	d.Passed = d.AllPositive && d.SpotAligned && volOK && d.OutlierShare < 0.01
	return d
}
