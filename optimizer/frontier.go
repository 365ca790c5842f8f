package optimizer

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/rustyeddy/fxhedge/risk"
)

// Fixed instrument split used when sweeping the total hedge level.
const (
	frontierForwardShare = 0.6
	frontierOptionShare  = 0.3
	frontierNaturalShare = 0.1
)

// FrontierPoint is one point on the efficient frontier: the risk/return
// profile at a given total hedge level.
type FrontierPoint struct {
	HedgeLevel    float64 `json:"hedge_level"`
	ExpectedNPM   float64 `json:"expected_npm"`
	NPMVolatility float64 `json:"npm_volatility"`
	CVaR95        float64 `json:"cvar_95"`

	Forwards float64 `json:"forwards"`
	Options  float64 `json:"options"`
	Natural  float64 `json:"natural"`
}

// frontier sweeps the total hedge level from 0 to 1 with the fixed 60/30/10
// instrument split, evaluating every point on the shared scenario matrix.
func frontier(e *evaluator, points int) []FrontierPoint {
	if points < 2 {
		points = 2
	}
	out := make([]FrontierPoint, 0, points)
	for i := 0; i < points; i++ {
		level := float64(i) / float64(points-1)
		x := [3]float64{
			level * frontierForwardShare,
			level * frontierOptionShare,
			level * frontierNaturalShare,
		}
		final := e.finalNPM(x)
		out = append(out, FrontierPoint{
			HedgeLevel:    level,
			ExpectedNPM:   stat.Mean(final, nil),
			NPMVolatility: stat.PopStdDev(final, nil),
			CVaR95:        risk.CVaR(final, 0.95),
			Forwards:      x[0],
			Options:       x[1],
			Natural:       x[2],
		})
	}
	return out
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.LinInterp, sorted, nil)
}
