// Package risk computes tail-risk and risk-adjusted-return metrics over
// final-period profitability distributions: VaR, CVaR, downside volatility,
// Sharpe and Sortino ratios, percentile ladders, and tail probabilities.
package risk

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ConfidenceLevels are the VaR/CVaR levels reported in a Metrics, in percent.
var ConfidenceLevels = []int{90, 95, 99}

// percentileLadder is the reported distribution ladder, in percent.
var percentileLadder = []int{1, 5, 10, 25, 50, 75, 90, 95, 99}

const (
	// minStd guards the ratio denominators against degenerate
	// distributions; below it the ratio is defined as zero.
	minStd = 1e-8

	// lowMarginThreshold is the fixed cutoff for the "thin margin" tail
	// probability.
	lowMarginThreshold = 0.05
)

// VaR is the empirical Value-at-Risk at the given confidence: the negated
// (1-c) quantile of the distribution. Empty input yields zero.
func VaR(values []float64, confidence float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return -percentile(values, (1-confidence)*100)
}

// CVaR is the expected shortfall: the negated mean of all values at or
// below the VaR threshold. When no values qualify it equals VaR, so
// CVaR >= VaR holds for every distribution.
func CVaR(values []float64, confidence float64) float64 {
	if len(values) == 0 {
		return 0
	}
	v := VaR(values, confidence)
	var sum float64
	n := 0
	for _, x := range values {
		if x <= -v {
			sum += x
			n++
		}
	}
	if n == 0 {
		return v
	}
	return -sum / float64(n)
}

// DownsideVolatility is the population standard deviation of the values
// strictly below threshold; zero if none are.
func DownsideVolatility(values []float64, threshold float64) float64 {
	var downside []float64
	for _, x := range values {
		if x < threshold {
			downside = append(downside, x)
		}
	}
	if len(downside) == 0 {
		return 0
	}
	return stat.PopStdDev(downside, nil)
}

// SharpeRatio is (mean - riskFree) / sample std. Degenerate or non-finite
// results collapse to zero rather than propagating NaN or Inf.
func SharpeRatio(values []float64, riskFree float64) float64 {
	if len(values) < 2 {
		return 0
	}
	std := stat.StdDev(values, nil)
	if std < minStd {
		return 0
	}
	sharpe := (stat.Mean(values, nil) - riskFree) / std
	if !isFinite(sharpe) {
		return 0
	}
	return sharpe
}

// SortinoRatio is (mean - riskFree) / downside volatility below target,
// with the same zero guards as SharpeRatio.
func SortinoRatio(values []float64, riskFree, target float64) float64 {
	if len(values) == 0 {
		return 0
	}
	downside := DownsideVolatility(values, target)
	if downside < minStd {
		return 0
	}
	sortino := (stat.Mean(values, nil) - riskFree) / downside
	if !isFinite(sortino) {
		return 0
	}
	return sortino
}

// Metrics aggregates every reported statistic for one distribution.
type Metrics struct {
	VaR  map[int]float64 `json:"var"`
	CVaR map[int]float64 `json:"cvar"`

	Volatility         float64 `json:"volatility"`
	DownsideVolatility float64 `json:"downside_volatility"`
	Sharpe             float64 `json:"sharpe"`
	Sortino            float64 `json:"sortino"`

	Percentiles map[int]float64 `json:"percentiles"`

	ProbNegative  float64 `json:"prob_negative"`
	ProbLowMargin float64 `json:"prob_below_5pct"`
}

// Summarize computes the full metric set over a 1-D distribution. Empty
// input yields zeroed metrics rather than an error.
func Summarize(values []float64, riskFree float64) Metrics {
	m := Metrics{
		VaR:         make(map[int]float64, len(ConfidenceLevels)),
		CVaR:        make(map[int]float64, len(ConfidenceLevels)),
		Percentiles: make(map[int]float64, len(percentileLadder)),
	}
	for _, level := range ConfidenceLevels {
		c := float64(level) / 100
		m.VaR[level] = VaR(values, c)
		m.CVaR[level] = CVaR(values, c)
	}
	if len(values) == 0 {
		for _, p := range percentileLadder {
			m.Percentiles[p] = 0
		}
		return m
	}

	m.Volatility = stat.PopStdDev(values, nil)
	m.DownsideVolatility = DownsideVolatility(values, 0)
	m.Sharpe = SharpeRatio(values, riskFree)
	m.Sortino = SortinoRatio(values, riskFree, 0)

	for _, p := range percentileLadder {
		m.Percentiles[p] = percentile(values, float64(p))
	}

	negative, thin := 0, 0
	for _, x := range values {
		if x < 0 {
			negative++
		}
		if x < lowMarginThreshold {
			thin++
		}
	}
	m.ProbNegative = float64(negative) / float64(len(values))
	m.ProbLowMargin = float64(thin) / float64(len(values))
	return m
}

// percentile evaluates the p-th percentile (0..100) with linear
// interpolation over a sorted copy.
func percentile(values []float64, p float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Quantile(p/100, stat.LinInterp, sorted, nil)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
