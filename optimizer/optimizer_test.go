package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/fxhedge/fxpath"
	"github.com/rustyeddy/fxhedge/hedge"
	"github.com/rustyeddy/fxhedge/profit"
)

var testFirm = profit.FirmProfile{
	RevenueQ:         1000,
	CostQ:            800,
	Assets:           5000,
	ExportShare:      0.4,
	ForeignCostShare: 0.2,
	PassThrough:      0.3,
}

func testSimConfig() fxpath.Config {
	return fxpath.Config{
		Model:           fxpath.ModelGBM,
		NPaths:          400,
		HorizonQuarters: 4,
		SigmaAnnual:     0.08,
		DriftMode:       fxpath.DriftZero,
		SpotRate:        83.0,
		DomesticRate:    0.065,
		ForeignRate:     0.05,
		Seed:            42,
	}
}

func TestRunMaximizeNPM(t *testing.T) {
	t.Parallel()

	res, err := Run(testFirm, testSimConfig(), Options{Objective: MaximizeNPM, Trials: 3})
	assert.NoError(t, err)

	h := res.Hedge
	assert.GreaterOrEqual(t, h.ForwardRatio, 0.0)
	assert.GreaterOrEqual(t, h.OptionRatio, 0.0)
	assert.GreaterOrEqual(t, h.NaturalRatio, 0.0)
	assert.LessOrEqual(t, h.ForwardRatio, 1.0)
	assert.LessOrEqual(t, h.OptionRatio, 1.0)
	assert.LessOrEqual(t, h.NaturalRatio, 1.0)
	assert.LessOrEqual(t, h.TotalRatio(), 1.0+constraintTol)
	assert.Equal(t, 3, h.TenorMonths)

	assert.Len(t, res.Frontier, defaultFrontierPoints)
}

func TestRunMinimizeVariance(t *testing.T) {
	t.Parallel()

	res, err := Run(testFirm, testSimConfig(), Options{Objective: MinimizeVariance, Trials: 3})
	assert.NoError(t, err)
	assert.LessOrEqual(t, res.Hedge.TotalRatio(), 1.0+constraintTol)
	assert.GreaterOrEqual(t, res.NPMVolatility, 0.0)
}

func TestRunReproducible(t *testing.T) {
	t.Parallel()

	opts := Options{Objective: MaximizeNPM, Trials: 3}
	a, err := Run(testFirm, testSimConfig(), opts)
	assert.NoError(t, err)
	b, err := Run(testFirm, testSimConfig(), opts)
	assert.NoError(t, err)

	assert.Equal(t, a.Hedge, b.Hedge)
	assert.Equal(t, a.Success, b.Success)
	assert.Equal(t, a.ExpectedNPM, b.ExpectedNPM)
}

func TestRunRejectsBadModel(t *testing.T) {
	t.Parallel()

	cfg := testSimConfig()
	cfg.Model = "heston"
	res, err := Run(testFirm, cfg, Options{})
	assert.Nil(t, res)
	assert.Error(t, err)
}

func TestRunCapsPathCount(t *testing.T) {
	t.Parallel()

	cfg := testSimConfig()
	cfg.NPaths = 20000
	cfg.HorizonQuarters = 1
	res, err := Run(testFirm, cfg, Options{Trials: 1, FrontierPoints: 2})
	assert.NoError(t, err)
	assert.NotNil(t, res)
}

func TestRunBudgetConstraintLimitsOptions(t *testing.T) {
	t.Parallel()

	budget := 50.0 // 250bps full option hedge: at most 20% options
	opts := Options{Objective: MaximizeNPM, Trials: 3, MaxBudgetBps: &budget}
	res, err := Run(testFirm, testSimConfig(), opts)
	assert.NoError(t, err)

	if res.Success {
		assert.LessOrEqual(t, res.Hedge.OptionRatio*250, budget+constraintTol*250)
	}
}

func TestRunImpossibleCVaRTargetFallsBack(t *testing.T) {
	t.Parallel()

	// No mix can push CVaR below an absurd target; every trial is
	// discarded and the balanced default comes back flagged.
	target := -1e12
	opts := Options{Objective: MaximizeNPM, Trials: 2, TargetCVaR: &target}
	res, err := Run(testFirm, testSimConfig(), opts)
	assert.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, 0.5, res.Hedge.ForwardRatio)
	assert.Equal(t, 0.3, res.Hedge.OptionRatio)
	assert.Equal(t, 0.2, res.Hedge.NaturalRatio)
}

func TestOptionsDefaults(t *testing.T) {
	t.Parallel()

	o := Options{}.withDefaults()
	assert.Equal(t, MaximizeNPM, o.Objective)
	assert.Equal(t, defaultTenorMonths, o.TenorMonths)
	assert.Equal(t, defaultTrials, o.Trials)
	assert.Equal(t, defaultFrontierPoints, o.FrontierPoints)

	o = Options{Objective: MinimizeVariance, Trials: 9}.withDefaults()
	assert.Equal(t, MinimizeVariance, o.Objective)
	assert.Equal(t, 9, o.Trials)
}

func TestStartPoints(t *testing.T) {
	t.Parallel()

	assert.Equal(t, balancedDefault, startPoint(0, 42))

	for trial := 1; trial < 6; trial++ {
		x := startPoint(trial, 42)
		sum := 0.0
		for _, v := range x {
			assert.GreaterOrEqual(t, v, 0.0)
			sum += v
		}
		// Dirichlet draws sum to one before the 0.8 scaling.
		assert.InDelta(t, dirichletScale, sum, 1e-9)
	}

	// Deterministic per (trial, seed).
	assert.Equal(t, startPoint(2, 42), startPoint(2, 42))
	assert.NotEqual(t, startPoint(2, 42), startPoint(3, 42))
}

func TestProjectAndNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, [3]float64{0, 1, 0.5}, project([]float64{-2, 7, 0.5}))

	// Under-committed mixes pass through untouched.
	assert.Equal(t, [3]float64{0.2, 0.3, 0.1}, normalize([3]float64{0.2, 0.3, 0.1}))

	n := normalize([3]float64{0.8, 0.8, 0.4})
	assert.InDelta(t, 1.0, n[0]+n[1]+n[2], 1e-12)
	assert.InDelta(t, 0.4, n[0], 1e-12)
}

func TestFeasible(t *testing.T) {
	t.Parallel()

	e := newTestEvaluator(t)

	assert.True(t, feasible(e, Options{}, [3]float64{0.5, 0.3, 0.2}))
	assert.False(t, feasible(e, Options{}, [3]float64{0.6, 0.4, 0.2}))

	budget := 10.0
	opts := Options{MaxBudgetBps: &budget}
	assert.True(t, feasible(e, opts, [3]float64{0.5, 0.04, 0}))
	assert.False(t, feasible(e, opts, [3]float64{0.5, 0.5, 0}))
}

func newTestEvaluator(t *testing.T) *evaluator {
	t.Helper()

	cfg := testSimConfig()
	m, err := fxpath.Generate(cfg)
	assert.NoError(t, err)
	return &evaluator{
		m:     m,
		firm:  testFirm,
		rates: hedge.Rates{Domestic: cfg.DomesticRate, Foreign: cfg.ForeignRate},
		cfg:   cfg,
		tenor: 3,
	}
}

func TestFrontierShape(t *testing.T) {
	t.Parallel()

	e := newTestEvaluator(t)
	points := frontier(e, 20)
	assert.Len(t, points, 20)

	assert.Equal(t, 0.0, points[0].HedgeLevel)
	assert.Equal(t, 1.0, points[len(points)-1].HedgeLevel)

	for _, p := range points {
		assert.InDelta(t, p.HedgeLevel*0.6, p.Forwards, 1e-12)
		assert.InDelta(t, p.HedgeLevel*0.3, p.Options, 1e-12)
		assert.InDelta(t, p.HedgeLevel*0.1, p.Natural, 1e-12)
	}
}

func TestFrontierMinimumPoints(t *testing.T) {
	t.Parallel()

	e := newTestEvaluator(t)
	points := frontier(e, 1)
	assert.Len(t, points, 2)
}

func TestMedian(t *testing.T) {
	t.Parallel()

	assert.Zero(t, median(nil))
	assert.Equal(t, 2.0, median([]float64{3, 1, 2}))
}
