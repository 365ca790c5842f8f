// Package optimizer searches the hedge-ratio simplex for the mix that
// maximizes expected profitability or minimizes its variance, subject to
// optional CVaR and budget ceilings. The search is a multi-start local
// minimization over one fixed scenario matrix, so differences between trial
// mixes are attributable to the hedge alone, never to resampling noise.
package optimizer

import (
	"math"
	"math/rand/v2"
	"runtime"
	"sync"

	gopt "gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/rustyeddy/fxhedge/fxpath"
	"github.com/rustyeddy/fxhedge/hedge"
	"github.com/rustyeddy/fxhedge/profit"
	"github.com/rustyeddy/fxhedge/risk"
)

// Objective selects what the optimizer minimizes.
type Objective string

const (
	// MaximizeNPM minimizes the negated expected final-period NPM.
	MaximizeNPM Objective = "maximize_npm"
	// MinimizeVariance minimizes the final-period NPM variance.
	MinimizeVariance Objective = "minimize_variance"
)

const (
	defaultTrials         = 5
	defaultFrontierPoints = 20
	defaultTenorMonths    = 3

	// maxOptimizationPaths caps the ensemble used during the search;
	// larger requests are truncated for tractable trial counts.
	maxOptimizationPaths = 5000

	maxIterations = 200
	tolerance     = 1e-6

	// penaltyWeight scales the quadratic constraint penalties added to
	// the objective.
	penaltyWeight = 1000.0

	// optionBudgetBps is the heuristic full-hedge option cost used by the
	// budget constraint: optionRatio * 250bps must fit the budget.
	optionBudgetBps = 250.0

	// dirichletScale keeps random starts interior to the feasible simplex.
	dirichletScale = 0.8

	constraintTol = 1e-6
)

// balancedDefault is the fixed first start and the documented fallback mix
// when no trial converges.
var balancedDefault = [3]float64{0.5, 0.3, 0.2}

// Options control a single optimization run.
type Options struct {
	Objective      Objective `json:"objective" yaml:"objective"`
	TenorMonths    int       `json:"tenor_months" yaml:"tenor_months"`
	Trials         int       `json:"trials" yaml:"trials"`
	TargetCVaR     *float64  `json:"target_cvar,omitempty" yaml:"target_cvar,omitempty"`
	MaxBudgetBps   *float64  `json:"max_budget_bps,omitempty" yaml:"max_budget_bps,omitempty"`
	FrontierPoints int       `json:"frontier_points" yaml:"frontier_points"`
}

func (o Options) withDefaults() Options {
	if o.Objective == "" {
		o.Objective = MaximizeNPM
	}
	if o.TenorMonths <= 0 {
		o.TenorMonths = defaultTenorMonths
	}
	if o.Trials <= 0 {
		o.Trials = defaultTrials
	}
	if o.FrontierPoints <= 0 {
		o.FrontierPoints = defaultFrontierPoints
	}
	return o
}

// Result is the outcome of an optimization run. Success is false when no
// trial converged to a feasible point, in which case Hedge holds the
// balanced default mix.
type Result struct {
	Hedge hedge.Config `json:"optimal_hedge"`

	ExpectedNPM   float64 `json:"expected_npm"`
	MedianNPM     float64 `json:"npm_median"`
	NPMVolatility float64 `json:"npm_volatility"`
	CVaR95        float64 `json:"cvar_95"`

	Frontier []FrontierPoint `json:"efficient_frontier"`
	Success  bool            `json:"optimization_success"`
}

// evaluator is the shared oracle: it values a candidate mix against the one
// fixed scenario matrix and returns the final-period NPM cross-section.
type evaluator struct {
	m     *fxpath.Matrix
	firm  profit.FirmProfile
	rates hedge.Rates
	cfg   fxpath.Config
	tenor int
}

func (e *evaluator) finalNPM(x [3]float64) []float64 {
	hc := hedge.Config{
		ForwardRatio: x[0],
		OptionRatio:  x[1],
		NaturalRatio: x[2],
		TenorMonths:  e.tenor,
	}
	valued := hedge.Value(e.m, e.cfg.SpotRate, hc, e.rates, e.cfg.SigmaAnnual, e.cfg.TransactionCostBps)
	return profit.Project(e.m, e.firm, valued).FinalNPM()
}

func (e *evaluator) objective(obj Objective, x [3]float64) float64 {
	final := e.finalNPM(x)
	if obj == MinimizeVariance {
		return stat.PopVariance(final, nil)
	}
	return -stat.Mean(final, nil)
}

// Run generates the scenario matrix once from cfg and searches for the best
// hedge mix under opts. The returned error is reserved for configuration
// problems (path generation); optimization failure is reported through
// Result.Success, never as an error.
func Run(firm profit.FirmProfile, cfg fxpath.Config, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if cfg.NPaths > maxOptimizationPaths {
		cfg.NPaths = maxOptimizationPaths
	}

	m, err := fxpath.Generate(cfg)
	if err != nil {
		return nil, err
	}

	e := &evaluator{
		m:     m,
		firm:  firm,
		rates: hedge.Rates{Domestic: cfg.DomesticRate, Foreign: cfg.ForeignRate},
		cfg:   cfg,
		tenor: opts.TenorMonths,
	}

	best, ok := multiStart(e, opts, cfg.Seed)
	res := &Result{Success: ok}
	if !ok {
		best = balancedDefault
	}
	res.Hedge = hedge.Config{
		ForwardRatio: best[0],
		OptionRatio:  best[1],
		NaturalRatio: best[2],
		TenorMonths:  opts.TenorMonths,
	}

	final := e.finalNPM(best)
	res.ExpectedNPM = stat.Mean(final, nil)
	res.MedianNPM = median(final)
	res.NPMVolatility = stat.PopStdDev(final, nil)
	res.CVaR95 = risk.CVaR(final, 0.95)
	res.Frontier = frontier(e, opts.FrontierPoints)
	return res, nil
}

type trialOutcome struct {
	x     [3]float64
	value float64
	ok    bool
}

// multiStart fans the trials out over a worker pool. Each trial owns a
// deterministic start derived from the base seed and its index, so the run
// is reproducible regardless of scheduling order; the fan-in reduction
// scans trials in index order and keeps the lowest feasible objective.
func multiStart(e *evaluator, opts Options, seed uint64) ([3]float64, bool) {
	outcomes := make([]trialOutcome, opts.Trials)

	workers := runtime.GOMAXPROCS(0)
	if workers > opts.Trials {
		workers = opts.Trials
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for trial := range jobs {
				outcomes[trial] = runTrial(e, opts, startPoint(trial, seed))
			}
		}()
	}
	for trial := 0; trial < opts.Trials; trial++ {
		jobs <- trial
	}
	close(jobs)
	wg.Wait()

	best := [3]float64{}
	bestValue := math.Inf(1)
	found := false
	for _, out := range outcomes {
		if out.ok && out.value < bestValue {
			best = out.x
			bestValue = out.value
			found = true
		}
	}
	return best, found
}

// startPoint is the balanced guess for trial 0, and a Dirichlet(1,1,1) draw
// scaled interior to the simplex for every later trial.
func startPoint(trial int, seed uint64) [3]float64 {
	if trial == 0 {
		return balancedDefault
	}
	src := rand.NewPCG(seed+uint64(trial), uint64(trial))
	dir := distmv.NewDirichlet([]float64{1, 1, 1}, src)
	draw := dir.Rand(nil)
	return [3]float64{
		draw[0] * dirichletScale,
		draw[1] * dirichletScale,
		draw[2] * dirichletScale,
	}
}

// runTrial performs one bounded local minimization from x0. Constraints
// enter as quadratic penalties on top of bound projection; the solution is
// projected back onto the feasible set and re-checked before acceptance.
// Any solver error or infeasible endpoint discards the trial.
func runTrial(e *evaluator, opts Options, x0 [3]float64) trialOutcome {
	problem := gopt.Problem{
		Func: func(x []float64) float64 {
			xp := project(x)
			val := e.objective(opts.Objective, xp)

			if sum := xp[0] + xp[1] + xp[2]; sum > 1 {
				val += penaltyWeight * (sum - 1) * (sum - 1)
			}
			if opts.TargetCVaR != nil {
				if cv := risk.CVaR(e.finalNPM(xp), 0.95); cv > *opts.TargetCVaR {
					over := cv - *opts.TargetCVaR
					val += penaltyWeight * over * over
				}
			}
			if opts.MaxBudgetBps != nil {
				if cost := xp[1] * optionBudgetBps; cost > *opts.MaxBudgetBps {
					over := (cost - *opts.MaxBudgetBps) / optionBudgetBps
					val += penaltyWeight * over * over
				}
			}
			return val
		},
	}

	settings := &gopt.Settings{
		MajorIterations: maxIterations,
		Converger: &gopt.FunctionConverge{
			Absolute:   tolerance,
			Iterations: 20,
		},
	}

	result, err := gopt.Minimize(problem, x0[:], settings, &gopt.NelderMead{})
	if err != nil || !converged(result.Status) {
		return trialOutcome{}
	}

	x := normalize(project(result.X))
	if !feasible(e, opts, x) {
		return trialOutcome{}
	}
	return trialOutcome{x: x, value: e.objective(opts.Objective, x), ok: true}
}

func converged(s gopt.Status) bool {
	switch s {
	case gopt.Success, gopt.FunctionConvergence, gopt.GradientThreshold,
		gopt.StepConvergence, gopt.MethodConverge:
		return true
	}
	return false
}

// project clamps each ratio to [0, 1].
func project(x []float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = math.Min(1, math.Max(0, x[i]))
	}
	return out
}

// normalize rescales onto the simplex when the ratios over-commit: the
// optimizer must never return a mix hedging more than the full exposure.
func normalize(x [3]float64) [3]float64 {
	sum := x[0] + x[1] + x[2]
	if sum <= 1 {
		return x
	}
	return [3]float64{x[0] / sum, x[1] / sum, x[2] / sum}
}

func feasible(e *evaluator, opts Options, x [3]float64) bool {
	if x[0]+x[1]+x[2] > 1+constraintTol {
		return false
	}
	if opts.TargetCVaR != nil {
		if risk.CVaR(e.finalNPM(x), 0.95) > *opts.TargetCVaR+constraintTol {
			return false
		}
	}
	if opts.MaxBudgetBps != nil {
		if x[1]*optionBudgetBps > *opts.MaxBudgetBps+constraintTol {
			return false
		}
	}
	return true
}
