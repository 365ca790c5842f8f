package fxpath

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Regime volatility scaling: the calm state runs at 60% of the configured
// volatility, the stressed state at 140%.
const (
	regimeLowVolScale  = 0.6
	regimeHighVolScale = 1.4
)

// source builds the deterministic random source for one generator call.
// Each generator owns its stream; nothing here touches global RNG state.
func source(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed)
}

// gbmPaths evolves each path with the exact log-normal step
//
//	log S_{t+1} - log S_t = (mu - sigma^2/2) dt + sigma sqrt(dt) z
//
// using antithetic variates: every normal draw is paired with its negation,
// which halves Monte Carlo variance without changing the marginal law.
func gbmPaths(cfg Config, mu float64) *Matrix {
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: source(cfg.Seed)}

	n := cfg.NPaths
	steps := cfg.HorizonQuarters
	sigma := cfg.SigmaAnnual
	drift := (mu - 0.5*sigma*sigma) * dt
	vol := sigma * math.Sqrt(dt)

	half := (n + 1) / 2
	base := make([][]float64, half)
	for i := range base {
		row := make([]float64, steps)
		for t := range row {
			row[t] = normal.Rand()
		}
		base[i] = row
	}

	m := newMatrix(cfg.SpotRate, n, steps)
	logSpot := math.Log(cfg.SpotRate)
	for i := 0; i < n; i++ {
		sign := 1.0
		z := base[i%half]
		if i >= half {
			sign = -1.0
		}
		logPrice := logSpot
		row := m.Rows[i]
		for t := 0; t < steps; t++ {
			logPrice += drift + vol*sign*z[t]
			row[t+1] = math.Exp(logPrice)
		}
	}
	return m
}

// regimePaths carries a hidden two-state Markov chain per path. The regime
// decides the step volatility; the drift is shared by both states. Each
// path's state lives in a local accumulator rather than a side array.
func regimePaths(cfg Config, mu float64) *Matrix {
	p := cfg.Regime.orDefault()
	src := source(cfg.Seed)
	rng := rand.New(src)
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	sigmaLow := cfg.SigmaAnnual * regimeLowVolScale
	sigmaHigh := cfg.SigmaAnnual * regimeHighVolScale

	m := newMatrix(cfg.SpotRate, cfg.NPaths, cfg.HorizonQuarters)
	for _, row := range m.Rows {
		high := false // every path starts calm
		for t := 0; t < cfg.HorizonQuarters; t++ {
			if high {
				if rng.Float64() < p.PHighToLow {
					high = false
				}
			} else if rng.Float64() < p.PLowToHigh {
				high = true
			}

			sigma := sigmaLow
			if high {
				sigma = sigmaHigh
			}
			step := (mu-0.5*sigma*sigma)*dt + sigma*math.Sqrt(dt)*normal.Rand()
			row[t+1] = row[t] * math.Exp(step)
		}
	}
	return m
}

// jumpPaths implements the Merton model: the GBM diffusion step plus a
// compound Poisson jump term added to the log-return exponent.
func jumpPaths(cfg Config, mu float64) *Matrix {
	p := cfg.Jump.orDefault()
	src := source(cfg.Seed)
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	jumpSize := distuv.Normal{Mu: p.Mean, Sigma: p.Std, Src: src}
	jumpCount := distuv.Poisson{Lambda: p.Intensity * dt, Src: src}

	sigma := cfg.SigmaAnnual
	drift := (mu - 0.5*sigma*sigma) * dt
	vol := sigma * math.Sqrt(dt)

	m := newMatrix(cfg.SpotRate, cfg.NPaths, cfg.HorizonQuarters)
	for _, row := range m.Rows {
		for t := 0; t < cfg.HorizonQuarters; t++ {
			step := drift + vol*normal.Rand()
			for k := int(jumpCount.Rand()); k > 0; k-- {
				step += jumpSize.Rand()
			}
			row[t+1] = row[t] * math.Exp(step)
		}
	}
	return m
}

// garchPaths maintains a running conditional variance per path:
//
//	v_t = omega + alpha e_{t-1}^2 + beta v_{t-1}
//
// seeded at the long-run variance omega/(1-alpha-beta). The previous shock
// is carried forward scaled by sqrt(dt).
func garchPaths(cfg Config, mu float64) (*Matrix, error) {
	p := cfg.GARCH.orDefault()
	if p.Alpha+p.Beta >= 1 {
		return nil, fmt.Errorf("garch alpha+beta must be below 1, got %.4f", p.Alpha+p.Beta)
	}

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: source(cfg.Seed)}
	longRun := p.Omega / (1 - p.Alpha - p.Beta)
	sqrtDt := math.Sqrt(dt)

	m := newMatrix(cfg.SpotRate, cfg.NPaths, cfg.HorizonQuarters)
	for _, row := range m.Rows {
		variance := longRun
		epsPrev := 0.0
		for t := 0; t < cfg.HorizonQuarters; t++ {
			variance = p.Omega + p.Alpha*epsPrev*epsPrev + p.Beta*variance
			eps := math.Sqrt(variance) * normal.Rand()
			step := (mu-0.5*variance)*dt + eps*sqrtDt
			row[t+1] = row[t] * math.Exp(step)
			epsPrev = eps * sqrtDt
		}
	}
	return m, nil
}
