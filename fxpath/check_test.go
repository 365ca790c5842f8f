package fxpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPassesForAllModels(t *testing.T) {
	t.Parallel()

	for _, model := range []Model{ModelGBM, ModelRegime, ModelJump, ModelGARCH} {
		cfg := testConfig(model)
		cfg.NPaths = 5000
		target := cfg.SigmaAnnual
		if model == ModelGARCH {
			// GARCH volatility follows sqrt(omega/(1-alpha-beta)), not SigmaAnnual.
			target = 0.045
		}
		m, err := Generate(cfg)
		assert.NoError(t, err)

		d := Check(m, target)
		assert.True(t, d.AllPositive, string(model))
		assert.True(t, d.SpotAligned, string(model))
		assert.Less(t, d.OutlierShare, 0.01, string(model))
	}
}

func TestCheckRealizedVolNearTarget(t *testing.T) {
	t.Parallel()

	cfg := testConfig(ModelGBM)
	cfg.NPaths = 5000
	m, err := Generate(cfg)
	assert.NoError(t, err)

	d := Check(m, 0.08)
	assert.True(t, d.Passed)
	assert.InDelta(t, 0.08, d.RealizedVol, 0.08*0.2)
	assert.Equal(t, 0.08, d.TargetVol)
}

func TestCheckFlagsMisalignedSpot(t *testing.T) {
	t.Parallel()

	m := &Matrix{
		Spot:    83,
		Horizon: 1,
		Rows:    [][]float64{{84, 85}},
	}
	d := Check(m, 0.08)
	assert.False(t, d.SpotAligned)
	assert.False(t, d.Passed)
}

func TestCheckFlagsNonPositiveRates(t *testing.T) {
	t.Parallel()

	m := &Matrix{
		Spot:    83,
		Horizon: 1,
		Rows:    [][]float64{{83, -1}},
	}
	d := Check(m, 0.08)
	assert.False(t, d.AllPositive)
	assert.False(t, d.Passed)
}

func TestCheckFlagsVolMismatch(t *testing.T) {
	t.Parallel()

	cfg := testConfig(ModelGBM)
	m, err := Generate(cfg)
	assert.NoError(t, err)

	// Target far above realized: over 50% off fails.
	d := Check(m, 0.4)
	assert.False(t, d.Passed)
}
