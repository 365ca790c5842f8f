package hedge

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Rates carries the domestic and foreign annualized risk-free rates.
type Rates struct {
	Domestic float64 `json:"r_domestic" yaml:"r_domestic"`
	Foreign  float64 `json:"r_foreign" yaml:"r_foreign"`
}

// ForwardRate prices a forward via covered interest-rate parity with simple
// compounding:
//
//	F = S (1 + r_d T) / (1 + r_f T)
func ForwardRate(spot float64, r Rates, tenorYears float64) float64 {
	return spot * (1 + r.Domestic*tenorYears) / (1 + r.Foreign*tenorYears)
}

// d1, d2 of the Garman-Kohlhagen formula. Callers guarantee tenor > 0 and
// sigma > 0.
func gkD1D2(spot, strike float64, r Rates, sigma, tenorYears float64) (float64, float64) {
	sqrtT := math.Sqrt(tenorYears)
	d1 := (math.Log(spot/strike) + (r.Domestic-r.Foreign+0.5*sigma*sigma)*tenorYears) / (sigma * sqrtT)
	return d1, d1 - sigma*sqrtT
}

// GarmanKohlhagenCall prices a currency call with dual discounting:
//
//	C = S e^{-r_f T} N(d1) - K e^{-r_d T} N(d2)
//
// A non-positive tenor short-circuits to intrinsic value.
func GarmanKohlhagenCall(spot, strike float64, r Rates, sigma, tenorYears float64) float64 {
	if tenorYears <= 0 {
		return math.Max(spot-strike, 0)
	}
	d1, d2 := gkD1D2(spot, strike, r, sigma, tenorYears)
	return spot*math.Exp(-r.Foreign*tenorYears)*distuv.UnitNormal.CDF(d1) -
		strike*math.Exp(-r.Domestic*tenorYears)*distuv.UnitNormal.CDF(d2)
}

// GarmanKohlhagenPut prices a currency put:
//
//	P = K e^{-r_d T} N(-d2) - S e^{-r_f T} N(-d1)
func GarmanKohlhagenPut(spot, strike float64, r Rates, sigma, tenorYears float64) float64 {
	if tenorYears <= 0 {
		return math.Max(strike-spot, 0)
	}
	d1, d2 := gkD1D2(spot, strike, r, sigma, tenorYears)
	return strike*math.Exp(-r.Domestic*tenorYears)*distuv.UnitNormal.CDF(-d2) -
		spot*math.Exp(-r.Foreign*tenorYears)*distuv.UnitNormal.CDF(-d1)
}
