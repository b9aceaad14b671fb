package option

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// PriceFunc prices contract c. It must be a pure function of its arguments.
type PriceFunc func(c Contract, kind Kind) float64

// Steps are the bump sizes per field.
type Steps struct {
	Spot       float64 `json:"spot"`
	Maturity   float64 `json:"maturity"`
	Volatility float64 `json:"volatility"`
	Rate       float64 `json:"rate"`
}

// DefaultSteps suit price surfaces that are not smooth at fine scales.
var DefaultSteps = Steps{Spot: 0.01, Maturity: 0.01, Volatility: 0.01, Rate: 0.01}

// FiniteDifference derives Greeks from any PriceFunc by re-pricing bumped
// copies of the contract.
//
//	delta  central        (P(S+h) - P(S-h)) / 2h
//	gamma  central 2nd    (P(S+h) - 2P(S) + P(S-h)) / h²
//	theta  backward on T  (P(T) - P(T-h)) / h
//	vega   forward on σ   (P(σ+h) - P(σ)) / h
//	rho    forward on r   (P(r+h) - P(r)) / h
type FiniteDifference struct {
	Price PriceFunc
	Steps Steps
}

// NewFiniteDifference falls back to DefaultSteps for any zero step.
func NewFiniteDifference(price PriceFunc, steps Steps) FiniteDifference {
	if steps.Spot <= 0 {
		steps.Spot = DefaultSteps.Spot
	}
	if steps.Maturity <= 0 {
		steps.Maturity = DefaultSteps.Maturity
	}
	if steps.Volatility <= 0 {
		steps.Volatility = DefaultSteps.Volatility
	}
	if steps.Rate <= 0 {
		steps.Rate = DefaultSteps.Rate
	}
	return FiniteDifference{Price: price, Steps: steps}
}

func (d FiniteDifference) Delta(c Contract, kind Kind) float64 {
	return fd.Derivative(d.along(c, kind, Spot), c.Spot, &fd.Settings{
		Formula: fd.Central,
		Step:    d.spotStep(c),
	})
}

func (d FiniteDifference) Gamma(c Contract, kind Kind) float64 {
	return fd.Derivative(d.along(c, kind, Spot), c.Spot, &fd.Settings{
		Formula:     fd.Central2nd,
		Step:        d.spotStep(c),
		OriginKnown: true,
		OriginValue: d.Price(c, kind),
	})
}

// Theta compares the price with the price one maturity step closer to
// expiry. The bump never takes maturity below zero; an expired contract has
// no theta.
func (d FiniteDifference) Theta(c Contract, kind Kind) float64 {
	h := math.Min(d.Steps.Maturity, c.Maturity)
	if h <= 0 {
		return 0
	}
	return fd.Derivative(d.along(c, kind, Maturity), c.Maturity, &fd.Settings{
		Formula: fd.Backward,
		Step:    h,
	})
}

func (d FiniteDifference) Vega(c Contract, kind Kind) float64 {
	return fd.Derivative(d.along(c, kind, Volatility), c.Volatility, &fd.Settings{
		Formula: fd.Forward,
		Step:    d.Steps.Volatility,
	})
}

func (d FiniteDifference) Rho(c Contract, kind Kind) float64 {
	return fd.Derivative(d.along(c, kind, Rate), c.Rate, &fd.Settings{
		Formula: fd.Forward,
		Step:    d.Steps.Rate,
	})
}

// spotStep keeps S-h strictly positive.
func (d FiniteDifference) spotStep(c Contract) float64 {
	return math.Min(d.Steps.Spot, c.Spot/2)
}

// along views the price as a function of one field, every other field fixed.
func (d FiniteDifference) along(c Contract, kind Kind, f Field) func(float64) float64 {
	return func(x float64) float64 {
		return d.Price(c.With(f, x), kind)
	}
}
