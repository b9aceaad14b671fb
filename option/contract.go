package option

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// Contract is the economic parameter set shared by all models. It is a value
// type: Bump and With return modified copies.
type Contract struct {
	Spot       float64 `json:"spot"`       // underlying price
	Strike     float64 `json:"strike"`     // strike price
	Maturity   float64 `json:"maturity"`   // years to expiry
	Volatility float64 `json:"volatility"` // annualised
	Rate       float64 `json:"rate"`       // continuously compounded risk-free rate
}

// Field selects the contract parameter a Greek perturbs.
type Field int

const (
	Spot Field = iota
	Maturity
	Volatility
	Rate
)

func (f Field) String() string {
	switch f {
	case Spot:
		return "spot"
	case Maturity:
		return "maturity"
	case Volatility:
		return "volatility"
	case Rate:
		return "rate"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Get returns the value of field f.
func (c Contract) Get(f Field) float64 {
	switch f {
	case Spot:
		return c.Spot
	case Maturity:
		return c.Maturity
	case Volatility:
		return c.Volatility
	case Rate:
		return c.Rate
	}
	panic(fmt.Sprintf("option: unknown field %d", int(f)))
}

// With returns a copy of c with field f set to v.
func (c Contract) With(f Field, v float64) Contract {
	switch f {
	case Spot:
		c.Spot = v
	case Maturity:
		c.Maturity = v
	case Volatility:
		c.Volatility = v
	case Rate:
		c.Rate = v
	default:
		panic(fmt.Sprintf("option: unknown field %d", int(f)))
	}
	return c
}

// Bump returns a copy of c with field f shifted by delta.
func (c Contract) Bump(f Field, delta float64) Contract {
	return c.With(f, c.Get(f)+delta)
}

// Intrinsic is the payoff if the option expired now.
func (c Contract) Intrinsic(kind Kind) float64 {
	return kind.Payoff(c.Spot, c.Strike)
}

// Discount is e^(-rT).
func (c Contract) Discount() float64 {
	return math.Exp(-c.Rate * c.Maturity)
}

// Validate reports every parameter outside its domain. The returned error
// wraps ErrInvalidContract; multierr.Errors splits it per field.
func (c Contract) Validate() error {
	var err error
	if !finite(c.Spot) || c.Spot <= 0 {
		err = multierr.Append(err, &ValidationError{Field: "spot", Value: c.Spot, Reason: "must be positive"})
	}
	if !finite(c.Strike) || c.Strike <= 0 {
		err = multierr.Append(err, &ValidationError{Field: "strike", Value: c.Strike, Reason: "must be positive"})
	}
	if !finite(c.Maturity) || c.Maturity < 0 {
		err = multierr.Append(err, &ValidationError{Field: "maturity", Value: c.Maturity, Reason: "must not be negative"})
	}
	if !finite(c.Volatility) || c.Volatility < 0 {
		err = multierr.Append(err, &ValidationError{Field: "volatility", Value: c.Volatility, Reason: "must not be negative"})
	}
	if !finite(c.Rate) {
		err = multierr.Append(err, &ValidationError{Field: "rate", Value: c.Rate, Reason: "must be finite"})
	}
	return err
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
