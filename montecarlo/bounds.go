package montecarlo

import (
	"fmt"
	"math"

	"go.uber.org/multierr"

	"github.com/charlerive/pricing/option"
)

// Range is a closed interval a Greek estimate is clamped to.
type Range struct {
	Min float64 `json:"min" mapstructure:"min"`
	Max float64 `json:"max" mapstructure:"max"`
}

// Clamp limits v to the range. NaN maps to zero.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(r.Min, math.Min(r.Max, v))
}

func (r Range) validate(name string) error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || r.Min > r.Max {
		return &option.ValidationError{
			Field:  "bounds." + name,
			Value:  r.Min,
			Reason: fmt.Sprintf("min must not exceed max %v", r.Max),
		}
	}
	return nil
}

// Bounds is the clamping policy for finite-difference Greeks on a simulated
// price. Independent resampling makes raw bump-and-reprice estimates noisy;
// these limits are plausibility caps chosen for reporting, not derived from
// the model.
type Bounds struct {
	Delta Range `json:"delta" mapstructure:"delta"`
	Gamma Range `json:"gamma" mapstructure:"gamma"`
	Theta Range `json:"theta" mapstructure:"theta"`
	Vega  Range `json:"vega" mapstructure:"vega"`
	Rho   Range `json:"rho" mapstructure:"rho"`
}

func DefaultBounds() Bounds {
	return Bounds{
		Delta: Range{Min: -2, Max: 2},
		Gamma: Range{Min: -5, Max: 5},
		Theta: Range{Min: -10, Max: 10},
		Vega:  Range{Min: -50, Max: 50},
		Rho:   Range{Min: -100, Max: 100},
	}
}

func (b Bounds) Validate() error {
	return multierr.Combine(
		b.Delta.validate("delta"),
		b.Gamma.validate("gamma"),
		b.Theta.validate("theta"),
		b.Vega.validate("vega"),
		b.Rho.validate("rho"),
	)
}
