package blackscholes

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/charlerive/pricing/option"
)

// RhoStep is the rate bump for rho, the one Greek without a closed form here.
const RhoStep = 0.01

// Black–Scholes model
// see wiki: https://en.wikipedia.org/wiki/Black%E2%80%93Scholes_model
type BSM struct {
	c   option.Contract
	d1  float64 // 中间值d1
	d2  float64 // 中间值d2
	nd1 float64 // φ(d1), standard normal density at d1

	degenerate bool
	warnings   []error
	rho        option.FiniteDifference
	log        zerolog.Logger
}

type Option func(*BSM)

func WithLogger(l zerolog.Logger) Option {
	return func(bsm *BSM) { bsm.log = l }
}

// New validates c and precomputes d1, d2 and φ(d1). A zero maturity or
// volatility is accepted: the model then prices at intrinsic value and reports
// option.ErrDegenerateInput from Warnings.
func New(c option.Contract, opts ...Option) (*BSM, error) {
	bsm := &BSM{c: c, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(bsm)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("blackscholes: %w", err)
	}
	bsm.init()
	return bsm, nil
}

func (bsm *BSM) init() {
	bsm.rho = option.NewFiniteDifference(price, option.Steps{Rate: RhoStep})

	if isDegenerate(bsm.c) {
		bsm.degenerate = true
		w := fmt.Errorf("%w: maturity %v, volatility %v; d1/d2 undefined, using intrinsic value",
			option.ErrDegenerateInput, bsm.c.Maturity, bsm.c.Volatility)
		bsm.warnings = append(bsm.warnings, w)
		bsm.log.Warn().Err(w).Msg("black-scholes falls back to intrinsic value")
		return
	}

	// 计算d1
	bsm.d1 = calcD1(bsm.c)
	// 计算d2
	bsm.d2 = calcD2(bsm.c, bsm.d1)
	// 计算nd1
	bsm.nd1 = Pdf(bsm.d1)
}

func isDegenerate(c option.Contract) bool {
	return c.Maturity == 0 || c.Volatility == 0
}

func calcD1(c option.Contract) float64 {
	return (math.Log(c.Spot/c.Strike) + (c.Rate+math.Pow(c.Volatility, 2)/2)*c.Maturity) / (c.Volatility * math.Sqrt(c.Maturity))
}

func calcD2(c option.Contract, d1 float64) float64 {
	return d1 - c.Volatility*math.Sqrt(c.Maturity)
}

// price is the closed form as a pure function of the contract, shared by Price
// and the rho bump.
func price(c option.Contract, kind option.Kind) float64 {
	if isDegenerate(c) {
		return c.Intrinsic(kind)
	}
	d1 := calcD1(c)
	d2 := calcD2(c, d1)
	// rounding can leave a deep out-of-the-money price a few ulps below zero
	switch kind {
	case option.Call:
		return math.Max(c.Spot*Cdf(d1)-c.Strike*c.Discount()*Cdf(d2), 0)
	case option.Put:
		return math.Max(c.Strike*c.Discount()*Cdf(-d2)-c.Spot*Cdf(-d1), 0)
	}
	panic(fmt.Sprintf("blackscholes: unknown kind %d", int(kind)))
}

func (bsm *BSM) Contract() option.Contract { return bsm.c }

// D1 and D2 are zero for degenerate inputs.
func (bsm *BSM) D1() float64 { return bsm.d1 }
func (bsm *BSM) D2() float64 { return bsm.d2 }

// Warnings lists non-fatal input conditions found at construction.
func (bsm *BSM) Warnings() []error { return bsm.warnings }

func (bsm *BSM) Price(kind option.Kind) float64 {
	return price(bsm.c, kind)
}

func (bsm *BSM) Delta(kind option.Kind) float64 {
	if bsm.degenerate {
		if bsm.c.Intrinsic(kind) > 0 {
			if kind == option.Call {
				return 1
			}
			return -1
		}
		return 0
	}
	if kind == option.Call {
		return Cdf(bsm.d1)
	}
	return Cdf(bsm.d1) - 1
}

func (bsm *BSM) Gamma(option.Kind) float64 {
	if bsm.degenerate {
		return 0
	}
	return bsm.nd1 / (bsm.c.Spot * bsm.c.Volatility * math.Sqrt(bsm.c.Maturity))
}

func (bsm *BSM) Theta(kind option.Kind) float64 {
	// intrinsic value does not depend on maturity
	if bsm.degenerate {
		return 0
	}
	carry := bsm.c.Rate * bsm.c.Strike * bsm.c.Discount()
	decay := -bsm.c.Spot * bsm.nd1 * bsm.c.Volatility / (2 * math.Sqrt(bsm.c.Maturity))
	if kind == option.Call {
		return decay - carry*Cdf(bsm.d2)
	}
	return decay + carry*Cdf(-bsm.d2)
}

func (bsm *BSM) Vega(option.Kind) float64 {
	if bsm.degenerate {
		return 0
	}
	return bsm.c.Spot * bsm.nd1 * math.Sqrt(bsm.c.Maturity)
}

// Rho is a forward difference on the rate.
func (bsm *BSM) Rho(kind option.Kind) float64 {
	return bsm.rho.Rho(bsm.c, kind)
}

// Cdf is the standard normal cumulative distribution, (1 + erf(x/√2)) / 2.
func Cdf(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// Pdf is the standard normal density.
func Pdf(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}
