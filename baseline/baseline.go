// Package baseline prices an option at its unsigned intrinsic value |S-K|.
// It has no time value and exists as a sanity check for the real models.
package baseline

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/charlerive/pricing/option"
)

// Step is the spot bump used for delta and gamma. The price surface is
// piecewise linear so a fine step is exact away from the strike.
const Step = 1e-5

type Model struct {
	contract option.Contract
	fd       option.FiniteDifference
	log      zerolog.Logger
}

type Option func(*Model)

func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// New builds a baseline model. Only spot and strike are used.
func New(spot, strike float64, opts ...Option) (*Model, error) {
	m := &Model{
		contract: option.Contract{Spot: spot, Strike: strike},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.contract.Validate(); err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	m.fd = option.NewFiniteDifference(price, option.Steps{Spot: Step})
	m.log.Debug().Float64("spot", spot).Float64("strike", strike).Msg("baseline model ready")
	return m, nil
}

func price(c option.Contract, _ option.Kind) float64 {
	return math.Abs(c.Spot - c.Strike)
}

func (m *Model) Contract() option.Contract { return m.contract }

// Price ignores kind.
func (m *Model) Price(kind option.Kind) float64 {
	return price(m.contract, kind)
}

func (m *Model) Delta(kind option.Kind) float64 {
	return m.fd.Delta(m.contract, kind)
}

func (m *Model) Gamma(kind option.Kind) float64 {
	return m.fd.Gamma(m.contract, kind)
}

// Theta is zero: the model has no maturity.
func (m *Model) Theta(option.Kind) float64 { return 0 }

// Vega is zero: the model has no volatility.
func (m *Model) Vega(option.Kind) float64 { return 0 }

// Rho is zero: the model has no rate.
func (m *Model) Rho(option.Kind) float64 { return 0 }
