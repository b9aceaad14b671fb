// Package binomial prices European options on a Cox-Ross-Rubinstein
// recombining tree.
package binomial

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/charlerive/pricing/option"
)

// DefaultBumps is the bump set for lattice Greeks. A lattice price is
// piecewise linear in spot between node crossings, so the spot bump has to
// span a measurable part of the node spacing.
func DefaultBumps() option.Steps {
	return option.Steps{Spot: 1, Maturity: 0.01, Volatility: 0.01, Rate: 0.01}
}

// Lattice holds the per-step tree parameters.
type Lattice struct {
	Dt   float64 // T/N
	Up   float64 // e^(σ√dt)
	Down float64 // 1/u
	Prob float64 // risk-neutral probability of an up move
}

// NewLattice derives the CRR parameters for n steps.
func NewLattice(c option.Contract, n int) Lattice {
	dt := c.Maturity / float64(n)
	u := math.Exp(c.Volatility * math.Sqrt(dt))
	d := 1 / u
	return Lattice{
		Dt:   dt,
		Up:   u,
		Down: d,
		Prob: (math.Exp(c.Rate*dt) - d) / (u - d),
	}
}

// Collapsed reports a tree with no spread between up and down moves, which
// happens at zero volatility or zero maturity.
func (l Lattice) Collapsed() bool {
	return l.Up == l.Down
}

// Stable reports whether Prob is a probability.
func (l Lattice) Stable() bool {
	return l.Prob >= 0 && l.Prob <= 1
}

type Model struct {
	c        option.Contract
	steps    int
	fd       option.FiniteDifference
	warnings []error
	log      zerolog.Logger
}

type Option func(*Model)

func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// WithBumps overrides the finite-difference bumps.
func WithBumps(s option.Steps) Option {
	return func(m *Model) { m.fd = option.NewFiniteDifference(m.price, s) }
}

// New builds an n-step lattice model.
func New(c option.Contract, n int, opts ...Option) (*Model, error) {
	m := &Model{c: c, steps: n, log: zerolog.Nop()}
	m.fd = option.NewFiniteDifference(m.price, DefaultBumps())
	for _, opt := range opts {
		opt(m)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("binomial: %w", err)
	}
	if err := option.ValidateCount("steps", n); err != nil {
		return nil, fmt.Errorf("binomial: %w", err)
	}

	l := NewLattice(c, n)
	m.log.Debug().
		Int("steps", n).
		Float64("dt", l.Dt).
		Float64("up", l.Up).
		Float64("down", l.Down).
		Float64("prob", l.Prob).
		Msg("binomial lattice ready")
	if !l.Collapsed() && !l.Stable() {
		w := fmt.Errorf("%w: risk-neutral probability %v outside [0,1] (dt=%v, u=%v, d=%v)",
			option.ErrUnstableLattice, l.Prob, l.Dt, l.Up, l.Down)
		m.warnings = append(m.warnings, w)
		m.log.Warn().Err(w).Msg("binomial lattice may not be arbitrage free")
	}
	return m, nil
}

func (m *Model) Contract() option.Contract { return m.c }

func (m *Model) Steps() int { return m.steps }

// Warnings lists non-fatal lattice conditions found at construction.
func (m *Model) Warnings() []error { return m.warnings }

func (m *Model) Price(kind option.Kind) float64 {
	return m.price(m.c, kind)
}

func (m *Model) price(c option.Contract, kind option.Kind) float64 {
	return Price(c, m.steps, kind)
}

// Price values the option by backward induction on an n-step tree.
func Price(c option.Contract, n int, kind option.Kind) float64 {
	l := NewLattice(c, n)
	if l.Collapsed() {
		// deterministic forward: every node carries S·e^(rt)
		return c.Discount() * kind.Payoff(c.Spot*math.Exp(c.Rate*c.Maturity), c.Strike)
	}

	// Option values at maturity; node (n, i) has i up moves.
	values := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		spot := c.Spot * math.Pow(l.Up, float64(i)) * math.Pow(l.Down, float64(n-i))
		values[i] = kind.Payoff(spot, c.Strike)
	}

	// values[i+1] is read before it is overwritten in the same pass.
	disc := math.Exp(-c.Rate * l.Dt)
	for step := n - 1; step >= 0; step-- {
		for i := 0; i <= step; i++ {
			values[i] = disc * (l.Prob*values[i+1] + (1-l.Prob)*values[i])
		}
	}
	return values[0]
}

func (m *Model) Delta(kind option.Kind) float64 { return m.fd.Delta(m.c, kind) }
func (m *Model) Gamma(kind option.Kind) float64 { return m.fd.Gamma(m.c, kind) }
func (m *Model) Theta(kind option.Kind) float64 { return m.fd.Theta(m.c, kind) }
func (m *Model) Vega(kind option.Kind) float64  { return m.fd.Vega(m.c, kind) }
func (m *Model) Rho(kind option.Kind) float64   { return m.fd.Rho(m.c, kind) }
