// Package montecarlo prices European options by simulating terminal prices
// under risk-neutral geometric Brownian motion.
package montecarlo

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/charlerive/pricing/option"
)

// DefaultSeed is used when no seed option is given.
const DefaultSeed uint64 = 42

// DefaultBumps is the bump set for simulated Greeks. Every re-pricing reuses
// the model seed, so bumps compare the same random draws.
func DefaultBumps() option.Steps {
	return option.Steps{Spot: 1, Maturity: 0.01, Volatility: 0.01, Rate: 0.01}
}

// Estimate is a discounted sample mean with its standard error.
type Estimate struct {
	Price  float64 `json:"price"`
	StdErr float64 `json:"std_err"`
	Paths  int     `json:"paths"`
}

type Model struct {
	c       option.Contract
	paths   int
	steps   int
	seed    uint64
	workers int
	bounds  Bounds
	fd      option.FiniteDifference
	log     zerolog.Logger
}

type Option func(*Model)

func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// WithSeed fixes the random stream. Two models with equal parameters and seed
// price identically.
func WithSeed(seed uint64) Option {
	return func(m *Model) { m.seed = seed }
}

// WithWorkers splits the paths over n goroutines, each on its own stream.
// Results depend on n as well as on the seed.
func WithWorkers(n int) Option {
	return func(m *Model) { m.workers = n }
}

func WithBounds(b Bounds) Option {
	return func(m *Model) { m.bounds = b }
}

// WithBumps overrides the finite-difference bumps.
func WithBumps(s option.Steps) Option {
	return func(m *Model) { m.fd = option.NewFiniteDifference(m.price, s) }
}

// New builds a simulation of paths paths with steps steps each.
func New(c option.Contract, paths, steps int, opts ...Option) (*Model, error) {
	m := &Model{
		c:       c,
		paths:   paths,
		steps:   steps,
		seed:    DefaultSeed,
		workers: 1,
		bounds:  DefaultBounds(),
		log:     zerolog.Nop(),
	}
	m.fd = option.NewFiniteDifference(m.price, DefaultBumps())
	for _, opt := range opts {
		opt(m)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("montecarlo: %w", err)
	}
	m.log.Debug().
		Int("paths", paths).
		Int("steps", steps).
		Uint64("seed", m.seed).
		Int("workers", m.workers).
		Msg("monte carlo model ready")
	return m, nil
}

func (m *Model) validate() error {
	if err := m.c.Validate(); err != nil {
		return err
	}
	if err := option.ValidateCount("paths", m.paths); err != nil {
		return err
	}
	if err := option.ValidateCount("steps", m.steps); err != nil {
		return err
	}
	if err := option.ValidateCount("workers", m.workers); err != nil {
		return err
	}
	return m.bounds.Validate()
}

func (m *Model) Contract() option.Contract { return m.c }

func (m *Model) Bounds() Bounds { return m.bounds }

func (m *Model) Price(kind option.Kind) float64 {
	return m.price(m.c, kind)
}

// Estimate is Price with its standard error.
func (m *Model) Estimate(kind option.Kind) Estimate {
	return m.estimate(m.c, kind)
}

// Simulate runs every path on the caller's generator, ignoring the model seed
// and worker count.
func (m *Model) Simulate(kind option.Kind, src rand.Source) Estimate {
	return reduce(m.c, []accumulator{simulate(m.c, m.steps, m.paths, kind, rand.New(src))})
}

func (m *Model) price(c option.Contract, kind option.Kind) float64 {
	return m.estimate(c, kind).Price
}

func (m *Model) estimate(c option.Contract, kind option.Kind) Estimate {
	if m.workers == 1 {
		return reduce(c, []accumulator{simulate(c, m.steps, m.paths, kind, rand.New(rand.NewSource(m.seed)))})
	}

	parts := make([]accumulator, m.workers)
	var g errgroup.Group
	g.SetLimit(m.workers)
	for w := 0; w < m.workers; w++ {
		w := w
		n := share(m.paths, m.workers, w)
		rng := rand.New(rand.NewSource(streamSeed(m.seed, w)))
		g.Go(func() error {
			parts[w] = simulate(c, m.steps, n, kind, rng)
			return nil
		})
	}
	_ = g.Wait()
	return reduce(c, parts)
}

func (m *Model) Delta(kind option.Kind) float64 {
	return m.bounds.Delta.Clamp(m.fd.Delta(m.c, kind))
}

func (m *Model) Gamma(kind option.Kind) float64 {
	return m.bounds.Gamma.Clamp(m.fd.Gamma(m.c, kind))
}

func (m *Model) Theta(kind option.Kind) float64 {
	return m.bounds.Theta.Clamp(m.fd.Theta(m.c, kind))
}

func (m *Model) Vega(kind option.Kind) float64 {
	return m.bounds.Vega.Clamp(m.fd.Vega(m.c, kind))
}

func (m *Model) Rho(kind option.Kind) float64 {
	return m.bounds.Rho.Clamp(m.fd.Rho(m.c, kind))
}
