package montecarlo

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/charlerive/pricing/option"
)

// accumulator holds undiscounted payoff sums for one stream.
type accumulator struct {
	sum   float64
	sumSq float64
	n     int
}

// simulate draws n paths of steps exact log-normal updates each.
func simulate(c option.Contract, steps, n int, kind option.Kind, rng *rand.Rand) accumulator {
	dt := c.Maturity / float64(steps)
	drift := (c.Rate - 0.5*c.Volatility*c.Volatility) * dt
	diffusion := c.Volatility * math.Sqrt(dt)

	var acc accumulator
	for i := 0; i < n; i++ {
		spot := c.Spot
		for j := 0; j < steps; j++ {
			spot *= math.Exp(drift + diffusion*rng.NormFloat64())
		}
		payoff := kind.Payoff(spot, c.Strike)
		acc.sum += payoff
		acc.sumSq += payoff * payoff
	}
	acc.n = n
	return acc
}

// reduce combines per-stream sums in stream order and discounts the mean.
func reduce(c option.Contract, parts []accumulator) Estimate {
	sums := make([]float64, len(parts))
	sumSqs := make([]float64, len(parts))
	n := 0
	for i, p := range parts {
		sums[i] = p.sum
		sumSqs[i] = p.sumSq
		n += p.n
	}
	if n == 0 {
		return Estimate{}
	}

	mean := floats.Sum(sums) / float64(n)
	disc := c.Discount()
	est := Estimate{Price: disc * mean, Paths: n}
	if n > 1 {
		variance := (floats.Sum(sumSqs) - float64(n)*mean*mean) / float64(n-1)
		est.StdErr = disc * math.Sqrt(math.Max(variance, 0)/float64(n))
	}
	return est
}

// share is the number of paths worker w runs when paths are split into
// contiguous blocks; the first paths%workers blocks take one extra path.
func share(paths, workers, w int) int {
	n := paths / workers
	if w < paths%workers {
		n++
	}
	return n
}

// streamSeed gives worker w its own generator seed. Worker 0 keeps the model
// seed so a single worker reproduces the unsplit stream.
func streamSeed(seed uint64, w int) uint64 {
	if w == 0 {
		return seed
	}
	return splitMix64(seed + uint64(w)*0x9e3779b97f4a7c15)
}

// splitMix64 is the SplitMix64 finaliser.
func splitMix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
