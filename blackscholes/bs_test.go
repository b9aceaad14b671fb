package blackscholes

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/charlerive/pricing/option"
)

var scenario = option.Contract{Spot: 120, Strike: 100, Maturity: 1, Volatility: 0.2, Rate: 0.05}

func mustNew(t testing.TB, c option.Contract) *BSM {
	t.Helper()
	bsm, err := New(c)
	if err != nil {
		t.Fatalf("New(%+v): %v", c, err)
	}
	return bsm
}

func TestScenario(t *testing.T) {
	bsm := mustNew(t, scenario)

	call, put := bsm.Price(option.Call), bsm.Price(option.Put)
	if math.Abs(call-26.169) > 0.1 {
		t.Errorf("call = %v, want ≈26.169", call)
	}
	if math.Abs(put-1.292) > 0.1 {
		t.Errorf("put = %v, want ≈1.292", put)
	}
	parity := scenario.Spot - scenario.Strike*math.Exp(-scenario.Rate*scenario.Maturity)
	if math.Abs(call-put-parity) > 1e-6 {
		t.Errorf("call-put = %v, want %v", call-put, parity)
	}
}

func TestAnalyticGreeks(t *testing.T) {
	bsm := mustNew(t, scenario)

	cases := []struct {
		name string
		got  float64
		want float64
		tol  float64
	}{
		{"call delta", bsm.Delta(option.Call), 0.896455, 1e-5},
		{"put delta", bsm.Delta(option.Put), 0.896455 - 1, 1e-5},
		{"gamma", bsm.Gamma(option.Call), 0.0075002, 1e-6},
		{"vega", bsm.Vega(option.Put), 21.600708, 1e-5},
		{"call theta", bsm.Theta(option.Call), -6.230349, 1e-5},
		{"put theta", bsm.Theta(option.Put), -1.474202, 1e-5},
		// forward difference with h = 0.01 against K·T·e^(-rT)·N(±d2)
		{"call rho", bsm.Rho(option.Call), 81.405559, 0.5},
		{"put rho", bsm.Rho(option.Put), -13.717384, 0.7},
	}
	for _, tc := range cases {
		if math.Abs(tc.got-tc.want) > tc.tol {
			t.Errorf("%s = %v, want %v ± %v", tc.name, tc.got, tc.want, tc.tol)
		}
	}
}

func TestThetaMatchesTimeDecay(t *testing.T) {
	bsm := mustNew(t, scenario)
	const h = 1e-5
	for _, kind := range option.Kinds {
		later := mustNew(t, scenario.Bump(option.Maturity, -h))
		fd := (later.Price(kind) - bsm.Price(kind)) / h
		if math.Abs(bsm.Theta(kind)-fd) > 1e-3 {
			t.Errorf("%v theta = %v, finite difference %v", kind, bsm.Theta(kind), fd)
		}
	}
}

func TestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	contract := gopter.CombineGens(
		gen.Float64Range(1, 500),
		gen.Float64Range(1, 500),
		gen.Float64Range(0.01, 5),
		gen.Float64Range(0.01, 1),
		gen.Float64Range(-0.05, 0.15),
	).Map(func(v []interface{}) option.Contract {
		return option.Contract{
			Spot:       v[0].(float64),
			Strike:     v[1].(float64),
			Maturity:   v[2].(float64),
			Volatility: v[3].(float64),
			Rate:       v[4].(float64),
		}
	})

	properties.Property("put-call parity", prop.ForAll(
		func(c option.Contract) bool {
			bsm, err := New(c)
			if err != nil {
				return false
			}
			lhs := bsm.Price(option.Call) - bsm.Price(option.Put)
			rhs := c.Spot - c.Strike*math.Exp(-c.Rate*c.Maturity)
			return math.Abs(lhs-rhs) < 1e-6
		},
		contract,
	))

	properties.Property("prices are finite and non-negative", prop.ForAll(
		func(c option.Contract) bool {
			bsm, err := New(c)
			if err != nil {
				return false
			}
			for _, k := range option.Kinds {
				p := bsm.Price(k)
				if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
					return false
				}
			}
			return true
		},
		contract,
	))

	properties.Property("greek signs and bounds", prop.ForAll(
		func(c option.Contract) bool {
			bsm, err := New(c)
			if err != nil {
				return false
			}
			call, put := bsm.Delta(option.Call), bsm.Delta(option.Put)
			return call >= 0 && call <= 1 &&
				put >= -1 && put <= 0 &&
				bsm.Gamma(option.Call) >= 0 && bsm.Gamma(option.Put) >= 0 &&
				bsm.Vega(option.Call) >= 0 && bsm.Vega(option.Put) >= 0
		},
		contract,
	))

	properties.TestingRun(t)
}

func TestDegenerateInput(t *testing.T) {
	cases := []struct {
		name      string
		c         option.Contract
		call, put float64
	}{
		{"expired in the money", option.Contract{Spot: 120, Strike: 100, Rate: 0.05, Volatility: 0.2}, 20, 0},
		{"expired out of the money", option.Contract{Spot: 80, Strike: 100, Rate: 0.05, Volatility: 0.2}, 0, 20},
		{"expired zero vol", option.Contract{Spot: 80, Strike: 100}, 0, 20},
		{"zero vol at the money", option.Contract{Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05}, 0, 0},
		{"zero vol below strike", option.Contract{Spot: 98, Strike: 100, Maturity: 1, Rate: 0.05}, 0, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bsm := mustNew(t, tc.c)
			if got := bsm.Price(option.Call); got != tc.call {
				t.Errorf("call = %v, want %v", got, tc.call)
			}
			if got := bsm.Price(option.Put); got != tc.put {
				t.Errorf("put = %v, want %v", got, tc.put)
			}
			ws := bsm.Warnings()
			if len(ws) != 1 || !errors.Is(ws[0], option.ErrDegenerateInput) {
				t.Errorf("warnings = %v, want ErrDegenerateInput", ws)
			}
			for _, k := range option.Kinds {
				g := option.Evaluate(bsm, k)
				for _, v := range []float64{g.Delta, g.Gamma, g.Theta, g.Vega, g.Rho} {
					if math.IsNaN(v) || math.IsInf(v, 0) {
						t.Errorf("%v greeks not finite: %+v", k, g)
					}
				}
			}
		})
	}
}

func TestDegenerateGreeks(t *testing.T) {
	bsm := mustNew(t, option.Contract{Spot: 98, Strike: 100, Maturity: 1, Rate: 0.05})
	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"call delta", bsm.Delta(option.Call), 0},
		{"put delta", bsm.Delta(option.Put), -1},
		{"gamma", bsm.Gamma(option.Put), 0},
		{"call theta", bsm.Theta(option.Call), 0},
		{"put theta", bsm.Theta(option.Put), 0},
		{"vega", bsm.Vega(option.Put), 0},
		{"put rho", bsm.Rho(option.Put), 0},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
	if bsm.D1() != 0 || bsm.D2() != 0 {
		t.Errorf("d1, d2 = %v, %v, want 0 for degenerate input", bsm.D1(), bsm.D2())
	}
}

func TestD1D2(t *testing.T) {
	bsm := mustNew(t, scenario)
	if math.Abs(bsm.D1()-1.261607784) > 1e-8 {
		t.Errorf("d1 = %v, want 1.261607784", bsm.D1())
	}
	if got := bsm.D1() - bsm.D2(); math.Abs(got-scenario.Volatility*math.Sqrt(scenario.Maturity)) > 1e-12 {
		t.Errorf("d1 - d2 = %v, want σ√T", got)
	}
	if got := bsm.Delta(option.Call); got != Cdf(bsm.D1()) {
		t.Errorf("call delta %v, N(d1) %v", got, Cdf(bsm.D1()))
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	bad := scenario
	bad.Volatility = -0.1
	if _, err := New(bad); !errors.Is(err, option.ErrInvalidContract) {
		t.Errorf("New with negative volatility: %v", err)
	}
}

func TestGreeksKeepPrice(t *testing.T) {
	bsm := mustNew(t, scenario)
	for _, k := range option.Kinds {
		before := bsm.Price(k)
		option.Evaluate(bsm, k)
		if after := bsm.Price(k); after != before {
			t.Errorf("%v price changed after Greeks: %v -> %v", k, before, after)
		}
	}
	if bsm.Contract() != scenario {
		t.Errorf("contract changed: %+v", bsm.Contract())
	}
}

func BenchmarkPrice(b *testing.B) {
	c := option.Contract{Spot: 4600, Strike: 5000, Maturity: 0.1644, Volatility: 1.0304, Rate: 0.025}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bsm, _ := New(c)
		_ = bsm.Price(option.Put)
	}
}

func BenchmarkGreeks(b *testing.B) {
	bsm, _ := New(option.Contract{Spot: 4600, Strike: 5000, Maturity: 0.1644, Volatility: 1.0304, Rate: 0.025})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = option.Evaluate(bsm, option.Put)
	}
}
