// Package report evaluates a set of pricing models on one contract and
// renders the results as text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/charlerive/pricing/option"
)

// Places is the number of decimals kept in a report.
const Places = 4

var (
	header = strings.Repeat("=", 50)
	mid    = strings.Repeat("-", 50)
)

// Entry is one model to evaluate, with optional lines printed under its name.
type Entry struct {
	Name  string
	Model option.Model
	Notes []string
}

type Report struct {
	Environment Environment   `json:"environment"`
	Greeks      bool          `json:"-"`
	Models      []ModelReport `json:"models"`
}

type Environment struct {
	Spot       decimal.Decimal `json:"spot"`
	Strike     decimal.Decimal `json:"strike"`
	Maturity   decimal.Decimal `json:"maturity"`
	Volatility decimal.Decimal `json:"volatility"`
	Rate       decimal.Decimal `json:"rate"`
}

type ModelReport struct {
	Name     string   `json:"name"`
	Notes    []string `json:"notes,omitempty"`
	Results  []Result `json:"results"`
	Warnings []string `json:"warnings,omitempty"`
}

// Result holds rounded values for one option kind. Greek fields are nil in a
// price-only report.
type Result struct {
	Kind  string           `json:"kind"`
	Price decimal.Decimal  `json:"price"`
	Delta *decimal.Decimal `json:"delta,omitempty"`
	Gamma *decimal.Decimal `json:"gamma,omitempty"`
	Theta *decimal.Decimal `json:"theta,omitempty"`
	Vega  *decimal.Decimal `json:"vega,omitempty"`
	Rho   *decimal.Decimal `json:"rho,omitempty"`
}

// Round converts v to a decimal with Places decimals. Non-finite values
// become zero.
func Round(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(Places)
}

func roundPtr(v float64) *decimal.Decimal {
	d := Round(v)
	return &d
}

// Build evaluates every entry for every kind. Entries are evaluated
// concurrently; models are immutable so this is safe. With greeks false only
// prices are computed.
func Build(c option.Contract, entries []Entry, kinds []option.Kind, greeks bool) Report {
	r := Report{
		Environment: Environment{
			Spot:       Round(c.Spot),
			Strike:     Round(c.Strike),
			Maturity:   Round(c.Maturity),
			Volatility: Round(c.Volatility),
			Rate:       Round(c.Rate),
		},
		Greeks: greeks,
		Models: make([]ModelReport, len(entries)),
	}

	var g errgroup.Group
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			r.Models[i] = evaluate(e, kinds, greeks)
			return nil
		})
	}
	_ = g.Wait()
	return r
}

func evaluate(e Entry, kinds []option.Kind, greeks bool) ModelReport {
	mr := ModelReport{Name: e.Name, Notes: e.Notes}
	for _, k := range kinds {
		res := Result{Kind: k.String(), Price: Round(e.Model.Price(k))}
		if greeks {
			res.Delta = roundPtr(e.Model.Delta(k))
			res.Gamma = roundPtr(e.Model.Gamma(k))
			res.Theta = roundPtr(e.Model.Theta(k))
			res.Vega = roundPtr(e.Model.Vega(k))
			res.Rho = roundPtr(e.Model.Rho(k))
		}
		mr.Results = append(mr.Results, res)
	}
	if w, ok := e.Model.(option.Warner); ok {
		for _, err := range w.Warnings() {
			mr.Warnings = append(mr.Warnings, err.Error())
		}
	}
	return mr
}

// WriteText renders r in banner blocks, one for the environment and one per
// model.
func WriteText(w io.Writer, r Report) error {
	var b strings.Builder
	env := r.Environment
	fmt.Fprintf(&b, "\n%s\nEnvironment\n%s\n", header, mid)
	fmt.Fprintf(&b, "Underlying Price: %s\n", env.Spot.StringFixed(Places))
	fmt.Fprintf(&b, "Strike Price: %s\n", env.Strike.StringFixed(Places))
	fmt.Fprintf(&b, "Time to Maturity: %s\n", env.Maturity.StringFixed(Places))
	fmt.Fprintf(&b, "Volatility: %s\n", env.Volatility.StringFixed(Places))
	fmt.Fprintf(&b, "Risk Free Rate: %s\n", env.Rate.StringFixed(Places))

	for _, m := range r.Models {
		fmt.Fprintf(&b, "\n%s\nModel: %s\n", header, m.Name)
		for _, n := range m.Notes {
			fmt.Fprintln(&b, n)
		}
		fmt.Fprintln(&b, mid)
		for _, res := range m.Results {
			fmt.Fprintf(&b, "Option: %s\n", res.Kind)
			fmt.Fprintf(&b, "  Price: %s\n", res.Price.StringFixed(Places))
			if !r.Greeks {
				continue
			}
			for _, line := range []struct {
				label string
				v     *decimal.Decimal
			}{
				{"Delta", res.Delta},
				{"Gamma", res.Gamma},
				{"Theta", res.Theta},
				{"Vega", res.Vega},
				{"Rho", res.Rho},
			} {
				if line.v != nil {
					fmt.Fprintf(&b, "  %s: %s\n", line.label, line.v.StringFixed(Places))
				}
			}
		}
		for _, warn := range m.Warnings {
			fmt.Fprintf(&b, "Warning: %s\n", warn)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes v, usually a Report, as indented JSON. Decimals are
// encoded as strings.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
