package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/charlerive/pricing/baseline"
	"github.com/charlerive/pricing/binomial"
	"github.com/charlerive/pricing/blackscholes"
	"github.com/charlerive/pricing/logging"
	"github.com/charlerive/pricing/montecarlo"
	"github.com/charlerive/pricing/option"
	"github.com/charlerive/pricing/report"
)

// modelNames lists the selectable models in report order.
var modelNames = []string{"base", "black-scholes", "binomial", "monte-carlo"}

var modelAliases = map[string]string{
	"baseline": "base",
	"bs":       "black-scholes",
	"crr":      "binomial",
	"mc":       "monte-carlo",
}

func newPriceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price the call and put under each model",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, app, false)
		},
	}
	addSelectionFlags(cmd)
	return cmd
}

func newGreeksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greeks",
		Short: "Price and compute delta, gamma, theta, vega and rho under each model",
		Example: `  optionpricer greeks
  optionpricer greeks --model bs,binomial --kind put
  optionpricer greeks --paths 10000 --path-steps 52 --workers 4 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, app, true)
		},
	}
	addSelectionFlags(cmd)
	return cmd
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("model", modelNames, "models to run: base, black-scholes, binomial, monte-carlo")
	cmd.Flags().String("kind", "all", "option kind: call, put or all")
}

func runReport(cmd *cobra.Command, app *App, greeks bool) error {
	kinds, err := parseKinds(cmd)
	if err != nil {
		return err
	}
	selected, _ := cmd.Flags().GetStringSlice("model")
	entries, err := app.entries(selected)
	if err != nil {
		return err
	}

	r := report.Build(app.Config.Contract(), entries, kinds, greeks)
	return NewOutput(cmd).Report(r)
}

func parseKinds(cmd *cobra.Command) ([]option.Kind, error) {
	s, _ := cmd.Flags().GetString("kind")
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return option.Kinds, nil
	}
	k, err := option.ParseKind(s)
	if err != nil {
		return nil, err
	}
	return []option.Kind{k}, nil
}

// entries builds the selected models from the loaded configuration.
func (app *App) entries(selected []string) ([]report.Entry, error) {
	want := map[string]bool{}
	for _, s := range selected {
		name := strings.ToLower(strings.TrimSpace(s))
		if alias, ok := modelAliases[name]; ok {
			name = alias
		}
		want[name] = true
	}
	for name := range want {
		if !slices.Contains(modelNames, name) {
			return nil, fmt.Errorf("unknown model %q (want one of %s)", name, strings.Join(modelNames, ", "))
		}
	}

	cfg := app.Config
	c := cfg.Contract()
	var out []report.Entry
	for _, name := range modelNames {
		if !want[name] {
			continue
		}
		log := logging.WithModel(app.Logger, name)
		var (
			e   report.Entry
			err error
		)
		switch name {
		case "base":
			e.Name = "Base"
			e.Model, err = baseline.New(c.Spot, c.Strike, baseline.WithLogger(log))
		case "black-scholes":
			e.Name = "Black Scholes"
			e.Model, err = blackscholes.New(c, blackscholes.WithLogger(log))
		case "binomial":
			e.Name = "Binomial"
			e.Notes = []string{fmt.Sprintf("Steps: %d", cfg.Binomial.Steps)}
			e.Model, err = binomial.New(c, cfg.Binomial.Steps, binomial.WithLogger(log))
		case "monte-carlo":
			mc := cfg.MonteCarlo
			e.Name = "Monte Carlo"
			e.Notes = []string{
				fmt.Sprintf("Steps: %d", mc.Steps),
				fmt.Sprintf("Simulations: %d", mc.Paths),
			}
			e.Model, err = montecarlo.New(c, mc.Paths, mc.Steps,
				montecarlo.WithLogger(log),
				montecarlo.WithSeed(mc.Seed),
				montecarlo.WithWorkers(mc.Workers),
				montecarlo.WithBounds(mc.Bounds),
			)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
