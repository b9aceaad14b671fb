// Package cli provides the optionpricer command-line interface.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/charlerive/pricing/config"
	"github.com/charlerive/pricing/logging"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-10-19"
)

// App holds state shared by every subcommand once flags are parsed.
type App struct {
	v      *viper.Viper
	Config *config.Config
	Logger zerolog.Logger
}

// flagKeys maps market and model flags to config keys.
var flagKeys = map[string]string{
	"spot":       "market.spot",
	"strike":     "market.strike",
	"maturity":   "market.maturity",
	"volatility": "market.volatility",
	"rate":       "market.rate",
	"steps":      "binomial.steps",
	"paths":      "montecarlo.paths",
	"path-steps": "montecarlo.steps",
	"seed":       "montecarlo.seed",
	"workers":    "montecarlo.workers",
	"log-level":  "log.level",
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd() *cobra.Command {
	app := &App{v: viper.New(), Logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "optionpricer",
		Short: "Price European options and their Greeks",
		Long: `optionpricer values a European call and put under four models:
the intrinsic baseline, Black-Scholes, a Cox-Ross-Rubinstein lattice and a
Monte Carlo simulation, and reports delta, gamma, theta, vega and rho.

Settings come from --config, then OPTIONPRICER_* environment variables, then
flags, with flags taking precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadWith(app.v, path)
			if err != nil {
				return err
			}
			app.Config = cfg
			app.Logger = logging.NewWithWriter(cfg.Log, cmd.ErrOrStderr())
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			app.Logger.Debug().Interface("config", cfg).Msg("configuration loaded")
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (yaml, toml or json)")
	pf.Bool("json", false, "output in JSON format")
	pf.Bool("debug", false, "enable debug logging")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")

	pf.Float64("spot", 120, "underlying price")
	pf.Float64("strike", 100, "strike price")
	pf.Float64("maturity", 1, "time to maturity in years")
	pf.Float64("volatility", 0.2, "annualised volatility")
	pf.Float64("rate", 0.05, "continuously compounded risk-free rate")
	pf.Int("steps", 252, "binomial lattice steps")
	pf.Int("paths", 50000, "Monte Carlo paths")
	pf.Int("path-steps", 252, "Monte Carlo time steps per path")
	pf.Uint64("seed", 42, "Monte Carlo seed")
	pf.Int("workers", 1, "Monte Carlo worker goroutines")

	for name, key := range flagKeys {
		if err := app.v.BindPFlag(key, pf.Lookup(name)); err != nil {
			panic(fmt.Sprintf("cli: binding %s: %v", name, err))
		}
	}

	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newGreeksCmd(app))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			}
			output.Printf("optionpricer v%s (%s)\n", Version, BuildDate)
			return nil
		},
	}
}
