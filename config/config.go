// Package config loads pricing run configuration from file, environment and
// flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/charlerive/pricing/logging"
	"github.com/charlerive/pricing/montecarlo"
	"github.com/charlerive/pricing/option"
)

// EnvPrefix prefixes environment overrides, e.g. OPTIONPRICER_MARKET_SPOT.
const EnvPrefix = "OPTIONPRICER"

// Config holds all run configuration.
type Config struct {
	Market     MarketConfig     `mapstructure:"market"`
	Binomial   BinomialConfig   `mapstructure:"binomial"`
	MonteCarlo MonteCarloConfig `mapstructure:"montecarlo"`
	Log        logging.Config   `mapstructure:"log"`
}

// MarketConfig holds the contract parameters.
type MarketConfig struct {
	Spot       float64 `mapstructure:"spot"`
	Strike     float64 `mapstructure:"strike"`
	Maturity   float64 `mapstructure:"maturity"`
	Volatility float64 `mapstructure:"volatility"`
	Rate       float64 `mapstructure:"rate"`
}

type BinomialConfig struct {
	Steps int `mapstructure:"steps"`
}

type MonteCarloConfig struct {
	Paths   int               `mapstructure:"paths"`
	Steps   int               `mapstructure:"steps"`
	Seed    uint64            `mapstructure:"seed"`
	Workers int               `mapstructure:"workers"`
	Bounds  montecarlo.Bounds `mapstructure:"bounds"`
}

// SetDefaults registers every key with its default, which also makes each
// key visible to environment lookup during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("market.spot", 120.0)
	v.SetDefault("market.strike", 100.0)
	v.SetDefault("market.maturity", 1.0)
	v.SetDefault("market.volatility", 0.2)
	v.SetDefault("market.rate", 0.05)

	v.SetDefault("binomial.steps", 252)

	v.SetDefault("montecarlo.paths", 50000)
	v.SetDefault("montecarlo.steps", 252)
	v.SetDefault("montecarlo.seed", montecarlo.DefaultSeed)
	v.SetDefault("montecarlo.workers", 1)
	b := montecarlo.DefaultBounds()
	for name, r := range map[string]montecarlo.Range{
		"delta": b.Delta,
		"gamma": b.Gamma,
		"theta": b.Theta,
		"vega":  b.Vega,
		"rho":   b.Rho,
	} {
		v.SetDefault("montecarlo.bounds."+name+".min", r.Min)
		v.SetDefault("montecarlo.bounds."+name+".max", r.Max)
	}

	l := logging.DefaultConfig()
	v.SetDefault("log.level", l.Level)
	v.SetDefault("log.console", l.Console)
	v.SetDefault("log.file", l.File)
	v.SetDefault("log.file_path", l.FilePath)
	v.SetDefault("log.max_size", l.MaxSize)
	v.SetDefault("log.max_backups", l.MaxBackups)
	v.SetDefault("log.max_age", l.MaxAge)
}

// Load reads path (if not empty) over the defaults and environment.
func Load(path string) (*Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith is Load on a caller-owned viper, so flags bound to v take
// precedence over file and environment values.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	return multierr.Combine(
		c.Contract().Validate(),
		option.ValidateCount("binomial.steps", c.Binomial.Steps),
		option.ValidateCount("montecarlo.paths", c.MonteCarlo.Paths),
		option.ValidateCount("montecarlo.steps", c.MonteCarlo.Steps),
		option.ValidateCount("montecarlo.workers", c.MonteCarlo.Workers),
		c.MonteCarlo.Bounds.Validate(),
	)
}

func (c *Config) Contract() option.Contract {
	return option.Contract{
		Spot:       c.Market.Spot,
		Strike:     c.Market.Strike,
		Maturity:   c.Market.Maturity,
		Volatility: c.Market.Volatility,
		Rate:       c.Market.Rate,
	}
}
