// Package config provides configuration management for the analyzer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"dcf-analyzer/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Valuation ValuationConfig `mapstructure:"valuation"`
	Data      DataConfig      `mapstructure:"data"`
	Store     StoreConfig     `mapstructure:"store"`
	UI        UIConfig        `mapstructure:"ui"`
}

// ValuationConfig holds the default assumption set used when the caller
// supplies no overrides. Rates are decimal fractions.
type ValuationConfig struct {
	TaxRate             float64   `mapstructure:"tax_rate"`
	RiskFreeRate        float64   `mapstructure:"risk_free_rate"`
	MarketRiskPremium   float64   `mapstructure:"market_risk_premium"`
	DefaultBeta         float64   `mapstructure:"default_beta"`
	CostOfDebt          float64   `mapstructure:"cost_of_debt"`
	PerpetualGrowthRate float64   `mapstructure:"perpetual_growth_rate"`
	GrowthRates         []float64 `mapstructure:"growth_rates"`
	ForecastYears       int       `mapstructure:"forecast_years"`
}

// DataConfig holds data-provider configuration.
type DataConfig struct {
	Dir             string `mapstructure:"dir"`               // directory of company data files
	CacheTTLMinutes int    `mapstructure:"cache_ttl_minutes"` // provider cache expiry
}

// StoreConfig holds persistence configuration.
type StoreConfig struct {
	Path string `mapstructure:"path"` // SQLite database file
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/dcf-analyzer"
	}
	return filepath.Join(home, ".config", "dcf-analyzer")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		// Missing config file is fine; defaults apply and a template is
		// written for the next edit.
		if werr := writeTemplateConfig(configDir); werr != nil {
			return nil, fmt.Errorf("writing config template: %w", werr)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	// Assumption defaults mirror the standard large-cap baseline.
	v.SetDefault("valuation.tax_rate", 0.21)
	v.SetDefault("valuation.risk_free_rate", 0.045)
	v.SetDefault("valuation.market_risk_premium", 0.08)
	v.SetDefault("valuation.default_beta", 1.15)
	v.SetDefault("valuation.cost_of_debt", 0.05)
	v.SetDefault("valuation.perpetual_growth_rate", 0.025)
	v.SetDefault("valuation.growth_rates", []float64{0.06, 0.055, 0.05, 0.045, 0.04})
	v.SetDefault("valuation.forecast_years", 5)

	v.SetDefault("data.dir", filepath.Join(configDir, "data"))
	v.SetDefault("data.cache_ttl_minutes", 1440)

	v.SetDefault("store.path", filepath.Join(configDir, "valuations.db"))

	v.SetDefault("ui.color_enabled", true)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DCF_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("DCF_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	val := c.Valuation

	if val.TaxRate < 0 || val.TaxRate > 1 {
		return fmt.Errorf("tax_rate must be between 0 and 1")
	}
	if val.MarketRiskPremium < 0 {
		return fmt.Errorf("market_risk_premium must be non-negative")
	}
	if val.CostOfDebt < 0 {
		return fmt.Errorf("cost_of_debt must be non-negative")
	}
	if val.ForecastYears <= 0 {
		return fmt.Errorf("forecast_years must be positive")
	}
	if len(val.GrowthRates) != val.ForecastYears {
		return fmt.Errorf("growth_rates must have exactly forecast_years (%d) entries, got %d",
			val.ForecastYears, len(val.GrowthRates))
	}
	if c.Data.CacheTTLMinutes < 0 {
		return fmt.Errorf("cache_ttl_minutes must be non-negative")
	}

	return nil
}

// Assumptions builds the default AssumptionSet from configuration. Beta is
// left at zero so the snapshot beta applies unless the caller overrides it.
func (c *Config) Assumptions() models.AssumptionSet {
	return models.AssumptionSet{
		TaxRate:             c.Valuation.TaxRate,
		RiskFreeRate:        c.Valuation.RiskFreeRate,
		MarketRiskPremium:   c.Valuation.MarketRiskPremium,
		CostOfDebt:          c.Valuation.CostOfDebt,
		PerpetualGrowthRate: c.Valuation.PerpetualGrowthRate,
		GrowthRates:         append([]float64(nil), c.Valuation.GrowthRates...),
		ForecastYears:       c.Valuation.ForecastYears,
	}
}
