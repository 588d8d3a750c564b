// Package config loads and validates the full backtest configuration from a
// YAML or JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"backsim/market"
	"backsim/sim"
	"backsim/strategies"
)

// Config is the complete configuration for one backtest run.
type Config struct {
	Account    AccountConfig    `json:"account" yaml:"account"`
	Commission CommissionConfig `json:"commission" yaml:"commission"`
	Data       DataConfig       `json:"data" yaml:"data"`
	Backtest   BacktestConfig   `json:"backtest" yaml:"backtest"`
	Strategy   StrategyConfig   `json:"strategy" yaml:"strategy"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
}

// AccountConfig contains account initialization parameters.
type AccountConfig struct {
	Ticker string  `json:"ticker" yaml:"ticker"`
	Cash   float64 `json:"cash" yaml:"cash"`
}

// CommissionConfig selects the commission scheme and its rate.
type CommissionConfig struct {
	Type string  `json:"type" yaml:"type"` // flat, percentage, percentage_per_share, per_share
	Rate float64 `json:"rate" yaml:"rate"`
}

// DataConfig points at the historical price data.
type DataConfig struct {
	CSV string `json:"csv" yaml:"csv"`
}

// BacktestConfig sets the simulated date window and bar interval.
type BacktestConfig struct {
	Start    string `json:"start" yaml:"start"`       // YYYY-MM-DD
	End      string `json:"end" yaml:"end"`           // YYYY-MM-DD
	Interval string `json:"interval" yaml:"interval"` // e.g. "1d", "1h"
}

// StrategyConfig names a registered strategy and its parameters.
type StrategyConfig struct {
	Name   string `json:"name" yaml:"name"`
	Shares int    `json:"shares,omitempty" yaml:"shares,omitempty"`
	Period int    `json:"period,omitempty" yaml:"period,omitempty"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type             string `json:"type,omitempty" yaml:"type,omitempty"` // "", "csv" or "sqlite"
	TransactionsFile string `json:"transactions_file,omitempty" yaml:"transactions_file,omitempty"`
	EquityFile       string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath           string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file. YAML is tried first, JSON as
// a fallback, so both formats work regardless of extension.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration back out, YAML for .yaml/.yml paths and
// indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.Account.Ticker == "" {
		return fmt.Errorf("account.ticker is required")
	}
	if c.Account.Cash <= 0 {
		return fmt.Errorf("account.cash must be positive")
	}
	if _, err := c.CommissionScheme(); err != nil {
		return err
	}
	if c.Commission.Rate < 0 {
		return fmt.Errorf("commission.rate must not be negative")
	}
	if c.Data.CSV == "" {
		return fmt.Errorf("data.csv is required")
	}
	if _, _, err := c.Window(); err != nil {
		return err
	}
	if _, err := c.Interval(); err != nil {
		return fmt.Errorf("backtest.interval: %w", err)
	}
	if c.Strategy.Name == "" {
		return fmt.Errorf("strategy.name is required")
	}
	switch c.Journal.Type {
	case "":
		// journaling is optional
	case "csv":
		if c.Journal.TransactionsFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal transactions_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	return nil
}

// CommissionScheme maps the configured type onto the simulator's scheme.
func (c *Config) CommissionScheme() (sim.CommissionScheme, error) {
	switch strings.ToLower(strings.TrimSpace(c.Commission.Type)) {
	case "", "flat":
		return sim.CommissionFlat, nil
	case "percentage":
		return sim.CommissionPercentage, nil
	case "percentage_per_share":
		return sim.CommissionPercentagePerShare, nil
	case "per_share":
		return sim.CommissionPerShare, nil
	}
	return "", fmt.Errorf("unknown commission.type %q", c.Commission.Type)
}

// Window parses the backtest start and end dates.
func (c *Config) Window() (start, end time.Time, err error) {
	start, err = time.Parse(time.DateOnly, c.Backtest.Start)
	if err != nil {
		return start, end, fmt.Errorf("backtest.start: %w", err)
	}
	end, err = time.Parse(time.DateOnly, c.Backtest.End)
	if err != nil {
		return start, end, fmt.Errorf("backtest.end: %w", err)
	}
	if !end.After(start) {
		return start, end, fmt.Errorf("backtest.end must be after backtest.start")
	}
	return start, end, nil
}

// Interval parses the bar interval, defaulting to one day.
func (c *Config) Interval() (market.Interval, error) {
	if c.Backtest.Interval == "" {
		return market.Interval{N: 1, Unit: market.Day}, nil
	}
	return market.ParseInterval(c.Backtest.Interval)
}

// StrategyParams converts the strategy parameters for the registry.
func (c *Config) StrategyParams() strategies.Config {
	return strategies.Config{
		Shares: c.Strategy.Shares,
		Period: c.Strategy.Period,
	}
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Ticker: "SPY",
			Cash:   10000,
		},
		Commission: CommissionConfig{
			Type: "flat",
			Rate: 1,
		},
		Data: DataConfig{
			CSV: "./data.csv",
		},
		Backtest: BacktestConfig{
			Start:    "2023-01-01",
			End:      "2024-01-01",
			Interval: "1d",
		},
		Strategy: StrategyConfig{
			Name:   "sma-cross",
			Shares: 100,
			Period: 20,
		},
		Journal: JournalConfig{
			Type:             "csv",
			TransactionsFile: "./transactions.csv",
			EquityFile:       "./equity.csv",
		},
	}
}
