// Package cli implements the backsim command-line interface.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "backsim",
	Short: "A trading strategy backtest engine",
	Long: `Backsim replays a trading strategy over historical price bars and
accounts for every trade with FIFO lot matching.

It provides tools for:
  - Backtesting registered strategies against CSV price data
  - Flat, percentage and per-share commission schemes
  - Pending limit and short orders with day or GTC duration
  - Journaling transactions and equity curves to SQLite or CSV
  - Return, drawdown and value-at-risk statistics`,
}

var verbose bool

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newLogger builds the process logger honoring the verbose flag.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
