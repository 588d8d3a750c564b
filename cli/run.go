package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"backsim/backtest"
	"backsim/config"
	"backsim/journal"
	"backsim/market"
	"backsim/risk"
	"backsim/sim"
	"backsim/strategies"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest from a config file",
	Long: `Run a backtest using settings from a configuration file.

The config file names the ticker, starting cash, commission scheme, date
window, strategy and journal backend.

Example:
  backsim run -f examples/configs/sma-cross.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	start, end, err := cfg.Window()
	if err != nil {
		return err
	}
	interval, err := cfg.Interval()
	if err != nil {
		return err
	}
	scheme, err := cfg.CommissionScheme()
	if err != nil {
		return err
	}

	provider := market.CSVProvider{Path: cfg.Data.CSV}
	series, err := provider.Fetch(cfg.Account.Ticker, start, end, interval)
	if err != nil {
		return fmt.Errorf("load price data: %w", err)
	}

	strat, err := strategies.ByName(cfg.Strategy.Name, cfg.StrategyParams())
	if err != nil {
		return err
	}

	acct := sim.NewAccount(cfg.Account.Ticker, cfg.Account.Cash, series,
		sim.WithCommission(scheme, cfg.Commission.Rate),
		sim.WithLogger(logger))

	opts := []backtest.RunnerOption{backtest.WithRunLogger(logger)}
	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	if j != nil {
		defer j.Close()
		opts = append(opts, backtest.WithJournal(j))
	}

	fmt.Printf("Running backtest: %s\n", runConfigPath)
	fmt.Printf("  Ticker: %s (Cash: $%.2f)\n", cfg.Account.Ticker, cfg.Account.Cash)
	fmt.Printf("  Strategy: %s\n", cfg.Strategy.Name)
	fmt.Printf("  Window: %s to %s every %s\n\n",
		cfg.Backtest.Start, cfg.Backtest.End, interval)

	runner, err := backtest.New(acct, strat, start, end, interval, opts...)
	if err != nil {
		return err
	}

	result, err := runner.Run()
	if err != nil {
		return fmt.Errorf("run backtest: %w", err)
	}

	printResult(cfg, result)
	return nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "csv":
		return journal.NewCSV(jc.TransactionsFile, jc.EquityFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	}
	return nil, nil
}

func printResult(cfg *config.Config, result *backtest.Result) {
	returns := result.Returns()
	stats := risk.ComputeReturnStats(returns)
	maxDD, _ := risk.MaxDrawdown(result.Equity())

	fmt.Printf("Results:\n")
	fmt.Printf("  Final Value: $%.2f\n", result.FinalValue)
	fmt.Printf("  Final Cash: $%.2f\n", result.FinalCash)
	fmt.Printf("  Profit/Loss: $%.2f\n", result.FinalValue-cfg.Account.Cash)
	fmt.Printf("  Realized P/L: $%.2f\n", result.RealizedPL())
	fmt.Printf("  Trades Executed: %d\n\n", len(result.ExecutedTrades()))

	if len(returns) > 1 {
		fmt.Printf("Statistics:\n")
		fmt.Printf("  Total Return: %.2f%%\n", stats.TotalReturn*100)
		fmt.Printf("  Annualized Return: %.2f%%\n", stats.AnnualizedReturn*100)
		fmt.Printf("  Volatility: %.2f%%\n", stats.Volatility*100)
		fmt.Printf("  Sharpe Ratio: %.2f\n", stats.SharpeRatio)
		fmt.Printf("  Max Drawdown: %.2f%%\n", maxDD*100)
		fmt.Printf("  VaR (95%%): %.2f%%\n\n", risk.VaR(returns, 0.95)*100)
	}

	switch cfg.Journal.Type {
	case "csv":
		fmt.Printf("Journal saved to:\n  - %s\n  - %s\n",
			cfg.Journal.TransactionsFile, cfg.Journal.EquityFile)
	case "sqlite":
		fmt.Printf("Journal saved to: %s\n", cfg.Journal.DBPath)
	}
}
