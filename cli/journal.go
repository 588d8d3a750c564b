package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"backsim/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query backtest journal data",
	Long: `Query and display ledger records from a SQLite journal database.

Subcommands:
  tx   - Get details of a specific transaction by ID
  day  - List transactions dated on a specific day

Examples:
  backsim journal tx <transaction-id>
  backsim journal day 2024-01-15`,
}

var journalTxCmd = &cobra.Command{
	Use:   "tx <transaction-id>",
	Short: "Get details of a specific transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTx,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List transactions dated on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTxCmd)
	journalCmd.AddCommand(journalDayCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./backsim.sqlite", "path to SQLite journal DB")
}

func runJournalTx(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	rec, err := j.GetTransaction(args[0])
	if err != nil {
		return fmt.Errorf("get transaction: %w", err)
	}

	fmt.Println(journal.FormatTransactionOrg(rec))
	return nil
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	start, end, err := dayBounds(args[0])
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	recs, err := j.ListTransactionsBetween(start, end)
	if err != nil {
		return fmt.Errorf("query transactions: %w", err)
	}

	fmt.Println(journal.FormatTransactionsOrg(recs))
	return nil
}

func dayBounds(day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, day, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour), nil
}
