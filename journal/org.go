package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTransactionOrg renders one ledger record as an Org-mode block
// suitable for pasting into a trading journal. Structured facts live in a
// PROPERTIES drawer for easy search; narrative placeholders follow.
func FormatTransactionOrg(rec TransactionRecord) string {
	heading := fmt.Sprintf("** %s: %s (%s)", rec.Kind, rec.Ticker, shortID(rec.ID))
	date := rec.Date.UTC().Format(time.RFC3339)

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", rec.ID))
	b.WriteString(fmt.Sprintf(":KIND: %s\n", rec.Kind))
	b.WriteString(fmt.Sprintf(":TICKER: %s\n", rec.Ticker))
	b.WriteString(fmt.Sprintf(":SHARES: %d\n", rec.Shares))
	b.WriteString(fmt.Sprintf(":PRICE: %.4f\n", rec.Price))
	b.WriteString(fmt.Sprintf(":COMMISSION: %.2f\n", rec.Commission))
	b.WriteString(fmt.Sprintf(":GROSS: %.2f\n", rec.Gross))
	b.WriteString(fmt.Sprintf(":REALIZED_PL: %.2f\n", rec.RealizedPL))
	b.WriteString(fmt.Sprintf(":DATE: %s\n", date))
	b.WriteString(fmt.Sprintf(":EXECUTED: %t\n", rec.Executed))
	if rec.Note != "" {
		b.WriteString(fmt.Sprintf(":NOTE: %s\n", rec.Note))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTransactionsOrg renders multiple records separated by blank lines.
func FormatTransactionsOrg(recs []TransactionRecord) string {
	var b strings.Builder
	for i, rec := range recs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTransactionOrg(rec))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
