package cmd

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/openfolio/brokerage"
	"github.com/shopspring/decimal"
)

// Markdown builders for the report commands. Output goes through
// printMarkdown for terminal rendering.

var hundred = decimal.NewFromInt(100)

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func renderTransactions(txs []brokerage.Transaction) string {
	if len(txs) == 0 {
		return "No transactions.\n"
	}
	var b strings.Builder
	b.WriteString("# Transactions\n\n")
	b.WriteString("| Time | Kind | Symbol | Qty | Unit Price | Cash Delta | Cash After | Note |\n")
	b.WriteString("|---|---|---|---:|---:|---:|---:|---|\n")
	for _, tx := range txs {
		symbol, qty, unit := "", "", ""
		if tx.Kind.IsTrade() {
			symbol = tx.Symbol
			qty = tx.Quantity.String()
			unit = tx.UnitPrice.String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			tx.Time.UTC().Format(time.RFC3339), tx.Kind, symbol, qty, unit,
			tx.CashDelta, tx.CashAfter, tx.Note)
	}
	return b.String()
}

func renderHoldings(valuations []brokerage.HoldingValuation, cash brokerage.Money) string {
	var b strings.Builder
	b.WriteString("# Holdings\n\n")
	if len(valuations) == 0 {
		b.WriteString("No open positions.\n\n")
	} else {
		b.WriteString("| Symbol | Qty | Price | Market Value |\n")
		b.WriteString("|---|---:|---:|---:|\n")
		var total brokerage.Money
		for _, v := range valuations {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", v.Symbol, v.Quantity, v.Price, v.MarketValue)
			total = total.Add(v.MarketValue)
		}
		fmt.Fprintf(&b, "\n- Securities: **%s**\n", total)
	}
	fmt.Fprintf(&b, "- Cash: **%s**\n", cash)
	return b.String()
}

func renderPnL(basis brokerage.Basis, report brokerage.PnL) string {
	var b strings.Builder
	b.WriteString("# Profit / Loss\n\n")
	fmt.Fprintf(&b, "- Basis (%s): **%s**\n", basis, report.BasisAmount)
	fmt.Fprintf(&b, "- Portfolio Value: **%s**\n", report.PortfolioValue)
	fmt.Fprintf(&b, "- P/L: **%s**\n", report.Abs)
	if report.Pct != nil {
		fmt.Fprintf(&b, "- P/L %%: **%s%%**\n", report.Pct.Mul(hundred).StringFixed(2))
	} else {
		b.WriteString("- P/L %: n/a (no positive basis)\n")
	}
	return b.String()
}

func renderPrices(quotes map[string]brokerage.Money, failures map[string]error) string {
	var b strings.Builder
	b.WriteString("# Prices\n\n")
	b.WriteString("| Symbol | Price |\n")
	b.WriteString("|---|---:|\n")
	for _, sym := range sortedKeys(quotes) {
		fmt.Fprintf(&b, "| %s | %s |\n", sym, quotes[sym])
	}
	for _, sym := range sortedKeys(failures) {
		fmt.Fprintf(&b, "| %s | %v |\n", sym, failures[sym])
	}
	return b.String()
}
