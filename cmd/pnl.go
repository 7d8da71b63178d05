package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/openfolio/brokerage"
)

type pnlCmd struct {
	basis string
	at    string
}

func (*pnlCmd) Name() string     { return "pnl" }
func (*pnlCmd) Synopsis() string { return "show profit/loss against a basis" }
func (*pnlCmd) Usage() string {
	return `acct pnl [-basis net_contributions|initial_only] [-at <time>]

  Shows absolute and relative profit/loss of the portfolio value against the
  chosen basis. The percentage is omitted when the basis is not positive.
`
}

func (c *pnlCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.basis, "basis", "net_contributions", "Profit/loss basis (net_contributions or initial_only).")
	f.StringVar(&c.at, "at", "", "Report as of this instant (YYYY-MM-DD or RFC 3339).")
}

func (c *pnlCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	basis, err := brokerage.ParseBasis(c.basis)
	if err != nil {
		return fail(err)
	}

	account, _, err := loadAccount()
	if err != nil {
		return fail(err)
	}

	var report brokerage.PnL
	if c.at != "" {
		at, err := parseInstant(c.at)
		if err != nil {
			return fail(err)
		}
		if report, err = account.ProfitLossAt(at, basis); err != nil {
			return fail(err)
		}
	} else if report, err = account.ProfitLoss(basis); err != nil {
		return fail(err)
	}

	printMarkdown(renderPnL(basis, report))
	return subcommands.ExitSuccess
}
