package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/openfolio/brokerage"
)

type holdingsCmd struct {
	at string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "show open positions and their market value" }
func (*holdingsCmd) Usage() string {
	return `acct holdings [-at <time>]

  Shows every open position, priced at the provider's current prices. With
  -at, shows the positions held as of that instant instead.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.at, "at", "", "Report as of this instant (YYYY-MM-DD or RFC 3339).")
}

func (c *holdingsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	account, _, err := loadAccount()
	if err != nil {
		return fail(err)
	}

	var valuations []brokerage.HoldingValuation
	cash := account.CashBalance()
	if c.at != "" {
		at, err := parseInstant(c.at)
		if err != nil {
			return fail(err)
		}
		valuations, err = account.ValuationAt(at)
		if err != nil {
			return fail(err)
		}
		cash = account.CashBalanceAt(at)
	} else if valuations, err = account.Valuation(); err != nil {
		return fail(err)
	}

	printMarkdown(renderHoldings(valuations, cash))
	return subcommands.ExitSuccess
}
