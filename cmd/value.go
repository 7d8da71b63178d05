package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/openfolio/brokerage"
)

type valueCmd struct {
	at string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "show the total portfolio value" }
func (*valueCmd) Usage() string {
	return `acct value [-at <time>]

  Shows cash plus the market value of all holdings, at current prices.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.at, "at", "", "Report as of this instant (YYYY-MM-DD or RFC 3339).")
}

func (c *valueCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	account, _, err := loadAccount()
	if err != nil {
		return fail(err)
	}

	var value brokerage.Money
	if c.at != "" {
		at, err := parseInstant(c.at)
		if err != nil {
			return fail(err)
		}
		if value, err = account.PortfolioValueAt(at); err != nil {
			return fail(err)
		}
	} else if value, err = account.PortfolioValue(); err != nil {
		return fail(err)
	}

	fmt.Printf("Portfolio value: %s\n", value)
	return subcommands.ExitSuccess
}
