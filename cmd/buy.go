package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/openfolio/brokerage"
)

type buyCmd struct {
	price string
	note  string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares of a security" }
func (*buyCmd) Usage() string {
	return `acct buy [-price <amount>] [-note <text>] <symbol> <quantity>

  Buys whole shares at the given unit price, or at the provider's current
  price when -price is omitted. Fails when the cost exceeds the cash balance.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.price, "price", "", "Unit price. Defaults to the provider's current price.")
	f.StringVar(&c.note, "note", "", "Free-form note attached to the record.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	quantity, err := brokerage.ParseQuantity(f.Arg(1))
	if err != nil {
		return fail(err)
	}
	var price brokerage.Money
	if c.price != "" {
		if price, err = brokerage.ParseMoney(c.price); err != nil {
			return fail(err)
		}
	}

	account, cfg, err := loadAccount()
	if err != nil {
		return fail(err)
	}
	cost, err := account.Buy(f.Arg(0), quantity, price, c.note)
	if err != nil {
		return fail(err)
	}
	tx, _ := account.LastTransaction()
	if err := appendTransaction(cfg, tx); err != nil {
		return fail(err)
	}

	fmt.Printf("Bought %s %s at %s for %s. Cash balance is now %s.\n",
		quantity, tx.Symbol, tx.UnitPrice, cost, account.CashBalance())
	return subcommands.ExitSuccess
}
