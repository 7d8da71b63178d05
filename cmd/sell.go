package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/openfolio/brokerage"
)

type sellCmd struct {
	price string
	note  string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares of a held security" }
func (*sellCmd) Usage() string {
	return `acct sell [-price <amount>] [-note <text>] <symbol> <quantity>

  Sells whole shares at the given unit price, or at the provider's current
  price when -price is omitted. Fails when the position does not cover the
  quantity.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.price, "price", "", "Unit price. Defaults to the provider's current price.")
	f.StringVar(&c.note, "note", "", "Free-form note attached to the record.")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	proceeds, err := account.Sell(f.Arg(0), quantity, price, c.note)
	if err != nil {
		return fail(err)
	}
	tx, _ := account.LastTransaction()
	if err := appendTransaction(cfg, tx); err != nil {
		return fail(err)
	}

	fmt.Printf("Sold %s %s at %s for %s. Cash balance is now %s.\n",
		quantity, tx.Symbol, tx.UnitPrice, proceeds, account.CashBalance())
	return subcommands.ExitSuccess
}
