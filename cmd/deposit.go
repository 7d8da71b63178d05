package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/openfolio/brokerage"
)

type depositCmd struct {
	note string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "add cash to the account" }
func (*depositCmd) Usage() string {
	return `acct deposit [-note <text>] <amount>

  Records a cash deposit. The amount is a decimal, e.g. 1000 or 250.50.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.note, "note", "", "Free-form note attached to the record.")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	amount, err := brokerage.ParseMoney(f.Arg(0))
	if err != nil {
		return fail(err)
	}

	account, cfg, err := loadAccount()
	if err != nil {
		return fail(err)
	}
	if err := account.Deposit(amount, c.note); err != nil {
		return fail(err)
	}
	tx, _ := account.LastTransaction()
	if err := appendTransaction(cfg, tx); err != nil {
		return fail(err)
	}

	fmt.Printf("Deposited %s. Cash balance is now %s.\n", amount, account.CashBalance())
	return subcommands.ExitSuccess
}
