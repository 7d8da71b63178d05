package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/openfolio/brokerage"
)

type withdrawCmd struct {
	note string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "remove cash from the account" }
func (*withdrawCmd) Usage() string {
	return `acct withdraw [-note <text>] <amount>

  Records a cash withdrawal. Fails when the amount exceeds the cash balance.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.note, "note", "", "Free-form note attached to the record.")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if err := account.Withdraw(amount, c.note); err != nil {
		return fail(err)
	}
	tx, _ := account.LastTransaction()
	if err := appendTransaction(cfg, tx); err != nil {
		return fail(err)
	}

	fmt.Printf("Withdrew %s. Cash balance is now %s.\n", amount, account.CashBalance())
	return subcommands.ExitSuccess
}
