package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type auditCmd struct{}

func (*auditCmd) Name() string     { return "audit" }
func (*auditCmd) Synopsis() string { return "verify the ledger against the live state" }
func (*auditCmd) Usage() string {
	return `acct audit

  Replays the full ledger and checks that the result matches the live state,
  and that every record's running cash balance is consistent.
`
}

func (*auditCmd) SetFlags(*flag.FlagSet) {}

func (c *auditCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	account, _, err := loadAccount()
	if err != nil {
		return fail(err)
	}
	if err := account.Audit(); err != nil {
		return fail(err)
	}
	fmt.Printf("Ledger is consistent: %d records.\n", account.LedgerLen())
	return subcommands.ExitSuccess
}
