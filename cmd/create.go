package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type createCmd struct {
	owner    string
	ledger   string
	database string
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "create the account configuration" }
func (*createCmd) Usage() string {
	return `acct create -owner <name> [-ledger <path>] [-database <path>]

  Writes the configuration file for a new account. The ledger file itself is
  created by the first transaction.
`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.owner, "owner", "", "Account holder's name.")
	f.StringVar(&c.ledger, "ledger", "ledger.jsonl", "Path to the JSONL ledger file.")
	f.StringVar(&c.database, "database", "", "Optional path to a SQLite archive of the ledger.")
}

func (c *createCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.owner == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if _, err := os.Stat(*configFile); err == nil {
		return fail(fmt.Errorf("config file %q already exists", *configFile))
	}

	cfg := &Config{Owner: c.owner, Ledger: c.ledger, Database: c.database}
	if err := cfg.Save(*configFile); err != nil {
		return fail(err)
	}
	fmt.Printf("Created %s for %s. Ledger: %s.\n", *configFile, cfg.Owner, cfg.Ledger)
	return subcommands.ExitSuccess
}
