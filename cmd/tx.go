package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/google/subcommands"
	"github.com/openfolio/brokerage"
)

type txCmd struct {
	since  string
	until  string
	kinds  string
	limit  int
	newest bool
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list ledger transactions" }
func (*txCmd) Usage() string {
	return `acct tx [-since <time>] [-until <time>] [-kind <k1,k2>] [-limit <n>] [-newest]

  Lists ledger records, with options for filtering and limiting the output.
  Bounds are inclusive; kinds are a comma-separated list among DEPOSIT,
  WITHDRAW, BUY and SELL.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.since, "since", "", "Keep records at or after this instant.")
	f.StringVar(&c.until, "until", "", "Keep records at or before this instant.")
	f.StringVar(&c.kinds, "kind", "", "Comma-separated transaction kinds to keep.")
	f.IntVar(&c.limit, "limit", 0, "Show at most N records (0 means all).")
	f.BoolVar(&c.newest, "newest", false, "List newest records first.")
}

func (c *txCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := brokerage.TxQuery{Limit: c.limit, NewestFirst: c.newest}

	if c.since != "" {
		since, err := parseInstant(c.since)
		if err != nil {
			return fail(err)
		}
		query.Since = &since
	}
	if c.until != "" {
		until, err := parseInstant(c.until)
		if err != nil {
			return fail(err)
		}
		query.Until = &until
	}
	for _, name := range strings.Split(c.kinds, ",") {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		kind, err := brokerage.ParseTxKind(name)
		if err != nil {
			return fail(err)
		}
		query.Kinds = append(query.Kinds, kind)
	}

	account, _, err := loadAccount()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderTransactions(account.Transactions(query)))
	return subcommands.ExitSuccess
}
