// Package cmd implements the CLI application to manage a trading account.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/openfolio/brokerage"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&createCmd{}, "account")
	c.Register(&depositCmd{}, "transactions")
	c.Register(&withdrawCmd{}, "transactions")
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")

	c.Register(&holdingsCmd{}, "reports")
	c.Register(&valueCmd{}, "reports")
	c.Register(&pnlCmd{}, "reports")
	c.Register(&txCmd{}, "reports")
	c.Register(&pricesCmd{}, "reports")

	c.Register(&auditCmd{}, "maintenance")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global flag variables.

var configFile = flag.String("config", ".acct.yaml", "Path to the account configuration file")
var ledgerFlag = flag.String("ledger-file", "", "Path to the ledger file (overrides the configured one)")

// ledgerPath resolves the ledger file location.
func ledgerPath(cfg *Config) string {
	if *ledgerFlag != "" {
		return *ledgerFlag
	}
	return cfg.Ledger
}

// loadAccount loads the configuration, decodes the ledger file and rebuilds
// the live account state by replaying it. A missing ledger file yields an
// empty account.
func loadAccount() (*brokerage.Account, *Config, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return nil, nil, err
	}

	ledger := brokerage.NewLedger()
	f, err := os.Open(ledgerPath(cfg))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("warning, ledger file %q does not exist, starting from an empty account", ledgerPath(cfg))
	case err != nil:
		return nil, nil, fmt.Errorf("could not open ledger file %q: %w", ledgerPath(cfg), err)
	default:
		defer f.Close()
		if ledger, err = brokerage.DecodeLedger(f); err != nil {
			return nil, nil, fmt.Errorf("could not decode ledger %q: %w", ledgerPath(cfg), err)
		}
	}

	account, err := brokerage.NewAccountFromLedger(cfg.Owner, ledger,
		brokerage.WithPriceProvider(cfg.PriceProvider()))
	if err != nil {
		return nil, nil, err
	}
	return account, cfg, nil
}

// appendTransaction appends a single record to the ledger file, and mirrors
// it into the SQLite archive when one is configured.
func appendTransaction(cfg *Config, tx brokerage.Transaction) error {
	f, err := os.OpenFile(ledgerPath(cfg), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open ledger file %q: %w", ledgerPath(cfg), err)
	}
	defer f.Close()
	if err := brokerage.EncodeTransaction(f, tx); err != nil {
		return fmt.Errorf("could not append to ledger file %q: %w", ledgerPath(cfg), err)
	}

	if cfg.Database != "" {
		store, err := brokerage.OpenLedgerStore(cfg.Database)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Append(tx); err != nil {
			return err
		}
	}
	return nil
}

// printMarkdown renders a markdown report to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// Fall back to the raw markdown.
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// parseInstant parses a timestamp flag, accepting a plain date or a full
// RFC 3339 instant. A plain date means end of that day, which is what "as of
// this day" reports expect.
func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Add(24*time.Hour - time.Nanosecond), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, want YYYY-MM-DD or RFC 3339: %w", s, err)
	}
	return t, nil
}

// fail prints an error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
