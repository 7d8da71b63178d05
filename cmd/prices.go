package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/openfolio/brokerage"
)

type pricesCmd struct{}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "show current prices for known symbols" }
func (*pricesCmd) Usage() string {
	return `acct prices [<symbol>...]

  Queries the configured price provider. Without arguments, shows every
  symbol the configuration knows a price for.
`
}

func (*pricesCmd) SetFlags(*flag.FlagSet) {}

func (c *pricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return fail(err)
	}
	provider := cfg.PriceProvider()

	symbols := f.Args()
	if len(symbols) == 0 {
		symbols = cfg.Symbols()
	}

	quotes := make(map[string]brokerage.Money)
	failures := make(map[string]error)
	for _, symbol := range symbols {
		sym, err := brokerage.NormalizeSymbol(symbol)
		if err != nil {
			failures[symbol] = err
			continue
		}
		price, err := provider.Price(sym)
		if err != nil {
			failures[sym] = err
			continue
		}
		quotes[sym] = price
	}

	printMarkdown(renderPrices(quotes, failures))
	return subcommands.ExitSuccess
}
