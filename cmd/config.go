package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/openfolio/brokerage"
	"gopkg.in/yaml.v3"
)

// Config holds the per-account settings, read from a YAML file next to the
// ledger. Every field has a usable default so a missing file still works.
type Config struct {
	// Owner is the account holder's name.
	Owner string `yaml:"owner"`
	// Ledger is the path to the JSONL ledger file.
	Ledger string `yaml:"ledger"`
	// Database is the optional path to a SQLite archive of the ledger.
	Database string `yaml:"database,omitempty"`
	// Prices maps symbols to fixed unit prices, as decimal strings.
	Prices map[string]string `yaml:"prices,omitempty"`
	// Quotes configures a live quote API. When set it takes precedence
	// over the fixed price table.
	Quotes QuotesConfig `yaml:"quotes,omitempty"`
}

// QuotesConfig identifies a JSON quote API.
type QuotesConfig struct {
	URL       string `yaml:"url"`
	APIKey    string `yaml:"api_key,omitempty"`
	PricePath string `yaml:"price_path,omitempty"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Owner:  "default",
		Ledger: "ledger.jsonl",
	}
}

// LoadConfig reads the YAML configuration at path. A missing file is not an
// error, it yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, config file %q does not exist, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %q: %w", path, err)
	}
	if cfg.Owner == "" {
		cfg.Owner = "default"
	}
	if cfg.Ledger == "" {
		cfg.Ledger = "ledger.jsonl"
	}
	return cfg, nil
}

// Save writes the configuration back to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("could not marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write config file %q: %w", path, err)
	}
	return nil
}

// PriceProvider builds the price source selected by the configuration: the
// quote API when one is configured, else the fixed price table, else the
// built-in defaults.
func (c *Config) PriceProvider() brokerage.PriceProvider {
	if c.Quotes.URL != "" {
		svc := brokerage.NewQuoteService(c.Quotes.URL, c.Quotes.APIKey)
		svc.PricePath = c.Quotes.PricePath
		return svc
	}
	if len(c.Prices) > 0 {
		table := make(brokerage.StaticPrices, len(c.Prices))
		for sym, value := range c.Prices {
			normalized, err := brokerage.NormalizeSymbol(sym)
			if err != nil {
				log.Printf("warning, ignoring invalid configured symbol %q", sym)
				continue
			}
			price, err := brokerage.ParseMoney(value)
			if err != nil {
				log.Printf("warning, ignoring invalid configured price %q for %q", value, sym)
				continue
			}
			table[normalized] = price
		}
		return table
	}
	return brokerage.DefaultPrices()
}

// Symbols returns the symbols the configuration knows a price for, used by
// the prices report.
func (c *Config) Symbols() []string {
	if len(c.Prices) > 0 {
		symbols := make([]string, 0, len(c.Prices))
		for sym := range c.Prices {
			symbols = append(symbols, sym)
		}
		return symbols
	}
	symbols := make([]string, 0, len(brokerage.DefaultPrices()))
	for sym := range brokerage.DefaultPrices() {
		symbols = append(symbols, sym)
	}
	return symbols
}
