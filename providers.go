package brokerage

import (
	"fmt"
	"time"
)

// PriceProvider maps a normalized symbol to its current unit price. It is an
// external collaborator: failures propagate to the caller of the operation
// that needed the price, with no retry or caching in the core.
//
// A provider reports ErrInvalidSymbol for symbols it does not know, and
// ErrPriceUnavailable for symbols it knows but cannot price right now.
type PriceProvider interface {
	Price(symbol string) (Money, error)
}

// PriceFunc adapts a plain function to the PriceProvider interface.
type PriceFunc func(symbol string) (Money, error)

func (f PriceFunc) Price(symbol string) (Money, error) { return f(symbol) }

// TimeProvider supplies the current instant. It is injected so that tests
// control timestamps deterministically.
type TimeProvider interface {
	Now() time.Time
}

// TimeFunc adapts a plain function to the TimeProvider interface.
type TimeFunc func() time.Time

func (f TimeFunc) Now() time.Time { return f() }

// systemClock is the default time provider.
var systemClock = TimeFunc(func() time.Time { return time.Now().UTC() })

// StaticPrices is a fixed in-memory price table implementing PriceProvider.
// A symbol absent from the table is unknown; a symbol mapped to a
// non-positive price is known but unpriceable.
type StaticPrices map[string]Money

func (p StaticPrices) Price(symbol string) (Money, error) {
	s, err := NormalizeSymbol(symbol)
	if err != nil {
		return Money{}, err
	}
	price, ok := p[s]
	if !ok {
		return Money{}, fmt.Errorf("%w: unsupported symbol %q", ErrInvalidSymbol, s)
	}
	if !price.IsPositive() {
		return Money{}, fmt.Errorf("%w: no quote for %q", ErrPriceUnavailable, s)
	}
	return price, nil
}

// DefaultPrices returns the provider used when none is injected: a small
// fixed table convenient for tests and offline use.
func DefaultPrices() StaticPrices {
	return StaticPrices{
		"AAPL":  M(190.00),
		"TSLA":  M(250.00),
		"GOOGL": M(140.00),
	}
}
