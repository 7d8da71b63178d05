package brokerage

import "errors"

// Validation failures are reported as distinct kinds so that callers can
// branch with errors.Is. Every kind aborts its operation before any state
// mutation or ledger append; the error is the sole observable effect.
var (
	// ErrInvalidAmount reports a non-positive, non-finite or unparsable
	// monetary input.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidQuantity reports a non-positive or non-integer share count.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInvalidSymbol reports an empty or malformed ticker, or one the
	// price provider does not recognize.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrInsufficientFunds reports a withdrawal or purchase exceeding the
	// cash balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientHoldings reports a sale exceeding the held quantity.
	ErrInsufficientHoldings = errors.New("insufficient holdings")

	// ErrPriceUnavailable reports a recognized symbol that cannot be priced
	// right now.
	ErrPriceUnavailable = errors.New("price unavailable")
)
