package brokerage

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizeSymbol canonicalizes a ticker symbol: surrounding whitespace is
// trimmed and the symbol is upper-cased. The result must be a non-empty
// alphanumeric string, otherwise ErrInvalidSymbol is returned.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return "", fmt.Errorf("%w: empty symbol", ErrInvalidSymbol)
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "", fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
		}
	}
	return s, nil
}

func normalizeUpper(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// checkPositiveAmount rejects amounts that are zero or negative.
func checkPositiveAmount(m Money) error {
	if !m.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidAmount, m)
	}
	return nil
}

// checkPositiveQuantity rejects share counts that are zero or negative.
func checkPositiveQuantity(q Quantity) error {
	if !q.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive, got %s", ErrInvalidQuantity, q)
	}
	return nil
}
