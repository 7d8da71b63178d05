package brokerage

import (
	"fmt"
	"strconv"
	"strings"
)

// Quantity is a whole number of shares. Trade requests must state a positive
// quantity; aggregated holdings never go negative.
type Quantity int64

// ParseQuantity normalizes a textual share count. Non-integer or
// non-positive input is reported as ErrInvalidQuantity.
func ParseQuantity(s string) (Quantity, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: must be positive, got %d", ErrInvalidQuantity, n)
	}
	return Quantity(n), nil
}

func (q Quantity) IsPositive() bool { return q > 0 }
func (q Quantity) IsZero() bool     { return q == 0 }
func (q Quantity) Int64() int64     { return int64(q) }

func (q Quantity) Add(n Quantity) Quantity { return q + n }
func (q Quantity) Sub(n Quantity) Quantity { return q - n }

func (q Quantity) String() string { return strconv.FormatInt(int64(q), 10) }
