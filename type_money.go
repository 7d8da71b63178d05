package brokerage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// moneyScale is the number of decimal places kept on every monetary amount.
const moneyScale = 2

// pctScale is the number of decimal places kept on profit/loss ratios.
const pctScale = 4

// Money is a cash amount held as an exact decimal with a fixed scale of two
// places. Every arithmetic result that crosses a monetary boundary (deposit
// amounts, trade costs and proceeds, valuations) is rounded half-up at that
// scale. Money is never backed by binary floating point.
type Money struct {
	value decimal.Decimal
}

// newDecimal is a convenient factory for decimal.Decimal.
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// M builds a Money from a trusted in-code value, quantized to the money
// scale. Untrusted input (user strings, wire data) must go through
// ParseMoney instead, which reports ErrInvalidAmount rather than panicking.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value).Round(moneyScale)}
}

// ParseMoney normalizes a textual monetary input. The input must parse to a
// finite decimal; it is then rounded half-up to the money scale. Failures are
// reported as ErrInvalidAmount.
func ParseMoney(s string) (Money, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Money{}, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Money{value: d.Round(moneyScale)}, nil
}

// Decimal returns the underlying exact value.
func (m Money) Decimal() decimal.Decimal { return m.value }

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }

// Operands are already at the money scale, so sums stay exact without
// re-rounding.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value)} }

// Mul computes a per-unit amount times a share count, rounded half-up to the
// money scale. This is the single rounding point for trade costs, proceeds
// and market values.
func (m Money) Mul(q Quantity) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(int64(q))).Round(moneyScale)}
}

// String returns the plain fixed-point representation, e.g. "1900.00".
func (m Money) String() string { return m.value.StringFixed(moneyScale) }

// Display formats the amount for humans using an ISO currency code,
// e.g. Display("USD") -> "$1,900.00".
func (m Money) Display(code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return m.String()
	}
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), code).Display()
}

// MarshalJSON persists the amount as an exact decimal string so that the
// representation round-trips without loss.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts either a decimal string or a bare JSON number.
func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, perr := ParseMoney(s)
		if perr != nil {
			return perr
		}
		m.value = parsed.value
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, string(data))
	}
	m.value = d.Round(moneyScale)
	return nil
}
