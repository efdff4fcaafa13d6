package domain

import (
	"github.com/shopspring/decimal"
)

// Money is a decimal amount rendered with two fraction digits on the wire.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d. Use MoneyPtr for optional amounts.
func NewMoney(d decimal.Decimal) Money { return Money{Decimal: d} }

// MoneyPtr returns nil for a nil decimal.
func MoneyPtr(d *decimal.Decimal) *Money {
	if d == nil {
		return nil
	}
	m := NewMoney(*d)
	return &m
}

// MustMoney parses s and panics on malformed input. Tests and fixtures only.
func MustMoney(s string) *Money {
	m := NewMoney(decimal.RequireFromString(s))
	return &m
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	return m.Decimal.UnmarshalJSON(b)
}
