package paycal

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is one of the two display currencies.
type Currency string

const (
	USD Currency = "usd" // anchor currency of the schedule
	UAH Currency = "uah" // local currency
)

// ParseCurrency accepts "usd", "uah" in any case.
func ParseCurrency(s string) (Currency, error) {
	switch c := Currency(strings.ToLower(strings.TrimSpace(s))); c {
	case USD, UAH:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, s)
	}
}

// Code returns the ISO 4217 code.
func (c Currency) Code() string { return strings.ToUpper(string(c)) }

func (c *Currency) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseCurrency(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   Currency
}

// M returns a Money.
func M[T float64 | int | int64 | decimal.Decimal](value T, cur Currency) Money {
	return Money{value: newDecimal(value), cur: cur}
}

// Pick returns the amount in currency cur out of a pair of amounts.
func Pick(cur Currency, usd, uah decimal.Decimal) Money {
	if cur == UAH {
		return Money{value: uah, cur: UAH}
	}
	return Money{value: usd, cur: USD}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur.Code()).Currency()
}

// String returns the string representation of the money value, using the currency's own format.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() Currency           { return m.cur }
func (m Money) Value() decimal.Decimal       { return m.value }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) Add(n Money) Money            { return Money{value: m.value.Add(n.value), cur: m.cur} }
func (m Money) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
