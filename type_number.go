package paycal

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

var (
	hundredth = decimal.New(1, -2)
	// fallbackRate is the USD->UAH rate used when nothing better is known.
	fallbackRate = decimal.NewFromInt(42)
)

// Round2 rounds to cents.
func Round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// Round4 rounds rates.
func Round4(d decimal.Decimal) decimal.Decimal { return d.Round(4) }

// roughlyEqual reports whether a and b are closer than one cent.
func roughlyEqual(a, b decimal.Decimal) bool { return a.Sub(b).Abs().LessThan(hundredth) }

// Number is a nullable numeric input.
//
// It is lenient when decoded: missing, null, non numeric or non finite values
// decode into an absent Number instead of failing. Strings are accepted with
// spaces as thousand separators and ',' as decimal separator.
type Number struct {
	value decimal.Decimal
	valid bool
}

// N returns a present Number.
func N[T float64 | int | int64 | decimal.Decimal](value T) Number {
	return Number{value: newDecimal(value), valid: true}
}

// Valid reports whether the number is present.
func (n Number) Valid() bool { return n.valid }

// Decimal returns the value and whether it is present.
func (n Number) Decimal() (decimal.Decimal, bool) { return n.value, n.valid }

// Or returns the value if present or the fallback.
func (n Number) Or(fallback decimal.Decimal) decimal.Decimal {
	if n.valid {
		return n.value
	}
	return fallback
}

// Positive reports whether the number is present and strictly positive.
func (n Number) Positive() bool { return n.valid && n.value.IsPositive() }

func (n Number) String() string {
	if !n.valid {
		return ""
	}
	return n.value.String()
}

// ParseNumber converts a user input into a Number.
func ParseNumber(text string) Number {
	text = strings.TrimSpace(text)
	if text == "" {
		return Number{}
	}
	text = strings.Join(strings.Fields(text), "")
	text = strings.Replace(text, ",", ".", 1)
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Number{}
	}
	return Number{value: d, valid: true}
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return []byte(n.value.String()), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		// malformed numeric input is treated as absent.
		return nil
	}
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		// parse the literal to keep the exact decimal digits.
		d, err := decimal.NewFromString(string(data))
		if err != nil {
			d = decimal.NewFromFloat(t)
		}
		*n = Number{value: d, valid: true}
	case string:
		*n = ParseNumber(t)
	}
	return nil
}

var _ json.Marshaler = Number{}
var _ json.Unmarshaler = (*Number)(nil)
