package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept in minor units.
const MoneyScale = 2

// Money is an amount in minor units (cents). All ledger arithmetic happens on Money,
// decimal.Decimal is only used to read and write amounts at the API boundary.
type Money int64

// MaxAmount bounds the magnitude of any single amount (one trillion currency units).
// Tens of thousands of such amounts can be summed without leaving int64.
const MaxAmount Money = 1_000_000_000_000 * 100

var (
	maxMoney = MaxAmount.Decimal()
	minMoney = (-MaxAmount).Decimal()
)

// NewMoneyFromDecimal converts a decimal amount (e.g. 10.50) into minor units.
// Amounts with more than MoneyScale fractional digits are rejected instead of rounded.
func NewMoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if !d.Equal(d.Truncate(MoneyScale)) {
		return 0, fmt.Errorf("amount %s has more than %d decimal places", d.String(), MoneyScale)
	}
	if d.GreaterThan(maxMoney) || d.LessThan(minMoney) {
		return 0, fmt.Errorf("amount %s is out of range", d.String())
	}
	return Money(d.Shift(MoneyScale).IntPart()), nil
}

// MustMoney parses a decimal string and panics on error. Intended for tests and constants.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	m, err := NewMoneyFromDecimal(d)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the amount as a decimal with MoneyScale places.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -MoneyScale)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(MoneyScale)
}

// InRange reports whether |m| <= MaxAmount.
func (m Money) InRange() bool { return m >= -MaxAmount && m <= MaxAmount }

// IsNegative reports whether m < 0.
func (m Money) IsNegative() bool { return m < 0 }

// MarshalJSON writes the amount as a quoted fixed-point string ("10.50").
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts both JSON numbers and quoted decimal strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	v, err := NewMoneyFromDecimal(d)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MaxMoney returns the larger of a and b.
func MaxMoney(a, b Money) Money {
	if a > b {
		return a
	}
	return b
}
