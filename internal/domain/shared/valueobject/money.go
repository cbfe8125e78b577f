package valueobject

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Money pairs a decimal amount with its currency. Values are immutable.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney builds a Money, rejecting an empty currency
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{amount: amount, currency: currency}, nil
}

// MustMoney panics where NewMoney would fail
func MustMoney(amount decimal.Decimal, currency Currency) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() Currency      { return m.currency }

// String formats the amount with the currency's minor unit, e.g. "10.00 EUR"
func (m Money) String() string {
	return m.amount.StringFixed(m.currency.DecimalPlaces()) + " " + string(m.currency)
}

// FloatCompare rounds a and b half away from zero at digits and compares
// the results: -1 if a < b, 0 if equal, 1 if a > b. Differences below the
// precision compare equal.
func FloatCompare(a, b decimal.Decimal, digits int32) int {
	return a.Round(digits).Sub(b.Round(digits)).Round(digits).Sign()
}
