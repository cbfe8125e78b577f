package valueobject

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	CHF Currency = "CHF"
)

// ParseCurrency normalizes and validates an ISO 4217 code
func ParseCurrency(code string) (Currency, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", fmt.Errorf("invalid currency code %q: %w", code, err)
	}
	return Currency(unit.String()), nil
}

// Validate returns an error unless the currency is a known ISO 4217 code
func (c Currency) Validate() error {
	if c == "" {
		return fmt.Errorf("currency cannot be empty")
	}
	_, err := ParseCurrency(string(c))
	return err
}

// IsZero reports whether no currency is set
func (c Currency) IsZero() bool {
	return c == ""
}

// DecimalPlaces returns the number of minor unit digits of the currency
// according to the standard rounding table (2 for EUR, 0 for JPY).
// Unknown codes default to 2.
func (c Currency) DecimalPlaces() int32 {
	unit, err := currency.ParseISO(string(c))
	if err != nil {
		return 2
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}

// String returns the ISO code
func (c Currency) String() string {
	return string(c)
}

// Coalesce returns the first non-empty currency
func Coalesce(currencies ...Currency) Currency {
	for _, c := range currencies {
		if !c.IsZero() {
			return c
		}
	}
	return ""
}
