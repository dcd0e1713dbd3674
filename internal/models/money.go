package models

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Storage shape of every balance column.
const (
	MoneyScale     = 10
	MoneyPrecision = 65
)

// MoneyIntegerDigits is the most digits a balance holds left of the decimal point.
const MoneyIntegerDigits = MoneyPrecision - MoneyScale

// MoneyType is the SQL type used for balances and for casting amounts.
var MoneyType = "NUMERIC(" + strconv.Itoa(MoneyPrecision) + "," + strconv.Itoa(MoneyScale) + ")"

// Scale returns the number of fractional digits carried by d.
// Trailing zeros count: "1.50" has scale 2.
func Scale(d decimal.Decimal) int {
	if exp := d.Exponent(); exp < 0 {
		return int(-exp)
	}
	return 0
}

// ExceedsMoneyScale reports whether d carries more fractional digits than a balance can store.
func ExceedsMoneyScale(d decimal.Decimal) bool {
	return Scale(d) > MoneyScale
}

// IntegerDigits returns the number of digits left of the decimal point.
// It reads only the coefficient and exponent, so it is cheap for any exponent.
func IntegerDigits(d decimal.Decimal) int {
	if d.IsZero() {
		return 0
	}
	if n := d.NumDigits() + int(d.Exponent()); n > 0 {
		return n
	}
	return 0
}

// ExceedsMoneyPrecision reports whether d is too large for any balance.
func ExceedsMoneyPrecision(d decimal.Decimal) bool {
	return IntegerDigits(d) > MoneyIntegerDigits
}

// FormatAmount renders d for logs. Amounts outside the storable range are
// written as coefficient and exponent; String would expand the exponent.
func FormatAmount(d decimal.Decimal) string {
	if ExceedsMoneyScale(d) || ExceedsMoneyPrecision(d) {
		return d.Coefficient().String() + "e" + strconv.Itoa(int(d.Exponent()))
	}
	return d.String()
}

// ParseAmount parses a decimal string as sent on the wire.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}
