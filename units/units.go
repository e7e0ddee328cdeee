// Package units converts between satoshis and display amounts.
//
// XEC uses 2 decimal places (1 XEC = 100 satoshis). Legacy BCH-style
// amounts use 8. All arithmetic goes through decimal.Decimal so no
// binary floating point ever touches a money value.
package units

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// CashDecimals is the number of decimal places of one XEC.
	CashDecimals = int32(2)

	// LegacyDecimals is the number of decimal places of the legacy unit.
	LegacyDecimals = int32(8)

	// MaxSatoshis is the total supply, 21 trillion XEC.
	MaxSatoshis = int64(2_100_000_000_000_000)
)

// SatoshisToXec converts an integer satoshi amount to its display value
// for a unit with the given number of decimals.
func SatoshisToXec(sats int64, decimals int32) decimal.Decimal {
	return decimal.New(sats, -decimals)
}

// XecToSatoshis converts a display value to satoshis. It fails with
// ErrNotInteger when the value carries more precision than decimals and
// with ErrInvalidAmount when the result exceeds MaxSatoshis.
func XecToSatoshis(xec decimal.Decimal, decimals int32) (int64, error) {
	sats := xec.Shift(decimals)
	if !sats.Equal(sats.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s with %d decimals", ErrNotInteger, xec.String(), decimals)
	}
	if sats.Abs().GreaterThan(decimal.NewFromInt(MaxSatoshis)) {
		return 0, fmt.Errorf("%w: %s exceeds the total supply", ErrInvalidAmount, xec.String())
	}
	return sats.IntPart(), nil
}

// FromLegacyDecimals rescales an 8-decimal legacy amount to a unit with
// the given number of decimals, e.g. 0.00000546 -> 5.46 XEC.
func FromLegacyDecimals(amount decimal.Decimal, decimals int32) decimal.Decimal {
	return amount.Shift(LegacyDecimals - decimals)
}

// ToLegacyDecimals is the inverse of FromLegacyDecimals.
func ToLegacyDecimals(amount decimal.Decimal, decimals int32) decimal.Decimal {
	return amount.Shift(decimals - LegacyDecimals)
}

// ParseDisplay parses user supplied amount text. Surrounding whitespace
// is ignored; anything else that is not a plain decimal number fails.
func ParseDisplay(value string) (decimal.Decimal, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	// decimal.NewFromString accepts exponents; amounts typed by people never have them.
	if strings.ContainsAny(v, "eE") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	return d, nil
}

// DecimalPlaces counts the digits after the decimal point as written.
// Trailing zeros count, so "1.10" has two.
func DecimalPlaces(value string) int {
	v := strings.TrimSpace(value)
	idx := strings.IndexByte(v, '.')
	if idx < 0 {
		return 0
	}
	return len(v) - idx - 1
}

// CheckDecimalPlaces reports an error when value is written with more
// than max decimal places.
func CheckDecimalPlaces(value string, max int) error {
	if DecimalPlaces(value) > max {
		return fmt.Errorf("%w: XEC transactions do not support more than %d decimal places", ErrTooManyDecimals, max)
	}
	return nil
}

// ParseSatoshis parses display text in a unit with the given decimals and
// returns the satoshi value. Negative values are rejected.
func ParseSatoshis(value string, decimals int32) (int64, error) {
	if err := CheckDecimalPlaces(value, int(decimals)); err != nil {
		return 0, err
	}
	d, err := ParseDisplay(value)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %s", ErrNegativeAmount, value)
	}
	return XecToSatoshis(d, decimals)
}

// FormatXec renders satoshis as fixed-point display text, e.g. 550 -> "5.50".
func FormatXec(sats int64, decimals int32) string {
	return SatoshisToXec(sats, decimals).StringFixed(decimals)
}
