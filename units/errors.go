package units

import "errors"

var (
	// ErrInvalidAmount indicates the amount text is not a decimal number.
	ErrInvalidAmount = errors.New("units: invalid amount")

	// ErrNotInteger indicates a conversion would produce a fractional satoshi.
	ErrNotInteger = errors.New("units: result is not a whole number of satoshis")

	// ErrTooManyDecimals indicates the amount carries more precision than the unit supports.
	ErrTooManyDecimals = errors.New("units: too many decimal places")

	// ErrNegativeAmount indicates the amount is below zero.
	ErrNegativeAmount = errors.New("units: negative amount")
)
