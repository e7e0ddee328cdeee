package sendinput

import "errors"

var (
	// ErrAliasSuffix indicates alias-shaped input without the ".xec" suffix.
	ErrAliasSuffix = errors.New("Aliases must end with '.xec'")

	// ErrInvalidAlias indicates a ".xec" input whose name can never be registered.
	ErrInvalidAlias = errors.New("Invalid alias")

	// ErrUnsupportedParam indicates a query parameter other than amount.
	ErrUnsupportedParam = errors.New("Unsupported param")

	// ErrInvalidQuery indicates a query string that does not parse.
	ErrInvalidQuery = errors.New("Invalid query string")

	// ErrAmountRequired indicates an empty amount.
	ErrAmountRequired = errors.New("Amount is required")

	// ErrBelowMinimum indicates an amount under the send floor.
	ErrBelowMinimum = errors.New("Send amount must be at least")

	// ErrExceedsBalance indicates an amount larger than the wallet balance.
	ErrExceedsBalance = errors.New("Amount cannot exceed your XEC balance")
)
