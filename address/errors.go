package address

import (
	"errors"
)

// ErrInvalidAddress is the sentinel matched by every InvalidAddressError.
var ErrInvalidAddress = errors.New("Invalid address")

// InvalidAddressError describes why an address was rejected.
type InvalidAddressError struct {
	Address string
	Reason  string
}

func (e *InvalidAddressError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return ErrInvalidAddress.Error()
}

// Is reports whether target is ErrInvalidAddress.
func (e *InvalidAddressError) Is(target error) bool {
	return target == ErrInvalidAddress
}

func invalid(addr, reason string) error {
	return &InvalidAddressError{Address: addr, Reason: reason}
}
