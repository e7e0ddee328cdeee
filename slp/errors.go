package slp

import "errors"

var (
	// ErrInvalidTokenConfig indicates a GENESIS configuration is missing required fields.
	ErrInvalidTokenConfig = errors.New("Invalid token configuration")

	// ErrInvalidSendParameter indicates SEND parameters are missing or malformed.
	ErrInvalidSendParameter = errors.New("Invalid send token parameter")

	// ErrInvalidBurnParameter indicates BURN parameters are missing or malformed.
	ErrInvalidBurnParameter = errors.New("Invalid burn token parameter")

	// ErrInsufficientTokens indicates the token inputs do not cover the requested quantity.
	ErrInsufficientTokens = errors.New("slp: insufficient token balance")

	// ErrTooManyOutputs indicates a SEND would exceed the output limit.
	ErrTooManyOutputs = errors.New("slp: too many token outputs")

	// ErrNotTokenScript indicates the script is not a token payload.
	ErrNotTokenScript = errors.New("slp: not a token script")

	// ErrMalformedTokenScript indicates a token payload with bad field lengths.
	ErrMalformedTokenScript = errors.New("slp: malformed token script")
)
