package opreturn

import "errors"

var (
	// ErrInvalidScriptInput indicates missing or inconsistent message script parameters.
	ErrInvalidScriptInput = errors.New("Invalid OP RETURN script input")

	// ErrNotOpReturn indicates the script does not start with OP_RETURN.
	ErrNotOpReturn = errors.New("opreturn: script is not an OP_RETURN output")

	// ErrMalformedScript indicates a truncated push or a non-push opcode after OP_RETURN.
	ErrMalformedScript = errors.New("opreturn: malformed script")

	// ErrInvalidAliasName indicates the alias name cannot be encoded.
	ErrInvalidAliasName = errors.New("opreturn: invalid alias name")
)
