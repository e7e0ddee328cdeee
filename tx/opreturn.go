package tx

import (
	"fmt"

	"github.com/cashtaborg/libcashtab-go/opreturn"
)

// OpReturnOutput wraps a raw OP_RETURN script in a zero value output.
func OpReturnOutput(raw []byte) *Output {
	return &Output{Script: raw}
}

// MessageOutput builds the OP_RETURN output carrying a wallet message.
func MessageOutput(p opreturn.MessageParams) (*Output, error) {
	raw, err := opreturn.BuildMessageScript(p)
	if err != nil {
		return nil, fmt.Errorf("tx: message output: %w", err)
	}
	return OpReturnOutput(raw), nil
}
