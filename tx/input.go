package tx

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Destination is one recipient of a one-to-many send.
type Destination struct {
	Address string
	Sats    uint64
}

// InputParams selects inputs for a plain value send.
type InputParams struct {
	OneToMany    bool
	UTXOs        []*UTXO
	Destinations []Destination // required when OneToMany
	SendSats     uint64
	FeeRate      decimal.Decimal

	// OpReturnLen is the length of an OP_RETURN script carried by the
	// transaction, 0 for none.
	OpReturnLen int
}

// InputSelection is the outcome of input selection.
type InputSelection struct {
	Inputs []*UTXO
	Total  uint64
	Fee    uint64
}

// BuildTxInput accumulates UTXOs in the order supplied until they cover
// the send amount plus the fee, re-estimating the fee as each input is
// added. Token UTXOs are never selected.
func BuildTxInput(p InputParams) (*InputSelection, error) {
	if len(p.UTXOs) == 0 || p.SendSats == 0 {
		return nil, fmt.Errorf("%w: utxos and send amount are required", ErrInvalidTxInputParameter)
	}
	if p.OneToMany && len(p.Destinations) == 0 {
		return nil, fmt.Errorf("%w: one-to-many send without destinations", ErrInvalidTxInputParameter)
	}

	outputs := 2
	if p.OneToMany {
		outputs = len(p.Destinations) + 1
	}
	plain, _ := SplitUTXOs(p.UTXOs)

	sel := &InputSelection{}
	for _, u := range plain {
		sel.Inputs = append(sel.Inputs, u)
		sel.Total += u.Value
		sel.Fee = feeFor(len(sel.Inputs), outputs, p.OpReturnLen, p.FeeRate)
		if sel.Total >= p.SendSats+sel.Fee {
			return sel, nil
		}
	}

	need := p.SendSats + feeFor(max(len(plain), 1), outputs, p.OpReturnLen, p.FeeRate)
	return nil, &InsufficientFundsError{Need: need, Have: sel.Total}
}

func feeFor(inputs, outputs, opReturnLen int, rate decimal.Decimal) uint64 {
	return FeeForBytes(ByteCount(inputs, outputs)+OpReturnOutputBytes(opReturnLen), rate)
}

// TokenOp is a token lifecycle operation.
type TokenOp int

const (
	TokenGenesis TokenOp = iota
	TokenSend
	TokenBurn
)

func (op TokenOp) String() string {
	switch op {
	case TokenGenesis:
		return "GENESIS"
	case TokenSend:
		return "SEND"
	case TokenBurn:
		return "BURN"
	default:
		return fmt.Sprintf("TokenOp(%d)", int(op))
	}
}

// Fee estimates count these outputs regardless of which are emitted.
const (
	genesisFeeOutputs = 2
	tokenFeeOutputs   = 4
)

// DefaultEtokenSats is the value of each token-carrying output.
const DefaultEtokenSats = uint64(546)

// TokenInputParams selects inputs for a token transaction.
type TokenInputParams struct {
	Op TokenOp

	// UTXOs may mix plain and token UTXOs.
	UTXOs []*UTXO

	// TokenID and Amount (base units) are required for SEND and BURN.
	TokenID string
	Amount  uint64

	FeeRate    decimal.Decimal
	EtokenSats uint64

	// MintBaton reserves a second token output for a GENESIS mint baton.
	MintBaton bool
}

// TokenInputSelection is the outcome of token input selection.
type TokenInputSelection struct {
	// Inputs lists token inputs first, then value inputs.
	Inputs      []*UTXO
	TokenInputs []*UTXO
	ValueInputs []*UTXO

	TotalValue uint64 // satoshis across every input
	Fee        uint64

	// RemainderValue is what is left after token outputs and fee.
	RemainderValue uint64

	TokenTotal      uint64
	RemainderTokens uint64

	// DustOutputs is the number of token-carrying outputs funded.
	DustOutputs int
}

// BuildTokenTxInput selects token UTXOs covering Amount (SEND and BURN)
// and plain UTXOs covering the token outputs plus fee.
func BuildTokenTxInput(p TokenInputParams) (*TokenInputSelection, error) {
	if len(p.UTXOs) == 0 {
		return nil, fmt.Errorf("%w: utxos are required", ErrInvalidTxInputParameter)
	}
	etokenSats := p.EtokenSats
	if etokenSats == 0 {
		etokenSats = DefaultEtokenSats
	}
	plain, tokens := SplitUTXOs(p.UTXOs)
	sel := &TokenInputSelection{DustOutputs: 1}
	feeOutputs := genesisFeeOutputs

	switch p.Op {
	case TokenGenesis:
		if p.MintBaton {
			sel.DustOutputs = 2
		}
	case TokenSend, TokenBurn:
		if p.TokenID == "" || p.Amount == 0 {
			return nil, fmt.Errorf("%w: %s needs a token id and amount", ErrInvalidTxInputParameter, p.Op)
		}
		feeOutputs = tokenFeeOutputs
		for _, u := range tokens {
			if u.Token.ID != p.TokenID {
				continue
			}
			sel.TokenInputs = append(sel.TokenInputs, u)
			sel.TokenTotal += u.Token.Amount
			sel.TotalValue += u.Value
			if sel.TokenTotal >= p.Amount {
				break
			}
		}
		if sel.TokenTotal < p.Amount {
			return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientTokens, p.Amount, sel.TokenTotal)
		}
		sel.RemainderTokens = sel.TokenTotal - p.Amount
		if p.Op == TokenSend && sel.RemainderTokens > 0 {
			sel.DustOutputs = 2
		}
	default:
		return nil, fmt.Errorf("%w: unknown token operation %d", ErrInvalidTxInputParameter, int(p.Op))
	}

	reserved := uint64(sel.DustOutputs) * etokenSats
	for _, u := range plain {
		sel.ValueInputs = append(sel.ValueInputs, u)
		sel.TotalValue += u.Value
		sel.Fee = FeeForBytes(ByteCount(len(sel.TokenInputs)+len(sel.ValueInputs), feeOutputs), p.FeeRate)
		if sel.TotalValue >= reserved+sel.Fee {
			sel.RemainderValue = sel.TotalValue - reserved - sel.Fee
			sel.Inputs = append(append([]*UTXO{}, sel.TokenInputs...), sel.ValueInputs...)
			return sel, nil
		}
	}

	fee := FeeForBytes(ByteCount(len(sel.TokenInputs)+max(len(plain), 1), feeOutputs), p.FeeRate)
	return nil, &InsufficientFundsError{Need: reserved + fee, Have: sel.TotalValue}
}
