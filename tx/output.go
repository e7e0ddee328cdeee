package tx

import (
	"fmt"

	"github.com/cashtaborg/libcashtab-go/slp"
)

// DefaultDustSats is the smallest change output worth creating. Smaller
// remainders are left to the miner.
const DefaultDustSats = uint64(550)

// OutputParams describes the outputs of a plain value send.
type OutputParams struct {
	OneToMany bool

	// One-to-one.
	Destination string
	SendSats    uint64

	// One-to-many.
	Destinations []Destination

	TotalInput    uint64
	Fee           uint64
	ChangeAddress string

	// DustSats is the change threshold, 0 for DefaultDustSats.
	DustSats uint64

	// OpReturn is an optional OP_RETURN script placed first.
	OpReturn []byte
}

// BuildTxOutput assembles the outputs of a plain value send: the optional
// OP_RETURN, one output per destination in order, then change.
func BuildTxOutput(p OutputParams) ([]*Output, error) {
	var outs []*Output
	if len(p.OpReturn) > 0 {
		outs = append(outs, OpReturnOutput(p.OpReturn))
	}

	var send uint64
	switch {
	case !p.OneToMany:
		if p.SendSats == 0 || p.Destination == "" {
			return nil, fmt.Errorf("%w: one-to-one send needs a destination and value", ErrInvalidTxInputParameter)
		}
		out, err := PayTo(p.Destination, p.SendSats)
		if err != nil {
			return nil, err
		}
		outs = append(outs, out)
		send = p.SendSats
	default:
		if len(p.Destinations) == 0 {
			return nil, fmt.Errorf("%w: one-to-many send needs destinations", ErrInvalidTxInputParameter)
		}
		for i, d := range p.Destinations {
			if d.Sats == 0 {
				return nil, fmt.Errorf("%w: destination %d has no value", ErrInvalidTxInputParameter, i)
			}
			out, err := PayTo(d.Address, d.Sats)
			if err != nil {
				return nil, err
			}
			outs = append(outs, out)
			send += d.Sats
		}
	}

	if p.TotalInput < send+p.Fee {
		return nil, &InsufficientFundsError{Need: send + p.Fee, Have: p.TotalInput}
	}
	change, err := changeOutput(p.TotalInput-send-p.Fee, p.DustSats, p.ChangeAddress)
	if err != nil {
		return nil, err
	}
	if change != nil {
		outs = append(outs, change)
	}
	return outs, nil
}

func changeOutput(remainder, dust uint64, changeAddr string) (*Output, error) {
	if dust == 0 {
		dust = DefaultDustSats
	}
	if remainder < dust {
		return nil, nil
	}
	if changeAddr == "" {
		return nil, fmt.Errorf("%w: change of %d sat without a change address", ErrInvalidTxInputParameter, remainder)
	}
	return PayTo(changeAddr, remainder)
}

// TokenOutputParams describes the outputs of a token transaction.
type TokenOutputParams struct {
	Op        TokenOp
	Selection *TokenInputSelection

	// Genesis is required for TokenGenesis.
	Genesis *slp.GenesisConfig

	// TokenID and Amount (base units) are required for SEND and BURN.
	TokenID string
	Amount  uint64

	// Recipient receives a SEND. Origin receives minted tokens, token
	// change, burn remainders and value change.
	Recipient string
	Origin    string

	EtokenSats uint64
	DustSats   uint64
}

// BuildTokenTxOutput assembles the outputs of a token transaction:
//
//	0: OP_RETURN token payload
//	1: token output (minter, recipient, or origin for BURN)
//	2: token change to origin (SEND with change) or mint baton (GENESIS)
//	n: value change to origin
func BuildTokenTxOutput(p TokenOutputParams) ([]*Output, error) {
	if p.Selection == nil || p.Origin == "" {
		return nil, fmt.Errorf("%w: token outputs need a selection and origin", ErrInvalidTxInputParameter)
	}
	etokenSats := p.EtokenSats
	if etokenSats == 0 {
		etokenSats = DefaultEtokenSats
	}

	var (
		payload []byte
		to      = p.Origin
		second  bool
	)
	switch p.Op {
	case TokenGenesis:
		raw, err := slp.BuildGenesisScript(p.Genesis)
		if err != nil {
			return nil, err
		}
		payload = raw
		second = p.Genesis.MintBatonVout > 0
	case TokenSend:
		if p.Recipient == "" {
			return nil, fmt.Errorf("%w: send without recipient", slp.ErrInvalidSendParameter)
		}
		plan, err := slp.BuildSendScript(p.TokenID, tokenAmounts(p.Selection.TokenInputs), p.Amount)
		if err != nil {
			return nil, err
		}
		payload = plan.Script
		to = p.Recipient
		second = plan.TokenChange > 0
	case TokenBurn:
		plan, err := slp.BuildBurnScript(p.TokenID, tokenAmounts(p.Selection.TokenInputs), p.Amount)
		if err != nil {
			return nil, err
		}
		payload = plan.Script
	default:
		return nil, fmt.Errorf("%w: unknown token operation %d", ErrInvalidTxInputParameter, int(p.Op))
	}

	dustOutputs := 1
	if second {
		dustOutputs = 2
	}
	if dustOutputs > p.Selection.DustOutputs {
		return nil, fmt.Errorf("%w: selection funds %d token outputs, need %d",
			ErrInvalidTxInputParameter, p.Selection.DustOutputs, dustOutputs)
	}

	outs := []*Output{OpReturnOutput(payload)}
	first, err := PayTo(to, etokenSats)
	if err != nil {
		return nil, err
	}
	outs = append(outs, first)
	if second {
		out, err := PayTo(p.Origin, etokenSats)
		if err != nil {
			return nil, err
		}
		outs = append(outs, out)
	}

	change, err := changeOutput(p.Selection.RemainderValue, p.DustSats, p.Origin)
	if err != nil {
		return nil, err
	}
	if change != nil {
		outs = append(outs, change)
	}
	return outs, nil
}

func tokenAmounts(utxos []*UTXO) []uint64 {
	out := make([]uint64, 0, len(utxos))
	for _, u := range utxos {
		if u.Token != nil {
			out = append(out, u.Token.Amount)
		}
	}
	return out
}
