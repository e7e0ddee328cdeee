package tx

import (
	"fmt"

	"github.com/bsv-blockchain/go-sdk/transaction"
	"github.com/shopspring/decimal"

	"github.com/cashtaborg/libcashtab-go/internal/log"
	"github.com/cashtaborg/libcashtab-go/opreturn"
	"github.com/cashtaborg/libcashtab-go/slp"
	"github.com/cashtaborg/libcashtab-go/units"
)

// SendRequest describes a plain value send.
type SendRequest struct {
	UTXOs []*UTXO

	OneToMany bool

	// One-to-one: destination address and display amount.
	Destination string
	Amount      string

	// One-to-many: "<address>,<value>" rows.
	Destinations []string

	// Message is an optional OP_RETURN payload.
	Message *opreturn.MessageParams

	FeeRate   decimal.Decimal
	FloorSats uint64
	DustSats  uint64

	// ChangeAddress defaults to the owner of the first selected input.
	ChangeAddress string
}

// Result is a signed transaction with the choices made building it.
type Result struct {
	Hex     string
	TxID    string
	Fee     uint64
	Inputs  []*UTXO
	Outputs []*Output
}

// Send validates req, selects inputs, assembles outputs and signs.
func Send(req SendRequest, keys KeyRing) (*Result, error) {
	parser := SendValueParser{FloorSats: req.FloorSats}
	if _, err := parser.Parse(req.OneToMany, req.Amount, req.Destinations); err != nil {
		return nil, err
	}

	var (
		sendSats uint64
		dests    []Destination
	)
	if req.OneToMany {
		d, err := parser.ParseDestinations(req.Destinations)
		if err != nil {
			return nil, err
		}
		dests = d
		for _, d := range dests {
			sendSats += d.Sats
		}
	} else {
		sats, err := units.ParseSatoshis(req.Amount, units.CashDecimals)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSingleSendValue, err)
		}
		sendSats = uint64(sats)
	}

	var opReturn []byte
	if req.Message != nil {
		raw, err := opreturn.BuildMessageScript(*req.Message)
		if err != nil {
			return nil, err
		}
		opReturn = raw
	}

	sel, err := BuildTxInput(InputParams{
		OneToMany:    req.OneToMany,
		UTXOs:        req.UTXOs,
		Destinations: dests,
		SendSats:     sendSats,
		FeeRate:      req.FeeRate,
		OpReturnLen:  len(opReturn),
	})
	if err != nil {
		return nil, err
	}
	log.Tx.Debug().
		Int("inputs", len(sel.Inputs)).
		Uint64("total", sel.Total).
		Uint64("fee", sel.Fee).
		Msg("selected inputs")

	change := req.ChangeAddress
	if change == "" {
		if change, err = ChangeAddressFromInputs(sel.Inputs); err != nil {
			return nil, err
		}
	}

	outs, err := BuildTxOutput(OutputParams{
		OneToMany:     req.OneToMany,
		Destination:   req.Destination,
		SendSats:      sendSats,
		Destinations:  dests,
		TotalInput:    sel.Total,
		Fee:           sel.Fee,
		ChangeAddress: change,
		DustSats:      req.DustSats,
		OpReturn:      opReturn,
	})
	if err != nil {
		return nil, err
	}
	return sign(sel.Inputs, outs, sel.Total, keys)
}

// TokenRequest describes a token GENESIS, SEND or BURN.
type TokenRequest struct {
	Op    TokenOp
	UTXOs []*UTXO

	// Genesis is required for TokenGenesis.
	Genesis *slp.GenesisConfig

	// TokenID and the display Amount are required for SEND and BURN.
	// Decimals is used when no UTXO of the token reports its own.
	TokenID  string
	Amount   decimal.Decimal
	Decimals int

	Recipient string

	// Origin defaults to the owner of the first plain UTXO.
	Origin string

	FeeRate    decimal.Decimal
	EtokenSats uint64
	DustSats   uint64
}

// SendToken builds and signs a token transaction.
func SendToken(req TokenRequest, keys KeyRing) (*Result, error) {
	var amount uint64
	if req.Op == TokenSend || req.Op == TokenBurn {
		decimals := req.Decimals
		_, tokens := SplitUTXOs(req.UTXOs)
		for _, u := range tokens {
			if u.Token.ID == req.TokenID {
				decimals = u.Token.Decimals
				break
			}
		}
		q, err := slp.ToBaseUnits(req.Amount, decimals)
		if err != nil {
			if req.Op == TokenBurn {
				return nil, fmt.Errorf("%w: %w", slp.ErrInvalidBurnParameter, err)
			}
			return nil, fmt.Errorf("%w: %w", slp.ErrInvalidSendParameter, err)
		}
		amount = q
	}

	sel, err := BuildTokenTxInput(TokenInputParams{
		Op:         req.Op,
		UTXOs:      req.UTXOs,
		TokenID:    req.TokenID,
		Amount:     amount,
		FeeRate:    req.FeeRate,
		EtokenSats: req.EtokenSats,
		MintBaton:  req.Op == TokenGenesis && req.Genesis != nil && req.Genesis.MintBatonVout > 0,
	})
	if err != nil {
		return nil, err
	}
	log.Tx.Debug().
		Stringer("op", req.Op).
		Int("tokenInputs", len(sel.TokenInputs)).
		Int("valueInputs", len(sel.ValueInputs)).
		Uint64("fee", sel.Fee).
		Msg("selected token inputs")

	origin := req.Origin
	if origin == "" {
		if origin, err = ChangeAddressFromInputs(sel.ValueInputs); err != nil {
			return nil, err
		}
	}

	outs, err := BuildTokenTxOutput(TokenOutputParams{
		Op:         req.Op,
		Selection:  sel,
		Genesis:    req.Genesis,
		TokenID:    req.TokenID,
		Amount:     amount,
		Recipient:  req.Recipient,
		Origin:     origin,
		EtokenSats: req.EtokenSats,
		DustSats:   req.DustSats,
	})
	if err != nil {
		return nil, err
	}
	return sign(sel.Inputs, outs, sel.TotalValue, keys)
}

func sign(inputs []*UTXO, outs []*Output, total uint64, keys KeyRing) (*Result, error) {
	b := NewBuilder().WithInputs(inputs...).WithOutputs(outs...)
	hexTx, err := SignAndBuild(inputs, b, keys)
	if err != nil {
		return nil, err
	}
	parsed, err := transaction.NewTransactionFromHex(hexTx)
	if err != nil {
		return nil, fmt.Errorf("%w: reparse: %w", ErrSigningFailed, err)
	}
	res := &Result{
		Hex:     hexTx,
		TxID:    parsed.TxID().String(),
		Fee:     total - b.OutputTotal(),
		Inputs:  inputs,
		Outputs: outs,
	}
	log.Tx.Debug().Str("txid", res.TxID).Uint64("fee", res.Fee).Msg("signed transaction")
	return res, nil
}
