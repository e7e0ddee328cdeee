// Package slp encodes and decodes SLP token type 1 OP_RETURN payloads.
//
// GENESIS:
//
//	OP_RETURN <SLP\x00> <0x01> <GENESIS> <ticker> <name> <document url>
//	          <document hash 0|32> <decimals 1> <mint baton vout 0|1> <qty 8>
//
// SEND:
//
//	OP_RETURN <SLP\x00> <0x01> <SEND> <token id 32> <qty 8>{1,19}
//
// Empty fields are encoded as PUSHDATA1 with a zero length (0x4c00).
// Quantities are base units, big-endian.
package slp

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/shopspring/decimal"

	"github.com/cashtaborg/libcashtab-go/opreturn"
)

const (
	// TokenType1 is the only supported token type.
	TokenType1 = byte(0x01)

	// MaxDecimals is the largest decimals value a GENESIS may declare.
	MaxDecimals = 9

	// MaxSendOutputs is the largest number of quantities in a SEND.
	MaxSendOutputs = 19

	// DocumentHashLen is the length of a non-empty document hash.
	DocumentHashLen = 32

	// BatonVout is where a GENESIS built here places its mint baton,
	// right after the minted token output.
	BatonVout = uint8(2)

	TxGenesis = "GENESIS"
	TxSend    = "SEND"
	TxMint    = "MINT"
)

// GenesisConfig describes a new token.
type GenesisConfig struct {
	Name        string
	Ticker      string
	DocumentURL string

	// DocumentHash is empty or 32 bytes.
	DocumentHash []byte

	Decimals int

	// InitialQty is the display quantity minted to output 1.
	InitialQty decimal.Decimal

	// MintBatonVout is the output index of the mint baton: 0 for none,
	// otherwise BatonVout.
	MintBatonVout uint8
}

// SendPlan is the result of building a SEND or BURN payload.
type SendPlan struct {
	Script []byte

	// Quantities lists the token amount assigned to outputs 1..n.
	Quantities []uint64

	// TokenChange is what returns to the sender, 0 when nothing does.
	TokenChange uint64
}

// ToBaseUnits converts a display quantity to base units. It fails when
// the quantity is not positive, carries more precision than decimals, or
// does not fit in 64 bits.
func ToBaseUnits(display decimal.Decimal, decimals int) (uint64, error) {
	if !display.IsPositive() {
		return 0, fmt.Errorf("slp: quantity must be positive, got %s", display)
	}
	base := display.Shift(int32(decimals))
	if !base.Equal(base.Truncate(0)) {
		return 0, fmt.Errorf("slp: quantity %s has more than %d decimal places", display, decimals)
	}
	if base.GreaterThan(decimal.NewFromUint64(math.MaxUint64)) {
		return 0, fmt.Errorf("slp: quantity %s overflows", display)
	}
	return base.BigInt().Uint64(), nil
}

// FromBaseUnits converts base units to a display quantity.
func FromBaseUnits(base uint64, decimals int) decimal.Decimal {
	return decimal.NewFromUint64(base).Shift(-int32(decimals))
}

// BuildGenesisScript encodes a GENESIS payload for cfg.
func BuildGenesisScript(cfg *GenesisConfig) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidTokenConfig)
	}
	if strings.TrimSpace(cfg.Name) == "" || strings.TrimSpace(cfg.Ticker) == "" {
		return nil, fmt.Errorf("%w: name and ticker are required", ErrInvalidTokenConfig)
	}
	if cfg.Decimals < 0 || cfg.Decimals > MaxDecimals {
		return nil, fmt.Errorf("%w: decimals must be 0..%d", ErrInvalidTokenConfig, MaxDecimals)
	}
	if len(cfg.DocumentHash) != 0 && len(cfg.DocumentHash) != DocumentHashLen {
		return nil, fmt.Errorf("%w: document hash must be 0 or %d bytes", ErrInvalidTokenConfig, DocumentHashLen)
	}
	if cfg.MintBatonVout != 0 && cfg.MintBatonVout != BatonVout {
		return nil, fmt.Errorf("%w: mint baton vout must be 0 or %d, got %d", ErrInvalidTokenConfig, BatonVout, cfg.MintBatonVout)
	}
	qty, err := ToBaseUnits(cfg.InitialQty, cfg.Decimals)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTokenConfig, err)
	}

	var baton []byte
	if cfg.MintBatonVout > 0 {
		baton = []byte{cfg.MintBatonVout}
	}
	return encode(
		[]byte{TokenType1},
		[]byte(TxGenesis),
		[]byte(cfg.Ticker),
		[]byte(cfg.Name),
		[]byte(cfg.DocumentURL),
		cfg.DocumentHash,
		[]byte{byte(cfg.Decimals)},
		baton,
		quantity(qty),
	)
}

// BuildSendScript encodes a SEND of sendQty out of the token inputs.
// Output 1 receives sendQty; output 2 receives any token change.
func BuildSendScript(tokenID string, inputs []uint64, sendQty uint64) (*SendPlan, error) {
	id, err := decodeTokenID(tokenID)
	if err != nil || len(inputs) == 0 || sendQty == 0 {
		return nil, fmt.Errorf("%w: token id, inputs and quantity are required", ErrInvalidSendParameter)
	}
	total, err := sum(inputs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSendParameter, err)
	}
	if total < sendQty {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientTokens, sendQty, total)
	}

	qtys := []uint64{sendQty}
	change := total - sendQty
	if change > 0 {
		qtys = append(qtys, change)
	}
	s, err := EncodeSend(id, qtys)
	if err != nil {
		return nil, err
	}
	return &SendPlan{Script: s, Quantities: qtys, TokenChange: change}, nil
}

// BuildBurnScript encodes a BURN of burnQty: a SEND that assigns the
// remaining balance to output 1 and leaves burnQty unassigned.
func BuildBurnScript(tokenID string, inputs []uint64, burnQty uint64) (*SendPlan, error) {
	id, err := decodeTokenID(tokenID)
	if err != nil || len(inputs) == 0 || burnQty == 0 {
		return nil, fmt.Errorf("%w: token id, inputs and quantity are required", ErrInvalidBurnParameter)
	}
	total, err := sum(inputs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBurnParameter, err)
	}
	if total < burnQty {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientTokens, burnQty, total)
	}

	remaining := total - burnQty
	s, err := EncodeSend(id, []uint64{remaining})
	if err != nil {
		return nil, err
	}
	return &SendPlan{Script: s, Quantities: []uint64{remaining}, TokenChange: remaining}, nil
}

// EncodeSend encodes a SEND payload assigning qtys to outputs 1..len(qtys).
func EncodeSend(tokenID []byte, qtys []uint64) ([]byte, error) {
	if len(tokenID) != opreturn.TokenIDLen {
		return nil, fmt.Errorf("%w: token id must be %d bytes", ErrInvalidSendParameter, opreturn.TokenIDLen)
	}
	if len(qtys) == 0 || len(qtys) > MaxSendOutputs {
		return nil, fmt.Errorf("%w: %d quantities, limit %d", ErrTooManyOutputs, len(qtys), MaxSendOutputs)
	}
	fields := [][]byte{{TokenType1}, []byte(TxSend), tokenID}
	for _, q := range qtys {
		fields = append(fields, quantity(q))
	}
	return encode(fields...)
}

func encode(fields ...[]byte) ([]byte, error) {
	s := &script.Script{}
	*s = append(*s, opreturn.OpReturn)
	if err := s.AppendPushData(opreturn.TokenPrefix); err != nil {
		return nil, fmt.Errorf("slp: push prefix: %w", err)
	}
	for _, f := range fields {
		if len(f) == 0 {
			*s = append(*s, script.OpPUSHDATA1, 0x00)
			continue
		}
		if err := s.AppendPushData(f); err != nil {
			return nil, fmt.Errorf("slp: push field: %w", err)
		}
	}
	return []byte(*s), nil
}

func quantity(q uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, q)
	return b
}

func sum(qs []uint64) (uint64, error) {
	var total uint64
	for _, q := range qs {
		if total+q < total {
			return 0, fmt.Errorf("slp: token input sum overflows")
		}
		total += q
	}
	return total, nil
}

func decodeTokenID(tokenID string) ([]byte, error) {
	b, err := hex.DecodeString(tokenID)
	if err != nil {
		return nil, err
	}
	if len(b) != opreturn.TokenIDLen {
		return nil, fmt.Errorf("slp: token id must be %d bytes", opreturn.TokenIDLen)
	}
	return b, nil
}
