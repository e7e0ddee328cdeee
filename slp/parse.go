package slp

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/cashtaborg/libcashtab-go/opreturn"
)

// Genesis holds the metadata of a GENESIS payload.
type Genesis struct {
	Ticker        string
	Name          string
	DocumentURL   string
	DocumentHash  []byte
	Decimals      int
	MintBatonVout uint8
}

// Message is a decoded token payload.
type Message struct {
	TokenType   byte
	Transaction string

	// TokenID is empty for GENESIS, where the id is the txid itself.
	TokenID string

	// Quantities assigned to outputs 1..n. GENESIS and MINT carry one.
	Quantities []uint64

	Genesis *Genesis
}

// Parse decodes a raw token OP_RETURN script.
func Parse(raw []byte) (*Message, error) {
	p, err := opreturn.ParseScript(raw)
	if err != nil {
		return nil, err
	}
	if p.Protocol != opreturn.Token {
		return nil, ErrNotTokenScript
	}
	f := p.Fields(opreturn.TokenField)
	if len(f) < 2 {
		return nil, fmt.Errorf("%w: %d fields", ErrMalformedTokenScript, len(f))
	}
	if len(f[0]) != 1 || f[0][0] != TokenType1 {
		return nil, fmt.Errorf("%w: unsupported token type %x", ErrMalformedTokenScript, f[0])
	}
	m := &Message{TokenType: f[0][0], Transaction: string(f[1])}

	switch m.Transaction {
	case TxGenesis:
		err = parseGenesis(m, f[2:])
	case TxSend:
		err = parseSend(m, f[2:])
	case TxMint:
		err = parseMint(m, f[2:])
	default:
		err = fmt.Errorf("%w: unknown transaction type %q", ErrMalformedTokenScript, m.Transaction)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func parseGenesis(m *Message, f [][]byte) error {
	if len(f) != 7 {
		return fmt.Errorf("%w: GENESIS has %d fields", ErrMalformedTokenScript, len(f))
	}
	if len(f[3]) != 0 && len(f[3]) != DocumentHashLen {
		return fmt.Errorf("%w: document hash length %d", ErrMalformedTokenScript, len(f[3]))
	}
	if len(f[4]) != 1 || f[4][0] > MaxDecimals {
		return fmt.Errorf("%w: bad decimals", ErrMalformedTokenScript)
	}
	if len(f[5]) > 1 || len(f[6]) != 8 {
		return fmt.Errorf("%w: bad baton or quantity", ErrMalformedTokenScript)
	}
	g := &Genesis{
		Ticker:       string(f[0]),
		Name:         string(f[1]),
		DocumentURL:  string(f[2]),
		DocumentHash: f[3],
		Decimals:     int(f[4][0]),
	}
	if len(f[5]) == 1 {
		g.MintBatonVout = f[5][0]
	}
	m.Genesis = g
	m.Quantities = []uint64{binary.BigEndian.Uint64(f[6])}
	return nil
}

func parseSend(m *Message, f [][]byte) error {
	if len(f) < 2 || len(f)-1 > MaxSendOutputs {
		return fmt.Errorf("%w: SEND has %d fields", ErrMalformedTokenScript, len(f))
	}
	if len(f[0]) != opreturn.TokenIDLen {
		return fmt.Errorf("%w: token id length %d", ErrMalformedTokenScript, len(f[0]))
	}
	m.TokenID = hex.EncodeToString(f[0])
	for _, q := range f[1:] {
		if len(q) != 8 {
			return fmt.Errorf("%w: quantity length %d", ErrMalformedTokenScript, len(q))
		}
		m.Quantities = append(m.Quantities, binary.BigEndian.Uint64(q))
	}
	return nil
}

func parseMint(m *Message, f [][]byte) error {
	if len(f) != 3 || len(f[0]) != opreturn.TokenIDLen || len(f[1]) > 1 || len(f[2]) != 8 {
		return fmt.Errorf("%w: bad MINT fields", ErrMalformedTokenScript)
	}
	m.TokenID = hex.EncodeToString(f[0])
	m.Quantities = []uint64{binary.BigEndian.Uint64(f[2])}
	return nil
}
