package opreturn

import (
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"github.com/bsv-blockchain/go-sdk/script"

	"github.com/cashtaborg/libcashtab-go/address"
)

// MessageParams describes a message payload.
type MessageParams struct {
	// Message is the plaintext message. It may be empty.
	Message []byte

	// Encrypted selects the encrypted prefix. EncryptedPayload is then
	// required and is pushed as a single segment in place of Message.
	Encrypted        bool
	EncryptedPayload []byte

	// Airdrop prepends the airdrop tag and AirdropTokenID (64 hex chars).
	Airdrop        bool
	AirdropTokenID string

	// MaxPushSize bounds each message segment. Zero means DefaultMaxPushSize.
	MaxPushSize int
}

// BuildMessageScript returns the raw OP_RETURN script for p.
func BuildMessageScript(p MessageParams) ([]byte, error) {
	if p.Encrypted && len(p.EncryptedPayload) == 0 {
		return nil, fmt.Errorf("%w: encrypted message without payload", ErrInvalidScriptInput)
	}
	if p.Airdrop && p.AirdropTokenID == "" {
		return nil, fmt.Errorf("%w: airdrop without token id", ErrInvalidScriptInput)
	}
	maxPush := p.MaxPushSize
	if maxPush <= 0 {
		maxPush = DefaultMaxPushSize
	}

	s := &script.Script{}
	*s = append(*s, OpReturn)

	if p.Airdrop {
		tokenID, err := decodeTokenID(p.AirdropTokenID)
		if err != nil {
			return nil, err
		}
		if err := appendPushes(s, AirdropPrefix, tokenID); err != nil {
			return nil, err
		}
	}

	if p.Encrypted {
		if err := appendPushes(s, EncryptedPrefix, p.EncryptedPayload); err != nil {
			return nil, err
		}
		return []byte(*s), nil
	}

	if err := appendPushes(s, CashtabPrefix); err != nil {
		return nil, err
	}
	if err := appendPushes(s, SplitMessage(p.Message, maxPush)...); err != nil {
		return nil, err
	}
	return []byte(*s), nil
}

// SplitMessage splits msg into consecutive chunks of at most size bytes.
// An empty message yields no chunks.
func SplitMessage(msg []byte, size int) [][]byte {
	if size <= 0 {
		size = DefaultMaxPushSize
	}
	var out [][]byte
	for len(msg) > 0 {
		n := min(size, len(msg))
		out = append(out, msg[:n])
		msg = msg[n:]
	}
	return out
}

// BuildAliasRegistrationScript encodes an alias registration:
//
//	OP_RETURN <.xec> OP_0 <name> <version byte || hash160>
//
// The version byte is 0x00 for P2PKH and 0x08 for P2SH addresses.
func BuildAliasRegistrationScript(name string, addr address.Address) ([]byte, error) {
	if name == "" || len(name) > MaxAliasLength || !utf8.ValidString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAliasName, name)
	}
	payload := make([]byte, 0, 1+address.HashLen)
	payload = append(payload, byte(addr.Type)<<3)
	payload = append(payload, addr.Hash[:]...)

	s := &script.Script{}
	*s = append(*s, OpReturn)
	if err := appendPushes(s, AliasPrefix); err != nil {
		return nil, err
	}
	*s = append(*s, script.Op0)
	if err := appendPushes(s, []byte(name), payload); err != nil {
		return nil, err
	}
	return []byte(*s), nil
}

func appendPushes(s *script.Script, pushes ...[]byte) error {
	for _, p := range pushes {
		if err := s.AppendPushData(p); err != nil {
			return fmt.Errorf("%w: push data: %w", ErrInvalidScriptInput, err)
		}
	}
	return nil
}

func decodeTokenID(tokenID string) ([]byte, error) {
	b, err := hex.DecodeString(tokenID)
	if err != nil || len(b) != TokenIDLen {
		return nil, fmt.Errorf("%w: token id must be %d bytes of hex", ErrInvalidScriptInput, TokenIDLen)
	}
	return b, nil
}
