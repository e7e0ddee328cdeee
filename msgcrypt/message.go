package msgcrypt

import (
	"bytes"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/cashtaborg/libcashtab-go/opreturn"
)

// SealMessage encrypts msg for recipient and returns the OP_RETURN
// parameters that carry it.
func SealMessage(msg []byte, recipient *ec.PublicKey) (opreturn.MessageParams, error) {
	payload, err := Encrypt(msg, recipient)
	if err != nil {
		return opreturn.MessageParams{}, err
	}
	return opreturn.MessageParams{Encrypted: true, EncryptedPayload: payload}, nil
}

// OpenMessage decrypts the encrypted message of a parsed OP_RETURN payload.
func OpenMessage(p *opreturn.Payload, recipient *ec.PrivateKey) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil payload", ErrInvalidPayload)
	}
	segs := p.Fields(opreturn.EncryptedMessage)
	if len(segs) == 0 {
		return nil, fmt.Errorf("%w: no encrypted message in %s payload", ErrInvalidPayload, p.Protocol)
	}
	return Decrypt(bytes.Join(segs, nil), recipient)
}
