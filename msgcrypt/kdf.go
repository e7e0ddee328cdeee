package msgcrypt

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// HKDFInfo is the constant info string used in HKDF-SHA256 key derivation.
	HKDFInfo = "cashtab-message-encryption"

	// AESKeyLen is the length of the derived AES-256 key in bytes.
	AESKeyLen = 32
)

// DeriveAESKey derives a 32-byte AES-256 key using HKDF-SHA256.
//
//   - IKM  = sharedSecretX
//   - Salt = ephemeralPub, the 33-byte compressed sender key
//   - Info = "cashtab-message-encryption"
//
// A fresh ephemeral key per message gives a fresh AES key per message.
func DeriveAESKey(sharedSecretX, ephemeralPub []byte) ([]byte, error) {
	if len(sharedSecretX) == 0 {
		return nil, fmt.Errorf("%w: shared secret is empty", ErrHKDFFailure)
	}
	if len(ephemeralPub) != PubKeyLen {
		return nil, fmt.Errorf("%w: ephemeral key must be %d bytes, got %d", ErrHKDFFailure, PubKeyLen, len(ephemeralPub))
	}

	r := hkdf.New(sha256.New, sharedSecretX, ephemeralPub, []byte(HKDFInfo))
	key := make([]byte, AESKeyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHKDFFailure, err)
	}
	return key, nil
}
