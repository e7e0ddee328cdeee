// Package msgcrypt produces and opens the encrypted message payloads
// carried after the "etab" OP_RETURN prefix.
//
// Payload layout:
//
//	ephemeral pubkey (33B) || nonce (12B) || AES-256-GCM ciphertext || tag (16B)
//
// The AES key is HKDF-SHA256(ECDH(ephemeral, recipient).x, ephemeral pubkey,
// "cashtab-message-encryption"). Only the recipient's private key opens it.
package msgcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
)

const (
	// PubKeyLen is the length of a compressed public key.
	PubKeyLen = 33

	// NonceLen is the length of the AES-GCM nonce in bytes.
	NonceLen = 12

	// GCMTagLen is the length of the GCM authentication tag in bytes.
	GCMTagLen = 16

	// Overhead is what a payload adds to its plaintext.
	Overhead = PubKeyLen + NonceLen + GCMTagLen

	// MaxPayloadLen is the largest payload that still fits a standard
	// 223-byte OP_RETURN script next to the "etab" prefix.
	MaxPayloadLen = 215

	// MaxPlaintextLen is the longest message Encrypt accepts.
	MaxPlaintextLen = MaxPayloadLen - Overhead
)

// Encrypt seals plaintext for the holder of recipient's private key.
func Encrypt(plaintext []byte, recipient *ec.PublicKey) ([]byte, error) {
	ephemeral, err := ec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("msgcrypt: ephemeral key: %w", err)
	}
	return EncryptWithKey(plaintext, ephemeral, recipient)
}

// EncryptWithKey is Encrypt with a caller supplied ephemeral key. The
// ephemeral key must never be reused.
func EncryptWithKey(plaintext []byte, ephemeral *ec.PrivateKey, recipient *ec.PublicKey) ([]byte, error) {
	if recipient == nil {
		return nil, ErrNilPublicKey
	}
	if ephemeral == nil {
		return nil, ErrNilPrivateKey
	}
	if len(plaintext) > MaxPlaintextLen {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrMessageTooLong, len(plaintext), MaxPlaintextLen)
	}

	sharedX, err := ECDH(ephemeral, recipient)
	if err != nil {
		return nil, err
	}
	ephPub := ephemeral.PubKey().Compressed()
	aesKey, err := DeriveAESKey(sharedX, ephPub)
	if err != nil {
		return nil, err
	}
	sealed, err := aesGCMEncrypt(plaintext, aesKey)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(ephPub)+len(sealed))
	out = append(out, ephPub...)
	return append(out, sealed...), nil
}

// Decrypt opens a payload with the recipient's private key.
func Decrypt(payload []byte, recipient *ec.PrivateKey) ([]byte, error) {
	if recipient == nil {
		return nil, ErrNilPrivateKey
	}
	if len(payload) < Overhead {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidPayload, len(payload))
	}

	ephPub := payload[:PubKeyLen]
	ephemeral, err := ec.PublicKeyFromBytes(ephPub)
	if err != nil {
		return nil, fmt.Errorf("%w: ephemeral key: %w", ErrInvalidPayload, err)
	}

	sharedX, err := ECDH(recipient, ephemeral)
	if err != nil {
		return nil, err
	}
	aesKey, err := DeriveAESKey(sharedX, ephPub)
	if err != nil {
		return nil, err
	}
	return aesGCMDecrypt(payload[PubKeyLen:], aesKey)
}

// aesGCMEncrypt encrypts plaintext with AES-256-GCM.
// Returns nonce(12B) || ciphertext || tag(16B).
func aesGCMEncrypt(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("msgcrypt: AES cipher creation failed: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("msgcrypt: GCM creation failed: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("msgcrypt: random nonce generation failed: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// aesGCMDecrypt decrypts AES-256-GCM ciphertext.
// Input format: nonce(12B) || ciphertext || tag(16B).
func aesGCMDecrypt(ciphertext, key []byte) ([]byte, error) {
	if len(ciphertext) < NonceLen+GCMTagLen {
		return nil, ErrInvalidPayload
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: AES cipher creation failed: %v", ErrDecryptionFailed, err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: GCM creation failed: %v", ErrDecryptionFailed, err)
	}

	nonce := ciphertext[:gcm.NonceSize()]
	plaintext, err := gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	// Normalize nil to empty slice for consistency.
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}
