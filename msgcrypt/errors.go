package msgcrypt

import "errors"

var (
	// ErrNilPrivateKey indicates a nil private key was provided.
	ErrNilPrivateKey = errors.New("msgcrypt: private key is nil")

	// ErrNilPublicKey indicates a nil public key was provided.
	ErrNilPublicKey = errors.New("msgcrypt: public key is nil")

	// ErrInvalidPayload indicates the payload is too short or its ephemeral key does not parse.
	ErrInvalidPayload = errors.New("msgcrypt: invalid payload")

	// ErrDecryptionFailed indicates AES-GCM authentication failed during decryption.
	ErrDecryptionFailed = errors.New("msgcrypt: decryption failed")

	// ErrMessageTooLong indicates the payload would not fit in a standard OP_RETURN output.
	ErrMessageTooLong = errors.New("msgcrypt: message too long")

	// ErrHKDFFailure indicates HKDF key derivation failed.
	ErrHKDFFailure = errors.New("msgcrypt: HKDF key derivation failed")
)
