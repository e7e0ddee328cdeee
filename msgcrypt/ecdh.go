package msgcrypt

import (
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
)

// SharedXLen is the size of the serialized shared x-coordinate.
const SharedXLen = 32

// ECDH multiplies publicKey by the scalar of privateKey and returns the
// x-coordinate of the product, big-endian and left-padded to SharedXLen.
// Both parties of a message derive the same value.
func ECDH(privateKey *ec.PrivateKey, publicKey *ec.PublicKey) ([]byte, error) {
	switch {
	case privateKey == nil:
		return nil, ErrNilPrivateKey
	case publicKey == nil:
		return nil, ErrNilPublicKey
	}

	point, err := privateKey.DeriveSharedSecret(publicKey)
	if err != nil {
		return nil, fmt.Errorf("msgcrypt: shared secret: %w", err)
	}
	if point.X.BitLen() > SharedXLen*8 {
		return nil, fmt.Errorf("msgcrypt: shared secret: x-coordinate exceeds %d bytes", SharedXLen)
	}
	x := make([]byte, SharedXLen)
	point.X.FillBytes(x)
	return x, nil
}
