package tx

import (
	"bytes"
	"encoding/hex"
	"fmt"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"github.com/bsv-blockchain/go-sdk/script"
	sighash "github.com/bsv-blockchain/go-sdk/transaction/sighash"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/cashtaborg/libcashtab-go/address"
)

// KeyRing supplies the private key that controls an address.
type KeyRing interface {
	PrivateKeyFor(addr string) (*ec.PrivateKey, error)
}

// StaticKeyRing is a KeyRing over a fixed set of keys, indexed by the
// hex hash160 of their compressed public key.
type StaticKeyRing map[string]*ec.PrivateKey

// NewStaticKeyRing indexes keys by their public key hash.
func NewStaticKeyRing(keys ...*ec.PrivateKey) StaticKeyRing {
	kr := make(StaticKeyRing, len(keys))
	for _, k := range keys {
		if k == nil {
			continue
		}
		kr[hex.EncodeToString(bsvhash.Hash160(k.PubKey().Compressed()))] = k
	}
	return kr
}

// PrivateKeyFor returns the key whose hash matches addr, in any family.
func (kr StaticKeyRing) PrivateKeyFor(addr string) (*ec.PrivateKey, error) {
	h, err := address.ToHash160(addr)
	if err != nil {
		return nil, err
	}
	k, ok := kr[hex.EncodeToString(h)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, addr)
	}
	return k, nil
}

// SignAndBuild signs every input of b with the key keys holds for the
// matching UTXO's address and returns the serialized transaction hex.
//
// When b has no inputs, utxos become its inputs. Otherwise utxos must
// name the same outpoints as b's inputs, in order.
func SignAndBuild(utxos []*UTXO, b Builder, keys KeyRing) (string, error) {
	if len(utxos) == 0 {
		return "", fmt.Errorf("%w: no utxos", ErrInvalidBuildTxParameter)
	}
	if keys == nil {
		return "", fmt.Errorf("%w: no key ring", ErrInvalidBuildTxParameter)
	}
	if len(b.inputs) == 0 {
		b = b.WithInputs(utxos...)
	}
	if len(b.inputs) != len(utxos) {
		return "", fmt.Errorf("%w: have %d utxos but tx has %d inputs",
			ErrInvalidBuildTxParameter, len(utxos), len(b.inputs))
	}
	for i, u := range utxos {
		in := b.inputs[i]
		if u == nil || in == nil || u.TxID != in.TxID || u.Vout != in.Vout {
			return "", fmt.Errorf("%w: utxo %d does not match input", ErrInvalidBuildTxParameter, i)
		}
	}

	sdkTx, err := b.Unsigned()
	if err != nil {
		return "", err
	}

	for i, u := range utxos {
		priv, err := keys.PrivateKeyFor(u.Address)
		if err != nil {
			return "", fmt.Errorf("%w: input %d: %w", ErrSigningFailed, i, err)
		}
		pub := priv.PubKey().Compressed()
		want, err := address.ToHash160(u.Address)
		if err != nil {
			return "", fmt.Errorf("%w: input %d: %w", ErrSigningFailed, i, err)
		}
		if !bytes.Equal(bsvhash.Hash160(pub), want) {
			return "", fmt.Errorf("%w: input %d: key does not control %s", ErrSigningFailed, i, u.Address)
		}

		sigHash, err := sdkTx.CalcInputSignatureHash(uint32(i), sighash.AllForkID)
		if err != nil {
			return "", fmt.Errorf("%w: input %d sighash: %w", ErrSigningFailed, i, err)
		}
		sig, err := priv.Sign(sigHash)
		if err != nil {
			return "", fmt.Errorf("%w: input %d: %w", ErrSigningFailed, i, err)
		}

		unlock := &script.Script{}
		if err := unlock.AppendPushData(append(sig.Serialize(), byte(sighash.AllForkID))); err != nil {
			return "", fmt.Errorf("%w: push sig: %w", ErrSigningFailed, err)
		}
		if err := unlock.AppendPushData(pub); err != nil {
			return "", fmt.Errorf("%w: push pubkey: %w", ErrSigningFailed, err)
		}
		sdkTx.Inputs[i].UnlockingScript = unlock
	}

	return sdkTx.Hex(), nil
}
