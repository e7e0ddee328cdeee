package tx

import (
	"fmt"

	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction/template/p2pkh"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/cashtaborg/libcashtab-go/address"
)

// LockingScript returns the output script paying to addr. Any address
// family is accepted; only the hash and type matter on chain.
func LockingScript(addr string) ([]byte, error) {
	a, err := address.Decode(addr)
	if err != nil {
		return nil, err
	}
	return lockingScriptFor(a)
}

func lockingScriptFor(a address.Address) ([]byte, error) {
	if a.Type == address.P2SH {
		s := &script.Script{}
		*s = append(*s, script.OpHASH160)
		if err := s.AppendPushData(a.Hash160()); err != nil {
			return nil, fmt.Errorf("%w: P2SH push: %w", ErrScriptBuild, err)
		}
		*s = append(*s, script.OpEQUAL)
		return []byte(*s), nil
	}
	sdkAddr, err := script.NewAddressFromPublicKeyHash(a.Hash160(), true)
	if err != nil {
		return nil, fmt.Errorf("%w: address from hash: %w", ErrScriptBuild, err)
	}
	lock, err := p2pkh.Lock(sdkAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: P2PKH lock: %w", ErrScriptBuild, err)
	}
	return []byte(*lock), nil
}

// BuildP2PKHScript creates a P2PKH locking script for the given public key.
func BuildP2PKHScript(pubKey *ec.PublicKey) ([]byte, error) {
	if pubKey == nil {
		return nil, fmt.Errorf("%w: nil public key", ErrScriptBuild)
	}
	sdkAddr, err := script.NewAddressFromPublicKey(pubKey, true)
	if err != nil {
		return nil, fmt.Errorf("%w: address from pubkey: %w", ErrScriptBuild, err)
	}
	lock, err := p2pkh.Lock(sdkAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: P2PKH lock script: %w", ErrScriptBuild, err)
	}
	return []byte(*lock), nil
}

// PayTo builds an output of value satoshis to addr.
func PayTo(addr string, value uint64) (*Output, error) {
	lock, err := LockingScript(addr)
	if err != nil {
		return nil, err
	}
	return &Output{Address: addr, Value: value, Script: lock}, nil
}
