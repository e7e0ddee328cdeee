package wallet

import (
	"bytes"
	"fmt"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"

	bip32 "github.com/bsv-blockchain/go-sdk/compat/bip32"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	chaincfg "github.com/bsv-blockchain/go-sdk/transaction/chaincfg"

	"github.com/cashtaborg/libcashtab-go/address"
	"github.com/cashtaborg/libcashtab-go/internal/log"
	"github.com/cashtaborg/libcashtab-go/tx"
)

const (
	// BIP44 path constants.
	PurposeBIP44 = 44
	Account      = 0

	// Coin types of the three Cashtab paths.
	CoinTypeXEC = 1899
	CoinTypeBCH = 145
	CoinTypeSLP = 245

	// Chain indices.
	ExternalChain = 0 // Receive addresses
	InternalChain = 1 // Change addresses

	// MaxIndex is the largest non-hardened BIP32 child index.
	MaxIndex = 1<<31 - 1

	// BIP32 hardened offset.
	Hardened = 0x80000000
)

// CashtabCoinTypes lists the coin types a Cashtab wallet derives, primary first.
var CashtabCoinTypes = []uint32{CoinTypeXEC, CoinTypeBCH, CoinTypeSLP}

var _ tx.KeyRing = (*Wallet)(nil)

// Wallet is a Cashtab HD wallet. It is immutable after construction and
// safe for concurrent use.
type Wallet struct {
	masterKey *bip32.ExtendedKey
	network   *NetworkConfig
	paths     []*KeyPair
}

// KeyPair holds a derived public/private key pair.
type KeyPair struct {
	PrivateKey *ec.PrivateKey `json:"-"`
	PublicKey  *ec.PublicKey  `json:"public_key"`
	Path       string         `json:"path"` // Human-readable derivation path
	Hash160    []byte         `json:"hash160"`
}

// Address encodes the key's hash in family f on network n.
func (kp *KeyPair) Address(f address.Family, n address.Network) string {
	a, err := address.FromHash160(f, n, address.P2PKH, kp.Hash160)
	if err != nil {
		return ""
	}
	return a.String()
}

// NewWallet creates a Wallet from a BIP39 seed and derives the Cashtab paths.
func NewWallet(seed []byte, network *NetworkConfig) (*Wallet, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}
	if network == nil {
		network = &MainNet
	}

	// Map our NetworkConfig to go-sdk chaincfg.Params for BIP32.
	var net *chaincfg.Params
	switch network.Name {
	case "mainnet":
		net = &chaincfg.MainNet
	default:
		net = &chaincfg.TestNet
	}

	masterKey, err := bip32.NewMaster(seed, net)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}

	w := &Wallet{
		masterKey: masterKey,
		network:   network,
	}
	for _, coin := range CashtabCoinTypes {
		kp, err := w.DeriveKey(coin, ExternalChain, 0)
		if err != nil {
			return nil, err
		}
		w.paths = append(w.paths, kp)
	}
	log.Wallet.Debug().Str("network", network.Name).Int("paths", len(w.paths)).Msg("wallet loaded")
	return w, nil
}

// FromMnemonic creates a Wallet from a BIP39 mnemonic with an empty passphrase.
func FromMnemonic(mnemonic string, network *NetworkConfig) (*Wallet, error) {
	seed, err := SeedFromMnemonic(mnemonic, "")
	if err != nil {
		return nil, err
	}
	return NewWallet(seed, network)
}

// Network returns the wallet's network configuration.
func (w *Wallet) Network() *NetworkConfig {
	return w.network
}

// deriveAccount derives the account-level key: m/44'/coin'/0'
func (w *Wallet) deriveAccount(coin uint32) (*bip32.ExtendedKey, error) {
	// m/44'
	purpose, err := w.masterKey.Child(PurposeBIP44 + Hardened)
	if err != nil {
		return nil, fmt.Errorf("%w: purpose derivation: %w", ErrDerivationFailed, err)
	}

	// m/44'/coin'
	coinType, err := purpose.Child(coin + Hardened)
	if err != nil {
		return nil, fmt.Errorf("%w: coin type derivation: %w", ErrDerivationFailed, err)
	}

	// m/44'/coin'/0'
	accountKey, err := coinType.Child(Account + Hardened)
	if err != nil {
		return nil, fmt.Errorf("%w: account derivation: %w", ErrDerivationFailed, err)
	}

	return accountKey, nil
}

// DeriveKey derives a key pair at m/44'/coin'/0'/chain/index.
//
//	chain: ExternalChain (0) for receive, InternalChain (1) for change
func (w *Wallet) DeriveKey(coin, chain, index uint32) (*KeyPair, error) {
	if coin > MaxIndex || chain > MaxIndex || index > MaxIndex {
		return nil, ErrIndexOutOfRange
	}
	accountKey, err := w.deriveAccount(coin)
	if err != nil {
		return nil, err
	}

	chainKey, err := accountKey.Child(chain)
	if err != nil {
		return nil, fmt.Errorf("%w: chain derivation: %w", ErrDerivationFailed, err)
	}

	childKey, err := chainKey.Child(index)
	if err != nil {
		return nil, fmt.Errorf("%w: index derivation: %w", ErrDerivationFailed, err)
	}

	return extKeyToKeyPair(childKey, fmt.Sprintf("m/44'/%d'/0'/%d/%d", coin, chain, index))
}

// Paths returns the key pairs of the Cashtab paths, primary first.
func (w *Wallet) Paths() []*KeyPair {
	return append([]*KeyPair(nil), w.paths...)
}

// Primary returns the m/44'/1899'/0'/0/0 key pair.
func (w *Wallet) Primary() *KeyPair {
	return w.paths[0]
}

// Addresses encodes every Cashtab path in family f, primary first.
func (w *Wallet) Addresses(f address.Family) []string {
	out := make([]string, 0, len(w.paths))
	for _, kp := range w.paths {
		out = append(out, kp.Address(f, w.network.AddressNetwork()))
	}
	return out
}

// PrivateKeyFor returns the key of the Cashtab path whose hash matches
// addr. Any address family matches.
func (w *Wallet) PrivateKeyFor(addr string) (*ec.PrivateKey, error) {
	h, err := address.ToHash160(addr)
	if err != nil {
		return nil, err
	}
	for _, kp := range w.paths {
		if bytes.Equal(kp.Hash160, h) {
			return kp.PrivateKey, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAddress, addr)
}

// extKeyToKeyPair converts a BIP32 extended key to a KeyPair.
func extKeyToKeyPair(extKey *bip32.ExtendedKey, path string) (*KeyPair, error) {
	privKey, err := extKey.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to extract EC private key: %w", ErrDerivationFailed, err)
	}

	pubKey := privKey.PubKey()
	if pubKey == nil {
		return nil, fmt.Errorf("%w: failed to derive public key", ErrDerivationFailed)
	}

	return &KeyPair{
		PrivateKey: privKey,
		PublicKey:  pubKey,
		Path:       path,
		Hash160:    bsvhash.Hash160(pubKey.Compressed()),
	}, nil
}
