// Package address decodes, encodes and converts eCash addresses.
//
// Four cash address families are supported (ecash, etoken, bitcoincash,
// simpleledger) together with base58check legacy addresses, which decode
// into the LegacyCash family with the Legacy flag set. Every supported
// address carries a 160-bit hash.
package address

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// HashLen is the length of the hash carried by an address.
const HashLen = 20

// Base58 version bytes.
const (
	base58P2PKHMain = 0x00
	base58P2SHMain  = 0x05
	base58P2PKHTest = 0x6f
	base58P2SHTest  = 0xc4
)

// Address is a decoded address.
type Address struct {
	Family  Family
	Network Network
	Type    Type
	Hash    [HashLen]byte

	// Legacy is set for base58check addresses.
	Legacy bool
}

// FromHash160 builds an address of the given family from a 20-byte hash.
func FromHash160(family Family, net Network, typ Type, hash []byte) (Address, error) {
	if len(hash) != HashLen {
		return Address{}, invalid("", fmt.Sprintf("hash must be %d bytes, got %d", HashLen, len(hash)))
	}
	if _, ok := prefixes[family]; !ok {
		return Address{}, invalid("", fmt.Sprintf("unknown address family %d", int(family)))
	}
	if typ != P2PKH && typ != P2SH {
		return Address{}, invalid("", fmt.Sprintf("unknown address type %d", byte(typ)))
	}
	a := Address{Family: family, Network: net, Type: typ}
	copy(a.Hash[:], hash)
	return a, nil
}

// Decode parses any supported address. Cash addresses may omit their
// prefix, in which case the prefix whose checksum validates is used.
func Decode(s string) (Address, error) {
	if s == "" {
		return Address{}, invalid(s, "Invalid address")
	}
	if a, ok := decodeCash(s); ok {
		return a, nil
	}
	if !strings.Contains(s, ":") {
		if a, ok := decodeBase58(s); ok {
			return a, nil
		}
	}
	return Address{}, invalid(s, "Invalid address")
}

func decodeCash(s string) (Address, bool) {
	lower := strings.ToLower(s)
	if lower != s && strings.ToUpper(s) != s {
		// Mixed case is never valid.
		return Address{}, false
	}

	if idx := strings.LastIndexByte(lower, ':'); idx >= 0 {
		family, net, ok := lookupPrefix(lower[:idx])
		if !ok {
			return Address{}, false
		}
		return decodeWithPrefix(lower[:idx], lower[idx+1:], family, net)
	}

	for _, f := range families {
		for _, net := range []Network{MainNet, TestNet} {
			if a, ok := decodeWithPrefix(f.Prefix(net), lower, f, net); ok {
				return a, true
			}
		}
	}
	return Address{}, false
}

func decodeWithPrefix(prefix, payload string, family Family, net Network) (Address, bool) {
	version, hash, ok := decodeCashAddr(prefix, payload)
	if !ok {
		return Address{}, false
	}
	// Bit 7 is reserved and the size bits must select 160 bits.
	if version&0x80 != 0 || version&0x07 != 0 || len(hash) != HashLen {
		return Address{}, false
	}
	typ := Type(version >> 3)
	if typ != P2PKH && typ != P2SH {
		return Address{}, false
	}
	a := Address{Family: family, Network: net, Type: typ}
	copy(a.Hash[:], hash)
	return a, true
}

func decodeBase58(s string) (Address, bool) {
	payload, version, err := base58.CheckDecode(s)
	if err != nil || len(payload) != HashLen {
		return Address{}, false
	}
	a := Address{Family: LegacyCash, Legacy: true}
	switch version {
	case base58P2PKHMain:
		a.Network, a.Type = MainNet, P2PKH
	case base58P2SHMain:
		a.Network, a.Type = MainNet, P2SH
	case base58P2PKHTest:
		a.Network, a.Type = TestNet, P2PKH
	case base58P2SHTest:
		a.Network, a.Type = TestNet, P2SH
	default:
		return Address{}, false
	}
	copy(a.Hash[:], payload)
	return a, true
}

// String encodes the address in its own format: base58check when Legacy
// is set, otherwise a prefixed cash address.
func (a Address) String() string {
	if a.Legacy {
		return base58.CheckEncode(a.Hash[:], a.base58Version())
	}
	s, err := encodeCashAddr(a.Family.Prefix(a.Network), byte(a.Type)<<3, a.Hash[:])
	if err != nil {
		return ""
	}
	return s
}

func (a Address) base58Version() byte {
	switch {
	case a.Network == TestNet && a.Type == P2SH:
		return base58P2SHTest
	case a.Network == TestNet:
		return base58P2PKHTest
	case a.Type == P2SH:
		return base58P2SHMain
	default:
		return base58P2PKHMain
	}
}

// WithFamily returns a copy of a re-tagged as a cash address of family f.
func (a Address) WithFamily(f Family) Address {
	a.Family = f
	a.Legacy = false
	return a
}

// Hash160 returns a copy of the address hash.
func (a Address) Hash160() []byte {
	h := make([]byte, HashLen)
	copy(h, a.Hash[:])
	return h
}

// ToHash160 decodes s and returns its 160-bit hash.
func ToHash160(s string) ([]byte, error) {
	a, err := Decode(s)
	if err != nil {
		return nil, err
	}
	return a.Hash160(), nil
}

// IsValid reports whether s decodes to an address of family f. Base58
// addresses count as LegacyCash.
func IsValid(s string, f Family) bool {
	a, err := Decode(s)
	return err == nil && a.Family == f
}

// ConvertPrefix re-encodes s under the target family. Only the source
// families listed for the target are accepted; converting an etoken
// address to etoken, for example, fails.
func ConvertPrefix(s string, target Family) (string, error) {
	sources, ok := convertSources[target]
	if !ok {
		return "", invalid(s, fmt.Sprintf("unknown address family %d", int(target)))
	}
	a, err := Decode(s)
	if err == nil {
		for _, src := range sources {
			if a.Family == src {
				return a.WithFamily(target).String(), nil
			}
		}
	}
	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = src.String()
	}
	return "", invalid(s, fmt.Sprintf("%s is not a valid %s address", s, strings.Join(names, " or ")))
}

// ToEcash converts a bitcoincash, base58 or etoken address to ecash.
func ToEcash(s string) (string, error) { return ConvertPrefix(s, Value) }

// ToEtoken converts an ecash or simpleledger address to etoken.
func ToEtoken(s string) (string, error) { return ConvertPrefix(s, Token) }

// ToLegacyCash converts an ecash address to bitcoincash.
func ToLegacyCash(s string) (string, error) { return ConvertPrefix(s, LegacyCash) }

// ToLegacyToken converts an etoken address to simpleledger.
func ToLegacyToken(s string) (string, error) { return ConvertPrefix(s, LegacyToken) }

// ConvertAddressArray converts every address to the target family. The
// first failure aborts the whole batch and names the offending address.
func ConvertAddressArray(addrs []string, target Family) ([]string, error) {
	if len(addrs) == 0 {
		return nil, invalid("", "Invalid addressArray input")
	}
	out := make([]string, len(addrs))
	for i, s := range addrs {
		conv, err := ConvertPrefix(s, target)
		if err != nil {
			return nil, invalid(s, fmt.Sprintf("Invalid address: %s.", s))
		}
		out[i] = conv
	}
	return out, nil
}
