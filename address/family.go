package address

import "fmt"

// Family is the prefix family of a cash address.
type Family int

const (
	// Value is the eCash value family ("ecash:").
	Value Family = iota
	// Token is the eCash token family ("etoken:").
	Token
	// LegacyCash is the Bitcoin Cash family ("bitcoincash:") and base58 addresses.
	LegacyCash
	// LegacyToken is the Simple Ledger family ("simpleledger:").
	LegacyToken
)

// Network selects the mainnet or testnet prefix of a family.
type Network int

const (
	// MainNet prefixes.
	MainNet Network = iota
	// TestNet prefixes.
	TestNet
)

// Type is the kind of script the hash locks.
type Type byte

const (
	// P2PKH pays to a public key hash.
	P2PKH Type = 0
	// P2SH pays to a script hash.
	P2SH Type = 1
)

var families = []Family{Value, Token, LegacyCash, LegacyToken}

var prefixes = map[Family][2]string{
	Value:       {"ecash", "ectest"},
	Token:       {"etoken", "etokentest"},
	LegacyCash:  {"bitcoincash", "bchtest"},
	LegacyToken: {"simpleledger", "slptest"},
}

// Prefix returns the cash address prefix for the family on net.
func (f Family) Prefix(net Network) string {
	p, ok := prefixes[f]
	if !ok {
		return ""
	}
	if net == TestNet {
		return p[1]
	}
	return p[0]
}

func (f Family) String() string {
	if p := f.Prefix(MainNet); p != "" {
		return p
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

func (t Type) String() string {
	switch t {
	case P2PKH:
		return "p2pkh"
	case P2SH:
		return "p2sh"
	default:
		return fmt.Sprintf("Type(%d)", byte(t))
	}
}

// lookupPrefix maps a lowercase prefix to its family and network.
func lookupPrefix(prefix string) (Family, Network, bool) {
	for _, f := range families {
		p := prefixes[f]
		switch prefix {
		case p[0]:
			return f, MainNet, true
		case p[1]:
			return f, TestNet, true
		}
	}
	return 0, 0, false
}

// convertSources lists, per target family, the families ConvertPrefix
// accepts as input.
var convertSources = map[Family][]Family{
	Value:       {LegacyCash, Token},
	Token:       {Value, LegacyToken},
	LegacyCash:  {Value},
	LegacyToken: {Token},
}
