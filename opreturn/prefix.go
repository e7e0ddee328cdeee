// Package opreturn builds and parses the OP_RETURN payloads a Cashtab
// wallet attaches to transactions: plain and encrypted messages, airdrop
// tags and alias registrations.
//
// Wire layout:
//
//	OP_RETURN [<airdrop tag> <token id>] <app prefix> <message push>+
package opreturn

// Lokad-style protocol prefixes, each pushed as a 4-byte data push.
var (
	CashtabPrefix   = []byte{0x00, 0x74, 0x61, 0x62} // "\x00tab"
	EncryptedPrefix = []byte{0x65, 0x74, 0x61, 0x62} // "etab"
	AirdropPrefix   = []byte{0x64, 0x72, 0x6f, 0x70} // "drop"
	AliasPrefix     = []byte{0x2e, 0x78, 0x65, 0x63} // ".xec"
	TokenPrefix     = []byte{0x53, 0x4c, 0x50, 0x00} // "SLP\x00"
)

const (
	// OpReturn is the OP_RETURN opcode.
	OpReturn = 0x6a

	// DefaultMaxPushSize is the largest message segment pushed at once.
	DefaultMaxPushSize = 220

	// TokenIDLen is the byte length of a token id.
	TokenIDLen = 32

	// MaxAliasLength is the longest alias name that can be registered.
	MaxAliasLength = 21
)

// Protocol identifies the application that produced a payload.
type Protocol int

const (
	External Protocol = iota
	Cashtab
	Encrypted
	Airdrop
	Token
	Alias
)

func (p Protocol) String() string {
	switch p {
	case Cashtab:
		return "cashtab"
	case Encrypted:
		return "encrypted"
	case Airdrop:
		return "airdrop"
	case Token:
		return "token"
	case Alias:
		return "alias"
	default:
		return "external"
	}
}
