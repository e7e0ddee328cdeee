// Package alias implements eCash alias rules and resolution.
//
// An alias is a short lowercase name registered on chain by paying the
// registration address and attaching a ".xec" OP_RETURN. Wallets resolve
// "<name>.xec" to an address through an indexer.
package alias

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cashtaborg/libcashtab-go/address"
	"github.com/cashtaborg/libcashtab-go/opreturn"
)

const (
	// Suffix marks an alias in a send-to field.
	Suffix = ".xec"

	// MaxLength is the longest registrable name.
	MaxLength = opreturn.MaxAliasLength

	// RegistrationAddress receives registration fees.
	RegistrationAddress = "ecash:qp3c268rd5946l2f5m5es4x25f7ewu4sjvpy52pqa8"

	// RegistrationHash160 is the hash160 of RegistrationAddress.
	RegistrationHash160 = "638568e36d0b5d7d49a6e99854caa27d9772b093"

	// MinFeeSats is the fee for names of 8 or more characters.
	MinFeeSats = uint64(551)
)

// ValidateName reports whether name may be registered: 1 to MaxLength
// characters, each a lowercase ASCII letter or digit.
func ValidateName(name string) error {
	if name == "" || len(name) > MaxLength {
		return fmt.Errorf("%w: %q must be 1 to %d characters", ErrInvalidName, name, MaxLength)
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return fmt.Errorf("%w: %q may only contain a-z and 0-9", ErrInvalidName, name)
		}
	}
	return nil
}

// RegistrationFee returns the fee in satoshis to register name. Shorter
// names cost more: 558 sats for one character down to 551 for eight or more.
func RegistrationFee(name string) (uint64, error) {
	if err := ValidateName(name); err != nil {
		return 0, err
	}
	if n := len(name); n < 8 {
		return MinFeeSats + uint64(8-n), nil
	}
	return MinFeeSats, nil
}

// HasSuffix reports whether input names an alias.
func HasSuffix(input string) bool {
	return strings.HasSuffix(input, Suffix)
}

// TrimSuffix strips the ".xec" suffix.
func TrimSuffix(input string) string {
	return strings.TrimSuffix(input, Suffix)
}

// Registration is an unsigned alias registration: the fee output and the
// OP_RETURN announcing the name.
type Registration struct {
	Name     string
	FeeSats  uint64
	Address  string // fee destination
	OpReturn []byte
}

// BuildRegistration prepares the registration of name to owner.
func BuildRegistration(name, owner string) (*Registration, error) {
	fee, err := RegistrationFee(name)
	if err != nil {
		return nil, err
	}
	a, err := address.Decode(owner)
	if err != nil {
		return nil, err
	}
	raw, err := opreturn.BuildAliasRegistrationScript(name, a)
	if err != nil {
		return nil, err
	}
	return &Registration{
		Name:     name,
		FeeSats:  fee,
		Address:  RegistrationAddress,
		OpReturn: raw,
	}, nil
}

// IsRegistrationOutput reports whether hash160 belongs to RegistrationAddress.
func IsRegistrationOutput(hash160 []byte) bool {
	return hex.EncodeToString(hash160) == RegistrationHash160
}
