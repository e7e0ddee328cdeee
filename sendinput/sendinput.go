// Package sendinput parses and validates what a user types into a send
// form: the destination, with an optional BIP21 "?amount=" query, and the
// XEC amount.
package sendinput

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/cashtaborg/libcashtab-go/address"
	"github.com/cashtaborg/libcashtab-go/alias"
	"github.com/cashtaborg/libcashtab-go/units"
)

// AmountParam is the only query parameter a destination may carry.
const AmountParam = "amount"

// AddressInput is the parsed destination field.
type AddressInput struct {
	// Value is the raw text as typed.
	Value string
	// Address is the destination without its query string. For an alias
	// it holds "<name>.xec" until resolved.
	Address string
	// Alias is the alias name without suffix, set when IsAlias.
	Alias   string
	IsAlias bool
	// Amount is the XEC amount from "?amount=", as written.
	Amount string
	// AmountFromQuery reports that Amount came from the query string and
	// the amount field is locked.
	AmountFromQuery bool
	// Err is the first validation failure, nil when the input is usable.
	Err error
}

// Valid reports whether the destination parsed without error.
func (in *AddressInput) Valid() bool { return in != nil && in.Err == nil }

// ParseAddressInput splits input into destination and query and validates
// both. It never returns nil; failures are reported in Err.
func ParseAddressInput(input string) *AddressInput {
	in := &AddressInput{Value: input}
	dest, query, hasQuery := strings.Cut(strings.TrimSpace(input), "?")
	in.Address = dest

	if hasQuery {
		if err := in.parseQuery(query); err != nil {
			in.Err = err
			return in
		}
	}

	if alias.HasSuffix(dest) {
		name := alias.TrimSuffix(dest)
		in.IsAlias = true
		in.Alias = name
		if err := alias.ValidateName(name); err != nil {
			in.Err = fmt.Errorf("%w: %w", ErrInvalidAlias, err)
		}
		return in
	}

	if address.IsValid(dest, address.Value) {
		return in
	}
	if alias.ValidateName(dest) == nil {
		in.Err = ErrAliasSuffix
		return in
	}
	in.Err = address.ErrInvalidAddress
	return in
}

func (in *AddressInput) parseQuery(query string) error {
	params, err := url.ParseQuery(query)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	for name := range params {
		if name != AmountParam {
			return fmt.Errorf("%w %q", ErrUnsupportedParam, name)
		}
	}
	if values, ok := params[AmountParam]; ok {
		if len(values) != 1 {
			return fmt.Errorf("%w: amount given %d times", ErrInvalidQuery, len(values))
		}
		in.Amount = values[0]
		in.AmountFromQuery = true
	}
	return nil
}

// Rules are the amount limits applied by ValidateAmount.
type Rules struct {
	MinSendSats int64
	Decimals    int32
}

// DefaultRules is the XEC send form: 2 decimals and a 5.5 XEC floor.
var DefaultRules = Rules{MinSendSats: 550, Decimals: units.CashDecimals}

// ValidateAmount checks an XEC amount against the balance. Checks run in
// a fixed order and the first failure is returned.
func ValidateAmount(value string, balanceSats int64, rules Rules) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return ErrAmountRequired
	}
	if err := units.CheckDecimalPlaces(v, int(rules.Decimals)); err != nil {
		return err
	}
	sats, err := units.ParseSatoshis(v, rules.Decimals)
	if err != nil {
		return err
	}
	if sats < rules.MinSendSats {
		return fmt.Errorf("%w %s XEC", ErrBelowMinimum,
			units.SatoshisToXec(rules.MinSendSats, rules.Decimals).String())
	}
	if sats > balanceSats {
		return ErrExceedsBalance
	}
	return nil
}

// AmountSats parses an amount that already passed ValidateAmount.
func AmountSats(value string, rules Rules) (int64, error) {
	return units.ParseSatoshis(strings.TrimSpace(value), rules.Decimals)
}

// Resolve returns the destination address of in, looking the alias up
// through r when in names one.
func Resolve(ctx context.Context, in *AddressInput, r alias.Resolver) (string, error) {
	if in == nil {
		return "", alias.ErrNilParam
	}
	if in.Err != nil {
		return "", in.Err
	}
	if !in.IsAlias {
		return in.Address, nil
	}
	if r == nil {
		return "", alias.ErrNilParam
	}
	res, err := r.Resolve(ctx, in.Alias)
	if err != nil {
		return "", err
	}
	if !address.IsValid(res.Address, address.Value) {
		return "", errors.Join(alias.ErrResolutionFailed, address.ErrInvalidAddress)
	}
	return res.Address, nil
}
