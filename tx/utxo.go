package tx

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cashtaborg/libcashtab-go/address"
	"github.com/cashtaborg/libcashtab-go/units"
)

// UTXO is an unspent output owned by the wallet, as reported by the indexer.
type UTXO struct {
	TxID    string       `json:"txid"` // display (big-endian) hex
	Vout    uint32       `json:"vout"`
	Value   uint64       `json:"value"`   // satoshis
	Address string       `json:"address"` // owning address, any family
	Token   *TokenAmount `json:"token,omitempty"`
}

// TokenAmount is the token quantity carried by a UTXO.
type TokenAmount struct {
	ID       string `json:"tokenId"`
	Amount   uint64 `json:"amount"` // base units
	Decimals int    `json:"decimals"`
}

// IsToken reports whether the UTXO carries a token.
func (u *UTXO) IsToken() bool { return u != nil && u.Token != nil }

// Output is a transaction output ready to be placed in a Builder.
type Output struct {
	// Address is empty for OP_RETURN outputs.
	Address string
	Value   uint64
	Script  []byte
}

// Balance is the spendable value of a UTXO set.
type Balance struct {
	Sats uint64
	Xec  decimal.Decimal
}

// BalanceFromUTXOs sums the value of non-token UTXOs. Token UTXOs hold
// dust that cannot be spent without burning the token, so they are left out.
func BalanceFromUTXOs(utxos []*UTXO) Balance {
	var sats uint64
	for _, u := range utxos {
		if u == nil || u.IsToken() {
			continue
		}
		sats += u.Value
	}
	return Balance{Sats: sats, Xec: units.SatoshisToXec(int64(sats), units.CashDecimals)}
}

// SplitUTXOs separates plain value UTXOs from token UTXOs, preserving order.
func SplitUTXOs(utxos []*UTXO) (plain, tokens []*UTXO) {
	for _, u := range utxos {
		switch {
		case u == nil:
		case u.IsToken():
			tokens = append(tokens, u)
		default:
			plain = append(plain, u)
		}
	}
	return plain, tokens
}

// ChangeAddressFromInputs returns the address change should go to: the
// owner of the first input.
func ChangeAddressFromInputs(utxos []*UTXO) (string, error) {
	if len(utxos) == 0 {
		return "", ErrInvalidChangeParameter
	}
	first := utxos[0]
	if first == nil || first.Address == "" {
		return "", ErrInvalidInputUTXO
	}
	if _, err := address.Decode(first.Address); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInputUTXO, err)
	}
	return first.Address, nil
}
