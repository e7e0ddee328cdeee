package tx

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceFromUTXOs(t *testing.T) {
	utxos := []*UTXO{
		testUTXO(testDestination, 1, 1000),
		testTokenUTXO(testDestination, 2, 50),
		nil,
		testUTXO(testDestination, 3, 700000),
	}
	b := BalanceFromUTXOs(utxos)
	assert.Equal(t, uint64(701000), b.Sats)
	assert.True(t, b.Xec.Equal(decimal.RequireFromString("7010")))
}

func TestSplitUTXOs(t *testing.T) {
	a := testUTXO(testDestination, 1, 1)
	tok := testTokenUTXO(testDestination, 2, 1)
	b := testUTXO(testDestination, 3, 1)
	plain, tokens := SplitUTXOs([]*UTXO{a, tok, nil, b})
	assert.Equal(t, []*UTXO{a, b}, plain)
	assert.Equal(t, []*UTXO{tok}, tokens)
}

func TestChangeAddressFromInputs(t *testing.T) {
	addr, err := ChangeAddressFromInputs([]*UTXO{
		testUTXO(testDestination2, 1, 1),
		testUTXO(testDestination3, 2, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, testDestination2, addr)
}

func TestChangeAddressFromInputs_Errors(t *testing.T) {
	_, err := ChangeAddressFromInputs(nil)
	require.ErrorIs(t, err, ErrInvalidChangeParameter)
	assert.Equal(t, "Invalid getChangeAddressFromWallet input parameter", err.Error())

	_, err = ChangeAddressFromInputs([]*UTXO{{TxID: testTxID(1)}})
	require.ErrorIs(t, err, ErrInvalidInputUTXO)
	assert.Equal(t, "Invalid input utxo", err.Error())

	_, err = ChangeAddressFromInputs([]*UTXO{{Address: "nope"}})
	assert.ErrorIs(t, err, ErrInvalidInputUTXO)
}
