package tx

import (
	"bytes"
	"strings"
	"testing"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"github.com/stretchr/testify/require"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/cashtaborg/libcashtab-go/address"
)

const (
	testDestination  = "ecash:qzvydd4n3lm3xv62cx078nu9rg0e3srmqq0knykfed"
	testDestination2 = "ecash:qq9h6d0a5q65fgywv4ry64x04ep906mdku8f0gxfgx"
	testDestination3 = "ecash:qp89xgjhcqdnzzemts0aj378nfe2mhu9yvxj9nhgg6"
	testTokenID      = "bd1acc4c986de57af8d6d2a64aecad8c30ee80f37ae9d066d758923732ddc9ba"
)

// testKey returns a deterministic key and its ecash address.
func testKey(t *testing.T, seed byte) (*ec.PrivateKey, string) {
	t.Helper()
	priv, _ := ec.PrivateKeyFromBytes(bytes.Repeat([]byte{seed}, 32))
	require.NotNil(t, priv)
	a, err := address.FromHash160(address.Value, address.MainNet, address.P2PKH, bsvhash.Hash160(priv.PubKey().Compressed()))
	require.NoError(t, err)
	return priv, a.String()
}

func testTxID(b byte) string {
	return strings.Repeat(string("0123456789abcdef"[b>>4])+string("0123456789abcdef"[b&0x0f]), 32)
}

func testUTXO(addr string, txidByte byte, value uint64) *UTXO {
	return &UTXO{TxID: testTxID(txidByte), Vout: 0, Value: value, Address: addr}
}

func testTokenUTXO(addr string, txidByte byte, amount uint64) *UTXO {
	u := testUTXO(addr, txidByte, DefaultEtokenSats)
	u.Token = &TokenAmount{ID: testTokenID, Amount: amount, Decimals: 2}
	return u
}
