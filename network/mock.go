package network

import (
	"context"

	"github.com/cashtaborg/libcashtab-go/tx"
)

// MockUTXOSource is a test double for UTXOSource.
// All function fields must be set before the corresponding method is called.
type MockUTXOSource struct {
	ListUnspentFn func(ctx context.Context, address string) ([]*tx.UTXO, error)
	BroadcastTxFn func(ctx context.Context, rawTxHex string) (string, error)
	GetTxStatusFn func(ctx context.Context, txid string) (*TxStatus, error)
}

var _ UTXOSource = (*MockUTXOSource)(nil)

func (m *MockUTXOSource) ListUnspent(ctx context.Context, address string) ([]*tx.UTXO, error) {
	return m.ListUnspentFn(ctx, address)
}
func (m *MockUTXOSource) BroadcastTx(ctx context.Context, rawTxHex string) (string, error) {
	return m.BroadcastTxFn(ctx, rawTxHex)
}
func (m *MockUTXOSource) GetTxStatus(ctx context.Context, txid string) (*TxStatus, error) {
	return m.GetTxStatusFn(ctx, txid)
}
