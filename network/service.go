package network

import (
	"context"
	"fmt"

	"github.com/cashtaborg/libcashtab-go/tx"
)

// UTXOSource is where a wallet learns its spendable outputs and sends
// signed transactions.
type UTXOSource interface {
	// ListUnspent returns the unspent outputs paying to address.
	ListUnspent(ctx context.Context, address string) ([]*tx.UTXO, error)

	// BroadcastTx submits a raw transaction hex and returns its txid.
	BroadcastTx(ctx context.Context, rawTxHex string) (string, error)

	// GetTxStatus returns the confirmation status of a transaction.
	GetTxStatus(ctx context.Context, txid string) (*TxStatus, error)
}

// TxStatus represents the confirmation status of a transaction.
type TxStatus struct {
	TxID          string `json:"txid"`
	Confirmed     bool   `json:"confirmed"`
	Confirmations int64  `json:"confirmations"`
	BlockHash     string `json:"block_hash"`
	BlockTime     int64  `json:"block_time"`
}

// CollectUTXOs lists the outputs of every address in order and returns
// them as one slice. The first failure aborts the walk.
func CollectUTXOs(ctx context.Context, src UTXOSource, addresses []string) ([]*tx.UTXO, error) {
	var all []*tx.UTXO
	for _, addr := range addresses {
		utxos, err := src.ListUnspent(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("network: list unspent for %s: %w", addr, err)
		}
		all = append(all, utxos...)
	}
	return all, nil
}
