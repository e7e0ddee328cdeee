package network

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cashtaborg/libcashtab-go/internal/log"
	"github.com/cashtaborg/libcashtab-go/tx"
	"github.com/cashtaborg/libcashtab-go/units"
)

// Compile-time interface check.
var _ UTXOSource = (*RPCClient)(nil)

// MaxConfirmations is the upper bound passed to listunspent.
const MaxConfirmations = 9999999

// xecToSat converts a node amount, which the node reports in XEC, to satoshis.
func xecToSat(xec decimal.Decimal) (uint64, error) {
	sats, err := units.XecToSatoshis(xec, units.CashDecimals)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %s: %w", ErrInvalidResponse, xec.String(), err)
	}
	if sats < 0 {
		return 0, fmt.Errorf("%w: negative amount %s", ErrInvalidResponse, xec.String())
	}
	return uint64(sats), nil
}

// listUnspentResult maps the JSON fields returned by the node's listunspent call.
type listUnspentResult struct {
	TxID          string          `json:"txid"`
	Vout          uint32          `json:"vout"`
	Amount        decimal.Decimal `json:"amount"`
	ScriptPubKey  string          `json:"scriptPubKey"`
	Address       string          `json:"address"`
	Confirmations int64           `json:"confirmations"`
}

// ListUnspent returns all unspent outputs for the given address.
// It calls `listunspent 0 9999999 ["address"]`. The node's wallet must
// watch the address (see ImportAddress). The node knows nothing of tokens,
// so every output comes back as a plain value UTXO.
func (c *RPCClient) ListUnspent(ctx context.Context, address string) ([]*tx.UTXO, error) {
	params := []interface{}{0, MaxConfirmations, []string{address}}
	var results []listUnspentResult
	if err := c.Call(ctx, "listunspent", params, &results); err != nil {
		return nil, err
	}

	utxos := make([]*tx.UTXO, 0, len(results))
	for _, r := range results {
		sats, err := xecToSat(r.Amount)
		if err != nil {
			return nil, err
		}
		owner := r.Address
		if owner == "" {
			owner = address
		}
		utxos = append(utxos, &tx.UTXO{
			TxID:    r.TxID,
			Vout:    r.Vout,
			Value:   sats,
			Address: owner,
		})
	}
	log.Network.Debug().Str("address", address).Int("count", len(utxos)).Msg("listed unspent outputs")
	return utxos, nil
}

// ImportAddress adds address to the node's wallet as watch-only so
// listunspent can see it. rescan walks the chain for existing outputs.
func (c *RPCClient) ImportAddress(ctx context.Context, address string, rescan bool) error {
	params := []interface{}{address, "", rescan}
	return c.Call(ctx, "importaddress", params, nil)
}

// BroadcastTx submits a raw transaction hex to the network and returns the txid.
// It calls `sendrawtransaction "hex"`. Node errors are wrapped with ErrBroadcastRejected.
func (c *RPCClient) BroadcastTx(ctx context.Context, rawTxHex string) (string, error) {
	if _, err := hex.DecodeString(rawTxHex); err != nil || rawTxHex == "" {
		return "", fmt.Errorf("%w: raw transaction is not hex", ErrBroadcastRejected)
	}
	params := []interface{}{rawTxHex}
	var txid string
	if err := c.Call(ctx, "sendrawtransaction", params, &txid); err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			return "", fmt.Errorf("%w: %s", ErrBroadcastRejected, rpcErr.Message)
		}
		return "", err
	}
	log.Network.Debug().Str("txid", txid).Msg("broadcast transaction")
	return txid, nil
}

// GetRawTx returns the raw transaction bytes for the given txid.
// It calls `getrawtransaction "txid" false` (non-verbose).
func (c *RPCClient) GetRawTx(ctx context.Context, txid string) ([]byte, error) {
	params := []interface{}{txid, false}
	var rawHex string
	if err := c.Call(ctx, "getrawtransaction", params, &rawHex); err != nil {
		return nil, err
	}
	data, err := hex.DecodeString(rawHex)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid tx hex: %v", ErrInvalidResponse, err)
	}
	return data, nil
}

// verboseTxResult maps the JSON fields from getrawtransaction with verbose=true.
type verboseTxResult struct {
	TxID          string `json:"txid"`
	Confirmations int64  `json:"confirmations"`
	BlockHash     string `json:"blockhash"`
	BlockTime     int64  `json:"blocktime"`
}

// GetTxStatus returns the confirmation status of a transaction.
// It calls `getrawtransaction "txid" true` (verbose mode). An unknown txid
// yields an error matching ErrTxNotFound.
func (c *RPCClient) GetTxStatus(ctx context.Context, txid string) (*TxStatus, error) {
	params := []interface{}{txid, true}
	var result verboseTxResult
	if err := c.Call(ctx, "getrawtransaction", params, &result); err != nil {
		return nil, err
	}
	if result.TxID == "" {
		result.TxID = txid
	}
	return &TxStatus{
		TxID:          result.TxID,
		Confirmed:     result.Confirmations > 0,
		Confirmations: result.Confirmations,
		BlockHash:     result.BlockHash,
		BlockTime:     result.BlockTime,
	}, nil
}

// GetBestBlockHeight returns the height of the current chain tip.
func (c *RPCClient) GetBestBlockHeight(ctx context.Context) (uint64, error) {
	var height uint64
	if err := c.Call(ctx, "getblockcount", nil, &height); err != nil {
		return 0, err
	}
	return height, nil
}
