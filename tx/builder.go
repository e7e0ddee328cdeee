package tx

import (
	"fmt"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction"
)

// DefaultTxVersion is the version of transactions built by a Builder.
const DefaultTxVersion = uint32(2)

// Builder assembles an unsigned transaction. Every With method returns a
// new Builder and leaves the receiver unchanged, so partially built
// values can be shared freely.
type Builder struct {
	inputs   []*UTXO
	outputs  []*Output
	version  uint32
	lockTime uint32
}

// NewBuilder returns an empty version 2 builder.
func NewBuilder() Builder {
	return Builder{version: DefaultTxVersion}
}

// WithInputs returns a builder with utxos appended as inputs.
func (b Builder) WithInputs(utxos ...*UTXO) Builder {
	b.inputs = append(append([]*UTXO(nil), b.inputs...), utxos...)
	return b
}

// WithOutputs returns a builder with outs appended.
func (b Builder) WithOutputs(outs ...*Output) Builder {
	b.outputs = append(append([]*Output(nil), b.outputs...), outs...)
	return b
}

// WithVersion returns a builder producing transactions of version v.
func (b Builder) WithVersion(v uint32) Builder {
	b.version = v
	return b
}

// WithLockTime returns a builder with the given nLockTime.
func (b Builder) WithLockTime(lt uint32) Builder {
	b.lockTime = lt
	return b
}

// Inputs returns a copy of the inputs.
func (b Builder) Inputs() []*UTXO { return append([]*UTXO(nil), b.inputs...) }

// Outputs returns a copy of the outputs.
func (b Builder) Outputs() []*Output { return append([]*Output(nil), b.outputs...) }

// OutputTotal sums the value of every output.
func (b Builder) OutputTotal() uint64 {
	var total uint64
	for _, o := range b.outputs {
		total += o.Value
	}
	return total
}

// Unsigned serializes the builder into a go-sdk transaction with empty
// unlocking scripts and source outputs attached for sighash computation.
func (b Builder) Unsigned() (*transaction.Transaction, error) {
	if len(b.inputs) == 0 {
		return nil, fmt.Errorf("%w: no inputs", ErrInvalidBuildTxParameter)
	}
	if len(b.outputs) == 0 {
		return nil, fmt.Errorf("%w: no outputs", ErrInvalidBuildTxParameter)
	}

	sdkTx := transaction.NewTransaction()
	sdkTx.Version = b.version
	sdkTx.LockTime = b.lockTime

	for i, u := range b.inputs {
		if u == nil {
			return nil, fmt.Errorf("%w: input %d is nil", ErrInvalidBuildTxParameter, i)
		}
		txid, err := chainhash.NewHashFromHex(u.TxID)
		if err != nil {
			return nil, fmt.Errorf("%w: input %d txid: %w", ErrInvalidBuildTxParameter, i, err)
		}
		lock, err := LockingScript(u.Address)
		if err != nil {
			return nil, fmt.Errorf("%w: input %d address: %w", ErrInvalidBuildTxParameter, i, err)
		}
		sdkTx.AddInput(&transaction.TransactionInput{
			SourceTXID:       txid,
			SourceTxOutIndex: u.Vout,
			SequenceNumber:   transaction.DefaultSequenceNumber,
		})
		sdkTx.Inputs[i].SetSourceTxOutput(&transaction.TransactionOutput{
			Satoshis:      u.Value,
			LockingScript: script.NewFromBytes(lock),
		})
	}

	for i, o := range b.outputs {
		if o == nil || len(o.Script) == 0 {
			return nil, fmt.Errorf("%w: output %d has no script", ErrInvalidBuildTxParameter, i)
		}
		sdkTx.AddOutput(&transaction.TransactionOutput{
			Satoshis:      o.Value,
			LockingScript: script.NewFromBytes(o.Script),
		})
	}
	return sdkTx, nil
}
