package tx

import (
	"github.com/shopspring/decimal"
)

// Serialized size of the pieces of a P2PKH transaction.
const (
	InputBytes      = 148
	OutputBytes     = 34
	TxOverheadBytes = 10
)

// DefaultFeeRate is the fee rate in satoshis per byte.
var DefaultFeeRate = decimal.RequireFromString("2.01")

// ByteCount estimates the size of a P2PKH transaction with the given
// number of inputs and outputs.
func ByteCount(inputs, outputs int) int {
	return InputBytes*inputs + OutputBytes*outputs + TxOverheadBytes
}

// OpReturnOutputBytes is the serialized size of an OP_RETURN output whose
// script is scriptLen bytes long.
func OpReturnOutputBytes(scriptLen int) int {
	if scriptLen <= 0 {
		return 0
	}
	return 8 + varIntLen(scriptLen) + scriptLen
}

// CalcFee returns ceil(ByteCount(len(utxos), outputs) * rate).
func CalcFee(utxos []*UTXO, outputs int, rate decimal.Decimal) uint64 {
	return FeeForBytes(ByteCount(len(utxos), outputs), rate)
}

// FeeForBytes returns ceil(size * rate). A non-positive rate means DefaultFeeRate.
func FeeForBytes(size int, rate decimal.Decimal) uint64 {
	if !rate.IsPositive() {
		rate = DefaultFeeRate
	}
	return uint64(decimal.NewFromInt(int64(size)).Mul(rate).Ceil().IntPart())
}

func varIntLen(n int) int {
	switch {
	case n < 0xfd:
		return 1
	case n <= 0xffff:
		return 3
	default:
		return 5
	}
}
