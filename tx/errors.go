package tx

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTxInputParameter indicates missing or inconsistent input/output builder parameters.
	ErrInvalidTxInputParameter = errors.New("Invalid tx input parameter")

	// ErrInvalidBuildTxParameter indicates SignAndBuild was called without UTXOs or keys.
	ErrInvalidBuildTxParameter = errors.New("Invalid buildTx parameter")

	// ErrInsufficientFunds indicates the UTXO set cannot cover the send amount plus fee.
	ErrInsufficientFunds = errors.New("tx: insufficient funds")

	// ErrInsufficientTokens indicates the token UTXOs cannot cover the token quantity.
	ErrInsufficientTokens = errors.New("tx: insufficient token balance")

	// ErrInvalidSingleSendValue indicates a missing or malformed one-to-one amount.
	ErrInvalidSingleSendValue = errors.New("Invalid singleSendValue")

	// ErrInvalidDestinationList indicates a missing or malformed one-to-many list.
	ErrInvalidDestinationList = errors.New("Invalid destinationAddressAndValueArray")

	// ErrDust indicates the send total is below the dust floor.
	ErrDust = errors.New("dust")

	// ErrInvalidChangeParameter indicates ChangeAddressFromInputs received no UTXOs.
	ErrInvalidChangeParameter = errors.New("Invalid getChangeAddressFromWallet input parameter")

	// ErrInvalidInputUTXO indicates the first UTXO has no usable address.
	ErrInvalidInputUTXO = errors.New("Invalid input utxo")

	// ErrSigningFailed indicates transaction signing failed.
	ErrSigningFailed = errors.New("tx: signing failed")

	// ErrScriptBuild indicates locking script construction failed.
	ErrScriptBuild = errors.New("tx: script build failed")

	// ErrKeyNotFound indicates the key ring holds no key for an input address.
	ErrKeyNotFound = errors.New("tx: no key for input address")
)

// InsufficientFundsError reports how much a selection needed and had.
type InsufficientFundsError struct {
	Need uint64
	Have uint64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: need %d sat, have %d sat", ErrInsufficientFunds, e.Need, e.Have)
}

// Is reports whether target is ErrInsufficientFunds.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
