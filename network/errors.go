package network

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectionFailed indicates the client could not connect to the node.
	ErrConnectionFailed = errors.New("network: connection failed")

	// ErrAuthFailed indicates the node rejected the RPC credentials.
	ErrAuthFailed = errors.New("network: authentication failed")

	// ErrTxNotFound indicates the requested transaction does not exist.
	ErrTxNotFound = errors.New("network: transaction not found")

	// ErrBroadcastRejected indicates the node rejected the broadcast transaction.
	ErrBroadcastRejected = errors.New("network: broadcast rejected")

	// ErrInvalidResponse indicates the node returned a malformed or unexpected response.
	ErrInvalidResponse = errors.New("network: invalid response")

	// ErrMissingConfig indicates no RPC URL was configured for the network.
	ErrMissingConfig = errors.New("network: missing RPC configuration")
)

// Node error codes with a sentinel mapping.
const (
	codeInvalidAddressOrKey  = -5
	codeVerifyError          = -25
	codeVerifyRejected       = -26
	codeVerifyAlreadyInChain = -27
)

// RPCError is an error object returned by the node.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("network: rpc error %d: %s", e.Code, e.Message)
}

// Is maps well-known node error codes onto the package sentinels.
func (e *RPCError) Is(target error) bool {
	switch target {
	case ErrTxNotFound:
		return e.Code == codeInvalidAddressOrKey
	case ErrBroadcastRejected:
		return e.Code == codeVerifyError || e.Code == codeVerifyRejected || e.Code == codeVerifyAlreadyInChain
	}
	return false
}
