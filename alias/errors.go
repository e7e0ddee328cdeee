package alias

import "errors"

var (
	// ErrInvalidName indicates an alias name that can never be registered.
	ErrInvalidName = errors.New("alias: invalid alias name")

	// ErrNotRegistered indicates the indexer has no confirmed registration for the name.
	ErrNotRegistered = errors.New("eCash Alias does not exist or yet to receive 1 confirmation")

	// ErrResolutionFailed indicates the indexer could not be reached or answered nonsense.
	ErrResolutionFailed = errors.New("Error resolving alias at indexer, contact admin.")

	// ErrCacheMiss indicates the cache holds no entry for the name.
	ErrCacheMiss = errors.New("alias: not cached")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("alias: nil parameter")
)
