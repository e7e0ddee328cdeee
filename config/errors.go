// Copyright (c) 2024 The Cashtab developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("config: invalid network (must be \"mainnet\", \"testnet\", or \"regtest\")")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")

	// ErrInvalidConfigValue indicates a value that does not parse for its key.
	ErrInvalidConfigValue = errors.New("config: invalid configuration value")

	// ErrInvalidFeeRate indicates a fee rate that is not positive.
	ErrInvalidFeeRate = errors.New("config: fee rate must be positive")

	// ErrInvalidAmount indicates a satoshi threshold out of range.
	ErrInvalidAmount = errors.New("config: invalid satoshi amount")

	// ErrInvalidDecimals indicates an unsupported number of decimals.
	ErrInvalidDecimals = errors.New("config: cash decimals must be between 0 and 8")

	// ErrInvalidPushSize indicates a push size outside 1..220.
	ErrInvalidPushSize = errors.New("config: max push size must be between 1 and 220")

	// ErrInvalidURL indicates a malformed server URL.
	ErrInvalidURL = errors.New("config: invalid URL")
)
