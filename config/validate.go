// Copyright (c) 2024 The Cashtab developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// maxPushSize is the largest single push a standard OP_RETURN allows.
const maxPushSize = 220

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if cfg.Network != "mainnet" && cfg.Network != "testnet" && cfg.Network != "regtest" {
		return ErrInvalidNetwork
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	if !cfg.FeeRate.IsPositive() {
		return ErrInvalidFeeRate
	}

	for _, a := range []struct {
		name string
		sats int64
	}{
		{"dustsats", cfg.DustSats},
		{"changeminsats", cfg.ChangeMinSats},
		{"minsendsats", cfg.MinSendSats},
		{"etokensats", cfg.EtokenSats},
	} {
		if a.sats <= 0 {
			return fmt.Errorf("%w: %s = %d", ErrInvalidAmount, a.name, a.sats)
		}
	}
	if cfg.MinSendSats < cfg.DustSats {
		return fmt.Errorf("%w: minsendsats %d is below dustsats %d", ErrInvalidAmount, cfg.MinSendSats, cfg.DustSats)
	}

	if cfg.CashDecimals < 0 || cfg.CashDecimals > 8 {
		return ErrInvalidDecimals
	}

	if cfg.MaxPushSize < 1 || cfg.MaxPushSize > maxPushSize {
		return ErrInvalidPushSize
	}

	for _, u := range []string{cfg.AliasServer, cfg.RPCURL} {
		if err := validateURL(u); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidURL, err)
		}
	}

	return nil
}

// validateURL accepts an empty string or an absolute http(s) URL.
func validateURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q: missing host", raw)
	}
	return nil
}
