// Copyright (c) 2024 The Cashtab developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package config loads and saves the key=value configuration file of a
// Cashtab data directory.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ConfigFileName is the name of the configuration file inside DataDir.
const ConfigFileName = "config"

// Defaults for the tunable constants.
const (
	DefaultNetwork       = "mainnet"
	DefaultLogLevel      = "info"
	DefaultDustSats      = 546
	DefaultChangeMinSats = 550
	DefaultMinSendSats   = 550
	DefaultEtokenSats    = 546
	DefaultCashDecimals  = 2
	DefaultMaxPushSize   = 220
)

// DefaultFeeRate is the fee in satoshis per byte.
var DefaultFeeRate = decimal.RequireFromString("2.01")

// Config holds every tunable of a wallet.
type Config struct {
	DataDir  string
	Network  string
	LogLevel string
	LogFile  string

	// FeeRate is in satoshis per byte.
	FeeRate decimal.Decimal

	// DustSats is the smallest amount a send may carry.
	DustSats int64
	// ChangeMinSats is the smallest change output worth creating.
	ChangeMinSats int64
	// MinSendSats is the floor applied to amounts typed into a send form.
	MinSendSats int64
	// EtokenSats is the value of each token-carrying output.
	EtokenSats   int64
	CashDecimals int32
	MaxPushSize  int

	// AliasServer is the base URL of the alias indexer. Empty disables
	// alias resolution.
	AliasServer string
	RPCURL      string
}

// DefaultDataDir returns ~/.cashtab, or .cashtab in the working directory
// when the home directory cannot be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cashtab"
	}
	return filepath.Join(home, ".cashtab")
}

// ConfigPath returns the configuration file path for dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, ConfigFileName)
}

// DefaultConfig returns a Config with every field at its default.
func DefaultConfig() Config {
	return Config{
		DataDir:       DefaultDataDir(),
		Network:       DefaultNetwork,
		LogLevel:      DefaultLogLevel,
		FeeRate:       DefaultFeeRate,
		DustSats:      DefaultDustSats,
		ChangeMinSats: DefaultChangeMinSats,
		MinSendSats:   DefaultMinSendSats,
		EtokenSats:    DefaultEtokenSats,
		CashDecimals:  DefaultCashDecimals,
		MaxPushSize:   DefaultMaxPushSize,
	}
}

// LoadConfig reads path on top of DefaultConfig. Blank lines and lines
// starting with '#' are skipped; unknown keys are ignored so older
// binaries can read newer files.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, err := parseKeyValue(line)
		if err != nil {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		if err := cfg.set(key, value); err != nil {
			return cfg, fmt.Errorf("%w: line %d: %w", ErrInvalidConfigValue, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	return cfg, nil
}

// parseKeyValue splits a line on its first '='.
func parseKeyValue(line string) (string, string, error) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", ErrInvalidConfigLine
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "", "", ErrInvalidConfigLine
	}
	return key, strings.TrimSpace(value), nil
}

func (c *Config) set(key, value string) error {
	var err error
	switch key {
	case "datadir":
		c.DataDir = value
	case "network":
		c.Network = value
	case "loglevel":
		c.LogLevel = value
	case "logfile":
		c.LogFile = value
	case "feerate":
		c.FeeRate, err = decimal.NewFromString(value)
	case "dustsats":
		c.DustSats, err = strconv.ParseInt(value, 10, 64)
	case "changeminsats":
		c.ChangeMinSats, err = strconv.ParseInt(value, 10, 64)
	case "minsendsats":
		c.MinSendSats, err = strconv.ParseInt(value, 10, 64)
	case "etokensats":
		c.EtokenSats, err = strconv.ParseInt(value, 10, 64)
	case "cashdecimals":
		var n int64
		n, err = strconv.ParseInt(value, 10, 32)
		c.CashDecimals = int32(n)
	case "maxpushsize":
		c.MaxPushSize, err = strconv.Atoi(value)
	case "aliasserver":
		c.AliasServer = value
	case "rpcurl":
		c.RPCURL = value
	}
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// SaveConfig writes cfg to path, creating parent directories.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Cashtab Configuration\n\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "network = %s\n", cfg.Network)
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)
	fmt.Fprintf(&b, "logfile = %s\n", cfg.LogFile)
	b.WriteString("\n# Amounts in satoshis; feerate in satoshis per byte.\n")
	fmt.Fprintf(&b, "feerate = %s\n", cfg.FeeRate.String())
	fmt.Fprintf(&b, "dustsats = %d\n", cfg.DustSats)
	fmt.Fprintf(&b, "changeminsats = %d\n", cfg.ChangeMinSats)
	fmt.Fprintf(&b, "minsendsats = %d\n", cfg.MinSendSats)
	fmt.Fprintf(&b, "etokensats = %d\n", cfg.EtokenSats)
	fmt.Fprintf(&b, "cashdecimals = %d\n", cfg.CashDecimals)
	fmt.Fprintf(&b, "maxpushsize = %d\n", cfg.MaxPushSize)
	b.WriteString("\n")
	fmt.Fprintf(&b, "aliasserver = %s\n", cfg.AliasServer)
	fmt.Fprintf(&b, "rpcurl = %s\n", cfg.RPCURL)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
