package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/cashtaborg/libcashtab-go/address"
	"github.com/cashtaborg/libcashtab-go/alias"
	"github.com/cashtaborg/libcashtab-go/config"
	"github.com/cashtaborg/libcashtab-go/internal/log"
	"github.com/cashtaborg/libcashtab-go/msgcrypt"
	"github.com/cashtaborg/libcashtab-go/network"
	"github.com/cashtaborg/libcashtab-go/opreturn"
	"github.com/cashtaborg/libcashtab-go/sendinput"
	"github.com/cashtaborg/libcashtab-go/tx"
	"github.com/cashtaborg/libcashtab-go/wallet"
)

// aliasCacheFile is the bbolt alias cache inside the data directory.
const aliasCacheFile = "aliases.db"

var (
	errAmountConflict = errors.New("amount given twice with different values")
	errNoAliasServer  = errors.New("alias server not configured")
	errEncryptNoMsg   = errors.New("--encrypt-to needs --message")
	errNoMnemonic     = errors.New("no mnemonic: set --mnemonic or CASHTAB_MNEMONIC")
)

// loadConfig reads the config file of the data directory, falling back to
// defaults when there is none, and applies command line overrides.
func loadConfig(opts options) (config.Config, error) {
	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}
	cfg, err := config.LoadConfig(config.ConfigPath(dataDir))
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return cfg, err
	}
	cfg.DataDir = dataDir
	if opts.Network != "" {
		cfg.Network = opts.Network
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.AliasServer != "" {
		cfg.AliasServer = opts.AliasServer
	}
	if opts.RPCURL != "" {
		cfg.RPCURL = opts.RPCURL
	}
	return cfg, config.ValidateConfig(cfg)
}

func run(ctx context.Context, opts options, out io.Writer) error {
	if opts.Mnemonic == "" {
		return errNoMnemonic
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := log.Init(cfg.LogLevel, opts.JSONLog, cfg.LogFile); err != nil {
		return err
	}
	defer log.Close()

	netCfg, err := wallet.GetNetwork(cfg.Network)
	if err != nil {
		return err
	}
	w, err := wallet.FromMnemonic(opts.Mnemonic, netCfg)
	if err != nil {
		return err
	}

	rpcCfg, err := network.ResolveConfig(&network.RPCConfig{
		URL:      cfg.RPCURL,
		User:     opts.RPCUser,
		Password: opts.RPCPass,
	}, environ(), cfg.Network)
	if err != nil {
		return err
	}
	client := network.NewRPCClient(*rpcCfg)

	if opts.Import {
		for _, addr := range w.Addresses(address.Value) {
			if err := client.ImportAddress(ctx, addr, true); err != nil {
				return fmt.Errorf("import %s: %w", addr, err)
			}
			log.CLI.Info().Str("address", addr).Msg("imported address")
		}
	}

	s := &sender{cfg: cfg, wallet: w, source: client}
	if cfg.AliasServer != "" {
		cache, err := alias.OpenBoltCache(filepath.Join(cfg.DataDir, aliasCacheFile))
		if err != nil {
			return err
		}
		defer func() { _ = cache.Close() }()
		s.resolver = &alias.CachedResolver{Next: alias.NewHTTPResolver(cfg.AliasServer), Cache: cache}
	}

	res, err := s.prepare(ctx, opts)
	if err != nil {
		return err
	}
	log.CLI.Info().Str("txid", res.TxID).Uint64("fee", res.Fee).Int("inputs", len(res.Inputs)).Msg("signed transaction")

	if opts.DryRun {
		_, err := fmt.Fprintln(out, res.Hex)
		return err
	}
	txid, err := client.BroadcastTx(ctx, res.Hex)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, txid)
	return err
}

// sender turns parsed options into a signed transaction.
type sender struct {
	cfg      config.Config
	wallet   *wallet.Wallet
	source   network.UTXOSource
	resolver alias.Resolver
}

func (s *sender) prepare(ctx context.Context, opts options) (*tx.Result, error) {
	in := sendinput.ParseAddressInput(opts.To)
	if in.Err != nil {
		return nil, in.Err
	}

	amount := opts.Amount
	if in.AmountFromQuery {
		if amount != "" && amount != in.Amount {
			return nil, fmt.Errorf("%w: --amount %s, query %s", errAmountConflict, amount, in.Amount)
		}
		amount = in.Amount
	}

	utxos, err := network.CollectUTXOs(ctx, s.source, s.wallet.Addresses(address.Value))
	if err != nil {
		return nil, err
	}
	balance := tx.BalanceFromUTXOs(utxos)
	rules := sendinput.Rules{MinSendSats: s.cfg.MinSendSats, Decimals: s.cfg.CashDecimals}
	if err := sendinput.ValidateAmount(amount, int64(balance.Sats), rules); err != nil {
		return nil, err
	}

	if in.IsAlias && s.resolver == nil {
		return nil, errNoAliasServer
	}
	dest, err := sendinput.Resolve(ctx, in, s.resolver)
	if err != nil {
		return nil, err
	}
	log.CLI.Debug().Str("input", opts.To).Str("destination", dest).Msg("resolved destination")

	msg, err := s.message(opts)
	if err != nil {
		return nil, err
	}

	return tx.Send(tx.SendRequest{
		UTXOs:       utxos,
		Destination: dest,
		Amount:      amount,
		Message:     msg,
		FeeRate:     s.cfg.FeeRate,
		FloorSats:   uint64(s.cfg.DustSats),
		DustSats:    uint64(s.cfg.ChangeMinSats),
	}, s.wallet)
}

func (s *sender) message(opts options) (*opreturn.MessageParams, error) {
	if opts.Message == "" {
		if opts.EncryptTo != "" {
			return nil, errEncryptNoMsg
		}
		return nil, nil
	}
	if opts.EncryptTo == "" {
		return &opreturn.MessageParams{Message: []byte(opts.Message), MaxPushSize: s.cfg.MaxPushSize}, nil
	}

	raw, err := hex.DecodeString(opts.EncryptTo)
	if err != nil {
		return nil, fmt.Errorf("--encrypt-to: %w", err)
	}
	pub, err := ec.PublicKeyFromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("--encrypt-to: %w", err)
	}
	p, err := msgcrypt.SealMessage([]byte(opts.Message), pub)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// environ returns the RPC variables network.ResolveConfig reads.
func environ() map[string]string {
	env := make(map[string]string, 3)
	for _, k := range []string{network.EnvRPCURL, network.EnvRPCUser, network.EnvRPCPass} {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env
}
