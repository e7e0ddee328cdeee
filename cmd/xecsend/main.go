// Command xecsend builds, signs and broadcasts an XEC send from a Cashtab
// mnemonic, resolving ".xec" aliases and BIP21 amounts on the way.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"github.com/cashtaborg/libcashtab-go/internal/log"
)

type options struct {
	DataDir  string `long:"datadir" env:"CASHTAB_DATADIR" description:"data directory holding config and alias cache"`
	Network  string `long:"network" env:"CASHTAB_NETWORK" description:"mainnet, testnet or regtest (overrides config)"`
	LogLevel string `long:"log-level" env:"CASHTAB_LOG_LEVEL" description:"debug, info, warn or error (overrides config)"`
	JSONLog  bool   `long:"json-log" description:"log as JSON"`

	Mnemonic string `long:"mnemonic" env:"CASHTAB_MNEMONIC" description:"BIP39 wallet mnemonic"`

	To        string `long:"to" short:"t" description:"destination address or alias, optionally with ?amount=" required:"true"`
	Amount    string `long:"amount" short:"a" description:"amount in XEC"`
	Message   string `long:"message" short:"m" description:"OP_RETURN message"`
	EncryptTo string `long:"encrypt-to" description:"hex public key to encrypt the message for"`

	RPCURL      string `long:"rpc-url" description:"node JSON-RPC URL"`
	RPCUser     string `long:"rpc-user" description:"node JSON-RPC user"`
	RPCPass     string `long:"rpc-pass" description:"node JSON-RPC password"`
	AliasServer string `long:"alias-server" env:"CASHTAB_ALIAS_SERVER" description:"alias indexer base URL"`

	Import bool `long:"import" description:"import wallet addresses into the node as watch-only first"`
	DryRun bool `long:"dry-run" description:"print the signed transaction instead of broadcasting it"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts options
	if _, err := flags.ParseArgs(&opts, os.Args[1:]); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	if err := run(ctx, opts, os.Stdout); err != nil {
		log.CLI.Error().Err(err).Msg("send failed")
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
