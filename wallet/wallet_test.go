package wallet

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashtaborg/libcashtab-go/address"
	"github.com/cashtaborg/libcashtab-go/tx"
)

// --- Mnemonic tests ---

func TestGenerateMnemonic_12Words(t *testing.T) {
	mnemonic, err := GenerateMnemonic(Mnemonic12Words)
	require.NoError(t, err)

	words := strings.Fields(mnemonic)
	assert.Len(t, words, 12, "12-word mnemonic should have 12 words")
	assert.True(t, ValidateMnemonic(mnemonic), "generated mnemonic should be valid")
}

func TestGenerateMnemonic_24Words(t *testing.T) {
	mnemonic, err := GenerateMnemonic(Mnemonic24Words)
	require.NoError(t, err)

	words := strings.Fields(mnemonic)
	assert.Len(t, words, 24, "24-word mnemonic should have 24 words")
	assert.True(t, ValidateMnemonic(mnemonic), "generated mnemonic should be valid")
}

func TestGenerateMnemonic_InvalidEntropy(t *testing.T) {
	_, err := GenerateMnemonic(64) // invalid
	assert.ErrorIs(t, err, ErrInvalidEntropy)

	_, err = GenerateMnemonic(192) // invalid
	assert.ErrorIs(t, err, ErrInvalidEntropy)
}

func TestGenerateMnemonic_Unique(t *testing.T) {
	m1, err := GenerateMnemonic(Mnemonic12Words)
	require.NoError(t, err)

	m2, err := GenerateMnemonic(Mnemonic12Words)
	require.NoError(t, err)

	assert.NotEqual(t, m1, m2, "two generated mnemonics should be different")
}

func TestValidateMnemonic(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
		valid    bool
	}{
		{"valid 12-word", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about", true},
		{"invalid words", "foo bar baz qux quux corge grault garply waldo fred plugh xyzzy", false},
		{"empty", "", false},
		{"partial", "abandon abandon", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateMnemonic(tt.mnemonic))
		})
	}
}

// --- Seed derivation tests ---

func TestSeedFromMnemonic_Deterministic(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	seed1, err := SeedFromMnemonic(mnemonic, "")
	require.NoError(t, err)

	seed2, err := SeedFromMnemonic(mnemonic, "")
	require.NoError(t, err)

	assert.Equal(t, seed1, seed2, "same mnemonic+passphrase should produce same seed")
	assert.Len(t, seed1, 64, "BIP39 seed should be 64 bytes")
}

func TestSeedFromMnemonic_DifferentPassphrase(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	seed1, err := SeedFromMnemonic(mnemonic, "")
	require.NoError(t, err)

	seed2, err := SeedFromMnemonic(mnemonic, "my secret passphrase")
	require.NoError(t, err)

	assert.NotEqual(t, seed1, seed2, "different passphrases should produce different seeds")
}

func TestSeedFromMnemonic_InvalidMnemonic(t *testing.T) {
	_, err := SeedFromMnemonic("invalid mnemonic words here", "")
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

// --- HD Key Derivation tests ---

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func newTestWallet(t *testing.T) *Wallet {
	t.Helper()
	w, err := FromMnemonic(testMnemonic, &MainNet)
	require.NoError(t, err)
	return w
}

func TestNewWallet(t *testing.T) {
	w := newTestWallet(t)
	assert.NotNil(t, w)
	assert.Equal(t, "mainnet", w.Network().Name)
}

func TestNewWallet_EmptySeed(t *testing.T) {
	_, err := NewWallet([]byte{}, nil)
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestNewWallet_NilNetwork(t *testing.T) {
	seed, err := SeedFromMnemonic(testMnemonic, "")
	require.NoError(t, err)

	w, err := NewWallet(seed, nil)
	require.NoError(t, err)
	assert.Equal(t, "mainnet", w.Network().Name, "nil network should default to mainnet")
}

func TestFromMnemonic_Invalid(t *testing.T) {
	_, err := FromMnemonic("not a mnemonic", nil)
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestWallet_CashtabPaths(t *testing.T) {
	w := newTestWallet(t)

	want := []struct {
		path string
		addr string
	}{
		{"m/44'/1899'/0'/0/0", "ecash:qrwzys2q6xq98vwz0kjn6ulu5m6yljr5fyc909kalg"},
		{"m/44'/145'/0'/0/0", "ecash:qqyx49mu0kkn9ftfj6hje6g2wfer34yfnqdxfumtxd"},
		{"m/44'/245'/0'/0/0", "ecash:qrpkufwnfdzp8cnxzer8d8fkhqmh0zyphqr39raqlx"},
	}
	paths := w.Paths()
	require.Len(t, paths, len(want))
	for i, kp := range paths {
		assert.Equal(t, want[i].path, kp.Path)
		assert.Equal(t, want[i].addr, kp.Address(address.Value, address.MainNet))
	}
	assert.Equal(t, paths[0], w.Primary())
	assert.Equal(t, "03ee1364cd7af3a9ffbbbd886388776a6f92a7b8dd986f6a8578885e4b856f7bfb",
		hex.EncodeToString(w.Primary().PublicKey.Compressed()))
}

func TestWallet_Addresses(t *testing.T) {
	w := newTestWallet(t)
	addrs := w.Addresses(address.Token)
	require.Len(t, addrs, 3)
	for _, a := range addrs {
		assert.True(t, strings.HasPrefix(a, "etoken:"), a)
	}

	testnet, err := FromMnemonic(testMnemonic, &TestNet)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(testnet.Addresses(address.Value)[0], "ectest:"))
}

func TestDeriveKey_Deterministic(t *testing.T) {
	w1 := newTestWallet(t)
	w2 := newTestWallet(t)

	kp1, err := w1.DeriveKey(CoinTypeXEC, InternalChain, 7)
	require.NoError(t, err)
	kp2, err := w2.DeriveKey(CoinTypeXEC, InternalChain, 7)
	require.NoError(t, err)

	assert.Equal(t, "m/44'/1899'/0'/1/7", kp1.Path)
	assert.Equal(t, kp1.PublicKey.Compressed(), kp2.PublicKey.Compressed())
	assert.NotEqual(t, w1.Primary().Hash160, kp1.Hash160)
}

func TestDeriveKey_IndexOutOfRange(t *testing.T) {
	w := newTestWallet(t)
	_, err := w.DeriveKey(CoinTypeXEC, ExternalChain, MaxIndex+1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestWallet_PrivateKeyFor(t *testing.T) {
	w := newTestWallet(t)

	for _, kp := range w.Paths() {
		for _, f := range []address.Family{address.Value, address.Token, address.LegacyCash} {
			priv, err := w.PrivateKeyFor(kp.Address(f, address.MainNet))
			require.NoError(t, err)
			assert.Equal(t, kp.PrivateKey.Serialize(), priv.Serialize())
		}
	}

	_, err := w.PrivateKeyFor("ecash:qq9h6d0a5q65fgywv4ry64x04ep906mdku8f0gxfgx")
	assert.ErrorIs(t, err, ErrUnknownAddress)

	_, err = w.PrivateKeyFor("nope")
	assert.ErrorIs(t, err, address.ErrInvalidAddress)
}

func TestWallet_SignsForTx(t *testing.T) {
	w := newTestWallet(t)
	owner := w.Primary().Address(address.Value, address.MainNet)

	out, err := tx.PayTo("ecash:qq9h6d0a5q65fgywv4ry64x04ep906mdku8f0gxfgx", 1000)
	require.NoError(t, err)
	utxos := []*tx.UTXO{{
		TxID:    "0da6d49cf95d4603958e53360ad1e90bfccef41bfb327d6b2e8a77e242fa2d58",
		Value:   5000,
		Address: owner,
	}}
	hexTx, err := tx.SignAndBuild(utxos, tx.NewBuilder().WithOutputs(out), w)
	require.NoError(t, err)
	assert.Contains(t, hexTx, hex.EncodeToString(w.Primary().PublicKey.Compressed()))
}

// --- Network tests ---

func TestGetNetwork(t *testing.T) {
	tests := []struct {
		name    string
		netName string
		wantErr bool
	}{
		{"mainnet", "mainnet", false},
		{"testnet", "testnet", false},
		{"regtest", "regtest", false},
		{"unknown", "foonet", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := GetNetwork(tt.netName)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidNetwork)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.netName, net.Name)
			}
		})
	}
}

func TestMainNetConfig(t *testing.T) {
	assert.Equal(t, byte(0x00), MainNet.AddressVersion)
	assert.Equal(t, byte(0x05), MainNet.P2SHVersion)
	assert.Equal(t, "ecash", MainNet.CashPrefix)
	assert.Equal(t, address.MainNet, MainNet.AddressNetwork())
}

func TestTestNetConfig(t *testing.T) {
	assert.Equal(t, byte(0x6f), TestNet.AddressVersion)
	assert.Equal(t, uint16(18333), TestNet.DefaultPort)
	assert.Equal(t, address.TestNet, TestNet.AddressNetwork())
	assert.Equal(t, address.TestNet, RegTest.AddressNetwork())
}

func TestLoadCustomNetwork(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "net.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"devnet","cash_prefix":"ectest","rpc_port":19000}`), 0o600))

	net, err := LoadCustomNetwork(path)
	require.NoError(t, err)
	assert.Equal(t, "devnet", net.Name)
	assert.Equal(t, uint16(19000), net.RPCPort)

	require.NoError(t, os.WriteFile(path, []byte(`{"rpc_port":1}`), 0o600))
	_, err = LoadCustomNetwork(path)
	assert.Error(t, err)

	_, err = LoadCustomNetwork(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
