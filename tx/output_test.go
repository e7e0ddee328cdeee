package tx

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashtaborg/libcashtab-go/opreturn"
	"github.com/cashtaborg/libcashtab-go/slp"
)

const testDestinationScript = "76a9149846b6b38ff713334ac19fe3cf851a1f98c07b0088ac"

func TestBuildTxOutput_OneToOne(t *testing.T) {
	outs, err := BuildTxOutput(OutputParams{
		Destination:   testDestination,
		SendSats:      600,
		TotalInput:    10000,
		Fee:           455,
		ChangeAddress: testDestination2,
	})
	require.NoError(t, err)
	require.Len(t, outs, 2)
	assert.Equal(t, uint64(600), outs[0].Value)
	assert.Equal(t, testDestinationScript, hex.EncodeToString(outs[0].Script))
	assert.Equal(t, testDestination2, outs[1].Address)
	assert.Equal(t, uint64(10000-600-455), outs[1].Value)
}

func TestBuildTxOutput_ChangeThreshold(t *testing.T) {
	base := OutputParams{
		Destination:   testDestination,
		SendSats:      600,
		Fee:           455,
		ChangeAddress: testDestination2,
	}

	below := base
	below.TotalInput = 600 + 455 + DefaultDustSats - 1
	outs, err := BuildTxOutput(below)
	require.NoError(t, err)
	assert.Len(t, outs, 1)

	at := base
	at.TotalInput = 600 + 455 + DefaultDustSats
	outs, err = BuildTxOutput(at)
	require.NoError(t, err)
	require.Len(t, outs, 2)
	assert.Equal(t, DefaultDustSats, outs[1].Value)

	custom := below
	custom.DustSats = 100
	outs, err = BuildTxOutput(custom)
	require.NoError(t, err)
	assert.Len(t, outs, 2)
}

func TestBuildTxOutput_OneToManyWithMessage(t *testing.T) {
	msg, err := opreturn.BuildMessageScript(opreturn.MessageParams{Message: []byte("hello")})
	require.NoError(t, err)

	dests := []Destination{
		{Address: testDestination3, Sats: 1000},
		{Address: testDestination, Sats: 2000},
	}
	outs, err := BuildTxOutput(OutputParams{
		OneToMany:     true,
		Destinations:  dests,
		TotalInput:    100000,
		Fee:           700,
		ChangeAddress: testDestination2,
		OpReturn:      msg,
	})
	require.NoError(t, err)
	require.Len(t, outs, 4)
	assert.Zero(t, outs[0].Value)
	assert.Equal(t, msg, outs[0].Script)
	assert.Equal(t, testDestination3, outs[1].Address)
	assert.Equal(t, testDestination, outs[2].Address)
	assert.Equal(t, uint64(100000-3000-700), outs[3].Value)
}

func TestBuildTxOutput_Errors(t *testing.T) {
	_, err := BuildTxOutput(OutputParams{Destination: testDestination, TotalInput: 1000})
	assert.ErrorIs(t, err, ErrInvalidTxInputParameter)

	_, err = BuildTxOutput(OutputParams{OneToMany: true, TotalInput: 1000})
	assert.ErrorIs(t, err, ErrInvalidTxInputParameter)

	_, err = BuildTxOutput(OutputParams{
		OneToMany:    true,
		Destinations: []Destination{{Address: testDestination}},
		TotalInput:   1000,
	})
	assert.ErrorIs(t, err, ErrInvalidTxInputParameter)

	_, err = BuildTxOutput(OutputParams{Destination: testDestination, SendSats: 600, TotalInput: 1000, Fee: 455})
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = BuildTxOutput(OutputParams{Destination: testDestination, SendSats: 600, TotalInput: 5000, Fee: 455})
	assert.ErrorIs(t, err, ErrInvalidTxInputParameter, "change without a change address")

	_, err = BuildTxOutput(OutputParams{Destination: "notanaddress", SendSats: 600, TotalInput: 5000})
	assert.Error(t, err)
}

func TestBuildTokenTxOutput_Genesis(t *testing.T) {
	sel, err := BuildTokenTxInput(TokenInputParams{
		Op:    TokenGenesis,
		UTXOs: []*UTXO{testUTXO(testDestination, 1, 700000)},
	})
	require.NoError(t, err)

	outs, err := BuildTokenTxOutput(TokenOutputParams{
		Op:        TokenGenesis,
		Selection: sel,
		Genesis: &slp.GenesisConfig{
			Name:        "ethantest",
			Ticker:      "ETN",
			DocumentURL: "https://cashtab.com/",
			Decimals:    3,
			InitialQty:  decimal.NewFromInt(5000),
		},
		Origin: testDestination,
	})
	require.NoError(t, err)
	require.Len(t, outs, 3)

	want := strings.Join([]string{
		"6a04534c5000", "0101", "0747454e45534953", "0345544e", "09657468616e74657374",
		"1468747470733a2f2f636173687461622e636f6d2f", "4c00", "0103", "4c00", "0800000000004c4b40",
	}, "")
	assert.Equal(t, want, hex.EncodeToString(outs[0].Script))
	assert.Equal(t, DefaultEtokenSats, outs[1].Value)
	assert.Equal(t, testDestination, outs[1].Address)
	assert.Equal(t, sel.RemainderValue, outs[2].Value)
}

func TestBuildTokenTxOutput_GenesisBatonNeedsFunding(t *testing.T) {
	sel, err := BuildTokenTxInput(TokenInputParams{
		Op:    TokenGenesis,
		UTXOs: []*UTXO{testUTXO(testDestination, 1, 700000)},
	})
	require.NoError(t, err)

	_, err = BuildTokenTxOutput(TokenOutputParams{
		Op:        TokenGenesis,
		Selection: sel,
		Genesis: &slp.GenesisConfig{
			Name: "t", Ticker: "T", InitialQty: decimal.NewFromInt(1), MintBatonVout: 2,
		},
		Origin: testDestination,
	})
	assert.ErrorIs(t, err, ErrInvalidTxInputParameter)
}

func TestBuildTokenTxOutput_GenesisBatonPlacement(t *testing.T) {
	sel, err := BuildTokenTxInput(TokenInputParams{
		Op:        TokenGenesis,
		UTXOs:     []*UTXO{testUTXO(testDestination, 1, 700000)},
		MintBaton: true,
	})
	require.NoError(t, err)

	genesis := &slp.GenesisConfig{Name: "t", Ticker: "T", InitialQty: decimal.NewFromInt(1), MintBatonVout: 5}
	_, err = BuildTokenTxOutput(TokenOutputParams{
		Op:        TokenGenesis,
		Selection: sel,
		Genesis:   genesis,
		Origin:    testDestination,
	})
	assert.ErrorIs(t, err, slp.ErrInvalidTokenConfig)

	genesis.MintBatonVout = slp.BatonVout
	outs, err := BuildTokenTxOutput(TokenOutputParams{
		Op:        TokenGenesis,
		Selection: sel,
		Genesis:   genesis,
		Origin:    testDestination,
	})
	require.NoError(t, err)
	require.Greater(t, len(outs), int(slp.BatonVout))

	msg, err := slp.Parse(outs[0].Script)
	require.NoError(t, err)
	baton := outs[msg.Genesis.MintBatonVout]
	assert.Equal(t, uint64(DefaultEtokenSats), baton.Value)
}

func TestBuildTokenTxOutput_Send(t *testing.T) {
	sel, err := BuildTokenTxInput(TokenInputParams{
		Op: TokenSend,
		UTXOs: []*UTXO{
			testTokenUTXO(testDestination2, 1, 400),
			testTokenUTXO(testDestination2, 2, 6500),
			testUTXO(testDestination2, 3, 10000),
		},
		TokenID: testTokenID,
		Amount:  500,
	})
	require.NoError(t, err)

	outs, err := BuildTokenTxOutput(TokenOutputParams{
		Op:        TokenSend,
		Selection: sel,
		TokenID:   testTokenID,
		Amount:    500,
		Recipient: testDestination,
		Origin:    testDestination2,
	})
	require.NoError(t, err)
	require.Len(t, outs, 4)

	msg, err := slp.Parse(outs[0].Script)
	require.NoError(t, err)
	assert.Equal(t, slp.TxSend, msg.Transaction)
	assert.Equal(t, testTokenID, msg.TokenID)
	assert.Equal(t, []uint64{500, 6400}, msg.Quantities)

	assert.Equal(t, testDestination, outs[1].Address)
	assert.Equal(t, testDestination2, outs[2].Address)
	assert.Equal(t, DefaultEtokenSats, outs[2].Value)
	assert.Equal(t, testDestination2, outs[3].Address)
	assert.Equal(t, sel.RemainderValue, outs[3].Value)
}

func TestBuildTokenTxOutput_Burn(t *testing.T) {
	sel, err := BuildTokenTxInput(TokenInputParams{
		Op: TokenBurn,
		UTXOs: []*UTXO{
			testTokenUTXO(testDestination, 1, 10000),
			testUTXO(testDestination, 2, 10000),
		},
		TokenID: testTokenID,
		Amount:  7000,
	})
	require.NoError(t, err)

	outs, err := BuildTokenTxOutput(TokenOutputParams{
		Op:        TokenBurn,
		Selection: sel,
		TokenID:   testTokenID,
		Amount:    7000,
		Origin:    testDestination,
	})
	require.NoError(t, err)
	require.Len(t, outs, 3)

	msg, err := slp.Parse(outs[0].Script)
	require.NoError(t, err)
	assert.Equal(t, []uint64{3000}, msg.Quantities)
	assert.Equal(t, testDestination, outs[1].Address)
}

func TestBuildTokenTxOutput_Errors(t *testing.T) {
	_, err := BuildTokenTxOutput(TokenOutputParams{Op: TokenSend, Origin: testDestination})
	assert.ErrorIs(t, err, ErrInvalidTxInputParameter)

	sel := &TokenInputSelection{DustOutputs: 1}
	_, err = BuildTokenTxOutput(TokenOutputParams{Op: TokenSend, Selection: sel, Origin: testDestination})
	assert.ErrorIs(t, err, slp.ErrInvalidSendParameter)
}
