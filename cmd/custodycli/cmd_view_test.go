package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/custodylabs/custody/cmd/custodyd/app"
	"github.com/custodylabs/custody/coin"
	"github.com/custodylabs/custody/crypto"
	"github.com/custodylabs/custody/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendTokensAndView(t *testing.T) {
	src := crypto.GenPrivKeyEd25519().PublicKey().Address()
	dst := crypto.GenPrivKeyEd25519().PublicKey().Address()

	var built bytes.Buffer
	require.NoError(t, cmdSendTokens(nil, &built, []string{
		"-src", src.String(),
		"-dst", dst.String(),
		"-amount", "120 TOKA",
		"-memo", "rent",
	}))

	tx, _, err := readTx(bytes.NewReader(built.Bytes()))
	require.NoError(t, err)
	require.NotNil(t, tx.SendMsg)
	assert.Equal(t, coin.NewCoinp(120, "TOKA"), tx.SendMsg.Amount)

	var view bytes.Buffer
	require.NoError(t, cmdTransactionView(&built, &view, nil))
	var decoded app.Tx
	require.NoError(t, json.Unmarshal(view.Bytes(), &decoded))
	assert.Equal(t, "rent", decoded.SendMsg.Memo)
	assert.Equal(t, src, decoded.SendMsg.Source)
}

func TestReadTxErrors(t *testing.T) {
	cases := map[string][]byte{
		"empty":          nil,
		"short header":   {0, 0},
		"truncated body": {0, 0, 0, 9, 1, 2},
		"too large":      {0xff, 0xff, 0xff, 0xff},
	}
	for testName, raw := range cases {
		t.Run(testName, func(t *testing.T) {
			_, _, err := readTx(bytes.NewReader(raw))
			assert.Error(t, err)
		})
	}
}

func TestWriteReadTx(t *testing.T) {
	tx := &app.Tx{SendMsg: &cash.SendMsg{Memo: "a"}}
	var buf bytes.Buffer
	n, err := writeTx(&buf, tx)
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), n)

	got, m, err := readTx(&buf)
	require.NoError(t, err)
	assert.Equal(t, n, m)
	assert.Equal(t, "a", got.SendMsg.Memo)
}
