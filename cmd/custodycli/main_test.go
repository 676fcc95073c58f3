package main

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/client"
	custodyd "github.com/custodylabs/custody/cmd/custodyd/app"
	"github.com/custodylabs/custody/commands/server"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const testChainID = "custodycli-test"

// withNode replaces dial with an in process application whose genesis
// funds the given accounts with the given coins.
func withNode(t *testing.T, funds map[string]string) func() {
	t.Helper()
	conf := server.DefaultConfig()
	conf.DBPath = ""
	abciApp, err := custodyd.GenerateApp("", conf, log.NewNopLogger(), nil)
	require.NoError(t, err)

	var accounts bytes.Buffer
	for addr, coins := range funds {
		if accounts.Len() > 0 {
			accounts.WriteString(",")
		}
		fmt.Fprintf(&accounts, `{"address": %q, "coins": %s}`, addr, coins)
	}
	state := fmt.Sprintf(`{"cash": [%s]}`, accounts.String())
	abciApp.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: []byte(state)})
	abciApp.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})
	abciApp.EndBlock(abci.RequestEndBlock{})
	abciApp.Commit()

	conn := client.NewAppConnection(abciApp, testChainID)
	prev := dial
	dial = func(string) *client.Client { return client.NewClient(conn) }
	return func() { dial = prev }
}

// newKey creates a private key file and returns its path and address.
func newKey(t *testing.T) (string, custody.Address) {
	t.Helper()
	dir, err := ioutil.TempDir("", "custodycli")
	require.NoError(t, err)
	path := filepath.Join(dir, "key")
	require.NoError(t, cmdKeygen(nil, ioutil.Discard, []string{"-key", path}))

	key, err := decodePrivateKey(path)
	require.NoError(t, err)
	return path, key.PublicKey().Address()
}

// pipeline runs the commands one after another, feeding the output of each
// into the next one, and returns the final output.
func pipeline(t *testing.T, steps ...step) string {
	t.Helper()
	var in io.Reader = bytes.NewReader(nil)
	var out bytes.Buffer
	for _, s := range steps {
		out = bytes.Buffer{}
		if err := s.cmd(in, &out, s.args); err != nil {
			t.Fatalf("%s: %s", s.name, err)
		}
		in = bytes.NewReader(out.Bytes())
	}
	return out.String()
}

type step struct {
	name string
	cmd  func(io.Reader, io.Writer, []string) error
	args []string
}

func removeKey(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.RemoveAll(filepath.Dir(path)))
}
