package app

import (
	"encoding/json"
	"fmt"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/coin"
	"github.com/custodylabs/custody/commands/server"
	"github.com/custodylabs/custody/crypto"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/x/cash"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// genesisSupply is the amount of native lamports given to the dev account.
const genesisSupply = 1000000000000000

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode
//
// You can set the native ticker as the first argument and the funded
// address as the second one. Without an address a new key is generated
// and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := cash.DefaultNative
	if len(args) > 0 {
		ticker = args[0]
		if !coin.IsCC(ticker) {
			return nil, errors.Wrapf(errors.ErrCurrency, "invalid ticker %s", ticker)
		}
	}

	var addr custody.Address
	if len(args) > 1 {
		a, err := custody.ParseAddress(args[1])
		if err != nil {
			return nil, err
		}
		addr = a
	} else {
		// if no address provided, auto-generate one
		// and print out the keys
		a, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = a
		fmt.Println(keys)
	}

	state := map[string]interface{}{
		"cash": []cash.GenesisAccount{
			{
				Address: addr,
				Coins:   coin.Coins{coin.NewCoinp(genesisSupply, ticker)},
			},
		},
		"cash_conf": cash.Configuration{Native: ticker},
	}
	return json.MarshalIndent(state, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, conf server.Config, logger log.Logger, reg prometheus.Registerer) (abci.Application, error) {
	stack, err := Stack(reg)
	if err != nil {
		return nil, err
	}
	application, err := Application("custody", stack, TxDecoder, conf.Database(home), conf.Debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(custody.ChainInitializers(
		cash.Initializer{},
	))

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}

type output struct {
	Address custody.Address    `json:"address"`
	Pubkey  *crypto.PublicKey  `json:"pub_key"`
	Secret  *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
func GenerateCoinKey() (custody.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Address: addr, Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return addr, string(keys), nil
}
