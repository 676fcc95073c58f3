package cash

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/coin"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/gconf"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use custody.Address, so address in hex, not base64
type GenesisAccount struct {
	Address custody.Address `json:"address"`
	Coins   coin.Coins      `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database. The configuration is read from the
// "cash_conf" entry.
func (Initializer) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	conf := Configuration{Native: DefaultNative}
	if err := gconf.InitConfig(kv, opts, confPkg, &conf); err != nil {
		return err
	}

	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		wallet, err := WalletWith(acct.Address, acct.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := bucket.Save(kv, wallet); err != nil {
			return err
		}
	}
	return nil
}
