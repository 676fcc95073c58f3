package cash

import (
	"github.com/custodylabs/custody/coin"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/gconf"
)

// DefaultNative is the native ticker used when genesis sets none.
const DefaultNative = "SOL"

const confPkg = "cash"

// Validate requires a well formed native ticker.
func (c *Configuration) Validate() error {
	if !coin.IsCC(c.Native) {
		return errors.Wrapf(errors.ErrCurrency, "native ticker %q", c.Native)
	}
	return nil
}

// NativeTicker returns the configured native ticker. It panics if the
// configuration was never initialized, as the application cannot run
// without it.
func NativeTicker(db gconf.ReadStore) string {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		panic(errors.Wrap(err, "load cash configuration"))
	}
	return conf.Native
}
