package custody

import (
	"encoding/json"

	"github.com/custodylabs/custody/errors"
)

// Handler is a core engine that can process a few specific messages
// This could represent "coin transfer", or "deposit into a vault"
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like authentication, or atomic execution, to many Handlers
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(path string, h Handler)
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse %q options: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializer lets you initialize many extensions with one function
type ChainInitializer []Initializer

var _ Initializer = ChainInitializer{}

// ChainInitializers accepts initializers and combines them into one
func ChainInitializers(inits ...Initializer) ChainInitializer {
	return ChainInitializer(inits)
}

// FromGenesis will pass opts to all Initializers in the list,
// aborts at first error.
func (c ChainInitializer) FromGenesis(opts Options, kv KVStore) error {
	for _, i := range c {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
