package gconf

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/errors"
)

// ReadStore is a subset of custody.ReadOnlyKVStore.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is a subset of custody.KVStore.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Configuration is implemented by every extension configuration.
type Configuration interface {
	custody.Persistent
	Validate() error
}

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save will Validate the object, before writing it to a special "configuration"
// singleton for that package name.
func Save(db Store, pkg string, src Configuration) error {
	k := key(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", k)
	}
	raw, err := src.MarshalBinary()
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", k)
	}
	if raw == nil {
		raw = []byte{}
	}
	return db.Set(k, raw)
}

// Load reads the configuration of the package into dst. It returns
// ErrNotFound if nothing was saved.
func Load(db ReadStore, pkg string, dst custody.Persistent) error {
	k := key(pkg)
	raw, err := db.Get(k)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", k)
	}
	if err := dst.UnmarshalBinary(raw); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", k)
	}
	return nil
}

// InitConfig will take opts["<pkg>_conf"], parse it into the given
// Configuration object, validate it, and store under the proper key in the
// database. A missing entry saves the conf as given, so callers pass their
// defaults in.
func InitConfig(db Store, opts custody.Options, pkg string, conf Configuration) error {
	if err := opts.ReadOptions(pkg+"_conf", conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}
