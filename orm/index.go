package orm

import (
	"bytes"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/errors"
)

const idxPrefix = "_i."

// maxIndexKey keeps the length prefix of an index key in one byte
const maxIndexKey = 255

// Indexer calculates the secondary index key for a given object.
// A nil key means the object is not indexed.
type Indexer func(Object) ([]byte, error)

// Index is a secondary index over the objects of a bucket.
type Index interface {
	custody.QueryHandler

	// Name returns the name of this index.
	Name() string

	// Update updates the index. It should be called when any of the bucket
	// entities has changed in the store.
	//
	// prev == nil means insert
	// save == nil means delete
	Update(db custody.KVStore, prev Object, save Object) error

	// GetAt returns the primary keys of all objects indexed under key.
	GetAt(db custody.ReadOnlyKVStore, key []byte) ([][]byte, error)
}

// index stores one entry per indexed object:
//
//   _i.<name>:<len(key)><key><primary key> => <primary key>
//
// The length prefix keeps keys of different sizes from overlapping,
// so all references of one index key are a single prefix scan.
type index struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
	refKey func([]byte) []byte
}

var _ Index = index{}

// NewIndex constructs an index.
// Indexer calculates the index for an object
// unique enforces a unique constraint on the index
// refKey calculates the absolute dbkey for a ref
func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	return index{
		name:   name,
		id:     append([]byte(idxPrefix), []byte(name+":")...),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

func (i index) Name() string {
	return i.name
}

// prefix returns the db prefix holding all refs for the index key
func (i index) prefix(key []byte) []byte {
	out := make([]byte, 0, len(i.id)+1+len(key))
	out = append(out, i.id...)
	out = append(out, byte(len(key)))
	return append(out, key...)
}

func (i index) entry(key, ref []byte) []byte {
	p := i.prefix(key)
	out := make([]byte, len(p)+len(ref))
	copy(out, p)
	copy(out[len(p):], ref)
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
func (i index) Update(db custody.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev != nil && save != nil && !bytes.Equal(prev.Key(), save.Key()):
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}

	var oldKey, newKey []byte
	var err error
	if prev != nil {
		if oldKey, err = i.index(prev); err != nil {
			return err
		}
	}
	if save != nil {
		if newKey, err = i.index(save); err != nil {
			return err
		}
	}
	if prev != nil && save != nil && bytes.Equal(oldKey, newKey) {
		return nil
	}

	if oldKey != nil {
		if err := db.Delete(i.entry(oldKey, prev.Key())); err != nil {
			return err
		}
	}
	if newKey != nil {
		return i.insert(db, newKey, save.Key())
	}
	return nil
}

func (i index) insert(db custody.KVStore, key, ref []byte) error {
	if len(key) > maxIndexKey {
		return errors.Wrapf(errors.ErrInput, "index key too long: %d", len(key))
	}
	if i.unique {
		refs, err := i.GetAt(db, key)
		if err != nil {
			return err
		}
		if len(refs) > 0 {
			return errors.Wrapf(ErrUniqueConstraint, "%s: %X", i.name, key)
		}
	}
	return db.Set(i.entry(key, ref), ref)
}

// GetAt returns the primary keys referenced by the index key
func (i index) GetAt(db custody.ReadOnlyKVStore, key []byte) ([][]byte, error) {
	models, err := queryPrefix(db, i.prefix(key))
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	refs := make([][]byte, len(models))
	for n, m := range models {
		refs[n] = m.Value
	}
	return refs, nil
}

// Query handles queries from the QueryRouter. The result holds the
// referenced objects, not the index entries.
func (i index) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	if mod != custody.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	refs, err := i.GetAt(db, data)
	if err != nil {
		return nil, err
	}
	var res []custody.Model
	for _, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			continue
		}
		res = append(res, custody.Pair(key, value))
	}
	return res, nil
}
