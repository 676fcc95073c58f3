package orm

import (
	"reflect"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
//
// This is the same interface as CloneableData. Using the right type names
// provides an easier to read API.
type Model interface {
	custody.Persistent
	Validate() error
	Copy() CloneableData
}

// ModelBucket is implemented by buckets that operates on Models rather than
// Objects.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db custody.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity is stored under the key, ErrNotFound
	// otherwise.
	Has(db custody.ReadOnlyKVStore, key []byte) error

	// ByIndex returns the keys and entities referenced by the index key.
	ByIndex(db custody.ReadOnlyKVStore, indexName string, key []byte) ([][]byte, []Model, error)

	// Put saves given model in the database.
	Put(db custody.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db custody.KVStore, key []byte) error

	// Register registers the bucket and its indexes for queries.
	Register(name string, r custody.QueryRouter)
}

// NewModelBucket returns a ModelBucket instance backed by a bucket.
func NewModelBucket(b Bucket) ModelBucket {
	return &modelBucket{
		b: b,
	}
}

type modelBucket struct {
	b Bucket
}

func (mb *modelBucket) One(db custody.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	return assign(obj.Value(), dest)
}

func (mb *modelBucket) Has(db custody.ReadOnlyKVStore, key []byte) error {
	ok, err := mb.b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "no %s entity %X", mb.b.Name(), key)
	}
	return nil
}

func (mb *modelBucket) ByIndex(db custody.ReadOnlyKVStore, indexName string, key []byte) ([][]byte, []Model, error) {
	objs, err := mb.b.GetIndexed(db, indexName, key)
	if err != nil {
		return nil, nil, err
	}
	keys := make([][]byte, 0, len(objs))
	models := make([]Model, 0, len(objs))
	for _, obj := range objs {
		if obj == nil {
			continue
		}
		m, ok := obj.Value().(Model)
		if !ok {
			return nil, nil, errors.Wrapf(errors.ErrType, "%T is not a model", obj.Value())
		}
		keys = append(keys, obj.Key())
		models = append(models, m)
	}
	return keys, models, nil
}

func (mb *modelBucket) Put(db custody.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	obj := NewSimpleObj(key, m)
	if err := mb.b.Save(db, obj); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db custody.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) Register(name string, r custody.QueryRouter) {
	mb.b.Register(name, r)
}

func assign(res custody.Persistent, dest Model) error {
	if !reflect.TypeOf(res).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", res, dest)
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(res).Elem())
	return nil
}

var _ ModelBucket = (*modelBucket)(nil)
