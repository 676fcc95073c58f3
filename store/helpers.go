package store

import (
	"github.com/custodylabs/custody/errors"
)

////////////////////////////////////////////////
// Slice -> Iterator

// SliceIterator wraps an Iterator over a slice of models
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator creates a new Iterator over this slice
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{
		data: data,
	}
}

// Valid implements Iterator and returns true iff it can be read
func (s *SliceIterator) Valid() bool {
	return s.idx < len(s.data)
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
func (s *SliceIterator) Next() error {
	if err := s.assertValid(); err != nil {
		return err
	}
	s.idx++
	return nil
}

func (s *SliceIterator) assertValid() error {
	if s.idx >= len(s.data) {
		return errors.Wrap(errors.ErrDatabase, "passed end of slice")
	}
	return nil
}

// Key returns the key of the cursor.
func (s *SliceIterator) Key() (key []byte) {
	if err := s.assertValid(); err != nil {
		panic(err)
	}
	return s.data[s.idx].Key
}

// Value returns the value of the cursor.
func (s *SliceIterator) Value() (value []byte) {
	if err := s.assertValid(); err != nil {
		panic(err)
	}
	return s.data[s.idx].Value
}

// Close releases the Iterator.
func (s *SliceIterator) Close() {
	s.data = nil
}

/////////////////////////////////////////////////////
// Empty KVStore

// EmptyKVStore never holds any data, used as a base layer to test caching
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

// Get always returns nil
func (e EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }

// Has always returns false
func (e EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }

// Set is a noop
func (e EmptyKVStore) Set(key, value []byte) error { return nil }

// Delete is a noop
func (e EmptyKVStore) Delete(key []byte) error { return nil }

// Iterator is always empty
func (e EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// ReverseIterator is always empty
func (e EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// NewBatch returns a batch that can write to this tree later
func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}

////////////////////////////////////////////////////
// Non-atomic batch (dummy implementation)

type opKind int32

const (
	setKind opKind = iota + 1
	delKind
)

// Op is either set or delete
type Op struct {
	kind  opKind
	key   []byte
	value []byte // only for set
}

// Apply performs the stored operation on the given store.
func (o Op) Apply(out SetDeleter) error {
	switch o.kind {
	case setKind:
		return out.Set(o.key, o.value)
	case delKind:
		return out.Delete(o.key)
	default:
		return errors.Wrapf(errors.ErrDatabase, "unknown kind: %d", o.kind)
	}
}

// IsSetOp returns true if the operation is a set.
func (o Op) IsSetOp() bool {
	return o.kind == setKind
}

// Key returns the key the operation works on.
func (o Op) Key() []byte {
	return o.key
}

// Value returns the value of a set, or nil for a delete.
func (o Op) Value() []byte {
	return o.value
}

// SetOp is a helper to create a set operation
func SetOp(key, value []byte) Op {
	return Op{
		kind:  setKind,
		key:   key,
		value: value,
	}
}

// DelOp is a helper to create a del operation
func DelOp(key []byte) Op {
	return Op{
		kind: delKind,
		key:  key,
	}
}

// NonAtomicBatch just piles up ops and executes them later
// on the underlying store. Can be used when there is no better
// option (for in-memory stores).
//
// NOTE: Never use this for KVStores that are persistent
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch creates an empty batch to be later written
// to the KVStore
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{
		out: out,
	}
}

// Set adds a set operation to the batch
func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

// Delete adds a delete operation to the batch
func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write writes all the ops to the underlying store and resets
func (b *NonAtomicBatch) Write() error {
	for _, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}

// ShowOps is intended for testing only
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}
