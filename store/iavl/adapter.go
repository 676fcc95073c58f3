package iavl

import (
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

const (
	// DefaultCacheSize is the number of tree nodes kept in memory.
	DefaultCacheSize = 10000
	// DefaultHistory is the number of committed versions kept on disk.
	DefaultHistory = 2
)

// CommitStore manages an iavl committed state
type CommitStore struct {
	tree       *iavl.MutableTree
	numHistory int64
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with disk backing under
// path/name.db. An empty path keeps everything in memory.
func NewCommitStore(path, name string) (CommitStore, error) {
	var db dbm.DB = dbm.NewMemDB()
	if path != "" {
		ldb, err := dbm.NewGoLevelDB(name, path)
		if err != nil {
			return CommitStore{}, errors.Wrapf(errors.ErrDatabase, "open %s/%s: %s", path, name, err)
		}
		db = ldb
	}
	tree := iavl.NewMutableTree(db, DefaultCacheSize)
	s := CommitStore{tree: tree, numHistory: DefaultHistory}
	if err := s.LoadLatestVersion(); err != nil {
		return CommitStore{}, err
	}
	return s, nil
}

// Get returns the value at last committed state
// returns nil iff key doesn't exist. Panics on nil key.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	version := s.tree.Version()
	_, val := s.tree.GetVersioned(key, version)
	return val, nil
}

// Commit the next version to disk, and returns info
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}

	// prune the history we no longer need
	if toDel := version - s.numHistory; toDel > 0 {
		if err := s.tree.DeleteVersion(toDel); err != nil {
			return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "prune version %d: %s", toDel, err)
		}
	}

	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap wraps a btree around the working tree. Writing the cache
// updates the working tree, which is persisted on the next Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// Adapter returns a wrapper around the working tree that implements
// KVStore. Changes are only persisted on Commit.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return adapter{tree: s.tree}
}

// adapter converts the working iavl tree into a KVStore
type adapter struct {
	tree *iavl.MutableTree
}

var _ store.CacheableKVStore = adapter{}

// Get returns nil iff key doesn't exist. Panics on nil key.
func (a adapter) Get(key []byte) ([]byte, error) {
	_, val := a.tree.Get(key)
	return val, nil
}

// Has checks if a key exists. Panics on nil key.
func (a adapter) Has(key []byte) (bool, error) {
	return a.tree.Has(key), nil
}

// Set adds a new value
func (a adapter) Set(key, value []byte) error {
	a.tree.Set(key, value)
	return nil
}

// Delete removes from the tree
func (a adapter) Delete(key []byte) error {
	a.tree.Remove(key)
	return nil
}

// NewBatch returns a batch that can write multiple ops atomically
func (a adapter) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(a)
}

// CacheWrap wraps us once again, with btree
func (a adapter) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(a, a.NewBatch(), nil)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
// CONTRACT: No writes may happen within a domain while an iterator exists over it.
func (a adapter) Iterator(start, end []byte) (store.Iterator, error) {
	return a.collect(start, end, true), nil
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
// CONTRACT: No writes may happen within a domain while an iterator exists over it.
func (a adapter) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return a.collect(start, end, false), nil
}

func (a adapter) collect(start, end []byte, ascending bool) store.Iterator {
	var res []store.Model
	a.tree.IterateRange(start, end, ascending, func(key []byte, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(res)
}
