package store

import (
	"fmt"
	"testing"

	"github.com/custodylabs/custody"
	"github.com/stretchr/testify/require"
)

// TestSuite runs the same KVStore contract checks against any
// CacheableKVStore. It is shared between the btree cache tests and the
// iavl adapter tests.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store and a function to release it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite builds a suite for stores created by constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{
		makeBase: constructor,
	}
}

// GetSet checks writes are visible in the layer they happen in, and only
// reach the parent on Write.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("vault"), []byte("lamports")
	s.AssertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	s.AssertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	k2, v2 := []byte("escrow"), []byte("offer")
	require.NoError(t, cache.Set(k2, v2))
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	require.NoError(t, cache.Write())
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k2, v2, true)

	// a discarded cache leaves no trace
	k3, v3 := []byte("state"), []byte("bump")
	dropped := base.CacheWrap()
	require.NoError(t, dropped.Set(k3, v3))
	require.NoError(t, dropped.Delete(k))
	dropped.Discard()
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k3, nil, false)

	// a written delete removes the key
	del := base.CacheWrap()
	require.NoError(t, del.Delete(k))
	require.NoError(t, del.Write())
	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
}

// CacheConflicts checks overwrites and deletes of values held by the parent.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	ks := seqKeys("key", 4)
	vs := seqKeys("val", 4)

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			childOps:      []Op{SetOp(ks[1], vs[0]), SetOp(ks[3], vs[3]), DelOp(ks[2])},
			parentQueries: []Model{custody.Pair(ks[1], vs[1]), custody.Pair(ks[2], vs[2]), custody.Pair(ks[3], nil)},
			childQueries:  []Model{custody.Pair(ks[1], vs[0]), custody.Pair(ks[2], nil), custody.Pair(ks[3], vs[3])},
		},
		"delete then set again": {
			parentOps:     []Op{SetOp(ks[0], vs[0])},
			childOps:      []Op{DelOp(ks[0]), SetOp(ks[0], vs[2])},
			parentQueries: []Model{custody.Pair(ks[0], vs[0])},
			childQueries:  []Model{custody.Pair(ks[0], vs[2])},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				require.NoError(t, op.Apply(parent))
			}
			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				require.NoError(t, op.Apply(child))
			}

			for _, q := range tc.parentQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			require.NoError(t, child.Write())
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// Iteration checks ranges over a cache merged with its parent, in both
// directions, skipping deleted entries.
func (s *TestSuite) Iteration(t *testing.T) {
	ks := seqKeys("k", 8)
	pair := func(i int, val string) Model { return custody.Pair(ks[i], []byte(val)) }

	cases := map[string]struct {
		parentOps []Op
		childOps  []Op
		start     []byte
		end       []byte
		reverse   bool
		want      []Model
	}{
		"child only": {
			childOps: []Op{SetOp(ks[2], []byte("c")), SetOp(ks[0], []byte("a"))},
			want:     []Model{pair(0, "a"), pair(2, "c")},
		},
		"parent only, reversed": {
			parentOps: []Op{SetOp(ks[1], []byte("b")), SetOp(ks[3], []byte("d"))},
			reverse:   true,
			want:      []Model{pair(3, "d"), pair(1, "b")},
		},
		"merged with overwrite and delete": {
			parentOps: []Op{SetOp(ks[1], []byte("b")), SetOp(ks[3], []byte("d")), SetOp(ks[5], []byte("f"))},
			childOps:  []Op{SetOp(ks[3], []byte("D")), DelOp(ks[5]), SetOp(ks[4], []byte("e"))},
			want:      []Model{pair(1, "b"), pair(3, "D"), pair(4, "e")},
		},
		"merged reversed": {
			parentOps: []Op{SetOp(ks[1], []byte("b")), SetOp(ks[3], []byte("d"))},
			childOps:  []Op{SetOp(ks[2], []byte("c")), DelOp(ks[1])},
			reverse:   true,
			want:      []Model{pair(3, "d"), pair(2, "c")},
		},
		"bounded range": {
			parentOps: []Op{SetOp(ks[1], []byte("b")), SetOp(ks[3], []byte("d")), SetOp(ks[6], []byte("g"))},
			childOps:  []Op{SetOp(ks[4], []byte("e"))},
			start:     ks[2],
			end:       ks[6],
			want:      []Model{pair(3, "d"), pair(4, "e")},
		},
		"bounded range reversed": {
			parentOps: []Op{SetOp(ks[1], []byte("b")), SetOp(ks[3], []byte("d")), SetOp(ks[6], []byte("g"))},
			childOps:  []Op{SetOp(ks[4], []byte("e"))},
			start:     ks[3],
			end:       ks[6],
			reverse:   true,
			want:      []Model{pair(4, "e"), pair(3, "d")},
		},
		"everything deleted": {
			parentOps: []Op{SetOp(ks[1], []byte("b"))},
			childOps:  []Op{DelOp(ks[1]), DelOp(ks[2])},
			want:      nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				require.NoError(t, op.Apply(parent))
			}
			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				require.NoError(t, op.Apply(child))
			}

			var (
				iter Iterator
				err  error
			)
			if tc.reverse {
				iter, err = child.ReverseIterator(tc.start, tc.end)
			} else {
				iter, err = child.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			defer iter.Close()

			var got []Model
			for ; iter.Valid(); err = iter.Next() {
				require.NoError(t, err)
				got = append(got, custody.Pair(iter.Key(), iter.Value()))
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

// AssertGetHas checks both Get and Has agree with the expectation.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	require.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	require.Equal(t, has, exists)
}

// seqKeys returns count keys sorting in creation order.
func seqKeys(prefix string, count int) [][]byte {
	res := make([][]byte, count)
	for i := range res {
		res[i] = []byte(fmt.Sprintf("%s:%03d", prefix, i))
	}
	return res
}
