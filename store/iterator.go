package store

import (
	"bytes"
	"sync"

	"github.com/custodylabs/custody/errors"
	"github.com/google/btree"
)

///////////////////////////////////////////////////////
// From Items to Iterator

type btreeIter struct {
	data    btree.Item
	hasMore bool
	read    <-chan btree.Item
	stop    chan<- struct{}
	once    sync.Once
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

func newBtreeIter(walk func(btree.ItemIterator)) *btreeIter {
	read := make(chan btree.Item)
	// ensure we never block when we call close()
	stop := make(chan struct{}, 1)
	iter := &btreeIter{
		read: read,
		stop: stop,
	}

	insert := func(item btree.Item) bool {
		select {
		case read <- item:
			return true
		case <-stop:
			return false
		}
	}

	go func() {
		defer close(read)
		walk(insert)
	}()

	iter.next()
	return iter
}

// ascendBtree iterates over [start, end) in ascending order,
// nil meaning unbounded.
func ascendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	return newBtreeIter(func(insert btree.ItemIterator) {
		switch {
		case start == nil && end == nil:
			bt.Ascend(insert)
		case start == nil:
			bt.AscendLessThan(bkey{end}, insert)
		case end == nil:
			bt.AscendGreaterOrEqual(bkey{start}, insert)
		default:
			bt.AscendRange(bkey{start}, bkey{end}, insert)
		}
	})
}

// descendBtree iterates over [start, end) in descending order,
// nil meaning unbounded.
func descendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	return newBtreeIter(func(insert btree.ItemIterator) {
		visit := func(item btree.Item) bool {
			key := item.(keyer).Key()
			if end != nil && bytes.Compare(key, end) >= 0 {
				return true
			}
			if start != nil && bytes.Compare(key, start) < 0 {
				return false
			}
			return insert(item)
		}
		if end == nil {
			bt.Descend(visit)
		} else {
			bt.DescendLessOrEqual(bkey{end}, visit)
		}
	})
}

func (b *btreeIter) wrap(parent Iterator, ascending bool) (*itemIter, error) {
	iter := &itemIter{
		wrap:      b,
		parent:    parent,
		ascending: ascending,
	}
	if err := iter.skipAllDeleted(); err != nil {
		iter.Close()
		return nil, err
	}
	return iter, nil
}

func (b *btreeIter) next() {
	b.data, b.hasMore = <-b.read
}

func (b *btreeIter) close() {
	b.once.Do(func() {
		b.stop <- struct{}{}
	})
}

// get requires this is valid, gets what we are pointing at
func (b *btreeIter) get() keyer {
	return b.data.(keyer)
}

func (b *btreeIter) valid() bool {
	return b.hasMore
}

// itemIter merges the cached items with the iterator of the
// store below, hiding deleted entries.
type itemIter struct {
	wrap      *btreeIter
	parent    Iterator
	ascending bool
}

var _ Iterator = (*itemIter)(nil)

// Valid implements Iterator and returns true iff it can be read
func (i *itemIter) Valid() bool {
	return i.wrap.valid() || i.parentValid()
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
func (i *itemIter) Next() error {
	// advance either us, parent, or both
	switch i.firstKey() {
	case us:
		i.wrap.next()
	case both:
		i.wrap.next()
		if err := i.parent.Next(); err != nil {
			return err
		}
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		return errors.Wrap(errors.ErrDatabase, "advanced past the end")
	}

	// keep advancing over all deleted entries
	return i.skipAllDeleted()
}

// Key returns the key of the cursor.
func (i *itemIter) Key() (key []byte) {
	switch i.firstKey() {
	case us, both:
		return i.wrap.get().Key()
	case parent:
		return i.parent.Key()
	default:
		panic("advanced past the end")
	}
}

// Value returns the value of the cursor.
func (i *itemIter) Value() (value []byte) {
	switch i.firstKey() {
	case us, both:
		return i.wrap.get().(setItem).value
	case parent:
		return i.parent.Value()
	default:
		panic("advanced past the end")
	}
}

// Close releases the Iterator.
func (i *itemIter) Close() {
	i.parent.Close()
	i.wrap.close()
}

// skipAllDeleted loops and skips any number of deleted items
func (i *itemIter) skipAllDeleted() error {
	for {
		more, err := i.skipDeleted()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// skipDeleted jumps over all elements we can safely fast forward
// return true if skipped, so we can skip again
func (i *itemIter) skipDeleted() (bool, error) {
	src := i.firstKey()
	if src != us && src != both {
		return false, nil
	}
	if _, ok := i.wrap.get().(deletedItem); !ok {
		return false, nil
	}
	i.wrap.next()
	// if parent had the same key, advance parent as well
	if src == both {
		if err := i.parent.Next(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// firstKey selects the iterator that comes first in iteration order
func (i *itemIter) firstKey() source {
	// if only one or none is valid, it is clear which to use
	if !i.parentValid() {
		if !i.wrap.valid() {
			return none
		}
		return us
	} else if !i.wrap.valid() {
		return parent
	}

	cmp := bytes.Compare(i.parent.Key(), i.wrap.get().Key())
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

// makes sure the parent is non-nil before checking if it is valid
func (i *itemIter) parentValid() bool {
	return (i.parent != nil) && i.parent.Valid()
}
