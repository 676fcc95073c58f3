package orm

import (
	"github.com/custodylabs/custody"
)

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr custody.Iterator) ([]custody.Model, error) {
	defer itr.Close()

	var res []custody.Model
	var err error
	for ; err == nil && itr.Valid(); err = itr.Next() {
		res = append(res, custody.Pair(itr.Key(), itr.Value()))
	}
	return res, err
}

// queryPrefix returns all key/value pairs stored under the prefix
func queryPrefix(db custody.ReadOnlyKVStore, prefix []byte) ([]custody.Model, error) {
	itr, err := db.Iterator(prefix, prefixRangeEnd(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// prefixRangeEnd returns the smallest key above all keys
// starting with the prefix, or nil if there is none.
func prefixRangeEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
