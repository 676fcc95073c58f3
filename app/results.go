package app

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/errors"
	"github.com/gogo/protobuf/proto"
)

// ResultSet holds either the keys or the values of a query response.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

// MarshalBinary serializes the result set.
func (m *ResultSet) MarshalBinary() ([]byte, error) {
	bz, err := proto.Marshal(m)
	return bz, errors.Wrap(err, "marshal result set")
}

// UnmarshalBinary deserializes the result set.
func (m *ResultSet) UnmarshalBinary(bz []byte) error {
	return errors.Wrap(proto.Unmarshal(bz, m), "unmarshal result set")
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []custody.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []custody.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]custody.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrap(errors.ErrState, "mismatched result set size")
	}
	mods := make([]custody.Model, len(kref))
	for i := range mods {
		mods[i] = custody.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o custody.Persistent) error {
	var res ResultSet
	if err := res.UnmarshalBinary(bz); err != nil {
		return err
	}
	// no results, do nothing
	if len(res.Results) == 0 {
		return nil
	}
	return o.UnmarshalBinary(res.Results[0])
}
