package orm

import (
	"github.com/custodylabs/custody/errors"
	"github.com/gogo/protobuf/proto"
)

// counter is a minimal model used by the tests of this package
type counter struct {
	Owner []byte `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Count int64  `protobuf:"varint,2,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *counter) Reset()         { *m = counter{} }
func (m *counter) String() string { return proto.CompactTextString(m) }
func (*counter) ProtoMessage()    {}

func (m *counter) MarshalBinary() ([]byte, error) { return proto.Marshal(m) }

func (m *counter) UnmarshalBinary(bz []byte) error { return proto.Unmarshal(bz, m) }

func (m *counter) Validate() error {
	if m.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

func (m *counter) Copy() CloneableData {
	return &counter{Owner: append([]byte(nil), m.Owner...), Count: m.Count}
}

func ownerIndex(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return c.Owner, nil
}

func newCounterBucket(unique bool) Bucket {
	return NewBucket("cnts", NewSimpleObj(nil, &counter{})).
		WithIndex("owner", ownerIndex, unique)
}
