package escrow

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/errors"
	"github.com/gogo/protobuf/proto"
)

// MakeMsg opens an escrow offering Deposit of MintA for Receive of MintB.
type MakeMsg struct {
	Maker   custody.Address `protobuf:"bytes,1,opt,name=maker,proto3" json:"maker,omitempty"`
	Seed    uint64          `protobuf:"varint,2,opt,name=seed,proto3" json:"seed,omitempty"`
	Deposit uint64          `protobuf:"varint,3,opt,name=deposit,proto3" json:"deposit,omitempty"`
	Receive uint64          `protobuf:"varint,4,opt,name=receive,proto3" json:"receive,omitempty"`
	MintA   string          `protobuf:"bytes,5,opt,name=mint_a,json=mintA,proto3" json:"mint_a,omitempty"`
	MintB   string          `protobuf:"bytes,6,opt,name=mint_b,json=mintB,proto3" json:"mint_b,omitempty"`
}

func (m *MakeMsg) Reset()         { *m = MakeMsg{} }
func (m *MakeMsg) String() string { return proto.CompactTextString(m) }
func (*MakeMsg) ProtoMessage()    {}

func (m *MakeMsg) MarshalBinary() ([]byte, error) {
	bz, err := proto.Marshal(m)
	return bz, errors.Wrap(err, "marshal make")
}

func (m *MakeMsg) UnmarshalBinary(bz []byte) error {
	return errors.Wrap(proto.Unmarshal(bz, m), "unmarshal make")
}

// TakeMsg settles the escrow of Maker with Seed. The declared mints must
// match the ones stored in the escrow.
type TakeMsg struct {
	Taker custody.Address `protobuf:"bytes,1,opt,name=taker,proto3" json:"taker,omitempty"`
	Maker custody.Address `protobuf:"bytes,2,opt,name=maker,proto3" json:"maker,omitempty"`
	Seed  uint64          `protobuf:"varint,3,opt,name=seed,proto3" json:"seed,omitempty"`
	MintA string          `protobuf:"bytes,4,opt,name=mint_a,json=mintA,proto3" json:"mint_a,omitempty"`
	MintB string          `protobuf:"bytes,5,opt,name=mint_b,json=mintB,proto3" json:"mint_b,omitempty"`
}

func (m *TakeMsg) Reset()         { *m = TakeMsg{} }
func (m *TakeMsg) String() string { return proto.CompactTextString(m) }
func (*TakeMsg) ProtoMessage()    {}

func (m *TakeMsg) MarshalBinary() ([]byte, error) {
	bz, err := proto.Marshal(m)
	return bz, errors.Wrap(err, "marshal take")
}

func (m *TakeMsg) UnmarshalBinary(bz []byte) error {
	return errors.Wrap(proto.Unmarshal(bz, m), "unmarshal take")
}

// CloseMsg refunds the escrow of Maker with Seed.
type CloseMsg struct {
	Maker custody.Address `protobuf:"bytes,1,opt,name=maker,proto3" json:"maker,omitempty"`
	Seed  uint64          `protobuf:"varint,2,opt,name=seed,proto3" json:"seed,omitempty"`
}

func (m *CloseMsg) Reset()         { *m = CloseMsg{} }
func (m *CloseMsg) String() string { return proto.CompactTextString(m) }
func (*CloseMsg) ProtoMessage()    {}

func (m *CloseMsg) MarshalBinary() ([]byte, error) {
	bz, err := proto.Marshal(m)
	return bz, errors.Wrap(err, "marshal close")
}

func (m *CloseMsg) UnmarshalBinary(bz []byte) error {
	return errors.Wrap(proto.Unmarshal(bz, m), "unmarshal close")
}
