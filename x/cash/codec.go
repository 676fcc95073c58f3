package cash

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/coin"
	"github.com/custodylabs/custody/errors"
	"github.com/gogo/protobuf/proto"
)

// Set may contain Coin of many different currencies.
// It handles adding and subtracting sets of currencies.
type Set struct {
	Coins []*coin.Coin `protobuf:"bytes,1,rep,name=coins,proto3" json:"coins,omitempty"`
}

func (m *Set) Reset()         { *m = Set{} }
func (m *Set) String() string { return proto.CompactTextString(m) }
func (*Set) ProtoMessage()    {}

func (m *Set) GetCoins() []*coin.Coin {
	if m != nil {
		return m.Coins
	}
	return nil
}

func (m *Set) MarshalBinary() ([]byte, error) {
	bz, err := proto.Marshal(m)
	return bz, errors.Wrap(err, "marshal set")
}

func (m *Set) UnmarshalBinary(bz []byte) error {
	return errors.Wrap(proto.Unmarshal(bz, m), "unmarshal set")
}

// SendMsg is a request to move these coins from the given
// source to the given destination address.
type SendMsg struct {
	Source      custody.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination custody.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      *coin.Coin      `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	// max length 128 character
	Memo string `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

func (m *SendMsg) GetAmount() *coin.Coin {
	if m != nil {
		return m.Amount
	}
	return nil
}

func (m *SendMsg) MarshalBinary() ([]byte, error) {
	bz, err := proto.Marshal(m)
	return bz, errors.Wrap(err, "marshal send")
}

func (m *SendMsg) UnmarshalBinary(bz []byte) error {
	return errors.Wrap(proto.Unmarshal(bz, m), "unmarshal send")
}

// Configuration is the global cash configuration.
type Configuration struct {
	// Native is the ticker of the value custodied by the vault.
	Native string `protobuf:"bytes,1,opt,name=native,proto3" json:"native,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

func (m *Configuration) MarshalBinary() ([]byte, error) {
	bz, err := proto.Marshal(m)
	return bz, errors.Wrap(err, "marshal configuration")
}

func (m *Configuration) UnmarshalBinary(bz []byte) error {
	return errors.Wrap(proto.Unmarshal(bz, m), "unmarshal configuration")
}
