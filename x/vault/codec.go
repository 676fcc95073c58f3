package vault

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/errors"
	"github.com/gogo/protobuf/proto"
)

// InitializeMsg opens a vault for the owner.
type InitializeMsg struct {
	Owner custody.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
}

func (m *InitializeMsg) Reset()         { *m = InitializeMsg{} }
func (m *InitializeMsg) String() string { return proto.CompactTextString(m) }
func (*InitializeMsg) ProtoMessage()    {}

func (m *InitializeMsg) MarshalBinary() ([]byte, error) {
	bz, err := proto.Marshal(m)
	return bz, errors.Wrap(err, "marshal initialize")
}

func (m *InitializeMsg) UnmarshalBinary(bz []byte) error {
	return errors.Wrap(proto.Unmarshal(bz, m), "unmarshal initialize")
}

// DepositMsg moves native value from the owner into the vault.
type DepositMsg struct {
	Owner  custody.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Amount uint64          `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *DepositMsg) Reset()         { *m = DepositMsg{} }
func (m *DepositMsg) String() string { return proto.CompactTextString(m) }
func (*DepositMsg) ProtoMessage()    {}

func (m *DepositMsg) MarshalBinary() ([]byte, error) {
	bz, err := proto.Marshal(m)
	return bz, errors.Wrap(err, "marshal deposit")
}

func (m *DepositMsg) UnmarshalBinary(bz []byte) error {
	return errors.Wrap(proto.Unmarshal(bz, m), "unmarshal deposit")
}

// WithdrawMsg moves native value from the vault back to the owner.
type WithdrawMsg struct {
	Owner  custody.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Amount uint64          `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *WithdrawMsg) Reset()         { *m = WithdrawMsg{} }
func (m *WithdrawMsg) String() string { return proto.CompactTextString(m) }
func (*WithdrawMsg) ProtoMessage()    {}

func (m *WithdrawMsg) MarshalBinary() ([]byte, error) {
	bz, err := proto.Marshal(m)
	return bz, errors.Wrap(err, "marshal withdraw")
}

func (m *WithdrawMsg) UnmarshalBinary(bz []byte) error {
	return errors.Wrap(proto.Unmarshal(bz, m), "unmarshal withdraw")
}

// CloseMsg pays out the whole vault to the owner and removes it.
type CloseMsg struct {
	Owner custody.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
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
