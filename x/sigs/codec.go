package sigs

import (
	"github.com/custodylabs/custody/crypto"
	"github.com/custodylabs/custody/errors"
	"github.com/gogo/protobuf/proto"
)

// UserData is the state stored for every key that ever signed a
// transaction.
type UserData struct {
	Pubkey   *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

func (m *UserData) GetPubkey() *crypto.PublicKey {
	if m != nil {
		return m.Pubkey
	}
	return nil
}

func (m *UserData) GetSequence() int64 {
	if m != nil {
		return m.Sequence
	}
	return 0
}

func (m *UserData) MarshalBinary() ([]byte, error) {
	bz, err := proto.Marshal(m)
	return bz, errors.Wrap(err, "marshal user")
}

func (m *UserData) UnmarshalBinary(bz []byte) error {
	return errors.Wrap(proto.Unmarshal(bz, m), "unmarshal user")
}

// StdSignature represents the signature, the identity of the signer
// (the Pubkey), and a sequence number to prevent replay attacks.
type StdSignature struct {
	Sequence  int64             `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Pubkey    *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature *crypto.Signature `protobuf:"bytes,3,opt,name=signature,proto3" json:"signature,omitempty"`
}

func (m *StdSignature) Reset()         { *m = StdSignature{} }
func (m *StdSignature) String() string { return proto.CompactTextString(m) }
func (*StdSignature) ProtoMessage()    {}

func (m *StdSignature) GetSequence() int64 {
	if m != nil {
		return m.Sequence
	}
	return 0
}

func (m *StdSignature) GetPubkey() *crypto.PublicKey {
	if m != nil {
		return m.Pubkey
	}
	return nil
}

func (m *StdSignature) GetSignature() *crypto.Signature {
	if m != nil {
		return m.Signature
	}
	return nil
}

func (m *StdSignature) MarshalBinary() ([]byte, error) {
	bz, err := proto.Marshal(m)
	return bz, errors.Wrap(err, "marshal signature")
}

func (m *StdSignature) UnmarshalBinary(bz []byte) error {
	return errors.Wrap(proto.Unmarshal(bz, m), "unmarshal signature")
}
