package crypto

import (
	"github.com/custodylabs/custody/errors"
	"github.com/gogo/protobuf/proto"
)

// PublicKey holds the public part of a key pair.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PublicKey) Reset()         { *m = PublicKey{} }
func (m *PublicKey) String() string { return proto.CompactTextString(m) }
func (*PublicKey) ProtoMessage()    {}

// GetEd25519 returns the raw ed25519 key or nil.
func (m *PublicKey) GetEd25519() []byte {
	if m != nil {
		return m.Ed25519
	}
	return nil
}

// MarshalBinary serializes the key with protobuf.
func (m *PublicKey) MarshalBinary() ([]byte, error) {
	bz, err := proto.Marshal(m)
	return bz, errors.Wrap(err, "marshal public key")
}

// UnmarshalBinary loads the key from its protobuf form.
func (m *PublicKey) UnmarshalBinary(bz []byte) error {
	return errors.Wrap(proto.Unmarshal(bz, m), "unmarshal public key")
}

// PrivateKey holds the private part of a key pair. It must never be sent
// to the chain.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PrivateKey) Reset()         { *m = PrivateKey{} }
func (m *PrivateKey) String() string { return proto.CompactTextString(m) }
func (*PrivateKey) ProtoMessage()    {}

// GetEd25519 returns the raw ed25519 key or nil.
func (m *PrivateKey) GetEd25519() []byte {
	if m != nil {
		return m.Ed25519
	}
	return nil
}

// MarshalBinary serializes the key with protobuf.
func (m *PrivateKey) MarshalBinary() ([]byte, error) {
	bz, err := proto.Marshal(m)
	return bz, errors.Wrap(err, "marshal private key")
}

// UnmarshalBinary loads the key from its protobuf form.
func (m *PrivateKey) UnmarshalBinary(bz []byte) error {
	return errors.Wrap(proto.Unmarshal(bz, m), "unmarshal private key")
}

// Signature is the output of signing a message.
type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *Signature) Reset()         { *m = Signature{} }
func (m *Signature) String() string { return proto.CompactTextString(m) }
func (*Signature) ProtoMessage()    {}

// GetEd25519 returns the raw ed25519 signature or nil.
func (m *Signature) GetEd25519() []byte {
	if m != nil {
		return m.Ed25519
	}
	return nil
}

// MarshalBinary serializes the signature with protobuf.
func (m *Signature) MarshalBinary() ([]byte, error) {
	bz, err := proto.Marshal(m)
	return bz, errors.Wrap(err, "marshal signature")
}

// UnmarshalBinary loads the signature from its protobuf form.
func (m *Signature) UnmarshalBinary(bz []byte) error {
	return errors.Wrap(proto.Unmarshal(bz, m), "unmarshal signature")
}
