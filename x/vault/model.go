package vault

import (
	"bytes"
	"crypto/sha256"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/orm"
)

const (
	// ProgramName is the extension section of every condition derived by
	// this package.
	ProgramName = "vault"

	// BucketName is where the vault states are stored.
	BucketName = "vault"

	// StateSize is the length of a serialized VaultState.
	StateSize = discriminatorSize + 2

	discriminatorSize = 8
)

var (
	seedState = []byte("state")
	seedVault = []byte("vault")

	stateDiscriminator = discriminator("VaultState")
)

func discriminator(name string) []byte {
	h := sha256.Sum256([]byte("account:" + name))
	return h[:discriminatorSize]
}

// VaultState is stored once per owner. It holds the bumps needed to
// recompute both derived addresses.
type VaultState struct {
	VaultBump uint8
	StateBump uint8
}

var _ orm.Model = (*VaultState)(nil)

// MarshalBinary writes the fixed layout: discriminator, vault bump, state
// bump.
func (s *VaultState) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, StateSize)
	out = append(out, stateDiscriminator...)
	out = append(out, s.VaultBump, s.StateBump)
	return out, nil
}

// UnmarshalBinary reads the layout written by MarshalBinary.
func (s *VaultState) UnmarshalBinary(raw []byte) error {
	if len(raw) != StateSize {
		return errors.Wrapf(errors.ErrModel, "vault state must be %d bytes, got %d", StateSize, len(raw))
	}
	if !bytes.Equal(raw[:discriminatorSize], stateDiscriminator) {
		return errors.Wrap(errors.ErrModel, "not a vault state")
	}
	s.VaultBump = raw[discriminatorSize]
	s.StateBump = raw[discriminatorSize+1]
	return nil
}

// Validate accepts every bump pair, the derivation is checked on use.
func (s *VaultState) Validate() error {
	return nil
}

// Copy returns an independent copy.
func (s *VaultState) Copy() orm.CloneableData {
	cpy := *s
	return &cpy
}

// NewBucket returns the bucket holding vault states, keyed by the state
// address.
func NewBucket() orm.ModelBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &VaultState{}))
	return orm.NewModelBucket(b)
}

// StateAddress returns the canonical state address of the owner and its
// bump.
func StateAddress(owner custody.Address) (custody.Address, uint8, error) {
	return custody.FindDerived(ProgramName, seedState, owner)
}

// HoldingAddress returns the canonical holding address for a state address
// and its bump.
func HoldingAddress(state custody.Address) (custody.Address, uint8, error) {
	return custody.FindDerived(ProgramName, seedVault, state)
}

// holdingCondition recomputes the holding condition from the stored bump.
func holdingCondition(state custody.Address, s *VaultState) (custody.Condition, error) {
	if _, err := custody.Derive(ProgramName, s.VaultBump, seedVault, state); err != nil {
		return nil, errors.Wrap(err, "holding account")
	}
	return custody.DeriveCondition(ProgramName, s.VaultBump, seedVault, state), nil
}
