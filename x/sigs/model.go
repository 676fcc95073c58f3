package sigs

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/crypto"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

//---- UserData
// Model stores the persistent state and all domain logic
// associated with valid state and state transitions.

var _ orm.CloneableData = (*UserData)(nil)

// Validate requires a public key once the sequence moved.
func (u *UserData) Validate() error {
	if seq := u.Sequence; seq < 0 {
		return errors.Field("Sequence", ErrInvalidSequence, "negative")
	} else if seq > 0 && u.Pubkey == nil {
		return errors.Field("Sequence", ErrInvalidSequence, "needs Pubkey")
	}
	return nil
}

// Copy makes a new UserData with the same data
func (u *UserData) Copy() orm.CloneableData {
	return &UserData{
		Sequence: u.Sequence,
		Pubkey:   u.Pubkey,
	}
}

// maxSequenceValue keeps sequences representable by JSON clients.
const maxSequenceValue = (1 << 53) - 1

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", u.Sequence, expected)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

//-------------------- Object Wrapper -------

// AsUser will safely type-cast any value from Bucket to a UserData
func AsUser(obj orm.Object) *UserData {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*UserData)
}

// NewUser constructs an object from an address and pubkey
func NewUser(pubkey *crypto.PublicKey) orm.Object {
	var key custody.Address
	value := &UserData{Pubkey: pubkey}
	if pubkey != nil {
		key = pubkey.Address()
	}
	return orm.NewSimpleObj(key, value)
}

// Bucket extends orm.Bucket with GetOrCreate
type Bucket struct {
	orm.Bucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewUser(nil)),
	}
}

// GetOrCreate initializes a UserData if none exist for that key
func (b Bucket) GetOrCreate(db custody.KVStore, pubkey *crypto.PublicKey) (orm.Object, error) {
	obj, err := b.Get(db, pubkey.Address())
	if err == nil && obj == nil {
		obj = NewUser(pubkey)
	}
	return obj, err
}
