package escrow

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"strings"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/coin"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/orm"
)

const (
	// ProgramName is the extension section of every condition derived by
	// this package.
	ProgramName = "escrow"

	// BucketName is where the escrows are stored.
	BucketName = "escrow"

	// mintSize is the fixed width of a ticker in the record.
	mintSize = 8

	discriminatorSize = 8

	// RecordSize is the length of a serialized Escrow.
	RecordSize = discriminatorSize + 8 + 20 + mintSize + mintSize + 8 + 1
)

var (
	seedEscrow  = []byte("escrow")
	seedCustody = []byte("vault")

	escrowDiscriminator = func() []byte {
		h := sha256.Sum256([]byte("account:Escrow"))
		return h[:discriminatorSize]
	}()
)

// Escrow is an open offer of a maker. It is stored under the derived
// escrow address.
type Escrow struct {
	Seed    uint64
	Maker   custody.Address
	MintA   string
	MintB   string
	Receive uint64
	Bump    uint8
}

var _ orm.Model = (*Escrow)(nil)

// MarshalBinary writes the fixed little endian layout. Tickers are space
// padded to eight bytes.
func (e *Escrow) MarshalBinary() ([]byte, error) {
	if len(e.Maker) != custody.AddressLength {
		return nil, errors.Wrap(errors.ErrModel, "maker address")
	}
	if len(e.MintA) > mintSize || len(e.MintB) > mintSize {
		return nil, errors.Wrap(errors.ErrModel, "mint too long")
	}
	out := make([]byte, RecordSize)
	n := copy(out, escrowDiscriminator)
	binary.LittleEndian.PutUint64(out[n:], e.Seed)
	n += 8
	n += copy(out[n:], e.Maker)
	n += copy(out[n:], padMint(e.MintA))
	n += copy(out[n:], padMint(e.MintB))
	binary.LittleEndian.PutUint64(out[n:], e.Receive)
	n += 8
	out[n] = e.Bump
	return out, nil
}

// UnmarshalBinary reads the layout written by MarshalBinary.
func (e *Escrow) UnmarshalBinary(raw []byte) error {
	if len(raw) != RecordSize {
		return errors.Wrapf(errors.ErrModel, "escrow must be %d bytes, got %d", RecordSize, len(raw))
	}
	if !bytes.Equal(raw[:discriminatorSize], escrowDiscriminator) {
		return errors.Wrap(errors.ErrModel, "not an escrow")
	}
	n := discriminatorSize
	e.Seed = binary.LittleEndian.Uint64(raw[n:])
	n += 8
	e.Maker = append(custody.Address(nil), raw[n:n+custody.AddressLength]...)
	n += custody.AddressLength
	e.MintA = strings.TrimRight(string(raw[n:n+mintSize]), " ")
	n += mintSize
	e.MintB = strings.TrimRight(string(raw[n:n+mintSize]), " ")
	n += mintSize
	e.Receive = binary.LittleEndian.Uint64(raw[n:])
	n += 8
	e.Bump = raw[n]
	return nil
}

func padMint(m string) []byte {
	out := bytes.Repeat([]byte{' '}, mintSize)
	copy(out, m)
	return out
}

// Validate ensures the escrow is well formed.
func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Maker", e.Maker.Validate())
	if !coin.IsCC(e.MintA) {
		errs = errors.Append(errs, errors.Field("MintA", errors.ErrCurrency, "invalid mint %q", e.MintA))
	}
	if !coin.IsCC(e.MintB) {
		errs = errors.Append(errs, errors.Field("MintB", errors.ErrCurrency, "invalid mint %q", e.MintB))
	}
	if e.Receive == 0 {
		errs = errors.Append(errs, errors.Field("Receive", errors.ErrAmount, "must be positive"))
	}
	return errs
}

// Copy returns an independent copy.
func (e *Escrow) Copy() orm.CloneableData {
	cpy := *e
	cpy.Maker = e.Maker.Clone()
	return &cpy
}

// NewBucket returns the bucket holding escrows, keyed by the escrow
// address and indexed by maker.
func NewBucket() orm.ModelBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Escrow{})).
		WithIndex("maker", idxMaker, false)
	return orm.NewModelBucket(b)
}

func idxMaker(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	esc, ok := obj.Value().(*Escrow)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "can only take index of Escrow")
	}
	return esc.Maker, nil
}

func seedBytes(seed uint64) []byte {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, seed)
	return raw
}

// EscrowAddress returns the canonical address of the escrow of maker with
// seed and its bump.
func EscrowAddress(maker custody.Address, seed uint64) (custody.Address, uint8, error) {
	return custody.FindDerived(ProgramName, seedEscrow, maker, seedBytes(seed))
}

// CustodyAddress returns the account holding the offered tokens of an
// escrow.
func CustodyAddress(escrow custody.Address) (custody.Address, error) {
	addr, _, err := custody.FindDerived(ProgramName, seedCustody, escrow)
	return addr, err
}

// escrowCondition recomputes the escrow capability from the stored record.
func escrowCondition(e *Escrow) (custody.Condition, error) {
	seed := seedBytes(e.Seed)
	if _, err := custody.Derive(ProgramName, e.Bump, seedEscrow, e.Maker, seed); err != nil {
		return nil, errors.Wrap(err, "escrow account")
	}
	return custody.DeriveCondition(ProgramName, e.Bump, seedEscrow, e.Maker, seed), nil
}
