package custody

import (
	"crypto/sha256"

	"github.com/custodylabs/custody/errors"
)

const (
	// MaxSeeds is the largest number of seeds a derivation accepts.
	MaxSeeds = 16
	// MaxSeedLength is the largest accepted length of a single seed.
	MaxSeedLength = 32

	derivedType = "pda"
)

// DeriveCondition returns the condition a program owns for the given seeds
// and bump. The data section is every seed prefixed with its one byte
// length, followed by the bump. Callers outside of the chain must reproduce
// this exact byte sequence to locate accounts.
//
// DeriveCondition does not check the input, use Derive for that.
func DeriveCondition(program string, bump uint8, seeds ...[]byte) Condition {
	size := 1
	for _, s := range seeds {
		size += 1 + len(s)
	}
	data := make([]byte, 0, size)
	for _, s := range seeds {
		data = append(data, byte(len(s)))
		data = append(data, s...)
	}
	data = append(data, bump)
	return NewCondition(program, derivedType, data)
}

// Derive returns the address a program owns for the given seeds and a
// previously found bump. A wrong bump, seed or program yields a different
// address. Derive fails if the bump does not produce a valid derivation;
// use IsCanonicalBump to also require the bump FindDerived would return.
func Derive(program string, bump uint8, seeds ...[]byte) (Address, error) {
	if err := validateSeeds(seeds); err != nil {
		return nil, err
	}
	cond := DeriveCondition(program, bump, seeds...)
	if !offCurve(cond) {
		return nil, errors.Wrapf(errors.ErrState, "bump %d is not a valid derivation", bump)
	}
	return cond.Address(), nil
}

// FindDerived searches for the canonical bump of the given seeds, starting
// at 255 and counting down. It returns the derived address together with
// the bump that must be stored to recompute it later.
func FindDerived(program string, seeds ...[]byte) (Address, uint8, error) {
	if err := validateSeeds(seeds); err != nil {
		return nil, 0, err
	}
	for bump := 255; bump >= 0; bump-- {
		cond := DeriveCondition(program, uint8(bump), seeds...)
		if offCurve(cond) {
			return cond.Address(), uint8(bump), nil
		}
	}
	return nil, 0, errors.Wrap(errors.ErrState, "no valid bump found")
}

// IsCanonicalBump returns true if bump is the first valid bump for the
// seeds, as returned by FindDerived.
func IsCanonicalBump(program string, bump uint8, seeds ...[]byte) bool {
	_, want, err := FindDerived(program, seeds...)
	return err == nil && want == bump
}

// offCurve decides if a derived condition can be used as an account that
// no key pair controls. The last byte of the condition digest must have the
// high bit clear.
func offCurve(c Condition) bool {
	h := sha256.Sum256(c)
	return h[len(h)-1]&0x80 == 0
}

func validateSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return errors.Wrapf(errors.ErrInput, "too many seeds: %d", len(seeds))
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return errors.Wrapf(errors.ErrInput, "seed %d too long: %d", i, len(s))
		}
	}
	return nil
}
