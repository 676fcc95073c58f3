package custody_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDerivedMatchesDerive(t *testing.T) {
	owner := custody.NewAddress([]byte("owner"))

	addr, bump, err := custody.FindDerived("vault", []byte("state"), owner)
	require.NoError(t, err)
	require.NoError(t, addr.Validate())

	again, err := custody.Derive("vault", bump, []byte("state"), owner)
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	assert.Equal(t, custody.DeriveCondition("vault", bump, []byte("state"), owner).Address(), addr)
	assert.True(t, custody.IsCanonicalBump("vault", bump, []byte("state"), owner))

	// Deterministic across calls.
	addr2, bump2, err := custody.FindDerived("vault", []byte("state"), owner)
	require.NoError(t, err)
	assert.Equal(t, addr, addr2)
	assert.Equal(t, bump, bump2)
}

func TestDerivationMismatch(t *testing.T) {
	maker := custody.NewAddress([]byte("maker"))
	seed := make([]byte, 8)
	binary.LittleEndian.PutUint64(seed, 42)

	want, bump, err := custody.FindDerived("escrow", []byte("escrow"), maker, seed)
	require.NoError(t, err)

	otherSeed := make([]byte, 8)
	binary.LittleEndian.PutUint64(otherSeed, 43)

	cases := map[string]custody.Condition{
		"wrong maker":   custody.DeriveCondition("escrow", bump, []byte("escrow"), custody.NewAddress([]byte("taker")), seed),
		"wrong seed":    custody.DeriveCondition("escrow", bump, []byte("escrow"), maker, otherSeed),
		"wrong bump":    custody.DeriveCondition("escrow", bump-1, []byte("escrow"), maker, seed),
		"wrong program": custody.DeriveCondition("vault", bump, []byte("escrow"), maker, seed),
		"wrong prefix":  custody.DeriveCondition("escrow", bump, []byte("vault"), maker, seed),
	}
	for testName, cond := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.False(t, want.Equals(cond.Address()))
		})
	}
}

func TestDeriveSeedBoundaries(t *testing.T) {
	// Length prefixing keeps different splits of the same bytes apart.
	a := custody.DeriveCondition("vault", 1, []byte("ab"), []byte("c"))
	b := custody.DeriveCondition("vault", 1, []byte("a"), []byte("bc"))
	assert.False(t, bytes.Equal(a, b))
}

func TestDeriveRejectsInvalidBump(t *testing.T) {
	seeds := [][]byte{[]byte("state"), custody.NewAddress([]byte("someone"))}

	var valid, invalid int
	for b := 0; b <= 255; b++ {
		_, err := custody.Derive("vault", uint8(b), seeds...)
		if err == nil {
			valid++
			continue
		}
		require.True(t, errors.ErrState.Is(err), "got %+v", err)
		invalid++
	}
	assert.NotZero(t, valid)
	assert.NotZero(t, invalid)

	_, canonical, err := custody.FindDerived("vault", seeds...)
	require.NoError(t, err)
	for b := 255; b > int(canonical); b-- {
		_, err := custody.Derive("vault", uint8(b), seeds...)
		assert.Error(t, err, "bump %d is above the canonical one", b)
		assert.False(t, custody.IsCanonicalBump("vault", uint8(b), seeds...))
	}
}

func TestDeriveSeedLimits(t *testing.T) {
	tooLong := make([]byte, custody.MaxSeedLength+1)
	_, _, err := custody.FindDerived("vault", tooLong)
	assert.True(t, errors.ErrInput.Is(err))

	tooMany := make([][]byte, custody.MaxSeeds+1)
	_, err = custody.Derive("vault", 255, tooMany...)
	assert.True(t, errors.ErrInput.Is(err))
}
