package vault

import (
	"crypto/sha256"
	"testing"

	"github.com/custodylabs/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaultStateLayout(t *testing.T) {
	vs := VaultState{VaultBump: 254, StateBump: 253}
	raw, err := vs.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, raw, 10)

	want := sha256.Sum256([]byte("account:VaultState"))
	assert.Equal(t, want[:8], raw[:8])
	assert.Equal(t, []byte{254, 253}, raw[8:])

	var got VaultState
	require.NoError(t, got.UnmarshalBinary(raw))
	assert.Equal(t, vs, got)
}

func TestVaultStateRejectsForeignData(t *testing.T) {
	good, err := (&VaultState{VaultBump: 1, StateBump: 2}).MarshalBinary()
	require.NoError(t, err)

	foreign := append([]byte(nil), good...)
	foreign[0] ^= 0xff

	cases := map[string][]byte{
		"empty":               nil,
		"too short":           good[:9],
		"too long":            append(append([]byte(nil), good...), 0),
		"wrong discriminator": foreign,
	}
	for testName, raw := range cases {
		t.Run(testName, func(t *testing.T) {
			var vs VaultState
			err := vs.UnmarshalBinary(raw)
			assert.True(t, errors.ErrModel.Is(err), "got %+v", err)
		})
	}
}

func TestDerivedAddressesDiffer(t *testing.T) {
	a := make([]byte, 20)
	b := make([]byte, 20)
	b[19] = 1

	stateA, _, err := StateAddress(a)
	require.NoError(t, err)
	stateB, _, err := StateAddress(b)
	require.NoError(t, err)
	assert.NotEqual(t, stateA, stateB)

	holdingA, _, err := HoldingAddress(stateA)
	require.NoError(t, err)
	assert.NotEqual(t, stateA, holdingA)
}
