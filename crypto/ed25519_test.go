package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEd25519Signing(t *testing.T) {
	private := GenPrivKeyEd25519()
	public := private.PublicKey()

	msg := []byte("foobar")
	msg2 := []byte("dingbooms")

	sig, err := private.Sign(msg)
	require.NoError(t, err)
	sig2, err := private.Sign(msg2)
	require.NoError(t, err)

	bz, err := sig.MarshalBinary()
	require.NoError(t, err)
	bz2, err := sig2.MarshalBinary()
	require.NoError(t, err)
	assert.False(t, bytes.Equal(bz, bz2), "different signatures serialize the same")

	assert.True(t, public.Verify(msg, sig))
	assert.True(t, public.Verify(msg2, sig2))
	assert.False(t, public.Verify(msg, sig2))
	assert.False(t, public.Verify(msg2, sig))
	assert.False(t, public.Verify(msg, &Signature{}))
	assert.False(t, public.Verify(msg, nil))

	other := GenPrivKeyEd25519().PublicKey()
	assert.False(t, other.Verify(msg, sig))
}

func TestEd25519Condition(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	pub2 := GenPrivKeyEd25519().PublicKey()
	empty := PublicKey{}

	require.NoError(t, pub.Condition().Validate())
	require.NoError(t, pub2.Condition().Validate())
	assert.NotEqual(t, pub.Condition(), pub2.Condition())
	assert.Nil(t, empty.Condition())
	assert.Nil(t, empty.Address())

	ext, typ, data, err := pub.Condition().Parse()
	require.NoError(t, err)
	assert.Equal(t, ExtensionName, ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, pub.Ed25519, data)

	bz, err := pub.MarshalBinary()
	require.NoError(t, err)
	var read PublicKey
	require.NoError(t, read.UnmarshalBinary(bz))
	assert.Equal(t, pub.Condition(), read.Condition())
	assert.Equal(t, pub.Address(), read.Address())
}

func TestPrivKeyEd25519FromSeed(t *testing.T) {
	cases := map[string]struct {
		seed      []byte
		wantPanic bool
	}{
		"zero seed":            {seed: make([]byte, 32)},
		"repeated seed":        {seed: bytes.Repeat([]byte{31}, 32)},
		"no seed":              {seed: nil, wantPanic: true},
		"seed too short":       {seed: []byte{0}, wantPanic: true},
		"seed one byte longer": {seed: make([]byte, 33), wantPanic: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if tc.wantPanic {
				assert.Panics(t, func() { PrivKeyEd25519FromSeed(tc.seed) })
				return
			}
			a := PrivKeyEd25519FromSeed(tc.seed)
			b := PrivKeyEd25519FromSeed(tc.seed)
			assert.Equal(t, a.GetEd25519(), b.GetEd25519())
			assert.Equal(t, tc.seed, a.GetEd25519()[:32])
			assert.Equal(t, a.PublicKey().Condition(), b.PublicKey().Condition())
		})
	}
}
