package sigs

import (
	"testing"

	"github.com/custodylabs/custody/custodytest"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSignBytes(t *testing.T) {
	a, err := BuildSignBytes([]byte("payload"), "custody-test", 1)
	require.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := BuildSignBytes([]byte("payload"), "custody-test", 2)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "sequence must change the sign bytes")

	c, err := BuildSignBytes([]byte("payload"), "custody-other", 1)
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "chain must change the sign bytes")

	_, err = BuildSignBytes([]byte("payload"), "custody-test", -1)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = BuildSignBytes([]byte("payload"), "no", 0)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVerifySignatures(t *testing.T) {
	const chainID = "custody-test"
	db := store.MemStore()
	key := custodytest.NewKey()
	other := custodytest.NewKey()

	tx := newStdTx([]byte("transfer"))
	sig0, err := SignTx(key, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(key, tx, chainID, 1)
	require.NoError(t, err)
	otherSig, err := SignTx(other, tx, chainID, 0)
	require.NoError(t, err)

	cases := []struct {
		name    string
		sigs    []*StdSignature
		chainID string
		wantErr *errors.Error
		want    int
	}{
		{name: "no signatures", want: 0, chainID: chainID},
		{name: "first use", sigs: []*StdSignature{sig0}, chainID: chainID, want: 1},
		{name: "replay", sigs: []*StdSignature{sig0}, chainID: chainID, wantErr: ErrInvalidSequence},
		{name: "wrong chain", sigs: []*StdSignature{sig1}, chainID: "custody-other", wantErr: errors.ErrUnauthorized},
		{name: "next sequence with a second signer", sigs: []*StdSignature{sig1, otherSig}, chainID: chainID, want: 2},
		{name: "missing signature", sigs: []*StdSignature{{Pubkey: key.PublicKey()}}, chainID: chainID, wantErr: errors.ErrUnauthorized},
	}

	// Cases run in order on one store, as sequences build up.
	for _, tc := range cases {
		tx.Signatures = tc.sigs
		signers, err := VerifyTxSignatures(db, tx, tc.chainID)
		if tc.wantErr != nil {
			require.True(t, tc.wantErr.Is(err), "%s: got %+v", tc.name, err)
			continue
		}
		require.NoError(t, err, tc.name)
		require.Len(t, signers, tc.want, tc.name)
	}

	seq, err := NextNonce(db, key.PublicKey().Address())
	require.NoError(t, err)
	assert.EqualValues(t, 2, seq)

	seq, err = NextNonce(db, custodytest.NewCondition().Address())
	require.NoError(t, err)
	assert.EqualValues(t, 0, seq)
}
