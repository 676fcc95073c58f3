package sigs

import (
	"math"
	"testing"

	"github.com/custodylabs/custody/custodytest"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSequence(t *testing.T) {
	cases := map[string]struct {
		current  int64
		expected int64
		wantErr  *errors.Error
		wantSeq  int64
	}{
		"match":     {current: 4, expected: 4, wantSeq: 5},
		"mismatch":  {current: 4, expected: 3, wantErr: ErrInvalidSequence, wantSeq: 4},
		"at limit":  {current: maxSequenceValue, expected: maxSequenceValue, wantErr: errors.ErrOverflow, wantSeq: maxSequenceValue},
		"wrap over": {current: math.MaxInt64, expected: math.MaxInt64, wantErr: errors.ErrOverflow, wantSeq: math.MaxInt64},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			u := &UserData{Sequence: tc.current}
			err := u.CheckAndIncrementSequence(tc.expected)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.wantSeq, u.Sequence)
		})
	}
}

func TestUserBucket(t *testing.T) {
	db := store.MemStore()
	b := NewBucket()
	pub := custodytest.NewKey().PublicKey()

	obj, err := b.GetOrCreate(db, pub)
	require.NoError(t, err)
	user := AsUser(obj)
	require.NotNil(t, user)
	assert.EqualValues(t, 0, user.Sequence)

	require.NoError(t, user.CheckAndIncrementSequence(0))
	require.NoError(t, b.Save(db, obj))

	loaded, err := b.Get(db, pub.Address())
	require.NoError(t, err)
	got := AsUser(loaded)
	require.NotNil(t, got)
	assert.EqualValues(t, 1, got.Sequence)
	assert.Equal(t, pub.Ed25519, got.Pubkey.Ed25519)

	invalid := &UserData{Sequence: 3}
	assert.True(t, ErrInvalidSequence.Is(invalid.Validate()))
}
