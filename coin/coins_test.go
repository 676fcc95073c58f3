package coin

import (
	"testing"

	"github.com/custodylabs/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineCoins(t *testing.T) {
	cs, err := CombineCoins(
		NewCoin(5, "TOKB"),
		NewCoin(10, "SOL"),
		NewCoin(0, "TOKA"),
		NewCoin(7, "TOKB"),
	)
	require.NoError(t, err)
	require.NoError(t, cs.Validate())
	assert.Equal(t, Coins{NewCoinp(10, "SOL"), NewCoinp(12, "TOKB")}, cs)
	assert.Equal(t, "10 SOL, 12 TOKB", cs.String())

	_, err = CombineCoins(NewCoin(1, "bad"))
	assert.True(t, errors.ErrCurrency.Is(err))
}

func TestCoinsSubtract(t *testing.T) {
	cases := map[string]struct {
		have    Coins
		take    Coin
		want    Coins
		wantErr *errors.Error
	}{
		"partial": {
			have: Coins{NewCoinp(10, "SOL"), NewCoinp(3, "TOKA")},
			take: NewCoin(4, "SOL"),
			want: Coins{NewCoinp(6, "SOL"), NewCoinp(3, "TOKA")},
		},
		"drain removes the ticker": {
			have: Coins{NewCoinp(10, "SOL"), NewCoinp(3, "TOKA")},
			take: NewCoin(3, "TOKA"),
			want: Coins{NewCoinp(10, "SOL")},
		},
		"zero is a noop": {
			have: Coins{NewCoinp(10, "SOL")},
			take: NewCoin(0, "TOKA"),
			want: Coins{NewCoinp(10, "SOL")},
		},
		"missing ticker": {
			have:    Coins{NewCoinp(10, "SOL")},
			take:    NewCoin(1, "TOKA"),
			wantErr: errors.ErrInsufficientAmount,
		},
		"too much": {
			have:    Coins{NewCoinp(10, "SOL")},
			take:    NewCoin(11, "SOL"),
			wantErr: errors.ErrInsufficientAmount,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.have.Clone().Subtract(tc.take)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equals(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestCoinsContainsAndBalance(t *testing.T) {
	cs := Coins{NewCoinp(10, "SOL"), NewCoinp(3, "TOKA")}

	assert.True(t, cs.Contains(NewCoin(10, "SOL")))
	assert.False(t, cs.Contains(NewCoin(11, "SOL")))
	assert.False(t, cs.Contains(NewCoin(1, "TOKB")))
	assert.True(t, cs.Contains(NewCoin(0, "TOKB")))

	assert.Equal(t, NewCoin(3, "TOKA"), cs.Balance("TOKA"))
	assert.Equal(t, NewCoin(0, "TOKB"), cs.Balance("TOKB"))

	sum, err := cs.Combine(Coins{NewCoinp(1, "TOKB")})
	require.NoError(t, err)
	assert.Len(t, sum, 3)
	assert.Len(t, cs, 2, "combine must not modify the receiver")
}

func TestCoinsValidate(t *testing.T) {
	cases := map[string]struct {
		coins   Coins
		wantErr *errors.Error
	}{
		"empty":      {coins: nil},
		"sorted":     {coins: Coins{NewCoinp(1, "SOL"), NewCoinp(1, "TOKA")}},
		"unsorted":   {coins: Coins{NewCoinp(1, "TOKA"), NewCoinp(1, "SOL")}, wantErr: errors.ErrCurrency},
		"duplicate":  {coins: Coins{NewCoinp(1, "SOL"), NewCoinp(1, "SOL")}, wantErr: errors.ErrCurrency},
		"zero entry": {coins: Coins{NewCoinp(0, "SOL")}, wantErr: errors.ErrAmount},
		"nil entry":  {coins: Coins{nil}, wantErr: errors.ErrState},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coins.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "got %v", err)
		})
	}
}
