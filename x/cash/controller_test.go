package cash

import (
	"context"
	"testing"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/coin"
	"github.com/custodylabs/custody/custodytest"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveCoins(t *testing.T) {
	alice := custodytest.NewCondition().Address()
	bob := custodytest.NewCondition().Address()

	cases := map[string]struct {
		issue     []coin.Coin
		move      coin.Coin
		wantErr   *errors.Error
		wantAlice coin.Coins
		wantBob   coin.Coins
	}{
		"partial": {
			issue:     []coin.Coin{coin.NewCoin(1000, "SOL")},
			move:      coin.NewCoin(400, "SOL"),
			wantAlice: coin.Coins{coin.NewCoinp(600, "SOL")},
			wantBob:   coin.Coins{coin.NewCoinp(400, "SOL")},
		},
		"everything empties the sender": {
			issue:   []coin.Coin{coin.NewCoin(50, "TOKA")},
			move:    coin.NewCoin(50, "TOKA"),
			wantBob: coin.Coins{coin.NewCoinp(50, "TOKA")},
		},
		"other tickers stay": {
			issue:     []coin.Coin{coin.NewCoin(5, "SOL"), coin.NewCoin(7, "TOKA")},
			move:      coin.NewCoin(7, "TOKA"),
			wantAlice: coin.Coins{coin.NewCoinp(5, "SOL")},
			wantBob:   coin.Coins{coin.NewCoinp(7, "TOKA")},
		},
		"insufficient": {
			issue:     []coin.Coin{coin.NewCoin(10, "SOL")},
			move:      coin.NewCoin(11, "SOL"),
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: coin.Coins{coin.NewCoinp(10, "SOL")},
		},
		"empty sender": {
			move:    coin.NewCoin(1, "SOL"),
			wantErr: errors.ErrInsufficientAmount,
		},
		"zero amount": {
			issue:     []coin.Coin{coin.NewCoin(10, "SOL")},
			move:      coin.NewCoin(0, "SOL"),
			wantErr:   errors.ErrAmount,
			wantAlice: coin.Coins{coin.NewCoinp(10, "SOL")},
		},
		"bad ticker": {
			issue:     []coin.Coin{coin.NewCoin(10, "SOL")},
			move:      coin.NewCoin(1, "s"),
			wantErr:   errors.ErrCurrency,
			wantAlice: coin.Coins{coin.NewCoinp(10, "SOL")},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewBucket())
			for _, c := range tc.issue {
				require.NoError(t, ctrl.IssueCoins(db, alice, c))
			}

			err := ctrl.MoveCoins(db, alice, bob, tc.move)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %+v", err)
			} else {
				require.NoError(t, err)
			}

			assertBalance(t, ctrl, db, alice, tc.wantAlice)
			assertBalance(t, ctrl, db, bob, tc.wantBob)
		})
	}
}

func TestMoveCoinsToSelf(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	alice := custodytest.NewCondition().Address()
	require.NoError(t, ctrl.IssueCoins(db, alice, coin.NewCoin(10, "SOL")))

	require.NoError(t, ctrl.MoveCoins(db, alice, alice, coin.NewCoin(10, "SOL")))
	assertBalance(t, ctrl, db, alice, coin.Coins{coin.NewCoinp(10, "SOL")})

	err := ctrl.MoveCoins(db, alice, alice, coin.NewCoin(11, "SOL"))
	assert.True(t, errors.ErrInsufficientAmount.Is(err))
}

func TestTransferRequiresAuthority(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	owner := custodytest.NewCondition()
	derived := custody.DeriveCondition("test", 255, []byte("holding"))
	dest := custodytest.NewCondition().Address()

	require.NoError(t, ctrl.IssueCoins(db, owner.Address(), coin.NewCoin(100, "SOL")))
	require.NoError(t, ctrl.IssueCoins(db, derived.Address(), coin.NewCoin(100, "SOL")))

	ctxAuth := &custodytest.CtxAuth{Key: "auth"}
	ctx := ctxAuth.SetConditions(context.Background(), owner)

	// The signer can move its own coins.
	require.NoError(t, Transfer(ctx, ctxAuth, ctrl, db, owner.Address(), dest, coin.NewCoin(10, "SOL")))

	// Nobody holds the derived condition, so its coins are locked.
	err := Transfer(ctx, ctxAuth, ctrl, db, derived.Address(), dest, coin.NewCoin(10, "SOL"))
	require.True(t, errors.ErrUnauthorized.Is(err))
	_, err = Drain(ctx, ctxAuth, ctrl, db, derived.Address(), dest, "SOL")
	require.True(t, errors.ErrUnauthorized.Is(err))

	// Once the derived condition is in the context, it can be drained.
	ctx = ctxAuth.SetConditions(ctx, derived)
	moved, err := Drain(ctx, ctxAuth, ctrl, db, derived.Address(), dest, "SOL")
	require.NoError(t, err)
	assert.Equal(t, coin.NewCoin(100, "SOL"), moved)
	assertBalance(t, ctrl, db, derived.Address(), nil)
	assertBalance(t, ctrl, db, dest, coin.Coins{coin.NewCoinp(110, "SOL")})

	// Draining an empty account moves nothing.
	moved, err = Drain(ctx, ctxAuth, ctrl, db, derived.Address(), dest, "SOL")
	require.NoError(t, err)
	assert.True(t, moved.IsZero())
}

func TestDrainAll(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	derived := custody.DeriveCondition("test", 254, []byte("holding"))
	dest := custodytest.NewCondition().Address()

	require.NoError(t, ctrl.IssueCoins(db, derived.Address(), coin.NewCoin(70, "SOL")))
	require.NoError(t, ctrl.IssueCoins(db, derived.Address(), coin.NewCoin(3, "TOKA")))
	require.NoError(t, ctrl.IssueCoins(db, dest, coin.NewCoin(1, "TOKA")))

	ctxAuth := &custodytest.CtxAuth{Key: "auth"}
	ctx := ctxAuth.SetConditions(context.Background(), custodytest.NewCondition())

	_, err := DrainAll(ctx, ctxAuth, ctrl, db, derived.Address(), dest)
	require.True(t, errors.ErrUnauthorized.Is(err))
	assertBalance(t, ctrl, db, derived.Address(), coin.Coins{coin.NewCoinp(70, "SOL"), coin.NewCoinp(3, "TOKA")})

	ctx = ctxAuth.SetConditions(ctx, derived)
	moved, err := DrainAll(ctx, ctxAuth, ctrl, db, derived.Address(), dest)
	require.NoError(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoinp(70, "SOL"), coin.NewCoinp(3, "TOKA")}, moved)
	assertBalance(t, ctrl, db, derived.Address(), nil)
	assertBalance(t, ctrl, db, dest, coin.Coins{coin.NewCoinp(70, "SOL"), coin.NewCoinp(4, "TOKA")})

	moved, err = DrainAll(ctx, ctxAuth, ctrl, db, derived.Address(), dest)
	require.NoError(t, err)
	assert.Empty(t, moved)
}

func assertBalance(t testing.TB, ctrl BaseController, db custody.ReadOnlyKVStore, addr custody.Address, want coin.Coins) {
	t.Helper()
	got, err := ctrl.Balance(db, addr)
	if want == nil {
		require.True(t, errors.ErrNotFound.Is(err), "want no wallet, got %v (%v)", got, err)
		return
	}
	require.NoError(t, err)
	assert.True(t, want.Equals(got), "want %s, got %s", want, got)
}
