package app

import (
	"context"
	"testing"

	"github.com/custodylabs/custody/custodytest"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	good := &custodytest.Handler{}
	bad := &custodytest.Handler{
		CheckErr:   errors.ErrHuman,
		DeliverErr: errors.ErrHuman,
	}
	r.Handle("vault/good", good)
	r.Handle("vault/bad", bad)

	// make sure invalid registrations panic
	assert.Panics(t, func() { r.Handle("vault/good", good) })
	assert.Panics(t, func() { r.Handle("l:7", good) })

	ctx := context.Background()
	db := store.MemStore()
	txFor := func(path string) *custodytest.Tx {
		return &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: path}}
	}

	_, err := r.Check(ctx, db, txFor("vault/good"))
	require.NoError(t, err)
	_, err = r.Deliver(ctx, db, txFor("vault/good"))
	require.NoError(t, err)
	assert.Equal(t, 2, good.CallCount())

	_, err = r.Deliver(ctx, db, txFor("vault/bad"))
	assert.True(t, errors.ErrHuman.Is(err))
	assert.Equal(t, 1, bad.CallCount())

	_, err = r.Check(ctx, db, txFor("vault/missing"))
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Deliver(ctx, db, txFor("vault/missing"))
	assert.True(t, errors.ErrNotFound.Is(err))
	assert.Equal(t, 2, good.CallCount())

	_, err = r.Deliver(ctx, db, &custodytest.Tx{Err: errors.ErrMsg})
	assert.True(t, errors.ErrMsg.Is(err))
}
