package app

import (
	"context"
	"testing"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/custodytest"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/store"
	"github.com/custodylabs/custody/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	c1 := &custodytest.Decorator{}
	c2 := &custodytest.Decorator{}
	h := &custodytest.Handler{}

	var nilDecorator *custodytest.Decorator
	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		nilDecorator,
		utils.NewRecovery(),
		c2,
	).WithHandler(h)

	ctx := context.Background()
	db := store.MemStore()
	tx := &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "vault/deposit"}}

	_, err := stack.Check(ctx, db, tx)
	require.NoError(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	require.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainRecoversPanics(t *testing.T) {
	inner := &custodytest.Decorator{}
	stack := ChainDecorators(
		utils.NewRecovery(),
		inner,
	).WithHandler(custodytest.PanicHandler{Msg: "boom"})

	ctx := context.Background()
	db := store.MemStore()
	tx := &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "vault/deposit"}}

	_, err := stack.Check(ctx, db, tx)
	assert.True(t, errors.ErrPanic.Is(err), "got %+v", err)
	_, err = stack.Deliver(ctx, db, tx)
	assert.True(t, errors.ErrPanic.Is(err), "got %+v", err)
	assert.Equal(t, 2, inner.CallCount())
}

func TestChainComposes(t *testing.T) {
	first := &custodytest.Decorator{DeliverErr: errors.ErrUnauthorized}
	second := &custodytest.Decorator{}
	h := &custodytest.Handler{}

	var stack custody.Handler = ChainDecorators(first).Chain(second).WithHandler(h)

	_, err := stack.Deliver(context.Background(), store.MemStore(), &custodytest.Tx{})
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 0, second.CallCount())
	assert.Equal(t, 0, h.CallCount())
}
