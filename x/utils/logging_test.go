package utils_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/custodytest"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/store"
	"github.com/custodylabs/custody/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := custody.WithLogger(context.Background(), log.NewTMLogger(&buf))
	db := store.MemStore()
	tx := &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "vault/deposit"}}

	ok := custodytest.Decorate(&custodytest.Handler{DeliverResult: custody.DeliverResult{Log: "deposited"}}, utils.NewLogging())
	_, err := ok.Deliver(ctx, db, tx)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "deposited")
	assert.Contains(t, buf.String(), "vault/deposit")

	buf.Reset()
	failing := custodytest.Decorate(&custodytest.Handler{DeliverErr: errors.ErrNotFound}, utils.NewLogging())
	_, err = failing.Deliver(ctx, db, tx)
	require.True(t, errors.ErrNotFound.Is(err))
	assert.Contains(t, buf.String(), "not found")
}
