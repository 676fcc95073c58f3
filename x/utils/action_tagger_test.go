package utils_test

import (
	"context"
	"testing"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/custodytest"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/store"
	"github.com/custodylabs/custody/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/common"
)

func stringTag(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		handler custody.Handler
		tx      custody.Tx
		err     *errors.Error
		tags    []common.KVPair
	}{
		"simple call": {
			handler: &custodytest.Handler{},
			tx:      &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "escrow/take"}},
			tags:    []common.KVPair{stringTag(utils.ActionKey, "escrow/take")},
		},
		"passes through error": {
			handler: &custodytest.Handler{DeliverErr: errors.ErrHuman},
			tx:      &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "escrow/take"}},
			err:     errors.ErrHuman,
		},
		"tags are additive": {
			handler: &custodytest.Handler{
				DeliverResult: custody.DeliverResult{Tags: []common.KVPair{stringTag(utils.ActionKey, "random")}},
			},
			tx:   &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "vault/close"}},
			tags: []common.KVPair{stringTag(utils.ActionKey, "random"), stringTag(utils.ActionKey, "vault/close")},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := custodytest.Decorate(tc.handler, utils.NewActionTagger())
			res, err := h.Deliver(context.Background(), store.MemStore(), tc.tx)
			if !tc.err.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.tags, res.Tags)
			}
		})
	}
}
