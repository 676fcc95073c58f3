package utils

import (
	"github.com/custodylabs/custody"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionTagger will inspect the message being executed and
// add a tag `action = msg.Path()`. Clients can then search the
// transaction history for every escrow/take or vault/withdraw.
type ActionTagger struct{}

var _ custody.Decorator = ActionTagger{}

// ActionKey is used by ActionTagger as the Key in the Tag it appends
const ActionKey = "action"

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along
func (ActionTagger) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends a tag on the result if there is a success.
func (ActionTagger) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	tag := common.KVPair{
		Key:   []byte(ActionKey),
		Value: []byte(custody.GetPath(tx)),
	}
	res.Tags = append(res.Tags, tag)
	return res, nil
}
