package cash

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
}

// RegisterQuery will register this bucket as "/wallets"
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ custody.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg SendMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Make sure we have permission from the sources
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &custody.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the tokens from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg SendMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := Transfer(ctx, h.auth, h.control, store, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}
