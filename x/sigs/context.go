package sigs

import (
	"context"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/x"
)

//------------------- Context --------
// Add context information specific to this package

type contextKey int // local to the auth module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx custody.Context, signers []custody.Condition) custody.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate gives access to the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current Context.
// May be empty
func (a Authenticate) GetConditions(ctx custody.Context) []custody.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]custody.Condition)
	return val
}

// HasAddress returns true if the given address signed the current Context.
func (a Authenticate) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
