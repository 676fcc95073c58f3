package escrow

import (
	"context"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/x"
)

type contextKey int // local to the escrow module

const (
	contextKeyEscrow contextKey = iota
)

// withEscrowSigner is a private method, as only this module
// can authorize spending from a custody account
func withEscrowSigner(ctx custody.Context, escrow custody.Condition) custody.Context {
	return context.WithValue(ctx, contextKeyEscrow, escrow)
}

// Authenticate grants authority over the escrow account and the custody
// account it owns, for the escrow condition set on the context.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns permissions previously set on this context
func (a Authenticate) GetConditions(ctx custody.Context) []custody.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeyEscrow).(custody.Condition)
	if val == nil {
		return nil
	}
	return []custody.Condition{val}
}

// HasAddress returns true if addr is the escrow account on the context, or
// the custody account derived from it.
func (a Authenticate) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		escrow := c.Address()
		if addr.Equals(escrow) {
			return true
		}
		if owned, err := CustodyAddress(escrow); err == nil && addr.Equals(owned) {
			return true
		}
	}
	return false
}
