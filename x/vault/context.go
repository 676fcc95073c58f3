package vault

import (
	"context"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/x"
)

type contextKey int // local to the vault module

const (
	contextKeyVault contextKey = iota
)

// withVaultSigner is a private method, as only this module
// can authorize spending from a holding account
func withVaultSigner(ctx custody.Context, holding custody.Condition) custody.Context {
	return context.WithValue(ctx, contextKeyVault, holding)
}

// Authenticate reveals the holding account this module is currently acting
// for, if any.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns permissions previously set on this context
func (a Authenticate) GetConditions(ctx custody.Context) []custody.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeyVault).(custody.Condition)
	if val == nil {
		return nil
	}
	return []custody.Condition{val}
}

// HasAddress returns true iff this address is in GetConditions
func (a Authenticate) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
