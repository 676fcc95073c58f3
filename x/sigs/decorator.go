package sigs

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/errors"
)

const (
	signatureVerifyCost = 500
)

// RegisterQuery will register this bucket as "/auth"
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("auth", qr)
}

//----------------- Decorator ----------------
//
// This is just a binding from the functionality into the
// Application stack, not much business logic here.

// Decorator verifies the signatures and adds them to the context
type Decorator struct {
	allowMissingSigs bool
}

var _ custody.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator,
// which appends the chainID before checking the signature,
// and requires at least one signature to be present
func NewDecorator() Decorator {
	return Decorator{
		allowMissingSigs: false,
	}
}

// AllowMissingSigs allows us to pass along items with no signatures
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	ctx, signers, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	// Only valid signatures are charged for.
	res.GasAllocated += int64(signers * signatureVerifyCost)
	return res, nil
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) authenticate(ctx custody.Context, store custody.KVStore, tx custody.Tx) (custody.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		if d.allowMissingSigs {
			return ctx, 0, nil
		}
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "unsigned transaction")
	}

	chainID := custody.GetChainID(ctx)
	signers, err := VerifyTxSignatures(store, stx, chainID)
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
