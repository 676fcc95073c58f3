package utils

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ custody.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (_ *custody.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (_ *custody.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
