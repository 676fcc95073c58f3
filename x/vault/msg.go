package vault

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/errors"
)

const (
	pathInitializeMsg = "vault/initialize"
	pathDepositMsg    = "vault/deposit"
	pathWithdrawMsg   = "vault/withdraw"
	pathCloseMsg      = "vault/close"
)

var (
	_ custody.Msg = (*InitializeMsg)(nil)
	_ custody.Msg = (*DepositMsg)(nil)
	_ custody.Msg = (*WithdrawMsg)(nil)
	_ custody.Msg = (*CloseMsg)(nil)
)

//--------- Path routing --------

// Path fulfills custody.Msg interface to allow routing
func (InitializeMsg) Path() string {
	return pathInitializeMsg
}

// Path fulfills custody.Msg interface to allow routing
func (DepositMsg) Path() string {
	return pathDepositMsg
}

// Path fulfills custody.Msg interface to allow routing
func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

// Path fulfills custody.Msg interface to allow routing
func (CloseMsg) Path() string {
	return pathCloseMsg
}

//--------- Validation --------

// Validate requires an owner.
func (m *InitializeMsg) Validate() error {
	return errors.Field("Owner", m.Owner.Validate(), "")
}

// Validate requires an owner and a positive amount.
func (m *DepositMsg) Validate() error {
	return validateAmount(m.Owner, m.Amount)
}

// Validate requires an owner and a positive amount.
func (m *WithdrawMsg) Validate() error {
	return validateAmount(m.Owner, m.Amount)
}

// Validate requires an owner.
func (m *CloseMsg) Validate() error {
	return errors.Field("Owner", m.Owner.Validate(), "")
}

func validateAmount(owner custody.Address, amount uint64) error {
	errs := errors.AppendField(nil, "Owner", owner.Validate())
	if amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be positive"))
	}
	return errs
}
