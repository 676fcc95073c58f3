package escrow

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/coin"
	"github.com/custodylabs/custody/errors"
)

const (
	pathMakeMsg  = "escrow/make"
	pathTakeMsg  = "escrow/take"
	pathCloseMsg = "escrow/close"
)

var (
	_ custody.Msg = (*MakeMsg)(nil)
	_ custody.Msg = (*TakeMsg)(nil)
	_ custody.Msg = (*CloseMsg)(nil)
)

// Path fulfills custody.Msg interface to allow routing
func (MakeMsg) Path() string {
	return pathMakeMsg
}

// Path fulfills custody.Msg interface to allow routing
func (TakeMsg) Path() string {
	return pathTakeMsg
}

// Path fulfills custody.Msg interface to allow routing
func (CloseMsg) Path() string {
	return pathCloseMsg
}

// Validate makes sure that this is sensible
func (m *MakeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Maker", m.Maker.Validate())
	errs = errors.AppendField(errs, "MintA", validateMint(m.MintA))
	errs = errors.AppendField(errs, "MintB", validateMint(m.MintB))
	if m.Deposit == 0 {
		errs = errors.Append(errs, errors.Field("Deposit", errors.ErrAmount, "must be positive"))
	}
	if m.Receive == 0 {
		errs = errors.Append(errs, errors.Field("Receive", errors.ErrAmount, "must be positive"))
	}
	return errs
}

// Validate makes sure that this is sensible
func (m *TakeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Taker", m.Taker.Validate())
	errs = errors.AppendField(errs, "Maker", m.Maker.Validate())
	errs = errors.AppendField(errs, "MintA", validateMint(m.MintA))
	errs = errors.AppendField(errs, "MintB", validateMint(m.MintB))
	return errs
}

// Validate makes sure that this is sensible
func (m *CloseMsg) Validate() error {
	return errors.Field("Maker", m.Maker.Validate(), "")
}

func validateMint(ticker string) error {
	if !coin.IsCC(ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid mint %q", ticker)
	}
	return nil
}
