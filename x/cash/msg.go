package cash

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/coin"
	"github.com/custodylabs/custody/errors"
)

// Ensure we implement the Msg interface
var _ custody.Msg = (*SendMsg)(nil)

const (
	pathSendMsg = "cash/send"

	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	var err error
	if coin.IsEmpty(s.Amount) {
		err = errors.Field("Amount", errors.ErrAmount, "non-positive")
	} else {
		err = errors.AppendField(err, "Amount", s.Amount.Validate())
	}
	err = errors.AppendField(err, "Source", s.Source.Validate())
	err = errors.AppendField(err, "Destination", s.Destination.Validate())
	if len(s.Memo) > maxMemoSize {
		err = errors.Append(err, errors.Field("Memo", errors.ErrInput, "too long"))
	}
	return err
}
