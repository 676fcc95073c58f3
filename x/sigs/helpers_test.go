package sigs

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/custodytest"
)

// stdTx is a signed transaction carrying a mock message.
type stdTx struct {
	custody.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*stdTx)(nil)

func newStdTx(payload []byte) *stdTx {
	msg := &custodytest.Msg{RoutePath: "test/mock", Serialized: payload}
	return &stdTx{Tx: &custodytest.Tx{Msg: msg}}
}

func (tx *stdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *stdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.MarshalBinary()
}
