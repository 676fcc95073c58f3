package custodytest

import "github.com/custodylabs/custody"

// Tx represents a custody transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg custody.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ custody.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (custody.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) UnmarshalBinary([]byte) error {
	panic("not implemented")
}

func (tx *Tx) MarshalBinary() ([]byte, error) {
	panic("not implemented")
}

// Msg represents a message with a configurable route.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ custody.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) UnmarshalBinary(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) MarshalBinary() ([]byte, error) {
	return m.Serialized, m.Err
}
