package custody

import (
	"reflect"

	"github.com/custodylabs/custody/errors"
)

// Msg is message for the blockchain to take an action
// (Make a state transition). It is just the request, and
// must be validated by the Handlers. All authentication
// information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Path returns the message path.
	// This is used by the Router to locate the proper Handler.
	// Msg should be created alongside the Handler that corresponds to them.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs a sanity checks on the message, without
	// looking at the state.
	Validate() error
}

// Marshaller is anything that can be represented in binary
//
// MarshalBinary may validate the data before serializing it and
// unless you previously validated the struct,
// errors should be expected.
type Marshaller interface {
	MarshalBinary() ([]byte, error)
}

// Persistent supports MarshalBinary and UnmarshalBinary
//
// This is separated from Marshaller, as this almost always requires
// a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	UnmarshalBinary([]byte) error
}

// Tx represent the data sent from the user to the chain.
// It includes the actual message, along with information needed
// to authenticate the sender (cryptographic signatures),
// and anything else needed to pass through middleware.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
//
// The destination must be a pointer to the expected message type. The
// message is copied into it, so the caller does not need to type assert.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}
	if err := assignMsg(msg, destination); err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}

// TxDecoder can parse bytes into a Tx
type TxDecoder func(txBytes []byte) (Tx, error)

// ObjAddress takes the address of an object
func ObjAddress(obj Marshaller) (Address, error) {
	bz, err := obj.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return NewAddress(bz), nil
}

// assignMsg copies msg into destination, which must be a non nil pointer to
// either the message type or the type the message points to.
func assignMsg(msg Msg, destination interface{}) error {
	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	src := reflect.ValueOf(msg)
	target := dst.Elem()
	switch {
	case src.Type().AssignableTo(target.Type()):
		target.Set(src)
	case src.Kind() == reflect.Ptr && src.Elem().Type().AssignableTo(target.Type()):
		target.Set(src.Elem())
	default:
		return errors.Wrapf(errors.ErrType, "want %s message, got %T", target.Type(), msg)
	}
	return nil
}
