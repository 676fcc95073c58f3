package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Field returns an error instance that wraps the original error with
// additional information. It returns `nil` if provided error is `nil`.
// Use this function to create an error instance describing a field/attribute
// error.
//
// Use Go naming for the field name. For example, Owner or Amount. When the
// error is for a nested field, use dot notation to construct the path, for
// example Amount.Ticker.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}

	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}

	return &fieldError{
		parent: err,
		field:  fieldName,
		desc:   description,
	}
}

// AppendField is a shortcut function to club together error(s) with a given
// field error.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc == "" {
		return fmt.Sprintf("field %q: %s", err.field, err.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
}

// Cause implements the causer interface.
func (err *fieldError) Cause() error {
	return err.parent
}

// Field implements fielder interface.
func (err *fieldError) Field() string {
	return err.field
}

// FieldErrors returns the list of all errors that are created for the given
// field name.
func FieldErrors(err error, fieldName string) []error {
	if isNilErr(err) {
		return nil
	}

	var res []error
	for {
		if err == nil {
			return res
		}

		if f, ok := err.(fielder); ok {
			if f.Field() == fieldName {
				return append(res, err)
			}
		}

		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				res = append(res, FieldErrors(e, fieldName)...)
			}
			return res
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return res
		}
	}
}

type fielder interface {
	Field() string
}

type unpacker interface {
	Unpack() []error
}

// Append clubs together all provided errors. Nil values are ignored.
//
// If none of the errors is non nil, nil is returned. A single error is
// returned as it is.
func Append(errs ...error) error {
	var flat multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			flat = append(flat, m...)
		} else {
			flat = append(flat, e)
		}
	}
	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	default:
		return flat
	}
}

// multiErr holds two or more errors. The first one decides the ABCI code.
type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d errors occurred: %s", len(m), strings.Join(msgs, "; "))
}

func (m multiErr) Unpack() []error {
	return m
}

func (m multiErr) ABCICode() uint32 {
	return abciCode(m[0])
}
