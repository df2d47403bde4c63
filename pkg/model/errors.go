package model

import (
	"fmt"
)

var ErrMalformedInput = fmt.Errorf("malformed input")
var ErrUnresolvableRelation = fmt.Errorf("unresolvable relation")
var ErrUnknownField = fmt.Errorf("unknown field")

type myError struct {
	msg    string
	target error
	cause  error
}

func (m myError) Error() string        { return m.msg }
func (m myError) Is(target error) bool { return target == m.target }
func (m myError) Unwrap() error        { return m.cause }

// NewMalformedInputError reports that the raw value under key could not be
// parsed into what the field requires.
func NewMalformedInputError(key string, cause error) error {
	msg := fmt.Sprintf("malformed value for field %q", key)
	if cause != nil {
		msg = msg + ": " + cause.Error()
	}

	return &myError{
		msg:    msg,
		target: ErrMalformedInput,
		cause:  cause,
	}
}

// NewUnresolvableRelationError reports that a related entity could not be
// constructed from the fragment it was handed.
func NewUnresolvableRelationError(relation string, fragment any) error {
	return &myError{
		msg:    fmt.Sprintf("unable to resolve %s from fragment of type %T", relation, fragment),
		target: ErrUnresolvableRelation,
	}
}

func NewUnknownFieldError(key string) error {
	return &myError{
		msg:    fmt.Sprintf("field %q is not declared by the entity schema", key),
		target: ErrUnknownField,
	}
}
