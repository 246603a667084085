package mech

import (
	"errors"
	"fmt"
)

// Domain errors for mechanics operations.
var (
	// ErrDimensionMismatch indicates parallel sequences of different length.
	ErrDimensionMismatch = errors.New("mech: dimension mismatch")

	// ErrInvalidParameter indicates a value outside its valid range or an
	// unrecognized strategy name.
	ErrInvalidParameter = errors.New("mech: invalid parameter")

	// ErrInsufficientData indicates too few samples for the operation.
	ErrInsufficientData = errors.New("mech: insufficient data")

	// ErrDivisionSingularity indicates a denominator collapsed to zero.
	ErrDivisionSingularity = errors.New("mech: division singularity")
)

// ParamError wraps a domain error with the operation, parameter name and
// offending value.
type ParamError struct {
	Op    string
	Param string
	Value any
	Err   error
}

func (e *ParamError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Op + ": " + e.Err.Error()
	if e.Param != "" {
		msg += fmt.Sprintf(" (%s=%v)", e.Param, e.Value)
	}
	return msg
}

func (e *ParamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Errorf builds a ParamError.
func Errorf(op string, kind error, param string, value any) error {
	return &ParamError{Op: op, Param: param, Value: value, Err: kind}
}
