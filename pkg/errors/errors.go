// Package errors provides structured error types used across the application.
// We prefer these over raw fmt.Errorf strings to enable reliable checks with
// errors.Is / errors.As and to carry minimal context about the failure.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so handlers can map it to a response without
// string matching.
type Kind string

const (
	// KindValidation covers invalid input, config, or state from a caller.
	KindValidation Kind = "validation"
	// KindStorage covers database access and query failures.
	KindStorage Kind = "storage"
	// KindIngest covers batch pipeline failures that are neither caller
	// input nor storage problems.
	KindIngest Kind = "ingest"
)

// Error carries the failure kind plus minimal context.
type Error struct {
	Kind Kind
	Op   string // where it happened (package.Function)
	Msg  string // human friendly message
	Err  error  // underlying cause (optional)
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Kind, e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, e.Msg)
}

func (e *Error) Unwrap() error     { return e.Err }
func (e *Error) Operation() string { return e.Op }

// Is matches on kind, so errors.Is(err, &Error{Kind: KindStorage}) works
// regardless of Op/Msg.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

func NewValidation(op, msg string, err error) error {
	return &Error{Kind: KindValidation, Op: op, Msg: msg, Err: err}
}

func NewStorage(op, msg string, err error) error {
	return &Error{Kind: KindStorage, Op: op, Msg: msg, Err: err}
}

func NewIngest(op, msg string, err error) error {
	return &Error{Kind: KindIngest, Op: op, Msg: msg, Err: err}
}

// IsKind reports whether err (or anything it wraps) is an Error of the
// given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
