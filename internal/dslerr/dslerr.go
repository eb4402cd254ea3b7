// Package dslerr defines the two error kinds raised by the step DSL:
// a value of the wrong shape, and a value that breaks a domain rule.
package dslerr

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	TypeMismatch Kind = iota + 1
	PreconditionViolation
)

func (k Kind) String() string {
	switch k {
	case TypeMismatch:
		return "type mismatch"
	case PreconditionViolation:
		return "precondition violation"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Any *Error matches the sentinel of its Kind.
var (
	ErrTypeMismatch = &Error{Kind: TypeMismatch}
	ErrPrecondition = &Error{Kind: PreconditionViolation}
)

// Error is returned before any state is mutated.
type Error struct {
	Kind Kind
	Op   string // e.g. "parse", "mark_failed"
	Msg  string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	if t.Op == "" && t.Msg == "" {
		return e.Kind == t.Kind
	}
	return *e == *t
}

func Type(op, msg string) *Error {
	return &Error{Kind: TypeMismatch, Op: op, Msg: msg}
}

func Precondition(op, msg string) *Error {
	return &Error{Kind: PreconditionViolation, Op: op, Msg: msg}
}

// RequireNonBlank returns a PreconditionViolation when s is empty after trimming.
func RequireNonBlank(op, msg, s string) error {
	if strings.TrimSpace(s) == "" {
		return Precondition(op, msg)
	}
	return nil
}

// KindOf reports the Kind carried by err, or 0 if err is not a DSL error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
