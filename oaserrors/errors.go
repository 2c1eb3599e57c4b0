// Package oaserrors provides the sentinel error kinds used at the pipeline
// boundary (spec §7: IO, Parse, Cancellation). Pass-local
// failures never reach here — they are logged and swallowed by the pass
// itself.
package oaserrors

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// separator divides a sentinel's message from its wrapped cause when the
// combined error is rendered as a string.
const separator = " -- "

// Error is a string-based error type that supports defining sentinel
// constants in this package while still participating in errors.Is/As.
type Error string

func (e Error) Error() string { return string(e) }

// Is reports whether target is this sentinel, or a value wrapped with it.
func (e Error) Is(target error) bool {
	return e.Error() == target.Error() || strings.HasPrefix(target.Error(), e.Error()+separator)
}

// As sets target to e if target is addressable as Error.
func (e Error) As(target interface{}) bool {
	v := reflect.ValueOf(target).Elem()
	if v.Type().Name() == "Error" && v.CanSet() {
		v.SetString(string(e))
		return true
	}
	return false
}

// Wrap attaches cause to this sentinel, producing an error whose message
// is "<sentinel> -- <cause>" and which unwraps back to cause.
func (e Error) Wrap(cause error) error {
	return wrapped{sentinel: e, cause: cause}
}

type wrapped struct {
	sentinel Error
	cause    error
}

func (w wrapped) Error() string {
	if w.cause == nil {
		return string(w.sentinel)
	}
	return fmt.Sprintf("%s%s%v", w.sentinel, separator, w.cause)
}

func (w wrapped) Is(target error) bool { return w.sentinel.Is(target) }
func (w wrapped) As(target any) bool   { return w.sentinel.As(target) }
func (w wrapped) Unwrap() error        { return w.cause }

// Sentinel error kinds from spec §7. Pass-local failures and Invariant
// failures are logged at warn and do not produce these — only IO failures,
// an undecodable source, and cooperative cancellation propagate out of Fix.
const (
	// ErrIO indicates the source could not be read or the target could not
	// be written.
	ErrIO = Error("oasnormalize: io error")
	// ErrParse indicates the source document could not be parsed. Fix
	// returns it and writes no target; the parser recovers no partial
	// graph.
	ErrParse = Error("oasnormalize: parse error")
	// ErrCancelled indicates the cooperative cancellation token was
	// observed at an outer iteration boundary.
	ErrCancelled = Error("oasnormalize: cancelled")
)

// Is is a thin re-export of errors.Is for callers that only import this
// package.
func Is(err, target error) bool { return errors.Is(err, target) }

// As is a thin re-export of errors.As.
func As(err error, target any) bool { return errors.As(err, target) }
