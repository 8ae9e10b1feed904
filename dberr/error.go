// Package dberr implements the preserved-error value: a single vehicle
// for carrying errors across the pipeline/consumer boundary without
// losing their kind or their structured extras.
package dberr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the closed taxonomy of errors this module raises.
type Kind string

const (
	KindClosedStream       Kind = "closed_stream"
	KindInvariantViolation Kind = "invariant_violation"
	KindExecution          Kind = "execution"
	KindDeserialization    Kind = "deserialization"
)

// Error is the preserved-error value: it carries enough to reconstruct
// a final message lazily, compares by (kind, raw message) only, and can
// be re-raised with additional context prepended.
type Error struct {
	Kind       Kind
	RawMessage string
	ExtraInfo  map[string]string

	finalMessage string
	computed     bool
}

// New constructs a preserved error of the given kind.
func New(kind Kind, rawMessage string) *Error {
	return &Error{Kind: kind, RawMessage: rawMessage}
}

// Newf is New with fmt.Sprintf-style formatting of the raw message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// WithExtra attaches a key/value pair of structured context and returns
// the same error for chaining.
func (e *Error) WithExtra(key, value string) *Error {
	if e.ExtraInfo == nil {
		e.ExtraInfo = make(map[string]string)
	}
	e.ExtraInfo[key] = value
	return e
}

// Error implements the standard error interface, computing and caching
// the final message on first call.
func (e *Error) Error() string {
	if !e.computed {
		e.finalMessage = fmt.Sprintf("%s: %s", e.Kind, e.RawMessage)
		e.computed = true
	}
	return e.finalMessage
}

// Equal compares two preserved errors by kind and raw message only —
// the lazily computed final message and extra info are not part of
// identity.
func (e *Error) Equal(other *Error) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Kind == other.Kind && e.RawMessage == other.RawMessage
}

// Reraise prepends context to the raw message and returns a fresh error
// of the same kind, carrying the same extra info. The cached final
// message is recomputed lazily from the new raw message.
func (e *Error) Reraise(context string) *Error {
	raw := e.RawMessage
	if context != "" {
		raw = context + ": " + raw
	}
	out := &Error{
		Kind:       e.Kind,
		RawMessage: raw,
	}
	if e.ExtraInfo != nil {
		out.ExtraInfo = make(map[string]string, len(e.ExtraInfo))
		for k, v := range e.ExtraInfo {
			out.ExtraInfo[k] = v
		}
	}
	return out
}

// Wrap preserves a plain Go error as a preserved error of the given
// kind (an error whose cause already is a *Error is returned as that
// *Error), matching the way the rest of this module's collaborators
// (the task system) hand back errors that must cross the consumer
// boundary.
func Wrap(err error, kind Kind) *Error {
	if err == nil {
		return nil
	}
	if pe, ok := errors.Cause(err).(*Error); ok {
		return pe
	}
	return New(kind, err.Error())
}
