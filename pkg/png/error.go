// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package png

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the errors raised while parsing or manipulating PNG chunks.
type ErrorKind uint8

const (
	// InvalidSignature indicates that the first eight bytes are not the PNG signature.
	InvalidSignature ErrorKind = iota + 1

	// TooShort indicates that fewer bytes are available than a chunk's declared length requires.
	TooShort

	// InvalidType indicates a chunk type which is not made of ASCII letters or,
	// where strict validity is required, has its reserved bit set.
	InvalidType

	// CRCMismatch indicates that a chunk's stored CRC differs from the calculated one.
	CRCMismatch

	// NotFound indicates that no chunk of the requested type exists.
	NotFound

	// InvalidUTF8 indicates a chunk payload which cannot be decoded as text.
	InvalidUTF8
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidSignature:
		return "invalid signature"
	case TooShort:
		return "too short"
	case InvalidType:
		return "invalid chunk type"
	case CRCMismatch:
		return "CRC mismatch"
	case NotFound:
		return "not found"
	case InvalidUTF8:
		return "invalid UTF-8"
	default:
		return "unknown"
	}
}

// Error is the error type of this package. Its Kind allows callers to branch
// on the failure, e.g., by errors.Is(err, png.ErrNotFound).
type Error struct {
	Kind  ErrorKind
	Msg   string
	Cause error
}

// Sentinel values to be used with errors.Is. Only the Kind is compared.
var (
	ErrInvalidSignature = &Error{Kind: InvalidSignature}
	ErrTooShort         = &Error{Kind: TooShort}
	ErrInvalidType      = &Error{Kind: InvalidType}
	ErrCRCMismatch      = &Error{Kind: CRCMismatch}
	ErrNotFound         = &Error{Kind: NotFound}
	ErrInvalidUTF8      = &Error{Kind: InvalidUTF8}
)

// newError creates a new Error of the given kind with a formatted message.
func newError(kind ErrorKind, format string, a ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, a...),
	}
}

// wrapError creates a new Error which keeps the cause's kind, if it has one.
func wrapError(cause error, format string, a ...interface{}) *Error {
	kind, _ := KindOf(cause)
	return &Error{
		Kind:  kind,
		Msg:   fmt.Sprintf(format, a...),
		Cause: cause,
	}
}

func (e *Error) Error() string {
	switch {
	case e.Msg == "" && e.Cause == nil:
		return e.Kind.String()
	case e.Cause == nil:
		return e.Msg
	case e.Msg == "":
		return e.Cause.Error()
	default:
		return e.Msg + ": " + e.Cause.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the ErrorKind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) && e.Kind != 0 {
		return e.Kind, true
	}
	return 0, false
}
