// Package bcerr defines the decode error taxonomy shared by every codec in
// internal/columnar and internal/bitio. Encoding is infallible; decoding
// surfaces exactly one of three kinds: Eof, Invalid, or ExpectedEof.
package bcerr

import (
	"errors"
	"fmt"
)

// Kind identifies which of the three decode failure modes occurred.
type Kind int

const (
	// Eof means the input ended before a required bit could be read, or a
	// declared column body exceeds the remaining bits.
	Eof Kind = iota + 1
	// Invalid means a discriminant, bounded scalar, gamma code, or string
	// failed validation, or a recursion depth limit was exceeded.
	Invalid
	// ExpectedEof means decode completed but unconsumed bits remain beyond
	// the final byte's zero padding.
	ExpectedEof
)

func (k Kind) String() string {
	switch k {
	case Eof:
		return "eof"
	case Invalid:
		return "invalid"
	case ExpectedEof:
		return "expected eof"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by every decode path. Kind
// classifies the failure; Op and Msg describe where and why.
type Error struct {
	Kind Kind
	Op   string // the component that detected the failure, e.g. "bitio.ReadBits"
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("bitcode: %s: %s", e.Op, e.Kind)
	}

	return fmt.Sprintf("bitcode: %s: %s: %s", e.Op, e.Kind, e.Msg)
}

// Is reports whether target is the same Kind as e, so that callers can
// write errors.Is(err, bcerr.Eof) against the package-level sentinels below.
func (e *Error) Is(target error) bool {
	k, ok := target.(sentinel)
	return ok && e.Kind == Kind(k)
}

// sentinel lets the package-level Eof/Invalid/ExpectedEof values below
// double as errors.Is match targets without allocating an *Error for each.
type sentinel Kind

func (s sentinel) Error() string { return Kind(s).String() }

// Sentinels for errors.Is(err, bcerr.Eof) style checks.
var (
	EofErr         error = sentinel(Eof)
	InvalidErr     error = sentinel(Invalid)
	ExpectedEofErr error = sentinel(ExpectedEof)
)

// New constructs an *Error of the given kind.
func New(kind Kind, op, msg string) error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Newf constructs an *Error of the given kind with a formatted message.
func Newf(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err, or 0 if err is not a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}
