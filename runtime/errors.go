package cbor

import (
	"errors"
	"strconv"
)

const resumableDefault = false

var (
	// ErrShortBytes is returned when the byte source is exhausted
	// before the bytes required for the current value could be read.
	// It is the only end-of-stream error; every other error in this
	// package indicates malformed or unexpected content.
	ErrShortBytes error = errShort{}

	// ErrMaxDepthExceeded is returned when recursion depth exceeds the
	// limit during Skip, Diag, JSON, or well-formedness validation.
	ErrMaxDepthExceeded error = errors.New("cbor: max depth exceeded")

	// ErrNotNil is returned when expecting null
	ErrNotNil error = errors.New("cbor: not null")

	// ErrNotUndefined is returned when expecting the undefined marker
	ErrNotUndefined error = errors.New("cbor: not undefined")

	// ErrNotBreak is returned when a break stop-code was expected but
	// some other item was found.
	ErrNotBreak error = errors.New("cbor: not a break stop-code")

	// ErrInvalidUTF8 is returned when a text string contains invalid UTF-8
	ErrInvalidUTF8 error = errors.New("cbor: invalid UTF-8 in text string")

	// ErrIndefiniteForbidden is returned when an indefinite-length item is
	// present but deterministic decoding forbids it.
	ErrIndefiniteForbidden error = errors.New("cbor: indefinite-length item not allowed in deterministic mode")

	// ErrNonCanonicalLength is returned in strict mode when a length or
	// integer is not encoded in the shortest form.
	ErrNonCanonicalLength error = errors.New("cbor: non-canonical length encoding")

	// ErrNonCanonicalFloat is returned in strict mode when a float is not
	// encoded in the shortest form that represents it exactly.
	ErrNonCanonicalFloat = errors.New("cbor: non-canonical float encoding")

	// ErrContainerTooLarge is returned when a container or string length
	// exceeds the configured Decoder limit.
	ErrContainerTooLarge = errors.New("cbor: container too large")

	// ErrPeekUnsupported is returned by NextType when the underlying
	// ByteSource cannot expose upcoming bytes without consuming them.
	ErrPeekUnsupported = errors.New("cbor: byte source does not support peeking")
)

// Error is the interface satisfied
// by all of the errors that originate
// from this package.
type Error interface {
	error

	// Resumable returns whether
	// or not the error means that
	// the stream of data is malformed
	// and the information is unrecoverable.
	Resumable() bool
}

// contextError allows Error instances to be enhanced with additional
// context about their origin.
type contextError interface {
	Error

	// withContext must not modify the error instance - it must clone and
	// return a new error with the context added.
	withContext(ctx string) error
}

// Cause returns the underlying cause of an error that has been wrapped
// with additional context.
func Cause(e error) error {
	out := e
	if e, ok := e.(errWrapped); ok && e.cause != nil {
		out = e.cause
	}
	return out
}

// Resumable returns whether or not the error means that the stream of data is
// malformed and the information is unrecoverable.
//
// A streaming decode is never safe to retry on the same cursor position,
// since partial reads have already advanced it; Resumable only reports
// whether the bytes themselves were well-formed.
func Resumable(e error) bool {
	if e, ok := e.(Error); ok {
		return e.Resumable()
	}
	return resumableDefault
}

// WrapError wraps an error with additional context that allows the part of the
// serialized type that caused the problem to be identified. Underlying errors
// can be retrieved using Cause()
//
// The input error is not modified - a new error should be returned.
//
// ErrShortBytes is not wrapped with any context due to backward compatibility
// issues with the public API.
func WrapError(err error, ctx ...any) error {
	switch e := err.(type) {
	case errShort:
		return e
	case contextError:
		return e.withContext(ctxString(ctx))
	default:
		return errWrapped{cause: err, ctx: ctxString(ctx)}
	}
}

func addCtx(ctx, add string) string {
	if ctx != "" {
		return add + "/" + ctx
	} else {
		return add
	}
}

// errWrapped allows arbitrary errors passed to WrapError to be enhanced with
// context and unwrapped with Cause()
type errWrapped struct {
	cause error
	ctx   string
}

func (e errWrapped) Error() string {
	if e.ctx != "" {
		return e.cause.Error() + " at " + e.ctx
	} else {
		return e.cause.Error()
	}
}

func (e errWrapped) Resumable() bool {
	if e, ok := e.cause.(Error); ok {
		return e.Resumable()
	}
	return resumableDefault
}

// Unwrap returns the cause.
func (e errWrapped) Unwrap() error { return e.cause }

type errShort struct{}

func (e errShort) Error() string   { return "cbor: too few bytes left to read object" }
func (e errShort) Resumable() bool { return false }

// IntOverflow is returned when a call
// would downcast an integer to a type
// with too few bits to hold its value.
type IntOverflow struct {
	Value         int64 // the value of the integer
	FailedBitsize int   // the bit size that the int64 could not fit into
	ctx           string
}

// Error implements the error interface
func (i IntOverflow) Error() string {
	str := "cbor: " + strconv.FormatInt(i.Value, 10) + " overflows int" + strconv.Itoa(i.FailedBitsize)
	if i.ctx != "" {
		str += " at " + i.ctx
	}
	return str
}

// Resumable is always 'true' for overflows
func (i IntOverflow) Resumable() bool { return true }

func (i IntOverflow) withContext(ctx string) error { i.ctx = addCtx(i.ctx, ctx); return i }

// UintOverflow is returned when a call
// would downcast an unsigned integer to a type
// with too few bits to hold its value
type UintOverflow struct {
	Value         uint64 // value of the uint
	FailedBitsize int    // the bit size that couldn't fit the value
	ctx           string
}

// Error implements the error interface
func (u UintOverflow) Error() string {
	str := "cbor: " + strconv.FormatUint(u.Value, 10) + " overflows uint" + strconv.Itoa(u.FailedBitsize)
	if u.ctx != "" {
		str += " at " + u.ctx
	}
	return str
}

// Resumable is always 'true' for overflows
func (u UintOverflow) Resumable() bool { return true }

func (u UintOverflow) withContext(ctx string) error { u.ctx = addCtx(u.ctx, ctx); return u }

// LengthOverflowError is returned when a declared length or magnitude
// cannot be represented as a non-negative signed 64-bit count.
type LengthOverflowError struct {
	Value uint64
}

// Error implements the error interface
func (l LengthOverflowError) Error() string {
	return "cbor: declared length " + strconv.FormatUint(l.Value, 10) + " is not representable"
}

// Resumable returns 'false' for LengthOverflowErrors
func (l LengthOverflowError) Resumable() bool { return false }

// A TypeError is returned when a particular
// decoding method is unsuitable for decoding
// a particular CBOR value.
type TypeError struct {
	Method  Type // Type expected by method
	Encoded Type // Type actually encoded

	ctx string
}

// Error implements the error interface
func (t TypeError) Error() string {
	out := "cbor: attempted to decode type " + quoteStr(t.Encoded.String()) + " with method for " + quoteStr(t.Method.String())
	if t.ctx != "" {
		out += " at " + t.ctx
	}
	return out
}

// Resumable returns 'true' for TypeErrors
func (t TypeError) Resumable() bool { return true }

func (t TypeError) withContext(ctx string) error { t.ctx = addCtx(t.ctx, ctx); return t }

// badPrefix returns an InvalidPrefixError for a lead byte whose major
// type does not match what the calling operation expects.
func badPrefix(wantMajor uint8, gotMajor uint8) error {
	return InvalidPrefixError{Want: wantMajor, Got: gotMajor}
}

// InvalidPrefixError is returned when a bad encoding
// uses a major type that is not expected.
// This kind of error is unrecoverable.
type InvalidPrefixError struct {
	Want uint8
	Got  uint8
}

// Error implements the error interface
func (i InvalidPrefixError) Error() string {
	return "cbor: expected major type " + strconv.Itoa(int(i.Want)) + " but got " + strconv.Itoa(int(i.Got))
}

// Resumable returns 'false' for InvalidPrefixErrors
func (i InvalidPrefixError) Resumable() bool { return false }

// InvalidAdditionalInfoError is returned when the 5-bit additional
// information field of a lead byte is one of the reserved values 28-30,
// or is otherwise not legal for the operation in progress (for example
// a break stop-code where a concrete payload was required).
type InvalidAdditionalInfoError struct {
	Major uint8
	Info  uint8
}

// Error implements the error interface
func (e InvalidAdditionalInfoError) Error() string {
	return "cbor: invalid additional info " + strconv.Itoa(int(e.Info)) +
		" for major type " + strconv.Itoa(int(e.Major))
}

// Resumable returns 'false' for InvalidAdditionalInfoErrors
func (e InvalidAdditionalInfoError) Resumable() bool { return false }

// WidthMismatchError is returned by the strict fixed-width readers when
// the lead byte's width marker does not exactly match the width the
// caller requested. The decoder never silently widens or truncates.
type WidthMismatchError struct {
	Want uint8 // required additional info value
	Got  uint8 // additional info value found on the wire
	ctx  string
}

// Error implements the error interface
func (w WidthMismatchError) Error() string {
	out := "cbor: expected " + widthName(w.Want) + " payload but got " + widthName(w.Got)
	if w.ctx != "" {
		out += " at " + w.ctx
	}
	return out
}

// Resumable returns 'true' for WidthMismatchErrors
func (w WidthMismatchError) Resumable() bool { return true }

func (w WidthMismatchError) withContext(ctx string) error { w.ctx = addCtx(w.ctx, ctx); return w }

// widthName renders an additional-info value as a payload width.
func widthName(add uint8) string {
	switch {
	case add <= addInfoDirect:
		return "inline"
	case add == addInfoUint8:
		return "one-byte"
	case add == addInfoUint16:
		return "two-byte"
	case add == addInfoUint32:
		return "four-byte"
	case add == addInfoUint64:
		return "eight-byte"
	case add == addInfoIndefinite:
		return "indefinite"
	default:
		return "reserved"
	}
}

// TagError is returned when a specific semantic tag was expected but a
// different tag number was found.
type TagError struct {
	Want uint64
	Got  uint64
	ctx  string
}

// Error implements the error interface
func (t TagError) Error() string {
	out := "cbor: expected tag " + strconv.FormatUint(t.Want, 10) + " but got " + strconv.FormatUint(t.Got, 10)
	if t.ctx != "" {
		out += " at " + t.ctx
	}
	return out
}

// Resumable returns 'true' for TagErrors
func (t TagError) Resumable() bool { return true }

func (t TagError) withContext(ctx string) error { t.ctx = addCtx(t.ctx, ctx); return t }

func quoteStr(s string) string { return "'" + s + "'" }

func ctxString(ctx []any) string {
	out := ""
	for _, c := range ctx {
		switch v := c.(type) {
		case string:
			out = addCtx(out, v)
		case int:
			out = addCtx(out, strconv.Itoa(v))
		}
	}
	return out
}
