// Package errors is the project error type. Import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error for clients. Values go on the wire; append
// new codes, never reorder
type ErrorCode uint16

const (
	// ErrorCodeUnknown is anything unclassified
	ErrorCodeUnknown ErrorCode = iota
	// ErrorCodePanic is a handler panic caught by middleware
	ErrorCodePanic
	// ErrorCodeUnavailable is a transport failure reaching the upstream
	ErrorCodeUnavailable
	// ErrorCodeUpstream is an upstream that answered but not usefully:
	// non-200, an API error payload or an undecodable body
	ErrorCodeUpstream
	// ErrorCodeInvalidArgument is a well-formed request asking for something
	// that does not exist as an option, like an unknown export format
	ErrorCodeInvalidArgument
	// ErrorCodeValidation is a request body failing its field rules
	ErrorCodeValidation
	// ErrorCodeJSON is a request body that is not the expected JSON
	ErrorCodeJSON
	// ErrorCodeNotFound is a missing resource, like figure 5
	ErrorCodeNotFound
)

var codeTable = map[ErrorCode]struct {
	name      string
	status    int
	retryable bool
}{
	ErrorCodeUnknown:         {"unknown", http.StatusInternalServerError, false},
	ErrorCodePanic:           {"panic", http.StatusInternalServerError, false},
	ErrorCodeUnavailable:     {"unavailable", http.StatusServiceUnavailable, true},
	ErrorCodeUpstream:        {"upstream", http.StatusBadGateway, true},
	ErrorCodeInvalidArgument: {"invalid_argument", http.StatusUnprocessableEntity, false},
	ErrorCodeValidation:      {"validation", http.StatusBadRequest, false},
	ErrorCodeJSON:            {"json", http.StatusBadRequest, false},
	ErrorCodeNotFound:        {"not_found", http.StatusNotFound, false},
}

// String is the code's log name, e.g. "upstream"
func (c ErrorCode) String() string {
	if row, ok := codeTable[c]; ok {
		return row.name
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// HTTPStatus is the response status for c; unknown codes are 500
func (c ErrorCode) HTTPStatus() int {
	if row, ok := codeTable[c]; ok {
		return row.status
	}
	return http.StatusInternalServerError
}

// Retryable reports whether a request failing with c could succeed later.
// Only upstream trouble qualifies
func (c ErrorCode) Retryable() bool { return codeTable[c].retryable }

// Error is a coded error. Message, code and field are shown to clients; the
// op label and the cause stay in logs
type Error struct {
	code  ErrorCode
	msg   string
	field string
	op    string
	cause error
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.cause == nil:
		return e.msg
	default:
		return e.msg + ": " + e.cause.Error()
	}
}

// Unwrap returns the cause
func (e *Error) Unwrap() error { return e.cause }

// Code is the error's code
func (e *Error) Code() ErrorCode { return e.code }

// Field is the offending input field, if any
func (e *Error) Field() string { return e.field }

// Op is the operation label, if any
func (e *Error) Op() string { return e.op }

// New returns a coded error
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return New(code, fmt.Sprintf(format, a...))
}

// Wrap returns a coded error over cause
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

// Wrapf is Wrap with a formatted message
func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return Wrap(cause, code, fmt.Sprintf(format, a...))
}

// WrapIf is Wrap that keeps a nil cause nil
func WrapIf(cause error, code ErrorCode, msg string) error {
	if cause == nil {
		return nil
	}
	return Wrap(cause, code, msg)
}

func coded(code ErrorCode) func(string, ...any) error {
	return func(format string, a ...any) error { return Newf(code, format, a...) }
}

// Shorthands for Newf with a fixed code
var (
	NotFoundf    = coded(ErrorCodeNotFound)
	InvalidArgf  = coded(ErrorCodeInvalidArgument)
	JSONErrf     = coded(ErrorCodeJSON)
	PanicErrf    = coded(ErrorCodePanic)
	Unavailablef = coded(ErrorCodeUnavailable)
	Upstreamf    = coded(ErrorCodeUpstream)
	Internalf    = coded(ErrorCodeUnknown)
)

func annotate(err error, set func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	cp := *e
	set(&cp)
	return &cp
}

// WithField copies err with the offending field set. Foreign errors pass
// through unchanged
func WithField(err error, field string) error {
	return annotate(err, func(e *Error) { e.field = field })
}

// WithOp copies err with an operation label. Foreign errors pass through
// unchanged
func WithOp(err error, op string) error {
	return annotate(err, func(e *Error) { e.op = op })
}

// As finds the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf is err's code; foreign and nil errors are Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus is the response status for err
func HTTPStatus(err error) int { return CodeOf(err).HTTPStatus() }

// Retryable reports whether the same request could succeed later. Nothing
// in-process retries on it
func Retryable(err error) bool { return err != nil && CodeOf(err).Retryable() }

// Wire is what clients see of an error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// WireFrom is the client view of err. Foreign errors are Unknown with their
// full text; nil is the zero Wire
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}
