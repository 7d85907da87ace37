package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies workflow failures so the HTTP layer can pick a status
// per endpoint.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindValidation is a missing or malformed inbound parameter.
	KindValidation
	// KindNotFound means the geocoder returned no result.
	KindNotFound
	// KindUpstream means a provider call failed.
	KindUpstream
	// KindExportFailed means an export target rejected or failed a write.
	KindExportFailed
	// KindNotConfigured means the adapter needed for the call is absent.
	KindNotConfigured
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	case KindExportFailed:
		return "export_failed"
	case KindNotConfigured:
		return "not_configured"
	default:
		return "unknown"
	}
}

// Error is a classified workflow error. Message is safe to show to callers.
type Error struct {
	Kind    ErrorKind
	Message string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// ValidationError builds a KindValidation error.
func ValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFoundError builds a KindNotFound error.
func NotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// UpstreamError builds a KindUpstream error wrapping the provider failure.
func UpstreamError(op, message string, err error) *Error {
	return &Error{Kind: KindUpstream, Op: op, Message: message, Err: err}
}

// ExportError builds a KindExportFailed error.
func ExportError(op string, err error) *Error {
	return &Error{Kind: KindExportFailed, Op: op, Message: "export failed", Err: err}
}

// NotConfiguredError builds a KindNotConfigured error.
func NotConfiguredError(message string) *Error {
	return &Error{Kind: KindNotConfigured, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
