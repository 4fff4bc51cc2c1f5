// Package faults carries the error taxonomy shared by the relay handlers,
// the compose providers and the API client. Every failure that crosses a
// package boundary is classified so handlers can pick an HTTP status and
// clients can pick a user-facing message without string matching.
package faults

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure.
type Kind int

const (
	// Unknown is the zero value for errors that were never classified.
	Unknown Kind = iota
	// Validation marks a malformed or incomplete request (client-correctable).
	Validation
	// Configuration marks a deployment defect such as a missing webhook URL.
	Configuration
	// Upstream marks any failure attributable to an external service.
	Upstream
	// UpstreamAuth marks an authorization failure from an external service.
	UpstreamAuth
	// UpstreamRateLimited marks a rate-limit signal from an external service.
	UpstreamRateLimited
	// Shape marks an upstream response that does not match the expected
	// nested contract.
	Shape
	// PayloadDecode marks an embedded payload that could not be parsed.
	PayloadDecode
	// Timeout marks a call that exceeded its deadline.
	Timeout
	// Network marks a transport-level failure before any response arrived.
	Network
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Configuration:
		return "configuration"
	case Upstream:
		return "upstream"
	case UpstreamAuth:
		return "upstream_auth"
	case UpstreamRateLimited:
		return "upstream_rate_limited"
	case Shape:
		return "shape"
	case PayloadDecode:
		return "payload_decode"
	case Timeout:
		return "timeout"
	case Network:
		return "network"
	default:
		return "unknown"
	}
}

// Fault is a classified error with a message safe to show to callers.
// The wrapped error (if any) is for operator logs only.
type Fault struct {
	Kind Kind
	Msg  string
	Err  error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Msg, f.Err)
	}
	return f.Msg
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// New creates a classified error.
func New(kind Kind, msg string) *Fault {
	return &Fault{Kind: kind, Msg: msg}
}

// Newf creates a classified error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an existing error. The message is what callers see;
// err is preserved for logs and errors.Is/As chains.
func Wrap(kind Kind, msg string, err error) *Fault {
	return &Fault{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the classification of err, or Unknown if err carries none.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return Unknown
}

// Message returns the caller-safe message of err. Unclassified errors fall
// back to the given generic message so internal details never leak out.
func Message(err error, fallback string) string {
	var f *Fault
	if errors.As(err, &f) && f.Msg != "" {
		return f.Msg
	}
	return fallback
}

// HTTPStatus maps a classification to the relay's response status.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case UpstreamAuth:
		return http.StatusUnauthorized
	case UpstreamRateLimited:
		return http.StatusTooManyRequests
	case Timeout:
		return http.StatusGatewayTimeout
	default:
		// Configuration, Upstream, Shape, PayloadDecode, Network, Unknown.
		return http.StatusInternalServerError
	}
}
