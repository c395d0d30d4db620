// Package errhandling provides the error taxonomy and normalization policy
// for the AI connector runtime. Every failure leaving the execution pipeline
// or the connectivity check converges on a single *PluginError; backend-native
// error types never reach the host.
package errhandling

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Kind classifies a plugin error. The set is closed; hosts render errors
// based on the kind alone.
type Kind string

const (
	// KindConfiguration marks user-correctable configuration problems:
	// unsupported use cases, missing or malformed action fields.
	// Surfaced verbatim, never retried.
	KindConfiguration Kind = "configuration"

	// KindAuthentication marks rejected datasource credentials.
	// Surfaced with a fixed message carrying no backend detail.
	KindAuthentication Kind = "authentication"

	// KindTransport marks network failures, timeouts, and non-2xx backend
	// responses.
	KindTransport Kind = "transport"

	// KindInternal marks unexpected runtime failures. Logged with full
	// detail, surfaced with a generic message.
	KindInternal Kind = "internal"
)

// Fixed user-facing messages.
const (
	// AuthFailedMessage is the only message authentication failures carry.
	AuthFailedMessage = "datasource authentication failed, check the configured credentials"

	// InternalErrorMessage is the generic message for unexpected failures.
	InternalErrorMessage = "an unexpected error occurred while executing the request"
)

// PluginError is the single normalized error type returned by the runtime.
type PluginError struct {
	// Kind is the error classification
	Kind Kind

	// Message is the human-readable message shown to the host
	Message string

	// StatusCode is the backend HTTP status, 0 if none was received
	StatusCode int

	// Err is the underlying error, kept for logging only
	Err error
}

// Error implements the error interface.
func (e *PluginError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a configuration error with the given message.
func NewConfigurationError(format string, args ...interface{}) *PluginError {
	return &PluginError{
		Kind:    KindConfiguration,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewAuthenticationError creates an authentication error. The message is
// fixed; backend error text is never echoed back.
func NewAuthenticationError(statusCode int) *PluginError {
	return &PluginError{
		Kind:       KindAuthentication,
		Message:    AuthFailedMessage,
		StatusCode: statusCode,
	}
}

// NewTransportError creates a transport error wrapping the given cause.
func NewTransportError(message string, err error) *PluginError {
	return &PluginError{
		Kind:    KindTransport,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates an internal error wrapping the given cause.
// The surfaced message is generic; the cause is kept for logging.
func NewInternalError(err error) *PluginError {
	return &PluginError{
		Kind:    KindInternal,
		Message: InternalErrorMessage,
		Err:     err,
	}
}

// ClassifyStatus maps a backend HTTP status code to a PluginError.
// 2xx codes return nil.
//
// Classification rules:
//   - 401, 403: authentication (fixed message)
//   - any other non-2xx: transport
func ClassifyStatus(statusCode int) *PluginError {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == 401 || statusCode == 403:
		return NewAuthenticationError(statusCode)
	default:
		return &PluginError{
			Kind:       KindTransport,
			Message:    fmt.Sprintf("backend request failed with status %d", statusCode),
			StatusCode: statusCode,
		}
	}
}

// Normalize converges any error on a *PluginError. Already normalized errors
// pass through unchanged, so normalization is idempotent. Network-shaped
// errors (timeouts, DNS, connection failures) become transport errors;
// anything else becomes an internal error.
func Normalize(err error) *PluginError {
	if err == nil {
		return nil
	}

	var perr *PluginError
	if errors.As(err, &perr) {
		return perr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewTransportError("backend request timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return NewTransportError("backend request canceled", err)
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	var urlErr *url.Error
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) || errors.As(err, &urlErr) {
		return NewTransportError(fmt.Sprintf("backend request failed: %v", err), err)
	}

	type timeoutError interface {
		Timeout() bool
	}
	var tErr timeoutError
	if errors.As(err, &tErr) && tErr.Timeout() {
		return NewTransportError("backend request timed out", err)
	}

	return NewInternalError(err)
}

// IsKind reports whether err normalizes to the given kind.
func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	var perr *PluginError
	if errors.As(err, &perr) {
		return perr.Kind == kind
	}
	return Normalize(err).Kind == kind
}
