package errhandling

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"testing"
)

func TestKindConstants(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindConfiguration, "configuration"},
		{KindAuthentication, "authentication"},
		{KindTransport, "transport"},
		{KindInternal, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if string(tt.kind) != tt.expected {
				t.Errorf("Kind = %v, want %v", tt.kind, tt.expected)
			}
		})
	}
}

func TestPluginErrorMessage(t *testing.T) {
	err := &PluginError{Kind: KindTransport, Message: "connection refused"}
	if !strings.Contains(err.Error(), "transport") || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q, want kind and message", err.Error())
	}

	withStatus := &PluginError{Kind: KindTransport, Message: "server error", StatusCode: 502}
	if !strings.Contains(withStatus.Error(), "502") {
		t.Errorf("Error() = %q, want status code", withStatus.Error())
	}
}

func TestPluginErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewTransportError("failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestNewAuthenticationErrorUsesFixedMessage(t *testing.T) {
	err := NewAuthenticationError(401)

	if err.Message != AuthFailedMessage {
		t.Errorf("Message = %q, want the fixed authentication message", err.Message)
	}
	if strings.Contains(err.Message, "401") {
		t.Error("authentication message must not echo the backend status text")
	}
}

func TestNewInternalErrorUsesGenericMessage(t *testing.T) {
	cause := errors.New("secret internal detail")
	err := NewInternalError(cause)

	if err.Message != InternalErrorMessage {
		t.Errorf("Message = %q, want the generic internal message", err.Message)
	}
	if strings.Contains(err.Message, "secret") {
		t.Error("internal error message must not leak the cause")
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantKind   Kind
		wantNil    bool
	}{
		{"200 is success", 200, "", true},
		{"204 is success", 204, "", true},
		{"401 is authentication", 401, KindAuthentication, false},
		{"403 is authentication", 403, KindAuthentication, false},
		{"400 is transport", 400, KindTransport, false},
		{"404 is transport", 404, KindTransport, false},
		{"429 is transport", 429, KindTransport, false},
		{"500 is transport", 500, KindTransport, false},
		{"503 is transport", 503, KindTransport, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyStatus(tt.statusCode)
			if tt.wantNil {
				if err != nil {
					t.Fatalf("ClassifyStatus(%d) = %v, want nil", tt.statusCode, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ClassifyStatus(%d) = nil, want %s", tt.statusCode, tt.wantKind)
			}
			if err.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", err.Kind, tt.wantKind)
			}
			if err.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %d, want %d", err.StatusCode, tt.statusCode)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	original := NewConfigurationError("missing field")

	normalized := Normalize(original)
	if normalized != original {
		t.Error("normalizing an already normalized error must pass it through")
	}

	wrapped := fmt.Errorf("context: %w", original)
	if got := Normalize(wrapped); got != original {
		t.Error("normalizing a wrapped plugin error must unwrap to it")
	}
}

func TestNormalizeTimeout(t *testing.T) {
	err := Normalize(context.DeadlineExceeded)
	if err.Kind != KindTransport {
		t.Errorf("Kind = %s, want transport for deadline exceeded", err.Kind)
	}
}

func TestNormalizeNetworkErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"op error", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}},
		{"dns error", &net.DNSError{Name: "backend.example.com", Err: "no such host"}},
		{"url error", &url.Error{Op: "Get", URL: "https://backend", Err: errors.New("refused")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.err)
			if got.Kind != KindTransport {
				t.Errorf("Kind = %s, want transport", got.Kind)
			}
		})
	}
}

func TestNormalizeUnknownErrorIsInternal(t *testing.T) {
	err := Normalize(errors.New("something unexpected"))

	if err.Kind != KindInternal {
		t.Errorf("Kind = %s, want internal", err.Kind)
	}
	if err.Message != InternalErrorMessage {
		t.Errorf("Message = %q, want the generic internal message", err.Message)
	}
}

func TestNormalizeNil(t *testing.T) {
	if got := Normalize(nil); got != nil {
		t.Errorf("Normalize(nil) = %v, want nil", got)
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewConfigurationError("bad field"))

	if !IsKind(err, KindConfiguration) {
		t.Error("IsKind should see through wrapping")
	}
	if IsKind(err, KindTransport) {
		t.Error("IsKind matched the wrong kind")
	}
	if IsKind(nil, KindInternal) {
		t.Error("IsKind(nil) should be false")
	}
}
