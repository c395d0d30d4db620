// Package connector provides the public types exchanged between a host
// application and the AI connector runtime. Hosts construct datasource and
// action configurations from their own storage and receive execution results
// and connectivity test results back; nothing in this package carries
// behavior.
package connector

import "time"

// Authentication types supported by the connector.
const (
	// AuthTypeBearerToken authenticates with an "Authorization: Bearer" header.
	AuthTypeBearerToken = "bearerToken"

	// AuthTypeAPIKey authenticates with an API key sent in a request header.
	AuthTypeAPIKey = "apiKey"
)

// AuthConfig defines the authentication descriptor of a datasource.
type AuthConfig struct {
	// Type is the authentication type ("bearerToken" or "apiKey")
	Type string `json:"type"`

	// Credentials contains the authentication credentials.
	// For bearerToken: {"token": "..."}.
	// For apiKey: {"key": "...", "headerName": "..."} (headerName optional).
	Credentials map[string]string `json:"credentials"`
}

// Property is a generic key/value configuration entry attached to a
// datasource, such as an uploaded reference file.
type Property struct {
	// Key identifies the property
	Key string `json:"key"`

	// Value is the property payload; shape depends on the key
	Value interface{} `json:"value"`
}

// UploadedFile is a reference file attached to a datasource, carried as
// base64 content so it can be registered with the backend on save.
type UploadedFile struct {
	// Name is the original file name
	Name string `json:"name"`

	// Base64Content is the file content, base64-encoded
	Base64Content string `json:"base64Content"`
}

// DatasourceConfig is the host-provided configuration of an AI datasource.
// Persistence of this structure is the host's responsibility; the runtime
// only reads it.
type DatasourceConfig struct {
	// ID is the unique identifier of the datasource
	ID string `json:"id"`

	// URL optionally overrides the backend base URL for this datasource
	URL string `json:"url,omitempty"`

	// Authentication holds the credential used against the backend
	Authentication *AuthConfig `json:"authentication,omitempty"`

	// Properties carries additional datasource settings, such as
	// uploaded reference files
	Properties []Property `json:"properties,omitempty"`
}

// ActionConfig is the generic, form-field-keyed configuration of a single
// action. Query builders extract their feature-specific fields from FormData.
type ActionConfig struct {
	// FormData maps form field names to their configured values
	FormData map[string]interface{} `json:"formData"`

	// Headers are extra headers to send with the backend request
	Headers map[string]string `json:"headers,omitempty"`

	// AutoGeneratedHeaders are headers produced by the host's tooling;
	// they are promoted into Headers before execution unless overridden
	AutoGeneratedHeaders map[string]string `json:"autoGeneratedHeaders,omitempty"`

	// TimeoutMs optionally overrides the request timeout in milliseconds
	TimeoutMs int `json:"timeoutMs,omitempty"`
}

// ExecutionTrace is a diagnostic snapshot of a dispatched backend request.
// It is captured before dispatch, so it is available whether or not the
// request later succeeds.
type ExecutionTrace struct {
	// RequestID uniquely identifies this invocation
	RequestID string `json:"requestId"`

	// Method is the HTTP method of the backend request
	Method string `json:"method"`

	// URL is the backend endpoint the request targets
	URL string `json:"url"`

	// Headers is a redacted view of the request headers; credential
	// values are masked
	Headers map[string]string `json:"headers,omitempty"`

	// BodyPreview is a truncated rendering of the request payload
	BodyPreview string `json:"bodyPreview,omitempty"`

	// CapturedAt is when the trace was recorded
	CapturedAt time.Time `json:"capturedAt"`
}

// ExecutionError describes a normalized execution failure. The Kind is drawn
// from a small closed taxonomy the host can render; raw backend exception
// types never reach the host.
type ExecutionError struct {
	// Kind is the error classification ("configuration", "authentication",
	// "transport", "internal")
	Kind string `json:"kind"`

	// Message is the human-readable error message
	Message string `json:"message"`

	// StatusCode is the backend HTTP status, when one was received
	StatusCode int `json:"statusCode,omitempty"`
}

// ExecutionResult is the outcome of a single action invocation.
// Exactly one of Body (on success) or Error (on failure) is populated;
// the trace is present in both cases.
type ExecutionResult struct {
	// Success indicates whether the invocation succeeded
	Success bool `json:"success"`

	// Body is the backend response body on success
	Body interface{} `json:"body,omitempty"`

	// Trace is the pre-dispatch request snapshot
	Trace *ExecutionTrace `json:"trace,omitempty"`

	// Error holds the normalized failure on unsuccessful invocations
	Error *ExecutionError `json:"error,omitempty"`
}

// TestResult is the outcome of a datasource connectivity probe.
type TestResult struct {
	// Success indicates whether the probe succeeded
	Success bool `json:"success"`

	// Message carries a human-readable failure description; empty on success
	Message string `json:"message,omitempty"`
}
