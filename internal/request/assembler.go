// Package request assembles backend request envelopes and captures execution
// traces. The trace is produced before dispatch so diagnostics exist even
// when the downstream call fails.
package request

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/aiconnect/runtime/internal/feature"
	"github.com/aiconnect/runtime/pkg/connector"
)

// maxBodyPreview bounds the trace's payload rendering.
const maxBodyPreview = 512

// redactedValue replaces credential-bearing header values in traces.
const redactedValue = "***"

// Param is a single execution parameter supplied by the host for one
// invocation (for example a bound form value).
type Param struct {
	// Key is the parameter name
	Key string `json:"key"`

	// Value is the parameter value
	Value string `json:"value"`
}

// Envelope pairs a feature with its query and the caller's datasource
// identity. It is the unit sent to the backend; it has no lifecycle beyond
// the dispatch call.
type Envelope struct {
	// Feature is the use case being executed
	Feature feature.Feature `json:"feature"`

	// Query is the validated feature-specific payload
	Query feature.Query `json:"query"`

	// DatasourceID identifies the backend-side datasource context
	DatasourceID string `json:"datasourceId,omitempty"`
}

// Fingerprint returns a stable hex digest of the envelope content. Together
// with the credential hash it forms the response cache key, so two different
// queries never share a cache entry.
func (e Envelope) Fingerprint() (string, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("fingerprinting request envelope: %w", err)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// Assemble combines a feature, its query, and the datasource identity into a
// request envelope, and records the execution trace for the invocation.
// The trace carries a redacted header view and a truncated payload preview;
// url is the backend endpoint the envelope will be dispatched to.
func Assemble(f feature.Feature, q feature.Query, datasourceID string, params []Param, url string, headers map[string]string) (Envelope, *connector.ExecutionTrace) {
	envelope := Envelope{
		Feature:      f,
		Query:        q,
		DatasourceID: datasourceID,
	}

	trace := &connector.ExecutionTrace{
		RequestID:   uuid.NewString(),
		Method:      http.MethodPost,
		URL:         url,
		Headers:     redactHeaders(headers),
		BodyPreview: previewBody(envelope, params),
		CapturedAt:  time.Now().UTC(),
	}

	return envelope, trace
}

// redactHeaders copies the header map, masking credential-bearing values.
func redactHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	redacted := make(map[string]string, len(headers))
	for name, value := range headers {
		if isSensitiveHeader(name) {
			redacted[name] = redactedValue
		} else {
			redacted[name] = value
		}
	}
	return redacted
}

// isSensitiveHeader reports whether a header carries credential material.
func isSensitiveHeader(name string) bool {
	switch http.CanonicalHeaderKey(name) {
	case "Authorization", "X-Api-Key", "Api-Key", "Cookie", "Proxy-Authorization":
		return true
	}
	return false
}

// previewBody renders a truncated JSON view of the envelope and parameters.
func previewBody(envelope Envelope, params []Param) string {
	view := map[string]interface{}{
		"feature": envelope.Feature,
		"query":   envelope.Query,
	}
	if len(params) > 0 {
		view["params"] = params
	}

	rendered, err := json.Marshal(view)
	if err != nil {
		return fmt.Sprintf("feature=%s (payload not renderable)", envelope.Feature)
	}
	if len(rendered) > maxBodyPreview {
		return string(rendered[:maxBodyPreview]) + "..."
	}
	return string(rendered)
}
