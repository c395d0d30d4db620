// Package auth provides authentication handlers for backend requests.
// A handler is created once per datasource from its AuthConfig and reused
// across invocations; it applies the credential to outgoing requests and
// exposes the raw credential material for cache-key derivation.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aiconnect/runtime/pkg/connector"
)

// Credential map keys within connector.AuthConfig.
const (
	credentialToken      = "token"
	credentialKey        = "key"
	credentialHeaderName = "headerName"
)

// defaultAPIKeyHeader is the header used for api-key auth when the
// configuration does not name one.
const defaultAPIKeyHeader = "X-Api-Key"

// Handler applies datasource authentication to outgoing backend requests.
type Handler interface {
	// ApplyAuth sets the credential on the request.
	ApplyAuth(ctx context.Context, req *http.Request) error

	// Credential returns the raw credential material. It is used only to
	// derive hashed cache keys and must never be logged or stored.
	Credential() string
}

// NewHandler creates a Handler from a datasource's AuthConfig.
// Returns an error for a nil config, an unknown type, or missing credential
// material.
func NewHandler(cfg *connector.AuthConfig) (Handler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("datasource authentication is not configured")
	}

	switch cfg.Type {
	case connector.AuthTypeBearerToken:
		token := cfg.Credentials[credentialToken]
		if token == "" {
			return nil, fmt.Errorf("bearer token authentication requires a token")
		}
		return &BearerTokenHandler{token: token}, nil

	case connector.AuthTypeAPIKey:
		key := cfg.Credentials[credentialKey]
		if key == "" {
			return nil, fmt.Errorf("api key authentication requires a key")
		}
		header := cfg.Credentials[credentialHeaderName]
		if header == "" {
			header = defaultAPIKeyHeader
		}
		return &APIKeyHandler{key: key, headerName: header}, nil

	default:
		return nil, fmt.Errorf("unsupported authentication type %q", cfg.Type)
	}
}

// BearerTokenHandler authenticates with an "Authorization: Bearer" header.
type BearerTokenHandler struct {
	token string
}

// ApplyAuth sets the Authorization header.
func (h *BearerTokenHandler) ApplyAuth(_ context.Context, req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+h.token)
	return nil
}

// Credential returns the bearer token.
func (h *BearerTokenHandler) Credential() string {
	return h.token
}

// APIKeyHandler authenticates with an API key in a request header.
type APIKeyHandler struct {
	key        string
	headerName string
}

// ApplyAuth sets the configured API key header.
func (h *APIKeyHandler) ApplyAuth(_ context.Context, req *http.Request) error {
	req.Header.Set(h.headerName, h.key)
	return nil
}

// Credential returns the API key.
func (h *APIKeyHandler) Credential() string {
	return h.key
}
