// Package aiserver provides the HTTP client for the external AI backend.
// It owns URL construction, request shaping, timeout enforcement, and
// classification of backend failures; callers receive decoded JSON bodies or
// normalized plugin errors.
package aiserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aiconnect/runtime/internal/auth"
	"github.com/aiconnect/runtime/internal/errhandling"
	"github.com/aiconnect/runtime/internal/logger"
	"github.com/aiconnect/runtime/internal/request"
)

// Backend endpoint paths.
const (
	queryPath      = "/query"
	modelsPath     = "/models"
	datasourcePath = "/datasource"
)

// defaultTimeout bounds backend calls when no timeout is configured.
const defaultTimeout = 30 * time.Second

// maxErrorBodyLog bounds backend error bodies in logs.
const maxErrorBodyLog = 200

// Client is the AI backend client. It is safe for concurrent use; per-call
// credentials are supplied through an auth.Handler so one client serves many
// datasources.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client for the given base URL. A non-positive
// timeout falls back to 30 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// QueryURL returns the endpoint query envelopes are dispatched to.
func (c *Client) QueryURL() string {
	return c.baseURL + queryPath
}

// ModelsURL returns the model-listing endpoint used by connectivity checks.
func (c *Client) ModelsURL() string {
	return c.baseURL + modelsPath
}

// ExecuteQuery dispatches a request envelope to the backend and returns the
// decoded response body. Failures come back as normalized plugin errors:
// transport for network problems and non-2xx statuses, authentication for
// 401/403.
func (c *Client) ExecuteQuery(ctx context.Context, h auth.Handler, envelope request.Envelope, headers map[string]string) (interface{}, error) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return nil, errhandling.NewInternalError(fmt.Errorf("encoding request envelope: %w", err))
	}

	body, err := c.do(ctx, h, http.MethodPost, c.QueryURL(), bytes.NewReader(payload), headers)
	if err != nil {
		return nil, err
	}

	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, errhandling.NewTransportError("backend returned a malformed response", err)
	}
	return decoded, nil
}

// ListModels issues the lightweight model-listing probe. It sends no request
// body and returns the model identifiers the credential has access to.
func (c *Client) ListModels(ctx context.Context, h auth.Handler) ([]string, error) {
	body, err := c.do(ctx, h, http.MethodGet, c.ModelsURL(), nil, nil)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Models []string `json:"models"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, errhandling.NewTransportError("backend returned a malformed model list", err)
	}
	return decoded.Models, nil
}

// CreateDatasource registers uploaded reference files with the backend under
// the datasource's identifier. Called once when a datasource is saved.
func (c *Client) CreateDatasource(ctx context.Context, h auth.Handler, datasourceID string, files []string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"id":    datasourceID,
		"files": files,
	})
	if err != nil {
		return errhandling.NewInternalError(fmt.Errorf("encoding datasource payload: %w", err))
	}

	_, err = c.do(ctx, h, http.MethodPost, c.baseURL+datasourcePath, bytes.NewReader(payload), nil)
	return err
}

// do executes one backend request and returns the response body. Non-2xx
// statuses and network failures are returned as plugin errors; the original
// failure detail is logged here, once, at the point of normalization.
func (c *Client) do(ctx context.Context, h auth.Handler, method, url string, body io.Reader, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errhandling.NewInternalError(fmt.Errorf("creating backend request: %w", err))
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	if h != nil {
		if err := h.ApplyAuth(ctx, req); err != nil {
			return nil, errhandling.NewInternalError(fmt.Errorf("applying authentication: %w", err))
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		perr := errhandling.Normalize(err)
		logger.Error("backend request failed",
			slog.String("method", method),
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
		return nil, perr
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("failed to close backend response body",
				slog.String("error", closeErr.Error()),
			)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errhandling.NewTransportError("reading backend response", err)
	}

	if perr := errhandling.ClassifyStatus(resp.StatusCode); perr != nil {
		snippet := string(respBody)
		if len(snippet) > maxErrorBodyLog {
			snippet = snippet[:maxErrorBodyLog] + "..."
		}
		logger.Error("backend returned error status",
			slog.String("method", method),
			slog.String("url", url),
			slog.Int("status", resp.StatusCode),
			slog.String("body", snippet),
		)
		return nil, perr
	}

	return respBody, nil
}
