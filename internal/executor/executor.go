// Package executor provides the execution pipeline of the AI connector.
// It orchestrates connection resolution, feature dispatch, request assembly,
// response caching, and backend invocation, and guarantees that every
// invocation returns exactly one result carrying either a response body or a
// normalized error.
package executor

import (
	"context"
	"log/slog"
	"time"

	"github.com/aiconnect/runtime/internal/actionconfig"
	"github.com/aiconnect/runtime/internal/aiserver"
	"github.com/aiconnect/runtime/internal/auth"
	"github.com/aiconnect/runtime/internal/cache"
	"github.com/aiconnect/runtime/internal/config"
	"github.com/aiconnect/runtime/internal/errhandling"
	"github.com/aiconnect/runtime/internal/feature"
	"github.com/aiconnect/runtime/internal/logger"
	"github.com/aiconnect/runtime/internal/request"
	"github.com/aiconnect/runtime/pkg/connector"
)

// filesPropertyKey is the datasource property carrying uploaded reference
// files.
const filesPropertyKey = "files"

// Executor runs action invocations against the AI backend. It owns the one
// piece of shared mutable state, the response cache; everything else is
// per-invocation. Safe for concurrent use.
type Executor struct {
	client   *aiserver.Client
	cache    cache.Cache
	cacheTTL time.Duration
}

// New creates an Executor from runtime settings.
func New(settings config.Settings) *Executor {
	return &Executor{
		client:   aiserver.NewClient(settings.BaseURL, settings.RequestTimeout),
		cache:    cache.NewTTLCache(settings.CacheMaxSize, settings.CacheTTL),
		cacheTTL: settings.CacheTTL,
	}
}

// NewWithComponents creates an Executor with injected collaborators.
// This is the constructor used by tests and by hosts that share a cache
// across executors.
func NewWithComponents(client *aiserver.Client, responseCache cache.Cache, cacheTTL time.Duration) *Executor {
	return &Executor{
		client:   client,
		cache:    responseCache,
		cacheTTL: cacheTTL,
	}
}

// Cache exposes the response cache for host-level introspection.
func (e *Executor) Cache() cache.Cache {
	return e.cache
}

// CreateConnection resolves the per-datasource authentication context.
// The host creates a connection once per datasource and reuses it across
// invocations; invalidation on credential rotation is the host's concern.
func (e *Executor) CreateConnection(_ context.Context, ds *connector.DatasourceConfig) (auth.Handler, error) {
	if ds == nil {
		return nil, errhandling.NewConfigurationError("datasource configuration is required")
	}
	h, err := auth.NewHandler(ds.Authentication)
	if err != nil {
		return nil, errhandling.NewConfigurationError("%v", err)
	}
	return h, nil
}

// OnDatasourceSave performs one-time setup after a datasource is stored:
// uploaded reference files are registered with the backend under the
// datasource's identifier. Datasources without files are a no-op.
func (e *Executor) OnDatasourceSave(ctx context.Context, ds *connector.DatasourceConfig) error {
	if ds == nil {
		return errhandling.NewConfigurationError("datasource configuration is required")
	}

	files := extractUploadedFiles(ds)
	if len(files) == 0 {
		return nil
	}

	h, err := e.CreateConnection(ctx, ds)
	if err != nil {
		return err
	}

	logger.Debug("registering datasource files with backend",
		slog.String("datasource_id", ds.ID),
		slog.Int("file_count", len(files)),
	)

	if err := e.client.CreateDatasource(ctx, h, ds.ID, files); err != nil {
		return errhandling.Normalize(err)
	}
	return nil
}

// Execute runs one action invocation through the pipeline:
// prepare → dispatch setup → cache check → remote call → completion.
// It never retries and always returns exactly one ExecutionResult; failures
// carry a normalized error and the pre-captured trace, never a raw backend
// error.
func (e *Executor) Execute(ctx context.Context, conn auth.Handler, ds *connector.DatasourceConfig, action *connector.ActionConfig, params []request.Param) *connector.ExecutionResult {
	// Prepare: connections are created once per datasource by the host;
	// resolve one here only when the host did not.
	if conn == nil {
		created, err := e.CreateConnection(ctx, ds)
		if err != nil {
			return failureResult(errhandling.Normalize(err), nil)
		}
		conn = created
	}

	if action == nil {
		return failureResult(errhandling.NewConfigurationError("action configuration is required"), nil)
	}

	// Dispatch setup: normalize the configuration, resolve the feature,
	// build its query, and assemble the envelope plus trace. The trace is
	// captured before dispatch so it survives remote failures.
	actionconfig.RemoveEmptyFields(action)
	actionconfig.PromoteAutoGeneratedHeaders(action)

	useCaseID := actionconfig.GetString(action.FormData, actionconfig.FieldUseCase)
	f, builder, err := feature.Resolve(useCaseID)
	if err != nil {
		return failureResult(errhandling.Normalize(err), nil)
	}

	query, err := builder.Build(action)
	if err != nil {
		return failureResult(errhandling.Normalize(err), nil)
	}

	datasourceID := ""
	if ds != nil {
		datasourceID = ds.ID
	}
	envelope, trace := request.Assemble(f, query, datasourceID, params, e.client.QueryURL(), action.Headers)

	log := logger.WithRequest(trace.RequestID, string(f))

	// Cache check: the key combines the hashed credential with the
	// envelope fingerprint, so different queries under one credential
	// never share an entry.
	cacheKey, err := e.cacheKey(conn, envelope)
	if err != nil {
		return failureResult(errhandling.Normalize(err), trace)
	}
	if cached, found := e.cache.Get(cacheKey); found {
		log.Debug("response cache hit", slog.String("datasource_id", datasourceID))
		return successResult(cached, trace)
	}

	// Remote call: the single suspension point of the pipeline.
	callCtx := ctx
	if action.TimeoutMs > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, time.Duration(action.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	started := time.Now()
	body, err := e.client.ExecuteQuery(callCtx, conn, envelope, action.Headers)
	duration := time.Since(started)

	// Completion: cache and return on success; normalize on failure
	// without touching the cache.
	if err != nil {
		perr := errhandling.Normalize(err)
		log.Error("query execution failed",
			slog.String("kind", string(perr.Kind)),
			slog.Duration("duration", duration),
		)
		return failureResult(perr, trace)
	}

	e.cache.Set(cacheKey, body, e.cacheTTL)
	log.Info("query execution completed",
		slog.Duration("duration", duration),
	)
	return successResult(body, trace)
}

// TestDatasource probes the datasource's credentials with a single read-only
// model-listing call. Any failure maps to the fixed authentication message;
// backend error text is never echoed back. The probe is independent of the
// execution pipeline and never touches the response cache.
func (e *Executor) TestDatasource(ctx context.Context, ds *connector.DatasourceConfig) *connector.TestResult {
	h, err := auth.NewHandler(datasourceAuth(ds))
	if err != nil {
		return &connector.TestResult{Success: false, Message: errhandling.AuthFailedMessage}
	}

	if _, err := e.client.ListModels(ctx, h); err != nil {
		return &connector.TestResult{Success: false, Message: errhandling.AuthFailedMessage}
	}
	return &connector.TestResult{Success: true}
}

// cacheKey derives the response cache key for a connection and envelope.
func (e *Executor) cacheKey(conn auth.Handler, envelope request.Envelope) (string, error) {
	fingerprint, err := envelope.Fingerprint()
	if err != nil {
		return "", err
	}
	return cache.CredentialKey(conn.Credential()) + ":" + fingerprint, nil
}

// successResult builds a successful ExecutionResult.
func successResult(body interface{}, trace *connector.ExecutionTrace) *connector.ExecutionResult {
	return &connector.ExecutionResult{
		Success: true,
		Body:    body,
		Trace:   trace,
	}
}

// failureResult builds a failed ExecutionResult from a normalized error.
func failureResult(perr *errhandling.PluginError, trace *connector.ExecutionTrace) *connector.ExecutionResult {
	return &connector.ExecutionResult{
		Success: false,
		Trace:   trace,
		Error: &connector.ExecutionError{
			Kind:       string(perr.Kind),
			Message:    perr.Message,
			StatusCode: perr.StatusCode,
		},
	}
}

// datasourceAuth returns the authentication descriptor of a datasource,
// tolerating a nil configuration.
func datasourceAuth(ds *connector.DatasourceConfig) *connector.AuthConfig {
	if ds == nil {
		return nil
	}
	return ds.Authentication
}

// extractUploadedFiles collects the base64 content of uploaded reference
// files from datasource properties. Properties decode from JSON, so file
// entries arrive as generic maps.
func extractUploadedFiles(ds *connector.DatasourceConfig) []string {
	var files []string
	for _, prop := range ds.Properties {
		if prop.Key != filesPropertyKey {
			continue
		}
		switch value := prop.Value.(type) {
		case []interface{}:
			for _, item := range value {
				if content := uploadedFileContent(item); content != "" {
					files = append(files, content)
				}
			}
		default:
			if content := uploadedFileContent(value); content != "" {
				files = append(files, content)
			}
		}
	}
	return files
}

// uploadedFileContent extracts the base64 content of one uploaded file value.
func uploadedFileContent(value interface{}) string {
	switch v := value.(type) {
	case connector.UploadedFile:
		return v.Base64Content
	case map[string]interface{}:
		if content, ok := v["base64Content"].(string); ok {
			return content
		}
	}
	return ""
}
