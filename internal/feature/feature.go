// Package feature provides the closed set of AI use cases the connector
// supports and the per-feature query builders that turn a generic action
// configuration into a validated, feature-specific query payload.
//
// # Adding a New Feature
//
// To add a new feature:
//
//  1. Declare the Feature constant and its query type.
//  2. Implement Builder for it, validating required fields.
//  3. Register the builder in an init() function:
//
//	func init() {
//	    feature.Register(feature.TextTranslation, &TextTranslationBuilder{})
//	}
//
// Resolution is an exact, case-sensitive match on the feature name; an
// unrecognized use-case identifier is a configuration error, never a silent
// default.
package feature

import (
	"sort"
	"sync"

	"github.com/aiconnect/runtime/internal/errhandling"
	"github.com/aiconnect/runtime/pkg/connector"
)

// Feature identifies a supported AI use case.
type Feature string

// Supported features.
const (
	TextGeneration       Feature = "TEXT_GENERATION"
	TextClassification   Feature = "TEXT_CLASSIFICATION"
	TextSummarization    Feature = "TEXT_SUMMARIZATION"
	TextEntityExtraction Feature = "TEXT_ENTITY_EXTRACTION"
	TextEmbedding        Feature = "TEXT_EMBEDDING"
)

// Query is a validated, feature-specific query payload. Concrete query types
// are immutable once built; builders construct a fresh value per invocation.
type Query interface {
	// Feature returns the feature this query belongs to.
	Feature() Feature
}

// Builder converts an action configuration into a Query for one feature.
// Implementations are stateless and safe for concurrent use; they fail fast
// with a configuration error rather than emit a query with missing required
// fields.
type Builder interface {
	Build(cfg *connector.ActionConfig) (Query, error)
}

// builderRegistry holds registered builders keyed by feature.
var (
	registryMu      sync.RWMutex
	builderRegistry = make(map[Feature]Builder)
)

// Register registers a builder for a feature. Registering an already
// registered feature overwrites the previous builder.
//
// This function is safe for concurrent use and is typically called from
// init() functions in builder files.
func Register(f Feature, b Builder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	builderRegistry[f] = b
}

// Resolve maps a raw use-case identifier to its feature and builder.
// The match is exact and case-sensitive. Unknown identifiers return a
// configuration error so the host surfaces them as user-correctable, not
// transient.
func Resolve(useCaseID string) (Feature, Builder, error) {
	if useCaseID == "" {
		return "", nil, errhandling.NewConfigurationError("action configuration is missing the %q field", "usecase")
	}

	registryMu.RLock()
	defer registryMu.RUnlock()

	b, ok := builderRegistry[Feature(useCaseID)]
	if !ok {
		return "", nil, errhandling.NewConfigurationError("unsupported use case %q", useCaseID)
	}
	return Feature(useCaseID), b, nil
}

// List returns the registered feature names in sorted order.
func List() []Feature {
	registryMu.RLock()
	defer registryMu.RUnlock()

	features := make([]Feature, 0, len(builderRegistry))
	for f := range builderRegistry {
		features = append(features, f)
	}
	sort.Slice(features, func(i, j int) bool { return features[i] < features[j] })
	return features
}

// ClearRegistry removes all registered builders.
// This is intended for testing purposes only.
func ClearRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	builderRegistry = make(map[Feature]Builder)
}
