package feature

import (
	"github.com/aiconnect/runtime/pkg/connector"
)

// Models accepted by the embedding endpoint.
var textEmbeddingModels = []string{
	"text-embedding-ada-002",
	"text-embedding-3-small",
	"text-embedding-3-large",
}

const defaultTextEmbeddingModel = "text-embedding-ada-002"

func init() {
	Register(TextEmbedding, &TextEmbeddingBuilder{})
}

// TextEmbeddingQuery is the payload of an embedding request.
type TextEmbeddingQuery struct {
	// Input is the text to embed
	Input string `json:"input"`

	// Model is the backend embedding model identifier
	Model string `json:"model"`
}

// Feature returns TextEmbedding.
func (TextEmbeddingQuery) Feature() Feature { return TextEmbedding }

// TextEmbeddingBuilder builds embedding queries.
type TextEmbeddingBuilder struct{}

// Build validates the action configuration and produces a TextEmbeddingQuery.
func (b *TextEmbeddingBuilder) Build(cfg *connector.ActionConfig) (Query, error) {
	input, err := requireInput(cfg)
	if err != nil {
		return nil, err
	}

	model, err := resolveModel(cfg, textEmbeddingModels, defaultTextEmbeddingModel)
	if err != nil {
		return nil, err
	}

	return TextEmbeddingQuery{
		Input: input,
		Model: model,
	}, nil
}
