package feature

import (
	"github.com/aiconnect/runtime/internal/actionconfig"
	"github.com/aiconnect/runtime/pkg/connector"
)

// Models accepted by the text summarization endpoint.
var textSummarizationModels = []string{
	"gpt-3.5-turbo",
	"gpt-4",
}

const defaultTextSummarizationModel = "gpt-3.5-turbo"

func init() {
	Register(TextSummarization, &TextSummarizationBuilder{})
}

// TextSummarizationQuery is the payload of a text summarization request.
type TextSummarizationQuery struct {
	// Input is the text to summarize
	Input string `json:"input"`

	// Model is the backend model identifier
	Model string `json:"model"`

	// Instructions optionally constrains the summary (length, tone)
	Instructions string `json:"instructions,omitempty"`
}

// Feature returns TextSummarization.
func (TextSummarizationQuery) Feature() Feature { return TextSummarization }

// TextSummarizationBuilder builds text summarization queries.
type TextSummarizationBuilder struct{}

// Build validates the action configuration and produces a
// TextSummarizationQuery.
func (b *TextSummarizationBuilder) Build(cfg *connector.ActionConfig) (Query, error) {
	input, err := requireInput(cfg)
	if err != nil {
		return nil, err
	}

	model, err := resolveModel(cfg, textSummarizationModels, defaultTextSummarizationModel)
	if err != nil {
		return nil, err
	}

	return TextSummarizationQuery{
		Input:        input,
		Model:        model,
		Instructions: actionconfig.GetString(formData(cfg), actionconfig.FieldInstructions),
	}, nil
}
