package feature

import (
	"github.com/aiconnect/runtime/internal/actionconfig"
	"github.com/aiconnect/runtime/pkg/connector"
)

// Models accepted by the text generation endpoint.
var textGenerationModels = []string{
	"gpt-3.5-turbo",
	"gpt-4",
	"gpt-4-turbo",
}

// defaultTextGenerationModel is used when the action does not select a model.
const defaultTextGenerationModel = "gpt-3.5-turbo"

func init() {
	Register(TextGeneration, &TextGenerationBuilder{})
}

// TextGenerationQuery is the payload of a text generation request.
type TextGenerationQuery struct {
	// Input is the prompt text
	Input string `json:"input"`

	// Model is the backend model identifier
	Model string `json:"model"`

	// Instructions optionally steers the generation
	Instructions string `json:"instructions,omitempty"`

	// Temperature tunes generation randomness (0 uses the backend default)
	Temperature float64 `json:"temperature,omitempty"`
}

// Feature returns TextGeneration.
func (TextGenerationQuery) Feature() Feature { return TextGeneration }

// TextGenerationBuilder builds text generation queries.
type TextGenerationBuilder struct{}

// Build validates the action configuration and produces a TextGenerationQuery.
func (b *TextGenerationBuilder) Build(cfg *connector.ActionConfig) (Query, error) {
	input, err := requireInput(cfg)
	if err != nil {
		return nil, err
	}

	model, err := resolveModel(cfg, textGenerationModels, defaultTextGenerationModel)
	if err != nil {
		return nil, err
	}

	temperature, err := resolveTemperature(cfg)
	if err != nil {
		return nil, err
	}

	return TextGenerationQuery{
		Input:        input,
		Model:        model,
		Instructions: actionconfig.GetString(formData(cfg), actionconfig.FieldInstructions),
		Temperature:  temperature,
	}, nil
}
