package feature

import (
	"strings"

	"github.com/aiconnect/runtime/internal/actionconfig"
	"github.com/aiconnect/runtime/internal/errhandling"
	"github.com/aiconnect/runtime/pkg/connector"
)

// Models accepted by the text classification endpoint.
var textClassificationModels = []string{
	"gpt-3.5-turbo",
	"gpt-4",
}

const defaultTextClassificationModel = "gpt-3.5-turbo"

func init() {
	Register(TextClassification, &TextClassificationBuilder{})
}

// TextClassificationQuery is the payload of a text classification request.
type TextClassificationQuery struct {
	// Input is the text to classify
	Input string `json:"input"`

	// Labels is the label set the backend chooses from
	Labels []string `json:"labels"`

	// Model is the backend model identifier
	Model string `json:"model"`

	// Instructions optionally refines the classification criteria
	Instructions string `json:"instructions,omitempty"`
}

// Feature returns TextClassification.
func (TextClassificationQuery) Feature() Feature { return TextClassification }

// TextClassificationBuilder builds text classification queries.
type TextClassificationBuilder struct{}

// Build validates the action configuration and produces a
// TextClassificationQuery. At least one non-empty label is required.
func (b *TextClassificationBuilder) Build(cfg *connector.ActionConfig) (Query, error) {
	input, err := requireInput(cfg)
	if err != nil {
		return nil, err
	}

	rawLabels := actionconfig.GetStringSlice(formData(cfg), actionconfig.FieldLabels)
	labels := make([]string, 0, len(rawLabels))
	for _, label := range rawLabels {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			labels = append(labels, trimmed)
		}
	}
	if len(labels) == 0 {
		return nil, errhandling.NewConfigurationError(
			"the %q field must contain at least one label", actionconfig.FieldLabels)
	}

	model, err := resolveModel(cfg, textClassificationModels, defaultTextClassificationModel)
	if err != nil {
		return nil, err
	}

	return TextClassificationQuery{
		Input:        input,
		Labels:       labels,
		Model:        model,
		Instructions: actionconfig.GetString(formData(cfg), actionconfig.FieldInstructions),
	}, nil
}
