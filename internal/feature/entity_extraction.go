package feature

import (
	"strings"

	"github.com/aiconnect/runtime/internal/actionconfig"
	"github.com/aiconnect/runtime/internal/errhandling"
	"github.com/aiconnect/runtime/pkg/connector"
)

// Models accepted by the entity extraction endpoint.
var entityExtractionModels = []string{
	"gpt-3.5-turbo",
	"gpt-4",
}

const defaultEntityExtractionModel = "gpt-3.5-turbo"

func init() {
	Register(TextEntityExtraction, &EntityExtractionBuilder{})
}

// EntityExtractionQuery is the payload of an entity extraction request.
type EntityExtractionQuery struct {
	// Input is the text to extract entities from
	Input string `json:"input"`

	// Entities is the list of entity types to extract
	Entities []string `json:"entities"`

	// Model is the backend model identifier
	Model string `json:"model"`
}

// Feature returns TextEntityExtraction.
func (EntityExtractionQuery) Feature() Feature { return TextEntityExtraction }

// EntityExtractionBuilder builds entity extraction queries.
type EntityExtractionBuilder struct{}

// Build validates the action configuration and produces an
// EntityExtractionQuery. At least one non-empty entity type is required.
func (b *EntityExtractionBuilder) Build(cfg *connector.ActionConfig) (Query, error) {
	input, err := requireInput(cfg)
	if err != nil {
		return nil, err
	}

	rawEntities := actionconfig.GetStringSlice(formData(cfg), actionconfig.FieldEntities)
	entities := make([]string, 0, len(rawEntities))
	for _, entity := range rawEntities {
		if trimmed := strings.TrimSpace(entity); trimmed != "" {
			entities = append(entities, trimmed)
		}
	}
	if len(entities) == 0 {
		return nil, errhandling.NewConfigurationError(
			"the %q field must contain at least one entity type", actionconfig.FieldEntities)
	}

	model, err := resolveModel(cfg, entityExtractionModels, defaultEntityExtractionModel)
	if err != nil {
		return nil, err
	}

	return EntityExtractionQuery{
		Input:    input,
		Entities: entities,
		Model:    model,
	}, nil
}
