// Shared validation helpers for the query builder family.
package feature

import (
	"strings"

	"github.com/aiconnect/runtime/internal/actionconfig"
	"github.com/aiconnect/runtime/internal/errhandling"
	"github.com/aiconnect/runtime/pkg/connector"
)

// Temperature bounds accepted by the backend.
const (
	minTemperature = 0.0
	maxTemperature = 2.0
)

// requireInput extracts the mandatory text input field.
func requireInput(cfg *connector.ActionConfig) (string, error) {
	input := actionconfig.GetString(formData(cfg), actionconfig.FieldInput)
	if strings.TrimSpace(input) == "" {
		return "", errhandling.NewConfigurationError("the %q field is required and cannot be empty", actionconfig.FieldInput)
	}
	return input, nil
}

// resolveModel returns the configured model, or the feature default when the
// field is absent. A configured model outside the allowed set is a
// configuration error naming the field.
func resolveModel(cfg *connector.ActionConfig, allowed []string, defaultModel string) (string, error) {
	model := actionconfig.GetString(formData(cfg), actionconfig.FieldModel)
	if model == "" {
		return defaultModel, nil
	}
	for _, m := range allowed {
		if model == m {
			return model, nil
		}
	}
	return "", errhandling.NewConfigurationError(
		"model %q is not supported, allowed models: %s", model, strings.Join(allowed, ", "))
}

// resolveTemperature returns the configured temperature, validated against
// the backend's accepted range. Absent means 0, which the backend treats as
// its own default.
func resolveTemperature(cfg *connector.ActionConfig) (float64, error) {
	temperature := actionconfig.GetFloat(formData(cfg), actionconfig.FieldTemperature)
	if temperature < minTemperature || temperature > maxTemperature {
		return 0, errhandling.NewConfigurationError(
			"the %q field must be between %.1f and %.1f", actionconfig.FieldTemperature, minTemperature, maxTemperature)
	}
	return temperature, nil
}

// formData returns the form-field map of an action configuration, tolerating
// a nil configuration.
func formData(cfg *connector.ActionConfig) map[string]interface{} {
	if cfg == nil {
		return nil
	}
	return cfg.FormData
}
