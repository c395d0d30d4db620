// Package actionconfig provides shared extraction utilities for the generic
// form-field-keyed action configuration. Query builders use the typed getters
// to pull their feature-specific fields; the execution pipeline uses the
// normalization helpers before dispatch.
package actionconfig

import (
	"strings"

	"github.com/aiconnect/runtime/pkg/connector"
)

// Form field names shared across features.
const (
	// FieldUseCase selects the feature to execute
	FieldUseCase = "usecase"

	// FieldInput is the primary text input of a query
	FieldInput = "input"

	// FieldModel selects the backend model
	FieldModel = "model"

	// FieldTemperature tunes generation randomness
	FieldTemperature = "temperature"

	// FieldInstructions carries optional system instructions
	FieldInstructions = "instructions"

	// FieldLabels is the label set for classification
	FieldLabels = "labels"

	// FieldEntities is the entity type list for entity extraction
	FieldEntities = "entities"
)

// GetString extracts a string field from form data. Returns "" when the
// field is absent or not a string.
func GetString(formData map[string]interface{}, field string) string {
	if formData == nil {
		return ""
	}
	if value, ok := formData[field].(string); ok {
		return value
	}
	return ""
}

// GetFloat extracts a numeric field from form data. JSON decoding yields
// float64 for all numbers; plain ints are accepted too. Returns 0 when the
// field is absent or not numeric.
func GetFloat(formData map[string]interface{}, field string) float64 {
	if formData == nil {
		return 0
	}
	switch v := formData[field].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// GetStringSlice extracts a list of strings from form data. Accepts both
// []interface{} holding strings (the JSON/YAML decode shape) and []string.
// Non-string elements are skipped.
func GetStringSlice(formData map[string]interface{}, field string) []string {
	if formData == nil {
		return nil
	}
	switch v := formData[field].(type) {
	case []string:
		return v
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}

// RemoveEmptyFields strips form fields whose values are nil or
// whitespace-only strings, and drops empty headers. The configuration is
// normalized in place.
func RemoveEmptyFields(cfg *connector.ActionConfig) {
	if cfg == nil {
		return
	}
	for field, value := range cfg.FormData {
		switch v := value.(type) {
		case nil:
			delete(cfg.FormData, field)
		case string:
			if strings.TrimSpace(v) == "" {
				delete(cfg.FormData, field)
			}
		}
	}
	for name, value := range cfg.Headers {
		if strings.TrimSpace(name) == "" || strings.TrimSpace(value) == "" {
			delete(cfg.Headers, name)
		}
	}
}

// PromoteAutoGeneratedHeaders copies host-generated headers into the
// effective header set. Explicitly configured headers win over generated
// ones.
func PromoteAutoGeneratedHeaders(cfg *connector.ActionConfig) {
	if cfg == nil || len(cfg.AutoGeneratedHeaders) == 0 {
		return
	}
	if cfg.Headers == nil {
		cfg.Headers = make(map[string]string, len(cfg.AutoGeneratedHeaders))
	}
	for name, value := range cfg.AutoGeneratedHeaders {
		if strings.TrimSpace(value) == "" {
			continue
		}
		if _, exists := cfg.Headers[name]; !exists {
			cfg.Headers[name] = value
		}
	}
}
