// Action document validation against the embedded JSON schema.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/action-schema.json
var embeddedSchema []byte

// schemaURL is the canonical identifier of the action document schema.
const schemaURL = "https://aiconnect.dev/schemas/action/v1.0.0/action-schema.json"

// schemaOnce ensures thread-safe initialization of the compiled schema.
var schemaOnce sync.Once

// compiledSchema is the cached compiled schema.
var compiledSchema *jsonschema.Schema

// schemaInitErr stores any error from schema initialization.
var schemaInitErr error

// ValidationError describes a single schema violation.
type ValidationError struct {
	// Path locates the violating value in the document
	Path string `json:"path"`

	// Message is the human-readable violation description
	Message string `json:"message"`
}

// ValidationResult reports the outcome of action document validation.
type ValidationResult struct {
	// Valid is true when the document satisfies the schema
	Valid bool `json:"valid"`

	// Errors lists the violations of an invalid document
	Errors []ValidationError `json:"errors,omitempty"`
}

// GetEmbeddedSchema returns the embedded action document schema.
func GetEmbeddedSchema() []byte {
	return embeddedSchema
}

// getCompiledSchema returns the compiled JSON schema, compiling it if
// necessary. Thread-safe via sync.Once.
func getCompiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var schemaDoc interface{}
		if err := json.Unmarshal(embeddedSchema, &schemaDoc); err != nil {
			schemaInitErr = fmt.Errorf("failed to parse embedded schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
			schemaInitErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}

		var err error
		compiledSchema, err = compiler.Compile(schemaURL)
		if err != nil {
			schemaInitErr = fmt.Errorf("failed to compile schema: %w", err)
		}
	})

	if schemaInitErr != nil {
		return nil, schemaInitErr
	}
	return compiledSchema, nil
}

// ValidateActionDocument validates a parsed action document against the
// embedded schema. Returns a ValidationResult with validation status and any
// violations.
func ValidateActionDocument(data map[string]interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(data) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Path:    "/",
			Message: "action document is empty",
		})
		return result
	}

	schema, err := getCompiledSchema()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Path:    "/",
			Message: fmt.Sprintf("failed to load schema: %v", err),
		})
		return result
	}

	if validationErr := schema.Validate(data); validationErr != nil {
		result.Valid = false
		if detailed, ok := validationErr.(*jsonschema.ValidationError); ok {
			result.Errors = flattenValidationErrors(detailed)
		} else {
			result.Errors = append(result.Errors, ValidationError{
				Path:    "/",
				Message: validationErr.Error(),
			})
		}
	}

	return result
}

// flattenValidationErrors converts a jsonschema validation error tree into a
// flat list of leaf violations.
func flattenValidationErrors(err *jsonschema.ValidationError) []ValidationError {
	if len(err.Causes) == 0 {
		return []ValidationError{{
			Path:    "/" + strings.Join(err.InstanceLocation, "/"),
			Message: err.Error(),
		}}
	}

	var errs []ValidationError
	for _, cause := range err.Causes {
		errs = append(errs, flattenValidationErrors(cause)...)
	}
	return errs
}
