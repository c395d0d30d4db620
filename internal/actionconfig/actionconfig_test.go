package actionconfig

import (
	"reflect"
	"testing"

	"github.com/aiconnect/runtime/pkg/connector"
)

func TestGetString(t *testing.T) {
	formData := map[string]interface{}{
		"usecase": "TEXT_GENERATION",
		"count":   3,
	}

	if got := GetString(formData, "usecase"); got != "TEXT_GENERATION" {
		t.Errorf("GetString() = %q, want %q", got, "TEXT_GENERATION")
	}
	if got := GetString(formData, "count"); got != "" {
		t.Errorf("GetString() on non-string = %q, want empty", got)
	}
	if got := GetString(formData, "missing"); got != "" {
		t.Errorf("GetString() on absent field = %q, want empty", got)
	}
	if got := GetString(nil, "usecase"); got != "" {
		t.Errorf("GetString() on nil map = %q, want empty", got)
	}
}

func TestGetFloat(t *testing.T) {
	formData := map[string]interface{}{
		"temperature": 0.7,
		"count":       3,
		"name":        "x",
	}

	if got := GetFloat(formData, "temperature"); got != 0.7 {
		t.Errorf("GetFloat() = %v, want 0.7", got)
	}
	if got := GetFloat(formData, "count"); got != 3 {
		t.Errorf("GetFloat() on int = %v, want 3", got)
	}
	if got := GetFloat(formData, "name"); got != 0 {
		t.Errorf("GetFloat() on string = %v, want 0", got)
	}
}

func TestGetStringSlice(t *testing.T) {
	formData := map[string]interface{}{
		"decoded": []interface{}{"a", "b", 7, "c"},
		"typed":   []string{"x", "y"},
		"scalar":  "not-a-list",
	}

	if got := GetStringSlice(formData, "decoded"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("GetStringSlice() = %v, want [a b c]", got)
	}
	if got := GetStringSlice(formData, "typed"); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("GetStringSlice() = %v, want [x y]", got)
	}
	if got := GetStringSlice(formData, "scalar"); got != nil {
		t.Errorf("GetStringSlice() on scalar = %v, want nil", got)
	}
}

func TestRemoveEmptyFields(t *testing.T) {
	cfg := &connector.ActionConfig{
		FormData: map[string]interface{}{
			"usecase": "TEXT_GENERATION",
			"input":   "  ",
			"model":   nil,
			"labels":  []interface{}{"a"},
		},
		Headers: map[string]string{
			"X-Keep":  "value",
			"X-Empty": "  ",
		},
	}

	RemoveEmptyFields(cfg)

	if _, ok := cfg.FormData["input"]; ok {
		t.Error("whitespace-only field should be removed")
	}
	if _, ok := cfg.FormData["model"]; ok {
		t.Error("nil field should be removed")
	}
	if _, ok := cfg.FormData["usecase"]; !ok {
		t.Error("non-empty field should be kept")
	}
	if _, ok := cfg.FormData["labels"]; !ok {
		t.Error("non-string field should be kept")
	}
	if _, ok := cfg.Headers["X-Empty"]; ok {
		t.Error("empty header should be removed")
	}
	if cfg.Headers["X-Keep"] != "value" {
		t.Error("non-empty header should be kept")
	}
}

func TestRemoveEmptyFieldsNilConfig(t *testing.T) {
	// Must not panic.
	RemoveEmptyFields(nil)
}

func TestPromoteAutoGeneratedHeaders(t *testing.T) {
	cfg := &connector.ActionConfig{
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		AutoGeneratedHeaders: map[string]string{
			"Content-Type":   "text/plain",
			"X-Generated":    "generated-value",
			"X-Empty-Header": "  ",
		},
	}

	PromoteAutoGeneratedHeaders(cfg)

	if cfg.Headers["Content-Type"] != "application/json" {
		t.Error("explicit header must win over the generated one")
	}
	if cfg.Headers["X-Generated"] != "generated-value" {
		t.Error("generated header should be promoted")
	}
	if _, ok := cfg.Headers["X-Empty-Header"]; ok {
		t.Error("empty generated header should not be promoted")
	}
}

func TestPromoteAutoGeneratedHeadersNilHeaders(t *testing.T) {
	cfg := &connector.ActionConfig{
		AutoGeneratedHeaders: map[string]string{"X-Generated": "v"},
	}

	PromoteAutoGeneratedHeaders(cfg)

	if cfg.Headers["X-Generated"] != "v" {
		t.Error("promotion should allocate the header map when missing")
	}
}
