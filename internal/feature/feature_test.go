package feature

import (
	"sort"
	"testing"

	"github.com/aiconnect/runtime/internal/errhandling"
	"github.com/aiconnect/runtime/pkg/connector"
)

// wellFormedConfig returns an action configuration that every builtin
// builder accepts.
func wellFormedConfig(useCase Feature) *connector.ActionConfig {
	return &connector.ActionConfig{
		FormData: map[string]interface{}{
			"usecase":  string(useCase),
			"input":    "The quick brown fox",
			"labels":   []interface{}{"positive", "negative"},
			"entities": []interface{}{"person", "location"},
		},
	}
}

func TestResolveAllBuiltinFeatures(t *testing.T) {
	features := []Feature{
		TextGeneration,
		TextClassification,
		TextSummarization,
		TextEntityExtraction,
		TextEmbedding,
	}

	for _, f := range features {
		t.Run(string(f), func(t *testing.T) {
			resolved, builder, err := Resolve(string(f))
			if err != nil {
				t.Fatalf("Resolve(%s) error = %v", f, err)
			}
			if resolved != f {
				t.Errorf("Resolve() feature = %s, want %s", resolved, f)
			}

			query, err := builder.Build(wellFormedConfig(f))
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if query.Feature() != f {
				t.Errorf("query.Feature() = %s, want %s", query.Feature(), f)
			}
		})
	}
}

func TestResolveUnknownUseCase(t *testing.T) {
	_, _, err := Resolve("UNKNOWN_FEATURE")
	if err == nil {
		t.Fatal("expected error for unknown use case")
	}
	if !errhandling.IsKind(err, errhandling.KindConfiguration) {
		t.Errorf("error kind = %v, want configuration", err)
	}
}

func TestResolveEmptyUseCase(t *testing.T) {
	_, _, err := Resolve("")
	if err == nil {
		t.Fatal("expected error for empty use case")
	}
	if !errhandling.IsKind(err, errhandling.KindConfiguration) {
		t.Errorf("error kind = %v, want configuration", err)
	}
}

func TestResolveIsCaseSensitive(t *testing.T) {
	if _, _, err := Resolve("text_generation"); err == nil {
		t.Error("resolution must be an exact case-sensitive match")
	}
}

func TestListContainsBuiltinsSorted(t *testing.T) {
	features := List()

	if !sort.SliceIsSorted(features, func(i, j int) bool { return features[i] < features[j] }) {
		t.Error("List() should be sorted")
	}

	want := map[Feature]bool{
		TextGeneration:       false,
		TextClassification:   false,
		TextSummarization:    false,
		TextEntityExtraction: false,
		TextEmbedding:        false,
	}
	for _, f := range features {
		if _, ok := want[f]; ok {
			want[f] = true
		}
	}
	for f, seen := range want {
		if !seen {
			t.Errorf("List() is missing builtin feature %s", f)
		}
	}
}

func TestRegisterOverwrites(t *testing.T) {
	const temp Feature = "TEMP_TEST_FEATURE"

	first := &TextGenerationBuilder{}
	second := &TextSummarizationBuilder{}
	Register(temp, first)
	Register(temp, second)

	_, builder, err := Resolve(string(temp))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if builder != Builder(second) {
		t.Error("later registration should overwrite the earlier one")
	}
}
