package anthropictypes_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	anthropictypes "github.com/terraform-industries/anthropic-types"
)

func TestSystemPromptKeepsEncoding(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		segmented bool
	}{
		{"string", `"You are helpful."`, false},
		{"segments", `[{"type":"text","text":"You are helpful."}]`, true},
		{"segments with cache control", `[{"type":"text","text":"A"},{"type":"text","text":"B","cache_control":{"type":"ephemeral"}}]`, true},
		{"empty segments", `[]`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt anthropictypes.SystemPrompt
			if err := json.Unmarshal([]byte(tt.json), &prompt); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if prompt.IsSegmented() != tt.segmented {
				t.Errorf("IsSegmented() = %v, want %v", prompt.IsSegmented(), tt.segmented)
			}
			got, err := json.Marshal(prompt)
			if err != nil {
				t.Fatalf("Marshal returned error: %v", err)
			}
			if diff := cmp.Diff(tt.json, string(got)); diff != "" {
				t.Errorf("re-encoded mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSystemPromptEncodingsAreDistinct(t *testing.T) {
	text := anthropictypes.NewSystemText("Be brief.")
	segments := anthropictypes.NewSystemSegments(anthropictypes.NewTextSegment("Be brief."))

	if cmp.Equal(text, segments) {
		t.Error("string and segmented prompts compared equal")
	}
	if diff := cmp.Diff(text.Normalized(), segments.Normalized()); diff != "" {
		t.Errorf("normalized prompts differ (-text +segments):\n%s", diff)
	}
	if text.String() != segments.String() {
		t.Errorf("String() differs: %q vs %q", text.String(), segments.String())
	}
}

func TestSystemPromptNormalizedDoesNotAlias(t *testing.T) {
	prompt := anthropictypes.NewSystemSegments(anthropictypes.NewTextSegment("A"))
	normalized := prompt.Normalized()
	normalized[0].Text = "changed"
	if prompt.Segments[0].Text != "A" {
		t.Errorf("Normalized aliased the receiver: %q", prompt.Segments[0].Text)
	}
}

func TestSystemPromptString(t *testing.T) {
	prompt := anthropictypes.NewSystemSegments(anthropictypes.NewTextSegment("A"), anthropictypes.NewTextSegment("B"))
	if got := prompt.String(); got != "A\nB" {
		t.Errorf("String() = %q, want %q", got, "A\nB")
	}
}

func TestSystemPromptErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		kind anthropictypes.Kind
		path string
	}{
		{"array of strings", `["a","b"]`, anthropictypes.TypeMismatch, "[0]"},
		{"number", `1`, anthropictypes.TypeMismatch, ""},
		{"object", `{"type":"text","text":"a"}`, anthropictypes.TypeMismatch, ""},
		{"segment without text", `[{"type":"text"}]`, anthropictypes.MissingField, "[0].text"},
		{"segment without type", `[{"text":"a"}]`, anthropictypes.MissingField, "[0].type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt anthropictypes.SystemPrompt
			err := json.Unmarshal([]byte(tt.json), &prompt)
			assertSchemaError(t, err, tt.kind, tt.path)
		})
	}
}
