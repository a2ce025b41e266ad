package anthropictypes_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	anthropictypes "github.com/terraform-industries/anthropic-types"
)

func TestDecodeToolDefinition(t *testing.T) {
	payload := `{
		"name": "get_stock_price",
		"description": "Get the current stock price for a given ticker symbol.",
		"input_schema": {
			"type": "object",
			"properties": {
				"ticker": {"type": "string", "description": "The stock ticker symbol"},
				"exchange": {"type": "string", "description": "Listing exchange", "enum_values": ["NASDAQ", "NYSE"]},
				"days": {"type": "integer", "description": "Lookback window", "minimum": 1, "maximum": 30}
			},
			"required": ["ticker"]
		}
	}`
	got, err := anthropictypes.DecodeToolDefinition([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeToolDefinition returned error: %v", err)
	}
	minimum, maximum := 1.0, 30.0
	want := anthropictypes.ToolDefinition{
		Name:        "get_stock_price",
		Description: "Get the current stock price for a given ticker symbol.",
		InputSchema: anthropictypes.ToolParameters{
			Type: "object",
			Properties: map[string]anthropictypes.ParameterProperty{
				"ticker":   {Type: "string", Description: "The stock ticker symbol"},
				"exchange": {Type: "string", Description: "Listing exchange", EnumValues: []string{"NASDAQ", "NYSE"}},
				"days":     {Type: "integer", Description: "Lookback window", Minimum: &minimum, Maximum: &maximum},
			},
			Required: []string{"ticker"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tool mismatch (-want +got):\n%s", diff)
	}

	encoded, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	again, err := anthropictypes.DecodeToolDefinition(encoded)
	if err != nil {
		t.Fatalf("DecodeToolDefinition(%s) returned error: %v", encoded, err)
	}
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeToolDefinitionWithoutProperties(t *testing.T) {
	tool := anthropictypes.ToolDefinition{
		Name:        "noop",
		Description: "Does nothing",
		InputSchema: anthropictypes.ToolParameters{Type: "object"},
	}
	got, err := json.Marshal(tool)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	want := `{"name":"noop","description":"Does nothing","input_schema":{"type":"object","properties":{}}}`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("encoded mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeToolDefinitionErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		kind anthropictypes.Kind
		path string
	}{
		{"missing name", `{"description":"d","input_schema":{"type":"object","properties":{}}}`, anthropictypes.MissingField, "name"},
		{"missing description", `{"name":"n","input_schema":{"type":"object","properties":{}}}`, anthropictypes.MissingField, "description"},
		{"schema not object", `{"name":"n","description":"d","input_schema":"object"}`, anthropictypes.TypeMismatch, "input_schema"},
		{"missing properties", `{"name":"n","description":"d","input_schema":{"type":"object"}}`, anthropictypes.MissingField, "input_schema.properties"},
		{"property without description", `{"name":"n","description":"d","input_schema":{"type":"object","properties":{"x":{"type":"string"}}}}`, anthropictypes.MissingField, "input_schema.properties.x.description"},
		{"numeric enum", `{"name":"n","description":"d","input_schema":{"type":"object","properties":{"x":{"type":"string","description":"x","enum_values":[1]}}}}`, anthropictypes.TypeMismatch, "input_schema.properties.x.enum_values[0]"},
		{"string minimum", `{"name":"n","description":"d","input_schema":{"type":"object","properties":{"x":{"type":"number","description":"x","minimum":"0"}}}}`, anthropictypes.TypeMismatch, "input_schema.properties.x.minimum"},
		{"required not array", `{"name":"n","description":"d","input_schema":{"type":"object","properties":{},"required":"x"}}`, anthropictypes.TypeMismatch, "input_schema.required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := anthropictypes.DecodeToolDefinition([]byte(tt.json))
			assertSchemaError(t, err, tt.kind, tt.path)
		})
	}
}

func TestToolChoiceRoundTrip(t *testing.T) {
	tests := []struct {
		choice *anthropictypes.ToolChoice
		want   string
	}{
		{anthropictypes.NewToolChoiceAuto(), `{"type":"auto"}`},
		{anthropictypes.NewToolChoiceAny(), `{"type":"any"}`},
		{anthropictypes.NewToolChoiceNone(), `{"type":"none"}`},
		{anthropictypes.NewToolChoiceTool("calculator"), `{"type":"tool","name":"calculator"}`},
	}
	for _, tt := range tests {
		t.Run(string(tt.choice.Type()), func(t *testing.T) {
			got, err := json.Marshal(tt.choice)
			if err != nil {
				t.Fatalf("Marshal returned error: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("encoded mismatch (-want +got):\n%s", diff)
			}
			var decoded anthropictypes.ToolChoice
			if err := json.Unmarshal(got, &decoded); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if diff := cmp.Diff(*tt.choice, decoded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}

	twoVariants := anthropictypes.NewToolChoiceAuto()
	twoVariants.Tool = &anthropictypes.ToolChoiceTool{Name: "calculator"}
	if _, err := json.Marshal(twoVariants); err == nil {
		t.Error("expected error for a tool choice with two variants")
	}
	if _, err := json.Marshal(anthropictypes.ToolChoice{}); err == nil {
		t.Error("expected error for a tool choice with no variant")
	}
}
