package anthropictypes

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/terraform-industries/anthropic-types/internal/sliceutils"
	"github.com/tidwall/gjson"
)

// ToolDefinition describes a client tool the model may call.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema ToolParameters `json:"input_schema"`
}

// ToolParameters is the JSON-schema-like description of a tool's input object.
type ToolParameters struct {
	Type       string                       `json:"type"`
	Properties map[string]ParameterProperty `json:"properties"`
	Required   []string                     `json:"required,omitempty"`
}

// ParameterProperty describes one input parameter.
type ParameterProperty struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	EnumValues  []string `json:"enum_values,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
}

// NewToolUseID returns a fresh correlation id for a tool use block.
func NewToolUseID() string {
	return "toolu_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CalculatorTool returns a sample tool that evaluates a math expression.
func CalculatorTool() ToolDefinition {
	return ToolDefinition{
		Name:        "calculator",
		Description: "Evaluates mathematical expressions",
		InputSchema: ToolParameters{
			Type: "object",
			Properties: map[string]ParameterProperty{
				"expression": {
					Type:        "string",
					Description: "The mathematical expression to evaluate",
				},
			},
			Required: []string{"expression"},
		},
	}
}

func (p ToolParameters) MarshalJSON() ([]byte, error) {
	type alias ToolParameters
	a := alias(p)
	if a.Properties == nil {
		a.Properties = map[string]ParameterProperty{}
	}
	return json.Marshal(a)
}

func (t *ToolDefinition) UnmarshalJSON(data []byte) error {
	res, err := parsePayload(data)
	if err != nil {
		return err
	}
	tool, err := decodeToolDefinition(res, "")
	if err != nil {
		return err
	}
	*t = tool
	return nil
}

// DecodeToolDefinition decodes and validates a single tool definition.
func DecodeToolDefinition(data []byte) (ToolDefinition, error) {
	var tool ToolDefinition
	if err := tool.UnmarshalJSON(data); err != nil {
		return ToolDefinition{}, err
	}
	return tool, nil
}

func decodeToolDefinitions(items []gjson.Result, path string) ([]ToolDefinition, error) {
	return sliceutils.MapErr(items, func(i int, item gjson.Result) (ToolDefinition, error) {
		return decodeToolDefinition(item, indexPath(path, i))
	})
}

func decodeToolDefinition(res gjson.Result, path string) (ToolDefinition, error) {
	obj, err := asObject(res, path)
	if err != nil {
		return ToolDefinition{}, err
	}
	name, err := obj.RequiredString("name")
	if err != nil {
		return ToolDefinition{}, err
	}
	description, err := obj.RequiredString("description")
	if err != nil {
		return ToolDefinition{}, err
	}
	schemaObj, err := obj.RequiredObject("input_schema")
	if err != nil {
		return ToolDefinition{}, err
	}
	params, err := decodeToolParameters(schemaObj)
	if err != nil {
		return ToolDefinition{}, err
	}
	return ToolDefinition{Name: name, Description: description, InputSchema: params}, nil
}

func decodeToolParameters(obj object) (ToolParameters, error) {
	paramType, err := obj.RequiredString("type")
	if err != nil {
		return ToolParameters{}, err
	}
	propsObj, err := obj.RequiredObject("properties")
	if err != nil {
		return ToolParameters{}, err
	}

	properties := map[string]ParameterProperty{}
	var propErr error
	propsObj.ForEach(func(name string, value gjson.Result) bool {
		prop, err := decodeParameterProperty(value, propsObj.At(name))
		if err != nil {
			propErr = err
			return false
		}
		properties[name] = prop
		return true
	})
	if propErr != nil {
		return ToolParameters{}, propErr
	}

	required, err := obj.OptionalStrings("required")
	if err != nil {
		return ToolParameters{}, err
	}
	if len(required) == 0 {
		required = nil
	}
	return ToolParameters{Type: paramType, Properties: properties, Required: required}, nil
}

func decodeParameterProperty(res gjson.Result, path string) (ParameterProperty, error) {
	obj, err := asObject(res, path)
	if err != nil {
		return ParameterProperty{}, err
	}
	propType, err := obj.RequiredString("type")
	if err != nil {
		return ParameterProperty{}, err
	}
	description, err := obj.RequiredString("description")
	if err != nil {
		return ParameterProperty{}, err
	}
	enumValues, err := obj.OptionalStrings("enum_values")
	if err != nil {
		return ParameterProperty{}, err
	}
	if len(enumValues) == 0 {
		enumValues = nil
	}
	minimum, err := obj.OptionalFloat("minimum")
	if err != nil {
		return ParameterProperty{}, err
	}
	maximum, err := obj.OptionalFloat("maximum")
	if err != nil {
		return ParameterProperty{}, err
	}
	return ParameterProperty{
		Type:        propType,
		Description: description,
		EnumValues:  enumValues,
		Minimum:     minimum,
		Maximum:     maximum,
	}, nil
}
