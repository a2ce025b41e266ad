package anthropictypes

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

// ToolChoice tells the model how to use the provided tools. Exactly one variant is set.
type ToolChoice struct {
	Auto *ToolChoiceAuto `json:"-"`
	Any  *ToolChoiceAny  `json:"-"`
	None *ToolChoiceNone `json:"-"`
	Tool *ToolChoiceTool `json:"-"`
}

type ToolChoiceType string

const (
	ToolChoiceTypeAuto ToolChoiceType = "auto"
	ToolChoiceTypeAny  ToolChoiceType = "any"
	ToolChoiceTypeNone ToolChoiceType = "none"
	ToolChoiceTypeTool ToolChoiceType = "tool"
)

// ToolChoiceAuto lets the model decide whether to use tools.
type ToolChoiceAuto struct{}

// ToolChoiceAny forces the model to use one of the available tools.
type ToolChoiceAny struct{}

// ToolChoiceNone prevents the model from using tools.
type ToolChoiceNone struct{}

// ToolChoiceTool forces the model to use the named tool.
type ToolChoiceTool struct {
	Name string `json:"name"`
}

func NewToolChoiceAuto() *ToolChoice {
	return &ToolChoice{Auto: &ToolChoiceAuto{}}
}

func NewToolChoiceAny() *ToolChoice {
	return &ToolChoice{Any: &ToolChoiceAny{}}
}

func NewToolChoiceNone() *ToolChoice {
	return &ToolChoice{None: &ToolChoiceNone{}}
}

func NewToolChoiceTool(name string) *ToolChoice {
	return &ToolChoice{Tool: &ToolChoiceTool{Name: name}}
}

func (t ToolChoice) Type() ToolChoiceType {
	switch {
	case t.Auto != nil:
		return ToolChoiceTypeAuto
	case t.Any != nil:
		return ToolChoiceTypeAny
	case t.None != nil:
		return ToolChoiceTypeNone
	case t.Tool != nil:
		return ToolChoiceTypeTool
	default:
		return ""
	}
}

func (t ToolChoice) MarshalJSON() ([]byte, error) {
	if t.variants() != 1 {
		return nil, errors.New("ToolChoice must have exactly one variant set")
	}
	if t.Tool != nil {
		return json.Marshal(struct {
			Type ToolChoiceType `json:"type"`
			*ToolChoiceTool
		}{
			Type:           ToolChoiceTypeTool,
			ToolChoiceTool: t.Tool,
		})
	}
	return json.Marshal(struct {
		Type ToolChoiceType `json:"type"`
	}{
		Type: t.Type(),
	})
}

func (t ToolChoice) variants() int {
	n := 0
	for _, set := range []bool{t.Auto != nil, t.Any != nil, t.None != nil, t.Tool != nil} {
		if set {
			n++
		}
	}
	return n
}

func (t *ToolChoice) UnmarshalJSON(data []byte) error {
	res, err := parsePayload(data)
	if err != nil {
		return err
	}
	choice, err := decodeToolChoice(res, "")
	if err != nil {
		return err
	}
	*t = choice
	return nil
}

func decodeToolChoice(res gjson.Result, path string) (ToolChoice, error) {
	obj, err := asObject(res, path)
	if err != nil {
		return ToolChoice{}, err
	}
	kind, err := obj.Discriminator()
	if err != nil {
		return ToolChoice{}, err
	}

	switch ToolChoiceType(kind) {
	case ToolChoiceTypeAuto:
		return *NewToolChoiceAuto(), nil
	case ToolChoiceTypeAny:
		return *NewToolChoiceAny(), nil
	case ToolChoiceTypeNone:
		return *NewToolChoiceNone(), nil
	case ToolChoiceTypeTool:
		name, err := obj.RequiredString("name")
		if err != nil {
			return ToolChoice{}, err
		}
		return *NewToolChoiceTool(name), nil
	default:
		return ToolChoice{}, NewUnknownVariantError(obj.At("type"), kind)
	}
}
