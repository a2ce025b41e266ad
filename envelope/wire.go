package envelope

import (
	"fmt"

	"github.com/terraform-industries/anthropic-types/internal/wire"
	"github.com/terraform-industries/anthropic-types/models"
	"github.com/tidwall/gjson"
)

// readTag splits an externally tagged value into its variant name and body.
// A bare string names a variant without a body.
func readTag(data []byte) (string, gjson.Result, error) {
	res, err := wire.Parse(data)
	if err != nil {
		return "", gjson.Result{}, err
	}
	switch {
	case res.Type == gjson.String:
		return res.Str, gjson.Result{}, nil
	case res.IsObject():
		var (
			tag   string
			body  gjson.Result
			count int
		)
		res.ForEach(func(key, value gjson.Result) bool {
			tag, body = key.String(), value
			count++
			return true
		})
		if count != 1 {
			return "", gjson.Result{}, wire.TypeMismatchError("", fmt.Sprintf("expected object with exactly one member, got %d", count))
		}
		return tag, body, nil
	default:
		return "", gjson.Result{}, wire.TypeMismatchError("", "expected string or object, got "+wire.Describe(res))
	}
}

// requiredMember reads a named member of a variant body.
func requiredMember(body gjson.Result, tag, name string) (gjson.Result, error) {
	if !wire.Present(body) {
		return gjson.Result{}, wire.MissingFieldError(wire.JoinPath(tag, name))
	}
	obj, err := wire.AsObject(body, tag)
	if err != nil {
		return gjson.Result{}, err
	}
	member := obj.Get(name)
	if !wire.Present(member) {
		return gjson.Result{}, wire.MissingFieldError(obj.At(name))
	}
	return member, nil
}

func decodeModelInfos(res gjson.Result, path string) ([]models.ModelInfo, error) {
	if !res.IsArray() {
		return nil, wire.TypeMismatchError(path, "expected array, got "+wire.Describe(res))
	}
	items := res.Array()
	out := make([]models.ModelInfo, 0, len(items))
	for i, item := range items {
		info, err := decodeModelInfo(item, wire.IndexPath(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, nil
}

func decodeModelInfo(res gjson.Result, path string) (models.ModelInfo, error) {
	obj, err := wire.AsObject(res, path)
	if err != nil {
		return models.ModelInfo{}, err
	}
	var info models.ModelInfo
	if info.ID, err = obj.RequiredString("id"); err != nil {
		return models.ModelInfo{}, err
	}
	if info.DisplayName, err = obj.RequiredString("display_name"); err != nil {
		return models.ModelInfo{}, err
	}
	if info.Provider, err = obj.RequiredString("provider"); err != nil {
		return models.ModelInfo{}, err
	}
	if info.MaxTokens, err = obj.RequiredUint32("max_tokens"); err != nil {
		return models.ModelInfo{}, err
	}

	if wire.Present(obj.Get("pricing")) {
		pricing, err := obj.RequiredObject("pricing")
		if err != nil {
			return models.ModelInfo{}, err
		}
		input, err := pricing.RequiredFloat("input_cost_per_million_tokens")
		if err != nil {
			return models.ModelInfo{}, err
		}
		output, err := pricing.RequiredFloat("output_cost_per_million_tokens")
		if err != nil {
			return models.ModelInfo{}, err
		}
		info.Pricing = &models.ModelPricing{InputCostPerMillionTokens: input, OutputCostPerMillionTokens: output}
	}
	return info, nil
}
