// Package wire holds the path-aware JSON reader shared by every decoder in
// the module. Failures are reported as *SchemaError with the JSON path of
// the offending value.
package wire

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

// Parse checks that data is a single well-formed JSON value.
func Parse(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, MalformedPayloadError("invalid JSON", nil)
	}
	return gjson.ParseBytes(data), nil
}

// Object reads the members of one JSON object and reports failures with the
// object's path prepended.
type Object struct {
	res  gjson.Result
	path string
}

func AsObject(res gjson.Result, path string) (Object, error) {
	if !res.IsObject() {
		return Object{}, TypeMismatchError(path, "expected object, got "+Describe(res))
	}
	return Object{res: res, path: path}, nil
}

func (o Object) Path() string {
	return o.path
}

// At returns the path of the named member.
func (o Object) At(name string) string {
	return JoinPath(o.path, name)
}

func (o Object) Get(name string) gjson.Result {
	return o.res.Get(gjson.Escape(name))
}

// ForEach visits the members in document order until fn returns false.
func (o Object) ForEach(fn func(key string, value gjson.Result) bool) {
	o.res.ForEach(func(key, value gjson.Result) bool {
		return fn(key.String(), value)
	})
}

// Present treats an explicit null the same as an absent member.
func Present(res gjson.Result) bool {
	return res.Exists() && res.Type != gjson.Null
}

func (o Object) RequiredString(name string) (string, error) {
	res := o.Get(name)
	if !Present(res) {
		return "", MissingFieldError(o.At(name))
	}
	if res.Type != gjson.String {
		return "", TypeMismatchError(o.At(name), "expected string, got "+Describe(res))
	}
	return res.Str, nil
}

func (o Object) OptionalString(name string) (*string, error) {
	if !Present(o.Get(name)) {
		return nil, nil
	}
	s, err := o.RequiredString(name)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (o Object) RequiredBool(name string) (bool, error) {
	res := o.Get(name)
	if !Present(res) {
		return false, MissingFieldError(o.At(name))
	}
	if res.Type != gjson.True && res.Type != gjson.False {
		return false, TypeMismatchError(o.At(name), "expected boolean, got "+Describe(res))
	}
	return res.Bool(), nil
}

func (o Object) OptionalBool(name string) (*bool, error) {
	if !Present(o.Get(name)) {
		return nil, nil
	}
	b, err := o.RequiredBool(name)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (o Object) RequiredUint32(name string) (uint32, error) {
	res := o.Get(name)
	if !Present(res) {
		return 0, MissingFieldError(o.At(name))
	}
	if res.Type != gjson.Number {
		return 0, TypeMismatchError(o.At(name), "expected unsigned integer, got "+Describe(res))
	}
	n, err := strconv.ParseUint(res.Raw, 10, 32)
	if err != nil {
		return 0, TypeMismatchError(o.At(name), "expected unsigned integer, got "+res.Raw)
	}
	return uint32(n), nil
}

func (o Object) OptionalUint32(name string) (*uint32, error) {
	if !Present(o.Get(name)) {
		return nil, nil
	}
	n, err := o.RequiredUint32(name)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (o Object) RequiredFloat(name string) (float64, error) {
	res := o.Get(name)
	if !Present(res) {
		return 0, MissingFieldError(o.At(name))
	}
	if res.Type != gjson.Number {
		return 0, TypeMismatchError(o.At(name), "expected number, got "+Describe(res))
	}
	if math.IsInf(res.Num, 0) {
		return 0, TypeMismatchError(o.At(name), "number out of range: "+res.Raw)
	}
	return res.Num, nil
}

func (o Object) OptionalFloat(name string) (*float64, error) {
	if !Present(o.Get(name)) {
		return nil, nil
	}
	f, err := o.RequiredFloat(name)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (o Object) RequiredArray(name string) ([]gjson.Result, error) {
	res := o.Get(name)
	if !Present(res) {
		return nil, MissingFieldError(o.At(name))
	}
	if !res.IsArray() {
		return nil, TypeMismatchError(o.At(name), "expected array, got "+Describe(res))
	}
	return res.Array(), nil
}

func (o Object) OptionalStrings(name string) ([]string, error) {
	if !Present(o.Get(name)) {
		return nil, nil
	}
	items, err := o.RequiredArray(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		if item.Type != gjson.String {
			return nil, TypeMismatchError(IndexPath(o.At(name), i), "expected string, got "+Describe(item))
		}
		out = append(out, item.Str)
	}
	return out, nil
}

// RequiredObject returns the named member as an object reader.
func (o Object) RequiredObject(name string) (Object, error) {
	res := o.Get(name)
	if !Present(res) {
		return Object{}, MissingFieldError(o.At(name))
	}
	return AsObject(res, o.At(name))
}

// Discriminator reads the "type" tag of a union member.
func (o Object) Discriminator() (string, error) {
	return o.RequiredString("type")
}

// RawMap collects the members of an object into compacted raw values.
func RawMap(res gjson.Result, path string) (map[string]json.RawMessage, error) {
	obj, err := AsObject(res, path)
	if err != nil {
		return nil, err
	}
	out := map[string]json.RawMessage{}
	obj.ForEach(func(key string, value gjson.Result) bool {
		out[key] = CompactRaw(value)
		return true
	})
	return out, nil
}

// CompactRaw copies a value out of the source payload with insignificant
// whitespace removed, so equal values compare equal byte-wise.
func CompactRaw(res gjson.Result) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(res.Raw)); err != nil {
		// The payload was validated before parsing.
		return json.RawMessage(res.Raw)
	}
	return json.RawMessage(buf.Bytes())
}

// Describe names the JSON type of res for type mismatch messages.
func Describe(res gjson.Result) string {
	switch {
	case !res.Exists():
		return "nothing"
	case res.IsObject():
		return "object"
	case res.IsArray():
		return "array"
	}
	switch res.Type {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Null:
		return "null"
	default:
		return "unknown"
	}
}
