package anthropictypes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
)

// CompletionRequest asks the model to continue a conversation.
type CompletionRequest struct {
	Model    string
	Messages []Message
	// MaxTokens is required. Payloads from generations where it was optional
	// must have a value filled in before decode.
	MaxTokens uint32
	// Temperature is within [0, 1] when set.
	Temperature            *float32
	System                 *SystemPrompt
	Tools                  []ToolDefinition
	ToolChoice             *ToolChoice
	DisableParallelToolUse *bool
	// AdditionalParams is the explicit "additional_params" extension object.
	AdditionalParams map[string]json.RawMessage
	// Extra holds unrecognized top-level fields so a decode/encode cycle
	// does not drop extensions the caller does not understand. Keys that
	// name a known field are ignored on encode.
	Extra map[string]json.RawMessage
}

var requestFields = map[string]bool{
	"model":                     true,
	"messages":                  true,
	"max_tokens":                true,
	"temperature":               true,
	"system":                    true,
	"tools":                     true,
	"tool_choice":               true,
	"disable_parallel_tool_use": true,
	"additional_params":         true,
}

// NewCompletionRequest creates a request with the required fields set.
func NewCompletionRequest(model string, maxTokens uint32, messages ...Message) CompletionRequest {
	if messages == nil {
		messages = []Message{}
	}
	return CompletionRequest{Model: model, Messages: messages, MaxTokens: maxTokens}
}

// DecodeRequest decodes and validates a completion request.
func DecodeRequest(data []byte) (CompletionRequest, error) {
	res, err := parsePayload(data)
	if err != nil {
		return CompletionRequest{}, err
	}
	return decodeRequest(res, "")
}

// EncodeRequest encodes a completion request. Absent optional fields are omitted.
func EncodeRequest(req CompletionRequest) ([]byte, error) {
	return json.Marshal(req)
}

func (r *CompletionRequest) UnmarshalJSON(data []byte) error {
	req, err := DecodeRequest(data)
	if err != nil {
		return err
	}
	*r = req
	return nil
}

func (r CompletionRequest) MarshalJSON() ([]byte, error) {
	messages := r.Messages
	if messages == nil {
		messages = []Message{}
	}
	// Pointers keep a present-but-empty list or map distinct from an absent one.
	var tools *[]ToolDefinition
	if r.Tools != nil {
		tools = &r.Tools
	}
	var additional *map[string]json.RawMessage
	if r.AdditionalParams != nil {
		additional = &r.AdditionalParams
	}

	base, err := json.Marshal(struct {
		Model                  string                      `json:"model"`
		Messages               []Message                   `json:"messages"`
		MaxTokens              uint32                      `json:"max_tokens"`
		Temperature            *float32                    `json:"temperature,omitempty"`
		System                 *SystemPrompt               `json:"system,omitempty"`
		Tools                  *[]ToolDefinition           `json:"tools,omitempty"`
		ToolChoice             *ToolChoice                 `json:"tool_choice,omitempty"`
		DisableParallelToolUse *bool                       `json:"disable_parallel_tool_use,omitempty"`
		AdditionalParams       *map[string]json.RawMessage `json:"additional_params,omitempty"`
	}{
		Model:                  r.Model,
		Messages:               messages,
		MaxTokens:              r.MaxTokens,
		Temperature:            r.Temperature,
		System:                 r.System,
		Tools:                  tools,
		ToolChoice:             r.ToolChoice,
		DisableParallelToolUse: r.DisableParallelToolUse,
		AdditionalParams:       additional,
	})
	if err != nil {
		return nil, err
	}
	return appendExtra(base, r.Extra, requestFields)
}

// appendExtra splices extension members, sorted by key, into an encoded object.
func appendExtra(base []byte, extra map[string]json.RawMessage, known map[string]bool) ([]byte, error) {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		if !known[k] {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return base, nil
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(base[:len(base)-1])
	needComma := len(bytes.TrimSpace(base[1:len(base)-1])) > 0
	for _, k := range keys {
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		if needComma {
			buf.WriteByte(',')
		}
		needComma = true
		buf.Write(key)
		buf.WriteByte(':')
		if err := json.Compact(&buf, extra[k]); err != nil {
			return nil, fmt.Errorf("extension field %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func decodeRequest(res gjson.Result, path string) (CompletionRequest, error) {
	obj, err := asObject(res, path)
	if err != nil {
		return CompletionRequest{}, err
	}

	model, err := obj.RequiredString("model")
	if err != nil {
		return CompletionRequest{}, err
	}
	messageItems, err := obj.RequiredArray("messages")
	if err != nil {
		return CompletionRequest{}, err
	}
	messages, err := decodeMessages(messageItems, obj.At("messages"))
	if err != nil {
		return CompletionRequest{}, err
	}
	maxTokens, err := obj.RequiredUint32("max_tokens")
	if err != nil {
		return CompletionRequest{}, err
	}

	req := NewCompletionRequest(model, maxTokens, messages...)

	temperature, err := obj.OptionalFloat("temperature")
	if err != nil {
		return CompletionRequest{}, err
	}
	if temperature != nil {
		if *temperature < 0 || *temperature > 1 {
			return CompletionRequest{}, NewTypeMismatchError(obj.At("temperature"), fmt.Sprintf("expected number in [0, 1], got %v", *temperature))
		}
		t := float32(*temperature)
		req.Temperature = &t
	}

	if systemRes := obj.Get("system"); present(systemRes) {
		system, err := decodeSystemPrompt(systemRes, obj.At("system"))
		if err != nil {
			return CompletionRequest{}, err
		}
		req.System = &system
	}

	if toolsRes := obj.Get("tools"); present(toolsRes) {
		if !toolsRes.IsArray() {
			return CompletionRequest{}, NewTypeMismatchError(obj.At("tools"), "expected array, got "+describe(toolsRes))
		}
		tools, err := decodeToolDefinitions(toolsRes.Array(), obj.At("tools"))
		if err != nil {
			return CompletionRequest{}, err
		}
		req.Tools = tools
	}

	if choiceRes := obj.Get("tool_choice"); present(choiceRes) {
		choice, err := decodeToolChoice(choiceRes, obj.At("tool_choice"))
		if err != nil {
			return CompletionRequest{}, err
		}
		req.ToolChoice = &choice
	}

	req.DisableParallelToolUse, err = obj.OptionalBool("disable_parallel_tool_use")
	if err != nil {
		return CompletionRequest{}, err
	}

	if paramsRes := obj.Get("additional_params"); present(paramsRes) {
		req.AdditionalParams, err = rawMap(paramsRes, obj.At("additional_params"))
		if err != nil {
			return CompletionRequest{}, err
		}
	}

	obj.ForEach(func(name string, value gjson.Result) bool {
		if requestFields[name] {
			return true
		}
		if req.Extra == nil {
			req.Extra = map[string]json.RawMessage{}
		}
		req.Extra[name] = compactRaw(value)
		return true
	})

	return req, nil
}
