package anthropictypes

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// StopReason is why the model stopped generating.
type StopReason string

const (
	StopReasonEndTurn      StopReason = "end_turn"
	StopReasonMaxTokens    StopReason = "max_tokens"
	StopReasonStopSequence StopReason = "stop_sequence"
	StopReasonToolUse      StopReason = "tool_use"
)

// Valid reports whether r is one of the four known stop reasons.
func (r StopReason) Valid() bool {
	switch r {
	case StopReasonEndTurn, StopReasonMaxTokens, StopReasonStopSequence, StopReasonToolUse:
		return true
	}
	return false
}

// CompletionResponse is the model's reply to a CompletionRequest.
type CompletionResponse struct {
	Content []ContentBlock `json:"content"`
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	// Always "assistant".
	Role string `json:"role"`
	// StopReason is nil while a streamed response has not terminated.
	StopReason *StopReason `json:"stop_reason"`
	// StopSequence is the matched custom stop sequence, if any. Legacy.
	StopSequence *string `json:"stop_sequence"`
	// Object type. For messages this is "message".
	Type  string `json:"type"`
	Usage Usage  `json:"usage"`
}

// DecodeResponse decodes and validates a completion response.
func DecodeResponse(data []byte) (CompletionResponse, error) {
	res, err := parsePayload(data)
	if err != nil {
		return CompletionResponse{}, err
	}
	return decodeResponse(res, "")
}

// EncodeResponse encodes a completion response. stop_reason and stop_sequence
// are always present on the wire and are written as null when absent.
func EncodeResponse(resp CompletionResponse) ([]byte, error) {
	return json.Marshal(resp)
}

func (r CompletionResponse) MarshalJSON() ([]byte, error) {
	type alias CompletionResponse
	a := alias(r)
	if a.Content == nil {
		a.Content = []ContentBlock{}
	}
	return json.Marshal(a)
}

func (r *CompletionResponse) UnmarshalJSON(data []byte) error {
	resp, err := DecodeResponse(data)
	if err != nil {
		return err
	}
	*r = resp
	return nil
}

func decodeResponse(res gjson.Result, path string) (CompletionResponse, error) {
	obj, err := asObject(res, path)
	if err != nil {
		return CompletionResponse{}, err
	}

	contentItems, err := obj.RequiredArray("content")
	if err != nil {
		return CompletionResponse{}, err
	}
	content, err := decodeContentBlocks(contentItems, obj.At("content"))
	if err != nil {
		return CompletionResponse{}, err
	}
	id, err := obj.RequiredString("id")
	if err != nil {
		return CompletionResponse{}, err
	}
	model, err := obj.RequiredString("model")
	if err != nil {
		return CompletionResponse{}, err
	}
	role, err := obj.RequiredString("role")
	if err != nil {
		return CompletionResponse{}, err
	}

	stopReason, err := optionalStopReason(obj, "stop_reason")
	if err != nil {
		return CompletionResponse{}, err
	}

	stopSequence, err := obj.OptionalString("stop_sequence")
	if err != nil {
		return CompletionResponse{}, err
	}
	messageType, err := obj.RequiredString("type")
	if err != nil {
		return CompletionResponse{}, err
	}
	usageObj, err := obj.RequiredObject("usage")
	if err != nil {
		return CompletionResponse{}, err
	}
	usage, err := decodeUsage(usageObj)
	if err != nil {
		return CompletionResponse{}, err
	}

	return CompletionResponse{
		Content:      content,
		ID:           id,
		Model:        model,
		Role:         role,
		StopReason:   stopReason,
		StopSequence: stopSequence,
		Type:         messageType,
		Usage:        usage,
	}, nil
}

// optionalStopReason reads a nullable stop reason. Tokens outside the four
// known reasons are UnknownVariant.
func optionalStopReason(o object, name string) (*StopReason, error) {
	reason, err := o.OptionalString(name)
	if err != nil || reason == nil {
		return nil, err
	}
	r := StopReason(*reason)
	if !r.Valid() {
		return nil, NewUnknownVariantError(o.At(name), *reason)
	}
	return &r, nil
}
