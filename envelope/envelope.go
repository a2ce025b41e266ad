// Package envelope implements the externally tagged request and response
// messages exchanged with the completion proxy actor. Each message is either a
// bare variant name or a single-member object keyed by the variant name.
package envelope

import (
	"encoding/json"
	"errors"
	"fmt"

	anthropictypes "github.com/terraform-industries/anthropic-types"
	"github.com/terraform-industries/anthropic-types/internal/wire"
	"github.com/terraform-industries/anthropic-types/models"
	"github.com/tidwall/gjson"
)

type RequestType string

const (
	RequestTypeListModels         RequestType = "ListModels"
	RequestTypeGenerateCompletion RequestType = "GenerateCompletion"
)

// Request is a message sent to the proxy actor. Exactly one variant is set.
type Request struct {
	ListModels         *ListModelsRequest
	GenerateCompletion *GenerateCompletionRequest
}

// ListModelsRequest asks for the capability table. It carries no payload.
type ListModelsRequest struct{}

// GenerateCompletionRequest forwards a completion request.
type GenerateCompletionRequest struct {
	Request anthropictypes.CompletionRequest `json:"request"`
}

func NewListModelsRequest() Request {
	return Request{ListModels: &ListModelsRequest{}}
}

func NewGenerateCompletionRequest(req anthropictypes.CompletionRequest) Request {
	return Request{GenerateCompletion: &GenerateCompletionRequest{Request: req}}
}

func (r Request) Type() RequestType {
	switch {
	case r.ListModels != nil:
		return RequestTypeListModels
	case r.GenerateCompletion != nil:
		return RequestTypeGenerateCompletion
	default:
		return ""
	}
}

func (r Request) MarshalJSON() ([]byte, error) {
	switch {
	case r.ListModels != nil && r.GenerateCompletion == nil:
		return json.Marshal(RequestTypeListModels)
	case r.GenerateCompletion != nil && r.ListModels == nil:
		return json.Marshal(map[RequestType]*GenerateCompletionRequest{
			RequestTypeGenerateCompletion: r.GenerateCompletion,
		})
	default:
		return nil, errors.New("envelope.Request must have exactly one variant set")
	}
}

func (r *Request) UnmarshalJSON(data []byte) error {
	req, err := DecodeRequest(data)
	if err != nil {
		return err
	}
	*r = req
	return nil
}

// DecodeRequest decodes a proxy request. The embedded completion request is
// validated with the same rules as anthropictypes.DecodeRequest and errors
// are reported with the full path, e.g. "GenerateCompletion.request.max_tokens".
func DecodeRequest(data []byte) (Request, error) {
	tag, body, err := readTag(data)
	if err != nil {
		return Request{}, err
	}

	switch RequestType(tag) {
	case RequestTypeListModels:
		return NewListModelsRequest(), nil
	case RequestTypeGenerateCompletion:
		payload, err := requiredMember(body, tag, "request")
		if err != nil {
			return Request{}, err
		}
		req, err := anthropictypes.DecodeRequest([]byte(payload.Raw))
		if err != nil {
			return Request{}, anthropictypes.WrapPath(err, tag+".request")
		}
		return NewGenerateCompletionRequest(req), nil
	default:
		return Request{}, anthropictypes.NewUnknownVariantError("", tag)
	}
}

// EncodeRequest encodes a proxy request.
func EncodeRequest(req Request) ([]byte, error) {
	return json.Marshal(req)
}

type ResponseType string

const (
	ResponseTypeListModels ResponseType = "ListModels"
	ResponseTypeCompletion ResponseType = "Completion"
	ResponseTypeError      ResponseType = "Error"
)

// Response is a message returned by the proxy actor. Exactly one variant is set.
type Response struct {
	ListModels *ListModelsResponse
	Completion *CompletionResult
	Error      *ErrorResult
}

// ListModelsResponse lists the models the proxy knows about.
type ListModelsResponse struct {
	Models []models.ModelInfo `json:"models"`
}

// CompletionResult wraps a successful completion.
type CompletionResult struct {
	Completion anthropictypes.CompletionResponse `json:"completion"`
}

// ErrorResult reports a failed operation.
type ErrorResult struct {
	Error string `json:"error"`
}

// ModelsResponse builds the ListModels response from the capability table.
func ModelsResponse() Response {
	return Response{ListModels: &ListModelsResponse{Models: models.List()}}
}

func NewCompletionResponse(resp anthropictypes.CompletionResponse) Response {
	return Response{Completion: &CompletionResult{Completion: resp}}
}

// NewErrorResponse reports err to the caller. A nil err yields an empty message.
func NewErrorResponse(err error) Response {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Response{Error: &ErrorResult{Error: msg}}
}

func (r Response) Type() ResponseType {
	switch {
	case r.ListModels != nil:
		return ResponseTypeListModels
	case r.Completion != nil:
		return ResponseTypeCompletion
	case r.Error != nil:
		return ResponseTypeError
	default:
		return ""
	}
}

// Status summarizes the response outcome.
func (r Response) Status() ResponseStatus {
	if r.Error != nil {
		return StatusError
	}
	return StatusSuccess
}

func (r Response) MarshalJSON() ([]byte, error) {
	var value any
	n := 0
	if r.ListModels != nil {
		list := *r.ListModels
		if list.Models == nil {
			list.Models = []models.ModelInfo{}
		}
		value = map[ResponseType]ListModelsResponse{ResponseTypeListModels: list}
		n++
	}
	if r.Completion != nil {
		value = map[ResponseType]*CompletionResult{ResponseTypeCompletion: r.Completion}
		n++
	}
	if r.Error != nil {
		value = map[ResponseType]*ErrorResult{ResponseTypeError: r.Error}
		n++
	}
	if n != 1 {
		return nil, errors.New("envelope.Response must have exactly one variant set")
	}
	return json.Marshal(value)
}

func (r *Response) UnmarshalJSON(data []byte) error {
	resp, err := DecodeResponse(data)
	if err != nil {
		return err
	}
	*r = resp
	return nil
}

// DecodeResponse decodes a proxy response.
func DecodeResponse(data []byte) (Response, error) {
	tag, body, err := readTag(data)
	if err != nil {
		return Response{}, err
	}

	switch ResponseType(tag) {
	case ResponseTypeListModels:
		items, err := requiredMember(body, tag, "models")
		if err != nil {
			return Response{}, err
		}
		list, err := decodeModelInfos(items, tag+".models")
		if err != nil {
			return Response{}, err
		}
		return Response{ListModels: &ListModelsResponse{Models: list}}, nil
	case ResponseTypeCompletion:
		payload, err := requiredMember(body, tag, "completion")
		if err != nil {
			return Response{}, err
		}
		completion, err := anthropictypes.DecodeResponse([]byte(payload.Raw))
		if err != nil {
			return Response{}, anthropictypes.WrapPath(err, tag+".completion")
		}
		return NewCompletionResponse(completion), nil
	case ResponseTypeError:
		msg, err := requiredMember(body, tag, "error")
		if err != nil {
			return Response{}, err
		}
		if msg.Type != gjson.String {
			return Response{}, anthropictypes.NewTypeMismatchError(tag+".error", "expected string, got "+wire.Describe(msg))
		}
		return Response{Error: &ErrorResult{Error: msg.Str}}, nil
	default:
		return Response{}, anthropictypes.NewUnknownVariantError("", tag)
	}
}

// EncodeResponse encodes a proxy response.
func EncodeResponse(resp Response) ([]byte, error) {
	return json.Marshal(resp)
}

// ResponseStatus is the coarse outcome of a proxy operation.
type ResponseStatus string

const (
	StatusSuccess ResponseStatus = "Success"
	StatusError   ResponseStatus = "Error"
)

func (s *ResponseStatus) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return anthropictypes.NewTypeMismatchError("", fmt.Sprintf("expected string, got %s", data))
	}
	switch ResponseStatus(value) {
	case StatusSuccess, StatusError:
		*s = ResponseStatus(value)
		return nil
	default:
		return anthropictypes.NewUnknownVariantError("", value)
	}
}
