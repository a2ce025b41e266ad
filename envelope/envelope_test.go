package envelope_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	anthropictypes "github.com/terraform-industries/anthropic-types"
	"github.com/terraform-industries/anthropic-types/anthropictypestest"
	"github.com/terraform-industries/anthropic-types/envelope"
	"github.com/terraform-industries/anthropic-types/models"
)

func assertSchemaError(t *testing.T, err error, kind anthropictypes.Kind, path string) {
	t.Helper()
	var schemaErr *anthropictypes.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	if schemaErr.Kind != kind || schemaErr.Path != path {
		t.Errorf("got %s at %q, want %s at %q (%v)", schemaErr.Kind, schemaErr.Path, kind, path, err)
	}
}

func TestEncodeRequest(t *testing.T) {
	list, err := envelope.EncodeRequest(envelope.NewListModelsRequest())
	if err != nil {
		t.Fatalf("EncodeRequest returned error: %v", err)
	}
	if diff := cmp.Diff(`"ListModels"`, string(list)); diff != "" {
		t.Errorf("encoded mismatch (-want +got):\n%s", diff)
	}

	req := anthropictypes.NewCompletionRequest("m", 1, anthropictypes.NewUserMessage(anthropictypes.NewTextBlock("hi")))
	generate, err := envelope.EncodeRequest(envelope.NewGenerateCompletionRequest(req))
	if err != nil {
		t.Fatalf("EncodeRequest returned error: %v", err)
	}
	want := `{"GenerateCompletion":{"request":{"model":"m","messages":[{"role":"user","content":[{"type":"text","text":"hi"}]}],"max_tokens":1}}}`
	if diff := cmp.Diff(want, string(generate)); diff != "" {
		t.Errorf("encoded mismatch (-want +got):\n%s", diff)
	}

	if _, err := envelope.EncodeRequest(envelope.Request{}); err == nil {
		t.Error("expected error for a request with no variant")
	}
}

func TestDecodeRequest(t *testing.T) {
	tests := []struct {
		name string
		json string
		want envelope.Request
	}{
		{"bare list models", `"ListModels"`, envelope.NewListModelsRequest()},
		{"list models object", `{"ListModels":null}`, envelope.NewListModelsRequest()},
		{
			name: "generate completion",
			json: `{"GenerateCompletion":{"request":` + anthropictypestest.ScenarioRequestJSON + `}}`,
			want: envelope.NewGenerateCompletionRequest(anthropictypestest.ScenarioRequest()),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := envelope.DecodeRequest([]byte(tt.json))
			if err != nil {
				t.Fatalf("DecodeRequest returned error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("request mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeRequestErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		kind anthropictypes.Kind
		path string
	}{
		{"unknown bare tag", `"DeleteModel"`, anthropictypes.UnknownVariant, ""},
		{"unknown object tag", `{"Stream":{"request":{}}}`, anthropictypes.UnknownVariant, ""},
		{"two tags", `{"ListModels":null,"GenerateCompletion":{}}`, anthropictypes.TypeMismatch, ""},
		{"number", `1`, anthropictypes.TypeMismatch, ""},
		{"bare generate", `"GenerateCompletion"`, anthropictypes.MissingField, "GenerateCompletion.request"},
		{"generate without request", `{"GenerateCompletion":{}}`, anthropictypes.MissingField, "GenerateCompletion.request"},
		{"generate body array", `{"GenerateCompletion":[]}`, anthropictypes.TypeMismatch, "GenerateCompletion"},
		{"nested missing field", `{"GenerateCompletion":{"request":{"model":"m","messages":[]}}}`, anthropictypes.MissingField, "GenerateCompletion.request.max_tokens"},
		{"nested unknown block", `{"GenerateCompletion":{"request":{"model":"m","max_tokens":1,"messages":[{"role":"user","content":[{"type":"unknown_kind"}]}]}}}`, anthropictypes.UnknownVariant, "GenerateCompletion.request.messages[0].content[0].type"},
		{"nested not object", `{"GenerateCompletion":{"request":"hi"}}`, anthropictypes.TypeMismatch, "GenerateCompletion.request"},
		{"malformed", `{"GenerateCompletion":`, anthropictypes.MalformedPayload, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := envelope.DecodeRequest([]byte(tt.json))
			assertSchemaError(t, err, tt.kind, tt.path)
		})
	}
}

func TestModelsResponseRoundTrip(t *testing.T) {
	resp := envelope.ModelsResponse()
	if resp.Status() != envelope.StatusSuccess {
		t.Errorf("Status() = %s, want Success", resp.Status())
	}
	if diff := cmp.Diff(models.List(), resp.ListModels.Models); diff != "" {
		t.Errorf("models mismatch (-want +got):\n%s", diff)
	}

	data, err := envelope.EncodeResponse(resp)
	if err != nil {
		t.Fatalf("EncodeResponse returned error: %v", err)
	}
	got, err := envelope.DecodeResponse(data)
	if err != nil {
		t.Fatalf("DecodeResponse(%s) returned error: %v", data, err)
	}
	if diff := cmp.Diff(resp, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCompletionResponseRoundTrip(t *testing.T) {
	completion, err := anthropictypes.DecodeResponse([]byte(anthropictypestest.ResponseJSON))
	if err != nil {
		t.Fatalf("DecodeResponse returned error: %v", err)
	}
	resp := envelope.NewCompletionResponse(completion)
	data, err := envelope.EncodeResponse(resp)
	if err != nil {
		t.Fatalf("EncodeResponse returned error: %v", err)
	}
	var got envelope.Response
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal(%s) returned error: %v", data, err)
	}
	if diff := cmp.Diff(resp, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if got.Type() != envelope.ResponseTypeCompletion {
		t.Errorf("Type() = %s, want Completion", got.Type())
	}
}

func TestErrorResponse(t *testing.T) {
	resp := envelope.NewErrorResponse(errors.New("upstream unavailable"))
	if resp.Status() != envelope.StatusError {
		t.Errorf("Status() = %s, want Error", resp.Status())
	}
	data, err := envelope.EncodeResponse(resp)
	if err != nil {
		t.Fatalf("EncodeResponse returned error: %v", err)
	}
	if diff := cmp.Diff(`{"Error":{"error":"upstream unavailable"}}`, string(data)); diff != "" {
		t.Errorf("encoded mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeResponseErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		kind anthropictypes.Kind
		path string
	}{
		{"unknown tag", `{"Stream":{}}`, anthropictypes.UnknownVariant, ""},
		{"error without message", `{"Error":{}}`, anthropictypes.MissingField, "Error.error"},
		{"error number", `{"Error":{"error":5}}`, anthropictypes.TypeMismatch, "Error.error"},
		{"models not array", `{"ListModels":{"models":{}}}`, anthropictypes.TypeMismatch, "ListModels.models"},
		{"model without id", `{"ListModels":{"models":[{"display_name":"x","max_tokens":1,"provider":"anthropic","pricing":null}]}}`, anthropictypes.MissingField, "ListModels.models[0].id"},
		{"model negative max tokens", `{"ListModels":{"models":[{"id":"x","display_name":"x","max_tokens":-1,"provider":"anthropic"}]}}`, anthropictypes.TypeMismatch, "ListModels.models[0].max_tokens"},
		{"pricing without output", `{"ListModels":{"models":[{"id":"x","display_name":"x","max_tokens":1,"provider":"anthropic","pricing":{"input_cost_per_million_tokens":1}}]}}`, anthropictypes.MissingField, "ListModels.models[0].pricing.output_cost_per_million_tokens"},
		{"nested completion", `{"Completion":{"completion":{"content":[],"id":"i","model":"m","role":"assistant","stop_reason":"paused","type":"message","usage":{"input_tokens":1,"output_tokens":1}}}}`, anthropictypes.UnknownVariant, "Completion.completion.stop_reason"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := envelope.DecodeResponse([]byte(tt.json))
			assertSchemaError(t, err, tt.kind, tt.path)
		})
	}
}

func TestDecodeErrorMessagesMatchCompletionDecoder(t *testing.T) {
	tests := []struct {
		name  string
		outer string
		inner string
	}{
		{
			"string member",
			`{"ListModels":{"models":[{"id":"x","display_name":true,"max_tokens":1,"provider":"anthropic"}]}}`,
			`{"model":true,"messages":[],"max_tokens":1}`,
		},
		{
			"unsigned member",
			`{"ListModels":{"models":[{"id":"x","display_name":"x","max_tokens":"1","provider":"anthropic"}]}}`,
			`{"model":"m","messages":[],"max_tokens":"1"}`,
		},
		{
			"null body",
			`{"Error":null}`,
			`{"messages":[],"max_tokens":1}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, outerErr := envelope.DecodeResponse([]byte(tt.outer))
			_, innerErr := anthropictypes.DecodeRequest([]byte(tt.inner))
			var outer, inner *anthropictypes.SchemaError
			if !errors.As(outerErr, &outer) || !errors.As(innerErr, &inner) {
				t.Fatalf("got %v and %v, want schema errors", outerErr, innerErr)
			}
			if diff := cmp.Diff(inner.Kind, outer.Kind); diff != "" {
				t.Errorf("kind mismatch (-request +envelope):\n%s", diff)
			}
			if diff := cmp.Diff(inner.Message, outer.Message); diff != "" {
				t.Errorf("message mismatch (-request +envelope):\n%s", diff)
			}
		})
	}
}

func TestResponseStatus(t *testing.T) {
	var status envelope.ResponseStatus
	if err := json.Unmarshal([]byte(`"Success"`), &status); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if status != envelope.StatusSuccess {
		t.Errorf("status = %s, want Success", status)
	}
	err := json.Unmarshal([]byte(`"Pending"`), &status)
	if !anthropictypes.IsKind(err, anthropictypes.UnknownVariant) {
		t.Errorf("expected unknown variant error, got %v", err)
	}
}
