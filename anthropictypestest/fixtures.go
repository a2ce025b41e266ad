// Package anthropictypestest provides canonical payloads and values for
// exercising the schema model in tests.
package anthropictypestest

import (
	"encoding/json"

	anthropictypes "github.com/terraform-industries/anthropic-types"
)

// MinimalRequestJSON has exactly the required request fields.
const MinimalRequestJSON = `{"model":"claude-3-7-sonnet-20250219","messages":[{"role":"user","content":"hi"}],"max_tokens":1024}`

// ScenarioRequestJSON mixes a segmented system prompt with string message content.
const ScenarioRequestJSON = `{"model":"claude-3-7-sonnet-20250219","max_tokens":1024,"system":[{"type":"text","text":"A"},{"type":"text","text":"B","cache_control":{"type":"ephemeral"}}],"messages":[{"role":"user","content":"hi"}]}`

// SystemStringRequestJSON uses the bare-string system prompt.
const SystemStringRequestJSON = `{
  "model": "claude-3-7-sonnet-20250219",
  "max_tokens": 1024,
  "system": "You are an AI assistant tasked with analyzing literary works.",
  "messages": [
    {"role": "user", "content": "Analyze the major themes in Pride and Prejudice."}
  ]
}`

// DocumentRequestJSON sends a citable plain-text document followed by a question.
const DocumentRequestJSON = `{
  "model": "claude-3-7-sonnet-20250219",
  "max_tokens": 1024,
  "messages": [
    {
      "role": "user",
      "content": [
        {
          "type": "document",
          "source": {"type": "text", "media_type": "text/plain", "data": "The grass is green. The sky is blue."},
          "title": "My Document",
          "context": "This is a trustworthy document.",
          "citations": {"enabled": true}
        },
        {"type": "text", "text": "What color is the grass and sky?"}
      ]
    }
  ]
}`

// ToolConversationRequestJSON carries a full tool round trip.
const ToolConversationRequestJSON = `{
  "model": "claude-3-5-haiku-20241022",
  "max_tokens": 512,
  "temperature": 0.5,
  "tools": [
    {
      "name": "calculator",
      "description": "Evaluates mathematical expressions",
      "input_schema": {
        "type": "object",
        "properties": {"expression": {"type": "string", "description": "The mathematical expression to evaluate"}},
        "required": ["expression"]
      }
    }
  ],
  "tool_choice": {"type": "tool", "name": "calculator"},
  "disable_parallel_tool_use": true,
  "messages": [
    {"role": "user", "content": "What is 6 * 7?"},
    {"role": "assistant", "content": [{"type": "tool_use", "id": "toolu_01", "name": "calculator", "input": {"expression": "6 * 7"}}]},
    {"role": "user", "content": [{"type": "tool_result", "tool_use_id": "toolu_01", "content": [{"type": "text", "text": "42"}]}]}
  ]
}`

// ResponseJSON is a finished response that requests a tool call.
const ResponseJSON = `{
  "content": [
    {"type": "text", "text": "Let me calculate that."},
    {"type": "tool_use", "id": "toolu_01", "name": "calculator", "input": {"expression": "6 * 7"}}
  ],
  "id": "msg_01",
  "model": "claude-3-5-haiku-20241022",
  "role": "assistant",
  "stop_reason": "tool_use",
  "stop_sequence": null,
  "type": "message",
  "usage": {"input_tokens": 120, "output_tokens": 30, "cache_read_input_tokens": 0}
}`

// StreamingStartResponseJSON is the message snapshot sent before generation ends.
const StreamingStartResponseJSON = `{"content":[],"id":"msg_02","model":"claude-3-7-sonnet-20250219","role":"assistant","stop_reason":null,"stop_sequence":null,"type":"message","usage":{"input_tokens":25,"output_tokens":1}}`

// ToolUseStream is a recorded event stream for a reply that says one
// sentence and calls a tool.
const ToolUseStream = `event: message_start
data: {"type":"message_start","message":{"id":"msg_03","type":"message","role":"assistant","content":[],"model":"claude-3-7-sonnet-20250219","stop_reason":null,"stop_sequence":null,"usage":{"input_tokens":472,"output_tokens":2}}}

event: content_block_start
data: {"type":"content_block_start","index":0,"content_block":{"type":"text","text":""}}

event: ping
data: {"type": "ping"}

event: content_block_delta
data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Okay, let me check"}}

event: content_block_delta
data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":" the weather."}}

event: content_block_stop
data: {"type":"content_block_stop","index":0}

event: content_block_start
data: {"type":"content_block_start","index":1,"content_block":{"type":"tool_use","id":"toolu_01","name":"get_weather","input":{}}}

event: content_block_delta
data: {"type":"content_block_delta","index":1,"delta":{"type":"input_json_delta","partial_json":""}}

event: content_block_delta
data: {"type":"content_block_delta","index":1,"delta":{"type":"input_json_delta","partial_json":"{\"location\": \"San Fra"}}

event: content_block_delta
data: {"type":"content_block_delta","index":1,"delta":{"type":"input_json_delta","partial_json":"ncisco, CA\"}"}}

event: content_block_stop
data: {"type":"content_block_stop","index":1}

event: message_delta
data: {"type":"message_delta","delta":{"stop_reason":"tool_use","stop_sequence":null},"usage":{"output_tokens":89}}

event: message_stop
data: {"type":"message_stop"}
`

// ToolUseStreamResponse is the response ToolUseStream accumulates to.
func ToolUseStreamResponse() anthropictypes.CompletionResponse {
	return anthropictypes.CompletionResponse{
		Content: []anthropictypes.ContentBlock{
			anthropictypes.NewTextBlock("Okay, let me check the weather."),
			anthropictypes.NewToolUseBlock("toolu_01", "get_weather", json.RawMessage(`{"location":"San Francisco, CA"}`)),
		},
		ID:         "msg_03",
		Model:      "claude-3-7-sonnet-20250219",
		Role:       "assistant",
		StopReason: ptr(anthropictypes.StopReasonToolUse),
		Type:       "message",
		Usage:      anthropictypes.Usage{InputTokens: 472, OutputTokens: 89},
	}
}

// ScenarioRequest is the decoded form of ScenarioRequestJSON.
func ScenarioRequest() anthropictypes.CompletionRequest {
	req := anthropictypes.NewCompletionRequest(
		"claude-3-7-sonnet-20250219",
		1024,
		anthropictypes.NewUserMessage(anthropictypes.NewTextBlock("hi")),
	)
	second := anthropictypes.NewTextSegment("B")
	second.CacheControl = anthropictypes.NewEphemeralCacheControl()
	req.System = anthropictypes.NewSystemSegments(anthropictypes.NewTextSegment("A"), second)
	return req
}

// ContentBlocks returns one block of every variant, including a document
// for every source variant, each with its optional fields populated.
func ContentBlocks() []anthropictypes.ContentBlock {
	blocks := []anthropictypes.ContentBlock{
		anthropictypes.NewTextBlock("hello"),
		anthropictypes.NewToolUseBlock("toolu_01", "calculator", json.RawMessage(`{"expression":"6 * 7"}`)),
		anthropictypes.NewToolResultBlock("toolu_01", []json.RawMessage{anthropictypes.TextResultItem("42")}, ptr(false)),
	}
	for _, source := range DocumentSources() {
		doc := anthropictypes.NewDocumentBlock(source)
		doc.Document.Title = ptr("Document Title")
		doc.Document.Context = ptr("Context about the document that will not be cited from")
		doc.Document.Citations = &anthropictypes.DocumentCitations{Enabled: true}
		doc.Document.CacheControl = anthropictypes.NewEphemeralCacheControl()
		blocks = append(blocks, doc)
	}
	return append(blocks, anthropictypes.NewDocumentBlock(anthropictypes.NewURLSource("https://example.com/bare.pdf")))
}

// DocumentSources returns one source of every variant.
func DocumentSources() []anthropictypes.DocumentSource {
	return []anthropictypes.DocumentSource{
		anthropictypes.NewTextSource("text/plain", "Plain text content..."),
		anthropictypes.NewBase64Source("application/pdf", "YmFzZTY0LWVuY29kZWQtcGRmLWNvbnRlbnQ="),
		anthropictypes.NewContentSource("First chunk", "Second chunk"),
		anthropictypes.NewURLSource("https://example.com/report.pdf"),
	}
}

func ptr[T any](v T) *T {
	return &v
}
