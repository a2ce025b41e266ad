package anthropictypes

import (
	"encoding/json"
	"strings"

	"github.com/terraform-industries/anthropic-types/internal/sliceutils"
	"github.com/tidwall/gjson"
)

// Conventional roles. Role values are not validated; callers decide which
// roles they accept.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one conversational turn. Content is always held as blocks:
// the bare-string wire form is canonicalized to a single text block on decode.
type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// NewMessage builds a message from already-typed blocks without any decoding.
func NewMessage(role string, content ...ContentBlock) Message {
	if content == nil {
		content = []ContentBlock{}
	}
	return Message{Role: role, Content: content}
}

func NewUserMessage(content ...ContentBlock) Message {
	return NewMessage(RoleUser, content...)
}

func NewAssistantMessage(content ...ContentBlock) Message {
	return NewMessage(RoleAssistant, content...)
}

// Text concatenates the text of every text block in the message.
func (m Message) Text() string {
	var sb strings.Builder
	for _, block := range m.Content {
		if block.Text != nil {
			sb.WriteString(block.Text.Text)
		}
	}
	return sb.String()
}

// MarshalJSON always emits the block-list form of content.
func (m Message) MarshalJSON() ([]byte, error) {
	content := m.Content
	if content == nil {
		content = []ContentBlock{}
	}
	return json.Marshal(struct {
		Role    string         `json:"role"`
		Content []ContentBlock `json:"content"`
	}{
		Role:    m.Role,
		Content: content,
	})
}

// UnmarshalJSON implements custom JSON unmarshaling for Message
func (m *Message) UnmarshalJSON(data []byte) error {
	msg, err := DecodeMessage(data)
	if err != nil {
		return err
	}
	*m = msg
	return nil
}

// DecodeMessage decodes a message, accepting either content encoding.
func DecodeMessage(data []byte) (Message, error) {
	res, err := parsePayload(data)
	if err != nil {
		return Message{}, err
	}
	return decodeMessage(res, "")
}

// EncodeMessage encodes a message with block-list content.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

func decodeMessage(res gjson.Result, path string) (Message, error) {
	obj, err := asObject(res, path)
	if err != nil {
		return Message{}, err
	}
	role, err := obj.RequiredString("role")
	if err != nil {
		return Message{}, err
	}
	if role == "" {
		return Message{}, NewTypeMismatchError(obj.At("role"), "expected non-empty string")
	}

	content := obj.Get("content")
	switch {
	case !present(content):
		return Message{}, NewMissingFieldError(obj.At("content"))
	case content.IsArray():
		blocks, err := decodeContentBlocks(content.Array(), obj.At("content"))
		if err != nil {
			return Message{}, err
		}
		return NewMessage(role, blocks...), nil
	case content.Type == gjson.String:
		return NewMessage(role, NewTextBlock(content.Str)), nil
	default:
		return Message{}, NewTypeMismatchError(obj.At("content"), "expected array or string, got "+describe(content))
	}
}

func decodeMessages(items []gjson.Result, path string) ([]Message, error) {
	return sliceutils.MapErr(items, func(i int, item gjson.Result) (Message, error) {
		return decodeMessage(item, indexPath(path, i))
	})
}
