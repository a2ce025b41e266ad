package anthropictypes

import (
	"encoding/json"
	"errors"

	"github.com/terraform-industries/anthropic-types/internal/sliceutils"
	"github.com/tidwall/gjson"
)

// ContentBlock represents one unit of message content. Exactly one variant is set.
type ContentBlock struct {
	Text       *TextBlock       `json:"-"`
	ToolUse    *ToolUseBlock    `json:"-"`
	ToolResult *ToolResultBlock `json:"-"`
	Document   *DocumentBlock   `json:"-"`
}

type ContentBlockType string

const (
	ContentBlockTypeText       ContentBlockType = "text"
	ContentBlockTypeToolUse    ContentBlockType = "tool_use"
	ContentBlockTypeToolResult ContentBlockType = "tool_result"
	ContentBlockTypeDocument   ContentBlockType = "document"
)

func (c ContentBlock) Type() ContentBlockType {
	switch {
	case c.Text != nil:
		return ContentBlockTypeText
	case c.ToolUse != nil:
		return ContentBlockTypeToolUse
	case c.ToolResult != nil:
		return ContentBlockTypeToolResult
	case c.Document != nil:
		return ContentBlockTypeDocument
	default:
		return ""
	}
}

// TextBlock is plain text content.
type TextBlock struct {
	Text string `json:"text"`
}

// ToolUseBlock is the model's request to invoke a tool. ID correlates it with
// the ToolResultBlock that answers it.
type ToolUseBlock struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

// ToolResultBlock carries the output of a tool invocation back to the model.
// Content items are opaque: their shape belongs to the tool-result contract
// and they are kept as compacted JSON.
type ToolResultBlock struct {
	ToolUseID string            `json:"tool_use_id"`
	Content   []json.RawMessage `json:"content"`
	IsError   *bool             `json:"is_error,omitempty"`
}

// DocumentBlock attaches a document the model can read and cite.
type DocumentBlock struct {
	Source       DocumentSource     `json:"source"`
	Title        *string            `json:"title,omitempty"`
	Context      *string            `json:"context,omitempty"`
	Citations    *DocumentCitations `json:"citations,omitempty"`
	CacheControl *CacheControl      `json:"cache_control,omitempty"`
}

// DocumentCitations toggles citation generation for a document.
type DocumentCitations struct {
	Enabled bool `json:"enabled"`
}

// CacheControl marks a block or system segment as a cache breakpoint.
type CacheControl struct {
	Type string `json:"type"`
}

// CacheControlEphemeral is the only cache type the service currently accepts.
const CacheControlEphemeral = "ephemeral"

// NewEphemeralCacheControl returns a cache control of type "ephemeral".
func NewEphemeralCacheControl() *CacheControl {
	return &CacheControl{Type: CacheControlEphemeral}
}

// NewTextBlock creates a new text block
func NewTextBlock(text string) ContentBlock {
	return ContentBlock{
		Text: &TextBlock{Text: text},
	}
}

// NewToolUseBlock creates a new tool use block. A nil input is stored as an empty object.
func NewToolUseBlock(id, name string, input json.RawMessage) ContentBlock {
	if input == nil {
		input = json.RawMessage(`{}`)
	}
	return ContentBlock{
		ToolUse: &ToolUseBlock{
			ID:    id,
			Name:  name,
			Input: input,
		},
	}
}

// NewToolResultBlock creates a new tool result block
func NewToolResultBlock(toolUseID string, content []json.RawMessage, isError *bool) ContentBlock {
	if content == nil {
		content = []json.RawMessage{}
	}
	return ContentBlock{
		ToolResult: &ToolResultBlock{
			ToolUseID: toolUseID,
			Content:   content,
			IsError:   isError,
		},
	}
}

// NewDocumentBlock creates a new document block. Optional fields are set on
// the returned block's Document.
func NewDocumentBlock(source DocumentSource) ContentBlock {
	return ContentBlock{
		Document: &DocumentBlock{Source: source},
	}
}

// TextResultItem builds a tool-result content item of type "text".
func TextResultItem(text string) json.RawMessage {
	raw, _ := json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{
		Type: string(ContentBlockTypeText),
		Text: text,
	})
	return raw
}

// MarshalJSON implements custom JSON marshaling for ContentBlock
func (c ContentBlock) MarshalJSON() ([]byte, error) {
	if c.variants() != 1 {
		return nil, errors.New("ContentBlock must have exactly one variant set")
	}
	if c.Text != nil {
		return json.Marshal(struct {
			Type ContentBlockType `json:"type"`
			*TextBlock
		}{
			Type:      ContentBlockTypeText,
			TextBlock: c.Text,
		})
	}
	if c.ToolUse != nil {
		block := *c.ToolUse
		if block.Input == nil {
			block.Input = json.RawMessage(`{}`)
		}
		return json.Marshal(struct {
			Type ContentBlockType `json:"type"`
			*ToolUseBlock
		}{
			Type:         ContentBlockTypeToolUse,
			ToolUseBlock: &block,
		})
	}
	if c.ToolResult != nil {
		block := *c.ToolResult
		if block.Content == nil {
			block.Content = []json.RawMessage{}
		}
		return json.Marshal(struct {
			Type ContentBlockType `json:"type"`
			*ToolResultBlock
		}{
			Type:            ContentBlockTypeToolResult,
			ToolResultBlock: &block,
		})
	}
	return json.Marshal(struct {
		Type ContentBlockType `json:"type"`
		*DocumentBlock
	}{
		Type:          ContentBlockTypeDocument,
		DocumentBlock: c.Document,
	})
}

func (c ContentBlock) variants() int {
	n := 0
	for _, set := range []bool{c.Text != nil, c.ToolUse != nil, c.ToolResult != nil, c.Document != nil} {
		if set {
			n++
		}
	}
	return n
}

// UnmarshalJSON implements custom JSON unmarshaling for ContentBlock
func (c *ContentBlock) UnmarshalJSON(data []byte) error {
	block, err := DecodeContentBlock(data)
	if err != nil {
		return err
	}
	*c = block
	return nil
}

// DecodeContentBlock decodes and validates a single content block.
func DecodeContentBlock(data []byte) (ContentBlock, error) {
	res, err := parsePayload(data)
	if err != nil {
		return ContentBlock{}, err
	}
	return decodeContentBlock(res, "")
}

// EncodeContentBlock encodes a content block, omitting absent optional fields.
func EncodeContentBlock(block ContentBlock) ([]byte, error) {
	return json.Marshal(block)
}

func decodeContentBlock(res gjson.Result, path string) (ContentBlock, error) {
	obj, err := asObject(res, path)
	if err != nil {
		return ContentBlock{}, err
	}
	kind, err := obj.Discriminator()
	if err != nil {
		return ContentBlock{}, err
	}

	switch ContentBlockType(kind) {
	case ContentBlockTypeText:
		text, err := obj.RequiredString("text")
		if err != nil {
			return ContentBlock{}, err
		}
		return NewTextBlock(text), nil
	case ContentBlockTypeToolUse:
		return decodeToolUse(obj)
	case ContentBlockTypeToolResult:
		return decodeToolResult(obj)
	case ContentBlockTypeDocument:
		return decodeDocument(obj)
	default:
		return ContentBlock{}, NewUnknownVariantError(obj.At("type"), kind)
	}
}

func decodeToolUse(obj object) (ContentBlock, error) {
	id, err := obj.RequiredString("id")
	if err != nil {
		return ContentBlock{}, err
	}
	name, err := obj.RequiredString("name")
	if err != nil {
		return ContentBlock{}, err
	}
	input := obj.Get("input")
	if !present(input) {
		return ContentBlock{}, NewMissingFieldError(obj.At("input"))
	}
	return NewToolUseBlock(id, name, compactRaw(input)), nil
}

func decodeToolResult(obj object) (ContentBlock, error) {
	toolUseID, err := obj.RequiredString("tool_use_id")
	if err != nil {
		return ContentBlock{}, err
	}

	var content []json.RawMessage
	res := obj.Get("content")
	switch {
	case !present(res):
		return ContentBlock{}, NewMissingFieldError(obj.At("content"))
	case res.Type == gjson.String:
		content = []json.RawMessage{TextResultItem(res.Str)}
	case res.IsArray():
		items := res.Array()
		content = make([]json.RawMessage, 0, len(items))
		for _, item := range items {
			content = append(content, compactRaw(item))
		}
	default:
		return ContentBlock{}, NewTypeMismatchError(obj.At("content"), "expected array or string, got "+describe(res))
	}

	isError, err := obj.OptionalBool("is_error")
	if err != nil {
		return ContentBlock{}, err
	}
	return NewToolResultBlock(toolUseID, content, isError), nil
}

func decodeDocument(obj object) (ContentBlock, error) {
	sourceRes := obj.Get("source")
	if !present(sourceRes) {
		return ContentBlock{}, NewMissingFieldError(obj.At("source"))
	}
	source, err := decodeDocumentSource(sourceRes, obj.At("source"))
	if err != nil {
		return ContentBlock{}, err
	}

	title, err := obj.OptionalString("title")
	if err != nil {
		return ContentBlock{}, err
	}
	context, err := obj.OptionalString("context")
	if err != nil {
		return ContentBlock{}, err
	}

	var citations *DocumentCitations
	if res := obj.Get("citations"); present(res) {
		citationsObj, err := asObject(res, obj.At("citations"))
		if err != nil {
			return ContentBlock{}, err
		}
		enabled, err := citationsObj.RequiredBool("enabled")
		if err != nil {
			return ContentBlock{}, err
		}
		citations = &DocumentCitations{Enabled: enabled}
	}

	cacheControl, err := decodeOptionalCacheControl(obj)
	if err != nil {
		return ContentBlock{}, err
	}

	block := NewDocumentBlock(source)
	block.Document.Title = title
	block.Document.Context = context
	block.Document.Citations = citations
	block.Document.CacheControl = cacheControl
	return block, nil
}

func decodeOptionalCacheControl(obj object) (*CacheControl, error) {
	res := obj.Get("cache_control")
	if !present(res) {
		return nil, nil
	}
	ccObj, err := asObject(res, obj.At("cache_control"))
	if err != nil {
		return nil, err
	}
	cacheType, err := ccObj.RequiredString("type")
	if err != nil {
		return nil, err
	}
	return &CacheControl{Type: cacheType}, nil
}

func decodeContentBlocks(items []gjson.Result, path string) ([]ContentBlock, error) {
	return sliceutils.MapErr(items, func(i int, item gjson.Result) (ContentBlock, error) {
		return decodeContentBlock(item, indexPath(path, i))
	})
}
