package anthropictypes

import (
	"encoding/json"
	"strings"

	"github.com/terraform-industries/anthropic-types/internal/sliceutils"
	"github.com/tidwall/gjson"
)

// SystemPrompt holds the system instruction in whichever encoding it arrived
// in: a bare string (Text) or an ordered list of segments. The two are never
// conflated on decode so a re-encode reproduces the original shape.
type SystemPrompt struct {
	Text     *string
	Segments []SystemSegment
}

// SystemSegment is one piece of a segmented system prompt. Segments can be
// individually marked as cacheable.
type SystemSegment struct {
	Type         string        `json:"type"`
	Text         string        `json:"text"`
	CacheControl *CacheControl `json:"cache_control,omitempty"`
}

func NewSystemText(text string) *SystemPrompt {
	return &SystemPrompt{Text: &text}
}

func NewSystemSegments(segments ...SystemSegment) *SystemPrompt {
	if segments == nil {
		segments = []SystemSegment{}
	}
	return &SystemPrompt{Segments: segments}
}

// NewTextSegment creates a text segment without cache control.
func NewTextSegment(text string) SystemSegment {
	return SystemSegment{Type: "text", Text: text}
}

// IsSegmented reports whether the prompt holds the segmented encoding.
func (p SystemPrompt) IsSegmented() bool {
	return p.Text == nil
}

// Normalized returns the segmented view of the prompt. A bare string becomes
// a single text segment. The receiver is not modified.
func (p SystemPrompt) Normalized() []SystemSegment {
	if p.Text != nil {
		return []SystemSegment{NewTextSegment(*p.Text)}
	}
	return append([]SystemSegment(nil), p.Segments...)
}

// String joins segment texts with newlines.
func (p SystemPrompt) String() string {
	if p.Text != nil {
		return *p.Text
	}
	return strings.Join(sliceutils.Map(p.Segments, func(s SystemSegment) string {
		return s.Text
	}), "\n")
}

func (p SystemPrompt) MarshalJSON() ([]byte, error) {
	if p.Text != nil {
		return json.Marshal(*p.Text)
	}
	segments := p.Segments
	if segments == nil {
		segments = []SystemSegment{}
	}
	return json.Marshal(segments)
}

func (p *SystemPrompt) UnmarshalJSON(data []byte) error {
	res, err := parsePayload(data)
	if err != nil {
		return err
	}
	prompt, err := decodeSystemPrompt(res, "")
	if err != nil {
		return err
	}
	*p = prompt
	return nil
}

// decodeSystemPrompt tries the segmented arm first and falls back to the bare
// string. An array always selects the segmented arm, so an array of strings
// fails on its first element rather than being coerced.
func decodeSystemPrompt(res gjson.Result, path string) (SystemPrompt, error) {
	if res.IsArray() {
		segments, err := sliceutils.MapErr(res.Array(), func(i int, item gjson.Result) (SystemSegment, error) {
			return decodeSystemSegment(item, indexPath(path, i))
		})
		if err != nil {
			return SystemPrompt{}, err
		}
		return SystemPrompt{Segments: segments}, nil
	}
	if res.Type == gjson.String {
		text := res.Str
		return SystemPrompt{Text: &text}, nil
	}
	return SystemPrompt{}, NewTypeMismatchError(path, "expected array or string, got "+describe(res))
}

func decodeSystemSegment(res gjson.Result, path string) (SystemSegment, error) {
	obj, err := asObject(res, path)
	if err != nil {
		return SystemSegment{}, err
	}
	segmentType, err := obj.Discriminator()
	if err != nil {
		return SystemSegment{}, err
	}
	text, err := obj.RequiredString("text")
	if err != nil {
		return SystemSegment{}, err
	}
	cacheControl, err := decodeOptionalCacheControl(obj)
	if err != nil {
		return SystemSegment{}, err
	}
	return SystemSegment{Type: segmentType, Text: text, CacheControl: cacheControl}, nil
}
