package anthropictypes

import (
	"encoding/json"
	"errors"

	"github.com/terraform-industries/anthropic-types/internal/sliceutils"
	"github.com/tidwall/gjson"
)

// DocumentSource is where a document's bytes come from. Exactly one variant is set.
type DocumentSource struct {
	Text   *TextSource   `json:"-"`
	Base64 *Base64Source `json:"-"`
	Custom *CustomSource `json:"-"`
	URL    *URLSource    `json:"-"`
}

type DocumentSourceType string

const (
	DocumentSourceTypeText    DocumentSourceType = "text"
	DocumentSourceTypeBase64  DocumentSourceType = "base64"
	DocumentSourceTypeContent DocumentSourceType = "content"
	DocumentSourceTypeURL     DocumentSourceType = "url"
)

func (s DocumentSource) Type() DocumentSourceType {
	switch {
	case s.Text != nil:
		return DocumentSourceTypeText
	case s.Base64 != nil:
		return DocumentSourceTypeBase64
	case s.Custom != nil:
		return DocumentSourceTypeContent
	case s.URL != nil:
		return DocumentSourceTypeURL
	default:
		return ""
	}
}

// TextSource is an inline plain-text document.
type TextSource struct {
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// Base64Source is an inline binary document, e.g. a PDF.
type Base64Source struct {
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// CustomSource is a document supplied as pre-chunked text. Each chunk is a
// citable unit.
type CustomSource struct {
	Content []TextChunk `json:"content"`
}

type TextChunk struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// URLSource references a document the service fetches itself.
type URLSource struct {
	URL string `json:"url"`
}

func NewTextSource(mediaType, data string) DocumentSource {
	return DocumentSource{Text: &TextSource{MediaType: mediaType, Data: data}}
}

func NewBase64Source(mediaType, data string) DocumentSource {
	return DocumentSource{Base64: &Base64Source{MediaType: mediaType, Data: data}}
}

// NewContentSource creates a custom source from text chunks.
func NewContentSource(chunks ...string) DocumentSource {
	content := sliceutils.Map(chunks, func(text string) TextChunk {
		return TextChunk{Type: "text", Text: text}
	})
	return DocumentSource{Custom: &CustomSource{Content: content}}
}

func NewURLSource(url string) DocumentSource {
	return DocumentSource{URL: &URLSource{URL: url}}
}

// MarshalJSON implements custom JSON marshaling for DocumentSource
func (s DocumentSource) MarshalJSON() ([]byte, error) {
	if s.variants() != 1 {
		return nil, errors.New("DocumentSource must have exactly one variant set")
	}
	if s.Text != nil {
		return json.Marshal(struct {
			Type DocumentSourceType `json:"type"`
			*TextSource
		}{
			Type:       DocumentSourceTypeText,
			TextSource: s.Text,
		})
	}
	if s.Base64 != nil {
		return json.Marshal(struct {
			Type DocumentSourceType `json:"type"`
			*Base64Source
		}{
			Type:         DocumentSourceTypeBase64,
			Base64Source: s.Base64,
		})
	}
	if s.Custom != nil {
		source := *s.Custom
		if source.Content == nil {
			source.Content = []TextChunk{}
		}
		return json.Marshal(struct {
			Type DocumentSourceType `json:"type"`
			*CustomSource
		}{
			Type:         DocumentSourceTypeContent,
			CustomSource: &source,
		})
	}
	if s.URL != nil {
		return json.Marshal(struct {
			Type DocumentSourceType `json:"type"`
			*URLSource
		}{
			Type:      DocumentSourceTypeURL,
			URLSource: s.URL,
		})
	}
	return nil, errors.New("DocumentSource must have exactly one variant set")
}

func (s DocumentSource) variants() int {
	n := 0
	for _, set := range []bool{s.Text != nil, s.Base64 != nil, s.Custom != nil, s.URL != nil} {
		if set {
			n++
		}
	}
	return n
}

// UnmarshalJSON implements custom JSON unmarshaling for DocumentSource
func (s *DocumentSource) UnmarshalJSON(data []byte) error {
	res, err := parsePayload(data)
	if err != nil {
		return err
	}
	source, err := decodeDocumentSource(res, "")
	if err != nil {
		return err
	}
	*s = source
	return nil
}

func decodeDocumentSource(res gjson.Result, path string) (DocumentSource, error) {
	obj, err := asObject(res, path)
	if err != nil {
		return DocumentSource{}, err
	}
	kind, err := obj.Discriminator()
	if err != nil {
		return DocumentSource{}, err
	}

	switch DocumentSourceType(kind) {
	case DocumentSourceTypeText, DocumentSourceTypeBase64:
		mediaType, err := obj.RequiredString("media_type")
		if err != nil {
			return DocumentSource{}, err
		}
		data, err := obj.RequiredString("data")
		if err != nil {
			return DocumentSource{}, err
		}
		if DocumentSourceType(kind) == DocumentSourceTypeText {
			return NewTextSource(mediaType, data), nil
		}
		return NewBase64Source(mediaType, data), nil
	case DocumentSourceTypeContent:
		items, err := obj.RequiredArray("content")
		if err != nil {
			return DocumentSource{}, err
		}
		chunks, err := sliceutils.MapErr(items, func(i int, item gjson.Result) (TextChunk, error) {
			chunkObj, err := asObject(item, indexPath(obj.At("content"), i))
			if err != nil {
				return TextChunk{}, err
			}
			chunkType, err := chunkObj.Discriminator()
			if err != nil {
				return TextChunk{}, err
			}
			text, err := chunkObj.RequiredString("text")
			if err != nil {
				return TextChunk{}, err
			}
			return TextChunk{Type: chunkType, Text: text}, nil
		})
		if err != nil {
			return DocumentSource{}, err
		}
		return DocumentSource{Custom: &CustomSource{Content: chunks}}, nil
	case DocumentSourceTypeURL:
		url, err := obj.RequiredString("url")
		if err != nil {
			return DocumentSource{}, err
		}
		return NewURLSource(url), nil
	default:
		return DocumentSource{}, NewUnknownVariantError(obj.At("type"), kind)
	}
}
