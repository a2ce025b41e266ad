package anthropictypes

import (
	"encoding/json"
	"slices"

	"github.com/terraform-industries/anthropic-types/internal/sliceutils"
)

// Deep copies for values handed out while the source keeps changing.

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return slices.Clone(raw)
}

func (c ContentBlock) clone() ContentBlock {
	out := ContentBlock{Text: clonePtr(c.Text)}
	if c.ToolUse != nil {
		toolUse := *c.ToolUse
		toolUse.Input = cloneRaw(toolUse.Input)
		out.ToolUse = &toolUse
	}
	if c.ToolResult != nil {
		result := *c.ToolResult
		if result.Content != nil {
			result.Content = sliceutils.Map(result.Content, cloneRaw)
		}
		result.IsError = clonePtr(result.IsError)
		out.ToolResult = &result
	}
	if c.Document != nil {
		doc := *c.Document
		doc.Source = doc.Source.clone()
		doc.Title = clonePtr(doc.Title)
		doc.Context = clonePtr(doc.Context)
		doc.Citations = clonePtr(doc.Citations)
		doc.CacheControl = clonePtr(doc.CacheControl)
		out.Document = &doc
	}
	return out
}

func cloneBlocks(blocks []ContentBlock) []ContentBlock {
	if blocks == nil {
		return nil
	}
	return sliceutils.Map(blocks, ContentBlock.clone)
}

func (s DocumentSource) clone() DocumentSource {
	out := DocumentSource{
		Text:   clonePtr(s.Text),
		Base64: clonePtr(s.Base64),
		URL:    clonePtr(s.URL),
	}
	if s.Custom != nil {
		custom := CustomSource{Content: slices.Clone(s.Custom.Content)}
		out.Custom = &custom
	}
	return out
}

func (u Usage) clone() Usage {
	u.CacheReadInputTokens = clonePtr(u.CacheReadInputTokens)
	u.CacheCreationInputTokens = clonePtr(u.CacheCreationInputTokens)
	return u
}

func (r CompletionResponse) clone() CompletionResponse {
	r.Content = cloneBlocks(r.Content)
	r.StopReason = clonePtr(r.StopReason)
	r.StopSequence = clonePtr(r.StopSequence)
	r.Usage = r.Usage.clone()
	return r
}
