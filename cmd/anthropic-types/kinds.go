package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	anthropictypes "github.com/terraform-industries/anthropic-types"
	"github.com/terraform-industries/anthropic-types/envelope"
	"github.com/terraform-industries/anthropic-types/internal/config"
	"github.com/terraform-industries/anthropic-types/internal/tracing"
)

// decoded is a payload decoded as one of the supported kinds.
type decoded struct {
	value   any
	summary tracing.Summary
}

func decodeKind(kind config.Kind, data []byte) (decoded, error) {
	switch kind {
	case config.KindRequest:
		req, err := anthropictypes.DecodeRequest(data)
		if err != nil {
			return decoded{}, err
		}
		return decoded{value: req, summary: requestSummary(req)}, nil
	case config.KindResponse:
		resp, err := anthropictypes.DecodeResponse(data)
		if err != nil {
			return decoded{}, err
		}
		return decoded{value: resp, summary: responseSummary(resp)}, nil
	case config.KindMessage:
		msg, err := anthropictypes.DecodeMessage(data)
		if err != nil {
			return decoded{}, err
		}
		blocks := len(msg.Content)
		return decoded{value: msg, summary: tracing.Summary{ContentBlocks: &blocks}}, nil
	case config.KindBlock:
		block, err := anthropictypes.DecodeContentBlock(data)
		if err != nil {
			return decoded{}, err
		}
		one := 1
		return decoded{value: block, summary: tracing.Summary{ContentBlocks: &one}}, nil
	case config.KindEnvelopeRequest:
		req, err := envelope.DecodeRequest(data)
		if err != nil {
			return decoded{}, err
		}
		var summary tracing.Summary
		if req.GenerateCompletion != nil {
			summary = requestSummary(req.GenerateCompletion.Request)
		}
		return decoded{value: req, summary: summary}, nil
	case config.KindEnvelopeResponse:
		resp, err := envelope.DecodeResponse(data)
		if err != nil {
			return decoded{}, err
		}
		var summary tracing.Summary
		if resp.Completion != nil {
			summary = responseSummary(resp.Completion.Completion)
		}
		return decoded{value: resp, summary: summary}, nil
	case config.KindStream:
		resp, err := anthropictypes.DecodeStream(bytes.NewReader(data))
		if err != nil {
			return decoded{}, err
		}
		return decoded{value: resp, summary: responseSummary(resp)}, nil
	default:
		return decoded{}, fmt.Errorf("unsupported kind %q", kind)
	}
}

func requestSummary(req anthropictypes.CompletionRequest) tracing.Summary {
	maxTokens := req.MaxTokens
	messages := len(req.Messages)
	blocks := 0
	for _, msg := range req.Messages {
		blocks += len(msg.Content)
	}
	return tracing.Summary{
		Model:         req.Model,
		MaxTokens:     &maxTokens,
		Messages:      &messages,
		ContentBlocks: &blocks,
	}
}

func responseSummary(resp anthropictypes.CompletionResponse) tracing.Summary {
	blocks := len(resp.Content)
	usage := resp.Usage
	return tracing.Summary{
		Model:         resp.Model,
		ContentBlocks: &blocks,
		StopReason:    resp.StopReason,
		Usage:         &usage,
	}
}

// describeSummary renders the short detail shown next to a valid payload.
func describeSummary(s tracing.Summary) string {
	var out string
	add := func(format string, args ...any) {
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf(format, args...)
	}
	if s.Model != "" {
		add("model=%s", s.Model)
	}
	if s.Messages != nil {
		add("messages=%d", *s.Messages)
	}
	if s.ContentBlocks != nil {
		add("blocks=%d", *s.ContentBlocks)
	}
	if s.StopReason != nil {
		add("stop_reason=%s", *s.StopReason)
	}
	if s.Usage != nil {
		add("tokens=%d/%d", s.Usage.TotalInputTokens(), s.Usage.OutputTokens)
	}
	return out
}

// encodeValue writes the canonical JSON form of a decoded value.
func encodeValue(value any) ([]byte, error) {
	return json.Marshal(value)
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
