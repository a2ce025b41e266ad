package tracing

import (
	"context"
	"errors"
	"time"

	anthropictypes "github.com/terraform-industries/anthropic-types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/terraform-industries/anthropic-types"

// Summary is what a traced operation learned about the payload it handled.
// Unset fields are not recorded.
type Summary struct {
	Model         string
	MaxTokens     *uint32
	Messages      *int
	ContentBlocks *int
	StopReason    *anthropictypes.StopReason
	Usage         *anthropictypes.Usage
}

type schemaSpan struct {
	Kind      string
	Source    string
	Bytes     int
	StartTime time.Time
	Summary   Summary

	span trace.Span
}

// TraceDecode runs fn inside a "schema.<operation>" span. kind is the payload
// kind and source names where the payload came from (a file path or "-").
func TraceDecode(
	ctx context.Context,
	operation string,
	kind string,
	source string,
	size int,
	fn func(context.Context) (Summary, error),
) (Summary, error) {
	ctx, span := newSchemaSpan(ctx, operation, kind, source, size)
	defer span.OnEnd()

	summary, err := fn(ctx)
	if err != nil {
		span.OnError(err)
		return Summary{}, err
	}
	span.Summary = summary
	return summary, nil
}

func newSchemaSpan(ctx context.Context, operation, kind, source string, size int) (context.Context, *schemaSpan) {
	spanCtx, otelSpan := otel.Tracer(tracerName).Start(ctx, "schema."+operation)
	return spanCtx, &schemaSpan{
		Kind:      kind,
		Source:    source,
		Bytes:     size,
		StartTime: time.Now(),
		span:      otelSpan,
	}
}

func (s *schemaSpan) OnError(err error) {
	if err == nil {
		return
	}
	var schemaErr *anthropictypes.SchemaError
	if errors.As(err, &schemaErr) {
		s.span.SetAttributes(
			attribute.String("schema.error.kind", string(schemaErr.Kind)),
			attribute.String("schema.error.path", schemaErr.Path),
		)
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *schemaSpan) OnEnd() {
	s.span.SetAttributes(
		attribute.String("schema.kind", s.Kind),
		attribute.String("schema.source", s.Source),
		attribute.Int("schema.bytes", s.Bytes),
		attribute.Float64("schema.duration_seconds", time.Since(s.StartTime).Seconds()),
	)

	summary := s.Summary
	if summary.Model != "" {
		s.span.SetAttributes(attribute.String("gen_ai.request.model", summary.Model))
	}
	if summary.MaxTokens != nil {
		s.span.SetAttributes(attribute.Int64("gen_ai.request.max_tokens", int64(*summary.MaxTokens)))
	}
	if summary.Messages != nil {
		s.span.SetAttributes(attribute.Int("schema.messages", *summary.Messages))
	}
	if summary.ContentBlocks != nil {
		s.span.SetAttributes(attribute.Int("schema.content_blocks", *summary.ContentBlocks))
	}
	if summary.StopReason != nil {
		s.span.SetAttributes(attribute.StringSlice("gen_ai.response.finish_reasons", []string{string(*summary.StopReason)}))
	}
	if summary.Usage != nil {
		s.span.SetAttributes(
			attribute.Int64("gen_ai.usage.input_tokens", int64(summary.Usage.TotalInputTokens())),
			attribute.Int64("gen_ai.usage.output_tokens", int64(summary.Usage.OutputTokens)),
		)
	}

	s.span.End()
}
