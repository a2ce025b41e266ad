package anthropictypes

import (
	"fmt"
	"io"
	"sort"

	"github.com/terraform-industries/anthropic-types/internal/sse"
	"github.com/tidwall/gjson"
)

// StreamEventType is the discriminator of a streamed Messages API event.
type StreamEventType string

const (
	StreamEventMessageStart      StreamEventType = "message_start"
	StreamEventMessageDelta      StreamEventType = "message_delta"
	StreamEventMessageStop       StreamEventType = "message_stop"
	StreamEventContentBlockStart StreamEventType = "content_block_start"
	StreamEventContentBlockDelta StreamEventType = "content_block_delta"
	StreamEventContentBlockStop  StreamEventType = "content_block_stop"
	StreamEventPing              StreamEventType = "ping"
	StreamEventError             StreamEventType = "error"
)

// StreamError is an error event reported by the server mid-stream.
type StreamError struct {
	Type    string
	Message string
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream error %s: %s", e.Type, e.Message)
}

type accumulatedBlock struct {
	block       ContentBlock
	partialJSON string
}

// StreamAccumulator rebuilds a CompletionResponse from the events of a
// streamed response. Event types it does not know are skipped, and so are
// delta kinds the content model has no field for.
type StreamAccumulator struct {
	response *CompletionResponse
	blocks   map[int]*accumulatedBlock
	events   int
}

// NewStreamAccumulator creates an empty StreamAccumulator.
func NewStreamAccumulator() *StreamAccumulator {
	return &StreamAccumulator{blocks: make(map[int]*accumulatedBlock)}
}

// Events returns the number of events merged so far. Rejected events are not
// counted.
func (s *StreamAccumulator) Events() int {
	return s.events
}

// AddEvent decodes one event's data payload and merges it. An event that
// fails to decode leaves the accumulator unchanged. Error paths are relative
// to the event payload.
func (s *StreamAccumulator) AddEvent(data []byte) error {
	if err := s.addEvent(data); err != nil {
		return err
	}
	s.events++
	return nil
}

func (s *StreamAccumulator) addEvent(data []byte) error {
	res, err := parsePayload(data)
	if err != nil {
		return err
	}
	obj, err := asObject(res, "")
	if err != nil {
		return err
	}
	kind, err := obj.Discriminator()
	if err != nil {
		return err
	}

	switch StreamEventType(kind) {
	case StreamEventMessageStart:
		return s.messageStart(obj)
	case StreamEventContentBlockStart:
		return s.blockStart(obj)
	case StreamEventContentBlockDelta:
		return s.blockDelta(obj)
	case StreamEventContentBlockStop:
		_, err := s.block(obj)
		return err
	case StreamEventMessageDelta:
		return s.messageDelta(obj)
	case StreamEventError:
		return streamError(obj)
	default:
		return nil
	}
}

func (s *StreamAccumulator) messageStart(obj object) error {
	if s.response != nil {
		return NewTypeMismatchError(obj.At("type"), "duplicate message_start")
	}
	res := obj.Get("message")
	if !present(res) {
		return NewMissingFieldError(obj.At("message"))
	}
	resp, err := decodeResponse(res, obj.At("message"))
	if err != nil {
		return err
	}
	s.response = &resp
	return nil
}

func (s *StreamAccumulator) blockStart(obj object) error {
	index, err := obj.RequiredUint32("index")
	if err != nil {
		return err
	}
	if _, ok := s.blocks[int(index)]; ok {
		return NewTypeMismatchError(obj.At("index"), fmt.Sprintf("duplicate content_block_start for index %d", index))
	}
	res := obj.Get("content_block")
	if !present(res) {
		return NewMissingFieldError(obj.At("content_block"))
	}
	block, err := decodeContentBlock(res, obj.At("content_block"))
	if err != nil {
		return err
	}
	s.blocks[int(index)] = &accumulatedBlock{block: block}
	return nil
}

// block returns the block started for the event's index.
func (s *StreamAccumulator) block(obj object) (*accumulatedBlock, error) {
	index, err := obj.RequiredUint32("index")
	if err != nil {
		return nil, err
	}
	b, ok := s.blocks[int(index)]
	if !ok {
		return nil, NewTypeMismatchError(obj.At("index"), fmt.Sprintf("no content_block_start for index %d", index))
	}
	return b, nil
}

func (s *StreamAccumulator) blockDelta(obj object) error {
	b, err := s.block(obj)
	if err != nil {
		return err
	}
	delta, err := obj.RequiredObject("delta")
	if err != nil {
		return err
	}
	kind, err := delta.Discriminator()
	if err != nil {
		return err
	}
	switch kind {
	case "text_delta":
		if b.block.Text == nil {
			return NewTypeMismatchError(delta.At("type"), "text_delta for "+string(b.block.Type())+" block")
		}
		text, err := delta.RequiredString("text")
		if err != nil {
			return err
		}
		b.block.Text.Text += text
	case "input_json_delta":
		if b.block.ToolUse == nil {
			return NewTypeMismatchError(delta.At("type"), "input_json_delta for "+string(b.block.Type())+" block")
		}
		partial, err := delta.RequiredString("partial_json")
		if err != nil {
			return err
		}
		b.partialJSON += partial
	}
	return nil
}

func (s *StreamAccumulator) messageDelta(obj object) error {
	if s.response == nil {
		return NewTypeMismatchError(obj.At("type"), "message_delta before message_start")
	}
	delta, err := obj.RequiredObject("delta")
	if err != nil {
		return err
	}
	stopReason, err := optionalStopReason(delta, "stop_reason")
	if err != nil {
		return err
	}
	stopSequence, err := delta.OptionalString("stop_sequence")
	if err != nil {
		return err
	}
	usage := s.response.Usage.clone()
	if present(obj.Get("usage")) {
		if usage, err = mergeUsageDelta(usage, obj); err != nil {
			return err
		}
	}

	if stopReason != nil {
		s.response.StopReason = stopReason
	}
	if stopSequence != nil {
		s.response.StopSequence = stopSequence
	}
	s.response.Usage = usage
	return nil
}

// mergeUsageDelta overlays the counts of a message_delta usage object onto
// usage. output_tokens is required; the other counts replace only when present.
func mergeUsageDelta(usage Usage, obj object) (Usage, error) {
	delta, err := obj.RequiredObject("usage")
	if err != nil {
		return Usage{}, err
	}
	output, err := delta.RequiredUint32("output_tokens")
	if err != nil {
		return Usage{}, err
	}
	input, err := delta.OptionalUint32("input_tokens")
	if err != nil {
		return Usage{}, err
	}
	cacheRead, err := delta.OptionalUint32("cache_read_input_tokens")
	if err != nil {
		return Usage{}, err
	}
	cacheCreation, err := delta.OptionalUint32("cache_creation_input_tokens")
	if err != nil {
		return Usage{}, err
	}

	usage.OutputTokens = output
	if input != nil {
		usage.InputTokens = *input
	}
	if cacheRead != nil {
		usage.CacheReadInputTokens = cacheRead
	}
	if cacheCreation != nil {
		usage.CacheCreationInputTokens = cacheCreation
	}
	return usage, nil
}

func streamError(obj object) error {
	detail, err := obj.RequiredObject("error")
	if err != nil {
		return err
	}
	kind, err := detail.RequiredString("type")
	if err != nil {
		return err
	}
	msg, err := detail.RequiredString("message")
	if err != nil {
		return err
	}
	return &StreamError{Type: kind, Message: msg}
}

// ComputeResponse returns the response accumulated so far. Started blocks
// replace the snapshot's content in index order. Accumulated tool input must
// be a complete JSON value. The result shares no memory with the accumulator.
func (s *StreamAccumulator) ComputeResponse() (CompletionResponse, error) {
	if s.response == nil {
		return CompletionResponse{}, NewMissingFieldError(string(StreamEventMessageStart))
	}
	resp := s.response.clone()
	if len(s.blocks) == 0 {
		return resp, nil
	}

	indices := make([]int, 0, len(s.blocks))
	for index := range s.blocks {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	resp.Content = make([]ContentBlock, 0, len(indices))
	for i, index := range indices {
		b := s.blocks[index]
		block := b.block.clone()
		if block.ToolUse != nil && b.partialJSON != "" {
			if !gjson.Valid(b.partialJSON) {
				return CompletionResponse{}, NewTypeMismatchError(indexPath("content", i)+".input", "accumulated tool input is not valid JSON")
			}
			block.ToolUse.Input = compactRaw(gjson.Parse(b.partialJSON))
		}
		resp.Content = append(resp.Content, block)
	}
	return resp, nil
}

// DecodeStream reads a recorded event stream and returns the response it
// describes. Error paths are rooted at the failing event, e.g.
// "events[3].delta.stop_reason".
func DecodeStream(r io.Reader) (CompletionResponse, error) {
	acc := NewStreamAccumulator()
	scanner := sse.NewScanner(r)
	for i := 0; scanner.Scan(); i++ {
		if err := acc.AddEvent([]byte(scanner.Event().Data)); err != nil {
			return CompletionResponse{}, WrapPath(err, indexPath("events", i))
		}
	}
	if err := scanner.Err(); err != nil {
		return CompletionResponse{}, NewMalformedPayloadError("read event stream", err)
	}
	return acc.ComputeResponse()
}
