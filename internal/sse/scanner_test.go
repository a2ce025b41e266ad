package sse_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/terraform-industries/anthropic-types/internal/sse"
)

func TestScanner(t *testing.T) {
	stream := ": keep-alive\n" +
		"\n" +
		"event: message_start\n" +
		"data: {\"type\":\"message_start\"}\n" +
		"\n" +
		"event: ping\r\n" +
		"data:{\"type\": \"ping\"}\r\n" +
		"\r\n" +
		"id: 7\n" +
		"data: first\n" +
		"data: second\n"

	s := sse.NewScanner(strings.NewReader(stream))
	var got []sse.Event
	for s.Scan() {
		got = append(got, s.Event())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}

	want := []sse.Event{
		{Type: "message_start", Data: `{"type":"message_start"}`, Line: 3},
		{Type: "ping", Data: `{"type": "ping"}`, Line: 6},
		{ID: "7", Data: "first\nsecond", Line: 9},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestScannerEmpty(t *testing.T) {
	s := sse.NewScanner(strings.NewReader("\n\n: comment only\n\n"))
	if s.Scan() {
		t.Errorf("unexpected event %+v", s.Event())
	}
}
