// Package sse reads recorded server-sent event streams.
package sse

import (
	"bufio"
	"io"
	"strings"
)

// MaxScanTokenSize bounds a single line of the stream.
const MaxScanTokenSize = 5 * 1024 * 1024 // 5MB

// Event represents a server-sent event
type Event struct {
	Type string
	Data string
	ID   string
	// Line is the 1-based line on which the event started.
	Line int
}

// Scanner splits a stream into events. A blank line ends an event.
type Scanner struct {
	scanner *bufio.Scanner
	line    int
	event   Event
}

// NewScanner creates a new SSE scanner from an io.Reader
func NewScanner(reader io.Reader) *Scanner {
	scanner := bufio.NewScanner(reader)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, MaxScanTokenSize)
	return &Scanner{scanner: scanner}
}

// Scan advances to the next event that carries data. Events with no data
// lines, such as bare comments, are skipped.
func (s *Scanner) Scan() bool {
	var (
		event   Event
		hasData bool
		started bool
	)
	for s.scanner.Scan() {
		s.line++
		line := strings.TrimSuffix(s.scanner.Text(), "\r")
		if line == "" {
			if hasData {
				s.event = event
				return true
			}
			event, started = Event{}, false
			continue
		}
		if !started {
			event.Line = s.line
			started = true
		}
		if strings.HasPrefix(line, ":") {
			continue
		}
		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			event.Type = value
		case "data":
			if hasData {
				event.Data += "\n"
			}
			event.Data += value
			hasData = true
		case "id":
			event.ID = value
		}
	}
	if hasData {
		s.event = event
		return true
	}
	return false
}

// Event returns the event read by the last call to Scan.
func (s *Scanner) Event() Event {
	return s.event
}

// Err returns any error encountered during scanning
func (s *Scanner) Err() error {
	return s.scanner.Err()
}
