// Package sink holds the append-only log of tracked interaction events.
package sink

import (
	"fmt"
	"strings"
	"time"
)

// EventType is the kind of tracked interaction
type EventType string

const (
	EventView  EventType = "view"
	EventClick EventType = "click"
)

// TimestampLayout renders timestamps like JavaScript's Date.toISOString
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// LogEntry is one tracked interaction. Entries are values and never change
// once created.
type LogEntry struct {
	Timestamp         time.Time `json:"timestamp"`
	EventType         EventType `json:"event_type"`
	ObjectType        string    `json:"object_type"`
	ObjectDescription string    `json:"object_description"`
}

// lineBreaks flattens anything that would split one entry across lines
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// NewEntry creates an entry stamped with t. Line breaks in the object type or
// description become spaces, so every entry renders as exactly one line.
func NewEntry(t time.Time, eventType EventType, objectType, objectDescription string) LogEntry {
	return LogEntry{
		Timestamp:         t.UTC(),
		EventType:         eventType,
		ObjectType:        lineBreaks.Replace(objectType),
		ObjectDescription: lineBreaks.Replace(objectDescription),
	}
}

// String renders the log line: "<timestamp>, <eventType>, <objectType>:<objectDescription>"
func (e LogEntry) String() string {
	return fmt.Sprintf("%s, %s, %s:%s",
		e.Timestamp.UTC().Format(TimestampLayout), e.EventType, e.ObjectType, e.ObjectDescription)
}

// ParseLogLine parses a rendered log line back into an entry.
// The object description may itself contain commas and colons.
func ParseLogLine(line string) (LogEntry, error) {
	parts := strings.SplitN(line, ", ", 3)
	if len(parts) != 3 {
		return LogEntry{}, fmt.Errorf("malformed log line: %q", line)
	}

	ts, err := time.Parse(TimestampLayout, parts[0])
	if err != nil {
		return LogEntry{}, fmt.Errorf("invalid timestamp %q: %w", parts[0], err)
	}

	eventType := EventType(parts[1])
	if eventType != EventView && eventType != EventClick {
		return LogEntry{}, fmt.Errorf("unknown event type %q", parts[1])
	}

	objectType, description, found := strings.Cut(parts[2], ":")
	if !found || objectType == "" {
		return LogEntry{}, fmt.Errorf("malformed object in log line: %q", parts[2])
	}

	return LogEntry{
		Timestamp:         ts,
		EventType:         eventType,
		ObjectType:        objectType,
		ObjectDescription: description,
	}, nil
}
