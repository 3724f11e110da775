package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yildizm/SiteLens/internal/event"
	"github.com/yildizm/SiteLens/internal/logger"
)

const (
	// StorageKey names the durable slot that holds the serialized log
	StorageKey = "trackingEvents"
	// ExportFileName is the fixed name of the exported log
	ExportFileName = "tracking_data.txt"
	// ExportControlID identifies the export control on the dispatcher
	ExportControlID = "download-tracking"
)

// Options configure a Sink
type Options struct {
	Console   io.Writer        // echo each line here; nil disables the echo
	Store     Store            // durable slot store; defaults to a MemoryStore
	ExportDir string           // directory the export control writes into
	Clock     func() time.Time // defaults to time.Now
	Logger    *logger.Logger
}

// Sink is the ordered, append-only log of tracked events.
//
// Each append is a read-modify-write of one store slot. A Sink is meant to be
// driven from a single dispatch loop and does no locking of its own.
type Sink struct {
	console   io.Writer
	store     Store
	exportDir string
	clock     func() time.Time
	log       *logger.Logger
}

// New creates a sink
func New(opts Options) *Sink {
	s := &Sink{
		console:   opts.Console,
		store:     opts.Store,
		exportDir: opts.ExportDir,
		clock:     opts.Clock,
		log:       opts.Logger,
	}
	if s.store == nil {
		s.store = NewMemoryStore()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.exportDir == "" {
		s.exportDir = "."
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

// Log stamps a new entry with the sink's clock and appends it
func (s *Sink) Log(eventType EventType, objectType, objectDescription string) (LogEntry, error) {
	entry := NewEntry(s.clock(), eventType, objectType, objectDescription)
	if err := s.Append(entry); err != nil {
		return LogEntry{}, err
	}
	return entry, nil
}

// Append formats entry, echoes it to the console and stores it
func (s *Sink) Append(entry LogEntry) error {
	line := entry.String()

	if s.console != nil {
		if _, err := fmt.Fprintln(s.console, line); err != nil {
			return fmt.Errorf("failed to write console line: %w", err)
		}
	}

	lines, err := s.Lines()
	if err != nil {
		return err
	}
	lines = append(lines, line)

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode log: %w", err)
	}
	if err := s.store.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to store log: %w", err)
	}

	s.log.DebugWithFields("appended entry", []logger.Field{logger.Count(len(lines))})
	return nil
}

// Lines returns the stored log lines in append order
func (s *Sink) Lines() ([]string, error) {
	raw, ok, err := s.store.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	if !ok || raw == "" {
		return []string{}, nil
	}

	var lines []string
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("stored log is corrupt: %w", err)
	}
	return lines, nil
}

// Entries parses the stored lines
func (s *Sink) Entries() ([]LogEntry, error) {
	lines, err := s.Lines()
	if err != nil {
		return nil, err
	}

	entries := make([]LogEntry, 0, len(lines))
	for i, line := range lines {
		entry, err := ParseLogLine(line)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ExportAll writes the whole log as newline-joined text.
// Exporting does not change the log, so repeated exports are identical.
func (s *Sink) ExportAll(w io.Writer) error {
	lines, err := s.Lines()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to export log: %w", err)
	}
	return nil
}

// ExportFile writes the log to ExportFileName inside dir and returns the path
func (s *Sink) ExportFile(dir string) (string, error) {
	if dir == "" {
		dir = s.exportDir
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	var b strings.Builder
	if err := s.ExportAll(&b); err != nil {
		return "", err
	}

	path := filepath.Join(dir, ExportFileName)
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.log.Info("exported tracking data to %s", path)
	return path, nil
}

// Reset empties the log
func (s *Sink) Reset() error {
	if err := s.store.Remove(StorageKey); err != nil {
		return fmt.Errorf("failed to reset log: %w", err)
	}
	return nil
}

// EnsureExportTrigger registers the export control on d unless it is
// already present. It reports whether a control was added.
func (s *Sink) EnsureExportTrigger(d *event.Dispatcher) bool {
	if d.HasControl(ExportControlID) {
		return false
	}
	return d.RegisterControl(ExportControlID, func(ctx context.Context, _ event.Event) error {
		_, err := s.ExportFile(s.exportDir)
		return err
	})
}
