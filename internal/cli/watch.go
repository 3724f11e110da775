package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yildizm/SiteLens/internal/event"
	"github.com/yildizm/SiteLens/internal/logger"
	"golang.org/x/sync/errgroup"
)

var (
	watchFromEnd bool
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <page.html> <events.jsonl>",
		Short: "Follow a growing event script in real time",
		Long: `Track events as they are appended to an event script.

Uses file system notifications to detect changes and dispatches each complete
line as soon as it is written. Existing lines are replayed first unless
--from-end is given. Press Ctrl+C to stop watching.`,
		Example: `  sitelens track watch page.html session.jsonl
  sitelens track watch --from-end page.html session.jsonl`,
		Args: cobra.ExactArgs(2),
		RunE: runWatch,
	}

	cmd.Flags().BoolVar(&watchFromEnd, "from-end", false, "skip events already in the file")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	log := newLogger("watch")

	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	filename := args[1]
	watcher, file, cleanup, err := setupFileWatcher(filename, log)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signalContext(cmd)
	defer stop()

	s := openSink(cmd.OutOrStdout(), log)
	d := newTrackingDispatcher(doc, s, log)
	follower := &eventFollower{file: file, log: log}

	events := make(chan event.Event, 64)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(events)
		return runWatchLoop(gctx, watcher, follower, events, log)
	})
	g.Go(func() error {
		return d.Run(gctx, events)
	})

	err = g.Wait()
	if err != nil && ctx.Err() == nil {
		return err
	}
	log.Info("stopped watching %s", filename)
	return nil
}

// eventFollower reads events appended to a file, keeping any trailing
// partial line until the rest of it is written
type eventFollower struct {
	file    *os.File
	offset  int64
	partial []byte
	line    int
	log     *logger.Logger
}

// readNew returns the complete events written since the last call.
// Malformed lines are logged and skipped.
func (f *eventFollower) readNew() ([]event.Event, error) {
	if err := f.handleTruncation(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(f.file)
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	f.offset += int64(len(data))

	buf := append(f.partial, data...)
	lastNewline := bytes.LastIndexByte(buf, '\n')
	if lastNewline < 0 {
		f.partial = buf
		return nil, nil
	}
	complete := buf[:lastNewline]
	f.partial = append([]byte(nil), buf[lastNewline+1:]...)

	var events []event.Event
	for _, line := range strings.Split(string(complete), "\n") {
		f.line++
		ev, ok, err := event.ParseLine(line)
		if err != nil {
			f.log.WarnWithFields("skipping malformed event", []logger.Field{
				logger.F("line", f.line),
				logger.Error(err),
			})
			continue
		}
		if ok {
			events = append(events, ev)
		}
	}
	return events, nil
}

// handleTruncation starts over when the file shrank beneath the read offset
func (f *eventFollower) handleTruncation() error {
	info, err := f.file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat events file: %w", err)
	}
	if info.Size() >= f.offset {
		return nil
	}

	f.log.Warn("events file was truncated, reading from the start")
	if _, err := f.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind events file: %w", err)
	}
	f.offset = 0
	f.partial = nil
	f.line = 0
	return nil
}

// skipExisting moves the follower past everything already in the file
func (f *eventFollower) skipExisting() error {
	offset, err := f.file.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("failed to seek to end of file: %w", err)
	}
	f.offset = offset
	return nil
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher, log *logger.Logger) {
	if err := watcher.Close(); err != nil {
		log.Warn("failed to close watcher: %v", err)
	}
}

// cleanupFile safely closes file with error logging
func cleanupFile(file *os.File, log *logger.Logger) {
	if err := file.Close(); err != nil {
		log.Warn("failed to close file: %v", err)
	}
}

// createWatcher creates and configures a new file system watcher
func createWatcher(filename string, log *logger.Logger) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filename); err != nil {
		cleanupWatcher(watcher, log)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// setupFileWatcher creates and configures file watcher
func setupFileWatcher(filename string, log *logger.Logger) (*fsnotify.Watcher, *os.File, func(), error) {
	if err := validateWatchFilePath(filename); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid file path: %w", err)
	}

	log.Info("watching file: %s", filename)
	log.Info("press Ctrl+C to stop")

	watcher, err := createWatcher(filename, log)
	if err != nil {
		return nil, nil, nil, err
	}

	// #nosec G304 - path is validated above
	file, err := os.Open(filepath.Clean(filename))
	if err != nil {
		cleanupWatcher(watcher, log)
		return nil, nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	cleanup := func() {
		cleanupWatcher(watcher, log)
		cleanupFile(file, log)
	}

	return watcher, file, cleanup, nil
}

// runWatchLoop forwards newly written events until ctx is done
func runWatchLoop(ctx context.Context, watcher *fsnotify.Watcher, follower *eventFollower, events chan<- event.Event, log *logger.Logger) error {
	if watchFromEnd {
		if err := follower.skipExisting(); err != nil {
			return err
		}
	} else if err := forwardNewEvents(ctx, follower, events); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if ev.Op&fsnotify.Write != fsnotify.Write {
				continue
			}
			if err := forwardNewEvents(ctx, follower, events); err != nil {
				log.Warn("error handling change: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Warn("watcher error: %v", err)
		}
	}
}

// forwardNewEvents reads pending events and hands them to the dispatcher
func forwardNewEvents(ctx context.Context, follower *eventFollower, events chan<- event.Event) error {
	pending, err := follower.readNew()
	if err != nil {
		return err
	}
	for _, ev := range pending {
		select {
		case events <- ev:
		case <-ctx.Done():
			return nil
		}
	}
	return nil
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	// Check for path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}
