package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yildizm/SiteLens/internal/config"
	"github.com/yildizm/SiteLens/internal/dom"
	"github.com/yildizm/SiteLens/internal/emoji"
	"github.com/yildizm/SiteLens/internal/event"
	"github.com/yildizm/SiteLens/internal/logger"
	"github.com/yildizm/SiteLens/internal/sink"
	"github.com/yildizm/SiteLens/internal/tracker"
	"golang.org/x/sync/errgroup"
)

var (
	trackStorePath string
	trackExportDir string
	trackQuiet     bool
)

// newTrackCommand creates the track command with subcommands
func newTrackCommand() *cobra.Command {
	trackCmd := &cobra.Command{
		Use:   "track",
		Short: "Track page interactions",
		Long: `Replay or follow page interaction events against an HTML document.

Every click, section view and image load is classified, described and
appended to a local store as a line such as:

  2024-01-01T00:00:00.000Z, click, button:Submit

The stored log survives between runs and can be exported to tracking_data.txt.`,
	}

	trackCmd.PersistentFlags().StringVar(&trackStorePath, "store", "", "slot store file (default from config)")
	trackCmd.PersistentFlags().StringVar(&trackExportDir, "dir", "", "export directory (default from config)")
	trackCmd.PersistentFlags().BoolVarP(&trackQuiet, "quiet", "q", false, "do not echo log lines")

	trackCmd.AddCommand(newTrackReplayCommand())
	trackCmd.AddCommand(newWatchCommand())
	trackCmd.AddCommand(newTrackExportCommand())
	trackCmd.AddCommand(newTrackShowCommand())
	trackCmd.AddCommand(newTrackResetCommand())

	return trackCmd
}

func newTrackReplayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <page.html> <events.jsonl>",
		Short: "Replay an event script against a page",
		Long: `Replay a script of interaction events, one JSON object per line:

  {"type":"load"}
  {"type":"click","target":"#signup"}
  {"type":"intersect","target":"section[1]","ratio":0.6}
  {"type":"imageload","target":"img[0]"}
  {"type":"export"}

Targets are "#id", ".class" or "tag" selectors with an optional [n] index.`,
		Example: `  sitelens track replay page.html session.jsonl
  sitelens track replay --quiet --dir ./exports page.html session.jsonl`,
		Args: cobra.ExactArgs(2),
		RunE: runTrackReplay,
	}
}

func runTrackReplay(cmd *cobra.Command, args []string) error {
	log := newLogger("track")

	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	events, err := loadEvents(args[1])
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	s := openSink(cmd.OutOrStdout(), log)
	d := newTrackingDispatcher(doc, s, log)

	ch := make(chan event.Event)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(ch)
		for _, ev := range events {
			select {
			case ch <- ev:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})
	g.Go(func() error {
		return d.Run(gctx, ch)
	})
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			log.Warn("replay interrupted")
			return nil
		}
		return fmt.Errorf("replay failed: %w", err)
	}

	log.InfoWithFields("replay complete", []logger.Field{logger.Count(len(events))})
	return nil
}

func newTrackExportCommand() *cobra.Command {
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stored log to tracking_data.txt",
		Example: `  sitelens track export
  sitelens track export --dir ./exports
  sitelens track export --stdout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := openSink(nil, newLogger("track"))

			if toStdout {
				return s.ExportAll(cmd.OutOrStdout())
			}

			path, err := s.ExportFile(exportDir())
			if err != nil {
				return err
			}
			lines, err := s.Lines()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %d entries to %s\n", emoji.GetEmoji("export"), len(lines), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&toStdout, "stdout", false, "write the log to stdout instead of a file")
	return cmd
}

func newTrackShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored log",
		Long:  "Display the stored log entries. Use -o json for machine-readable output.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := openSink(nil, newLogger("track"))
			entries, err := s.Entries()
			if err != nil {
				return err
			}
			return writeEntries(cmd.OutOrStdout(), entries, getOutputFormat())
		},
	}
}

func newTrackResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openSink(nil, newLogger("track")).Reset(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Tracking log cleared\n", emoji.GetEmoji("success"))
			return nil
		},
	}
}

// writeEntries renders stored entries as text or JSON
func writeEntries(w io.Writer, entries []sink.LogEntry, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal entries: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "text", "":
		if len(entries) == 0 {
			_, err := fmt.Fprintf(w, "%s No tracked events\n", emoji.GetEmoji("info"))
			return err
		}
		for _, entry := range entries {
			if _, err := fmt.Fprintf(w, "%s %s\n", entryEmoji(entry), entry); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "\n%s %d entries\n", emoji.GetEmoji("statistics"), len(entries))
		return err
	default:
		return fmt.Errorf("unsupported format for track show: %s (use text or json)", format)
	}
}

// entryEmoji picks the symbol shown next to a stored entry
func entryEmoji(entry sink.LogEntry) string {
	switch {
	case entry.EventType == sink.EventClick:
		return emoji.GetEmoji("click")
	case entry.ObjectType == "page":
		return emoji.GetEmoji("page")
	default:
		return emoji.GetEmoji("view")
	}
}

// newTrackingDispatcher wires a tracker for doc onto a fresh dispatcher.
// Handler failures are logged and do not stop the event loop.
func newTrackingDispatcher(doc *dom.Document, s *sink.Sink, log *logger.Logger) *event.Dispatcher {
	cfg := GetGlobalConfig()

	d := event.NewDispatcher()
	d.OnError = func(ev event.Event, err error) {
		log.WarnWithFields("event failed", []logger.Field{
			logger.F("type", ev.Kind),
			logger.F("target", ev.Target),
			logger.Error(err),
		})
	}

	t := tracker.New(doc, s, tracker.Options{
		Threshold: cfg.Tracker.VisibilityThreshold,
		Logger:    log.WithComponent("tracker"),
	})
	t.Register(d)
	return d
}

// openSink opens the durable log. console receives echoed lines unless
// tracking is quiet.
func openSink(console io.Writer, log *logger.Logger) *sink.Sink {
	cfg := GetGlobalConfig()

	storePath := trackStorePath
	if storePath == "" {
		storePath = cfg.Tracker.StorePath
	}

	opts := sink.Options{
		Store:     sink.NewFileStore(config.ExpandPath(storePath)),
		ExportDir: exportDir(),
		Logger:    log.WithComponent("sink"),
	}
	if console != nil && !trackQuiet && !cfg.Tracker.Quiet {
		opts.Console = console
	}
	return sink.New(opts)
}

func exportDir() string {
	if trackExportDir != "" {
		return config.ExpandPath(trackExportDir)
	}
	return config.ExpandPath(GetGlobalConfig().Tracker.ExportDir)
}

// loadDocument parses the page the events refer to
func loadDocument(path string) (*dom.Document, error) {
	if err := validateFilePath(path); err != nil {
		return nil, fmt.Errorf("invalid page path: %w", err)
	}
	// #nosec G304 - path is validated above
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer func() { _ = file.Close() }()

	doc, err := dom.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load page %s: %w", path, err)
	}
	return doc, nil
}

// loadEvents reads a complete event script
func loadEvents(path string) ([]event.Event, error) {
	if err := validateFilePath(path); err != nil {
		return nil, fmt.Errorf("invalid events path: %w", err)
	}
	// #nosec G304 - path is validated above
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open events: %w", err)
	}
	defer func() { _ = file.Close() }()

	events, err := event.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read events from %s: %w", path, err)
	}
	return events, nil
}

// signalContext derives a context cancelled by SIGINT or SIGTERM
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
