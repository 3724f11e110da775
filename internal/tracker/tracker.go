package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yildizm/SiteLens/internal/dom"
	"github.com/yildizm/SiteLens/internal/event"
	"github.com/yildizm/SiteLens/internal/logger"
	"github.com/yildizm/SiteLens/internal/sink"
)

const (
	unnamedSection = "unnamed-section"
	unnamedImage   = "unnamed-image"
)

// Options configure a Tracker
type Options struct {
	Threshold float64 // section visibility threshold, DefaultThreshold when zero
	Logger    *logger.Logger
}

// Tracker classifies interactions on one document and logs them to a sink
type Tracker struct {
	doc        *dom.Document
	sink       *sink.Sink
	observer   *Observer
	dispatcher *event.Dispatcher
	log        *logger.Logger
}

// New creates a tracker for doc writing to s
func New(doc *dom.Document, s *sink.Sink, opts Options) *Tracker {
	t := &Tracker{
		doc:  doc,
		sink: s,
		log:  opts.Logger,
	}
	if t.log == nil {
		t.log = logger.Nop()
	}
	t.observer = NewObserver(opts.Threshold, t.sectionVisible)
	return t
}

// Register installs the tracker's handlers on d
func (t *Tracker) Register(d *event.Dispatcher) {
	t.dispatcher = d
	d.On(event.KindLoad, t.handleLoad)
	d.On(event.KindClick, t.handleClick)
	d.On(event.KindIntersect, t.handleIntersect)
	d.On(event.KindImageLoad, t.handleImageLoad)
	d.On(event.KindExport, t.handleExport)
}

func (t *Tracker) handleLoad(ctx context.Context, ev event.Event) error {
	if err := t.logEvent(sink.EventView, "page", t.doc.Title()); err != nil {
		return err
	}

	sections := t.doc.All("section")
	for _, section := range sections {
		t.observer.Observe(section)
	}
	t.log.Debug("observing %d sections", len(sections))
	return nil
}

func (t *Tracker) handleClick(ctx context.Context, ev event.Event) error {
	el, ok := t.resolve(ev)
	if !ok {
		return nil
	}
	return t.logEvent(sink.EventClick, Classify(el), Describe(el))
}

func (t *Tracker) handleIntersect(ctx context.Context, ev event.Event) error {
	el, ok := t.resolve(ev)
	if !ok {
		return nil
	}
	if !t.observer.Observing(el) {
		t.log.Debug("ignoring intersection for unobserved element %s", ev.Target)
		return nil
	}
	_, err := t.observer.Report(el, ev.Ratio)
	return err
}

func (t *Tracker) handleImageLoad(ctx context.Context, ev event.Event) error {
	el, ok := t.resolve(ev)
	if !ok {
		return nil
	}
	if el.Tag != "img" {
		t.log.Debug("ignoring image load for <%s>", el.Tag)
		return nil
	}

	alt := strings.Join(strings.Fields(el.Alt), " ")
	if alt == "" {
		alt = unnamedImage
	}
	return t.logEvent(sink.EventView, "image", alt)
}

func (t *Tracker) handleExport(ctx context.Context, ev event.Event) error {
	if t.dispatcher == nil {
		return fmt.Errorf("tracker is not registered on a dispatcher")
	}
	err := t.dispatcher.Trigger(ctx, sink.ExportControlID)
	if errors.Is(err, event.ErrUnknownControl) {
		// The control only appears after the first tracked event
		t.log.Warn("export requested before any event was tracked")
		return nil
	}
	return err
}

func (t *Tracker) sectionVisible(el *dom.Element) error {
	id := el.ID
	if id == "" {
		id = unnamedSection
	}
	return t.logEvent(sink.EventView, "section", id)
}

func (t *Tracker) logEvent(eventType sink.EventType, objectType, description string) error {
	if _, err := t.sink.Log(eventType, objectType, description); err != nil {
		return err
	}
	if t.dispatcher != nil {
		t.sink.EnsureExportTrigger(t.dispatcher)
	}
	return nil
}

func (t *Tracker) resolve(ev event.Event) (*dom.Element, bool) {
	el, err := t.doc.Query(ev.Target)
	if err != nil {
		t.log.WarnWithFields("skipping event", []logger.Field{
			logger.F("type", ev.Kind),
			logger.F("target", ev.Target),
			logger.Error(err),
		})
		return nil, false
	}
	return el, true
}
