package event

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownControl is returned when triggering a control that was never registered
var ErrUnknownControl = errors.New("unknown control")

// Handler reacts to a delivered event
type Handler func(ctx context.Context, ev Event) error

// Dispatcher delivers events to handlers one at a time.
//
// Handlers run to completion in registration order before the next event is
// processed, so anything they append is ordered exactly as events arrive.
// A Dispatcher is not safe for concurrent use; Run owns it while it runs.
type Dispatcher struct {
	handlers map[Kind][]Handler
	controls map[string]Handler

	// OnError receives handler errors during Run. When nil, Run stops and
	// returns the first error.
	OnError func(ev Event, err error)
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[Kind][]Handler),
		controls: make(map[string]Handler),
	}
}

// On registers a handler for an event kind
func (d *Dispatcher) On(kind Kind, h Handler) {
	d.handlers[kind] = append(d.handlers[kind], h)
}

// RegisterControl adds a named control unless one with the same id already
// exists. It reports whether the control was added.
func (d *Dispatcher) RegisterControl(id string, h Handler) bool {
	if _, exists := d.controls[id]; exists {
		return false
	}
	d.controls[id] = h
	return true
}

// HasControl reports whether a control with the given id exists
func (d *Dispatcher) HasControl(id string) bool {
	_, exists := d.controls[id]
	return exists
}

// Controls returns the number of registered controls
func (d *Dispatcher) Controls() int {
	return len(d.controls)
}

// Trigger invokes a registered control
func (d *Dispatcher) Trigger(ctx context.Context, id string) error {
	h, exists := d.controls[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownControl, id)
	}
	return h(ctx, Event{Kind: KindExport, Target: id})
}

// Dispatch delivers one event to every handler registered for its kind.
// All handlers run; their errors are joined.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	var errs []error
	for _, h := range d.handlers[ev.Kind] {
		if err := h(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run drains events until the channel is closed or ctx is cancelled
func (d *Dispatcher) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := d.Dispatch(ctx, ev); err != nil {
				if d.OnError == nil {
					return fmt.Errorf("dispatch %s: %w", ev.Kind, err)
				}
				d.OnError(ev, err)
			}
		}
	}
}
