package event

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Event
		wantOK  bool
		wantErr bool
	}{
		{name: "load", line: `{"type":"load"}`, want: Event{Kind: KindLoad}, wantOK: true},
		{name: "click", line: `{"type":"click","target":"#logo"}`, want: Event{Kind: KindClick, Target: "#logo"}, wantOK: true},
		{name: "intersect", line: `{"type":"intersect","target":"#about","ratio":0.75}`, want: Event{Kind: KindIntersect, Target: "#about", Ratio: 0.75}, wantOK: true},
		{name: "blank", line: "   "},
		{name: "comment", line: "# page opened"},
		{name: "bad json", line: `{"type":`, wantErr: true},
		{name: "unknown kind", line: `{"type":"scroll"}`, wantErr: true},
		{name: "click without target", line: `{"type":"click"}`, wantErr: true},
		{name: "ratio out of range", line: `{"type":"intersect","target":"section","ratio":1.5}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok, err := ParseLine(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if ev != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, ev)
			}
		})
	}
}

func TestReadAllReportsLineNumber(t *testing.T) {
	script := "{\"type\":\"load\"}\n\n{\"type\":\"click\",\"target\":\"a\"}\n{\"type\":\"nope\"}\n"
	_, err := ReadAll(strings.NewReader(script))
	if err == nil || !strings.Contains(err.Error(), "line 4") {
		t.Fatalf("Expected error on line 4, got %v", err)
	}

	events, err := ReadAll(strings.NewReader("{\"type\":\"load\"}\n# note\n{\"type\":\"export\"}\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(events) != 2 || events[1].Kind != KindExport {
		t.Errorf("Expected load and export events, got %+v", events)
	}
}

func TestDispatchOrder(t *testing.T) {
	d := NewDispatcher()
	var seen []string
	d.On(KindClick, func(ctx context.Context, ev Event) error {
		seen = append(seen, "first:"+ev.Target)
		return nil
	})
	d.On(KindClick, func(ctx context.Context, ev Event) error {
		seen = append(seen, "second:"+ev.Target)
		return errors.New("boom")
	})
	d.On(KindLoad, func(ctx context.Context, ev Event) error {
		seen = append(seen, "load")
		return nil
	})

	err := d.Dispatch(context.Background(), Event{Kind: KindClick, Target: "a"})
	if err == nil || err.Error() != "boom" {
		t.Errorf("Expected joined error boom, got %v", err)
	}

	want := []string{"first:a", "second:a"}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Errorf("Expected %v, got %v", want, seen)
	}
}

func TestControlsAreRegisteredOnce(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	h := func(ctx context.Context, ev Event) error {
		calls++
		return nil
	}

	if !d.RegisterControl("download", h) {
		t.Fatal("Expected first registration to succeed")
	}
	if d.RegisterControl("download", h) {
		t.Error("Expected duplicate registration to be rejected")
	}
	if d.Controls() != 1 {
		t.Errorf("Expected 1 control, got %d", d.Controls())
	}

	if err := d.Trigger(context.Background(), "download"); err != nil {
		t.Fatalf("Trigger() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}

	err := d.Trigger(context.Background(), "missing")
	if !errors.Is(err, ErrUnknownControl) {
		t.Errorf("Expected ErrUnknownControl, got %v", err)
	}
}

func TestRun(t *testing.T) {
	d := NewDispatcher()
	var targets []string
	d.On(KindClick, func(ctx context.Context, ev Event) error {
		if ev.Target == "bad" {
			return errors.New("bad target")
		}
		targets = append(targets, ev.Target)
		return nil
	})

	var failures int
	d.OnError = func(ev Event, err error) { failures++ }

	events := make(chan Event, 4)
	events <- Event{Kind: KindClick, Target: "a"}
	events <- Event{Kind: KindClick, Target: "bad"}
	events <- Event{Kind: KindClick, Target: "b"}
	close(events)

	if err := d.Run(context.Background(), events); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Join(targets, ",") != "a,b" {
		t.Errorf("Expected a,b got %v", targets)
	}
	if failures != 1 {
		t.Errorf("Expected 1 failure, got %d", failures)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	d := NewDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Run(ctx, make(chan Event))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
