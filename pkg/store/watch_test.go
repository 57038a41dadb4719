package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
)

func TestJournalWatchEmitsKindChanges(t *testing.T) {
	j, err := OpenDiskv(t.TempDir())
	if err != nil {
		t.Fatalf("open diskv: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := j.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	cal := period.Calendar{Location: time.UTC}
	task, err := entry.NewTask("hello world", period.Day, time.Now(), cal, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if err := j.Tasks.Save(ctx, task); err != nil {
		t.Fatalf("save task: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventKindChanged {
				if evt.Kind != KindTask {
					t.Fatalf("expected kind task, got %q", evt.Kind)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for change event")
		}
	}
}

func TestWatchUnsupportedOnMemory(t *testing.T) {
	if _, err := NewMemory().Watch(context.Background()); err != ErrWatchUnsupported {
		t.Fatalf("expected ErrWatchUnsupported, got %v", err)
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	throttle := newEventThrottle(10 * time.Millisecond)
	defer throttle.Stop()

	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }
	for i := 0; i < 5; i++ {
		throttle.Enqueue(Event{Type: EventKindChanged, Kind: KindNote}, send)
	}

	select {
	case ev := <-got:
		if ev.Kind != KindNote {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no event flushed")
	}
	select {
	case ev := <-got:
		t.Fatalf("expected a single event, got another %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}
