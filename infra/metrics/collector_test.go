package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/skyhaul/dronesim/core/events"
	coremetrics "github.com/skyhaul/dronesim/core/metrics"
	"github.com/skyhaul/dronesim/internal/eventbus"
)

type capturingSink struct {
	recordSink
	mu          sync.Mutex
	completions []coremetrics.CompletionStat
}

func (c *capturingSink) RecordCompletion(s coremetrics.CompletionStat) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completions = append(c.completions, s)
	return nil
}

func (c *capturingSink) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.completions)
}

func TestEventCollectorForwardsCompletions(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	sink := &capturingSink{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartEventCollector(ctx, bus, sink)
	bus.Publish(events.CompletionEvent{Tick: 12, Customer: 4, Points: 88})
	bus.Publish(events.TickEvent{Tick: 12})

	deadline := time.After(time.Second)
	for sink.count() == 0 {
		select {
		case <-deadline:
			t.Fatalf("completion never reached the sink")
		case <-time.After(5 * time.Millisecond):
		}
	}
	got := sink.completions[0]
	if got.Tick != 12 || got.Customer != 4 || got.Points != 88 {
		t.Fatalf("completion = %+v", got)
	}
	if sink.count() != 1 {
		t.Fatalf("tick events must not be recorded as completions")
	}
}

func TestEventCollectorNilArgs(t *testing.T) {
	// Must be a no-op rather than a panic.
	StartEventCollector(context.Background(), nil, nil)
}
