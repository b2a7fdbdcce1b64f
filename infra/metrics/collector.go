package metrics

import (
	"context"

	"github.com/skyhaul/dronesim/core/events"
	coremetrics "github.com/skyhaul/dronesim/core/metrics"
	"github.com/skyhaul/dronesim/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records completion
// events on the sink. Tick and run records are pushed by the simulation
// directly; completions travel over the bus. It stops when the context is
// canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if e, isCompletion := ev.(events.CompletionEvent); isCompletion {
					if r, supported := sink.(coremetrics.CompletionRecorder); supported {
						_ = r.RecordCompletion(coremetrics.CompletionStat{
							Tick:     e.Tick,
							Customer: e.Customer,
							Points:   e.Points,
						})
					}
				}
			}
		}
	}()
}
