package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/skyhaul/dronesim/core/metrics"
)

func TestPromSink_RecordTick(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink, ok := sinkIf.(*PromSink)
	if !ok {
		t.Fatalf("expected PromSink")
	}

	if err := sink.RecordTick(coremetrics.TickStats{
		Tick:      5,
		Idle:      2,
		Traveling: 1,
		Loading:   1,
		Unloading: 0,
		Completed: 3,
		Score:     240,
	}); err != nil {
		t.Fatalf("record tick: %v", err)
	}

	expected := `
# HELP dronesim_drones Number of drones per task state at the last tick
# TYPE dronesim_drones gauge
dronesim_drones{state="idle"} 2
dronesim_drones{state="traveling"} 1
dronesim_drones{state="loading"} 1
dronesim_drones{state="unloading"} 0
`
	if err := testutil.CollectAndCompare(sink.drones, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected drone metrics: %v", err)
	}
	if got := testutil.ToFloat64(sink.score); got != 240 {
		t.Errorf("score gauge = %f, want 240", got)
	}
}

func TestPromSink_RecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink := sinkIf.(*PromSink)

	if err := sink.RecordRun(coremetrics.RunResult{
		Strategy:  "batch",
		Score:     900,
		Completed: 9,
		Customers: 9,
		Ticks:     120,
	}); err != nil {
		t.Fatalf("record run: %v", err)
	}

	if got := testutil.ToFloat64(sink.runs.WithLabelValues("batch")); got != 1 {
		t.Errorf("runs counter = %f, want 1", got)
	}
	if got := testutil.ToFloat64(sink.completions.WithLabelValues("batch")); got != 9 {
		t.Errorf("completions counter = %f, want 9", got)
	}
	if got := testutil.ToFloat64(sink.score); got != 900 {
		t.Errorf("score gauge = %f, want 900", got)
	}
}

// Registering twice on the same registry must reuse the existing collectors.
func TestPromSink_ReRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second registration: %v", err)
	}
}
