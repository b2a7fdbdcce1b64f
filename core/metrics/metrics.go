package metrics

import "time"

// TickStats is a per-tick snapshot of the fleet recorded for observability.
type TickStats struct {
	Tick      int
	Idle      int
	Traveling int
	Loading   int
	Unloading int
	Completed int
	Score     int
}

// CompletionStat records one customer order completion.
type CompletionStat struct {
	Tick     int
	Customer int
	Points   int
}

// RunResult summarises a finished simulation run.
type RunResult struct {
	RunID     string
	Strategy  string
	Score     int
	Completed int
	Customers int
	Ticks     int
	Commands  int
	Duration  time.Duration
}

// MetricsSink records simulation measurements for observability purposes.
type MetricsSink interface {
	RecordTick(TickStats) error
	RecordRun(RunResult) error
}

// CompletionRecorder is implemented by sinks able to record individual
// order completions.
type CompletionRecorder interface {
	RecordCompletion(CompletionStat) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordTick(TickStats) error            { return nil }
func (NopSink) RecordRun(RunResult) error             { return nil }
func (NopSink) RecordCompletion(CompletionStat) error { return nil }
