package metrics

import coremetrics "github.com/skyhaul/dronesim/core/metrics"

// MultiSink fans simulation measurements out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordTick forwards the snapshot to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordTick(st coremetrics.TickStats) error {
	for _, s := range m.Sinks {
		if err := s.RecordTick(st); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun forwards the run summary to all sinks.
func (m *MultiSink) RecordRun(r coremetrics.RunResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(r); err != nil {
			return err
		}
	}
	return nil
}

// RecordCompletion forwards completions to the sinks that support them.
func (m *MultiSink) RecordCompletion(c coremetrics.CompletionStat) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.CompletionRecorder); ok {
			if err := rec.RecordCompletion(c); err != nil {
				return err
			}
		}
	}
	return nil
}
