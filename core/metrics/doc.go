// Package metrics defines interfaces and implementations for collecting
// simulation metrics. Sinks like PromSink and InfluxSink record per-tick
// fleet snapshots and run summaries and can be combined with MultiSink.
// Implementations register themselves via RegisterMetricsSink.
package metrics
