package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/skyhaul/dronesim/core/metrics"
)

// PromSink exposes simulation progress as Prometheus metrics.
type PromSink struct {
	drones      *prometheus.GaugeVec
	completed   prometheus.Gauge
	score       prometheus.Gauge
	completions *prometheus.CounterVec
	runs        *prometheus.CounterVec
}

// NewPromSink registers simulation metrics on the default Prometheus
// registerer. The exposition server is started separately.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	drones := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dronesim_drones",
		Help: "Number of drones per task state at the last tick",
	}, []string{"state"})
	completed := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dronesim_completed_orders",
		Help: "Number of customer orders completed so far",
	})
	score := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dronesim_score",
		Help: "Points accumulated so far",
	})
	completions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dronesim_completions_total",
		Help: "Total customer order completions",
	}, []string{"strategy"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dronesim_runs_total",
		Help: "Total finished simulation runs",
	}, []string{"strategy"})

	if err := reg.Register(drones); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			drones = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(completed); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			completed = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(score); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			score = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(completions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			completions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		drones:      drones,
		completed:   completed,
		score:       score,
		completions: completions,
		runs:        runs,
	}, nil
}

// RecordTick updates the fleet gauges with the tick snapshot.
func (s *PromSink) RecordTick(st coremetrics.TickStats) error {
	s.drones.WithLabelValues("idle").Set(float64(st.Idle))
	s.drones.WithLabelValues("traveling").Set(float64(st.Traveling))
	s.drones.WithLabelValues("loading").Set(float64(st.Loading))
	s.drones.WithLabelValues("unloading").Set(float64(st.Unloading))
	s.completed.Set(float64(st.Completed))
	s.score.Set(float64(st.Score))
	return nil
}

// RecordRun counts the finished run and freezes the final score.
func (s *PromSink) RecordRun(r coremetrics.RunResult) error {
	s.runs.WithLabelValues(r.Strategy).Inc()
	s.score.Set(float64(r.Score))
	s.completed.Set(float64(r.Completed))
	s.completions.WithLabelValues(r.Strategy).Add(float64(r.Completed))
	return nil
}
