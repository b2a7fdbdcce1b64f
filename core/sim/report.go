package sim

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Report summarises a finished run.
type Report struct {
	Strategy  string
	Score     int
	Completed int
	Customers int
	Ticks     int
	Commands  int
	Duration  time.Duration

	// MeanCompletionTick and StdCompletionTick describe the spread of
	// customer completion times; zero when nothing completed.
	MeanCompletionTick float64
	StdCompletionTick  float64
}

func (s *Simulation) report(ticks int, dur time.Duration) *Report {
	rep := &Report{
		Strategy:  s.strategy.Name(),
		Score:     s.score,
		Completed: len(s.completed),
		Customers: len(s.inst.Customers),
		Ticks:     ticks,
		Commands:  len(s.ctrl.Commands()),
		Duration:  dur,
	}
	if len(s.completionTicks) > 0 {
		rep.MeanCompletionTick = stat.Mean(s.completionTicks, nil)
	}
	if len(s.completionTicks) > 1 {
		rep.StdCompletionTick = stat.StdDev(s.completionTicks, nil)
	}
	return rep
}
