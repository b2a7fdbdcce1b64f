package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/skyhaul/dronesim/core/events"
	"github.com/skyhaul/dronesim/core/logger"
	"github.com/skyhaul/dronesim/core/metrics"
	"github.com/skyhaul/dronesim/core/mission"
	"github.com/skyhaul/dronesim/core/model"
	"github.com/skyhaul/dronesim/internal/eventbus"
)

// Simulation owns the global tick loop: the drone roster, the node
// catalog, the mission controller and the pluggable per-tick strategy.
// Every tick runs three phases in fixed order: assign (strategy), advance
// (sample every drone on a mission once), account (score completions).
type Simulation struct {
	inst     *Instance
	drones   []*model.Drone
	ctrl     *mission.Controller
	strategy Strategy

	log  logger.Logger
	bus  eventbus.EventBus
	sink metrics.MetricsSink

	score           int
	completed       map[*model.Node]bool
	completionTicks []float64
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger attaches a logger.
func WithLogger(l logger.Logger) Option { return func(s *Simulation) { s.log = l } }

// WithBus attaches an event bus for tick/mission/completion events.
func WithBus(b eventbus.EventBus) Option { return func(s *Simulation) { s.bus = b } }

// WithMetrics attaches a metrics sink.
func WithMetrics(m metrics.MetricsSink) Option { return func(s *Simulation) { s.sink = m } }

// New builds a simulation for the instance. All drones start idle and
// empty at warehouse 0, matching the problem definition.
func New(inst *Instance, strategy Strategy, opts ...Option) (*Simulation, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if strategy == nil {
		return nil, fmt.Errorf("simulation: nil strategy")
	}
	s := &Simulation{
		inst:      inst,
		strategy:  strategy,
		log:       nopLogger{},
		sink:      metrics.NopSink{},
		completed: make(map[*model.Node]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	home := inst.Warehouses[0].Location()
	for i := 0; i < inst.DroneCount; i++ {
		s.drones = append(s.drones, model.NewDrone(home, inst.MaxPayload, i))
	}
	s.ctrl = mission.NewController(s.log, s.bus)
	return s, nil
}

// Drones returns the fleet in index order.
func (s *Simulation) Drones() []*model.Drone { return s.drones }

// Warehouses returns the supply nodes in index order.
func (s *Simulation) Warehouses() []*model.Node { return s.inst.Warehouses }

// Customers returns the demand nodes in index order.
func (s *Simulation) Customers() []*model.Node { return s.inst.Customers }

// Missions returns the mission controller.
func (s *Simulation) Missions() *mission.Controller { return s.ctrl }

// Turns returns the simulation horizon in ticks.
func (s *Simulation) Turns() int { return s.inst.Turns }

// Grid returns the grid dimensions (rows, columns).
func (s *Simulation) Grid() (int, int) { return s.inst.Rows, s.inst.Cols }

// MaxPayload returns the per-drone weight limit.
func (s *Simulation) MaxPayload() int { return s.inst.MaxPayload }

// Score returns the points accumulated so far.
func (s *Simulation) Score() int { return s.score }

// Points returns the score awarded for a customer completed at tick t.
func Points(turns, t int) int {
	return int(math.Ceil(float64(turns-t) / float64(turns) * 100))
}

// Run executes the tick loop until the horizon is reached, every customer
// is served, or the context is cancelled. Any strategy or controller error
// aborts the run: failures indicate invariant violations, not transient
// conditions.
func (s *Simulation) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	if err := s.strategy.Prepare(s); err != nil {
		return nil, fmt.Errorf("strategy %s prepare: %w", s.strategy.Name(), err)
	}

	ticks := 0
	for t := 0; t < s.inst.Turns; t++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		ticks = t + 1

		// Assign.
		if err := s.strategy.Plan(s, t); err != nil {
			return nil, fmt.Errorf("strategy %s at tick %d: %w", s.strategy.Name(), t, err)
		}

		// Advance.
		for _, d := range s.drones {
			if !s.ctrl.InMission(d) {
				continue
			}
			if err := s.ctrl.Sample(d, t); err != nil {
				return nil, fmt.Errorf("sample drone %d at tick %d: %w", d.Index(), t, err)
			}
		}

		// Account.
		s.account(t)
		st := s.tickStats(t)
		if s.bus != nil {
			s.bus.Publish(events.TickEvent{
				Tick: t, Idle: st.Idle, Traveling: st.Traveling,
				Loading: st.Loading, Unloading: st.Unloading,
				Completed: st.Completed, Score: st.Score,
			})
		}
		if err := s.sink.RecordTick(st); err != nil {
			s.log.Errorf("tick metrics: %v", err)
		}
		s.log.Debugf("tick %d/%d: completed %d/%d, points %d",
			t, s.inst.Turns, len(s.completed), len(s.inst.Customers), s.score)

		if s.allDone() {
			break
		}
	}

	rep := s.report(ticks, time.Since(start))
	if err := s.sink.RecordRun(metrics.RunResult{
		Strategy:  s.strategy.Name(),
		Score:     rep.Score,
		Completed: rep.Completed,
		Customers: len(s.inst.Customers),
		Ticks:     rep.Ticks,
		Commands:  rep.Commands,
		Duration:  rep.Duration,
	}); err != nil {
		s.log.Errorf("run metrics: %v", err)
	}
	return rep, nil
}

// account credits newly completed customers, once each.
func (s *Simulation) account(t int) {
	for _, cust := range s.inst.Customers {
		if !cust.Done() || s.completed[cust] {
			continue
		}
		pts := Points(s.inst.Turns, t)
		s.score += pts
		s.completed[cust] = true
		s.completionTicks = append(s.completionTicks, float64(t))
		s.log.Infof("customer %d completed at tick %d for %d points", cust.Index(), t, pts)
		if s.bus != nil {
			s.bus.Publish(events.CompletionEvent{Tick: t, Customer: cust.Index(), Points: pts})
		}
	}
}

func (s *Simulation) allDone() bool {
	return len(s.completed) == len(s.inst.Customers)
}

func (s *Simulation) tickStats(t int) metrics.TickStats {
	st := metrics.TickStats{Tick: t, Completed: len(s.completed), Score: s.score}
	for _, d := range s.drones {
		switch d.CurrentState() {
		case model.TaskTraveling:
			st.Traveling++
		case model.TaskLoading:
			st.Loading++
		case model.TaskUnloading:
			st.Unloading++
		default:
			st.Idle++
		}
	}
	return st
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
