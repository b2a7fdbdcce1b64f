package app

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/skyhaul/dronesim/config"
	coremetrics "github.com/skyhaul/dronesim/core/metrics"
	"github.com/skyhaul/dronesim/core/sim"
	"github.com/skyhaul/dronesim/core/strategy"
	"github.com/skyhaul/dronesim/infra/instance"
	"github.com/skyhaul/dronesim/infra/logger"
	"github.com/skyhaul/dronesim/infra/metrics"
	"github.com/skyhaul/dronesim/internal/eventbus"
)

// Service wires one simulation run: the parsed instance, the configured
// strategy, the metrics sinks and the command output.
type Service struct {
	cfg   *config.Config
	runID string
	sim   *sim.Simulation
	bus   *eventbus.Bus
	sink  coremetrics.MetricsSink
	log   logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	runID := uuid.NewString()

	f, err := os.Open(cfg.Simulation.Input)
	if err != nil {
		return nil, fmt.Errorf("open instance: %w", err)
	}
	inst, err := instance.Parse(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("parse instance: %w", err)
	}

	strat, err := strategy.New(cfg.Strategy.Module())
	if err != nil {
		return nil, fmt.Errorf("strategy: %w", err)
	}

	sink, err := buildSink(cfg, runID)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	bus := eventbus.New()
	s, err := sim.New(inst, strat,
		sim.WithLogger(logger.New("sim")),
		sim.WithBus(bus),
		sim.WithMetrics(sink),
	)
	if err != nil {
		return nil, err
	}

	logg.Infof("run %s: instance %s, %d drones, %d warehouses, %d customers, %d turns",
		runID, cfg.Simulation.Input, inst.DroneCount, len(inst.Warehouses), len(inst.Customers), inst.Turns)
	return &Service{cfg: cfg, runID: runID, sim: s, bus: bus, sink: sink, log: logg}, nil
}

// buildSink creates the configured sinks and combines them. Influx sinks
// get the run ID stamped into their configuration so every point of a run
// carries it.
func buildSink(cfg *config.Config, runID string) (coremetrics.MetricsSink, error) {
	cfgs := cfg.Metrics.Sinks
	for i := range cfgs {
		if cfgs[i].Type != "influx" {
			continue
		}
		if cfgs[i].Conf == nil {
			cfgs[i].Conf = map[string]any{}
		}
		if _, ok := cfgs[i].Conf["run_id"]; !ok {
			cfgs[i].Conf["run_id"] = runID
		}
	}
	sinks, err := coremetrics.NewMetricsSink(cfgs)
	if err != nil {
		return nil, err
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return metrics.NewMultiSink(sinks...), nil
	}
}

// Run executes the simulation and writes the command log.
func (s *Service) Run(ctx context.Context) error {
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	metrics.StartEventCollector(ctx, s.bus, s.sink)

	rep, err := s.sim.Run(ctx)
	if err != nil {
		return err
	}

	out, err := os.Create(s.cfg.Simulation.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := instance.WriteCommands(out, s.sim.Missions().Commands()); err != nil {
		_ = out.Close()
		return fmt.Errorf("write commands: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	s.log.Infof("run %s: strategy %s scored %d points, %d/%d orders in %d ticks, %d commands (%s)",
		s.runID, rep.Strategy, rep.Score, rep.Completed, rep.Customers, rep.Ticks, rep.Commands, rep.Duration)
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	return nil
}
