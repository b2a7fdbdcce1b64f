package config

import (
	"fmt"

	"github.com/skyhaul/dronesim/core/factory"
)

// MetricsConfig lists the metrics sinks to attach to a run. Each sink is
// defined by its type name and an arbitrary configuration map.
type MetricsConfig struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusAddr, when set, starts the exposition server on that
	// address for the duration of the run.
	PrometheusAddr string `json:"prometheus_addr"`
}

// SetDefaults applies sane defaults.
func (c *MetricsConfig) SetDefaults() {}

// Validate checks that every sink names a type.
func (c MetricsConfig) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics sink %d: type is required", i)
		}
	}
	return nil
}
