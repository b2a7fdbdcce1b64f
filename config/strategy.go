package config

import (
	"fmt"

	"github.com/skyhaul/dronesim/core/factory"
)

// StrategyConfig names the assignment heuristic and carries its raw
// options. The heuristic decodes the map into its own configuration.
type StrategyConfig struct {
	Name string         `json:"name"`
	Conf map[string]any `json:"conf"`
}

// SetDefaults applies sane defaults.
func (c *StrategyConfig) SetDefaults() {
	if c.Name == "" {
		c.Name = "roundrobin"
	}
}

// Validate checks mandatory fields.
func (c StrategyConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("strategy name is required")
	}
	return nil
}

// Module returns the factory form of the strategy selection.
func (c StrategyConfig) Module() factory.ModuleConfig {
	return factory.ModuleConfig{Type: c.Name, Conf: c.Conf}
}
