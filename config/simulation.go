package config

import "fmt"

// SimulationConfig locates the problem instance and the command output.
type SimulationConfig struct {
	// Input is the path of the problem instance file.
	Input string `json:"input"`
	// Output is the path the command log is written to.
	Output string `json:"output"`
}

// SetDefaults applies sane defaults.
func (c *SimulationConfig) SetDefaults() {
	if c.Output == "" {
		c.Output = "commands.out"
	}
}

// Validate checks mandatory fields.
func (c SimulationConfig) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("simulation input is required")
	}
	return nil
}
