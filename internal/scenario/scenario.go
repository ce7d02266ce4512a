// Package scenario describes one headless simulation run: flock size, run
// length, seeding and where to find the kernel tuning files.
package scenario

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Scenario holds the parameters of a run. Field names double as the TOML
// keys, matched case-insensitively.
type Scenario struct {
	Name     string // appears in the run logs
	Boids    int    // number of agents
	Steps    int    // frames to simulate
	Seed     uint64 // pseudo random stream seed, 0 draws one from the clock
	LogEvery int    // frames between stat lines

	// Kernel tuning. Both empty means built-in defaults; otherwise the JSON
	// file is validated against the schema before the run starts.
	ConfigFile string
	SchemaFile string

	SpawnMargin float64 // distance kept from the walls when placing agents
}

// Default is the scenario used when no file is given.
func Default() *Scenario {
	return &Scenario{
		Name:        "default",
		Boids:       200,
		Steps:       1000,
		Seed:        1,
		LogEvery:    100,
		SpawnMargin: 150,
	}
}

// Load parses a TOML scenario file. Keys absent from the file keep their
// default values.
func Load(path string) (*Scenario, error) {
	sc := Default()
	if _, err := toml.DecodeFile(path, sc); err != nil {
		return nil, fmt.Errorf("failed to decode scenario %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return sc, nil
}

// Validate rejects values no runner can work with.
func (s *Scenario) Validate() error {
	if s.Boids <= 0 {
		return fmt.Errorf("boids must be positive, got %d", s.Boids)
	}
	if s.Steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d", s.Steps)
	}
	if s.LogEvery <= 0 {
		return fmt.Errorf("logEvery must be positive, got %d", s.LogEvery)
	}
	if s.SpawnMargin < 0 {
		return fmt.Errorf("spawnMargin must not be negative, got %v", s.SpawnMargin)
	}
	if (s.ConfigFile == "") != (s.SchemaFile == "") {
		return fmt.Errorf("configFile and schemaFile must be set together")
	}
	return nil
}
