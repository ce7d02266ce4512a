package boids

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Config carries every tunable of the kernel. Update never mutates it, so one
// instance can drive any number of frames or flocks.
type Config struct {
	// World dimensions
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Interaction radii
	SeparationRadius float64 `json:"separationRadius"` // personal space
	AlignmentRadius  float64 `json:"alignmentRadius"`  // heading match range
	CohesionRadius   float64 `json:"cohesionRadius"`   // grouping range

	// Rule weights
	SeparationStrength float64 `json:"separationStrength"`
	AlignmentStrength  float64 `json:"alignmentStrength"`
	CohesionStrength   float64 `json:"cohesionStrength"`

	// Physics
	MaxSpeed float64 `json:"maxSpeed"`
	MinSpeed float64 `json:"minSpeed"`
	MaxForce float64 `json:"maxForce"` // steering force cap per frame

	// World edges
	BoundaryMargin   float64 `json:"boundaryMargin"`   // width of the edge band
	BoundaryStrength float64 `json:"boundaryStrength"` // edge repulsion weight

	// Integration
	Dt     float64 `json:"dt"`     // time step, 1.0 means per-frame units
	Jitter float64 `json:"jitter"` // random heading noise amplitude
}

// DefaultConfig returns the tuning used by the demo executables.
func DefaultConfig() *Config {
	return &Config{
		WorldWidth:         1000,
		WorldHeight:        800,
		SeparationRadius:   20.0,
		AlignmentRadius:    70.0,
		CohesionRadius:     70.0,
		SeparationStrength: 1.2,
		AlignmentStrength:  0.8,
		CohesionStrength:   0.6,
		MaxSpeed:           4.0,
		MinSpeed:           2.0,
		MaxForce:           0.4,
		BoundaryMargin:     100.0,
		BoundaryStrength:   0.2,
		Dt:                 1.0,
		Jitter:             0.05,
	}
}

// LoadConfig loads configuration from a JSON file and validates it against the schema.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	f, err := os.Open(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	// 3. Validate
	var v interface{}
	if err := json.NewDecoder(f).Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}

	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal into the struct from the raw bytes
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
