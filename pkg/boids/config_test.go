package boids

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "worldWidth":  {"type": "number", "exclusiveMinimum": 0},
    "worldHeight": {"type": "number", "exclusiveMinimum": 0},
    "separationRadius": {"type": "number", "minimum": 0},
    "alignmentRadius":  {"type": "number", "minimum": 0},
    "cohesionRadius":   {"type": "number", "minimum": 0},
    "separationStrength": {"type": "number"},
    "alignmentStrength":  {"type": "number"},
    "cohesionStrength":   {"type": "number"},
    "maxSpeed": {"type": "number", "exclusiveMinimum": 0},
    "minSpeed": {"type": "number", "minimum": 0},
    "maxForce": {"type": "number", "minimum": 0},
    "boundaryMargin":   {"type": "number", "minimum": 0},
    "boundaryStrength": {"type": "number", "minimum": 0},
    "dt":     {"type": "number", "exclusiveMinimum": 0},
    "jitter": {"type": "number", "minimum": 0}
  },
  "required": ["worldWidth", "worldHeight", "maxSpeed", "minSpeed"],
  "additionalProperties": false
}`

const testConfig = `{
  "worldWidth": 1200,
  "worldHeight": 900,
  "separationRadius": 25,
  "alignmentRadius": 60,
  "cohesionRadius": 60,
  "separationStrength": 1.5,
  "alignmentStrength": 1.0,
  "cohesionStrength": 0.5,
  "maxSpeed": 5,
  "minSpeed": 1,
  "maxForce": 0.3,
  "boundaryMargin": 80,
  "boundaryStrength": 0.25,
  "dt": 1.0,
  "jitter": 0.1
}`

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	assert.Greater(t, cfg.WorldWidth, 0.0)
	assert.Greater(t, cfg.WorldHeight, 0.0)
	assert.GreaterOrEqual(t, cfg.MaxSpeed, cfg.MinSpeed, "speed band must not be inverted")
	assert.Greater(t, cfg.MaxForce, 0.0)
	// The edge bands must leave an interior, otherwise the pull toward the
	// center never releases.
	assert.Less(t, 2*cfg.BoundaryMargin, cfg.WorldWidth)
	assert.Less(t, 2*cfg.BoundaryMargin, cfg.WorldHeight)
	assert.Greater(t, cfg.Dt, 0.0)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeTestFile(t, dir, "boids.schema.json", testSchema)

	t.Run("Valid config loads all fields", func(t *testing.T) {
		configPath := writeTestFile(t, dir, "valid.json", testConfig)

		cfg, err := LoadConfig(configPath, schemaPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, 1200.0, cfg.WorldWidth)
		assert.Equal(t, 900.0, cfg.WorldHeight)
		assert.Equal(t, 5.0, cfg.MaxSpeed)
		assert.Equal(t, 1.0, cfg.MinSpeed)
		assert.Equal(t, 80.0, cfg.BoundaryMargin)
		assert.Equal(t, 0.1, cfg.Jitter)
	})

	t.Run("Schema violation is rejected", func(t *testing.T) {
		bad := `{"worldWidth": -100, "worldHeight": 900, "maxSpeed": 5, "minSpeed": 1}`
		configPath := writeTestFile(t, dir, "negative.json", bad)

		cfg, err := LoadConfig(configPath, schemaPath)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "validation")
	})

	t.Run("Unknown field is rejected", func(t *testing.T) {
		bad := `{"worldWidth": 1000, "worldHeight": 800, "maxSpeed": 4, "minSpeed": 2, "turboMode": true}`
		configPath := writeTestFile(t, dir, "unknown.json", bad)

		_, err := LoadConfig(configPath, schemaPath)
		require.Error(t, err)
	})

	t.Run("Malformed JSON is rejected", func(t *testing.T) {
		configPath := writeTestFile(t, dir, "broken.json", `{"worldWidth": `)

		_, err := LoadConfig(configPath, schemaPath)
		require.Error(t, err)
	})

	t.Run("Missing config file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "no-such-file.json"), schemaPath)
		require.Error(t, err)
	})

	t.Run("Missing schema file", func(t *testing.T) {
		configPath := writeTestFile(t, dir, "ok.json", testConfig)

		_, err := LoadConfig(configPath, filepath.Join(dir, "no-such-schema.json"))
		require.Error(t, err)
	})
}
