package simulation

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/lao-tseu-is-alive/go-boids/pkg/flocking"
	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var configSchema string

// DefaultSpeed is the initial speed of spawned agents, before the first speed clamp.
const DefaultSpeed = 1000.0

// GroupConfig describes one batch of agents spawned together.
type GroupConfig struct {
	Count     int     `json:"count"`
	CenterX   float64 `json:"centerX"`
	CenterY   float64 `json:"centerY"`
	Radius    float64 `json:"radius"`
	VelocityX float64 `json:"velocityX"`
	VelocityY float64 `json:"velocityY"`
}

// Group converts the configuration into a flocking.Group.
func (g GroupConfig) Group() flocking.Group {
	return flocking.Group{
		Count:    g.Count,
		Center:   geometry.NewVector(g.CenterX, g.CenterY),
		Radius:   g.Radius,
		Velocity: geometry.NewVector(g.VelocityX, g.VelocityY),
	}
}

// DisplayConfig is only read by the windowed and terminal hosts.
type DisplayConfig struct {
	Width        int  `json:"width"`
	Height       int  `json:"height"`
	ShowVision   bool `json:"showVision"`   // vision circle around each agent
	ShowVelocity bool `json:"showVelocity"` // velocity ray of each agent
}

type TelemetryConfig struct {
	CSVPath       string `json:"csvPath"`       // empty disables the CSV output
	LogEveryTicks int    `json:"logEveryTicks"` // 0 disables per-tick statistics logs
}

type Config struct {
	// World
	WorldSize float64 `json:"worldSize"`
	Boundary  string  `json:"boundary"`

	// Tick model
	TickOrder     string `json:"tickOrder"`
	InfluenceMode string `json:"influenceMode"`
	Visibility    string `json:"visibility"`

	// Population
	Seed   uint64        `json:"seed"`
	Groups []GroupConfig `json:"groups"`

	Flocking  flocking.Settings `json:"flocking"`
	Display   DisplayConfig     `json:"display"`
	Telemetry TelemetryConfig   `json:"telemetry"`
}

func DefaultConfig() *Config {
	return &Config{
		WorldSize:     flocking.DefaultWorldSize,
		Boundary:      "wrap",
		TickOrder:     flocking.IntegrateFirst.String(),
		InfluenceMode: flocking.InfluenceSum.String(),
		Visibility:    "always",
		Seed:          1,
		Groups:        []GroupConfig{DefaultGroup()},
		Flocking:      flocking.DefaultSettings(),
		Display: DisplayConfig{
			Width:  1000,
			Height: 1000,
		},
	}
}

// DefaultGroup is the group spawned at startup and by the spawn controls of the hosts.
func DefaultGroup() GroupConfig {
	return GroupConfig{Count: 10, Radius: 100, VelocityY: DefaultSpeed}
}

// LoadConfig loads configuration from a JSON or YAML file and validates it
// against the embedded schema. Fields missing from the file keep their default.
func LoadConfig(configFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		if b, err = yamlToJSON(b); err != nil {
			return nil, fmt.Errorf("failed to decode config yaml: %w", err)
		}
	}

	// 3. Validate
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal over the defaults
	cfg := DefaultConfig()
	cfg.Groups = nil
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Groups == nil {
		cfg.Groups = []GroupConfig{DefaultGroup()}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigOrDefault is LoadConfig, except that an empty path yields DefaultConfig.
func LoadConfigOrDefault(configFile string) (*Config, error) {
	if configFile == "" {
		return DefaultConfig(), nil
	}
	return LoadConfig(configFile)
}

// yamlToJSON re-encodes a YAML document as JSON so that both formats go
// through the same schema validation.
func yamlToJSON(b []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	if v == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(v)
}

var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks the rules the schema cannot express.
func (c *Config) Validate() error {
	if c.WorldSize <= 0 {
		return fmt.Errorf("%w: worldSize must be positive, got %v", ErrInvalidConfig, c.WorldSize)
	}
	if _, err := flocking.ParseBoundary(c.Boundary, c.WorldSize); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := flocking.ParseTickOrder(c.TickOrder); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := flocking.ParseInfluenceMode(c.InfluenceMode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := flocking.ParsePerception(c.Visibility); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Flocking.Validate(); err != nil {
		return fmt.Errorf("%w: flocking: %w", ErrInvalidConfig, err)
	}
	for i, g := range c.Groups {
		if g.Count < 0 || g.Radius < 0 {
			return fmt.Errorf("%w: groups[%d]: count and radius must not be negative", ErrInvalidConfig, i)
		}
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("%w: display size must be positive, got %dx%d", ErrInvalidConfig, c.Display.Width, c.Display.Height)
	}
	if c.Telemetry.LogEveryTicks < 0 {
		return fmt.Errorf("%w: telemetry.logEveryTicks must not be negative", ErrInvalidConfig)
	}
	return nil
}

// NewFlock builds an empty flock with the boundary, tick order, influence
// mode and visibility of the configuration.
func (c *Config) NewFlock() (*flocking.Flock, error) {
	boundary, err := flocking.ParseBoundary(c.Boundary, c.WorldSize)
	if err != nil {
		return nil, err
	}
	order, err := flocking.ParseTickOrder(c.TickOrder)
	if err != nil {
		return nil, err
	}
	mode, err := flocking.ParseInfluenceMode(c.InfluenceMode)
	if err != nil {
		return nil, err
	}
	perception, err := flocking.ParsePerception(c.Visibility)
	if err != nil {
		return nil, err
	}
	return flocking.New(
		flocking.WithBoundary(boundary),
		flocking.WithTickOrder(order),
		flocking.WithInfluenceMode(mode),
		flocking.WithPerception(perception),
	), nil
}

// NewRand returns the random source seeded from the configuration, so two
// runs of the same file spawn the same flock.
func (c *Config) NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
}

// Populate builds the flock and spawns every configured group into it.
func (c *Config) Populate() (*flocking.Flock, *rand.Rand, error) {
	f, err := c.NewFlock()
	if err != nil {
		return nil, nil, err
	}
	rng := c.NewRand()
	for _, g := range c.Groups {
		f.Spawn(g.Group(), rng)
	}
	return f, rng, nil
}
