package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/vicsek"
)

//go:embed config.schema.json
var configSchema string

type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth" toml:"worldWidth"`
	WorldHeight float64 `json:"worldHeight" toml:"worldHeight"`

	// Population
	NumParticles int `json:"numParticles" toml:"numParticles"`

	// Interaction Radii
	Radius        float64 `json:"radius" toml:"radius"`               // alignment radius
	BodySize      float64 `json:"bodySize" toml:"bodySize"`           // hard repulsion below this distance
	PersonalSpace float64 `json:"personalSpace" toml:"personalSpace"` // soft repulsion below this distance

	// Motion
	NoiseLevel  float64 `json:"noiseLevel" toml:"noiseLevel"`
	Speed       float64 `json:"speed" toml:"speed"`
	TrailLength int     `json:"trailLength" toml:"trailLength"`
	Jitter      float64 `json:"jitter" toml:"jitter"`

	// Seed of the random source, 0 picks one from the clock.
	Seed uint64 `json:"seed" toml:"seed"`

	// Interactive mode
	TicksPerFrame int `json:"ticksPerFrame" toml:"ticksPerFrame"`

	// Batch mode
	Steps       int    `json:"steps" toml:"steps"`
	RecordEvery int    `json:"recordEvery" toml:"recordEvery"`
	RecordPath  string `json:"recordPath" toml:"recordPath"`
}

// DefaultConfig describes a 350x350 world with the stock parameters.
func DefaultConfig() *Config {
	p := vicsek.DefaultParams()
	return &Config{
		WorldWidth:    350,
		WorldHeight:   350,
		NumParticles:  p.NumParticles,
		Radius:        p.Radius,
		BodySize:      p.BodySize,
		PersonalSpace: p.PersonalSpace,
		NoiseLevel:    p.NoiseLevel,
		Speed:         p.Speed,
		TrailLength:   p.TrailLength,
		Jitter:        p.Jitter,
		TicksPerFrame: 1,
		Steps:         1000,
		RecordEvery:   10,
	}
}

// Params returns the parameter bundle described by the config.
func (c *Config) Params() vicsek.Params {
	return vicsek.Params{
		Radius:        c.Radius,
		BodySize:      c.BodySize,
		PersonalSpace: c.PersonalSpace,
		NoiseLevel:    c.NoiseLevel,
		Speed:         c.Speed,
		NumParticles:  c.NumParticles,
		TrailLength:   c.TrailLength,
		Jitter:        c.Jitter,
	}
}

// Bounds returns the world rectangle.
func (c *Config) Bounds() vicsek.Bounds {
	return vicsek.Bounds{Width: c.WorldWidth, Height: c.WorldHeight}
}

// SeedValue returns the configured seed, or one derived from the clock when unset.
func (c *Config) SeedValue() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

// Validate applies the simulation rules plus the driver specific ones.
func (c *Config) Validate() error {
	errs := []error{c.Params().Validate(), c.Bounds().Validate()}
	if c.TicksPerFrame < 1 {
		errs = append(errs, fmt.Errorf("ticksPerFrame must be at least 1, got %d", c.TicksPerFrame))
	}
	if c.Steps < 0 {
		errs = append(errs, fmt.Errorf("steps must not be negative, got %d", c.Steps))
	}
	if c.RecordEvery < 1 {
		errs = append(errs, fmt.Errorf("recordEvery must be at least 1, got %d", c.RecordEvery))
	}
	return errors.Join(errs...)
}

// LoadConfig loads configuration from a JSON or TOML file, chosen by extension.
// Keys missing from the file keep their DefaultConfig value.
func LoadConfig(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg *Config
	switch ext := strings.ToLower(filepath.Ext(configFile)); ext {
	case ".json":
		cfg, err = decodeJSON(b)
	case ".toml":
		cfg, err = decodeTOML(b)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// decodeJSON validates the document against the embedded schema before
// unmarshalling it over the defaults.
func decodeJSON(b []byte) (*Config, error) {
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

func decodeTOML(b []byte) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys: %v", undecoded)
	}
	return cfg, nil
}
