package vicsek

import (
	"errors"
	"math"
)

// Documented parameter ranges.
const (
	MinRadius       = 5.0
	MaxRadius       = 50.0
	MinNumParticles = 10
	MaxNumParticles = 500
	MaxTrailLength  = 50

	DefaultRadius        = 20.0
	DefaultBodySize      = 5.0
	DefaultPersonalSpace = 10.0
	DefaultNoiseLevel    = 0.2
	DefaultSpeed         = 1.0
	DefaultNumParticles  = 300
	DefaultTrailLength   = 20
	DefaultJitter        = 0.01
)

// AlignmentBlend is the fraction of the way an agent turns toward the local
// average heading on every tick.
const AlignmentBlend = 0.1

// Params is the parameter bundle read by every tick.
// The simulation keeps its own copy; callers change it only through Configure.
type Params struct {
	Radius        float64 `json:"radius"`        // alignment radius
	BodySize      float64 `json:"bodySize"`      // hard repulsion (collision) diameter
	PersonalSpace float64 `json:"personalSpace"` // soft repulsion onset distance
	NoiseLevel    float64 `json:"noiseLevel"`    // magnitude of the random heading kick, in [0, 1]
	Speed         float64 `json:"speed"`         // speed given to agents at Reset
	NumParticles  int     `json:"numParticles"`  // agent count used by Reset
	TrailLength   int     `json:"trailLength"`   // history cap per agent

	// Jitter is the displacement applied to an agent that exactly coincides
	// with another one. Zero leaves coincident agents inert.
	Jitter float64 `json:"jitter"`
}

// DefaultParams returns the stock parameter bundle.
func DefaultParams() Params {
	return Params{
		Radius:        DefaultRadius,
		BodySize:      DefaultBodySize,
		PersonalSpace: DefaultPersonalSpace,
		NoiseLevel:    DefaultNoiseLevel,
		Speed:         DefaultSpeed,
		NumParticles:  DefaultNumParticles,
		TrailLength:   DefaultTrailLength,
		Jitter:        DefaultJitter,
	}
}

// Validate checks every field and returns all violations joined together.
// Each violation is a *ConfigurationError.
func (p Params) Validate() error {
	var errs []error
	if !(p.Radius > 0) || math.IsInf(p.Radius, 0) {
		errs = append(errs, configErr("radius", p.Radius, "must be a positive finite number"))
	}
	if !(p.BodySize > 0) || math.IsInf(p.BodySize, 0) {
		errs = append(errs, configErr("bodySize", p.BodySize, "must be a positive finite number"))
	}
	if !(p.PersonalSpace > p.BodySize) || math.IsInf(p.PersonalSpace, 0) {
		errs = append(errs, configErr("personalSpace", p.PersonalSpace, "must be finite and greater than bodySize %v", p.BodySize))
	}
	if !(p.NoiseLevel >= 0 && p.NoiseLevel <= 1) {
		errs = append(errs, configErr("noiseLevel", p.NoiseLevel, "must be in [0, 1]"))
	}
	if !(p.Speed > 0) || math.IsInf(p.Speed, 0) {
		errs = append(errs, configErr("speed", p.Speed, "must be a positive finite number"))
	}
	if p.NumParticles < MinNumParticles || p.NumParticles > MaxNumParticles {
		errs = append(errs, configErr("numParticles", p.NumParticles, "must be in [%d, %d]", MinNumParticles, MaxNumParticles))
	}
	if p.TrailLength < 0 || p.TrailLength > MaxTrailLength {
		errs = append(errs, configErr("trailLength", p.TrailLength, "must be in [0, %d]", MaxTrailLength))
	}
	if !(p.Jitter >= 0) || math.IsInf(p.Jitter, 0) {
		errs = append(errs, configErr("jitter", p.Jitter, "must be a non-negative finite number"))
	}
	return errors.Join(errs...)
}

// Clamp returns a copy of p pulled into the documented ranges.
// Fields that cannot be clamped meaningfully (NaN, non-positive sizes) fall back
// to their defaults. The result always passes Validate.
func (p Params) Clamp() Params {
	c := p
	c.Radius = clampFloat(c.Radius, MinRadius, MaxRadius, DefaultRadius)
	if !(c.BodySize > 0) || math.IsInf(c.BodySize, 0) {
		c.BodySize = DefaultBodySize
	}
	if !(c.PersonalSpace > c.BodySize) || math.IsInf(c.PersonalSpace, 0) {
		c.PersonalSpace = 2 * c.BodySize
	}
	c.NoiseLevel = clampFloat(c.NoiseLevel, 0, 1, DefaultNoiseLevel)
	if !(c.Speed > 0) || math.IsInf(c.Speed, 0) {
		c.Speed = DefaultSpeed
	}
	c.NumParticles = min(max(c.NumParticles, MinNumParticles), MaxNumParticles)
	c.TrailLength = min(max(c.TrailLength, 0), MaxTrailLength)
	if !(c.Jitter >= 0) || math.IsInf(c.Jitter, 0) {
		c.Jitter = 0
	}
	return c
}

func clampFloat(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return math.Min(math.Max(v, lo), hi)
}

// Bounds is the periodic world rectangle [0, Width] x [0, Height].
type Bounds struct {
	Width  float64
	Height float64
}

// Validate checks that both sides are positive and finite.
func (b Bounds) Validate() error {
	var errs []error
	if !(b.Width > 0) || math.IsInf(b.Width, 0) {
		errs = append(errs, configErr("width", b.Width, "must be a positive finite number"))
	}
	if !(b.Height > 0) || math.IsInf(b.Height, 0) {
		errs = append(errs, configErr("height", b.Height, "must be a positive finite number"))
	}
	return errors.Join(errs...)
}
