// Package mapper turns a team's reputation into a bounded integer metric such
// as squad size or stadium capacity.
package mapper

import (
	"fmt"
	"math"

	"github.com/okian/leaguegen/internal/domain/distribution"
)

// Reputation bounds.
const (
	MinReputation = 0
	MaxReputation = 100
)

// Uniform yields uniform draws in [0,1).
type Uniform interface {
	Float64() float64
}

// GenerationConfig bounds one reputation-scaled metric. It is immutable and
// can only be obtained through NewGenerationConfig, so a held value always
// satisfies min <= average <= max.
type GenerationConfig struct {
	name      string
	min       int
	max       int
	average   float64
	influence float64
	variation float64
}

// Params is the plain-data form of a GenerationConfig, as read from
// configuration files.
type Params struct {
	MinValue            int     `koanf:"min_value" json:"min_value" yaml:"min_value"`
	MaxValue            int     `koanf:"max_value" json:"max_value" yaml:"max_value"`
	AverageValue        float64 `koanf:"average_value" json:"average_value" yaml:"average_value"`
	ReputationInfluence float64 `koanf:"reputation_influence" json:"reputation_influence" yaml:"reputation_influence"`
	RandomVariation     float64 `koanf:"random_variation" json:"random_variation" yaml:"random_variation"`
}

// NewGenerationConfig validates p and freezes it under name.
func NewGenerationConfig(name string, p Params) (GenerationConfig, error) {
	switch {
	case p.MinValue > p.MaxValue:
		return GenerationConfig{}, &ConfigError{Metric: name, Reason: fmt.Sprintf("min %d exceeds max %d", p.MinValue, p.MaxValue)}
	case math.IsNaN(p.AverageValue) || p.AverageValue < float64(p.MinValue) || p.AverageValue > float64(p.MaxValue):
		return GenerationConfig{}, &ConfigError{Metric: name, Reason: fmt.Sprintf("average %g outside [%d,%d]", p.AverageValue, p.MinValue, p.MaxValue)}
	case !unit(p.ReputationInfluence):
		return GenerationConfig{}, &ConfigError{Metric: name, Reason: fmt.Sprintf("reputation influence %g outside [0,1]", p.ReputationInfluence)}
	case !unit(p.RandomVariation):
		return GenerationConfig{}, &ConfigError{Metric: name, Reason: fmt.Sprintf("random variation %g outside [0,1]", p.RandomVariation)}
	}
	return GenerationConfig{
		name:      name,
		min:       p.MinValue,
		max:       p.MaxValue,
		average:   p.AverageValue,
		influence: p.ReputationInfluence,
		variation: p.RandomVariation,
	}, nil
}

// MustGenerationConfig is NewGenerationConfig for literals known to be valid.
func MustGenerationConfig(name string, p Params) GenerationConfig {
	c, err := NewGenerationConfig(name, p)
	if err != nil {
		panic(err)
	}
	return c
}

func unit(v float64) bool { return v >= 0 && v <= 1 }

func (c GenerationConfig) Name() string       { return c.name }
func (c GenerationConfig) Min() int           { return c.min }
func (c GenerationConfig) Max() int           { return c.max }
func (c GenerationConfig) Average() float64   { return c.average }
func (c GenerationConfig) Influence() float64 { return c.influence }
func (c GenerationConfig) Variation() float64 { return c.variation }

// Params returns the plain-data form of c.
func (c GenerationConfig) Params() Params {
	return Params{
		MinValue:            c.min,
		MaxValue:            c.max,
		AverageValue:        c.average,
		ReputationInfluence: c.influence,
		RandomVariation:     c.variation,
	}
}

// Expected returns the noise-free value for reputation: the average pulled
// toward max by reputation*influence. Reputation is clamped to [0,100].
func Expected(reputation int, c GenerationConfig) float64 {
	rep := min(max(reputation, MinReputation), MaxReputation)
	factor := float64(rep) / MaxReputation * c.influence
	return c.average + factor*(float64(c.max)-c.average)
}

// Map derives one metric for reputation. Noise spans ±variation*average, so it
// scales with the average and not with the width of [min,max]. Exactly one
// draw is consumed per call, including when variation is zero.
func Map(reputation int, c GenerationConfig, src Uniform) int {
	base := Expected(reputation, c)
	span := c.variation * c.average
	noise := (src.Float64() - 0.5) * 2 * span
	return distribution.ClampRound(base+noise, c.min, c.max)
}
