// Package config defines generator configuration and its loading hooks.
//
// Conventions:
// - New() returns a Config filled with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Validate builds every domain config eagerly so a malformed value fails at
//   load time, never halfway through a batch.
package config

import (
	"fmt"

	"github.com/okian/leaguegen/internal/domain/league"
	"github.com/okian/leaguegen/internal/domain/mapper"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Seed drives a single generate run.
	Seed int64 `koanf:"seed"`

	// WorkerCount sets the number of batch workers; 0 means one per CPU.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory job queue.
	QueueSize int `koanf:"queue_size"`

	// DedupeSize caps remembered job fingerprints; 0 disables eviction.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxResults caps stored batch results; 0 keeps everything.
	MaxResults int `koanf:"max_results"`

	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `koanf:"metrics_file"`

	// Output is the default output format.
	Output string `koanf:"output"`

	League    LeagueConfig         `koanf:"league"`
	Squad     mapper.Params        `koanf:"squad"`
	Stadium   mapper.Params        `koanf:"stadium"`
	Players   league.PlayerProfile `koanf:"players"`
	Policy    league.Policy        `koanf:"policy"`
	Positions league.PositionQuota `koanf:"positions"`
}

// LeagueConfig describes the league to generate.
type LeagueConfig struct {
	Name               string  `koanf:"name"`
	TeamCount          int     `koanf:"team_count"`
	MinReputation      int     `koanf:"min_reputation"`
	MaxReputation      int     `koanf:"max_reputation"`
	CompetitionBalance float64 `koanf:"competition_balance"`
	// Reputations, when set, replace the derived spread.
	Reputations []int `koanf:"reputations"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:   "info",
		LogFormat:  "text",
		Seed:       42,
		QueueSize:  1024,
		DedupeSize: 10_000,
		Output:     "table",
		League: LeagueConfig{
			Name:               "league",
			TeamCount:          20,
			MinReputation:      40,
			MaxReputation:      85,
			CompetitionBalance: 0.5,
		},
		Squad:     league.DefaultSquadParams(),
		Stadium:   league.DefaultStadiumParams(),
		Players:   league.DefaultPlayerProfile(),
		Policy:    league.DefaultPolicy(),
		Positions: league.DefaultQuota(),
	}
}

// Validate checks process settings and builds both generation configs.
func (c *Config) Validate() error {
	switch {
	case c.WorkerCount < 0:
		return fmt.Errorf("%w: worker_count %d is negative", ErrInvalidConfig, c.WorkerCount)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.League.TeamCount < 0:
		return fmt.Errorf("%w: league.team_count %d is negative", ErrInvalidConfig, c.League.TeamCount)
	case c.League.MinReputation < mapper.MinReputation || c.League.MaxReputation > mapper.MaxReputation ||
		c.League.MinReputation > c.League.MaxReputation:
		return fmt.Errorf("%w: %w: league range [%d,%d]",
			ErrInvalidConfig, ErrReputationRange, c.League.MinReputation, c.League.MaxReputation)
	case c.League.CompetitionBalance < 0 || c.League.CompetitionBalance > 1:
		return fmt.Errorf("%w: league.competition_balance %g outside [0,1]", ErrInvalidConfig, c.League.CompetitionBalance)
	}
	for _, r := range c.League.Reputations {
		if r < mapper.MinReputation || r > mapper.MaxReputation {
			return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, ErrReputationRange, r)
		}
	}
	if _, _, err := c.GenerationConfigs(); err != nil {
		return err
	}
	for _, v := range []interface{ Validate() error }{c.Policy, c.Positions, c.Players} {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// GenerationConfigs builds the squad size and stadium capacity configs.
func (c *Config) GenerationConfigs() (squad, stadium mapper.GenerationConfig, err error) {
	squad, err = mapper.NewGenerationConfig(league.MetricSquadSize, c.Squad)
	if err != nil {
		return squad, stadium, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	stadium, err = mapper.NewGenerationConfig(league.MetricCapacity, c.Stadium)
	if err != nil {
		return squad, stadium, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return squad, stadium, nil
}

// GeneratorOptions carries the policy, quota and player profile.
func (c *Config) GeneratorOptions() []league.Option {
	return []league.Option{
		league.WithPolicy(c.Policy),
		league.WithQuota(c.Positions),
		league.WithPlayerProfile(c.Players),
	}
}

// Request is the league request described by this config.
func (c *Config) Request() league.Request {
	return league.Request{
		Name:               c.League.Name,
		Seed:               c.Seed,
		Reputations:        append([]int(nil), c.League.Reputations...),
		TeamCount:          c.League.TeamCount,
		MinReputation:      c.League.MinReputation,
		MaxReputation:      c.League.MaxReputation,
		CompetitionBalance: c.League.CompetitionBalance,
	}
}
