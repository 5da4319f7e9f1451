package config_test

import (
	"errors"
	"testing"

	"github.com/okian/leaguegen/internal/config"
	"github.com/okian/leaguegen/internal/domain/league"
	"github.com/okian/leaguegen/internal/domain/mapper"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.Seed, convey.ShouldEqual, 42)
			convey.So(cfg.Output, convey.ShouldEqual, "table")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.League.TeamCount, convey.ShouldEqual, 20)
			convey.So(cfg.Squad, convey.ShouldResemble, league.DefaultSquadParams())
			convey.So(cfg.Stadium, convey.ShouldResemble, league.DefaultStadiumParams())
			convey.So(cfg.Policy, convey.ShouldResemble, league.DefaultPolicy())
		})

		convey.Convey("Then the defaults validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given squad bounds with min above max", t, func() {
		cfg := config.New()
		cfg.Squad.MinValue = 40

		err := cfg.Validate()

		convey.Convey("Then both config and mapper errors match", func() {
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(errors.Is(err, mapper.ErrInvalidConfig), convey.ShouldBeTrue)
			var cfgErr *mapper.ConfigError
			convey.So(errors.As(err, &cfgErr), convey.ShouldBeTrue)
			convey.So(cfgErr.Metric, convey.ShouldEqual, league.MetricSquadSize)
		})
	})

	convey.Convey("Given a broken policy", t, func() {
		cfg := config.New()
		cfg.Policy.MinSquadSize = 1

		err := cfg.Validate()
		convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		convey.So(errors.Is(err, league.ErrInvalidPolicy), convey.ShouldBeTrue)
	})

	convey.Convey("Given out of range league settings", t, func() {
		cases := []func(*config.Config){
			func(c *config.Config) { c.WorkerCount = -1 },
			func(c *config.Config) { c.QueueSize = 0 },
			func(c *config.Config) { c.League.TeamCount = -3 },
			func(c *config.Config) { c.League.MinReputation, c.League.MaxReputation = 80, 20 },
			func(c *config.Config) { c.League.MaxReputation = 101 },
			func(c *config.Config) { c.League.CompetitionBalance = 1.5 },
			func(c *config.Config) { c.League.Reputations = []int{50, -1} },
		}
		for _, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		}
	})

	convey.Convey("Given bad reputation bounds", t, func() {
		cases := []func(*config.Config){
			func(c *config.Config) { c.League.MinReputation, c.League.MaxReputation = 80, 20 },
			func(c *config.Config) { c.League.MinReputation = -5 },
			func(c *config.Config) { c.League.Reputations = []int{50, 101} },
		}
		for _, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(errors.Is(err, config.ErrReputationRange), convey.ShouldBeTrue)
		}

		convey.Convey("Then other range problems are not reported as reputation errors", func() {
			cfg := config.New()
			cfg.QueueSize = 0
			convey.So(errors.Is(cfg.Validate(), config.ErrReputationRange), convey.ShouldBeFalse)
		})
	})
}

func TestConfig_Request(t *testing.T) {
	convey.Convey("Given a config with explicit reputations", t, func() {
		cfg := config.New()
		cfg.Seed = 9
		cfg.League.Name = "cup"
		cfg.League.Reputations = []int{80, 60}

		req := cfg.Request()

		convey.Convey("Then the request carries the league settings", func() {
			convey.So(req.Name, convey.ShouldEqual, "cup")
			convey.So(req.Seed, convey.ShouldEqual, 9)
			convey.So(req.Reputations, convey.ShouldResemble, []int{80, 60})
			convey.So(req.TeamCount, convey.ShouldEqual, 20)
		})

		convey.Convey("And the reputations are copied", func() {
			req.Reputations[0] = 1
			convey.So(cfg.League.Reputations[0], convey.ShouldEqual, 80)
		})
	})

	convey.Convey("Given the default config", t, func() {
		cfg := config.New()
		squad, stadium, err := cfg.GenerationConfigs()

		convey.So(err, convey.ShouldBeNil)
		convey.So(squad.Name(), convey.ShouldEqual, league.MetricSquadSize)
		convey.So(stadium.Name(), convey.ShouldEqual, league.MetricCapacity)

		g, err := league.NewGenerator(squad, stadium, cfg.GeneratorOptions()...)
		convey.So(err, convey.ShouldBeNil)
		convey.So(g.Policy(), convey.ShouldResemble, cfg.Policy)
	})
}
