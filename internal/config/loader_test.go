package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/leaguegen/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("LEAGUEGEN_SEED", "7")
			_ = os.Setenv("LEAGUEGEN_WORKER_COUNT", "4")
			_ = os.Setenv("LEAGUEGEN_LOG_FORMAT", "json")
			_ = os.Setenv("LEAGUEGEN_LEAGUE__TEAM_COUNT", "12")
			_ = os.Setenv("LEAGUEGEN_SQUAD__MIN_VALUE", "20")
			_ = os.Setenv("LEAGUEGEN_POLICY__DEVIATION_THRESHOLD", "6.5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Seed, convey.ShouldEqual, 7)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.League.TeamCount, convey.ShouldEqual, 12)
				convey.So(cfg.Squad.MinValue, convey.ShouldEqual, 20)
				convey.So(cfg.Squad.MaxValue, convey.ShouldEqual, 32)
				convey.So(cfg.Policy.DeviationThreshold, convey.ShouldEqual, 6.5)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# nested sections follow the koanf tags
seed: 99
output: json
league:
  name: premier
  reputations: [90, 75, 60]
stadium:
  min_value: 1000
  max_value: 50000
  average_value: 20000
  reputation_influence: 0.5
  random_variation: 0.1
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("LEAGUEGEN_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Seed, convey.ShouldEqual, 99)
				convey.So(cfg.Output, convey.ShouldEqual, "json")
				convey.So(cfg.League.Name, convey.ShouldEqual, "premier")
				convey.So(cfg.League.Reputations, convey.ShouldResemble, []int{90, 75, 60})
				convey.So(cfg.Stadium.MaxValue, convey.ShouldEqual, 50000)
				convey.So(cfg.Stadium.RandomVariation, convey.ShouldEqual, 0.1)
			})

			convey.Convey("Then sections absent from the file keep defaults", func() {
				convey.So(cfg.League.TeamCount, convey.ShouldEqual, 20)
				convey.So(cfg.League.CompetitionBalance, convey.ShouldEqual, 0.5)
				convey.So(cfg.Squad.AverageValue, convey.ShouldEqual, 25)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
seed: 99
worker_count: 8
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("LEAGUEGEN_CONFIG", tmpFile)
			_ = os.Setenv("LEAGUEGEN_WORKER_COUNT", "2")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Seed, convey.ShouldEqual, 99)      // From file
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 2) // Overridden by env
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("LEAGUEGEN_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("LEAGUEGEN_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("LEAGUEGEN_QUEUE_SIZE", "invalid")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the squad average falls outside its bounds", func() {
			_ = os.Setenv("LEAGUEGEN_SQUAD__AVERAGE_VALUE", "40")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "squad_size")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestLoadFile(t *testing.T) {
	convey.Convey("Given an explicit config path", t, func() {
		clearConfigEnvVars()
		tmpFile := createTempConfigFile("league:\n  team_count: 6\n")
		defer func() { _ = os.Remove(tmpFile) }()

		cfg, err := config.LoadFile(tmpFile)

		convey.So(err, convey.ShouldBeNil)
		convey.So(cfg.League.TeamCount, convey.ShouldEqual, 6)
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"LEAGUEGEN_CONFIG",
		"LEAGUEGEN_SEED",
		"LEAGUEGEN_WORKER_COUNT",
		"LEAGUEGEN_QUEUE_SIZE",
		"LEAGUEGEN_LOG_FORMAT",
		"LEAGUEGEN_LEAGUE__TEAM_COUNT",
		"LEAGUEGEN_SQUAD__MIN_VALUE",
		"LEAGUEGEN_SQUAD__AVERAGE_VALUE",
		"LEAGUEGEN_POLICY__DEVIATION_THRESHOLD",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "leaguegen-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
