package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/okian/leaguegen/internal/adapters/output"
	"github.com/okian/leaguegen/internal/adapters/repository"
	"github.com/okian/leaguegen/internal/config"
	"github.com/okian/leaguegen/internal/domain/validation"
	"github.com/okian/leaguegen/pkg/logger"
	"github.com/okian/leaguegen/pkg/metrics"
)

// Linker flags set at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var errStrict = errors.New("validation reported errors")

// cli holds what PersistentPreRunE resolved for the running command.
type cli struct {
	configFile string
	logLevel   string
	logFormat  string
	outputName string
	metrics    string
	noColor    bool
	strict     bool

	cfg    *config.Config
	format output.Format
	log    logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "leaguegen",
		Short:         "Generate reproducible sports leagues from team reputations.",
		Long:          `leaguegen derives squad sizes, positions, players and stadiums from team reputations. The same seed and configuration always produce the same league.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "YAML config file (default $"+config.EnvFile+")")
	flags.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&c.logFormat, "log-format", "", "Log format: text or json")
	flags.StringVarP(&c.outputName, "output", "o", "", "Output format: table, json, yaml, csv or engine")
	flags.StringVar(&c.metrics, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	flags.BoolVar(&c.noColor, "no-color", false, "Disable colored table output")
	flags.BoolVar(&c.strict, "strict", false, "Exit non-zero when validation reports an error")

	root.AddCommand(newGenerateCmd(c), newBatchCmd(c), newVersionCmd())
	return root
}

// setup loads config, applies persistent flags and initializes logging.
func (c *cli) setup(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if c.configFile != "" {
		cfg, err = config.LoadFile(c.configFile)
	} else {
		cfg, err = config.Load(cmd.Context())
	}
	if err != nil {
		metrics.RecordConfigError()
		return err
	}

	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if c.logFormat != "" {
		cfg.LogFormat = c.logFormat
	}
	if c.outputName != "" {
		cfg.Output = c.outputName
	}
	if c.metrics != "" {
		cfg.MetricsFile = c.metrics
	}

	if c.format, err = output.ParseFormat(cfg.Output); err != nil {
		return err
	}
	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	c.log = logger.Named("cli")
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		c.log.Warn(cmd.Context(), "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	c.cfg = cfg
	return nil
}

func (c *cli) useColors() bool {
	return !c.noColor && !color.NoColor
}

// finish logs issues, exports metrics and applies --strict.
func (c *cli) finish(ctx context.Context, records []repository.Record) error {
	errCount := 0
	for _, rec := range records {
		for _, f := range rec.Result.Failures {
			c.log.Warn(ctx, "team dropped", logger.String("job_id", rec.JobID), logger.Int("index", f.Index), logger.Error(f))
		}
		errCount += validation.Count(rec.Issues, validation.SeverityError)
	}

	if c.cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(c.cfg.MetricsFile); err != nil {
			return err
		}
		c.log.Debug(ctx, "metrics written", logger.String("path", c.cfg.MetricsFile))
	}

	if c.strict && errCount > 0 {
		return fmt.Errorf("%w: %d", errStrict, errCount)
	}
	return nil
}
