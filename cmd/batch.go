package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/leaguegen/internal/adapters/output"
	service "github.com/okian/leaguegen/internal/app"
	"github.com/okian/leaguegen/internal/domain/model"
	"github.com/okian/leaguegen/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

var errNoSeeds = errors.New("batch needs at least one seed")

func newBatchCmd(c *cli) *cobra.Command {
	var (
		lf      leagueFlags
		seeds   []int64
		workers int
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate one league per seed on a worker pool.",
		Long: `Generate one league per seed. Jobs run concurrently, but each draws
from its own seed, so the output matches running generate once per seed.
Repeated seeds are generated once.`,
		Example: `  leaguegen batch --seeds 1,2,3 -o json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(seeds) == 0 {
				return errNoSeeds
			}
			if cmd.Flags().Changed("workers") {
				c.cfg.WorkerCount = workers
			}
			if err := lf.apply(cmd, c.cfg); err != nil {
				return err
			}

			svc, err := service.NewFromConfig(c.cfg, service.WithLogger(c.log))
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := svc.Start(ctx); err != nil {
				return err
			}
			defer func() {
				stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
				defer cancel()
				if err := svc.Stop(stopCtx); err != nil {
					c.log.Error(ctx, "service shutdown failed", logger.Error(err))
				}
			}()

			jobs := make([]model.GenerationJob, len(seeds))
			for i, seed := range seeds {
				jobs[i] = jobFor(c.cfg, seed)
			}
			records, err := svc.GenerateBatch(ctx, jobs)
			if err != nil {
				return err
			}

			docs := make([]output.Document, 0, len(records))
			failed := 0
			for _, rec := range records {
				if rec.Err != nil {
					failed++
					c.log.Error(ctx, "job failed", logger.Int64("seed", rec.Job.Seed), logger.Error(rec.Err))
					continue
				}
				docs = append(docs, output.NewDocument(rec.Result, rec.Issues))
			}
			c.log.Info(ctx, "batch finished",
				logger.Int("jobs", len(jobs)),
				logger.Int("generated", len(docs)),
				logger.Int("duplicates", len(jobs)-len(records)),
				logger.Int("failed", failed),
			)

			if err := output.WriteAll(cmd.OutOrStdout(), c.format, docs, c.useColors()); err != nil {
				return err
			}
			if err := c.finish(ctx, records); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d jobs failed", failed, len(records))
			}
			return nil
		},
	}
	cmd.Flags().Int64SliceVar(&seeds, "seeds", nil, "Comma-separated seeds, one league each")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Worker goroutines (default one per CPU)")
	lf.register(cmd)
	return cmd
}
