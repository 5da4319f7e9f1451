package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/leaguegen/internal/adapters/output"
	"github.com/okian/leaguegen/internal/adapters/repository"
	service "github.com/okian/leaguegen/internal/app"
	"github.com/okian/leaguegen/internal/config"
	"github.com/okian/leaguegen/internal/domain/model"
	"github.com/okian/leaguegen/pkg/logger"
)

// leagueFlags override the league section of the config when set.
type leagueFlags struct {
	name        string
	teams       int
	minRep      int
	maxRep      int
	balance     float64
	reputations []int
}

func (f *leagueFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.name, "name", "", "League name, part of every generated id")
	flags.IntVarP(&f.teams, "teams", "t", 0, "Number of teams when reputations are derived")
	flags.IntVar(&f.minRep, "min-reputation", 0, "Lowest derived reputation")
	flags.IntVar(&f.maxRep, "max-reputation", 0, "Highest derived reputation")
	flags.Float64Var(&f.balance, "balance", 0, "Competition balance in [0,1]; high values cluster reputations")
	flags.IntSliceVar(&f.reputations, "reputations", nil, "Explicit team reputations, e.g. 90,75,60")
}

// apply copies changed flags into cfg and revalidates it.
func (f *leagueFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.League.Name = f.name
	}
	if flags.Changed("teams") {
		cfg.League.TeamCount = f.teams
	}
	if flags.Changed("min-reputation") {
		cfg.League.MinReputation = f.minRep
	}
	if flags.Changed("max-reputation") {
		cfg.League.MaxReputation = f.maxRep
	}
	if flags.Changed("balance") {
		cfg.League.CompetitionBalance = f.balance
	}
	if flags.Changed("reputations") {
		cfg.League.Reputations = f.reputations
	}
	return cfg.Validate()
}

// jobFor builds the job for seed from the league section of cfg.
func jobFor(cfg *config.Config, seed int64) model.GenerationJob {
	return model.GenerationJob{
		Name:        cfg.League.Name,
		Seed:        seed,
		TeamCount:   cfg.League.TeamCount,
		Reputations: cfg.League.Reputations,
	}
}

func newGenerateCmd(c *cli) *cobra.Command {
	var (
		lf   leagueFlags
		seed int64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one league.",
		Long: `Generate one league and write it to stdout.

Reputations are either given with --reputations or derived from
--teams, --min-reputation, --max-reputation and --balance.`,
		Example: `  leaguegen generate --seed 7 --teams 18
  leaguegen generate --reputations 90,75,60 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("seed") {
				c.cfg.Seed = seed
			}
			if err := lf.apply(cmd, c.cfg); err != nil {
				return err
			}

			svc, err := service.NewFromConfig(c.cfg, service.WithLogger(c.log))
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			rec, err := svc.Generate(ctx, jobFor(c.cfg, c.cfg.Seed))
			if err != nil {
				return err
			}
			c.log.Info(ctx, "league generated",
				logger.String("league", rec.Result.League.Name),
				logger.Int64("seed", rec.Job.Seed),
				logger.Int("teams", len(rec.Result.League.Teams)),
				logger.Int("issues", len(rec.Issues)),
			)

			doc := output.NewDocument(rec.Result, rec.Issues)
			if err := output.Write(cmd.OutOrStdout(), c.format, doc, c.useColors()); err != nil {
				return err
			}
			return c.finish(ctx, []repository.Record{rec})
		},
	}
	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "Random seed (default from config)")
	lf.register(cmd)
	return cmd
}
