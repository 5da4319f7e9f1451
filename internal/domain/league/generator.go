package league

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/leaguegen/internal/domain/distribution"
	"github.com/okian/leaguegen/internal/domain/mapper"
	"github.com/okian/leaguegen/internal/domain/model"
	"github.com/okian/leaguegen/internal/domain/random"
)

// Metric names used in reports and configs.
const (
	MetricSquadSize = "squad_size"
	MetricCapacity  = "stadium_capacity"
)

// Player attribute bounds.
const (
	minSkill     = 1
	maxSkill     = 99
	shirtNumbers = 99
)

// idNamespace roots every generated identifier.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/okian/leaguegen"))

// footWeights order is part of the reproducibility contract.
var footWeights = []random.Weighted[model.Foot]{
	{Outcome: model.FootRight, Weight: 70},
	{Outcome: model.FootLeft, Weight: 25},
	{Outcome: model.FootBoth, Weight: 5},
}

// DefaultSquadParams bounds squad sizes.
func DefaultSquadParams() mapper.Params {
	return mapper.Params{MinValue: 18, MaxValue: 32, AverageValue: 25, ReputationInfluence: 0.6, RandomVariation: 0.2}
}

// DefaultStadiumParams bounds stadium capacities.
func DefaultStadiumParams() mapper.Params {
	return mapper.Params{MinValue: 5_000, MaxValue: 90_000, AverageValue: 30_000, ReputationInfluence: 0.8, RandomVariation: 0.25}
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithPolicy replaces the default policy constants.
func WithPolicy(p Policy) Option {
	return func(g *Generator) { g.policy = p }
}

// WithQuota replaces the default position quota.
func WithQuota(q PositionQuota) Option {
	return func(g *Generator) { g.quota = q }
}

// WithPlayerProfile replaces the default player attribute profile.
func WithPlayerProfile(p PlayerProfile) Option {
	return func(g *Generator) { g.players = p }
}

// Generator builds whole leagues. It holds configuration only and can be
// shared; every call brings its own random.Source.
type Generator struct {
	squad   mapper.GenerationConfig
	stadium mapper.GenerationConfig
	policy  Policy
	quota   PositionQuota
	players PlayerProfile
}

// NewGenerator validates the policy, quota and player profile.
func NewGenerator(squad, stadium mapper.GenerationConfig, opts ...Option) (*Generator, error) {
	g := &Generator{
		squad:   squad,
		stadium: stadium,
		policy:  DefaultPolicy(),
		quota:   DefaultQuota(),
		players: DefaultPlayerProfile(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := errors.Join(g.policy.Validate(), g.quota.Validate(), g.players.Validate()); err != nil {
		return nil, err
	}
	return g, nil
}

// SquadConfig returns the squad size config.
func (g *Generator) SquadConfig() mapper.GenerationConfig { return g.squad }

// Policy returns the active policy.
func (g *Generator) Policy() Policy { return g.policy }

// Request describes one league.
type Request struct {
	Name string
	Seed int64
	// Reputations, when non-empty, are used as given and never modified.
	Reputations []int
	// The fields below derive a spread when Reputations is empty.
	TeamCount          int
	MinReputation      int
	MaxReputation      int
	CompetitionBalance float64
}

// Result is everything one generation pass produced. Failures lists teams
// dropped for breaking a hard floor; the rest of the league is still built.
type Result struct {
	League         model.League
	Reputations    []int
	SquadReport    Report
	CapacityReport Report
	Failures       []*DataError
}

// Generate builds a league from req, drawing only from src.
//
// Draw order: reputation spread (when derived), squad sizes, capacities, then
// one child source per team. Player attributes come from the child, so a team
// dropped for a DataError does not shift its siblings' draws.
func (g *Generator) Generate(req Request, src *random.Source) (Result, error) {
	reps := append([]int(nil), req.Reputations...)
	if len(reps) == 0 {
		var err error
		reps, err = g.policy.DeriveReputationSpread(req.TeamCount, req.MinReputation, req.MaxReputation, req.CompetitionBalance, src)
		if err != nil {
			return Result{}, err
		}
	}

	squads := DeriveSquadSizes(reps, g.squad, src)
	capacities := DeriveCapacities(reps, g.stadium, src)
	children := make([]*random.Source, len(reps))
	for i := range children {
		children[i] = src.Derive()
	}

	res := Result{
		League:         model.League{Name: req.Name, Seed: req.Seed, Teams: make([]model.Team, 0, len(reps))},
		Reputations:    reps,
		SquadReport:    NewReport(MetricSquadSize, squads),
		CapacityReport: NewReport(MetricCapacity, capacities),
	}
	for i, rep := range reps {
		team, err := g.buildTeam(req, i, rep, squads[i], capacities[i], children[i])
		if err != nil {
			var dataErr *DataError
			if !errors.As(err, &dataErr) {
				return Result{}, err
			}
			res.Failures = append(res.Failures, dataErr)
			continue
		}
		res.League.Teams = append(res.League.Teams, team)
	}
	return res, nil
}

func (g *Generator) buildTeam(req Request, index, reputation, squadSize, capacity int, src *random.Source) (model.Team, error) {
	id := TeamID(req.Name, req.Seed, index)
	counts, err := g.policy.DerivePositionedSquad(squadSize, g.quota)
	if err != nil {
		var dataErr *DataError
		if errors.As(err, &dataErr) {
			dataErr.Index = index
			dataErr.TeamID = id
		}
		return model.Team{}, err
	}

	players, err := g.buildPlayers(id, reputation, counts, src)
	if err != nil {
		return model.Team{}, fmt.Errorf("team %d: %w", index, err)
	}
	team := model.Team{
		ID:         id,
		Index:      index,
		Reputation: reputation,
		SquadSize:  squadSize,
		Positions:  counts,
		Stadium:    model.Stadium{Capacity: capacity},
		Players:    players,
	}
	if err := g.policy.CheckTeam(team); err != nil {
		return model.Team{}, err
	}
	return team, nil
}

func (g *Generator) buildPlayers(teamID string, reputation int, counts model.PositionCounts, src *random.Source) ([]model.Player, error) {
	size := counts.Total()
	numbers := make([]int, max(shirtNumbers, size))
	for i := range numbers {
		numbers[i] = i + 1
	}
	random.ShuffleSlice(src, numbers)

	rep := min(max(reputation, mapper.MinReputation), mapper.MaxReputation)
	skillMean := distribution.LinearInterpolate(float64(rep)/mapper.MaxReputation, g.players.SkillMinMean, g.players.SkillMaxMean)
	ns := uuid.MustParse(teamID)

	players := make([]model.Player, 0, size)
	for _, pos := range model.Positions {
		for k := 0; k < counts.Of(pos); k++ {
			j := len(players)
			skill := distribution.ClampRound(distribution.Gaussian(skillMean, g.players.SkillStdDev, src), minSkill, maxSkill)
			age := distribution.ClampRound(distribution.Gaussian(g.players.AgeMean, g.players.AgeStdDev, src), g.players.MinAge, g.players.MaxAge)
			foot, err := random.Choose(src, footWeights)
			if err != nil {
				return nil, err
			}
			players = append(players, model.Player{
				ID:       uuid.NewSHA1(ns, []byte(fmt.Sprintf("player/%d", j))).String(),
				Number:   numbers[j],
				Position: pos,
				Skill:    skill,
				Age:      age,
				Foot:     foot,
			})
		}
	}
	return players, nil
}

// TeamID is the stable identifier of the index-th team of a league.
func TeamID(league string, seed int64, index int) string {
	return uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%s/%d/team/%d", league, seed, index))).String()
}
