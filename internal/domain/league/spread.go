// Package league applies the reputation mapper across a whole league and keeps
// the derived metrics of its teams mutually consistent.
package league

import (
	"fmt"

	"github.com/okian/leaguegen/internal/domain/distribution"
	"github.com/okian/leaguegen/internal/domain/mapper"
	"github.com/okian/leaguegen/internal/domain/random"
)

// DeriveMetric maps each reputation through cfg, preserving input order: the
// i-th output belongs to the i-th team.
func DeriveMetric(reputations []int, cfg mapper.GenerationConfig, src mapper.Uniform) []int {
	out := make([]int, len(reputations))
	for i, rep := range reputations {
		out[i] = mapper.Map(rep, cfg, src)
	}
	return out
}

// DeriveSquadSizes maps each reputation to a squad size.
func DeriveSquadSizes(reputations []int, cfg mapper.GenerationConfig, src mapper.Uniform) []int {
	return DeriveMetric(reputations, cfg, src)
}

// DeriveCapacities maps each reputation to a stadium capacity.
func DeriveCapacities(reputations []int, cfg mapper.GenerationConfig, src mapper.Uniform) []int {
	return DeriveMetric(reputations, cfg, src)
}

// DeriveReputationSpread uses DefaultPolicy.
func DeriveReputationSpread(teamCount, minRep, maxRep int, competitionBalance float64, src *random.Source) ([]int, error) {
	return DefaultPolicy().DeriveReputationSpread(teamCount, minRep, maxRep, competitionBalance, src)
}

// DeriveReputationSpread generates one reputation per team in [minRep,maxRep].
//
// Above BalanceThreshold the league is tight: values sit within
// (1-competitionBalance)*(maxRep-minRep) of the midpoint. Otherwise they
// follow a ramp from minRep to maxRep by team index, each jittered by
// ±RampJitter. The result is shuffled so ramp order does not rank teams.
func (p Policy) DeriveReputationSpread(teamCount, minRep, maxRep int, competitionBalance float64, src *random.Source) ([]int, error) {
	switch {
	case minRep < mapper.MinReputation || maxRep > mapper.MaxReputation:
		return nil, fmt.Errorf("%w: [%d,%d] outside [%d,%d]", ErrInvalidRange, minRep, maxRep, mapper.MinReputation, mapper.MaxReputation)
	case minRep > maxRep:
		return nil, fmt.Errorf("%w: min %d exceeds max %d", ErrInvalidRange, minRep, maxRep)
	case competitionBalance < 0 || competitionBalance > 1:
		return nil, fmt.Errorf("%w: competition balance %g outside [0,1]", ErrInvalidRange, competitionBalance)
	}
	if teamCount <= 0 {
		return []int{}, nil
	}

	lo, hi := float64(minRep), float64(maxRep)
	out := make([]int, teamCount)
	if competitionBalance > p.BalanceThreshold {
		mid := (lo + hi) / 2
		halfWidth := (1 - competitionBalance) * (hi - lo)
		for i := range out {
			offset := (src.Float64() - 0.5) * 2 * halfWidth
			out[i] = distribution.ClampRound(mid+offset, minRep, maxRep)
		}
	} else {
		for i := range out {
			t := 0.5
			if teamCount > 1 {
				t = float64(i) / float64(teamCount-1)
			}
			jitter := (src.Float64() - 0.5) * 2 * p.RampJitter
			out[i] = distribution.ClampRound(distribution.LinearInterpolate(t, lo, hi)+jitter, minRep, maxRep)
		}
	}

	random.ShuffleSlice(src, out)
	return out, nil
}
