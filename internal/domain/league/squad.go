package league

import (
	"math"

	"github.com/okian/leaguegen/internal/domain/model"
)

const maxGoalkeepers = 3

// DerivePositionedSquad uses DefaultPolicy.
func DerivePositionedSquad(squadSize int, quota PositionQuota) (model.PositionCounts, error) {
	return DefaultPolicy().DerivePositionedSquad(squadSize, quota)
}

// DerivePositionedSquad splits squadSize across lines. A size under
// MinSquadSize is reported as a DataError and never padded up.
func (p Policy) DerivePositionedSquad(squadSize int, quota PositionQuota) (model.PositionCounts, error) {
	if squadSize < p.MinSquadSize {
		return model.PositionCounts{}, &DataError{Index: -1, Value: squadSize, Err: ErrSquadBelowFloor}
	}
	return splitPositions(squadSize, quota), nil
}

// splitPositions always yields at least one goalkeeper for a positive size and
// at least one player per outfield line once the size allows it.
func splitPositions(size int, q PositionQuota) model.PositionCounts {
	if size <= 0 {
		return model.PositionCounts{}
	}
	gk := int(math.Round(float64(size) * q.GoalkeeperRatio))
	gk = min(max(gk, 1), maxGoalkeepers, size)

	rest := size - gk
	if rest <= 0 {
		return model.PositionCounts{Goalkeepers: gk}
	}
	def := max(1, int(math.Round(float64(rest)*q.DefenderShare)))
	mid := max(1, int(math.Round(float64(rest)*q.MidfielderShare)))
	// keep a forward whenever there are three outfield spots
	for def+mid > max(rest-1, 2) && (def > 1 || mid > 1) {
		if def >= mid {
			def--
		} else {
			mid--
		}
	}
	if def+mid > rest {
		// rest is 1: a lone outfielder defends
		def, mid = rest, 0
	}
	return model.PositionCounts{
		Goalkeepers: gk,
		Defenders:   def,
		Midfielders: mid,
		Forwards:    rest - def - mid,
	}
}

// CheckTeam enforces the hard floors on a built team.
func (p Policy) CheckTeam(team model.Team) error {
	if team.SquadSize < p.MinSquadSize {
		return &DataError{Index: team.Index, TeamID: team.ID, Value: team.SquadSize, Err: ErrSquadBelowFloor}
	}
	if team.Positions.Goalkeepers < 1 {
		return &DataError{Index: team.Index, TeamID: team.ID, Value: team.Positions.Goalkeepers, Err: ErrNoGoalkeeper}
	}
	return nil
}
