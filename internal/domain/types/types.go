// Package types contains the flat records handed to a simulation engine.
// Only final integers cross this boundary, keyed by stable identifiers.
package types

import "github.com/okian/leaguegen/internal/domain/model"

// TeamRecord is one team as the engine sees it.
type TeamRecord struct {
	TeamID          string `json:"team_id" yaml:"team_id"`
	Reputation      int    `json:"reputation" yaml:"reputation"`
	SquadSize       int    `json:"squad_size" yaml:"squad_size"`
	Goalkeepers     int    `json:"goalkeepers" yaml:"goalkeepers"`
	Defenders       int    `json:"defenders" yaml:"defenders"`
	Midfielders     int    `json:"midfielders" yaml:"midfielders"`
	Forwards        int    `json:"forwards" yaml:"forwards"`
	StadiumCapacity int    `json:"stadium_capacity" yaml:"stadium_capacity"`
}

// PlayerRecord is one player as the engine sees it. Position uses the
// model.Position numbering.
type PlayerRecord struct {
	PlayerID string `json:"player_id" yaml:"player_id"`
	TeamID   string `json:"team_id" yaml:"team_id"`
	Number   int    `json:"number" yaml:"number"`
	Position int    `json:"position" yaml:"position"`
	Skill    int    `json:"skill" yaml:"skill"`
	Age      int    `json:"age" yaml:"age"`
}

// Handoff is a whole league flattened for the engine.
type Handoff struct {
	League  string         `json:"league" yaml:"league"`
	Seed    int64          `json:"seed" yaml:"seed"`
	Teams   []TeamRecord   `json:"teams" yaml:"teams"`
	Players []PlayerRecord `json:"players" yaml:"players"`
}

// FromLeague flattens l, keeping team order and squad order.
func FromLeague(l model.League) Handoff {
	h := Handoff{
		League: l.Name,
		Seed:   l.Seed,
		Teams:  make([]TeamRecord, 0, len(l.Teams)),
	}
	for _, t := range l.Teams {
		h.Teams = append(h.Teams, TeamRecord{
			TeamID:          t.ID,
			Reputation:      t.Reputation,
			SquadSize:       t.SquadSize,
			Goalkeepers:     t.Positions.Goalkeepers,
			Defenders:       t.Positions.Defenders,
			Midfielders:     t.Positions.Midfielders,
			Forwards:        t.Positions.Forwards,
			StadiumCapacity: t.Stadium.Capacity,
		})
		for _, p := range t.Players {
			h.Players = append(h.Players, PlayerRecord{
				PlayerID: p.ID,
				TeamID:   t.ID,
				Number:   p.Number,
				Position: int(p.Position),
				Skill:    p.Skill,
				Age:      p.Age,
			})
		}
	}
	return h
}
