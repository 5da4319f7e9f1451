// Package model contains the generated league entities passed between layers.
package model

// Position is a player's line on the pitch.
type Position int

// Positions in squad order.
const (
	Goalkeeper Position = iota
	Defender
	Midfielder
	Forward
)

// Positions lists every Position in squad order.
var Positions = [...]Position{Goalkeeper, Defender, Midfielder, Forward}

func (p Position) String() string {
	switch p {
	case Goalkeeper:
		return "GK"
	case Defender:
		return "DEF"
	case Midfielder:
		return "MID"
	case Forward:
		return "FWD"
	default:
		return "UNKNOWN"
	}
}

// Foot is a player's preferred foot.
type Foot string

// Preferred feet.
const (
	FootRight Foot = "right"
	FootLeft  Foot = "left"
	FootBoth  Foot = "both"
)

// PositionCounts is the per-line split of a squad.
type PositionCounts struct {
	Goalkeepers int `json:"goalkeepers" yaml:"goalkeepers"`
	Defenders   int `json:"defenders" yaml:"defenders"`
	Midfielders int `json:"midfielders" yaml:"midfielders"`
	Forwards    int `json:"forwards" yaml:"forwards"`
}

// Total is the squad size the split accounts for.
func (c PositionCounts) Total() int {
	return c.Goalkeepers + c.Defenders + c.Midfielders + c.Forwards
}

// Of returns the count for p.
func (c PositionCounts) Of(p Position) int {
	switch p {
	case Goalkeeper:
		return c.Goalkeepers
	case Defender:
		return c.Defenders
	case Midfielder:
		return c.Midfielders
	case Forward:
		return c.Forwards
	default:
		return 0
	}
}

// Player is one generated squad member.
type Player struct {
	ID       string   `json:"id" yaml:"id"`
	Number   int      `json:"number" yaml:"number"`
	Position Position `json:"position" yaml:"position"`
	Skill    int      `json:"skill" yaml:"skill"`
	Age      int      `json:"age" yaml:"age"`
	Foot     Foot     `json:"foot" yaml:"foot"`
}

// Stadium is a team's home ground.
type Stadium struct {
	Capacity int `json:"capacity" yaml:"capacity"`
}

// Team is one generated club. Index is its position in the league input and
// keeps positional correspondence with the reputation sequence.
type Team struct {
	ID         string         `json:"id" yaml:"id"`
	Index      int            `json:"index" yaml:"index"`
	Reputation int            `json:"reputation" yaml:"reputation"`
	SquadSize  int            `json:"squad_size" yaml:"squad_size"`
	Positions  PositionCounts `json:"positions" yaml:"positions"`
	Stadium    Stadium        `json:"stadium" yaml:"stadium"`
	Players    []Player       `json:"players" yaml:"players"`
}

// League is the full output of one generation run.
type League struct {
	Name  string `json:"name" yaml:"name"`
	Seed  int64  `json:"seed" yaml:"seed"`
	Teams []Team `json:"teams" yaml:"teams"`
}
