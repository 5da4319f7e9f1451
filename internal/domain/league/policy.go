package league

import "fmt"

// Default policy constants.
const (
	defaultBalanceThreshold   = 0.8
	defaultRampJitter         = 5.0
	defaultDeviationThreshold = 5.0
	defaultMinSquadSize       = 11

	// fewest players that can still hold one goalkeeper and three outfield lines
	minFloor = 4
)

// Policy holds the tunable constants of league generation.
type Policy struct {
	// BalanceThreshold splits the clustered and ramped reputation regimes.
	BalanceThreshold float64 `koanf:"balance_threshold" json:"balance_threshold" yaml:"balance_threshold"`
	// RampJitter is the ± perturbation applied along the reputation ramp.
	RampJitter float64 `koanf:"ramp_jitter" json:"ramp_jitter" yaml:"ramp_jitter"`
	// DeviationThreshold is how far a metric may stray from its expectation
	// before the validator warns.
	DeviationThreshold float64 `koanf:"deviation_threshold" json:"deviation_threshold" yaml:"deviation_threshold"`
	// MinSquadSize is the smallest fieldable squad.
	MinSquadSize int `koanf:"min_squad_size" json:"min_squad_size" yaml:"min_squad_size"`
}

// DefaultPolicy returns the standard constants.
func DefaultPolicy() Policy {
	return Policy{
		BalanceThreshold:   defaultBalanceThreshold,
		RampJitter:         defaultRampJitter,
		DeviationThreshold: defaultDeviationThreshold,
		MinSquadSize:       defaultMinSquadSize,
	}
}

// Validate checks the policy is usable.
func (p Policy) Validate() error {
	switch {
	case p.BalanceThreshold < 0 || p.BalanceThreshold > 1:
		return fmt.Errorf("%w: balance threshold %g outside [0,1]", ErrInvalidPolicy, p.BalanceThreshold)
	case p.RampJitter < 0:
		return fmt.Errorf("%w: ramp jitter %g is negative", ErrInvalidPolicy, p.RampJitter)
	case p.DeviationThreshold < 0:
		return fmt.Errorf("%w: deviation threshold %g is negative", ErrInvalidPolicy, p.DeviationThreshold)
	case p.MinSquadSize < minFloor:
		return fmt.Errorf("%w: min squad size %d below %d", ErrInvalidPolicy, p.MinSquadSize, minFloor)
	}
	return nil
}

// PositionQuota shapes how a squad is split across lines.
type PositionQuota struct {
	GoalkeeperRatio float64 `koanf:"goalkeeper_ratio" json:"goalkeeper_ratio" yaml:"goalkeeper_ratio"`
	DefenderShare   float64 `koanf:"defender_share" json:"defender_share" yaml:"defender_share"`
	MidfielderShare float64 `koanf:"midfielder_share" json:"midfielder_share" yaml:"midfielder_share"`
}

// DefaultQuota gives one goalkeeper per eleven players and splits the
// outfield 38/38/24.
func DefaultQuota() PositionQuota {
	return PositionQuota{
		GoalkeeperRatio: 1.0 / 11.0,
		DefenderShare:   0.38,
		MidfielderShare: 0.38,
	}
}

// Validate checks the shares leave room for forwards.
func (q PositionQuota) Validate() error {
	switch {
	case q.GoalkeeperRatio <= 0 || q.GoalkeeperRatio >= 1:
		return fmt.Errorf("%w: goalkeeper ratio %g outside (0,1)", ErrInvalidPolicy, q.GoalkeeperRatio)
	case q.DefenderShare <= 0 || q.MidfielderShare <= 0:
		return fmt.Errorf("%w: outfield shares must be positive", ErrInvalidPolicy)
	case q.DefenderShare+q.MidfielderShare >= 1:
		return fmt.Errorf("%w: defender and midfielder shares leave no forwards", ErrInvalidPolicy)
	}
	return nil
}

// PlayerProfile shapes per-player attributes.
type PlayerProfile struct {
	SkillMinMean float64 `koanf:"skill_min_mean" json:"skill_min_mean" yaml:"skill_min_mean"`
	SkillMaxMean float64 `koanf:"skill_max_mean" json:"skill_max_mean" yaml:"skill_max_mean"`
	SkillStdDev  float64 `koanf:"skill_std_dev" json:"skill_std_dev" yaml:"skill_std_dev"`
	AgeMean      float64 `koanf:"age_mean" json:"age_mean" yaml:"age_mean"`
	AgeStdDev    float64 `koanf:"age_std_dev" json:"age_std_dev" yaml:"age_std_dev"`
	MinAge       int     `koanf:"min_age" json:"min_age" yaml:"min_age"`
	MaxAge       int     `koanf:"max_age" json:"max_age" yaml:"max_age"`
}

// DefaultPlayerProfile returns attribute defaults for a senior league.
func DefaultPlayerProfile() PlayerProfile {
	return PlayerProfile{
		SkillMinMean: 45,
		SkillMaxMean: 80,
		SkillStdDev:  8,
		AgeMean:      26,
		AgeStdDev:    4,
		MinAge:       17,
		MaxAge:       38,
	}
}

// Validate checks the profile bounds.
func (p PlayerProfile) Validate() error {
	switch {
	case p.SkillStdDev < 0 || p.AgeStdDev < 0:
		return fmt.Errorf("%w: standard deviations must not be negative", ErrInvalidPolicy)
	case p.MinAge > p.MaxAge:
		return fmt.Errorf("%w: min age %d exceeds max age %d", ErrInvalidPolicy, p.MinAge, p.MaxAge)
	}
	return nil
}
