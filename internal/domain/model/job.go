package model

import "fmt"

// GenerationJob asks for one league.
type GenerationJob struct {
	ID   string
	Name string
	Seed int64
	// TeamCount is used when Reputations is empty.
	TeamCount int
	// Reputations, when set, are used as-is instead of a derived spread.
	Reputations []int
}

// Fingerprint identifies the job's output: two jobs with equal fingerprints
// generate bit-identical leagues under the same configuration.
func (j GenerationJob) Fingerprint() string {
	return fmt.Sprintf("%s#%d#%d#%v", j.Name, j.Seed, j.TeamCount, j.Reputations)
}
