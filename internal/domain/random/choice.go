package random

// Weighted pairs an outcome with its relative weight.
type Weighted[T any] struct {
	Outcome T
	Weight  float64
}

// Choose picks one outcome with probability proportional to its weight.
// The order of options is part of the reproducibility contract: the same
// options in a different order map draws to different outcomes.
// Non-positive weights are never selected. Exactly one draw is consumed
// when a choice is possible.
func Choose[T any](s *Source, options []Weighted[T]) (T, error) {
	var zero T
	total := 0.0
	for _, o := range options {
		if o.Weight > 0 {
			total += o.Weight
		}
	}
	if total <= 0 {
		return zero, ErrNoOutcomes
	}

	target := s.Float64() * total
	last := -1
	for i, o := range options {
		if o.Weight <= 0 {
			continue
		}
		last = i
		if target < o.Weight {
			return o.Outcome, nil
		}
		target -= o.Weight
	}
	// Floating point residue lands on the last eligible outcome.
	return options[last].Outcome, nil
}
