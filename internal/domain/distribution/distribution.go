// Package distribution holds the pure numeric helpers shared by the
// generators: Gaussian deviates, rounding with clamping, interpolation and
// summary statistics.
package distribution

import "math"

// NormalSource yields standard normal deviates. *random.Source satisfies it and
// owns any Box–Muller spare, so this package stays stateless.
type NormalSource interface {
	NormFloat64() float64
}

// Gaussian returns mean + stdDev*z with z drawn from src.
func Gaussian(mean, stdDev float64, src NormalSource) float64 {
	return mean + stdDev*src.NormFloat64()
}

// ClampRound rounds half away from zero, then clamps into [minValue,maxValue].
func ClampRound(x float64, minValue, maxValue int) int {
	if math.IsNaN(x) {
		return minValue
	}
	r := math.Round(x)
	if r <= float64(minValue) {
		return minValue
	}
	if r >= float64(maxValue) {
		return maxValue
	}
	return int(r)
}

// LinearInterpolate returns a + t*(b-a). t outside [0,1] extrapolates.
func LinearInterpolate(t, a, b float64) float64 {
	return a + t*(b-a)
}

// Summary aggregates an integer sample.
type Summary struct {
	Count  int
	Total  int
	Mean   float64
	Min    int
	Max    int
	Spread int
	StdDev float64
}

// Summarize computes the population statistics of values. An empty input
// yields the zero Summary.
func Summarize(values []int) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	s := Summary{Count: len(values), Min: values[0], Max: values[0]}
	for _, v := range values {
		s.Total += v
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
	}
	s.Mean = float64(s.Total) / float64(s.Count)
	s.Spread = s.Max - s.Min

	sq := 0.0
	for _, v := range values {
		d := float64(v) - s.Mean
		sq += d * d
	}
	s.StdDev = math.Sqrt(sq / float64(s.Count))
	return s
}
