package league

import "github.com/okian/leaguegen/internal/domain/distribution"

// Report aggregates one derived metric across a league.
type Report struct {
	Metric  string  `json:"metric" yaml:"metric"`
	Values  []int   `json:"values" yaml:"values"`
	Total   int     `json:"total" yaml:"total"`
	Average float64 `json:"average" yaml:"average"`
	Min     int     `json:"min" yaml:"min"`
	Max     int     `json:"max" yaml:"max"`
	Spread  int     `json:"spread" yaml:"spread"`
	StdDev  float64 `json:"std_dev" yaml:"std_dev"`
}

// NewReport summarizes values in their given order. values is copied.
func NewReport(metric string, values []int) Report {
	s := distribution.Summarize(values)
	return Report{
		Metric:  metric,
		Values:  append([]int(nil), values...),
		Total:   s.Total,
		Average: s.Mean,
		Min:     s.Min,
		Max:     s.Max,
		Spread:  s.Spread,
		StdDev:  s.StdDev,
	}
}
