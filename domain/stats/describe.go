package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SummaryNames lists the descriptive statistics in output order
var SummaryNames = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Summary holds descriptive statistics for one column. Statistics that are
// undefined for the sample (empty column, std of a single value) are NaN.
type Summary struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Describe computes count, mean, sample standard deviation, min, quartiles and max
func Describe(data []float64) Summary {
	nan := math.NaN()
	s := Summary{Count: len(data), Mean: nan, Std: nan, Min: nan, Q25: nan, Q50: nan, Q75: nan, Max: nan}
	if len(data) == 0 {
		return s
	}

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)

	if len(sorted) > 1 {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	} else {
		s.Mean = sorted[0]
	}
	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.Q25 = Quantile(sorted, 0.25)
	s.Q50 = Quantile(sorted, 0.50)
	s.Q75 = Quantile(sorted, 0.75)
	return s
}

// Values returns the statistics in SummaryNames order
func (s Summary) Values() []float64 {
	return []float64{float64(s.Count), s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max}
}

// Quantile interpolates linearly between the closest ranks of sorted data:
// h = (n-1)p, q = x[floor(h)] + (h-floor(h)) * (x[floor(h)+1] - x[floor(h)]).
// gonum's stat.Quantile only offers the empirical-CDF estimators, which
// disagree with this on small samples.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 || p < 0 || p > 1 {
		return math.NaN()
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}
