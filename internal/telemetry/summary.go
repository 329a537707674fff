package telemetry

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Summary describes a score distribution.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Median float64
	P90    float64
	Best   int
}

// Summarize computes distribution statistics for a list of scores.
// An empty list yields the zero Summary.
func Summarize(scores []int) Summary {
	if len(scores) == 0 {
		return Summary{}
	}

	xs := make([]float64, len(scores))
	for i, s := range scores {
		xs[i] = float64(s)
	}
	slices.Sort(xs)

	mean, std := stat.MeanStdDev(xs, nil)
	if len(xs) == 1 {
		std = 0 // Sample std dev is undefined for one value
	}

	return Summary{
		Count:  len(xs),
		Mean:   mean,
		StdDev: std,
		Median: stat.Quantile(0.5, stat.Empirical, xs, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, xs, nil),
		Best:   slices.Max(scores),
	}
}
