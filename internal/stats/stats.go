package stats

import (
	"math"
	"sort"

	"github.com/KaramelBytes/chartloom-cli/internal/record"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one numeric series.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64 // population standard deviation
	Mode   float64
	Min    float64
	Max    float64
}

// Summarize computes the summary of xs. An empty input yields the zero Summary.
func Summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	mean, std := stat.PopMeanStdDev(xs, nil)
	return Summary{
		Count:  len(xs),
		Mean:   mean,
		StdDev: std,
		Mode:   mode(xs),
		Min:    floats.Min(xs),
		Max:    floats.Max(xs),
	}
}

// mode returns the smallest of the most frequent values, so ties are stable
// across runs.
func mode(xs []float64) float64 {
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	best, bestN := s[0], 0
	for i := 0; i < len(s); {
		j := i + 1
		for j < len(s) && s[j] == s[i] {
			j++
		}
		if j-i > bestN {
			best, bestN = s[i], j-i
		}
		i = j
	}
	return best
}

// Duration is the span in seconds covered by a millisecond timestamp column,
// counting only records where the column is numeric.
func Duration(ds *record.Dataset, column string) float64 {
	ts := ds.Values(column)
	if len(ts) < 2 {
		return 0
	}
	return (floats.Max(ts) - floats.Min(ts)) / 1000.0
}

// Fit is a least-squares line y = Intercept + Slope*x.
type Fit struct {
	Intercept float64
	Slope     float64
	N         int
}

func (f Fit) At(x float64) float64 { return f.Intercept + f.Slope*x }

// Regression fits a line through the pairs where both coordinates are finite.
// It reports false when fewer than two distinct x values remain.
func Regression(xs, ys []float64) (Fit, bool) {
	var fx, fy []float64
	for i := 0; i < len(xs) && i < len(ys); i++ {
		if finite(xs[i]) && finite(ys[i]) {
			fx = append(fx, xs[i])
			fy = append(fy, ys[i])
		}
	}
	if len(fx) < 2 || floats.Min(fx) == floats.Max(fx) {
		return Fit{}, false
	}
	alpha, beta := stat.LinearRegression(fx, fy, nil, false)
	return Fit{Intercept: alpha, Slope: beta, N: len(fx)}, true
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
