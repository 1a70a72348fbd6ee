// Package processors charts how desktop CPU specifications evolved over time.
package processors

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/chartloom-cli/internal/record"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const (
	ColLaunchDate    = "Launch_Date"
	ColBaseFrequency = "Processor_Base_Frequency"
	ColTurbo         = "Max_Turbo_Frequency"
	ColBandwidth     = "Max_Memory_Bandwidth"
	ColCores         = "nb_of_Cores"
	ColThreads       = "nb_of_Threads"
)

// NumericColumns are the columns copied into the frame by default.
var NumericColumns = []string{ColLaunchDate, ColBaseFrequency, ColTurbo, ColBandwidth, ColCores, ColThreads}

// Frame copies the named numeric columns of ds into a DataFrame. Absent and
// Null cells become NaN; a column missing from the header is all NaN.
func Frame(ds *record.Dataset, columns []string) (dataframe.DataFrame, error) {
	cols := make([]series.Series, 0, len(columns))
	for _, name := range columns {
		vals := make([]float64, len(ds.Records))
		for i, rec := range ds.Records {
			if f, ok := rec.Float(name); ok {
				vals[i] = f
			} else {
				vals[i] = math.NaN()
			}
		}
		cols = append(cols, series.New(vals, series.Float, name))
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return df, fmt.Errorf("build frame: %w", df.Err)
	}
	return df, nil
}

// pairs returns the rows of df where both x and y are numbers.
func pairs(df dataframe.DataFrame, x, y string) (xs, ys []float64) {
	cx := df.Col(x).Float()
	cy := df.Col(y).Float()
	for i := range cx {
		if math.IsNaN(cx[i]) || math.IsNaN(cy[i]) {
			continue
		}
		xs = append(xs, cx[i])
		ys = append(ys, cy[i])
	}
	return xs, ys
}
