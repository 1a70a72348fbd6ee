// Package loadtest turns load-test tool exports into timing charts.
package loadtest

import (
	"fmt"
	"math"
	"time"

	"github.com/KaramelBytes/chartloom-cli/internal/record"
	"github.com/KaramelBytes/chartloom-cli/internal/stats"
)

const (
	FieldTimestamp = "timeStamp"
	FieldElapsed   = "elapsed"
	FieldLatency   = "Latency"
	FieldConnect   = "Connect"
)

// Run is one load-test export with the label shown on its chart panel.
type Run struct {
	Label string
	Data  *record.Dataset
	// Connect includes the run in the connect-time chart.
	Connect bool
}

// Panel is one chart column: a time series with a caption.
type Panel struct {
	Title   string
	Caption string
	Unit    string
	Times   []time.Time
	Values  []float64
	YMin    float64
	YMax    float64
}

// BucketTime maps a millisecond timestamp onto its 100ms bucket.
func BucketTime(ms float64) time.Time {
	return time.UnixMilli(int64(math.Floor(ms/100)) * 100).UTC()
}

// Points pairs bucketed timestamps with field values. Records missing either
// column, or holding a Null for it, are left out.
func Points(ds *record.Dataset, field string) ([]time.Time, []float64) {
	var ts []time.Time
	var ys []float64
	for _, rec := range ds.Records {
		t, ok := rec.Float(FieldTimestamp)
		if !ok {
			continue
		}
		y, ok := rec.Float(field)
		if !ok {
			continue
		}
		ts = append(ts, BucketTime(t))
		ys = append(ys, y)
	}
	return ts, ys
}

// TimingPanel plots request elapsed time for a run.
func TimingPanel(run Run) Panel {
	ts, ys := Points(run.Data, FieldElapsed)
	s := stats.Summarize(ys)
	return Panel{
		Title: run.Label,
		Caption: fmt.Sprintf("SD: %d | mean: %dms | Test Duration: %.2fs",
			int(s.StdDev), int(s.Mean), stats.Duration(run.Data, FieldTimestamp)),
		Unit:   "ms",
		Times:  ts,
		Values: ys,
		YMin:   0,
		YMax:   17500,
	}
}

// ConnectPanel plots connection setup time for a run.
func ConnectPanel(run Run) Panel {
	ts, ys := Points(run.Data, FieldConnect)
	s := stats.Summarize(ys)
	return Panel{
		Title:   run.Label,
		Caption: fmt.Sprintf("SD: %.2f | mean: %.2fms | mode: %.2fms", s.StdDev, s.Mean, s.Mode),
		Unit:    "ms",
		Times:   ts,
		Values:  ys,
		YMin:    0,
		YMax:    100,
	}
}
