package loadtest

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

// ErrNoRuns is returned when a chart has no panels to draw.
var ErrNoRuns = errors.New("no runs to plot")

// ChartOptions sizes each panel in pixels.
type ChartOptions struct {
	PanelWidth  int
	PanelHeight int
}

func DefaultChartOptions() ChartOptions {
	return ChartOptions{PanelWidth: 700, PanelHeight: 500}
}

// RenderRequestTimings draws one elapsed-time panel per run, side by side.
func RenderRequestTimings(w io.Writer, runs []Run, opt ChartOptions) error {
	panels := make([]Panel, 0, len(runs))
	for _, r := range runs {
		panels = append(panels, TimingPanel(r))
	}
	return Render(w, panels, opt)
}

// RenderConnectTimings draws a connect-time panel for each run marked Connect.
func RenderConnectTimings(w io.Writer, runs []Run, opt ChartOptions) error {
	var panels []Panel
	for _, r := range runs {
		if r.Connect {
			panels = append(panels, ConnectPanel(r))
		}
	}
	return Render(w, panels, opt)
}

// Render composes the panels left to right into a single PNG.
func Render(w io.Writer, panels []Panel, opt ChartOptions) error {
	if len(panels) == 0 {
		return ErrNoRuns
	}
	if opt.PanelWidth <= 0 || opt.PanelHeight <= 0 {
		opt = DefaultChartOptions()
	}
	canvas := image.NewRGBA(image.Rect(0, 0, opt.PanelWidth*len(panels), opt.PanelHeight))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	for i, p := range panels {
		img, err := renderPanel(p, opt)
		if err != nil {
			return fmt.Errorf("render panel %q: %w", p.Title, err)
		}
		dst := image.Rect(i*opt.PanelWidth, 0, (i+1)*opt.PanelWidth, opt.PanelHeight)
		draw.Draw(canvas, dst, img, img.Bounds().Min, draw.Over)
	}
	if err := png.Encode(w, canvas); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func renderPanel(p Panel, opt ChartOptions) (image.Image, error) {
	if len(p.Times) == 0 {
		return blank(opt.PanelWidth, opt.PanelHeight), nil
	}
	times, ys := padSingleInstant(p.Times, p.Values)
	ch := chart.Chart{
		Title:      p.Title,
		Width:      opt.PanelWidth,
		Height:     opt.PanelHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           p.Caption,
			ValueFormatter: chart.TimeValueFormatterWithFormat("15:04:05"),
		},
		YAxis: chart.YAxis{
			Name:  p.Unit,
			Range: &chart.ContinuousRange{Min: p.YMin, Max: p.YMax},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    p.Title,
				XValues: times,
				YValues: ys,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 1},
			},
		},
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// padSingleInstant widens a series whose samples share one timestamp; go-chart
// rejects a zero-width x range.
func padSingleInstant(ts []time.Time, ys []float64) ([]time.Time, []float64) {
	first, last := ts[0], ts[0]
	for _, t := range ts[1:] {
		if t.Before(first) {
			first = t
		}
		if t.After(last) {
			last = t
		}
	}
	if !first.Equal(last) {
		return ts, ys
	}
	outT := append(append([]time.Time{}, ts...), last.Add(time.Second))
	outY := append(append([]float64{}, ys...), ys[len(ys)-1])
	return outT, outY
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}
