package processors

import (
	"fmt"
	"image/color"
	"io"

	"github.com/KaramelBytes/chartloom-cli/internal/record"
	"github.com/KaramelBytes/chartloom-cli/internal/stats"
	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Panel is one stacked chart of a column against launch date.
type Panel struct {
	Column string
	YLabel string
	Format func(float64) string
	// YMin/YMax fix the y range when YMax > YMin.
	YMin, YMax float64
}

// DefaultPanels are base clock, memory bandwidth and core count, top to bottom.
func DefaultPanels() []Panel {
	return []Panel{
		{Column: ColBaseFrequency, YLabel: "Base Clock Speed", Format: FormatHz},
		{Column: ColBandwidth, YLabel: "Memory Bandwidth", Format: FormatBandwidth},
		{Column: ColCores, YLabel: "Core Count", Format: FormatInt, YMin: 0, YMax: 20},
	}
}

func FormatHz(v float64) string        { return fmt.Sprintf("%.1f GHz", v/1e9) }
func FormatBandwidth(v float64) string { return fmt.Sprintf("%.1f GB/s", v) }
func FormatInt(v float64) string       { return fmt.Sprintf("%d", int64(v)) }
func FormatQuarter(v float64) string   { return record.FormatQuarter(int64(v)) }

// ChartOptions sizes the whole figure in pixels.
type ChartOptions struct {
	Width  int
	Height int
}

func DefaultChartOptions() ChartOptions {
	return ChartOptions{Width: 1400, Height: 1050}
}

// labelTicks keeps the default tick placement and relabels major ticks.
type labelTicks struct {
	format func(float64) string
}

func (t labelTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = t.format(ticks[i].Value)
		}
	}
	return ticks
}

func newPlot(df dataframe.DataFrame, p Panel) (*plot.Plot, error) {
	pl := plot.New()
	pl.X.Label.Text = "Launch Date"
	pl.Y.Label.Text = p.YLabel
	pl.X.Tick.Marker = labelTicks{format: FormatQuarter}
	if p.Format != nil {
		pl.Y.Tick.Marker = labelTicks{format: p.Format}
	}
	pl.Add(plotter.NewGrid())

	xs, ys := pairs(df, ColLaunchDate, p.Column)
	if len(xs) > 0 {
		pts := make(plotter.XYs, len(xs))
		for i := range xs {
			pts[i].X, pts[i].Y = xs[i], ys[i]
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("scatter %s: %w", p.Column, err)
		}
		sc.GlyphStyle.Color = color.RGBA{R: 60, G: 110, B: 170, A: 160}
		sc.GlyphStyle.Radius = vg.Points(2)
		pl.Add(sc)

		if fit, ok := stats.Regression(xs, ys); ok {
			line := plotter.NewFunction(fit.At)
			line.Color = color.RGBA{R: 200, G: 60, B: 40, A: 255}
			line.Width = vg.Points(1.5)
			pl.Add(line)
		}
	} else {
		pl.X.Min, pl.X.Max = 0, 1
		pl.Y.Min, pl.Y.Max = 0, 1
	}
	if p.YMax > p.YMin {
		pl.Y.Min, pl.Y.Max = p.YMin, p.YMax
	}
	return pl, nil
}

// Render stacks one panel per entry of panels and writes a PNG.
func Render(w io.Writer, df dataframe.DataFrame, panels []Panel, opt ChartOptions) error {
	if len(panels) == 0 {
		panels = DefaultPanels()
	}
	if opt.Width <= 0 || opt.Height <= 0 {
		opt = DefaultChartOptions()
	}
	names := map[string]bool{}
	for _, n := range df.Names() {
		names[n] = true
	}
	if !names[ColLaunchDate] {
		return fmt.Errorf("frame has no %s column", ColLaunchDate)
	}
	grid := make([][]*plot.Plot, len(panels))
	for i, p := range panels {
		if !names[p.Column] {
			return fmt.Errorf("frame has no %s column", p.Column)
		}
		pl, err := newPlot(df, p)
		if err != nil {
			return err
		}
		grid[i] = []*plot.Plot{pl}
	}

	img := vgimg.New(pixels(opt.Width), pixels(opt.Height))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(panels),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      4 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	canvases := plot.Align(grid, tiles, dc)
	for i := range grid {
		grid[i][0].Draw(canvases[i][0])
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// RenderDataset builds the frame and renders the default panels.
func RenderDataset(w io.Writer, ds *record.Dataset, opt ChartOptions) error {
	df, err := Frame(ds, NumericColumns)
	if err != nil {
		return err
	}
	return Render(w, df, DefaultPanels(), opt)
}

// pixels converts a pixel count at vgimg's default 96 DPI to a vg length.
func pixels(px int) vg.Length {
	return vg.Length(px) * vg.Inch / 96
}
