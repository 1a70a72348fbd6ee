package processors

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/chartloom-cli/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cpus = `Product_Collection,Vertical_Segment,Processor_Number,Status,Launch_Date,nb_of_Cores,nb_of_Threads,Processor_Base_Frequency,Max_Turbo_Frequency,Max_Memory_Bandwidth
Core i7,Desktop,i7-7700K,Launched,Q1'17,4,8,4.20 GHz,4.50 GHz,35.8 GB/s
Core i9,Desktop,i9-9900K,Launched,Q4'18,8,16,3.60 GHz,5.00 GHz,41.6 GB/s
Pentium,Desktop,P166,End of Life,Q1'96,1,,166 MHz,,
Core i5,Mobile,i5-8250U,Launched,Q3'17,4,8,1.60 GHz,3.40 GHz,37.5 GB/s
Core 2,Desktop,E8400,End of Life,unknown,2,2,3.00 GHz,,
`

func loadCPUs(t *testing.T) *record.Dataset {
	t.Helper()
	ds, err := record.Load(strings.NewReader(cpus), record.IntelCPUProfile())
	require.NoError(t, err)
	require.Equal(t, 4, ds.Len())
	return ds
}

func TestFrame(t *testing.T) {
	df, err := Frame(loadCPUs(t), NumericColumns)
	require.NoError(t, err)
	assert.Equal(t, 4, df.Nrow())
	assert.Equal(t, NumericColumns, df.Names())

	launch := df.Col(ColLaunchDate).Float()
	assert.Equal(t, float64(2017*4+1), launch[0])
	assert.True(t, math.IsNaN(launch[3]))

	threads := df.Col(ColThreads).Float()
	assert.True(t, math.IsNaN(threads[2]))

	xs, ys := pairs(df, ColLaunchDate, ColBandwidth)
	assert.Equal(t, []float64{2017*4 + 1, 2018*4 + 4}, xs)
	assert.Equal(t, []float64{35.8, 41.6}, ys)
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "3.4 GHz", FormatHz(3.4e9))
	assert.Equal(t, "35.8 GB/s", FormatBandwidth(35.8))
	assert.Equal(t, "8", FormatInt(8.9))
	assert.Equal(t, "Q3'19", FormatQuarter(2019*4+3))
}

func TestRenderDataset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderDataset(&buf, loadCPUs(t), ChartOptions{Width: 480, Height: 600}))
	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 480, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
}

func TestRenderEmptyDataset(t *testing.T) {
	ds, err := record.Load(strings.NewReader("Vertical_Segment,Launch_Date\nServer,Q1'10\n"), record.IntelCPUProfile())
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, RenderDataset(&buf, ds, ChartOptions{Width: 300, Height: 300}))
}

func TestRenderUnknownColumn(t *testing.T) {
	df, err := Frame(loadCPUs(t), []string{ColLaunchDate})
	require.NoError(t, err)
	var buf bytes.Buffer
	err = Render(&buf, df, []Panel{{Column: "Cache"}}, ChartOptions{Width: 100, Height: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cache")
}
