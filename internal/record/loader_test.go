package record

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jmeterCSV = `timeStamp,elapsed,label,responseCode,Latency,IdleTime,Connect
1563792000100,120,GET /,200,110,0,3
1563792000250,98,GET /,200,90,0,2
1563792000400,bad,GET /,500
1563792000550,101,GET /,200,95,0,4,extra,cells
`

func TestLoad_HeaderOnly(t *testing.T) {
	ds, err := Load(strings.NewReader("timeStamp,elapsed\n"), LoadTestProfile())
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Equal(t, []string{"timeStamp", "elapsed"}, ds.Header)
}

func TestLoad_EmptyStream(t *testing.T) {
	ds, err := Load(strings.NewReader(""), LoadTestProfile())
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Empty(t, ds.Header)
}

func TestLoad_RaggedRows(t *testing.T) {
	ds, err := Load(strings.NewReader(jmeterCSV), LoadTestProfile())
	require.NoError(t, err)
	require.Equal(t, 4, ds.Len())

	first := ds.Records[0]
	assert.Equal(t, ds.Header, first.Keys())
	v, ok := first.Get("elapsed")
	require.True(t, ok)
	assert.Equal(t, FloatValue(120), v)
	v, _ = first.Get("label")
	assert.Equal(t, StringValue("GET /"), v)

	// short row: trailing headers are absent, bad cell is Null
	short := ds.Records[2]
	assert.Equal(t, []string{"timeStamp", "elapsed", "label", "responseCode"}, short.Keys())
	assert.False(t, short.Has("Latency"))
	v, ok = short.Get("elapsed")
	require.True(t, ok)
	assert.True(t, v.IsNull())

	// long row: extra cells are ignored
	long := ds.Records[3]
	assert.LessOrEqual(t, long.Len(), len(ds.Header))
	assert.Equal(t, ds.Header, long.Keys())
}

func TestLoad_NullAndAbsentAreDistinct(t *testing.T) {
	ds, err := Load(strings.NewReader(jmeterCSV), LoadTestProfile())
	require.NoError(t, err)

	present, absent, null := ds.Counts("elapsed")
	assert.Equal(t, 4, present)
	assert.Equal(t, 0, absent)
	assert.Equal(t, 1, null)

	present, absent, null = ds.Counts("Connect")
	assert.Equal(t, 3, present)
	assert.Equal(t, 1, absent)
	assert.Equal(t, 0, null)

	assert.Equal(t, []float64{110, 90, 0, 95}, ds.Column("Latency", 0))
	assert.Equal(t, []float64{3, 2, 10000, 4}, ds.Column("Connect", 10000))
	assert.Equal(t, []float64{120, 98, 101}, ds.Values("elapsed"))
}

func TestLoad_Idempotent(t *testing.T) {
	a, err := Load(strings.NewReader(jmeterCSV), LoadTestProfile())
	require.NoError(t, err)
	b, err := Load(strings.NewReader(jmeterCSV), LoadTestProfile())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

const intelCSV = `Product_Collection,Vertical_Segment,Processor_Number,Status,Launch_Date,nb_of_Cores,nb_of_Threads,Processor_Base_Frequency,Max_Turbo_Frequency,Max_Memory_Bandwidth
7th Generation Intel Core i7 Processors,Desktop,i7-7700K,Launched,Q1'17,4,8,4.20 GHz,4.50 GHz,35.8 GB/s
8th Generation Intel Core i5 Processors,Mobile,i5-8250U,Launched,Q3'17,4,8,1.60 GHz,3.40 GHz,37.5 GB/s
Legacy Intel Pentium Processor,Desktop,P166,End of Life,Q1'96,1,,166 MHz,,
Intel Celeron Processor,Desktop,G1820
Intel Xeon Processor,Server,E5-2699,Launched,Q3'14,18,36,2.30 GHz,3.60 GHz,68 GB/s
`

func TestLoad_IntelProfileFilter(t *testing.T) {
	ds, err := Load(strings.NewReader(intelCSV), IntelCPUProfile())
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, 3, ds.Skipped)

	for _, rec := range ds.Records {
		v, _ := rec.Get("Vertical_Segment")
		assert.Equal(t, StringValue("Desktop"), v)
	}

	i7 := ds.Records[0]
	v, _ := i7.Get("Processor_Base_Frequency")
	assert.Equal(t, FloatValue(4.2e9), v)
	v, _ = i7.Get("Launch_Date")
	assert.Equal(t, IntValue(2017*4+1), v)
	v, _ = i7.Get("nb_of_Cores")
	assert.Equal(t, IntValue(4), v)
	v, _ = i7.Get("Max_Memory_Bandwidth")
	assert.Equal(t, FloatValue(35.8), v)

	pentium := ds.Records[1]
	v, _ = pentium.Get("Processor_Base_Frequency")
	assert.Equal(t, FloatValue(1.66e8), v)
	v, _ = pentium.Get("Launch_Date")
	assert.Equal(t, IntValue(1996*4+1), v)
	v, ok := pentium.Get("nb_of_Threads")
	require.True(t, ok)
	assert.True(t, v.IsNull())
	v, _ = pentium.Get("Max_Memory_Bandwidth")
	assert.True(t, v.IsNull())
}

func TestLoad_FilterOnMissingColumnDropsAll(t *testing.T) {
	p := Profile{Name: "x", Filter: &Filter{Column: "segment", Equals: "Desktop"}}
	ds, err := Load(strings.NewReader("a,b\n1,2\n3,4\n"), p)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Equal(t, 2, ds.Skipped)
}

func TestLoad_UnknownRule(t *testing.T) {
	p := Profile{Name: "bad", Rules: map[string]RuleName{"a": "celsius"}}
	_, err := Load(strings.NewReader("a\n1\n"), p)
	require.ErrorIs(t, err, ErrUnknownRule)
}

func TestLoad_ReadErrorReportsRow(t *testing.T) {
	r := io.MultiReader(strings.NewReader("a,b\n1,2\n"), iotest.ErrReader(errors.New("disk gone")))
	_, err := Load(r, LoadTestProfile())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read row 2")
	assert.Contains(t, err.Error(), "disk gone")
}

func TestLoad_BareQuotesTolerated(t *testing.T) {
	ds, err := Load(strings.NewReader("name,size\n15\" panel,3\n"), Profile{})
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	v, _ := ds.Records[0].Get("name")
	assert.Equal(t, StringValue(`15" panel`), v)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "run.tsv")
	require.NoError(t, os.WriteFile(p, []byte("\ufefftimeStamp\telapsed\n1000\t5\n"), 0o644))
	ds, err := LoadFile(p, LoadTestProfile())
	require.NoError(t, err)
	assert.Equal(t, "run.tsv", ds.Name)
	require.Equal(t, 1, ds.Len())
	f, ok := ds.Records[0].Float("timeStamp")
	require.True(t, ok)
	assert.Equal(t, 1000.0, f)

	_, err = LoadFile(filepath.Join(dir, "missing.csv"), LoadTestProfile())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open csv")
}

func TestRecordJSON(t *testing.T) {
	ds, err := Load(strings.NewReader("a,b,c\n1,x\n"), Profile{Rules: map[string]RuleName{"a": RuleInteger, "b": RuleInteger}})
	require.NoError(t, err)
	b, err := ds.Records[0].MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":null}`, string(b))
}

func TestLoad_BlankLinesSkipped(t *testing.T) {
	in := "timeStamp,elapsed\n1563792000100,120\n\n1563792000250,98\n\n"
	ds, err := Load(strings.NewReader(in), LoadTestProfile())
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, 0, ds.Skipped)
	for _, rec := range ds.Records {
		assert.Equal(t, 2, rec.Len())
	}
}
