package record

import (
	"bytes"
	"encoding/json"

	"github.com/spf13/cast"
)

// Record is one normalized data row. A column missing from the source row is
// absent; a column whose cell failed coercion is present with a Null value.
type Record struct {
	keys   []string
	values map[string]Value
}

func newRecord(capacity int) Record {
	return Record{keys: make([]string, 0, capacity), values: make(map[string]Value, capacity)}
}

func (r *Record) set(name string, v Value) {
	if _, ok := r.values[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.values[name] = v
}

// Get returns the value for name and whether the column was present.
func (r Record) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Len is the number of populated columns.
func (r Record) Len() int { return len(r.keys) }

// Keys returns the populated column names in header order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Float returns a numeric view of the column. Absent and Null cells, and
// strings that are not numeric, report false.
func (r Record) Float(name string) (float64, bool) {
	v, ok := r.values[name]
	if !ok || v.IsNull() {
		return 0, false
	}
	f, err := cast.ToFloat64E(v.Interface())
	if err != nil {
		return 0, false
	}
	return f, true
}

// MarshalJSON writes present columns in header order.
func (r Record) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		vb, err := r.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// Dataset is the ordered result of a single parse pass.
type Dataset struct {
	Name    string
	Header  []string
	Records []Record
	// Skipped counts rows dropped by the profile filter.
	Skipped int
}

func (d *Dataset) Len() int { return len(d.Records) }

// Column extracts a numeric column, using def where the cell is absent or
// could not be read as a number.
func (d *Dataset) Column(name string, def float64) []float64 {
	out := make([]float64, len(d.Records))
	for i, rec := range d.Records {
		if f, ok := rec.Float(name); ok {
			out[i] = f
		} else {
			out[i] = def
		}
	}
	return out
}

// Values returns only the numeric cells of a column, skipping the rest.
func (d *Dataset) Values(name string) []float64 {
	var out []float64
	for _, rec := range d.Records {
		if f, ok := rec.Float(name); ok {
			out = append(out, f)
		}
	}
	return out
}

// Counts reports how many records have the column present, absent, or Null.
func (d *Dataset) Counts(name string) (present, absent, null int) {
	for _, rec := range d.Records {
		v, ok := rec.Get(name)
		switch {
		case !ok:
			absent++
		case v.IsNull():
			present++
			null++
		default:
			present++
		}
	}
	return present, absent, null
}
