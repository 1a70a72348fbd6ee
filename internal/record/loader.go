package record

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// builder zips raw rows against a header and applies the profile.
type builder struct {
	header []string
	rules  []Rule
	keep   func(row []string) bool
	ds     *Dataset
}

func newBuilder(header []string, p Profile) (*builder, error) {
	h := make([]string, len(header))
	copy(h, header)
	if len(h) > 0 {
		h[0] = strings.TrimPrefix(h[0], "\ufeff")
	}
	rules := make([]Rule, len(h))
	for i, name := range h {
		rule, err := p.Rules[name].Rule()
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		rules[i] = rule
	}
	b := &builder{header: h, rules: rules, keep: compileFilter(h, p.Filter), ds: &Dataset{Header: h}}
	return b, nil
}

// add appends one data row. Cells beyond the header are ignored and headers
// beyond the row are left absent.
func (b *builder) add(row []string) {
	if b.keep != nil && !b.keep(row) {
		b.ds.Skipped++
		return
	}
	n := min(len(row), len(b.header))
	rec := newRecord(n)
	for i := 0; i < n; i++ {
		rec.set(b.header[i], b.rules[i](row[i]))
	}
	b.ds.Records = append(b.ds.Records, rec)
}

func compileFilter(header []string, f *Filter) func([]string) bool {
	if f == nil {
		return nil
	}
	index := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		return -1
	}
	col := index(f.Column)
	req := make([]int, len(f.Require))
	for i, name := range f.Require {
		req[i] = index(name)
	}
	return func(row []string) bool {
		if col < 0 || col >= len(row) || row[col] != f.Equals {
			return false
		}
		for _, idx := range req {
			if idx < 0 || idx >= len(row) {
				return false
			}
		}
		return true
	}
}

// Load reads a CSV stream whose first row is the header and returns the
// normalized Dataset. Only read errors are returned; bad cells become Null.
func Load(r io.Reader, p Profile) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if p.Delimiter != 0 {
		cr.Comma = p.Delimiter
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Dataset{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	b, err := newBuilder(header, p)
	if err != nil {
		return nil, err
	}
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		b.add(row)
	}
	return b.ds, nil
}

// LoadFile opens path and loads it with Load. A .tsv extension selects tab
// as delimiter unless the profile sets one.
func LoadFile(path string, p Profile) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	if p.Delimiter == 0 {
		p.Delimiter = sniffDelimiter(path)
	}
	ds, err := Load(f, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	ds.Name = filepath.Base(path)
	return ds, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
