// Package export writes normalized datasets for use outside chartloom.
package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/record"
	"github.com/KaramelBytes/chartloom-cli/internal/utils"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/compress"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
)

// Format represents the supported export formats
type Format int

const (
	FormatParquet Format = iota
	FormatJSON
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet", ".pq":
		return FormatParquet, nil
	case ".json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

// WriteFile exports ds to path in the format implied by its extension.
func WriteFile(path string, ds *record.Dataset) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	f, err := utils.CreateFile(path)
	if err != nil {
		return err
	}
	if format == FormatJSON {
		err = WriteJSON(f, ds)
	} else {
		err = WriteParquet(f, ds)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteJSON writes the records as a JSON array. Absent columns are omitted
// from each object and Null cells are written as null.
func WriteJSON(w io.Writer, ds *record.Dataset) error {
	records := ds.Records
	if records == nil {
		records = []record.Record{}
	}
	b, err := utils.PrettyJSON(records)
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// Schema infers one nullable Arrow field per distinct header column: int64
// when every value is an integer, float64 when all are numeric, utf8 otherwise.
func Schema(ds *record.Dataset) *arrow.Schema {
	seen := map[string]bool{}
	var fields []arrow.Field
	for _, name := range ds.Header {
		if seen[name] {
			continue
		}
		seen[name] = true
		var ints, floats, strs int
		for _, rec := range ds.Records {
			v, ok := rec.Get(name)
			if !ok {
				continue
			}
			switch v.Kind() {
			case record.Int:
				ints++
			case record.Float:
				floats++
			case record.String:
				strs++
			}
		}
		var dt arrow.DataType
		switch {
		case strs > 0 || ints+floats == 0:
			dt = arrow.BinaryTypes.String
		case floats > 0:
			dt = arrow.PrimitiveTypes.Float64
		default:
			dt = arrow.PrimitiveTypes.Int64
		}
		fields = append(fields, arrow.Field{Name: name, Type: dt, Nullable: true})
	}
	return arrow.NewSchema(fields, nil)
}

// WriteParquet exports ds as a single-row-group Parquet file. Parquet has no
// notion of an absent cell, so absent and Null both become null.
func WriteParquet(w io.Writer, ds *record.Dataset) error {
	schema := Schema(ds)
	b := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer b.Release()

	for _, rec := range ds.Records {
		for i, field := range schema.Fields() {
			v, ok := rec.Get(field.Name)
			fb := b.Field(i)
			if !ok || v.IsNull() {
				fb.AppendNull()
				continue
			}
			switch fb := fb.(type) {
			case *array.Int64Builder:
				n, _ := v.Int64()
				fb.Append(n)
			case *array.Float64Builder:
				x, _ := v.Float64()
				fb.Append(x)
			case *array.StringBuilder:
				fb.Append(v.String())
			}
		}
	}
	batch := b.NewRecord()
	defer batch.Release()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())
	writer, err := pqarrow.NewFileWriter(schema, w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	if err := writer.Write(batch); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
