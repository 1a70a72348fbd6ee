package record

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads one worksheet of a workbook through the same pass as Load.
// An empty sheet name selects the first sheet.
func LoadXLSX(path, sheet string, p Profile) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", filepath.Base(path))
	}
	target := ""
	if sheet == "" {
		target = sheets[0]
	} else {
		for _, s := range sheets {
			if strings.EqualFold(s, sheet) {
				target = s
				break
			}
		}
	}
	if target == "" {
		return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
			sheet, filepath.Base(path), strings.Join(sheets, ", "))
	}

	rows, err := f.Rows(target)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", target, err)
	}
	defer rows.Close()

	ds := &Dataset{Name: filepath.Base(path)}
	var b *builder
	for line := 0; rows.Next(); line++ {
		cols, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		// blank rows are skipped, as encoding/csv does
		if len(cols) == 0 {
			continue
		}
		if b == nil {
			if b, err = newBuilder(cols, p); err != nil {
				return nil, err
			}
			continue
		}
		// Columns drops trailing empty cells; a sheet row spans the whole header
		for len(cols) < len(b.header) {
			cols = append(cols, "")
		}
		b.add(cols)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", target, err)
	}
	if b != nil {
		ds = b.ds
		ds.Name = filepath.Base(path)
	}
	return ds, nil
}
