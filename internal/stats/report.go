package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/record"
)

// Options controls how much detail Describe keeps.
type Options struct {
	// SampleRows determines how many example rows to include in the report.
	SampleRows int
	// TopValues caps the categorical values listed per text column.
	TopValues int
}

func DefaultOptions() Options {
	return Options{SampleRows: 5, TopValues: 8}
}

// Report is a markdown-friendly description of a normalized Dataset.
type Report struct {
	Name     string
	Profile  string
	Rows     int
	Skipped  int
	Cols     []ColumnSummary
	Samples  []record.Record
	Warnings []string
}

// ColumnSummary captures presence and statistics per header column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|text|mixed|empty
	Present int
	Absent  int
	Null    int
	Stats   Summary
	// Text columns
	TopValues []CategoryCount
	Unique    int
}

type CategoryCount struct {
	Value string
	Count int
}

// Describe summarizes every header column of ds.
func Describe(ds *record.Dataset, profile string, opt Options) *Report {
	if opt.SampleRows < 0 {
		opt.SampleRows = 0
	}
	if opt.TopValues <= 0 {
		opt.TopValues = 8
	}
	rep := &Report{Name: ds.Name, Profile: profile, Rows: ds.Len(), Skipped: ds.Skipped}
	for _, name := range ds.Header {
		rep.Cols = append(rep.Cols, describeColumn(ds, name, opt))
	}
	for i := 0; i < len(ds.Records) && i < opt.SampleRows; i++ {
		rep.Samples = append(rep.Samples, ds.Records[i])
	}
	for _, c := range rep.Cols {
		if c.Present > 0 && c.Null == c.Present {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("column %s: every present cell failed coercion", c.Name))
		}
	}
	if ds.Skipped > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("%d rows excluded by profile filter", ds.Skipped))
	}
	return rep
}

func describeColumn(ds *record.Dataset, name string, opt Options) ColumnSummary {
	s := ColumnSummary{Name: name}
	var nums []float64
	cats := map[string]int{}
	var numCnt, txtCnt int
	for _, rec := range ds.Records {
		v, ok := rec.Get(name)
		if !ok {
			s.Absent++
			continue
		}
		s.Present++
		switch v.Kind() {
		case record.Null:
			s.Null++
		case record.Float, record.Int:
			f, _ := v.Float64()
			nums = append(nums, f)
			numCnt++
		case record.String:
			str, _ := v.Str()
			if strings.TrimSpace(str) == "" {
				continue
			}
			txtCnt++
			if len(cats) <= 10000 {
				cats[str]++
			}
		}
	}
	switch {
	case numCnt > 0 && txtCnt > 0:
		s.Kind = "mixed"
	case numCnt > 0:
		s.Kind = "numeric"
	case txtCnt > 0:
		s.Kind = "text"
	default:
		s.Kind = "empty"
	}
	if numCnt > 0 {
		s.Stats = Summarize(nums)
	}
	if txtCnt > 0 {
		tops := make([]CategoryCount, 0, len(cats))
		for k, v := range cats {
			tops = append(tops, CategoryCount{Value: k, Count: v})
		}
		sort.Slice(tops, func(i, j int) bool {
			if tops[i].Count == tops[j].Count {
				return tops[i].Value < tops[j].Value
			}
			return tops[i].Count > tops[j].Count
		})
		if len(tops) > opt.TopValues {
			tops = tops[:opt.TopValues]
		}
		s.TopValues = tops
		s.Unique = len(cats)
	}
	return s
}

// Markdown renders a compact report suitable for standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.Profile != "" {
		b.WriteString(fmt.Sprintf("Profile: %s\n", r.Profile))
	}
	if r.Skipped > 0 {
		b.WriteString(fmt.Sprintf("Rows: %d (filtered %d)\n", r.Rows, r.Skipped))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	}
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		b.WriteString(fmt.Sprintf("- %s: %s (present %d, absent %d, null %d)", safeName(c.Name), c.Kind, c.Present, c.Absent, c.Null))
		if c.Kind == "numeric" || c.Kind == "mixed" {
			st := c.Stats
			b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g, std %.4g, mode %.4g", st.Min, st.Max, st.Mean, st.StdDev, st.Mode))
		}
		if len(c.TopValues) > 0 {
			b.WriteString(" — top: ")
			for i, kv := range c.TopValues {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
			}
			if c.Unique > len(c.TopValues) {
				b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
			}
		}
		b.WriteString("\n")
	}

	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, c := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c.Name))
		}
		b.WriteString(" |\n| ")
		for i := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, rec := range r.Samples {
			b.WriteString("| ")
			for i, c := range r.Cols {
				if i > 0 {
					b.WriteString(" | ")
				}
				v, ok := rec.Get(c.Name)
				var val string
				switch {
				case !ok:
					val = ""
				case v.IsNull():
					val = "∅"
				default:
					val = v.String()
				}
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
