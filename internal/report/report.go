// Package report aggregates failure labels into per-field counters and
// renders them as a plain-text summary.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/aanand-mishra/userinfo-validator/internal/types"
)

// FieldCount is the number of invalid records blamed on one field.
type FieldCount struct {
	Field types.FieldName
	Count int
}

// Summary holds the total number of invalid records and a zero-filled
// counter for every field, in types.FieldOrder.
type Summary struct {
	Total  int
	Counts []FieldCount
}

// Summarize counts failure labels. Each label is one invalid record, so
// Total always equals the sum of Counts.
func Summarize(failures []types.FieldName) Summary {
	s := Summary{Counts: make([]FieldCount, len(types.FieldOrder))}
	index := make(map[types.FieldName]int, len(types.FieldOrder))
	for i, field := range types.FieldOrder {
		s.Counts[i] = FieldCount{Field: field}
		index[field] = i
	}

	for _, f := range failures {
		s.Total++
		if i, ok := index[f]; ok {
			s.Counts[i].Count++
		}
	}
	return s
}

// Count returns the counter for field.
func (s Summary) Count(field types.FieldName) int {
	for _, c := range s.Counts {
		if c.Field == field {
			return c.Count
		}
	}
	return 0
}

// WriteText renders the summary: a total line, then one tab-separated
// "field count" line per field.
func (s Summary) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Invalid records: %d\n", s.Total); err != nil {
		return fmt.Errorf("report.WriteText: %w", err)
	}
	for _, c := range s.Counts {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", c.Field, c.Count); err != nil {
			return fmt.Errorf("report.WriteText: %w", err)
		}
	}
	return nil
}

// WriteFile writes the summary to path, or to stdout when path is empty.
func WriteFile(path string, s Summary) (err error) {
	if path == "" {
		return s.WriteText(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report.WriteFile: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("report.WriteFile: close %s: %w", path, cerr)
		}
	}()

	return s.WriteText(f)
}
