package report

import (
	"fmt"
	"time"
)

// DatetimeColumn is the canonical key column every normalized table carries.
// Values are local timestamps rendered as "YYYY-MM-DD HH:MM" with no zone.
const DatetimeColumn = "datetime"

// DatetimeLayout is the canonical rendering of the key column.
const DatetimeLayout = "2006-01-02 15:04"

// Row maps column names to scalar cell values. Cells are kept as strings;
// numeric literals from the sources pass through unmodified.
type Row map[string]string

// Table is an ordered sequence of rows with a fixed column order.
// Duplicate datetime keys are legal and are not deduplicated anywhere:
// sources are trusted to deliver one record per hour, and when they don't,
// joining multiplies the duplicates (a documented property of the report,
// not a defect this layer corrects).
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// coerceLayouts are the timestamp shapes the joiner knows how to re-render
// into DatetimeLayout. Keys in other shapes join on their raw text.
var coerceLayouts = []string{
	DatetimeLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// CoerceDatetime canonicalizes a datetime cell so both join sides agree on
// precision and separator. Unparseable values are returned as-is.
func CoerceDatetime(v string) string {
	for _, layout := range coerceLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts.Format(DatetimeLayout)
		}
	}
	return v
}

// ParseError reports a source document that does not match the expected
// shape. It aborts the run without being swallowed at the driver boundary:
// malformed upstream data needs eyes on it, not a quiet log line.
type ParseError struct {
	Source string // "jao" or "pse"
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s parse: %s", e.Source, e.Detail)
}

func parseErrorf(source, format string, args ...any) *ParseError {
	return &ParseError{Source: source, Detail: fmt.Sprintf(format, args...)}
}
