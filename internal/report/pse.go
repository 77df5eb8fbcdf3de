package report

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const (
	pseDateColumn = "Data"
	pseHourColumn = "Godzina"
)

// PSEOptions controls the grid-schedule normalizer.
type PSEOptions struct {
	// RolloverHour24 advances hour 24 to 00:00 of the next day. Off by
	// default: the source convention rewrites "24:00" to "00:00" on the
	// same calendar date, and the report has always been built that way.
	RolloverHour24 bool
}

// NormalizePSE parses a raw PSE CSV export into a table keyed by datetime.
// The export is Windows-1250 encoded with ';' delimiters; decoding happens
// before any field handling, otherwise Polish column names and labels get
// corrupted silently. The key is derived as "<Data> <Godzina zero-padded>:00"
// with the special hour 24 rewritten per PSEOptions.
func NormalizePSE(path string, opts PSEOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.Windows1250.NewDecoder()))
	r.Comma = ';'
	// Exports occasionally carry trailing delimiters; tolerate ragged rows.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, parseErrorf("pse", "read header of %s: %v", path, err)
	}
	dateIdx, hourIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case pseDateColumn:
			dateIdx = i
		case pseHourColumn:
			hourIdx = i
		}
	}
	if dateIdx < 0 || hourIdx < 0 {
		return nil, parseErrorf("pse", "%s: required columns %q and %q not found in header %v",
			path, pseDateColumn, pseHourColumn, header)
	}

	t := &Table{Columns: append([]string{DatetimeColumn}, header...)}
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseErrorf("pse", "read %s line %d: %v", path, line, err)
		}

		if dateIdx >= len(rec) || hourIdx >= len(rec) {
			return nil, parseErrorf("pse", "%s line %d: row has %d fields, need date and hour", path, line, len(rec))
		}
		key, err := pseDatetime(rec[dateIdx], rec[hourIdx], opts)
		if err != nil {
			return nil, parseErrorf("pse", "%s line %d: %v", path, line, err)
		}
		row := Row{DatetimeColumn: key}
		for i, cell := range rec {
			if i < len(header) {
				row[header[i]] = cell
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// pseDatetime derives the canonical key from the date and hour-of-day cells.
// Hours run 1..24 in the source, 24 meaning midnight closing the day. The
// default rewrite keeps 24:00 on the same date, which matches the published
// report even though the instant really belongs to the next day.
func pseDatetime(date, hour string, opts PSEOptions) (string, error) {
	hh := strings.TrimSpace(hour)
	if len(hh) < 2 {
		hh = strings.Repeat("0", 2-len(hh)) + hh
	}
	date = strings.TrimSpace(date)

	if hh == "24" && opts.RolloverHour24 {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return "", err
		}
		return day.AddDate(0, 0, 1).Format(DatetimeLayout), nil
	}

	derived := strings.Replace(date+" "+hh+":00", "24:00", "00:00", 1)
	ts, err := time.Parse(DatetimeLayout, derived)
	if err != nil {
		return "", err
	}
	return ts.Format(DatetimeLayout), nil
}
