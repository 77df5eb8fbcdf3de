package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// WriteCSV persists a table as a comma-separated UTF-8 side file. A leading
// unnamed index column numbers the rows, matching the artifact shape the
// report has always had; ReadCSV keeps it, and the joiner drops it.
func WriteCSV(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append([]string{""}, t.Columns...)
	if err := w.Write(header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		rec := make([]string, 0, len(t.Columns)+1)
		rec = append(rec, strconv.Itoa(i))
		for _, c := range t.Columns {
			rec = append(rec, row[c])
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}

// ReadCSV loads a side file written by WriteCSV back into a table,
// index column included.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, parseErrorf("csv", "read header of %s: %v", path, err)
	}

	t := &Table{Columns: header}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseErrorf("csv", "read %s: %v", path, err)
		}
		row := Row{}
		for i, cell := range rec {
			if i < len(header) {
				row[header[i]] = cell
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
