package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/frankban/quicktest"
	"golang.org/x/text/encoding/charmap"
)

func writePSE(t *testing.T, content string) string {
	t.Helper()
	// Raw exports are Windows-1250; encode test fixtures the same way.
	encoded, err := charmap.Windows1250.NewEncoder().String(content)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "PSE.csv")
	if err := os.WriteFile(path, []byte(encoded), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNormalizePSE_DerivesDatetime(t *testing.T) {
	c := quicktest.New(t)
	path := writePSE(t, "Data;Godzina;Moc\n2022-01-01;1;17000\n2022-01-01;13;18500\n")

	table, err := NormalizePSE(path, PSEOptions{})
	c.Assert(err, quicktest.IsNil)
	c.Assert(table.Rows, quicktest.HasLen, 2)
	c.Assert(table.Rows[0][DatetimeColumn], quicktest.Equals, "2022-01-01 01:00")
	c.Assert(table.Rows[1][DatetimeColumn], quicktest.Equals, "2022-01-01 13:00")
	c.Assert(table.Rows[0]["Moc"], quicktest.Equals, "17000")
	c.Assert(table.Columns, quicktest.DeepEquals, []string{"datetime", "Data", "Godzina", "Moc"})
}

func TestNormalizePSE_Hour24StaysOnSameDate(t *testing.T) {
	c := quicktest.New(t)
	path := writePSE(t, "Data;Godzina\n2022-01-01;24\n")

	table, err := NormalizePSE(path, PSEOptions{})
	c.Assert(err, quicktest.IsNil)
	c.Assert(table.Rows, quicktest.HasLen, 1)
	// Source convention: 24:00 is rewritten to 00:00 without advancing the day.
	c.Assert(table.Rows[0][DatetimeColumn], quicktest.Equals, "2022-01-01 00:00")
}

func TestNormalizePSE_Hour24Rollover(t *testing.T) {
	c := quicktest.New(t)
	path := writePSE(t, "Data;Godzina\n2022-01-01;24\n")

	table, err := NormalizePSE(path, PSEOptions{RolloverHour24: true})
	c.Assert(err, quicktest.IsNil)
	c.Assert(table.Rows[0][DatetimeColumn], quicktest.Equals, "2022-01-02 00:00")
}

func TestNormalizePSE_DecodesWindows1250(t *testing.T) {
	c := quicktest.New(t)
	path := writePSE(t, "Data;Godzina;Krajowe zapotrzebowanie na moc łącznie\n2022-01-01;5;20 000\n")

	table, err := NormalizePSE(path, PSEOptions{})
	c.Assert(err, quicktest.IsNil)
	c.Assert(table.HasColumn("Krajowe zapotrzebowanie na moc łącznie"), quicktest.IsTrue)
	c.Assert(table.Rows[0]["Krajowe zapotrzebowanie na moc łącznie"], quicktest.Equals, "20 000")
}

func TestNormalizePSE_MissingRequiredColumns(t *testing.T) {
	c := quicktest.New(t)
	path := writePSE(t, "Date;Hour\n2022-01-01;1\n")

	_, err := NormalizePSE(path, PSEOptions{})
	var parseErr *ParseError
	c.Assert(err, quicktest.ErrorAs, &parseErr)
	c.Assert(parseErr.Source, quicktest.Equals, "pse")
}

func TestNormalizePSE_UnparseableHour(t *testing.T) {
	c := quicktest.New(t)
	path := writePSE(t, "Data;Godzina\n2022-01-01;abc\n")

	_, err := NormalizePSE(path, PSEOptions{})
	var parseErr *ParseError
	c.Assert(err, quicktest.ErrorAs, &parseErr)
}

func TestNormalizePSE_MissingFile(t *testing.T) {
	c := quicktest.New(t)
	_, err := NormalizePSE(filepath.Join(t.TempDir(), "nope.csv"), PSEOptions{})
	c.Assert(os.IsNotExist(err), quicktest.IsTrue)
}
