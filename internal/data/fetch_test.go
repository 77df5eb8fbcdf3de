package data

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/frankban/quicktest"
)

var testWindow = struct{ start, end time.Time }{
	start: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
	end:   time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC),
}

func TestJAOClient_DownloadAuctions(t *testing.T) {
	c := quicktest.New(t)

	var gotAuth string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("AUTH_API_KEY")
		q := r.URL.Query()
		gotQuery = map[string]string{
			"corridor": q.Get("corridor"),
			"fromdate": q.Get("fromdate"),
			"todate":   q.Get("todate"),
			"horizon":  q.Get("horizon"),
		}
		w.Write([]byte(`[{"marketPeriodStart":"2022-01-01T00:00:00","results":[]}]`))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "JAO.json")
	client := NewJAOClient("test_api_key", srv.URL, "", "", nil)
	path, err := client.DownloadAuctions(testWindow.start, testWindow.end, out)
	c.Assert(err, quicktest.IsNil)
	c.Assert(path, quicktest.Equals, out)

	c.Assert(gotAuth, quicktest.Equals, "test_api_key")
	c.Assert(gotQuery, quicktest.DeepEquals, map[string]string{
		"corridor": "PL-UA",
		"fromdate": "2022-01-01-00:00:00",
		"todate":   "2022-01-02-23:59:59",
		"horizon":  "daily",
	})

	raw, err := os.ReadFile(out)
	c.Assert(err, quicktest.IsNil)
	c.Assert(string(raw), quicktest.Equals, `[{"marketPeriodStart":"2022-01-01T00:00:00","results":[]}]`)
}

func TestJAOClient_NonSuccessStatus(t *testing.T) {
	c := quicktest.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found body"))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "JAO.json")
	client := NewJAOClient("test_api_key", srv.URL, "", "", nil)
	_, err := client.DownloadAuctions(testWindow.start, testWindow.end, out)

	var fetchErr *FetchError
	c.Assert(err, quicktest.ErrorAs, &fetchErr)
	c.Assert(fetchErr.StatusCode, quicktest.Equals, http.StatusNotFound)
	c.Assert(fetchErr.Source, quicktest.Equals, "jao")

	// The failed body must never be left on disk posing as an artifact.
	_, err = os.Stat(out)
	c.Assert(os.IsNotExist(err), quicktest.IsTrue)
}

func TestPSEClient_DownloadReport(t *testing.T) {
	c := quicktest.New(t)

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("Data;Godzina\n2022-01-01;1\n"))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "PSE.csv")
	client := NewPSEClient(srv.URL, "", nil)
	path, err := client.DownloadReport(testWindow.start, testWindow.end, out)
	c.Assert(err, quicktest.IsNil)
	c.Assert(path, quicktest.Equals, out)
	c.Assert(gotPath, quicktest.Equals, "/getcsv/-/export/csv/PL_BPKD/data_od/20220101/data_do/20220102")

	raw, err := os.ReadFile(out)
	c.Assert(err, quicktest.IsNil)
	c.Assert(string(raw), quicktest.Equals, "Data;Godzina\n2022-01-01;1\n")
}

func TestPSEClient_NonSuccessStatus(t *testing.T) {
	c := quicktest.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "PSE.csv")
	client := NewPSEClient(srv.URL, "", nil)
	_, err := client.DownloadReport(testWindow.start, testWindow.end, out)

	var fetchErr *FetchError
	c.Assert(err, quicktest.ErrorAs, &fetchErr)
	c.Assert(fetchErr.StatusCode, quicktest.Equals, http.StatusInternalServerError)
	c.Assert(fetchErr.Source, quicktest.Equals, "pse")

	_, err = os.Stat(out)
	c.Assert(os.IsNotExist(err), quicktest.IsTrue)
}
