package data

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// PSEClient downloads the coordination-plan CSV export from the PSE site.
// Reference: https://www.pse.pl/dane-systemowe/plany-pracy-kse
type PSEClient struct {
	BaseURL string
	Report  string
	Client  *http.Client

	log *zap.Logger
}

// NewPSEClient creates a PSE export client. Empty baseURL and report fall
// back to the production site and the PL_BPKD report.
func NewPSEClient(baseURL, report string, log *zap.Logger) *PSEClient {
	if baseURL == "" {
		baseURL = "https://www.pse.pl"
	}
	if report == "" {
		report = "PL_BPKD"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PSEClient{
		BaseURL: baseURL,
		Report:  report,
		Client:  &http.Client{},
		log:     log,
	}
}

// DownloadReport fetches the CSV export for [start, end] and writes the raw
// body to outPath. The export endpoint can take several minutes to respond,
// so no client timeout is set.
func (c *PSEClient) DownloadReport(start, end time.Time, outPath string) (string, error) {
	u := fmt.Sprintf("%s/getcsv/-/export/csv/%s/data_od/%s/data_do/%s",
		c.BaseURL, c.Report, start.Format("20060102"), end.Format("20060102"))

	c.log.Info("requesting PSE report, this step can take several minutes",
		zap.String("report", c.Report),
		zap.String("from", start.Format("2006-01-02")),
		zap.String("to", end.Format("2006-01-02")))

	began := time.Now()
	resp, err := c.Client.Get(u)
	if err != nil {
		return "", fmt.Errorf("pse fetch: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("PSE response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(began)))

	if !isSuccess(resp.StatusCode) {
		return "", &FetchError{Source: "pse", StatusCode: resp.StatusCode, URL: u}
	}
	if err := drainToFile(outPath, resp.Body); err != nil {
		return "", fmt.Errorf("pse fetch: write %s: %w", outPath, err)
	}
	return outPath, nil
}
