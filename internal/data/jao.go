package data

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// JAOClient downloads auction results from the JAO market-data API.
// Reference for the API: https://www.jao.eu/page-api/market-data
type JAOClient struct {
	BaseURL  string
	APIKey   string
	Corridor string
	Horizon  string
	Client   *http.Client

	log *zap.Logger
}

// NewJAOClient creates a JAO API client. Empty baseURL, corridor and horizon
// fall back to the production endpoint, the PL-UA corridor and the daily
// auction horizon.
func NewJAOClient(apiKey, baseURL, corridor, horizon string, log *zap.Logger) *JAOClient {
	if baseURL == "" {
		baseURL = "https://api.jao.eu"
	}
	if corridor == "" {
		corridor = "PL-UA"
	}
	if horizon == "" {
		horizon = "daily"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &JAOClient{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		Corridor: corridor,
		Horizon:  horizon,
		Client:   &http.Client{},
		log:      log,
	}
}

// DownloadAuctions fetches auction results for [start, end] (whole days) and
// writes the raw JSON body to outPath. The window must not exceed 31 days or
// the API rejects it; that limit is not enforced here.
func (c *JAOClient) DownloadAuctions(start, end time.Time, outPath string) (string, error) {
	u, err := url.Parse(c.BaseURL + "/OWSMP/getauctions")
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("corridor", c.Corridor)
	q.Set("fromdate", start.Format("2006-01-02")+"-00:00:00")
	q.Set("todate", end.Format("2006-01-02")+"-23:59:59")
	q.Set("horizon", c.Horizon)
	u.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("AUTH_API_KEY", c.APIKey)
	req.Header.Set("Accept", "application/json")

	c.log.Info("requesting JAO auctions",
		zap.String("corridor", c.Corridor),
		zap.String("horizon", c.Horizon),
		zap.String("from", start.Format("2006-01-02")),
		zap.String("to", end.Format("2006-01-02")))

	began := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("jao fetch: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("JAO response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(began)))

	if !isSuccess(resp.StatusCode) {
		return "", &FetchError{Source: "jao", StatusCode: resp.StatusCode, URL: u.String()}
	}
	if err := drainToFile(outPath, resp.Body); err != nil {
		return "", fmt.Errorf("jao fetch: write %s: %w", outPath, err)
	}
	return outPath, nil
}
