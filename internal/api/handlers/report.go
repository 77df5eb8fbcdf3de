package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"corridor-report/internal/api/models"
	"corridor-report/internal/config"
	"corridor-report/internal/data"
	"corridor-report/internal/pipeline"
	"corridor-report/internal/report"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportHandler runs the download-normalize-join pipeline on request.
type ReportHandler struct {
	cfg *config.Config
	log *zap.Logger
}

func NewReportHandler(cfg *config.Config, log *zap.Logger) *ReportHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportHandler{cfg: cfg, log: log}
}

// RunReport handles POST /api/v1/report. The body is optional; an empty
// request means token-file credentials and the default trailing window.
func (h *ReportHandler) RunReport(c *gin.Context) {
	var req models.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "BAD_REQUEST", Message: err.Error()},
		})
		return
	}

	params := pipeline.RunParams{
		APIKey: req.APIKey,
		PSE:    report.PSEOptions{RolloverHour24: req.Rollover24},
	}
	var err error
	if req.From != "" {
		params.Start, err = time.Parse("2006-01-02", req.From)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "BAD_DATE", Message: fmt.Sprintf("invalid from date: %v", err)},
			})
			return
		}
	}
	if req.To != "" {
		params.End, err = time.Parse("2006-01-02", req.To)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "BAD_DATE", Message: fmt.Sprintf("invalid to date: %v", err)},
			})
			return
		}
	}

	joined, err := pipeline.New(h.cfg, h.log).Run(params)
	if err != nil {
		status, code := classify(err)
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{Code: code, Message: err.Error()},
		})
		return
	}

	rows := make([]map[string]string, len(joined.Rows))
	for i, r := range joined.Rows {
		rows[i] = r
	}
	end := params.End
	if end.IsZero() {
		end = time.Now()
	}
	start := params.Start
	if start.IsZero() {
		start = end.AddDate(0, 0, -h.cfg.WindowDays)
	}
	c.JSON(http.StatusOK, models.ReportResponse{
		Status:   "ok",
		Window:   models.TimeWindow{From: start.Format("2006-01-02"), To: end.Format("2006-01-02")},
		Columns:  joined.Columns,
		RowCount: len(rows),
		Rows:     rows,
	})
}

func classify(err error) (int, string) {
	var fetchErr *data.FetchError
	var parseErr *report.ParseError
	switch {
	case errors.Is(err, data.ErrAPIKeyMissing), errors.Is(err, data.ErrAPIKeyEmpty):
		return http.StatusUnauthorized, "MISSING_API_KEY"
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway, "FETCH_FAILED"
	case errors.As(err, &parseErr):
		return http.StatusBadGateway, "PARSE_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
