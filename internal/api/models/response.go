package models

// ReportResponse carries one joined report.
type ReportResponse struct {
	Status   string              `json:"status"`
	Window   TimeWindow          `json:"window"`
	Columns  []string            `json:"columns"`
	RowCount int                 `json:"row_count"`
	Rows     []map[string]string `json:"rows"`
}

// TimeWindow represents the reporting period as whole days.
type TimeWindow struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ErrorResponse is the error body shape for all endpoints.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
