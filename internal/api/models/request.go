package models

// ReportRequest asks for one pipeline run. All fields are optional: an empty
// request uses the token file and the default trailing window.
type ReportRequest struct {
	APIKey string `json:"api_key,omitempty"`
	From   string `json:"from,omitempty"` // YYYY-MM-DD
	To     string `json:"to,omitempty"`   // YYYY-MM-DD

	// Rollover24 maps PSE hour 24 to next-day 00:00 instead of the
	// same-date rewrite the published report uses.
	Rollover24 bool `json:"rollover_24,omitempty"`
}
