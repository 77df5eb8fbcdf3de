package data

import (
	"fmt"
	"io"
	"net/http"
	"os"
)

// FetchError represents a download that came back with a non-success status.
type FetchError struct {
	Source     string // "jao" or "pse"
	StatusCode int
	URL        string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s fetch: unexpected response status code %d from %s", e.Source, e.StatusCode, e.URL)
}

// drainToFile writes the full response body to path. The file is only
// created for success responses; callers must check the status first so a
// failed download never leaves a body on disk posing as a valid artifact.
func drainToFile(path string, body io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		return err
	}
	return f.Sync()
}

func isSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
