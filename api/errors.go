package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// ErrNoResponse marks transport failures where no response reached the client
// at all. The server-side cause, if any, is unknown.
var ErrNoResponse = errors.New("no response from server")

// StatusError is a non-2xx response. Message carries the backend's structured
// error message when the body contained one.
type StatusError struct {
	Status     int
	StatusText string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.StatusText)
}

// newStatusError builds a StatusError from a failed response, best-effort
// parsing a JSON body with a "message" field.
func newStatusError(resp *http.Response) *StatusError {
	statusErr := &StatusError{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return statusErr
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		statusErr.Message = body.Message
	}
	return statusErr
}
