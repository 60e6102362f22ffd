package chronicle

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of an error response is retained.
const maxErrorBody = 8192

// TransportError is a network-level failure: DNS, connect, TLS, or the
// request timeout. The request never produced an HTTP response.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("chronicle: %s: %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a non-2xx response from the Chronicle API.
type APIError struct {
	// Op names the operation that failed, e.g. "create export".
	Op         string
	StatusCode int
	// Message is the structured detail extracted from a standard
	// {"error":{"message":...}} body, when present.
	Message string
	// Body is the raw (truncated) response body.
	Body string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("chronicle: %s: HTTP %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("chronicle: %s: HTTP %d: %s", e.Op, e.StatusCode, e.Body)
}

// newAPIError consumes the response body and extracts the standard
// Google error envelope when the body parses as one.
func newAPIError(op string, resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}
