package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrUnauthorized signals a missing or expired session credential. It is
// returned before any network call when the local session is already known
// to be invalid, and on any 401 from the service.
var ErrUnauthorized = errors.New("unauthorized: missing or expired credential")

// APIError is a non-2xx response from the service. Detail carries the
// server-provided rejection message verbatim; callers that surface errors
// to the user display Detail without reclassifying it.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Detail, e.StatusCode)
}

// decodeError turns a non-2xx response into ErrUnauthorized or an APIError,
// pulling the message out of either {"detail": ...} or {"message": ...}.
func decodeError(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		json.Unmarshal(data, &body)
	}

	detail := body.Detail
	if detail == "" {
		detail = body.Message
	}
	return &APIError{StatusCode: resp.StatusCode, Detail: detail}
}
