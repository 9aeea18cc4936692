package graph

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Graph API error codes that mean the access token is no longer usable and
// the user has to log in again.
const (
	codeInvalidToken  = 190
	codeNotAuthorized = 200
)

// APIError is any non-2xx answer from the Graph API. Body keeps the raw
// response so callers can log what Facebook actually said; Message/Type/
// Code/TraceID are filled in when the body carries the usual error envelope
// {"error":{"message","type","code","fbtrace_id"}}.
type APIError struct {
	StatusCode int
	Body       string
	Message    string
	Type       string
	Code       int
	TraceID    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("graph: %s (type %s, code %d, trace %s)", e.Message, e.Type, e.Code, e.TraceID)
	}
	return fmt.Sprintf("graph: HTTP %d", e.StatusCode)
}

// IsAuthError reports whether the caller should be sent back through the
// login flow rather than told to retry.
func (e *APIError) IsAuthError() bool {
	if e.StatusCode == http.StatusUnauthorized {
		return true
	}
	return e.Code == codeInvalidToken || e.Code == codeNotAuthorized
}

// newAPIError builds an APIError from a non-2xx response body.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Body:       string(body),
	}

	var envelope struct {
		Error struct {
			Message   string `json:"message"`
			Type      string `json:"type"`
			Code      int    `json:"code"`
			FbtraceID string `json:"fbtrace_id"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Message = envelope.Error.Message
		apiErr.Type = envelope.Error.Type
		apiErr.Code = envelope.Error.Code
		apiErr.TraceID = envelope.Error.FbtraceID
	}

	return apiErr
}
