// Package errors maps service failures onto HTTP responses.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/MohdFaisalBidda/instagram-login-app/pkg/graph"
)

type ErrorCode string

const (
	ErrNotFound        ErrorCode = "NOT_FOUND"
	ErrValidation      ErrorCode = "VALIDATION"
	ErrUnauthenticated ErrorCode = "UNAUTHENTICATED"
	ErrUpstream        ErrorCode = "UPSTREAM"
)

type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

type ErrorResponse struct {
	Error string    `json:"error"`
	Code  ErrorCode `json:"code"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrValidation:
		return http.StatusBadRequest
	case ErrUnauthenticated:
		return http.StatusUnauthorized
	case ErrUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Validation builds the error returned for malformed or missing input.
func Validation(message string) *AppError {
	return &AppError{Code: ErrValidation, Message: message}
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

// HandleError translates an error into an HTTP response. Graph API failures
// become 401 when the token is dead (the client has to restart the login
// flow) and 502 otherwise; AppErrors carry their own status; anything else
// is a plain 500.
func HandleError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		WriteJSON(w, appErr.StatusCode(), ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		})
		return
	}

	var apiErr *graph.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsAuthError() {
			slog.Warn("upstream rejected access token", "status", apiErr.StatusCode, "code", apiErr.Code)
			WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
				Error: "access token rejected, please log in again",
				Code:  ErrUnauthenticated,
			})
			return
		}
		slog.Error("upstream API error", "status", apiErr.StatusCode, "type", apiErr.Type, "message", apiErr.Message, "trace", apiErr.TraceID)
		WriteJSON(w, http.StatusBadGateway, ErrorResponse{
			Error: "upstream API error",
			Code:  ErrUpstream,
		})
		return
	}

	slog.Error("internal error", "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
