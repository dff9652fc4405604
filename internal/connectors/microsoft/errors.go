package microsoft

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Classification of non-success Graph answers.
var (
	ErrUnauthorised = errors.New("microsoft: unauthorised")
	ErrForbidden    = errors.New("microsoft: forbidden")
	ErrNotFound     = errors.New("microsoft: not found")
	ErrRateLimited  = errors.New("microsoft: rate limited")
	ErrBadRequest   = errors.New("microsoft: bad request")
	ErrServerError  = errors.New("microsoft: server error")
	// ErrRequestFailed covers every other non-2xx status.
	ErrRequestFailed = errors.New("microsoft: request failed")
)

// GraphError is a decoded Graph error answer:
//
//	{"error": {"code": "itemNotFound", "message": "The resource could not be found."}}
//
// Code and Message are empty when the body is not in that shape.
type GraphError struct {
	StatusCode int
	Code       string
	Message    string
	kind       error
}

func (e *GraphError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%v (status %d)", e.kind, e.StatusCode)
	}
	return fmt.Sprintf("%v (status %d): %s: %s", e.kind, e.StatusCode, e.Code, e.Message)
}

// Unwrap returns the status classification, so errors.Is(err, ErrNotFound) works.
func (e *GraphError) Unwrap() error {
	return e.kind
}

// NewGraphError classifies a Graph answer. It returns nil for 2xx statuses.
func NewGraphError(statusCode int, body []byte) error {
	kind := classify(statusCode)
	if kind == nil {
		return nil
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &envelope)

	return &GraphError{
		StatusCode: statusCode,
		Code:       envelope.Error.Code,
		Message:    envelope.Error.Message,
		kind:       kind,
	}
}

func classify(statusCode int) error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusUnauthorized:
		return ErrUnauthorised
	case statusCode == http.StatusForbidden:
		return ErrForbidden
	case statusCode == http.StatusNotFound:
		return ErrNotFound
	case statusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case statusCode == http.StatusBadRequest:
		return ErrBadRequest
	case statusCode >= 500:
		return ErrServerError
	default:
		return ErrRequestFailed
	}
}

// IsRateLimited checks if the status code indicates throttling.
func IsRateLimited(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests
}
