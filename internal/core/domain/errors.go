package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrConfigMissing indicates that tenant, client id or client secret is unset.
	ErrConfigMissing = errors.New("missing environment variables")

	// ErrInvalidInput indicates a nil or malformed argument.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates no extractor is registered for a document kind.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown backend type.
	ErrUnsupportedType = errors.New("unsupported type")
)

// AuthError describes a failed client-credentials exchange.
type AuthError struct {
	// StatusCode is the token endpoint status.
	StatusCode int
	// Body is the raw response body.
	Body string
	// MissingToken is set when the endpoint answered 200 without an access_token.
	MissingToken bool
	// Parsed is the decoded body when MissingToken is set. It falls back to
	// Body when the response was not JSON.
	Parsed any
}

func (e *AuthError) Error() string {
	if e.MissingToken {
		return "token missing from response"
	}
	return fmt.Sprintf("token request failed with status %d", e.StatusCode)
}

// StoreError describes a non-200 answer from the document store.
type StoreError struct {
	// Op is "list" or "fetch".
	Op string
	// URL is the request URL.
	URL string
	// FileID is set for fetches.
	FileID string
	// StatusCode is forwarded to the caller verbatim.
	StatusCode int
	// Body is the raw response body.
	Body string
	// Err is the classified cause, if any.
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Op, e.URL, e.StatusCode)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ExtractionError reports that a document could not be turned into text.
type ExtractionError struct {
	Kind DocumentKind
	Err  error
}

func (e *ExtractionError) Error() string {
	return e.Err.Error()
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
