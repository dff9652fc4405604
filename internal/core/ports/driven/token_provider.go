package driven

import (
	"context"

	"golang.org/x/oauth2"
)

// TokenProvider provides access tokens for authenticated API calls.
//
// Tokens are not cached: every call performs a fresh exchange, so one
// request to the handler maps to exactly one token.
type TokenProvider interface {
	// Token returns a bearer token for the document store.
	// Failures are reported as *domain.AuthError.
	Token(ctx context.Context) (*oauth2.Token, error)
}
