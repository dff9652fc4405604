// Package microsoft provides Microsoft identity platform and Graph API support.
//
// This package provides:
//   - Client-credentials token acquisition for app-only access
//   - Rate limiting for Microsoft Graph API requests
//   - Error classification for Microsoft Graph API responses
//   - An HTTP client for authenticated Graph requests
//
// # Client Credentials
//
// Service-to-service access uses the OAuth2 client-credentials grant against
// the tenant-specific token endpoint:
//   - Token URL: https://login.microsoftonline.com/{tenant}/oauth2/v2.0/token
//   - Scope: https://graph.microsoft.com/.default
//
// No user is involved and no refresh token is issued. A new token is
// requested for every handler invocation.
//
// # Rate Limits
//
// Microsoft Graph allows approximately 10,000 requests per 10 minutes per app.
// Outbound calls are paced by a token bucket. Throttled responses (429) are
// logged with their Retry-After hint and returned to the caller as is; they
// never delay later requests. Requests are never retried.
package microsoft
