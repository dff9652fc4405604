package microsoft

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/sharepoint-reader/internal/logger"
)

// ServiceType identifies a Microsoft endpoint family for rate limiting purposes.
type ServiceType string

const (
	// ServiceSharePoint is the Graph sites/drive API.
	ServiceSharePoint ServiceType = "sharepoint"
	// ServiceIdentity is the identity platform token endpoint.
	ServiceIdentity ServiceType = "identity"
)

// RateLimitConfig holds rate limiting configuration for a service.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimits paces outbound calls below Graph's documented quota of
// roughly 10,000 requests per 10 minutes per app.
var DefaultRateLimits = map[ServiceType]RateLimitConfig{
	ServiceSharePoint: {RequestsPerSecond: 10.0, BurstSize: 15},
	ServiceIdentity:   {RequestsPerSecond: 5.0, BurstSize: 10},
}

// RateLimiter paces outbound requests with a token bucket.
//
// Throttled answers are only logged. A 429 never delays later requests:
// each one reaches the endpoint and reports its own answer.
type RateLimiter struct {
	limiter *rate.Limiter
	service ServiceType
}

// NewRateLimiter creates a new rate limiter for the specified service.
func NewRateLimiter(service ServiceType) *RateLimiter {
	cfg, ok := DefaultRateLimits[service]
	if !ok {
		cfg = DefaultRateLimits[ServiceSharePoint]
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
		service: service,
	}
}

// Wait blocks until the token bucket admits a request or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

// ObserveThrottled logs a 429 answer together with its Retry-After hint.
func (r *RateLimiter) ObserveThrottled(header http.Header) {
	if secs := ParseRetryAfter(header.Get("Retry-After")); secs > 0 {
		logger.Warn("microsoft: %s throttled, retry after %ds", r.service, secs)
		return
	}
	logger.Warn("microsoft: %s throttled", r.service)
}

// ParseRetryAfter returns the delay in seconds carried by a Retry-After header.
// Graph sends delta-seconds; HTTP dates are accepted too. Returns 0 when the
// value is missing or unparseable.
func ParseRetryAfter(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return secs
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return int(d.Seconds()) + 1
		}
	}
	return 0
}
