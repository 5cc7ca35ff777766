package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Outcome classifies the result of a provider call so callers branch on an
// explicit value instead of mixing nil-checks and error handling.
type Outcome int

const (
	// OK means the call succeeded and the body is usable.
	OK Outcome = iota
	// NotFound means the provider has no data for the request (4xx other
	// than 429, or an empty body). Callers treat this as "no data
	// available", not as a failure.
	NotFound
	// RateLimited means the provider throttled us and retries were exhausted.
	RateLimited
	// ServerError means the provider failed (5xx or transport error) and
	// retries were exhausted.
	ServerError
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case NotFound:
		return "not_found"
	case RateLimited:
		return "rate_limited"
	default:
		return "server_error"
	}
}

// Client performs HTTP GETs with retry-on-transient-failure semantics.
// Transient failures (5xx, 429, transport errors) are retried with
// exponential backoff up to MaxAttempts; other 4xx responses surface
// immediately as NotFound without retry.
type Client struct {
	http        *http.Client
	maxAttempts int
	baseDelay   time.Duration
	logger      *zap.Logger
}

// New creates a resilient HTTP client. maxAttempts of zero or less falls
// back to a single attempt; baseDelay of zero falls back to 500ms.
func New(timeout time.Duration, maxAttempts int, baseDelay time.Duration, logger *zap.Logger) *Client {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	return &Client{
		http:        &http.Client{Timeout: timeout},
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		logger:      logger,
	}
}

// Get fetches url and classifies the response. The error is non-nil only
// for terminal failures (RateLimited, ServerError); NotFound is not an error.
func (c *Client) Get(ctx context.Context, url string, header http.Header) (Outcome, []byte, error) {
	var lastErr error
	outcome := ServerError

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			// Exponential backoff: base, 2*base, 4*base, ...
			delay := c.baseDelay << (attempt - 2)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ServerError, nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return ServerError, nil, fmt.Errorf("failed to build request: %w", err)
		}
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			outcome = ServerError
			c.logger.Warn("Provider call failed",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if readErr != nil {
				return ServerError, nil, fmt.Errorf("failed to read response body: %w", readErr)
			}
			if len(body) == 0 {
				return NotFound, nil, nil
			}
			return OK, body, nil

		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("provider rate limited (429)")
			outcome = RateLimited
			c.logger.Warn("Provider rate limited",
				zap.String("url", url),
				zap.Int("attempt", attempt))

		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("provider server error (%d)", resp.StatusCode)
			outcome = ServerError
			c.logger.Warn("Provider server error",
				zap.String("url", url),
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt))

		default:
			// Non-transient 4xx: no data for this request, never retried.
			return NotFound, nil, nil
		}
	}

	return outcome, nil, fmt.Errorf("provider call failed after %d attempts: %w", c.maxAttempts, lastErr)
}
