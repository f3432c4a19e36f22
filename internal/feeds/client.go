package feeds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

type ClientConfig struct {
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	Multiplier     float64
	BreakerTimeout time.Duration
}

func DefaultClientConfig(timeout time.Duration) ClientConfig {
	return ClientConfig{
		Timeout:        timeout,
		MaxRetries:     2,
		RetryDelay:     500 * time.Millisecond,
		Multiplier:     2.0,
		BreakerTimeout: 30 * time.Second,
	}
}

// Client is the shared HTTP transport for all feed clients: bounded timeout,
// retry with exponential backoff, and a circuit breaker per upstream.
type Client struct {
	http       *http.Client
	breaker    *gobreaker.CircuitBreaker
	maxRetries int
	retryDelay time.Duration
	multiplier float64
}

func NewClient(name string, cfg ClientConfig) *Client {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Info("circuit breaker state changed",
				"client", name, "from", from.String(), "to", to.String())
		},
	}

	return &Client{
		http:       &http.Client{Timeout: cfg.Timeout},
		breaker:    gobreaker.NewCircuitBreaker(settings),
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		multiplier: cfg.Multiplier,
	}
}

// Get fetches url and returns the response body. The request runs under the
// circuit breaker; 4xx responses other than 429 are not retried.
func (c *Client) Get(ctx context.Context, url string, header http.Header) ([]byte, error) {
	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doGetWithRetry(ctx, url, header)
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

func (c *Client) doGetWithRetry(ctx context.Context, url string, header http.Header) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(float64(c.retryDelay) * math.Pow(c.multiplier, float64(attempt-1)))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("error creating request: %w", err)
		}
		for k, vals := range header {
			for _, v := range vals {
				req.Header.Add(k, v)
			}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				lastErr = err
				continue
			}
			return body, nil
		}

		resp.Body.Close()
		lastErr = &statusError{code: resp.StatusCode}

		// 4xx responses won't improve on retry, except rate limiting.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			break
		}
	}

	return nil, lastErr
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.code)
}

// statusCode extracts the HTTP status from an error chain, 0 if none.
func statusCode(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.code
	}
	return 0
}
