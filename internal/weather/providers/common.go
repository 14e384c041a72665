package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// HTTPClientConfig bundles the HTTP client and the outbound guards shared by providers.
type HTTPClientConfig struct {
	Client  *http.Client
	Limiter *rate.Limiter
}

// NewHTTPClientConfig creates a config with a token-bucket limiter.
// rps <= 0 disables limiting.
func NewHTTPClientConfig(client *http.Client, rps float64, burst int) HTTPClientConfig {
	cfg := HTTPClientConfig{Client: client}
	if rps > 0 {
		if burst <= 0 {
			burst = 1
		}
		cfg.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return cfg
}

var (
	errRateLimited      = errors.New("rate limited")
	errServerError      = errors.New("server error")
	errUnexpectedStatus = errors.New("unexpected status code")
	errCircuitOpen      = errors.New("circuit breaker open")
	errNoHTTPClient     = errors.New("http client not configured")
)

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		// A superseded action cancels its request; that says nothing about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

// doRequest executes a single GET through the limiter and circuit breaker.
// Non-2xx responses are closed and returned as errors; there are no retries.
func doRequest(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg.Limiter != nil {
		if err := cfg.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait canceled: %w", err)
		}
	}

	req, err := buildRequest()
	if err != nil {
		return nil, err
	}

	// Ensure the request obeys context cancellation.
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := cfg.Client.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, errRateLimited
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		default:
			return nil, fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
		}
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

// formatCoord formats a coordinate without trailing zeros.
func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
