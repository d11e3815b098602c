package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/models"
	"golang.org/x/time/rate"
)

// StatusError is returned when the upstream answers with a non-200 status.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned status %d for %s", e.StatusCode, e.URL)
}

type Client struct {
	httpClient *http.Client
	rateLimit  models.RateLimitSettings
	limiter    *rate.Limiter
}

func NewClient(rl models.RateLimitSettings, timeout time.Duration) *Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if rl.MaxRequests > 0 && rl.PerDuration > 0 {
		interval := rl.PerDuration / time.Duration(rl.MaxRequests)
		limiter = rate.NewLimiter(rate.Every(interval), rl.MaxRequests)
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		rateLimit:  rl,
		limiter:    limiter,
	}
}

// Do issues a single GET. Failures are returned to the caller as-is; there is
// no retry at this layer.
func (c *Client) Do(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	logger.Debug("Making request to %s", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("HTTP request to %s failed: %v", url, err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return io.ReadAll(resp.Body)
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	logger.Debug("API returned status code %d for %s. Body: %s", resp.StatusCode, url, string(body))
	return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: string(body)}
}
