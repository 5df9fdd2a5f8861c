package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	maxRetries     = 3
	retryBaseDelay = 500 * time.Millisecond
)

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// doWithRetry executes the request built by build, retrying transport errors
// and retryable statuses with exponential backoff. The builder runs per
// attempt so each retry gets a fresh request body.
func doWithRetry(ctx context.Context, client *http.Client, build func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := build()
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if retryableStatus(resp.StatusCode) {
			resp.Body.Close()
			lastErr = fmt.Errorf("retryable status %s", resp.Status)
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("exhausted retries: %w", lastErr)
}
