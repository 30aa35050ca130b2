package llm

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

// InvokeFunc is a single model invocation attempt.
type InvokeFunc func(ctx context.Context, request LLMRequest) (*LLMResponse, error)

// WithRetry calls invoke until it succeeds, returns a non-retryable error,
// the policy is exhausted or ctx is done.
func WithRetry(ctx context.Context, policy RetryPolicy, request LLMRequest, invoke InvokeFunc) (*LLMResponse, error) {
	if policy.MaxRetries <= 0 {
		return invoke(ctx, request)
	}

	var lastErr error

	for attempt := 0; attempt < policy.MaxRetries; attempt++ {
		response, err := invoke(ctx, request)
		if err == nil {
			return response, nil
		}

		lastErr = err

		if !IsRetryableError(err) {
			return nil, fmt.Errorf("non-retryable error: %w", err)
		}

		if attempt == policy.MaxRetries-1 {
			break
		}

		delay := CalculateBackoff(attempt, policy.InitialDelay, policy.MaxDelay)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, fmt.Errorf("max retries %d exceeded: %w", policy.MaxRetries, lastErr)
}

func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()

	// 1. Throttling / quota
	if strings.Contains(errStr, "ThrottlingException") ||
		strings.Contains(errStr, "TooManyRequestsException") ||
		strings.Contains(errStr, "ResourceExhausted") ||
		strings.Contains(errStr, "Rate exceeded") ||
		strings.Contains(errStr, "429") {
		return true
	}

	// 2. Service errors (5xx)
	if strings.Contains(errStr, "InternalServerException") ||
		strings.Contains(errStr, "ServiceUnavailableException") ||
		strings.Contains(errStr, "Unavailable") ||
		strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "503") {
		return true
	}

	// 3. Network errors
	if strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "EOF") ||
		strings.Contains(errStr, "timeout") {
		return true
	}

	// Non-retryable errors (4xx client errors, validation errors, etc.)
	return false
}

// CalculateBackoff returns initialDelay*2^attempt capped at maxDelay, with +/-20% jitter.
func CalculateBackoff(attempt int, initialDelay, maxDelay time.Duration) time.Duration {
	backoff := float64(initialDelay) * math.Pow(2, float64(attempt))

	if backoff > float64(maxDelay) {
		backoff = float64(maxDelay)
	}

	jitter := backoff * 0.2 * (2*rand.Float64() - 1)
	backoff += jitter

	return time.Duration(backoff)
}
