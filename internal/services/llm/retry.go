package llm

import (
	"strings"
	"time"
)

// RetryConfig bounds the retry budget for cloud API calls.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// NewDefaultRetryConfig returns the default retry budget: 2 retries with
// exponential backoff capped at 30s.
func NewDefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 2,
		BaseDelay:  2 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// CalculateBackoff returns the delay before the given retry attempt.
func (c RetryConfig) CalculateBackoff(attempt int) time.Duration {
	delay := c.BaseDelay * time.Duration(1<<attempt)
	if delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	return delay
}

// IsRateLimitError reports whether an error looks like an API rate limit.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota")
}
