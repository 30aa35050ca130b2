package llm

import "time"

type LLMRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

type LLMResponse struct {
	Content    string
	StopReason string
}

// RetryPolicy controls InvokeModelWithRetry. Providers build one at construction.
type RetryPolicy struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     12 * time.Second,
	}
}
