package services

import (
	"context"
	"errors"
)

// ErrUpstream marks failures of the external completion call itself
// (transport errors, non-200 statuses, empty responses). Handlers use it to
// choose 503 over a generic 500.
var ErrUpstream = errors.New("upstream LLM call failed")

// ChatRequest is one completion request to the external model.
type ChatRequest struct {
	System      string  // fixed instruction, independent of input size
	User        string  // variable data payload
	JSONMode    bool    // ask the model for a JSON object response
	Temperature float64 // sampling temperature
}

// LLMClient is the gateway to the external completion service. It performs
// no retries; retry policy, if any, belongs to the caller.
type LLMClient interface {
	// ChatCompletion sends one request and returns the raw text of the
	// model's first response choice.
	ChatCompletion(ctx context.Context, req ChatRequest) (string, error)
}
