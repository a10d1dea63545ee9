package ai

import (
	"context"
	"time"
)

// Turn is one message of an outbound conversation. Role is "system", "user"
// or "assistant"; turns are ordered chronologically.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage reports token accounting when the remote endpoint provides it.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResult is the uniform outcome of one completion attempt.
// Success implies Message is set; failure implies ErrorKind is set. A
// provider never surfaces a transport fault as a Go error.
type CompletionResult struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Usage     *Usage    `json:"usage,omitempty"`
	ErrorKind ErrorKind `json:"error,omitempty"`
}

// CompletionOptions tunes a single completion request.
type CompletionOptions struct {
	Model     string
	MaxTokens int
	// Temperature is a pointer so zero, a valid sampling setting, stays
	// distinguishable from unset; nil leaves the endpoint default in place.
	Temperature *float64
	Timeout     time.Duration
	// JSONResponse asks the endpoint to constrain output to a JSON object.
	JSONResponse bool
}

// CompletionProvider issues one bounded request to a remote completion
// endpoint per Complete call.
type CompletionProvider interface {
	Complete(ctx context.Context, turns []Turn, opts CompletionOptions) CompletionResult

	// Configured reports whether the provider can reach a remote endpoint.
	Configured() bool
}

// Unconfigured is the provider used when no API credential was supplied at
// startup. Complete returns immediately without any network I/O.
type Unconfigured struct{}

// Configured always reports false.
func (Unconfigured) Configured() bool { return false }

// Complete reports the service as unavailable.
func (Unconfigured) Complete(_ context.Context, _ []Turn, _ CompletionOptions) CompletionResult {
	return CompletionResult{Success: false, ErrorKind: ErrorKindUnavailable}
}
