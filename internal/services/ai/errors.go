package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
)

// ErrorKind classifies why an extraction step could not use the model.
// All kinds except persistence faults are recovered by the fallback path.
type ErrorKind string

const (
	// ErrorKindNone means no error occurred.
	ErrorKindNone ErrorKind = ""
	// ErrorKindUnavailable means no remote client was configured.
	ErrorKindUnavailable ErrorKind = "unavailable"
	// ErrorKindTransport covers timeouts and network/protocol/auth faults
	// reaching the remote endpoint.
	ErrorKindTransport ErrorKind = "transport_error"
	// ErrorKindParse means the reply held no recoverable structured payload.
	ErrorKindParse ErrorKind = "parse_failure"
	// ErrorKindValidation means a payload was recovered but violates the
	// expected shape.
	ErrorKindValidation ErrorKind = "validation_failure"
)

// ErrNotJSON is returned when a reply contains no parseable JSON object.
var ErrNotJSON = errors.New("no parseable JSON object in response")

// ErrUnavailable is returned by operations that have no fallback path when
// no remote client is configured.
var ErrUnavailable = errors.New("AI service not configured")

// CompletionError wraps a failed completion's classification for callers
// that propagate errors instead of falling back.
type CompletionError struct {
	Kind ErrorKind
}

func (e *CompletionError) Error() string {
	return "completion failed: " + string(e.Kind)
}

// APIError carries details extracted from a remote endpoint failure.
type APIError struct {
	Message    string
	Type       string
	Code       string
	StatusCode int
}

func (e *APIError) Error() string {
	return "API error (type " + e.Type + "): " + e.Message
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// extractAPIError pulls structured error details out of an endpoint error.
// The SDK folds the response body into the error string, frequently as JSON.
func extractAPIError(err error) *APIError {
	if err == nil {
		return nil
	}

	errStr := err.Error()
	jsonStart := strings.Index(errStr, "{")
	if jsonStart == -1 {
		return nil
	}
	jsonStr := errStr[jsonStart:]
	jsonEnd := strings.LastIndex(jsonStr, "}")
	if jsonEnd == -1 {
		return nil
	}
	jsonStr = jsonStr[:jsonEnd+1]

	var errorData struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	}
	if json.Unmarshal([]byte(jsonStr), &errorData) != nil {
		return nil
	}
	if errorData.Message == "" && errorData.Type == "" && errorData.Code == "" {
		return nil
	}

	return &APIError{
		Message: errorData.Message,
		Type:    errorData.Type,
		Code:    errorData.Code,
	}
}
