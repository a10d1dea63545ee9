package ai

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxPreviewLength is the maximum length for preview strings in logs
	MaxPreviewLength = 200
	// MaxDebugPreviewLength is the maximum preview length in debug mode
	MaxDebugPreviewLength = 10000
	// RedactedValue is the value used to replace sensitive data
	RedactedValue = "[REDACTED]"
)

// SanitizeAPIKey sanitizes an API key for logging
func SanitizeAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 8 {
		return RedactedValue
	}
	return apiKey[:4] + RedactedValue + apiKey[len(apiKey)-4:]
}

// SanitizePreview creates a safe preview of prompt or response text for
// logging. Even in full mode the text is sanitized to prevent log injection
// and bounded in size.
func SanitizePreview(text string, full bool) string {
	if text == "" {
		return ""
	}

	maxLen := MaxPreviewLength
	if full {
		maxLen = MaxDebugPreviewLength
	}

	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range text {
		if unicode.IsPrint(r) || r == ' ' || r == '\t' || r == '\n' {
			builder.WriteRune(r)
		}
	}
	text = builder.String()

	if len(text) > maxLen {
		text = text[:maxLen] + "..."
	}

	return text
}
