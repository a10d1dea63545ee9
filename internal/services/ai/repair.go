package ai

import (
	"encoding/json"
	"strings"
)

// ExtractJSONObject recovers a JSON object from a model reply. Models
// frequently wrap valid payloads in prose or code-fence markers; a single
// greedy span from the first '{' to the last '}' recovers the common case
// without a full scan. First the whole trimmed message is parsed strictly;
// if that fails, the brace span is tried. When both fail the caller gets
// ErrNotJSON and is expected to fall back; no heuristic data is substituted
// here.
func ExtractJSONObject(message string) (string, error) {
	trimmed := strings.TrimSpace(message)

	if isJSONObject(trimmed) {
		return trimmed, nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return "", ErrNotJSON
	}

	span := trimmed[start : end+1]
	if isJSONObject(span) {
		return span, nil
	}

	return "", ErrNotJSON
}

// isJSONObject reports whether s is a syntactically valid JSON object.
func isJSONObject(s string) bool {
	if !strings.HasPrefix(s, "{") {
		return false
	}
	return json.Valid([]byte(s))
}
