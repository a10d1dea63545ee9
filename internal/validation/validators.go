package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/taskmaster-app/taskmaster-api/internal/models"
)

const (
	// MaxInputLength is the hard cap on sanitized input text.
	MaxInputLength = 10000
	// TruncationMarker is appended when input is cut at MaxInputLength.
	TruncationMarker = "..."
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate

	whitespaceRun = regexp.MustCompile(`\s+`)
	angleBrackets = strings.NewReplacer("<", "", ">", "")
)

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("priority", validatePriority); err != nil {
		panic(fmt.Sprintf("failed to register priority validator: %v", err))
	}
}

// validatePriority validates that a string is a valid Priority enum value
func validatePriority(fl validator.FieldLevel) bool {
	return models.Priority(fl.Field().String()).Valid()
}

// SanitizeText normalizes untrusted input before it is sent anywhere:
// whitespace runs collapse to a single space, angle brackets are stripped
// (minimal HTML-injection guard, not a full sanitizer), and the result is
// truncated to MaxInputLength with a trailing marker. Oversized input is
// never rejected, only cut.
func SanitizeText(text string) string {
	text = whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
	text = angleBrackets.Replace(text)

	return truncate(text)
}

// SanitizeMultiline sanitizes line-structured input (checklists, pasted
// lists) the same way as SanitizeText but preserves line breaks, which the
// heuristic extractors depend on. The total length bound still applies.
func SanitizeMultiline(text string) string {
	lines := strings.Split(text, "\n")
	sanitized := make([]string, 0, len(lines))
	for _, line := range lines {
		line = whitespaceRun.ReplaceAllString(strings.TrimSpace(line), " ")
		line = angleBrackets.Replace(line)
		if line != "" {
			sanitized = append(sanitized, line)
		}
	}
	return truncate(strings.Join(sanitized, "\n"))
}

// truncate cuts text at MaxInputLength bytes without splitting a rune: the
// cut point backs off to the nearest rune start so the result is always
// valid UTF-8.
func truncate(text string) string {
	if len(text) <= MaxInputLength {
		return text
	}

	cut := MaxInputLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}

	return text[:cut] + TruncationMarker
}

// ValidatePlan checks a parsed GeneratedPlan against its expected shape:
// at least one task, every task titled, priorities in the known set.
func ValidatePlan(plan *models.GeneratedPlan) error {
	if plan == nil {
		return fmt.Errorf("plan is nil")
	}
	if err := Validate.Struct(plan); err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}
	return nil
}

// ValidateChecklist checks a parsed ChecklistDocument: at least one section,
// every section titled.
func ValidateChecklist(doc *models.ChecklistDocument) error {
	if doc == nil {
		return fmt.Errorf("checklist is nil")
	}
	if err := Validate.Struct(doc); err != nil {
		return fmt.Errorf("invalid checklist: %w", err)
	}
	return nil
}

// ValidateCategorized checks a parsed CategorizedList: the categories object
// must be present and originalCount non-negative.
func ValidateCategorized(list *models.CategorizedList) error {
	if list == nil {
		return fmt.Errorf("categorized list is nil")
	}
	if err := Validate.Struct(list); err != nil {
		return fmt.Errorf("invalid categorized list: %w", err)
	}
	return nil
}

// ValidatePriority validates a Priority string value
func ValidatePriority(value string) error {
	if !models.Priority(value).Valid() {
		return fmt.Errorf("invalid priority: %s (must be 'high', 'medium', or 'low')", value)
	}
	return nil
}

// ValidateMessageRole validates a MessageRole string value
func ValidateMessageRole(value string) error {
	switch models.MessageRole(value) {
	case models.RoleSystem, models.RoleUser, models.RoleAssistant:
		return nil
	default:
		return fmt.Errorf("invalid role: %s (must be 'system', 'user', or 'assistant')", value)
	}
}
