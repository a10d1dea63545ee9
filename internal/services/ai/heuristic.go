package ai

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/taskmaster-app/taskmaster-api/internal/models"
)

// Deterministic extraction fallbacks. Both functions are total: they never
// fail and never touch the network, so the pipeline can always answer even
// when the model is unreachable or its output is unusable.

const (
	// DefaultChecklistTitle is used when the input has no numbered sections.
	DefaultChecklistTitle = "Imported Checklist"
	// maxDefaultActions caps the actions taken from unsectioned input.
	maxDefaultActions = 10
)

var (
	sectionHeader = regexp.MustCompile(`^\d+\.`)
	headerPrefix  = regexp.MustCompile(`^\d+\.\s*`)
)

// keyword families in match priority order; first match wins so no line ever
// lands in two buckets.
var (
	urgentKeywords    = []string{"urgent", "asap", "immediately", "critical", "emergency", "deadline"}
	importantKeywords = []string{"important", "priority", "must", "should", "key", "essential"}
	routineKeywords   = []string{"daily", "weekly", "monthly", "regular", "routine", "maintenance"}
)

// FallbackChecklist parses checklist text without the model. A line matching
// "N." opens a section titled with the remainder; following lines become its
// actions with leading bullet markers stripped. Lines before the first
// numbered line are discarded. Input with no numbered line at all yields one
// default section holding the first ten lines.
func FallbackChecklist(text string) *models.ChecklistDocument {
	lines := nonEmptyLines(text)

	var sections []models.ChecklistSection
	var current *models.ChecklistSection

	for _, line := range lines {
		if sectionHeader.MatchString(line) {
			if current != nil {
				sections = append(sections, *current)
			}
			current = &models.ChecklistSection{
				ID:             len(sections) + 1,
				Title:          headerPrefix.ReplaceAllString(line, ""),
				OwnerStatus:    models.StatusNotSpecified,
				ReviewerStatus: models.StatusNotSpecified,
			}
			continue
		}
		if current != nil {
			if action := stripBullet(line); action != "" {
				current.Actions = append(current.Actions, action)
			}
		}
	}
	if current != nil {
		sections = append(sections, *current)
	}

	if len(sections) == 0 {
		actions := lines
		if len(actions) > maxDefaultActions {
			actions = actions[:maxDefaultActions]
		}
		sections = []models.ChecklistSection{{
			ID:             1,
			Title:          DefaultChecklistTitle,
			OwnerStatus:    models.StatusNotSpecified,
			ReviewerStatus: models.StatusNotSpecified,
			Actions:        actions,
		}}
	}

	return &models.ChecklistDocument{Sections: sections}
}

// FallbackCategorize sorts list lines into the fixed buckets by
// case-insensitive keyword match, urgent family first. Suggestions mirror
// what the model path would advise: one per non-empty bucket, or a single
// default when nothing was categorized.
func FallbackCategorize(text string) *models.CategorizedList {
	lines := nonEmptyLines(text)

	buckets := &models.CategoryBuckets{}
	for _, line := range lines {
		lower := strings.ToLower(line)
		switch {
		case containsAny(lower, urgentKeywords):
			buckets.Urgent = append(buckets.Urgent, line)
		case containsAny(lower, importantKeywords):
			buckets.Important = append(buckets.Important, line)
		case containsAny(lower, routineKeywords):
			buckets.Routine = append(buckets.Routine, line)
		default:
			buckets.Misc = append(buckets.Misc, line)
		}
	}

	return &models.CategorizedList{
		OriginalCount: len(lines),
		Categories:    buckets,
		Suggestions:   bucketSuggestions(buckets),
	}
}

// bucketSuggestions generates advisory text from categorized buckets.
func bucketSuggestions(buckets *models.CategoryBuckets) []string {
	var suggestions []string

	if n := len(buckets.Urgent); n > 0 {
		suggestions = append(suggestions, fmt.Sprintf("You have %d urgent items that need immediate attention", n))
	}
	if n := len(buckets.Important); n > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Consider scheduling time for %d important tasks", n))
	}
	if n := len(buckets.Routine); n > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Set up recurring reminders for %d routine tasks", n))
	}
	if n := len(buckets.Misc); n > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Review %d uncategorized items and add clarifying keywords", n))
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, "No items were categorized. Try providing more specific task descriptions")
	}

	return suggestions
}

// nonEmptyLines splits text into trimmed, non-empty lines.
func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// stripBullet removes leading bullet and dash markers from an action line.
func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "-•*– \t"))
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
