package ai

import (
	"reflect"
	"strings"
	"testing"

	"github.com/taskmaster-app/taskmaster-api/internal/models"
)

func TestFallbackChecklist_NumberedSections(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"1. Planning",
		"- define scope",
		"2. Launch",
		"- go live",
	}, "\n")

	doc := FallbackChecklist(text)

	if len(doc.Sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Title != "Planning" {
		t.Errorf("Expected first section title 'Planning', got %q", doc.Sections[0].Title)
	}
	if doc.Sections[1].Title != "Launch" {
		t.Errorf("Expected second section title 'Launch', got %q", doc.Sections[1].Title)
	}
	if !reflect.DeepEqual(doc.Sections[0].Actions, []string{"define scope"}) {
		t.Errorf("Expected first section actions [define scope], got %v", doc.Sections[0].Actions)
	}
	if !reflect.DeepEqual(doc.Sections[1].Actions, []string{"go live"}) {
		t.Errorf("Expected second section actions [go live], got %v", doc.Sections[1].Actions)
	}
	if doc.Sections[0].ID != 1 || doc.Sections[1].ID != 2 {
		t.Errorf("Expected sequential section IDs 1,2, got %d,%d", doc.Sections[0].ID, doc.Sections[1].ID)
	}
	if doc.Sections[0].OwnerStatus != models.StatusNotSpecified {
		t.Errorf("Expected default owner status, got %q", doc.Sections[0].OwnerStatus)
	}
	if doc.Sections[0].ReviewerStatus != models.StatusNotSpecified {
		t.Errorf("Expected default reviewer status, got %q", doc.Sections[0].ReviewerStatus)
	}
}

func TestFallbackChecklist_NoNumberedLines(t *testing.T) {
	t.Parallel()

	lines := []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
		"golf", "hotel", "india", "juliett", "kilo", "lima",
	}
	doc := FallbackChecklist(strings.Join(lines, "\n"))

	if len(doc.Sections) != 1 {
		t.Fatalf("Expected 1 default section, got %d", len(doc.Sections))
	}
	section := doc.Sections[0]
	if section.Title != DefaultChecklistTitle {
		t.Errorf("Expected default title %q, got %q", DefaultChecklistTitle, section.Title)
	}
	if len(section.Actions) != maxDefaultActions {
		t.Errorf("Expected %d actions, got %d", maxDefaultActions, len(section.Actions))
	}
	if section.Actions[0] != "alpha" {
		t.Errorf("Expected first action 'alpha', got %q", section.Actions[0])
	}
}

func TestFallbackChecklist_PreSectionLinesDiscarded(t *testing.T) {
	t.Parallel()

	doc := FallbackChecklist("intro text\n1. Setup\n- install deps")

	if len(doc.Sections) != 1 {
		t.Fatalf("Expected 1 section, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Title != "Setup" {
		t.Errorf("Expected title 'Setup', got %q", doc.Sections[0].Title)
	}
	for _, action := range doc.Sections[0].Actions {
		if action == "intro text" {
			t.Error("Expected pre-section line to be discarded")
		}
	}
}

func TestFallbackChecklist_BulletMarkersStripped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want string
	}{
		{"dash", "- review draft", "review draft"},
		{"bullet", "• review draft", "review draft"},
		{"asterisk", "* review draft", "review draft"},
		{"plain", "review draft", "review draft"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := FallbackChecklist("1. Section\n" + tt.line)
			if len(doc.Sections) != 1 || len(doc.Sections[0].Actions) != 1 {
				t.Fatalf("Expected 1 section with 1 action, got %+v", doc.Sections)
			}
			if got := doc.Sections[0].Actions[0]; got != tt.want {
				t.Errorf("Expected action %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFallbackCategorize_Buckets(t *testing.T) {
	t.Parallel()

	text := "URGENT: fix outage\nWeekly report\nBuy milk"
	list := FallbackCategorize(text)

	if list.OriginalCount != 3 {
		t.Errorf("Expected original count 3, got %d", list.OriginalCount)
	}
	if !reflect.DeepEqual(list.Categories.Urgent, []string{"URGENT: fix outage"}) {
		t.Errorf("Expected urgent bucket [URGENT: fix outage], got %v", list.Categories.Urgent)
	}
	if !reflect.DeepEqual(list.Categories.Routine, []string{"Weekly report"}) {
		t.Errorf("Expected routine bucket [Weekly report], got %v", list.Categories.Routine)
	}
	if !reflect.DeepEqual(list.Categories.Misc, []string{"Buy milk"}) {
		t.Errorf("Expected misc bucket [Buy milk], got %v", list.Categories.Misc)
	}
	if len(list.Categories.Important) != 0 {
		t.Errorf("Expected empty important bucket, got %v", list.Categories.Important)
	}
}

func TestFallbackCategorize_PriorityOrder(t *testing.T) {
	t.Parallel()

	// A line matching multiple families lands in the highest-priority bucket
	// only.
	list := FallbackCategorize("urgent and important weekly task")

	if len(list.Categories.Urgent) != 1 {
		t.Fatalf("Expected line in urgent bucket, got %+v", list.Categories)
	}
	if len(list.Categories.Important) != 0 || len(list.Categories.Routine) != 0 {
		t.Errorf("Expected line in exactly one bucket, got %+v", list.Categories)
	}
}

func TestFallbackCategorize_CaseInsensitive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want func(*models.CategoryBuckets) []string
	}{
		{"upper urgent", "ASAP: call vendor", func(b *models.CategoryBuckets) []string { return b.Urgent }},
		{"mixed important", "This is Essential work", func(b *models.CategoryBuckets) []string { return b.Important }},
		{"upper routine", "MONTHLY cleanup", func(b *models.CategoryBuckets) []string { return b.Routine }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			list := FallbackCategorize(tt.line)
			if bucket := tt.want(list.Categories); len(bucket) != 1 {
				t.Errorf("Expected %q in target bucket, got %+v", tt.line, list.Categories)
			}
		})
	}
}

func TestFallbackCategorize_Suggestions(t *testing.T) {
	t.Parallel()

	t.Run("one per non-empty bucket", func(t *testing.T) {
		t.Parallel()

		list := FallbackCategorize("urgent fix\nimportant thing\nrandom note")
		if len(list.Suggestions) != 3 {
			t.Errorf("Expected 3 suggestions, got %v", list.Suggestions)
		}
	})

	t.Run("empty input gets default", func(t *testing.T) {
		t.Parallel()

		list := FallbackCategorize("")
		if list.OriginalCount != 0 {
			t.Errorf("Expected original count 0, got %d", list.OriginalCount)
		}
		if len(list.Suggestions) != 1 {
			t.Fatalf("Expected single default suggestion, got %v", list.Suggestions)
		}
		if !strings.Contains(list.Suggestions[0], "No items were categorized") {
			t.Errorf("Unexpected default suggestion: %q", list.Suggestions[0])
		}
	})
}
