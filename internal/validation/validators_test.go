package validation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/taskmaster-app/taskmaster-api/internal/models"
)

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses whitespace runs",
			input: "a  b\t\tc\n\nd",
			want:  "a b c d",
		},
		{
			name:  "strips angle brackets",
			input: "<script>alert('x')</script>",
			want:  "scriptalert('x')/script",
		},
		{
			name:  "trims surrounding whitespace",
			input: "   hello   ",
			want:  "hello",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSanitizeText_Truncation(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("a", MaxInputLength+500)
	got := SanitizeText(input)

	if len(got) != MaxInputLength+len(TruncationMarker) {
		t.Errorf("Expected length %d, got %d", MaxInputLength+len(TruncationMarker), len(got))
	}
	if !strings.HasSuffix(got, TruncationMarker) {
		t.Error("Expected truncation marker suffix")
	}
}

func TestSanitizeText_TruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	// A two-byte rune straddling the byte limit must be dropped whole, not
	// cut mid-sequence.
	input := strings.Repeat("a", MaxInputLength-1) + "é" + strings.Repeat("b", 4)
	got := SanitizeText(input)

	if !utf8.ValidString(got) {
		t.Fatalf("Truncated output is not valid UTF-8, trailing bytes %q", got[len(got)-8:])
	}
	if !strings.HasSuffix(got, TruncationMarker) {
		t.Error("Expected truncation marker suffix")
	}
	if strings.ContainsRune(got, 'é') {
		t.Error("Expected the straddling rune to be dropped")
	}
}

func TestSanitizeMultiline_TruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("a", MaxInputLength-1) + "世界"
	got := SanitizeMultiline(input)

	if !utf8.ValidString(got) {
		t.Fatalf("Truncated output is not valid UTF-8, trailing bytes %q", got[len(got)-8:])
	}
	if !strings.HasSuffix(got, TruncationMarker) {
		t.Error("Expected truncation marker suffix")
	}
}

func TestSanitizeMultiline(t *testing.T) {
	t.Parallel()

	input := "1. Planning  \n\n  - define <b>scope</b>\t\n2. Launch"
	got := SanitizeMultiline(input)
	want := "1. Planning\n- define bscope/b\n2. Launch"

	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestValidatePlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		plan    *models.GeneratedPlan
		wantErr bool
	}{
		{
			name:    "nil plan",
			plan:    nil,
			wantErr: true,
		},
		{
			name:    "no tasks",
			plan:    &models.GeneratedPlan{},
			wantErr: true,
		},
		{
			name: "task without title",
			plan: &models.GeneratedPlan{
				Tasks: []models.PlanTask{{Description: "no title"}},
			},
			wantErr: true,
		},
		{
			name: "unknown priority",
			plan: &models.GeneratedPlan{
				Tasks: []models.PlanTask{{Title: "Do it", Priority: "extreme"}},
			},
			wantErr: true,
		},
		{
			name: "category without name",
			plan: &models.GeneratedPlan{
				Categories: []models.PlanCategory{{Color: "#333333"}},
				Tasks:      []models.PlanTask{{Title: "Do it"}},
			},
			wantErr: true,
		},
		{
			name: "valid plan",
			plan: &models.GeneratedPlan{
				Categories: []models.PlanCategory{{Name: "Work"}},
				Tasks:      []models.PlanTask{{Title: "Do it", Priority: "high"}},
			},
		},
		{
			name: "empty priority allowed",
			plan: &models.GeneratedPlan{
				Tasks: []models.PlanTask{{Title: "Do it"}},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidatePlan(tt.plan)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePlan() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateChecklist(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     *models.ChecklistDocument
		wantErr bool
	}{
		{"nil document", nil, true},
		{"no sections", &models.ChecklistDocument{}, true},
		{
			"untitled section",
			&models.ChecklistDocument{Sections: []models.ChecklistSection{{ID: 1}}},
			true,
		},
		{
			"valid document",
			&models.ChecklistDocument{Sections: []models.ChecklistSection{{ID: 1, Title: "Prep"}}},
			false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateChecklist(tt.doc)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChecklist() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCategorized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		list    *models.CategorizedList
		wantErr bool
	}{
		{"nil list", nil, true},
		{"missing categories", &models.CategorizedList{OriginalCount: 3}, true},
		{
			"valid list",
			&models.CategorizedList{OriginalCount: 0, Categories: &models.CategoryBuckets{}},
			false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateCategorized(tt.list)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCategorized() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePriority(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"high", "medium", "low"} {
		if err := ValidatePriority(valid); err != nil {
			t.Errorf("Expected %q to be valid, got %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "HIGH", "urgent", "none"} {
		if err := ValidatePriority(invalid); err == nil {
			t.Errorf("Expected %q to be invalid", invalid)
		}
	}
}

func TestValidateMessageRole(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"system", "user", "assistant"} {
		if err := ValidateMessageRole(valid); err != nil {
			t.Errorf("Expected %q to be valid, got %v", valid, err)
		}
	}
	if err := ValidateMessageRole("bot"); err == nil {
		t.Error("Expected 'bot' to be invalid")
	}
}
