package models

// Transient extraction results. These are computed per request from model
// output or the heuristic fallback and are never persisted directly; only a
// GeneratedPlan is ever materialized into Category/Task rows.

// StatusNotSpecified is the default for checklist status fields the input
// never mentioned.
const StatusNotSpecified = "Status not specified"

// ChecklistSection is one numbered section of an imported checklist.
type ChecklistSection struct {
	ID             int      `json:"id"`
	Title          string   `json:"title" validate:"required"`
	OwnerStatus    string   `json:"ownerStatus"`
	ReviewerStatus string   `json:"reviewerStatus"`
	Actions        []string `json:"actions"`
}

// ChecklistDocument is the structured form of a pasted checklist.
type ChecklistDocument struct {
	Sections []ChecklistSection `json:"sections" validate:"required,min=1,dive"`
}

// CategoryBuckets holds the four fixed restructuring buckets. A line appears
// in exactly one bucket.
type CategoryBuckets struct {
	Urgent    []string `json:"urgent"`
	Important []string `json:"important"`
	Routine   []string `json:"routine"`
	Misc      []string `json:"misc"`
}

// CategorizedList is the structured form of a restructured free-form list.
type CategorizedList struct {
	OriginalCount int              `json:"originalCount" validate:"min=0"`
	Categories    *CategoryBuckets `json:"categories" validate:"required"`
	Suggestions   []string         `json:"suggestions"`
}

// PlanCategory is a category proposed by task generation.
type PlanCategory struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"`
}

// PlanTask is a task proposed by task generation. CategoryName may name a
// category that does not exist; materialization then leaves the task
// uncategorized rather than failing.
type PlanTask struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	CategoryName string `json:"category_name"`
	Priority     string `json:"priority" validate:"omitempty,priority"`
}

// GeneratedPlan is the model's proposed set of categories and tasks.
type GeneratedPlan struct {
	Categories []PlanCategory `json:"categories" validate:"dive"`
	Tasks      []PlanTask     `json:"tasks" validate:"required,min=1,dive"`
}
