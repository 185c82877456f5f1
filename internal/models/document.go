package models

// DocumentStatus is the one-way lifecycle of a coordination document.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "draft"
	StatusPublished DocumentStatus = "published"
	StatusArchived  DocumentStatus = "archived"
)

// CanTransition reports whether the lifecycle allows moving to next.
// Only draft->published and published->archived are exposed.
func (s DocumentStatus) CanTransition(next DocumentStatus) bool {
	switch s {
	case StatusDraft:
		return next == StatusPublished
	case StatusPublished:
		return next == StatusArchived
	default:
		return false
	}
}

// ClassOutline is one planned class inside a subject plan.
type ClassOutline struct {
	ClassNumber int    `json:"class_number"`
	Content     string `json:"content"`
}

// SubjectPlan is the per-subject slice of a coordination document.
type SubjectPlan struct {
	SubjectName string         `json:"subject_name"`
	CategoryIDs []int64        `json:"category_ids"`
	Classes     []ClassOutline `json:"classes,omitempty"`
}

// CoordinationDocument is an area-level plan over a taxonomy subset.
type CoordinationDocument struct {
	ID           int64                 `json:"id"`
	AreaID       int64                 `json:"area_id"`
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	Status       DocumentStatus        `json:"status"`
	NucleusIDs   []int64               `json:"nucleus_ids"`
	CategoryIDs  []int64               `json:"category_ids"`
	SubjectsData map[int64]SubjectPlan `json:"subjects_data"`
}
