package dto

import "github.com/alizia-edu/alizia-api/internal/models"

// DocumentWizardUpdate shallow-merges fields into the document draft.
// Nil fields are left untouched.
type DocumentWizardUpdate struct {
	AreaID      *int64   `json:"area_id,omitempty"`
	StartDate   *string  `json:"start_date,omitempty"`
	EndDate     *string  `json:"end_date,omitempty"`
	NucleusIDs  *[]int64 `json:"nucleus_ids,omitempty"`
	CategoryIDs *[]int64 `json:"category_ids,omitempty"`
}

// AssignCategoryRequest moves a category into a subject bucket.
// A nil subject id drops it back into the unassigned zone.
type AssignCategoryRequest struct {
	CategoryID int64  `json:"category_id" validate:"required,gt=0"`
	SubjectID  *int64 `json:"subject_id,omitempty"`
}

// CreateDocumentRequest is the single POST payload assembled from the
// whole document draft on wizard completion.
type CreateDocumentRequest struct {
	AreaID       int64                        `json:"area_id" validate:"required,gt=0"`
	StartDate    string                       `json:"start_date" validate:"required"`
	EndDate      string                       `json:"end_date" validate:"required"`
	NucleusIDs   []int64                      `json:"nucleus_ids" validate:"required,min=1"`
	CategoryIDs  []int64                      `json:"category_ids" validate:"required,min=1"`
	SubjectsData map[int64]models.SubjectPlan `json:"subjects_data" validate:"required"`
}

// LessonWizardUpdate shallow-merges fields into the lesson draft.
type LessonWizardUpdate struct {
	CourseSubjectID *int64   `json:"course_subject_id,omitempty"`
	ClassNumber     *int     `json:"class_number,omitempty"`
	CategoryIDs     *[]int64 `json:"category_ids,omitempty"`
}

// MomentUpdate replaces one lesson phase of the lesson draft.
type MomentUpdate struct {
	Key         string  `json:"key" validate:"required"`
	ActivityIDs []int64 `json:"activity_ids"`
	Notes       string  `json:"notes"`
}

// CreateLessonPlanRequest is the single POST payload of the lesson wizard.
type CreateLessonPlanRequest struct {
	CourseSubjectID int64                    `json:"course_subject_id" validate:"required,gt=0"`
	ClassNumber     int                      `json:"class_number" validate:"required,gt=0"`
	CategoryIDs     []int64                  `json:"category_ids" validate:"required,min=1"`
	Moments         map[string]models.Moment `json:"moments" validate:"required"`
}
