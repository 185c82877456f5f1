package dto

import "encoding/json"

// SaveInclusionPlanRequest appends one inclusion-planning session.
type SaveInclusionPlanRequest struct {
	StudentName     string          `json:"student_name" validate:"required"`
	Disability      string          `json:"disability" validate:"required"`
	CourseSubjectID int64           `json:"course_subject_id" validate:"required,gt=0"`
	Adaptations     json.RawMessage `json:"adaptations" validate:"required"`
}
