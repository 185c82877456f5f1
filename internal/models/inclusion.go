package models

import (
	"encoding/json"
	"time"
)

// InclusionPlan is a saved inclusion-planning session: an adaptation of a
// class for a student with a disability. Plans are append-only.
type InclusionPlan struct {
	ID              string          `db:"id" json:"id"`
	UserID          int64           `db:"user_id" json:"user_id"`
	StudentName     string          `db:"student_name" json:"student_name"`
	Disability      string          `db:"disability" json:"disability"`
	CourseSubjectID int64           `db:"course_subject_id" json:"course_subject_id"`
	Adaptations     json.RawMessage `db:"adaptations" json:"adaptations"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}
