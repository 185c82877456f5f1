package dto

import "github.com/alizia-edu/alizia-api/internal/models"

// WeekGroup bundles lesson plans planned for the same week.
type WeekGroup struct {
	Week  int                 `json:"week"`
	Plans []models.LessonPlan `json:"plans"`
}

// UpdateLessonPlanRequest patches an existing plan.
type UpdateLessonPlanRequest struct {
	CategoryIDs *[]int64                  `json:"category_ids,omitempty"`
	Moments     *map[string]models.Moment `json:"moments,omitempty"`
	Status      *string                   `json:"status,omitempty"`
}
