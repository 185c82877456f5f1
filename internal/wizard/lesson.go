package wizard

import (
	"fmt"

	"github.com/alizia-edu/alizia-api/internal/dto"
	"github.com/alizia-edu/alizia-api/internal/models"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
)

// Lesson wizard steps.
const (
	LessonStepCategories = 1
	LessonStepMoments    = 2
)

// LessonDraft accumulates input across the two lesson wizard steps.
// Moments always carries exactly the three fixed phase keys.
type LessonDraft struct {
	Step            int                      `json:"step"`
	CourseSubjectID int64                    `json:"course_subject_id"`
	ClassNumber     int                      `json:"class_number"`
	CategoryIDs     []int64                  `json:"category_ids"`
	Moments         map[string]models.Moment `json:"moments"`
}

// NewLessonDraft returns the initial draft literal: step 1, no categories,
// three empty moments.
func NewLessonDraft() LessonDraft {
	moments := make(map[string]models.Moment, 3)
	for _, key := range models.MomentKeys() {
		moments[key] = models.Moment{ActivityIDs: []int64{}}
	}
	return LessonDraft{
		Step:        LessonStepCategories,
		CategoryIDs: []int64{},
		Moments:     moments,
	}
}

// Apply shallow-merges the update into the draft.
func (d *LessonDraft) Apply(update dto.LessonWizardUpdate) {
	if update.CourseSubjectID != nil {
		d.CourseSubjectID = *update.CourseSubjectID
	}
	if update.ClassNumber != nil {
		d.ClassNumber = *update.ClassNumber
	}
	if update.CategoryIDs != nil {
		d.CategoryIDs = append([]int64{}, (*update.CategoryIDs)...)
	}
}

// ToggleCategory selects or deselects a category. When the coordination
// document scoping this course-subject is known, selection is restricted
// to its categories; a nil allowed set accepts anything.
func (d *LessonDraft) ToggleCategory(id int64, allowed []int64) error {
	if idx := indexOf(d.CategoryIDs, id); idx >= 0 {
		d.CategoryIDs = append(d.CategoryIDs[:idx], d.CategoryIDs[idx+1:]...)
		return nil
	}
	if allowed != nil && indexOf(allowed, id) < 0 {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("category %d is not part of the coordination document", id))
	}
	d.CategoryIDs = append(d.CategoryIDs, id)
	return nil
}

// SetMoment replaces one lesson phase. The key must be one of the three
// fixed phases.
func (d *LessonDraft) SetMoment(key string, activityIDs []int64, notes string) error {
	if !models.IsMomentKey(key) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown moment %q", key))
	}
	d.Moments[key] = models.Moment{
		ActivityIDs: append([]int64{}, activityIDs...),
		Notes:       notes,
	}
	return nil
}

// Next advances one step. Step 1 requires at least one selected category.
func (d *LessonDraft) Next() error {
	switch d.Step {
	case LessonStepCategories:
		if len(d.CategoryIDs) == 0 {
			return appErrors.Clone(appErrors.ErrWizardStep, "select at least one category to continue")
		}
	case LessonStepMoments:
		return appErrors.Clone(appErrors.ErrWizardStep, "already at the last step")
	}
	d.Step++
	return nil
}

// Back returns to the previous step without discarding any entered data.
func (d *LessonDraft) Back() {
	if d.Step > LessonStepCategories {
		d.Step--
	}
}

// CanSubmit reports whether the terminal create action is allowed.
func (d *LessonDraft) CanSubmit() error {
	if d.CourseSubjectID <= 0 {
		return appErrors.Clone(appErrors.ErrWizardBlocked, "no course-subject selected")
	}
	if d.ClassNumber <= 0 {
		return appErrors.Clone(appErrors.ErrWizardBlocked, "class number is required")
	}
	if len(d.CategoryIDs) == 0 {
		return appErrors.Clone(appErrors.ErrWizardBlocked, "no categories selected")
	}
	return nil
}

// Payload assembles the single creation request from the whole draft.
func (d *LessonDraft) Payload() dto.CreateLessonPlanRequest {
	moments := make(map[string]models.Moment, len(d.Moments))
	for key, moment := range d.Moments {
		moments[key] = models.Moment{
			ActivityIDs: append([]int64{}, moment.ActivityIDs...),
			Notes:       moment.Notes,
		}
	}
	return dto.CreateLessonPlanRequest{
		CourseSubjectID: d.CourseSubjectID,
		ClassNumber:     d.ClassNumber,
		CategoryIDs:     append([]int64{}, d.CategoryIDs...),
		Moments:         moments,
	}
}
