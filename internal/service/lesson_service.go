package service

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/alizia-edu/alizia-api/internal/dto"
	"github.com/alizia-edu/alizia-api/internal/models"
	"github.com/alizia-edu/alizia-api/internal/state"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
)

type lessonAPI interface {
	CourseSubjects(ctx context.Context) ([]models.CourseSubject, error)
	CourseSubject(ctx context.Context, id int64) (*models.CourseSubject, error)
	CoordinationStatus(ctx context.Context, id int64) (*models.CoordinationStatus, error)
	CourseSubjectLessonPlans(ctx context.Context, id int64) ([]models.LessonPlan, error)
	TeacherCourses(ctx context.Context, teacherID int64) ([]models.Course, error)
	CreateLessonPlan(ctx context.Context, req dto.CreateLessonPlanRequest) (*models.LessonPlan, error)
	PatchLessonPlan(ctx context.Context, id int64, patch map[string]interface{}) (*models.LessonPlan, error)
	DeleteLessonPlan(ctx context.Context, id int64) error
	LessonChat(ctx context.Context, planID int64, content string) (string, error)
}

// DefaultClassesPerWeek is how many planned classes fall into one week
// when grouping lesson plans for display.
const DefaultClassesPerWeek = 2

// LessonService drives individual class planning: course-subject listing,
// weekly grouping, the lesson wizard and the lesson assistant chat.
type LessonService struct {
	upstream lessonAPI
	validate *validator.Validate
	logger   *zap.Logger
}

// NewLessonService constructs the service.
func NewLessonService(upstream lessonAPI, validate *validator.Validate, logger *zap.Logger) *LessonService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LessonService{upstream: upstream, validate: validate, logger: logger}
}

// CourseSubjectsForUser re-fetches the join collection, replaces the store
// slice and returns the rows taught by the current user.
func (s *LessonService) CourseSubjectsForUser(ctx context.Context, store *state.Store) ([]models.CourseSubject, error) {
	all, err := s.upstream.CourseSubjects(ctx)
	if err != nil {
		return nil, err
	}
	store.SetCourseSubjects(all)

	userID := store.CurrentUser().ID
	mine := []models.CourseSubject{}
	for _, cs := range all {
		if cs.TeacherID == userID {
			mine = append(mine, cs)
		}
	}
	return mine, nil
}

// TeacherCourses lists the courses the current user teaches in.
func (s *LessonService) TeacherCourses(ctx context.Context, store *state.Store) ([]models.Course, error) {
	return s.upstream.TeacherCourses(ctx, store.CurrentUser().ID)
}

// Status reports coordination coverage for one course-subject.
func (s *LessonService) Status(ctx context.Context, id int64) (*models.CoordinationStatus, error) {
	return s.upstream.CoordinationStatus(ctx, id)
}

// PlansByWeek fetches the plans of a course-subject grouped into weeks and
// marks the course-subject as the current selection.
func (s *LessonService) PlansByWeek(ctx context.Context, store *state.Store, courseSubjectID int64) ([]dto.WeekGroup, error) {
	plans, err := s.upstream.CourseSubjectLessonPlans(ctx, courseSubjectID)
	if err != nil {
		return nil, err
	}
	store.SetCurrentCourseSubject(&courseSubjectID)
	return GroupPlansByWeek(plans, DefaultClassesPerWeek), nil
}

// GroupPlansByWeek buckets plans by class number, perWeek classes to a
// week, weeks in ascending order.
func GroupPlansByWeek(plans []models.LessonPlan, perWeek int) []dto.WeekGroup {
	if perWeek <= 0 {
		perWeek = 1
	}

	byWeek := make(map[int][]models.LessonPlan)
	for _, plan := range plans {
		week := 1
		if plan.ClassNumber > 0 {
			week = (plan.ClassNumber-1)/perWeek + 1
		}
		byWeek[week] = append(byWeek[week], plan)
	}

	weeks := make([]int, 0, len(byWeek))
	for week := range byWeek {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)

	groups := make([]dto.WeekGroup, 0, len(weeks))
	for _, week := range weeks {
		bucket := byWeek[week]
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].ClassNumber < bucket[j].ClassNumber })
		groups = append(groups, dto.WeekGroup{Week: week, Plans: bucket})
	}
	return groups
}

// SubmitWizard assembles the lesson draft into one creation POST with the
// same terminal semantics as the document wizard: reset on success, draft
// left intact on failure.
func (s *LessonService) SubmitWizard(ctx context.Context, store *state.Store) (*models.LessonPlan, error) {
	payload, err := store.LessonWizardPayload()
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson plan payload")
	}

	plan, err := s.upstream.CreateLessonPlan(ctx, payload)
	if err != nil {
		return nil, err
	}

	store.ResetLessonWizard()
	store.SetCurrentLessonPlan(&plan.ID)
	return plan, nil
}

// Update patches an existing plan.
func (s *LessonService) Update(ctx context.Context, id int64, req dto.UpdateLessonPlanRequest) (*models.LessonPlan, error) {
	patch := map[string]interface{}{}
	if req.CategoryIDs != nil {
		patch["category_ids"] = *req.CategoryIDs
	}
	if req.Moments != nil {
		for key := range *req.Moments {
			if !models.IsMomentKey(key) {
				return nil, appErrors.Clone(appErrors.ErrValidation, "moments must use the fixed phase keys")
			}
		}
		patch["moments"] = *req.Moments
	}
	if req.Status != nil {
		patch["status"] = *req.Status
	}
	if len(patch) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "empty update")
	}
	return s.upstream.PatchLessonPlan(ctx, id, patch)
}

// Delete removes a plan and clears the selection pointer when it matches.
func (s *LessonService) Delete(ctx context.Context, store *state.Store, id int64) error {
	if err := s.upstream.DeleteLessonPlan(ctx, id); err != nil {
		return err
	}
	if current := store.CurrentLessonPlan(); current != nil && *current == id {
		store.SetCurrentLessonPlan(nil)
	}
	return nil
}

// Chat appends the user message to the lesson transcript, forwards it to
// the assistant and appends the reply. The document transcript is
// untouched.
func (s *LessonService) Chat(ctx context.Context, store *state.Store, planID int64, content string) (*dto.ChatResponse, error) {
	store.AppendLessonChat(models.ChatMessage{Role: models.ChatRoleUser, Content: content})

	replyContent, err := s.upstream.LessonChat(ctx, planID, content)
	if err != nil {
		return nil, err
	}

	reply := models.ChatMessage{Role: models.ChatRoleAssistant, Content: replyContent}
	store.AppendLessonChat(reply)
	return &dto.ChatResponse{Reply: reply, Transcript: store.LessonChat()}, nil
}
