package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alizia-edu/alizia-api/internal/dto"
	"github.com/alizia-edu/alizia-api/internal/models"
	"github.com/alizia-edu/alizia-api/internal/state"
	"github.com/alizia-edu/alizia-api/internal/wizard"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
)

type fakeLessonAPI struct {
	courseSubjects []models.CourseSubject
	courses        []models.Course
	status         *models.CoordinationStatus
	plans          []models.LessonPlan
	created        *models.LessonPlan
	reply          string

	createErr error

	patches map[int64]map[string]interface{}
	deleted []int64
}

func (f *fakeLessonAPI) CourseSubjects(context.Context) ([]models.CourseSubject, error) {
	return f.courseSubjects, nil
}

func (f *fakeLessonAPI) CourseSubject(_ context.Context, id int64) (*models.CourseSubject, error) {
	for i := range f.courseSubjects {
		if f.courseSubjects[i].ID == id {
			cs := f.courseSubjects[i]
			return &cs, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "course-subject not found")
}

func (f *fakeLessonAPI) CoordinationStatus(context.Context, int64) (*models.CoordinationStatus, error) {
	return f.status, nil
}

func (f *fakeLessonAPI) CourseSubjectLessonPlans(context.Context, int64) ([]models.LessonPlan, error) {
	return f.plans, nil
}

func (f *fakeLessonAPI) TeacherCourses(context.Context, int64) ([]models.Course, error) {
	return f.courses, nil
}

func (f *fakeLessonAPI) CreateLessonPlan(_ context.Context, _ dto.CreateLessonPlanRequest) (*models.LessonPlan, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakeLessonAPI) PatchLessonPlan(_ context.Context, id int64, patch map[string]interface{}) (*models.LessonPlan, error) {
	if f.patches == nil {
		f.patches = map[int64]map[string]interface{}{}
	}
	f.patches[id] = patch
	return &models.LessonPlan{ID: id}, nil
}

func (f *fakeLessonAPI) DeleteLessonPlan(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeLessonAPI) LessonChat(context.Context, int64, string) (string, error) {
	return f.reply, nil
}

func TestGroupPlansByWeek(t *testing.T) {
	plans := []models.LessonPlan{
		{ID: 3, ClassNumber: 4},
		{ID: 1, ClassNumber: 1},
		{ID: 2, ClassNumber: 2},
		{ID: 4, ClassNumber: 5},
	}

	groups := GroupPlansByWeek(plans, 2)

	require.Len(t, groups, 3)
	assert.Equal(t, 1, groups[0].Week)
	require.Len(t, groups[0].Plans, 2)
	assert.Equal(t, 1, groups[0].Plans[0].ClassNumber)
	assert.Equal(t, 2, groups[0].Plans[1].ClassNumber)

	assert.Equal(t, 2, groups[1].Week)
	assert.Equal(t, 4, groups[1].Plans[0].ClassNumber)

	assert.Equal(t, 3, groups[2].Week)
	assert.Equal(t, 5, groups[2].Plans[0].ClassNumber)
}

func TestGroupPlansByWeek_ZeroClassNumberFallsIntoWeekOne(t *testing.T) {
	groups := GroupPlansByWeek([]models.LessonPlan{{ID: 1, ClassNumber: 0}}, 2)
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].Week)
}

func TestGroupPlansByWeek_Empty(t *testing.T) {
	assert.Empty(t, GroupPlansByWeek(nil, 2))
}

func TestLessonServiceCourseSubjectsForUser_FiltersByTeacher(t *testing.T) {
	upstream := &fakeLessonAPI{courseSubjects: []models.CourseSubject{
		{ID: 1, TeacherID: 42},
		{ID: 2, TeacherID: 7},
		{ID: 3, TeacherID: 42},
	}}
	svc := NewLessonService(upstream, nil, zap.NewNop())
	store := state.New(models.User{ID: 42})

	mine, err := svc.CourseSubjectsForUser(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, int64(1), mine[0].ID)
	assert.Equal(t, int64(3), mine[1].ID)

	// The store keeps the full collection, not the filtered view.
	assert.Len(t, store.CourseSubjects(), 3)
}

func TestLessonServicePlansByWeek_SetsCurrentSelection(t *testing.T) {
	upstream := &fakeLessonAPI{plans: []models.LessonPlan{{ID: 1, ClassNumber: 1}}}
	svc := NewLessonService(upstream, nil, zap.NewNop())
	store := state.New(models.User{ID: 42})

	groups, err := svc.PlansByWeek(context.Background(), store, 9)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	current := store.CurrentCourseSubject()
	require.NotNil(t, current)
	assert.Equal(t, int64(9), *current)
}

func preparedLessonStore(t *testing.T) *state.Store {
	t.Helper()
	store := state.New(models.User{ID: 42})
	courseSubject := int64(9)
	classNumber := 3
	store.UpdateLessonWizard(dto.LessonWizardUpdate{CourseSubjectID: &courseSubject, ClassNumber: &classNumber})
	require.NoError(t, store.ToggleLessonWizardCategory(100))
	require.NoError(t, store.SetLessonWizardMoment(models.MomentApertura, []int64{1}, "ronda inicial"))
	return store
}

func TestLessonServiceSubmitWizard_ResetsDraftOnSuccess(t *testing.T) {
	upstream := &fakeLessonAPI{created: &models.LessonPlan{ID: 55}}
	svc := NewLessonService(upstream, nil, zap.NewNop())
	store := preparedLessonStore(t)

	plan, err := svc.SubmitWizard(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, int64(55), plan.ID)

	require.Equal(t, wizard.NewLessonDraft(), store.LessonWizard())
	current := store.CurrentLessonPlan()
	require.NotNil(t, current)
	assert.Equal(t, int64(55), *current)
}

func TestLessonServiceSubmitWizard_KeepsDraftOnFailure(t *testing.T) {
	upstream := &fakeLessonAPI{createErr: appErrors.Upstream(502, "backend down")}
	svc := NewLessonService(upstream, nil, zap.NewNop())
	store := preparedLessonStore(t)

	before := store.LessonWizard()
	_, err := svc.SubmitWizard(context.Background(), store)
	require.Error(t, err)

	assert.Equal(t, before, store.LessonWizard())
	assert.Nil(t, store.CurrentLessonPlan())
}

func TestLessonServiceSubmitWizard_BlockedWithoutCourseSubject(t *testing.T) {
	svc := NewLessonService(&fakeLessonAPI{}, nil, zap.NewNop())
	store := state.New(models.User{ID: 42})
	require.NoError(t, store.ToggleLessonWizardCategory(100))

	_, err := svc.SubmitWizard(context.Background(), store)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrWizardBlocked.Code, appErrors.FromError(err).Code)
}

func TestLessonServiceUpdate_RejectsUnknownMomentKey(t *testing.T) {
	upstream := &fakeLessonAPI{}
	svc := NewLessonService(upstream, nil, zap.NewNop())

	moments := map[string]models.Moment{"intermedio": {}}
	_, err := svc.Update(context.Background(), 1, dto.UpdateLessonPlanRequest{Moments: &moments})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, upstream.patches)
}

func TestLessonServiceUpdate_BuildsPatchFromProvidedFields(t *testing.T) {
	upstream := &fakeLessonAPI{}
	svc := NewLessonService(upstream, nil, zap.NewNop())

	categories := []int64{100, 101}
	_, err := svc.Update(context.Background(), 1, dto.UpdateLessonPlanRequest{CategoryIDs: &categories})
	require.NoError(t, err)

	patch := upstream.patches[1]
	require.NotNil(t, patch)
	assert.Equal(t, []int64{100, 101}, patch["category_ids"])
	_, hasMoments := patch["moments"]
	assert.False(t, hasMoments)
}

func TestLessonServiceUpdate_EmptyPatchRejected(t *testing.T) {
	svc := NewLessonService(&fakeLessonAPI{}, nil, zap.NewNop())
	_, err := svc.Update(context.Background(), 1, dto.UpdateLessonPlanRequest{})
	require.Error(t, err)
}

func TestLessonServiceDelete_ClearsMatchingSelection(t *testing.T) {
	upstream := &fakeLessonAPI{}
	svc := NewLessonService(upstream, nil, zap.NewNop())
	store := state.New(models.User{ID: 42})
	id := int64(5)
	store.SetCurrentLessonPlan(&id)

	require.NoError(t, svc.Delete(context.Background(), store, 5))
	assert.Nil(t, store.CurrentLessonPlan())
	assert.Equal(t, []int64{5}, upstream.deleted)
}

func TestLessonServiceChat_AppendsToLessonTranscriptOnly(t *testing.T) {
	upstream := &fakeLessonAPI{reply: "Propongo una lectura compartida."}
	svc := NewLessonService(upstream, nil, zap.NewNop())
	store := state.New(models.User{ID: 42})

	resp, err := svc.Chat(context.Background(), store, 5, "Necesito una clase de lectura")
	require.NoError(t, err)
	require.Len(t, resp.Transcript, 2)
	assert.Equal(t, models.ChatRoleUser, resp.Transcript[0].Role)
	assert.Equal(t, models.ChatRoleAssistant, resp.Transcript[1].Role)

	assert.Empty(t, store.DocumentChat())
}
