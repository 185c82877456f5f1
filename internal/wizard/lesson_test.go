package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alizia-edu/alizia-api/internal/dto"
	"github.com/alizia-edu/alizia-api/internal/models"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
)

func TestLessonDraft_InitialShapeHasThreeMoments(t *testing.T) {
	draft := NewLessonDraft()

	assert.Equal(t, LessonStepCategories, draft.Step)
	assert.Empty(t, draft.CategoryIDs)
	require.Len(t, draft.Moments, 3)
	for _, key := range models.MomentKeys() {
		moment, ok := draft.Moments[key]
		require.True(t, ok, "missing moment %s", key)
		assert.Empty(t, moment.ActivityIDs)
		assert.Empty(t, moment.Notes)
	}
}

func TestLessonDraft_ToggleCategoryHonorsAllowedSet(t *testing.T) {
	draft := NewLessonDraft()

	err := draft.ToggleCategory(9, []int64{1, 2})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	require.NoError(t, draft.ToggleCategory(1, []int64{1, 2}))
	assert.Equal(t, []int64{1}, draft.CategoryIDs)

	// Deselection never consults the allowed set.
	require.NoError(t, draft.ToggleCategory(1, nil))
	assert.Empty(t, draft.CategoryIDs)

	// A nil allowed set accepts anything.
	require.NoError(t, draft.ToggleCategory(9, nil))
	assert.Equal(t, []int64{9}, draft.CategoryIDs)
}

func TestLessonDraft_SetMomentRejectsUnknownKey(t *testing.T) {
	draft := NewLessonDraft()

	err := draft.SetMoment("intermedio", []int64{1}, "x")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	require.NoError(t, draft.SetMoment(models.MomentDesarrollo, []int64{4, 5}, "trabajo en grupos"))
	assert.Equal(t, []int64{4, 5}, draft.Moments[models.MomentDesarrollo].ActivityIDs)
	assert.Equal(t, "trabajo en grupos", draft.Moments[models.MomentDesarrollo].Notes)
	assert.Len(t, draft.Moments, 3)
}

func TestLessonDraft_NextRequiresCategory(t *testing.T) {
	draft := NewLessonDraft()

	err := draft.Next()
	require.Error(t, err)
	assert.Equal(t, LessonStepCategories, draft.Step)

	require.NoError(t, draft.ToggleCategory(1, nil))
	require.NoError(t, draft.Next())
	assert.Equal(t, LessonStepMoments, draft.Step)

	err = draft.Next()
	require.Error(t, err)
	assert.Equal(t, LessonStepMoments, draft.Step)

	draft.Back()
	assert.Equal(t, LessonStepCategories, draft.Step)
	assert.Equal(t, []int64{1}, draft.CategoryIDs)
}

func TestLessonDraft_CanSubmit(t *testing.T) {
	draft := NewLessonDraft()
	require.Error(t, draft.CanSubmit())

	draft.Apply(dto.LessonWizardUpdate{
		CourseSubjectID: ptrInt64(12),
		ClassNumber:     ptrInt(3),
	})
	require.Error(t, draft.CanSubmit())

	require.NoError(t, draft.ToggleCategory(1, nil))
	assert.NoError(t, draft.CanSubmit())
}

func TestLessonDraft_PayloadCopiesMoments(t *testing.T) {
	draft := NewLessonDraft()
	draft.Apply(dto.LessonWizardUpdate{CourseSubjectID: ptrInt64(12), ClassNumber: ptrInt(3)})
	require.NoError(t, draft.ToggleCategory(1, nil))
	require.NoError(t, draft.SetMoment(models.MomentApertura, []int64{7}, "ronda inicial"))

	payload := draft.Payload()
	assert.Equal(t, int64(12), payload.CourseSubjectID)
	assert.Equal(t, 3, payload.ClassNumber)
	assert.Equal(t, []int64{1}, payload.CategoryIDs)
	require.Len(t, payload.Moments, 3)
	assert.Equal(t, []int64{7}, payload.Moments[models.MomentApertura].ActivityIDs)

	// Mutating the payload must not leak back into the draft.
	payload.Moments[models.MomentApertura].ActivityIDs[0] = 99
	assert.Equal(t, []int64{7}, draft.Moments[models.MomentApertura].ActivityIDs)
}

func ptrInt64(v int64) *int64 { return &v }

func ptrInt(v int) *int { return &v }
