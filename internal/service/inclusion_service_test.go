package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alizia-edu/alizia-api/internal/dto"
	"github.com/alizia-edu/alizia-api/internal/models"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
)

type fakeInclusionStore struct {
	inserted []*models.InclusionPlan
	plans    []models.InclusionPlan
	err      error
}

func (f *fakeInclusionStore) Insert(_ context.Context, plan *models.InclusionPlan) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, plan)
	return nil
}

func (f *fakeInclusionStore) ListByUser(context.Context, int64) ([]models.InclusionPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.plans, nil
}

func TestInclusionServiceSave_AssignsIDAndTimestamp(t *testing.T) {
	repo := &fakeInclusionStore{}
	svc := NewInclusionService(repo, nil, zap.NewNop())

	plan, err := svc.Save(context.Background(), 42, dto.SaveInclusionPlanRequest{
		StudentName:     "María López",
		Disability:      "visual",
		CourseSubjectID: 9,
		Adaptations:     json.RawMessage(`{"materials":"texto en braille"}`),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, int64(42), plan.UserID)
	assert.False(t, plan.CreatedAt.IsZero())
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, plan, repo.inserted[0])
}

func TestInclusionServiceSave_RejectsIncompleteRequest(t *testing.T) {
	repo := &fakeInclusionStore{}
	svc := NewInclusionService(repo, nil, zap.NewNop())

	_, err := svc.Save(context.Background(), 42, dto.SaveInclusionPlanRequest{StudentName: "María López"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.inserted)
}

func TestInclusionServiceList_WrapsRepositoryFailure(t *testing.T) {
	repo := &fakeInclusionStore{err: assert.AnError}
	svc := NewInclusionService(repo, nil, zap.NewNop())

	_, err := svc.List(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
