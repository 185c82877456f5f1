package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alizia-edu/alizia-api/internal/dto"
	"github.com/alizia-edu/alizia-api/internal/models"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
)

type inclusionStore interface {
	Insert(ctx context.Context, plan *models.InclusionPlan) error
	ListByUser(ctx context.Context, userID int64) ([]models.InclusionPlan, error)
}

// InclusionService saves and lists inclusion-planning sessions. Saved
// plans are append-only; there is no update, delete or eviction.
type InclusionService struct {
	repo     inclusionStore
	validate *validator.Validate
	logger   *zap.Logger
}

// NewInclusionService constructs the service.
func NewInclusionService(repo inclusionStore, validate *validator.Validate, logger *zap.Logger) *InclusionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InclusionService{repo: repo, validate: validate, logger: logger}
}

// Save appends one planning session for the user.
func (s *InclusionService) Save(ctx context.Context, userID int64, req dto.SaveInclusionPlanRequest) (*models.InclusionPlan, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid inclusion plan")
	}

	plan := &models.InclusionPlan{
		ID:              uuid.NewString(),
		UserID:          userID,
		StudentName:     req.StudentName,
		Disability:      req.Disability,
		CourseSubjectID: req.CourseSubjectID,
		Adaptations:     req.Adaptations,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, plan); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save inclusion plan")
	}
	return plan, nil
}

// List returns the user's saved sessions, oldest first.
func (s *InclusionService) List(ctx context.Context, userID int64) ([]models.InclusionPlan, error) {
	plans, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list inclusion plans")
	}
	return plans, nil
}
