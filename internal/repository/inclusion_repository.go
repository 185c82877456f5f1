package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/alizia-edu/alizia-api/internal/models"
)

// InclusionRepository persists inclusion-planning sessions. The table is
// append-only: rows are inserted and listed, never updated or deleted.
type InclusionRepository struct {
	db *sqlx.DB
}

// NewInclusionRepository creates a new repository instance.
func NewInclusionRepository(db *sqlx.DB) *InclusionRepository {
	return &InclusionRepository{db: db}
}

// Insert appends one inclusion plan.
func (r *InclusionRepository) Insert(ctx context.Context, plan *models.InclusionPlan) error {
	query := `INSERT INTO inclusion_plans (id, user_id, student_name, disability, course_subject_id, adaptations, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		plan.ID,
		plan.UserID,
		plan.StudentName,
		plan.Disability,
		plan.CourseSubjectID,
		plan.Adaptations,
		plan.CreatedAt,
	)
	return err
}

// ListByUser returns all plans saved by a user, oldest first.
func (r *InclusionRepository) ListByUser(ctx context.Context, userID int64) ([]models.InclusionPlan, error) {
	query := `SELECT id, user_id, student_name, disability, course_subject_id, adaptations, created_at
		FROM inclusion_plans WHERE user_id = $1 ORDER BY created_at ASC`
	plans := []models.InclusionPlan{}
	if err := r.db.SelectContext(ctx, &plans, query, userID); err != nil {
		return nil, err
	}
	return plans, nil
}
