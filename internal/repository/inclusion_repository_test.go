package repository

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alizia-edu/alizia-api/internal/models"
)

func newInclusionMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestInclusionRepositoryInsertAndList(t *testing.T) {
	db, mock, cleanup := newInclusionMock(t)
	defer cleanup()
	repo := NewInclusionRepository(db)

	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	adaptations := json.RawMessage(`{"materials":"texto en braille"}`)

	mock.ExpectExec("INSERT INTO inclusion_plans").
		WithArgs("plan-1", int64(42), "María López", "visual", int64(9), adaptations, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Insert(context.Background(), &models.InclusionPlan{
		ID:              "plan-1",
		UserID:          42,
		StudentName:     "María López",
		Disability:      "visual",
		CourseSubjectID: 9,
		Adaptations:     adaptations,
		CreatedAt:       now,
	})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "user_id", "student_name", "disability", "course_subject_id", "adaptations", "created_at"}).
		AddRow("plan-0", int64(42), "Juan Ruiz", "auditiva", int64(8), []byte(`{}`), now.Add(-time.Hour)).
		AddRow("plan-1", int64(42), "María López", "visual", int64(9), []byte(`{"materials":"texto en braille"}`), now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, student_name, disability, course_subject_id, adaptations, created_at")).
		WithArgs(int64(42)).
		WillReturnRows(rows)

	plans, err := repo.ListByUser(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, plans, 2)

	// Oldest first, appended order preserved.
	assert.Equal(t, "plan-0", plans[0].ID)
	assert.Equal(t, "plan-1", plans[1].ID)
	assert.Equal(t, "María López", plans[1].StudentName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInclusionRepositoryListByUser_Empty(t *testing.T) {
	db, mock, cleanup := newInclusionMock(t)
	defer cleanup()
	repo := NewInclusionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "student_name", "disability", "course_subject_id", "adaptations", "created_at"})
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, student_name, disability, course_subject_id, adaptations, created_at")).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	plans, err := repo.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, plans)
	assert.NotNil(t, plans)
	assert.NoError(t, mock.ExpectationsWereMet())
}
