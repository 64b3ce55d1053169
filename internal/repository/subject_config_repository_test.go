package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolsuite/reportcard-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestSubjectConfigRepositoryListByGrade(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSubjectConfigRepository(db)
	rows := sqlmock.NewRows([]string{"id", "grade_level", "subject_name", "display_order", "active", "created_at"}).
		AddRow("cfg-1", "JSS 2", "Mathematics", 1, true, time.Now()).
		AddRow("cfg-2", "JSS 2", "French", 2, true, time.Now())
	mock.ExpectQuery("SELECT id, grade_level").
		WithArgs("JSS 2").
		WillReturnRows(rows)

	configs, err := repo.ListByGrade(context.Background(), "JSS 2")
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, "Mathematics", configs[0].SubjectName)
	assert.Equal(t, 2, configs[1].DisplayOrder)
}

func TestSubjectConfigRepositoryInsertAssignsNextOrder(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSubjectConfigRepository(db)
	mock.ExpectQuery("INSERT INTO subject_configs").
		WithArgs(sqlmock.AnyArg(), "JSS 2", "French", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"display_order"}).AddRow(3))

	cfg := &models.SubjectConfig{GradeLevel: "JSS 2", SubjectName: "French"}
	require.NoError(t, repo.Insert(context.Background(), cfg))
	assert.Equal(t, 3, cfg.DisplayOrder)
	assert.True(t, cfg.Active)
	assert.NotEmpty(t, cfg.ID)
}

func TestSubjectConfigRepositoryDeactivateMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSubjectConfigRepository(db)
	mock.ExpectExec("UPDATE subject_configs").
		WithArgs("cfg-404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Deactivate(context.Background(), "cfg-404")
	require.Error(t, err)
}
