package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/schoolsuite/reportcard-api/internal/models"
)

// SubjectConfigRepository persists canonical subject names per grade level.
type SubjectConfigRepository struct {
	db *sqlx.DB
}

// NewSubjectConfigRepository constructs the repository.
func NewSubjectConfigRepository(db *sqlx.DB) *SubjectConfigRepository {
	return &SubjectConfigRepository{db: db}
}

// ListByGrade returns active subject configs for a grade level ordered by
// display order.
func (r *SubjectConfigRepository) ListByGrade(ctx context.Context, gradeLevel string) ([]models.SubjectConfig, error) {
	const query = `SELECT id, grade_level, subject_name, display_order, active, created_at
FROM subject_configs
WHERE grade_level = $1 AND active = TRUE
ORDER BY display_order ASC, subject_name ASC`
	var configs []models.SubjectConfig
	if err := r.db.SelectContext(ctx, &configs, query, gradeLevel); err != nil {
		return nil, fmt.Errorf("list subject configs: %w", err)
	}
	return configs, nil
}

// Insert appends a subject config at the end of the grade's display order.
// The order is computed in the INSERT itself so two concurrent inserts never
// read a stale max from the application side.
func (r *SubjectConfigRepository) Insert(ctx context.Context, cfg *models.SubjectConfig) error {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = time.Now().UTC()
	}
	cfg.Active = true

	const query = `INSERT INTO subject_configs (id, grade_level, subject_name, display_order, active, created_at)
SELECT $1, $2, $3, COALESCE(MAX(display_order), 0) + 1, TRUE, $4
FROM subject_configs WHERE grade_level = $2
RETURNING display_order`
	if err := r.db.QueryRowxContext(ctx, query, cfg.ID, cfg.GradeLevel, cfg.SubjectName, cfg.CreatedAt).
		Scan(&cfg.DisplayOrder); err != nil {
		return fmt.Errorf("insert subject config: %w", err)
	}
	return nil
}

// Deactivate soft-removes a subject config without disturbing the display
// order of the remaining rows.
func (r *SubjectConfigRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE subject_configs SET active = FALSE WHERE id = $1 AND active = TRUE`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate subject config: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check subject config rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("subject config %s not found", id)
	}
	return nil
}
