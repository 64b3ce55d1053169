package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/schoolsuite/reportcard-api/internal/models"
)

// ArchiveRepository handles rendered report card metadata persistence.
type ArchiveRepository struct {
	db *sqlx.DB
}

// NewArchiveRepository constructs the repository.
func NewArchiveRepository(db *sqlx.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// Create stores metadata for a rendered report card file.
func (r *ArchiveRepository) Create(ctx context.Context, item *models.ReportArchive) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.UploadedAt.IsZero() {
		item.UploadedAt = time.Now().UTC()
	}
	const query = `INSERT INTO report_archives (id, student_name, class_tag, grade_tag, file_path, uploaded_at)
VALUES (:id, :student_name, :class_tag, :grade_tag, :file_path, :uploaded_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create report archive: %w", err)
	}
	return nil
}

// GetByID retrieves one archive row.
func (r *ArchiveRepository) GetByID(ctx context.Context, id string) (*models.ReportArchive, error) {
	const query = `SELECT id, student_name, class_tag, grade_tag, file_path, uploaded_at
FROM report_archives WHERE id = $1`
	var item models.ReportArchive
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns archive rows newest first, applying optional filters.
func (r *ArchiveRepository) List(ctx context.Context, filter models.ArchiveFilter) ([]models.ReportArchive, int, error) {
	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)

	if filter.ClassTag != "" {
		args = append(args, filter.ClassTag)
		conditions = append(conditions, fmt.Sprintf("class_tag = $%d", len(args)))
	}
	if filter.GradeTag != "" {
		args = append(args, filter.GradeTag)
		conditions = append(conditions, fmt.Sprintf("grade_tag = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM report_archives" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count report archives: %w", err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}

	query := fmt.Sprintf(`SELECT id, student_name, class_tag, grade_tag, file_path, uploaded_at
FROM report_archives%s ORDER BY uploaded_at DESC LIMIT %d OFFSET %d`, where, pageSize, (page-1)*pageSize)

	var records []models.ReportArchive
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list report archives: %w", err)
	}
	return records, total, nil
}
