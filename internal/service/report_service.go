package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schoolsuite/reportcard-api/internal/dto"
	"github.com/schoolsuite/reportcard-api/internal/ingest"
	"github.com/schoolsuite/reportcard-api/internal/models"
	appErrors "github.com/schoolsuite/reportcard-api/pkg/errors"
	"github.com/schoolsuite/reportcard-api/pkg/export"
	"github.com/schoolsuite/reportcard-api/pkg/jobs"
)

type archiveRepository interface {
	Create(ctx context.Context, item *models.ReportArchive) error
	GetByID(ctx context.Context, id string) (*models.ReportArchive, error)
	List(ctx context.Context, filter models.ArchiveFilter) ([]models.ReportArchive, int, error)
}

type archiveStorage interface {
	Save(filename string, data []byte) (string, error)
}

type downloadSigner interface {
	Generate(archiveID, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (archiveID, relPath string, expiresAt time.Time, err error)
}

type cardRenderer interface {
	RenderReportCard(card export.ReportCard) ([]byte, error)
}

// ReportService renders report card PDFs for normalized student records,
// archives them, and issues signed download links.
type ReportService struct {
	archives archiveRepository
	storage  archiveStorage
	signer   downloadSigner
	renderer cardRenderer
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(archives archiveRepository, storage archiveStorage, signer downloadSigner, renderer cardRenderer, metrics *MetricsService, logger *zap.Logger) *ReportService {
	if renderer == nil {
		renderer = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		archives: archives,
		storage:  storage,
		signer:   signer,
		renderer: renderer,
		metrics:  metrics,
		logger:   logger,
	}
}

// HandleRenderJob is the queue handler for render jobs produced by uploads.
func (s *ReportService) HandleRenderJob(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(RenderJob)
	if !ok {
		return fmt.Errorf("unexpected payload type for job %s", job.ID)
	}
	_, err := s.RenderAndArchive(ctx, payload.ClassName, payload.GradeLevel, payload.Record)
	return err
}

// RenderAndArchive builds the report card PDF for one student, stores it, and
// records the archive metadata row.
func (s *ReportService) RenderAndArchive(ctx context.Context, className, gradeLevel string, record *models.StudentRecord) (*models.ReportArchive, error) {
	if record == nil || record.DisplayName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student record is required")
	}

	card := buildReportCard(className, record)
	data, err := s.renderer.RenderReportCard(card)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report card")
	}

	archiveID := uuid.NewString()
	relPath := archivePath(gradeLevel, className, record.DisplayName, archiveID)
	if _, err := s.storage.Save(relPath, data); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store report card")
	}

	item := &models.ReportArchive{
		ID:          archiveID,
		StudentName: record.DisplayName,
		ClassTag:    className,
		GradeTag:    gradeLevel,
		FilePath:    relPath,
	}
	if err := s.archives.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record report archive")
	}

	s.metrics.RecordReportRendered()
	s.logger.Info("report card archived",
		zap.String("student", record.DisplayName),
		zap.String("class", className),
		zap.String("archive_id", item.ID),
	)
	return item, nil
}

// List returns archive rows for the filter plus the total count.
func (s *ReportService) List(ctx context.Context, filter models.ArchiveFilter) ([]models.ReportArchive, int, error) {
	records, total, err := s.archives.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list report archives")
	}
	return records, total, nil
}

// SignDownload issues a time-limited download token for an archive.
func (s *ReportService) SignDownload(ctx context.Context, archiveID string) (*dto.ArchiveDownloadResponse, error) {
	item, err := s.archives.GetByID(ctx, archiveID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report archive not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report archive")
	}
	token, expiresAt, err := s.signer.Generate(item.ID, item.FilePath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download")
	}
	return &dto.ArchiveDownloadResponse{ArchiveID: item.ID, Token: token, ExpiresAt: expiresAt}, nil
}

// ResolveDownload validates a token and returns the stored file path.
func (s *ReportService) ResolveDownload(token string) (string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid or expired download token")
	}
	return relPath, nil
}

// IndexCSV renders the archive listing for a filter as a CSV document.
func (s *ReportService) IndexCSV(ctx context.Context, filter models.ArchiveFilter) ([]byte, error) {
	records, _, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := export.Dataset{
		Headers: []string{"archive_id", "student_name", "class", "grade_level", "uploaded_at"},
	}
	for _, item := range records {
		data.Rows = append(data.Rows, map[string]string{
			"archive_id":   item.ID,
			"student_name": item.StudentName,
			"class":        item.ClassTag,
			"grade_level":  item.GradeTag,
			"uploaded_at":  item.UploadedAt.Format(time.RFC3339),
		})
	}
	return export.NewCSVExporter().Render(data)
}

func buildReportCard(className string, record *models.StudentRecord) export.ReportCard {
	average := ingest.StudentsAverage(record)
	card := export.ReportCard{
		StudentName:     record.DisplayName,
		ClassTag:        className,
		GradeTag:        ingest.BaseGradeLevel(className),
		GeneratedAt:     time.Now().UTC(),
		SchoolOpened:    record.Term.SchoolOpened,
		TimesPresent:    record.Term.TimesPresent,
		TimesAbsent:     record.Term.TimesAbsent,
		TeacherComment:  record.Term.TeacherComment,
		HeadComment:     record.Term.HeadComment,
		Effort:          record.Term.Effort,
		Behaviour:       record.Term.Behaviour,
		CumulativeScore: ingest.CumulativeScore(record),
		Average:         average,
		AverageGrade:    ingest.LetterGrade(average),
	}
	for _, subject := range record.Subjects {
		card.Subjects = append(card.Subjects, export.ReportCardSubject{
			Name:          subject.DisplayName,
			CAOne:         subject.Assessment.CAOne,
			CATwo:         subject.Assessment.CATwo,
			CAThree:       subject.Assessment.CAThree,
			CAFour:        subject.Assessment.CAFour,
			Exam:          subject.Assessment.Exam,
			Total:         subject.Assessment.Total,
			LetterGrade:   subject.Assessment.LetterGrade,
			Position:      subject.Assessment.Position,
			CohortAverage: subject.Assessment.CohortAverage,
			Remark:        subject.Assessment.Remark,
		})
	}
	return card
}

// archivePath builds a stable, filesystem-safe relative path for a rendered
// card. The archive ID suffix keeps repeated uploads from overwriting.
func archivePath(gradeLevel, className, studentName, archiveID string) string {
	return fmt.Sprintf("cards/%s/%s/%s-%s.pdf",
		slugify(gradeLevel), slugify(className), slugify(studentName), archiveID[:8])
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
