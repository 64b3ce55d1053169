package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schoolsuite/reportcard-api/internal/dto"
	"github.com/schoolsuite/reportcard-api/internal/ingest"
	"github.com/schoolsuite/reportcard-api/internal/models"
	appErrors "github.com/schoolsuite/reportcard-api/pkg/errors"
	"github.com/schoolsuite/reportcard-api/pkg/jobs"
	"github.com/schoolsuite/reportcard-api/pkg/tabular"
)

const renderJobType = "render_report_card"

// RenderJob is the payload queued for each normalized student record.
type RenderJob struct {
	ClassName  string
	GradeLevel string
	Record     *models.StudentRecord
}

type sheetReader interface {
	Read(src io.Reader) (*tabular.Sheet, error)
}

type configSnapshotter interface {
	Snapshot(ctx context.Context, gradeLevel string) ([]models.SubjectConfig, error)
}

type renderQueue interface {
	Enqueue(job jobs.Job) error
}

// UploadService turns an uploaded result spreadsheet into normalized student
// records and queues a report card render for each.
type UploadService struct {
	reader  sheetReader
	configs configSnapshotter
	queue   renderQueue
	metrics *MetricsService
	logger  *zap.Logger
}

// NewUploadService constructs the service.
func NewUploadService(reader sheetReader, configs configSnapshotter, queue renderQueue, metrics *MetricsService, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{reader: reader, configs: configs, queue: queue, metrics: metrics, logger: logger}
}

// Process ingests one spreadsheet for one class. An unreadable workbook fails
// the whole run; a failing configuration store degrades to candidate display
// names and the run continues.
func (s *UploadService) Process(ctx context.Context, className string, file io.Reader) (*dto.UploadSummary, error) {
	className = strings.TrimSpace(className)
	if className == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class_name is required")
	}

	warnings := make([]string, 0, 2)
	gradeLevel := ingest.BaseGradeLevel(className)
	schema, known := ingest.GetSchema(gradeLevel)
	if !known {
		warnings = append(warnings, fmt.Sprintf("grade level %q has no subject table; using the default subjects", gradeLevel))
		s.logger.Info("no schema bucket for grade level, using default subjects",
			zap.String("class_name", className),
			zap.String("grade_level", gradeLevel),
		)
	}

	sheet, err := s.reader.Read(file)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrFileParse.Code, appErrors.ErrFileParse.Status, appErrors.ErrFileParse.Message)
	}

	degraded := false
	configs, err := s.configs.Snapshot(ctx, gradeLevel)
	if err != nil {
		degraded = true
		configs = nil
		warnings = append(warnings, "subject configuration store unavailable; display names fall back to candidates")
		s.metrics.RecordConfigStoreDegraded()
		s.logger.Warn("subject configuration store unavailable, continuing with candidate names",
			zap.String("grade_level", gradeLevel),
			zap.Error(err),
		)
	}

	result := ingest.Ingest(sheet.Rows, schema, configs, s.logger)
	s.metrics.RecordUpload(
		result.Stats.RowsTotal-result.Stats.RowsSkipped,
		result.Stats.RowsSkipped,
		result.Stats.ParseFailures,
		result.Stats.DuplicateSubjects,
	)

	detected := ingest.DetectSubjects(sheet.Headers, gradeLevel)
	unconfigured := make([]string, 0)
	for _, name := range detected {
		if !subjectConfigured(name, configs) {
			unconfigured = append(unconfigured, name)
		}
	}

	queued := 0
	for _, record := range result.Store.All() {
		if s.queue == nil {
			break
		}
		job := jobs.Job{
			ID:   uuid.NewString(),
			Type: renderJobType,
			Payload: RenderJob{
				ClassName:  className,
				GradeLevel: gradeLevel,
				Record:     record,
			},
		}
		if err := s.queue.Enqueue(job); err != nil {
			s.logger.Warn("failed to queue report render",
				zap.String("student", record.DisplayName),
				zap.Error(err),
			)
			continue
		}
		queued++
	}

	return &dto.UploadSummary{
		ClassName:            className,
		GradeLevel:           gradeLevel,
		KnownGrade:           known,
		Students:             result.Store.Len(),
		RowsTotal:            result.Stats.RowsTotal,
		RowsSkipped:          result.Stats.RowsSkipped,
		ParseFailures:        result.Stats.ParseFailures,
		DuplicateSubjects:    result.Stats.DuplicateSubjects,
		DetectedSubjects:     detected,
		UnconfiguredSubjects: unconfigured,
		ConfigStoreDegraded:  degraded,
		ReportsQueued:        queued,
		Warnings:             warnings,
	}, nil
}
