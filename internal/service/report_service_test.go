package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolsuite/reportcard-api/internal/models"
	appErrors "github.com/schoolsuite/reportcard-api/pkg/errors"
	"github.com/schoolsuite/reportcard-api/pkg/export"
	"github.com/schoolsuite/reportcard-api/pkg/jobs"
)

type archiveRepoStub struct {
	items   map[string]models.ReportArchive
	created []*models.ReportArchive
	err     error
}

func (s *archiveRepoStub) Create(ctx context.Context, item *models.ReportArchive) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, item)
	return nil
}

func (s *archiveRepoStub) GetByID(ctx context.Context, id string) (*models.ReportArchive, error) {
	if s.err != nil {
		return nil, s.err
	}
	if item, ok := s.items[id]; ok {
		return &item, nil
	}
	return nil, sql.ErrNoRows
}

func (s *archiveRepoStub) List(ctx context.Context, filter models.ArchiveFilter) ([]models.ReportArchive, int, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	out := make([]models.ReportArchive, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	return out, len(out), nil
}

type storageStub struct {
	saved map[string][]byte
	err   error
}

func (s *storageStub) Save(filename string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	s.saved[filename] = data
	return filename, nil
}

type signerStub struct {
	err error
}

func (s *signerStub) Generate(archiveID, relPath string) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return "token-" + archiveID, time.Now().Add(time.Minute), nil
}

func (s *signerStub) Parse(token string, allowExpired bool) (string, string, time.Time, error) {
	if s.err != nil {
		return "", "", time.Time{}, s.err
	}
	return "arc-1", "cards/report.pdf", time.Now().Add(time.Minute), nil
}

type rendererStub struct {
	card export.ReportCard
	err  error
}

func (r *rendererStub) RenderReportCard(card export.ReportCard) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.card = card
	return []byte("%PDF"), nil
}

func scoredRecord() *models.StudentRecord {
	return &models.StudentRecord{
		DisplayName: "Amina Bello",
		Term:        models.TermAttributes{SchoolOpened: 120, TimesPresent: 117},
		Subjects: []models.SubjectScore{
			{Key: "mathematics", DisplayName: "Mathematics", Assessment: models.AssessmentTuple{Total: 90}},
			{Key: "english_language", DisplayName: "English Language", Assessment: models.AssessmentTuple{Total: 0}},
			{Key: "french", DisplayName: "French", Assessment: models.AssessmentTuple{Total: 70}},
		},
	}
}

func TestReportServiceRenderAndArchive(t *testing.T) {
	repo := &archiveRepoStub{}
	store := &storageStub{}
	renderer := &rendererStub{}
	service := NewReportService(repo, store, &signerStub{}, renderer, NewMetricsService(), nil)

	item, err := service.RenderAndArchive(context.Background(), "JSS 2A", "JSS 2", scoredRecord())
	require.NoError(t, err)
	assert.Equal(t, "Amina Bello", item.StudentName)
	assert.Equal(t, "JSS 2A", item.ClassTag)
	assert.Equal(t, "JSS 2", item.GradeTag)
	require.Len(t, repo.created, 1)
	assert.Contains(t, item.FilePath, "cards/jss-2/jss-2a/amina-bello-")
	_, saved := store.saved[item.FilePath]
	assert.True(t, saved)

	// Derived metrics ignore the zero-total subject.
	assert.Equal(t, 160.0, renderer.card.CumulativeScore)
	assert.Equal(t, 80.0, renderer.card.Average)
	assert.Equal(t, "B3", renderer.card.AverageGrade)
	assert.Equal(t, 120, renderer.card.SchoolOpened)
}

func TestReportServiceHandleRenderJob(t *testing.T) {
	repo := &archiveRepoStub{}
	service := NewReportService(repo, &storageStub{}, &signerStub{}, &rendererStub{}, NewMetricsService(), nil)

	job := jobs.Job{
		ID:   "job-1",
		Type: renderJobType,
		Payload: RenderJob{
			ClassName:  "JSS 2A",
			GradeLevel: "JSS 2",
			Record:     scoredRecord(),
		},
	}
	require.NoError(t, service.HandleRenderJob(context.Background(), job))
	assert.Len(t, repo.created, 1)
}

func TestReportServiceHandleRenderJobBadPayload(t *testing.T) {
	service := NewReportService(&archiveRepoStub{}, &storageStub{}, &signerStub{}, &rendererStub{}, NewMetricsService(), nil)

	err := service.HandleRenderJob(context.Background(), jobs.Job{ID: "job-x", Payload: "nope"})
	require.Error(t, err)
}

func TestReportServiceSignDownloadMissing(t *testing.T) {
	service := NewReportService(&archiveRepoStub{}, &storageStub{}, &signerStub{}, &rendererStub{}, NewMetricsService(), nil)

	_, err := service.SignDownload(context.Background(), "arc-404")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestReportServiceSignDownload(t *testing.T) {
	repo := &archiveRepoStub{items: map[string]models.ReportArchive{
		"arc-1": {ID: "arc-1", FilePath: "cards/report.pdf"},
	}}
	service := NewReportService(repo, &storageStub{}, &signerStub{}, &rendererStub{}, NewMetricsService(), nil)

	resp, err := service.SignDownload(context.Background(), "arc-1")
	require.NoError(t, err)
	assert.Equal(t, "token-arc-1", resp.Token)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestReportServiceResolveDownloadRejectsBadToken(t *testing.T) {
	service := NewReportService(&archiveRepoStub{}, &storageStub{}, &signerStub{err: errors.New("invalid token signature")}, &rendererStub{}, NewMetricsService(), nil)

	_, err := service.ResolveDownload("garbage")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReportServiceIndexCSV(t *testing.T) {
	repo := &archiveRepoStub{items: map[string]models.ReportArchive{
		"arc-1": {ID: "arc-1", StudentName: "Amina Bello", ClassTag: "JSS 2A", GradeTag: "JSS 2", FilePath: "cards/a.pdf", UploadedAt: time.Now()},
	}}
	service := NewReportService(repo, &storageStub{}, &signerStub{}, &rendererStub{}, NewMetricsService(), nil)

	data, err := service.IndexCSV(context.Background(), models.ArchiveFilter{})
	require.NoError(t, err)
	assert.Contains(t, string(data), "Amina Bello")
	assert.Contains(t, string(data), "archive_id")
}
