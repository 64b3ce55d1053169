package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolsuite/reportcard-api/internal/models"
	appErrors "github.com/schoolsuite/reportcard-api/pkg/errors"
	"github.com/schoolsuite/reportcard-api/pkg/jobs"
	"github.com/schoolsuite/reportcard-api/pkg/tabular"
)

type sheetReaderStub struct {
	sheet *tabular.Sheet
	err   error
}

func (s *sheetReaderStub) Read(io.Reader) (*tabular.Sheet, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sheet, nil
}

type snapshotterStub struct {
	configs []models.SubjectConfig
	err     error
}

func (s *snapshotterStub) Snapshot(context.Context, string) ([]models.SubjectConfig, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.configs, nil
}

type queueStub struct {
	jobs []jobs.Job
	err  error
}

func (q *queueStub) Enqueue(job jobs.Job) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func resultSheet() *tabular.Sheet {
	return &tabular.Sheet{
		Headers: []string{"names", "mathematics_total_score", "mathematics_grade"},
		Rows: []models.RawRow{
			{"names": "Amina Bello", "mathematics_total_score": "78", "mathematics_grade": "B3"},
			{"names": "Tunde Okafor", "mathematics_total_score": "55", "mathematics_grade": "C6"},
			{"names": "", "mathematics_total_score": "10"},
		},
	}
}

func TestUploadServiceProcess(t *testing.T) {
	queue := &queueStub{}
	service := NewUploadService(
		&sheetReaderStub{sheet: resultSheet()},
		&snapshotterStub{configs: []models.SubjectConfig{{SubjectName: "Mathematics"}}},
		queue,
		NewMetricsService(),
		nil,
	)

	summary, err := service.Process(context.Background(), "JSS 2A", bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, "JSS 2", summary.GradeLevel)
	assert.True(t, summary.KnownGrade)
	assert.Equal(t, 2, summary.Students)
	assert.Equal(t, 3, summary.RowsTotal)
	assert.Equal(t, 1, summary.RowsSkipped)
	assert.False(t, summary.ConfigStoreDegraded)
	assert.Empty(t, summary.Warnings)
	assert.Equal(t, 2, summary.ReportsQueued)
	assert.Contains(t, summary.DetectedSubjects, "Mathematics")
	require.Len(t, queue.jobs, 2)

	payload, ok := queue.jobs[0].Payload.(RenderJob)
	require.True(t, ok)
	assert.Equal(t, "Amina Bello", payload.Record.DisplayName)
	assert.Equal(t, "JSS 2", payload.GradeLevel)
}

func TestUploadServiceProcessUnreadableFile(t *testing.T) {
	service := NewUploadService(
		&sheetReaderStub{err: errors.New("zip: not a valid zip file")},
		&snapshotterStub{},
		&queueStub{},
		NewMetricsService(),
		nil,
	)

	_, err := service.Process(context.Background(), "JSS 2A", bytes.NewReader(nil))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrFileParse.Code, appErrors.FromError(err).Code)
}

func TestUploadServiceProcessDegradesWithoutConfigStore(t *testing.T) {
	queue := &queueStub{}
	service := NewUploadService(
		&sheetReaderStub{sheet: resultSheet()},
		&snapshotterStub{err: errors.New("connection refused")},
		queue,
		NewMetricsService(),
		nil,
	)

	summary, err := service.Process(context.Background(), "JSS 2A", bytes.NewReader(nil))
	require.NoError(t, err)
	assert.True(t, summary.ConfigStoreDegraded)
	require.Len(t, summary.Warnings, 1)
	assert.Contains(t, summary.Warnings[0], "configuration store unavailable")
	assert.Equal(t, 2, summary.Students)
	// Without configurations every detected subject is unconfigured.
	assert.Equal(t, summary.DetectedSubjects, summary.UnconfiguredSubjects)
}

func TestUploadServiceProcessRequiresClassName(t *testing.T) {
	service := NewUploadService(&sheetReaderStub{}, &snapshotterStub{}, &queueStub{}, NewMetricsService(), nil)

	_, err := service.Process(context.Background(), "   ", bytes.NewReader(nil))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUploadServiceProcessContinuesOnQueueFailure(t *testing.T) {
	service := NewUploadService(
		&sheetReaderStub{sheet: resultSheet()},
		&snapshotterStub{},
		&queueStub{err: errors.New("queue stopped")},
		NewMetricsService(),
		nil,
	)

	summary, err := service.Process(context.Background(), "JSS 2A", bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, 0, summary.ReportsQueued)
	assert.Equal(t, 2, summary.Students)
}
