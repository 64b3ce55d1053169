package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/schoolsuite/reportcard-api/internal/dto"
	"github.com/schoolsuite/reportcard-api/internal/ingest"
	"github.com/schoolsuite/reportcard-api/internal/models"
	appErrors "github.com/schoolsuite/reportcard-api/pkg/errors"
)

type subjectConfigRepository interface {
	ListByGrade(ctx context.Context, gradeLevel string) ([]models.SubjectConfig, error)
	Insert(ctx context.Context, cfg *models.SubjectConfig) error
	Deactivate(ctx context.Context, id string) error
}

// SubjectConfigService manages the operator-approved subject names that
// ingestion uses to resolve display names.
type SubjectConfigService struct {
	repo      subjectConfigRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectConfigService constructs the service.
func NewSubjectConfigService(repo subjectConfigRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SubjectConfigService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectConfigService{repo: repo, cache: cache, validator: validate, logger: logger}
}

func subjectConfigCacheKey(gradeLevel string) string {
	return fmt.Sprintf("subject_configs:%s", gradeLevel)
}

// List returns the active configurations for a grade level, cached for the
// configured TTL.
func (s *SubjectConfigService) List(ctx context.Context, gradeLevel string) ([]models.SubjectConfig, error) {
	gradeLevel = strings.TrimSpace(gradeLevel)
	if gradeLevel == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "grade_level is required")
	}

	key := subjectConfigCacheKey(gradeLevel)
	var cached []models.SubjectConfig
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	configs, err := s.repo.ListByGrade(ctx, gradeLevel)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load subject configurations")
	}
	_ = s.cache.Set(ctx, key, configs, 0)
	return configs, nil
}

// Snapshot fetches the configuration set once for an ingestion run. It is the
// same lookup as List; the distinct name marks the read-once contract.
func (s *SubjectConfigService) Snapshot(ctx context.Context, gradeLevel string) ([]models.SubjectConfig, error) {
	return s.List(ctx, gradeLevel)
}

// Add appends a subject name for a grade level. Repeated calls with the same
// name create additional rows; the store keeps whatever the operator sends.
func (s *SubjectConfigService) Add(ctx context.Context, req dto.CreateSubjectConfigRequest) (*models.SubjectConfig, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject configuration payload")
	}

	cfg := &models.SubjectConfig{
		GradeLevel:  strings.TrimSpace(req.GradeLevel),
		SubjectName: strings.TrimSpace(req.SubjectName),
	}
	if err := s.repo.Insert(ctx, cfg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to store subject configuration")
	}

	if err := s.cache.Invalidate(ctx, subjectConfigCacheKey(cfg.GradeLevel)); err != nil {
		s.logger.Warn("subject config cache invalidation failed", zap.String("grade_level", cfg.GradeLevel), zap.Error(err))
	}
	return cfg, nil
}

// Remove deactivates a configuration row without renumbering the rest.
func (s *SubjectConfigService) Remove(ctx context.Context, id, gradeLevel string) error {
	if strings.TrimSpace(id) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "subject configuration not found")
	}
	if err := s.cache.Invalidate(ctx, subjectConfigCacheKey(gradeLevel)); err != nil {
		s.logger.Warn("subject config cache invalidation failed", zap.String("grade_level", gradeLevel), zap.Error(err))
	}
	return nil
}

// Detect reports which subjects a spreadsheet's headers appear to carry for
// the class's grade level and whether each is already configured.
func (s *SubjectConfigService) Detect(ctx context.Context, req dto.DetectSubjectsRequest) (*dto.DetectSubjectsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid detection payload")
	}

	gradeLevel := ingest.BaseGradeLevel(req.ClassName)
	_, known := ingest.GetSchema(gradeLevel)

	configs, err := s.repo.ListByGrade(ctx, gradeLevel)
	if err != nil {
		// Detection is advisory; report subjects as unconfigured rather
		// than failing the whole request.
		s.logger.Warn("subject config lookup failed during detection", zap.String("grade_level", gradeLevel), zap.Error(err))
		configs = nil
	}

	detected := ingest.DetectSubjects(req.Headers, gradeLevel)
	subjects := make([]dto.DetectedSubject, 0, len(detected))
	for _, name := range detected {
		subjects = append(subjects, dto.DetectedSubject{
			Name:       name,
			Configured: subjectConfigured(name, configs),
		})
	}

	return &dto.DetectSubjectsResponse{
		ClassName:    req.ClassName,
		GradeLevel:   gradeLevel,
		KnownGrade:   known,
		Subjects:     subjects,
		ScoreColumns: ingest.ScanHeaders(req.Headers),
	}, nil
}

// subjectConfigured mirrors the display-name resolution rule: a configured
// name counts when it and the subject name contain each other either way.
func subjectConfigured(name string, configs []models.SubjectConfig) bool {
	lower := strings.ToLower(name)
	for _, config := range configs {
		configured := strings.ToLower(strings.TrimSpace(config.SubjectName))
		if configured == "" {
			continue
		}
		if strings.Contains(lower, configured) || strings.Contains(configured, lower) {
			return true
		}
	}
	return false
}
