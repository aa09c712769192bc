package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
)

// RefDataService caches the small reference datasets every search needs:
// subject codes for query parsing and the eval metric catalog for filter and
// sort validation. Both are loaded lazily on first use and kept for the
// process lifetime; the data only changes with a new catalog import.
type RefDataService interface {
	Subjects(ctx context.Context) ([]*models.Subject, error)
	SubjectCodes(ctx context.Context) ([]string, error)
	EvalMetrics(ctx context.Context) ([]*models.EvalMetric, error)
	EvalMetricIDs(ctx context.Context) (map[models.EvalSlug]int64, error)
}

type refDataServiceImpl struct {
	subjectRepo *repositories.SubjectRepository
	evalRepo    *repositories.EvalRepository

	mu        sync.Mutex
	subjects  []*models.Subject
	codes     []string
	metrics   []*models.EvalMetric
	metricIDs map[models.EvalSlug]int64
}

// NewRefDataService creates a new reference data service instance
func NewRefDataService(subjectRepo *repositories.SubjectRepository, evalRepo *repositories.EvalRepository) RefDataService {
	return &refDataServiceImpl{
		subjectRepo: subjectRepo,
		evalRepo:    evalRepo,
	}
}

// Subjects returns all subjects, loading them on first call.
func (s *refDataServiceImpl) Subjects(ctx context.Context) ([]*models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadSubjectsLocked(ctx); err != nil {
		return nil, err
	}
	return s.subjects, nil
}

// SubjectCodes returns every known subject code, ordered ascending.
func (s *refDataServiceImpl) SubjectCodes(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadSubjectsLocked(ctx); err != nil {
		return nil, err
	}
	return s.codes, nil
}

// EvalMetrics returns the evaluation metric catalog.
func (s *refDataServiceImpl) EvalMetrics(ctx context.Context) ([]*models.EvalMetric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadMetricsLocked(ctx); err != nil {
		return nil, err
	}
	return s.metrics, nil
}

// EvalMetricIDs returns the metric id for each known slug.
func (s *refDataServiceImpl) EvalMetricIDs(ctx context.Context) (map[models.EvalSlug]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadMetricsLocked(ctx); err != nil {
		return nil, err
	}
	return s.metricIDs, nil
}

// loadSubjectsLocked populates the subject cache. A failed load caches
// nothing, so the next request retries.
func (s *refDataServiceImpl) loadSubjectsLocked(ctx context.Context) error {
	if s.subjects != nil {
		return nil
	}

	subjects, err := s.subjectRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load subjects: %w", err)
	}

	codes := make([]string, len(subjects))
	for i, subject := range subjects {
		codes[i] = subject.Code
	}
	s.subjects = subjects
	s.codes = codes
	return nil
}

func (s *refDataServiceImpl) loadMetricsLocked(ctx context.Context) error {
	if s.metrics != nil {
		return nil
	}

	metrics, err := s.evalRepo.GetAllMetrics(ctx)
	if err != nil {
		return fmt.Errorf("failed to load eval metrics: %w", err)
	}

	ids := make(map[models.EvalSlug]int64, len(metrics))
	for _, metric := range metrics {
		ids[metric.Slug] = metric.ID
	}
	s.metrics = metrics
	s.metricIDs = ids
	return nil
}
