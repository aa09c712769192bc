package services

import (
	"context"

	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
)

// CatalogService handles catalog browsing operations
type CatalogService interface {
	GetAllSubjects(ctx context.Context) ([]*models.Subject, error)
	GetAllEvalMetrics(ctx context.Context) ([]*models.EvalMetric, error)
	GetOfferingByID(ctx context.Context, id int64) (*models.CourseOffering, error)
}

type catalogServiceImpl struct {
	refData      RefDataService
	offeringRepo *repositories.OfferingRepository
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(refData RefDataService, offeringRepo *repositories.OfferingRepository) CatalogService {
	return &catalogServiceImpl{
		refData:      refData,
		offeringRepo: offeringRepo,
	}
}

// GetAllSubjects retrieves all subjects from the reference data cache.
func (s *catalogServiceImpl) GetAllSubjects(ctx context.Context) ([]*models.Subject, error) {
	return s.refData.Subjects(ctx)
}

// GetAllEvalMetrics retrieves the evaluation metric catalog.
func (s *catalogServiceImpl) GetAllEvalMetrics(ctx context.Context) ([]*models.EvalMetric, error) {
	return s.refData.EvalMetrics(ctx)
}

// GetOfferingByID retrieves one offering with its sections, schedules and
// instructors.
func (s *catalogServiceImpl) GetOfferingByID(ctx context.Context, id int64) (*models.CourseOffering, error) {
	return s.offeringRepo.GetByID(ctx, id)
}
