package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/middleware"
)

// CatalogController handles catalog browsing operations
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// GetAllSubjects retrieves all subjects
// @Summary Get all subjects
// @Description Retrieves every subject with its code and descriptive name
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Subject} "Subjects retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects [get]
func (c *CatalogController) GetAllSubjects(ctx *gin.Context) {
	subjects, err := c.catalogService.GetAllSubjects(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      subjects,
		Timestamp: time.Now(),
	})
}

// GetAllEvalMetrics retrieves the evaluation metric catalog
// @Summary Get all evaluation metrics
// @Description Retrieves every evaluation metric with its slug, direction and value range
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.EvalMetric} "Metrics retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /eval-metrics [get]
func (c *CatalogController) GetAllEvalMetrics(ctx *gin.Context) {
	metrics, err := c.catalogService.GetAllEvalMetrics(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      metrics,
		Timestamp: time.Now(),
	})
}

// GetOfferingByID retrieves an offering by ID
// @Summary Get course offering by ID
// @Description Retrieves one course offering with its sections, schedules and instructors
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path int true "Offering ID"
// @Success 200 {object} dto.APIResponse{data=models.CourseOffering} "Offering retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid offering ID"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offerings/{id} [get]
func (c *CatalogController) GetOfferingByID(ctx *gin.Context) {
	idStr := ctx.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid offering ID")
		errorDetail = errorDetail.WithDetails("Offering ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	offering, err := c.catalogService.GetOfferingByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      offering,
		Timestamp: time.Now(),
	})
}
