package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/middleware"
)

// SearchController handles course discovery requests
type SearchController struct {
	searchService services.SearchService
}

// NewSearchController creates a new SearchController
func NewSearchController(searchService services.SearchService) *SearchController {
	return &SearchController{
		searchService: searchService,
	}
}

// Search runs a course search
// @Summary Search course offerings
// @Description Searches course offerings of one academic year by free text and structured filters, ranked by relevance
// @Tags search
// @Accept json
// @Produce json
// @Param year query string true "Academic year, e.g. 2024-2025"
// @Param q query string false "Free-text query: course codes, subjects, instructor names or keywords"
// @Param quarters query []string false "Quarter filter (AUTUMN, WINTER, SPRING, SUMMER)" collectionFormat(multi)
// @Param ways query []string false "General education requirement filter" collectionFormat(multi)
// @Param unitsMin query int false "Minimum unit count"
// @Param unitsMax query int false "Maximum unit count"
// @Param sort query string false "Sort key: relevance, code, units or an evaluation metric slug" default(relevance)
// @Param order query string false "Sort order: asc or desc"
// @Param page query int false "Page number, 1-based" default(1)
// @Param ratingMin query number false "Minimum overall rating"
// @Param ratingMax query number false "Maximum overall rating"
// @Param hoursMin query number false "Minimum weekly hours"
// @Param hoursMax query number false "Maximum weekly hours"
// @Success 200 {object} dto.APIResponse{data=dto.SearchResponse} "One page of ranked results"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 503 {object} dto.ErrorResponse "Search backend unavailable"
// @Router /search [get]
func (c *SearchController) Search(ctx *gin.Context) {
	var req dto.SearchRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid search parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	input, err := req.ToInput()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out, err := c.searchService.Search(ctx, input)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewSearchResponse(out, input.Page),
		Timestamp: time.Now(),
	})
}
