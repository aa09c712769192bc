package dto

import (
	"fmt"
	"strings"

	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/search"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// SearchRequest carries the query parameters of the search endpoint. The
// evaluation filters are explicit per-metric bounds rather than a free-form
// map, so the accepted surface is visible in the API schema.
type SearchRequest struct {
	Year     string   `form:"year" binding:"required" example:"2024-2025"`
	Q        string   `form:"q"`
	Quarters []string `form:"quarters" example:"AUTUMN"`
	Ways     []string `form:"ways" example:"WAY-FR"`
	UnitsMin *int     `form:"unitsMin" binding:"omitempty,min=0"`
	UnitsMax *int     `form:"unitsMax" binding:"omitempty,min=0"`
	Sort     string   `form:"sort" example:"relevance"`
	Order    string   `form:"order" example:"desc"`
	Page     int      `form:"page,default=1"`

	RatingMin         *float64 `form:"ratingMin"`
	RatingMax         *float64 `form:"ratingMax"`
	HoursMin          *float64 `form:"hoursMin"`
	HoursMax          *float64 `form:"hoursMax"`
	LearningMin       *float64 `form:"learningMin"`
	LearningMax       *float64 `form:"learningMax"`
	OrganizedMin      *float64 `form:"organizedMin"`
	OrganizedMax      *float64 `form:"organizedMax"`
	GoalsMin          *float64 `form:"goalsMin"`
	GoalsMax          *float64 `form:"goalsMax"`
	AttendInPersonMin *float64 `form:"attendInpersonMin"`
	AttendInPersonMax *float64 `form:"attendInpersonMax"`
	AttendOnlineMin   *float64 `form:"attendOnlineMin"`
	AttendOnlineMax   *float64 `form:"attendOnlineMax"`
}

// ToInput validates the request and converts it into an engine input.
func (r *SearchRequest) ToInput() (search.Input, error) {
	in := search.Input{
		Year:     r.Year,
		Query:    r.Q,
		Ways:     r.Ways,
		UnitsMin: r.UnitsMin,
		UnitsMax: r.UnitsMax,
		Sort:     r.Sort,
		Order:    r.Order,
		Page:     r.Page,
	}

	for _, q := range r.Quarters {
		term := strings.ToUpper(strings.TrimSpace(q))
		if !models.IsValidTerm(term) {
			return search.Input{}, fmt.Errorf("%w: unknown quarter %q", apperrors.ErrValidationFailed, q)
		}
		in.Quarters = append(in.Quarters, models.Term(term))
	}

	if r.UnitsMin != nil && r.UnitsMax != nil && *r.UnitsMin > *r.UnitsMax {
		return search.Input{}, fmt.Errorf("%w: unitsMin exceeds unitsMax", apperrors.ErrValidationFailed)
	}
	if r.Page < 1 {
		return search.Input{}, fmt.Errorf("%w: page must be positive", apperrors.ErrValidationFailed)
	}

	in.EvalFilters = r.evalRanges()
	for _, er := range in.EvalFilters {
		if er.Min != nil && er.Max != nil && *er.Min > *er.Max {
			return search.Input{}, fmt.Errorf("%w: empty %s range", apperrors.ErrValidationFailed, er.Slug)
		}
	}

	return in, nil
}

// evalRanges collects the per-metric bounds that are actually set.
func (r *SearchRequest) evalRanges() []search.EvalRange {
	bounds := []struct {
		slug     models.EvalSlug
		min, max *float64
	}{
		{models.EvalRating, r.RatingMin, r.RatingMax},
		{models.EvalHours, r.HoursMin, r.HoursMax},
		{models.EvalLearning, r.LearningMin, r.LearningMax},
		{models.EvalOrganized, r.OrganizedMin, r.OrganizedMax},
		{models.EvalGoals, r.GoalsMin, r.GoalsMax},
		{models.EvalAttendInPerson, r.AttendInPersonMin, r.AttendInPersonMax},
		{models.EvalAttendOnline, r.AttendOnlineMin, r.AttendOnlineMax},
	}

	var ranges []search.EvalRange
	for _, b := range bounds {
		if b.min == nil && b.max == nil {
			continue
		}
		ranges = append(ranges, search.EvalRange{Slug: b.slug, Min: b.min, Max: b.max})
	}
	return ranges
}

// SearchResultItem is one hit of a search response.
type SearchResultItem struct {
	Course    *models.CourseOffering `json:"course"`
	MatchedOn []string               `json:"matchedOn" example:"code"`
	Relevance float64                `json:"relevance" example:"7"`
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Results []SearchResultItem `json:"results"`
	Page    int                `json:"page" example:"1"`
	HasMore bool               `json:"hasMore" example:"true"`
}

// NewSearchResponse converts an engine output page into the response DTO.
func NewSearchResponse(out *search.Output, page int) *SearchResponse {
	resp := &SearchResponse{
		Results: make([]SearchResultItem, 0, len(out.Results)),
		Page:    page,
		HasMore: out.HasMore,
	}
	for _, res := range out.Results {
		resp.Results = append(resp.Results, SearchResultItem{
			Course:    res.Offering,
			MatchedOn: res.MatchedOn,
			Relevance: res.Relevance,
		})
	}
	return resp
}
