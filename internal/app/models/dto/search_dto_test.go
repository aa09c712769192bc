package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

func fv(v float64) *float64 { return &v }
func iv(v int) *int         { return &v }

func TestSearchRequestToInput(t *testing.T) {
	req := SearchRequest{
		Year:      "2024-2025",
		Q:         "CS 106A",
		Quarters:  []string{"autumn", "Winter"},
		Ways:      []string{"WAY-FR"},
		UnitsMin:  iv(3),
		UnitsMax:  iv(5),
		Sort:      "rating",
		Order:     "desc",
		Page:      2,
		RatingMin: fv(4),
		HoursMax:  fv(12),
	}

	in, err := req.ToInput()
	require.NoError(t, err)

	assert.Equal(t, "2024-2025", in.Year)
	assert.Equal(t, "CS 106A", in.Query)
	assert.Equal(t, []models.Term{models.TermAutumn, models.TermWinter}, in.Quarters)
	assert.Equal(t, 2, in.Page)

	require.Len(t, in.EvalFilters, 2)
	assert.Equal(t, models.EvalRating, in.EvalFilters[0].Slug)
	assert.Equal(t, 4.0, *in.EvalFilters[0].Min)
	assert.Nil(t, in.EvalFilters[0].Max)
	assert.Equal(t, models.EvalHours, in.EvalFilters[1].Slug)
	assert.Equal(t, 12.0, *in.EvalFilters[1].Max)
}

func TestSearchRequestToInputValidation(t *testing.T) {
	tests := []struct {
		name string
		req  SearchRequest
	}{
		{"unknown quarter", SearchRequest{Year: "2024-2025", Page: 1, Quarters: []string{"FALL"}}},
		{"inverted unit range", SearchRequest{Year: "2024-2025", Page: 1, UnitsMin: iv(5), UnitsMax: iv(3)}},
		{"zero page", SearchRequest{Year: "2024-2025", Page: 0}},
		{"empty eval range", SearchRequest{Year: "2024-2025", Page: 1, RatingMin: fv(5), RatingMax: fv(4)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.req.ToInput()
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestSearchRequestNoEvalFilters(t *testing.T) {
	req := SearchRequest{Year: "2024-2025", Page: 1}
	in, err := req.ToInput()
	require.NoError(t, err)
	assert.Empty(t, in.EvalFilters)
}
