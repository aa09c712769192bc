package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

func iv(v int) *int { return &v }

func TestParseSort(t *testing.T) {
	tests := []struct {
		name     string
		sort     string
		order    string
		expected SortSpec
	}{
		{"default is relevance descending", "", "", SortSpec{Key: SortRelevance, Descending: true}},
		{"relevance ascending", "relevance", "asc", SortSpec{Key: SortRelevance}},
		{"code defaults ascending", "code", "", SortSpec{Key: SortCode}},
		{"units descending", "units", "desc", SortSpec{Key: SortUnits, Descending: true}},
		{"eval slug", "rating", "", SortSpec{Key: SortEval, EvalSlug: models.EvalRating}},
		{"eval slug descending", "hours", "desc", SortSpec{Key: SortEval, EvalSlug: models.EvalHours, Descending: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := ParseSort(tc.sort, tc.order)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, spec)
		})
	}

	t.Run("unknown sort key", func(t *testing.T) {
		_, err := ParseSort("popularity", "")
		assert.ErrorIs(t, err, apperrors.ErrUnknownSortKey)
	})

	t.Run("invalid order", func(t *testing.T) {
		_, err := ParseSort("code", "sideways")
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func row(id int64, relevance float64, subject string, number int, suffix string) *Row {
	return &Row{
		OfferingID: id,
		Score:      &OfferingScore{OfferingID: id, Relevance: relevance},
		Key:        OfferingKey{OfferingID: id, Subject: subject, Number: number, Suffix: suffix},
	}
}

func rowIDs(rows []*Row) []int64 {
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.OfferingID
	}
	return ids
}

func TestSortRowsRelevance(t *testing.T) {
	rows := []*Row{
		row(3, 5, "CS", 110, ""),
		row(1, 10, "CS", 106, "B"),
		row(2, 10, "CS", 106, "A"),
		row(4, 10, "CS", 106, "A"),
	}

	SortRows(rows, SortSpec{Key: SortRelevance, Descending: true})

	// Relevance first, then code, then id keeps the order total.
	assert.Equal(t, []int64{2, 4, 1, 3}, rowIDs(rows))
}

func TestSortRowsCode(t *testing.T) {
	rows := []*Row{
		row(1, 1, "MATH", 51, ""),
		row(2, 1, "CS", 106, "B"),
		row(3, 1, "CS", 106, ""),
		row(4, 1, "CS", 106, "A"),
		row(5, 1, "CS", 8, ""),
	}

	SortRows(rows, SortSpec{Key: SortCode})

	// Subject asc, number asc, empty suffix before suffixed.
	assert.Equal(t, []int64{5, 3, 4, 2, 1}, rowIDs(rows))

	SortRows(rows, SortSpec{Key: SortCode, Descending: true})
	assert.Equal(t, []int64{1, 2, 4, 3, 5}, rowIDs(rows))
}

func TestSortRowsUnits(t *testing.T) {
	a := row(1, 1, "CS", 106, "A")
	a.Key.UnitsMin, a.Key.UnitsMax = iv(3), iv(5)
	b := row(2, 1, "CS", 110, "")
	b.Key.UnitsMin, b.Key.UnitsMax = iv(4), iv(4)
	c := row(3, 1, "CS", 120, "") // no units at all

	rows := []*Row{c, b, a}
	SortRows(rows, SortSpec{Key: SortUnits})
	// Ascending ranks by the bottom of the range, nulls last.
	assert.Equal(t, []int64{1, 2, 3}, rowIDs(rows))

	rows = []*Row{c, a, b}
	SortRows(rows, SortSpec{Key: SortUnits, Descending: true})
	// Descending ranks by the top of the range, nulls still last.
	assert.Equal(t, []int64{1, 2, 3}, rowIDs(rows))
}

func TestSortRowsEval(t *testing.T) {
	withRep := func(r *Row, rating *float64) *Row {
		r.Rep = &Representative{
			SectionID: r.OfferingID * 10,
			Values:    map[models.EvalSlug]*float64{models.EvalRating: rating},
		}
		return r
	}

	rows := []*Row{
		withRep(row(1, 1, "CS", 106, "A"), fv(3.9)),
		withRep(row(2, 1, "CS", 106, "B"), fv(4.7)),
		withRep(row(3, 1, "CS", 110, ""), nil),
	}

	SortRows(rows, SortSpec{Key: SortEval, EvalSlug: models.EvalRating, Descending: true})
	assert.Equal(t, []int64{2, 1, 3}, rowIDs(rows))

	SortRows(rows, SortSpec{Key: SortEval, EvalSlug: models.EvalRating})
	// Ascending flips the rated offerings but nulls stay last.
	assert.Equal(t, []int64{1, 2, 3}, rowIDs(rows))
}

func TestSortRowsDeterministic(t *testing.T) {
	build := func() []*Row {
		return []*Row{
			row(5, 2, "CS", 106, "A"),
			row(3, 2, "CS", 106, "A"),
			row(9, 2, "CS", 106, "A"),
		}
	}

	first := build()
	SortRows(first, SortSpec{Key: SortRelevance, Descending: true})
	second := build()
	SortRows(second, SortSpec{Key: SortRelevance, Descending: true})

	assert.Equal(t, rowIDs(first), rowIDs(second))
	assert.Equal(t, []int64{3, 5, 9}, rowIDs(first))
}

func TestPaginate(t *testing.T) {
	var rows []*Row
	for i := int64(1); i <= 15; i++ {
		rows = append(rows, row(i, 1, "CS", int(i), ""))
	}

	t.Run("first page overfetches to set hasMore", func(t *testing.T) {
		page, hasMore := Paginate(rows, 1, 10)
		assert.Len(t, page, 10)
		assert.True(t, hasMore)
		assert.Equal(t, int64(1), page[0].OfferingID)
	})

	t.Run("last partial page", func(t *testing.T) {
		page, hasMore := Paginate(rows, 2, 10)
		assert.Len(t, page, 5)
		assert.False(t, hasMore)
		assert.Equal(t, int64(11), page[0].OfferingID)
	})

	t.Run("page beyond the end", func(t *testing.T) {
		page, hasMore := Paginate(rows, 3, 10)
		assert.Empty(t, page)
		assert.False(t, hasMore)
	})

	t.Run("exact boundary has no extra page", func(t *testing.T) {
		page, hasMore := Paginate(rows[:10], 1, 10)
		assert.Len(t, page, 10)
		assert.False(t, hasMore)
	})
}
