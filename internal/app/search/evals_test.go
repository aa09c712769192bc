package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursehub/internal/app/models"
)

func fv(v float64) *float64 { return &v }

func stats(offeringID, sectionID int64, rating, hours *float64) SectionStats {
	return SectionStats{
		OfferingID: offeringID,
		SectionID:  sectionID,
		Values: map[models.EvalSlug]*float64{
			models.EvalRating: rating,
			models.EvalHours:  hours,
		},
	}
}

func TestSelectRepresentativesFiltering(t *testing.T) {
	all := []SectionStats{
		stats(1, 100, fv(4.5), fv(10)),
		stats(1, 101, fv(3.0), fv(5)),
		stats(2, 200, nil, fv(8)),
		stats(3, 300, fv(4.8), nil),
	}
	filters := []EvalRange{{Slug: models.EvalRating, Min: fv(4.0)}}

	reps := SelectRepresentatives(all, filters, "", false)

	// Offering 1 keeps its qualifying section, offering 2 has no rating at
	// all and disappears, offering 3 qualifies.
	require.Len(t, reps, 2)
	assert.Equal(t, int64(100), reps[1].SectionID)
	assert.Equal(t, int64(300), reps[3].SectionID)
}

func TestSelectRepresentativesConjunction(t *testing.T) {
	// One section passes the rating filter, another the hours filter, but no
	// single section passes both, so the offering is dropped.
	all := []SectionStats{
		stats(1, 100, fv(4.5), fv(20)),
		stats(1, 101, fv(3.0), fv(5)),
	}
	filters := []EvalRange{
		{Slug: models.EvalRating, Min: fv(4.0)},
		{Slug: models.EvalHours, Max: fv(10.0)},
	}

	reps := SelectRepresentatives(all, filters, "", false)
	assert.Empty(t, reps)
}

func TestSelectRepresentativesMissingValueFailsFilter(t *testing.T) {
	all := []SectionStats{stats(1, 100, nil, fv(5))}
	filters := []EvalRange{{Slug: models.EvalRating, Min: fv(1.0)}}

	assert.Empty(t, SelectRepresentatives(all, filters, "", false))
}

func TestSelectRepresentativesSortMetricWinner(t *testing.T) {
	all := []SectionStats{
		stats(1, 100, fv(3.5), nil),
		stats(1, 101, fv(4.5), nil),
		stats(1, 102, nil, nil),
	}

	t.Run("descending picks the maximum", func(t *testing.T) {
		reps := SelectRepresentatives(all, nil, models.EvalRating, true)
		require.Contains(t, reps, int64(1))
		assert.Equal(t, int64(101), reps[1].SectionID)
	})

	t.Run("ascending picks the minimum", func(t *testing.T) {
		reps := SelectRepresentatives(all, nil, models.EvalRating, false)
		assert.Equal(t, int64(100), reps[1].SectionID)
	})

	t.Run("rated sections beat unrated ones", func(t *testing.T) {
		reps := SelectRepresentatives(all[2:], nil, models.EvalRating, true)
		assert.Equal(t, int64(102), reps[1].SectionID)

		reps = SelectRepresentatives(all[1:], nil, models.EvalRating, true)
		assert.Equal(t, int64(101), reps[1].SectionID)
	})
}

func TestSelectRepresentativesTieBreaksToLowerID(t *testing.T) {
	all := []SectionStats{
		stats(1, 101, fv(4.0), nil),
		stats(1, 100, fv(4.0), nil),
	}

	reps := SelectRepresentatives(all, nil, models.EvalRating, true)
	assert.Equal(t, int64(100), reps[1].SectionID)

	// No sort metric at all: lowest qualifying section id stands in.
	reps = SelectRepresentatives(all, nil, "", false)
	assert.Equal(t, int64(100), reps[1].SectionID)
}
