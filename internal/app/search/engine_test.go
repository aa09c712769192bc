package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

type fakeCatalogStore struct {
	codeSignals        []Signal
	subjectCodeSignals []Signal
	contentSignals     []Signal
	subjectNameSignals []Signal
	eligibleIDs        []int64
	keys               map[int64]OfferingKey

	contentQueried     bool
	subjectNameQueried bool
	fallbackQueried    bool
	err                error
}

func (s *fakeCatalogStore) CodeSignals(_ context.Context, _ Filter, _ []CourseCode) ([]Signal, error) {
	return s.codeSignals, s.err
}

func (s *fakeCatalogStore) SubjectCodeSignals(_ context.Context, _ Filter, _ []string) ([]Signal, error) {
	return s.subjectCodeSignals, s.err
}

func (s *fakeCatalogStore) ContentSignals(_ context.Context, _ Filter, _ string) ([]Signal, error) {
	s.contentQueried = true
	return s.contentSignals, s.err
}

func (s *fakeCatalogStore) SubjectNameSignals(_ context.Context, _ Filter, _ string) ([]Signal, error) {
	s.subjectNameQueried = true
	return s.subjectNameSignals, s.err
}

func (s *fakeCatalogStore) EligibleOfferingIDs(_ context.Context, _ Filter) ([]int64, error) {
	s.fallbackQueried = true
	return s.eligibleIDs, s.err
}

func (s *fakeCatalogStore) OfferingKeys(_ context.Context, _ string, ids []int64) (map[int64]OfferingKey, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.keys != nil {
		return s.keys, nil
	}
	keys := make(map[int64]OfferingKey, len(ids))
	for _, id := range ids {
		keys[id] = OfferingKey{OfferingID: id, Subject: "CS", Number: int(id)}
	}
	return keys, nil
}

type fakeEvalStore struct {
	stats []SectionStats
	err   error
}

func (s *fakeEvalStore) SectionStats(_ context.Context, _ Filter, _ []int64, _ map[models.EvalSlug]int64) ([]SectionStats, error) {
	return s.stats, s.err
}

type fakeOfferingStore struct {
	err error
}

func (s *fakeOfferingStore) Hydrate(_ context.Context, year string, ids []int64) (map[int64]*models.CourseOffering, error) {
	if s.err != nil {
		return nil, s.err
	}
	offerings := make(map[int64]*models.CourseOffering, len(ids))
	for _, id := range ids {
		offerings[id] = &models.CourseOffering{
			ID:          id,
			SubjectCode: "CS",
			CodeNumber:  int(id),
			Year:        year,
			Title:       fmt.Sprintf("Course %d", id),
		}
	}
	return offerings, nil
}

type fakeRefData struct {
	subjects []string
	metrics  map[models.EvalSlug]int64
	err      error
}

func (s *fakeRefData) SubjectCodes(_ context.Context) ([]string, error) {
	return s.subjects, s.err
}

func (s *fakeRefData) EvalMetricIDs(_ context.Context) (map[models.EvalSlug]int64, error) {
	return s.metrics, s.err
}

func allMetricIDs() map[models.EvalSlug]int64 {
	ids := make(map[models.EvalSlug]int64, len(models.AllEvalSlugs))
	for i, slug := range models.AllEvalSlugs {
		ids[slug] = int64(i + 1)
	}
	return ids
}

func newTestEngine(catalog *fakeCatalogStore, instructors *fakeInstructorStore, evals *fakeEvalStore) *Engine {
	return NewEngine(
		catalog,
		instructors,
		evals,
		&fakeOfferingStore{},
		&fakeRefData{subjects: []string{"CS", "MATH"}, metrics: allMetricIDs()},
		DefaultOptions(),
		zerolog.Nop(),
	)
}

func TestEngineSearchCodeQuery(t *testing.T) {
	catalog := &fakeCatalogStore{
		codeSignals: []Signal{{OfferingID: 106, Score: 1.0, Kind: SignalCode}},
	}
	e := newTestEngine(catalog, &fakeInstructorStore{}, &fakeEvalStore{})

	out, err := e.Search(context.Background(), Input{Year: "2024-2025", Query: "CS 106A", Page: 1})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)

	res := out.Results[0]
	assert.Equal(t, int64(106), res.Offering.ID)
	assert.Equal(t, []string{"code"}, res.MatchedOn)
	assert.InDelta(t, 7.0, res.Relevance, 1e-9)
	assert.False(t, out.HasMore)

	// A short leftover must not reach the fuzzy strategies, and the fallback
	// never fires alongside real signals.
	assert.False(t, catalog.subjectNameQueried)
	assert.False(t, catalog.fallbackQueried)
}

func TestEngineSearchFreeTextFusesStrategies(t *testing.T) {
	catalog := &fakeCatalogStore{
		contentSignals:     []Signal{{OfferingID: 1, Score: 0.5, Kind: SignalContent}},
		subjectNameSignals: []Signal{{OfferingID: 1, Score: 0.4, Kind: SignalSubjectName}},
	}
	instructors := &fakeInstructorStore{
		candidates:  []InstructorCandidate{{InstructorID: 10, ExactAccount: true}},
		assignments: []TeachingAssignment{{OfferingID: 1, SectionID: 11, InstructorID: 10}},
	}
	e := newTestEngine(catalog, instructors, &fakeEvalStore{})

	out, err := e.Search(context.Background(), Input{Year: "2024-2025", Query: "sahami", Page: 1})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)

	res := out.Results[0]
	// content 6*0.5 + instructor 4*1.0 + subjectName 3*0.4
	assert.InDelta(t, 3.0+4.0+1.2, res.Relevance, 1e-9)
	assert.Equal(t, []string{"content", "instructor", "subjectName"}, res.MatchedOn)
	assert.True(t, catalog.contentQueried)
	assert.True(t, catalog.subjectNameQueried)
}

func TestEngineSearchBrowseMode(t *testing.T) {
	catalog := &fakeCatalogStore{eligibleIDs: []int64{1, 2, 3}}
	e := newTestEngine(catalog, &fakeInstructorStore{}, &fakeEvalStore{})

	out, err := e.Search(context.Background(), Input{Year: "2024-2025", Page: 1})
	require.NoError(t, err)
	require.Len(t, out.Results, 3)

	for _, res := range out.Results {
		assert.Equal(t, []string{MatchedOnAll}, res.MatchedOn)
		assert.InDelta(t, 0.5, res.Relevance, 1e-9)
	}
	// Flat scores: code order decides.
	assert.Equal(t, int64(1), out.Results[0].Offering.ID)
	assert.True(t, catalog.fallbackQueried)
}

func TestEngineSearchPagination(t *testing.T) {
	var ids []int64
	for i := int64(1); i <= 15; i++ {
		ids = append(ids, i)
	}
	catalog := &fakeCatalogStore{eligibleIDs: ids}
	e := newTestEngine(catalog, &fakeInstructorStore{}, &fakeEvalStore{})

	first, err := e.Search(context.Background(), Input{Year: "2024-2025", Page: 1})
	require.NoError(t, err)
	assert.Len(t, first.Results, 10)
	assert.True(t, first.HasMore)

	second, err := e.Search(context.Background(), Input{Year: "2024-2025", Page: 2})
	require.NoError(t, err)
	assert.Len(t, second.Results, 5)
	assert.False(t, second.HasMore)

	// Pages never overlap.
	assert.Equal(t, int64(11), second.Results[0].Offering.ID)
}

func TestEngineSearchEvalFilter(t *testing.T) {
	catalog := &fakeCatalogStore{eligibleIDs: []int64{1, 2}}
	evals := &fakeEvalStore{
		stats: []SectionStats{
			stats(1, 100, fv(4.5), nil),
			stats(2, 200, fv(2.0), nil),
		},
	}
	e := newTestEngine(catalog, &fakeInstructorStore{}, evals)

	out, err := e.Search(context.Background(), Input{
		Year:        "2024-2025",
		Page:        1,
		EvalFilters: []EvalRange{{Slug: models.EvalRating, Min: fv(4.0)}},
	})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, int64(1), out.Results[0].Offering.ID)
}

func TestEngineSearchEvalSort(t *testing.T) {
	catalog := &fakeCatalogStore{eligibleIDs: []int64{1, 2, 3}}
	evals := &fakeEvalStore{
		stats: []SectionStats{
			stats(1, 100, fv(3.0), nil),
			stats(2, 200, fv(4.9), nil),
			stats(3, 300, nil, nil),
		},
	}
	e := newTestEngine(catalog, &fakeInstructorStore{}, evals)

	out, err := e.Search(context.Background(), Input{
		Year: "2024-2025",
		Page: 1,
		Sort: "rating",
	})
	require.NoError(t, err)
	require.Len(t, out.Results, 3)

	// Ascending by default for non-relevance sorts, unrated offerings last.
	assert.Equal(t, int64(1), out.Results[0].Offering.ID)
	assert.Equal(t, int64(2), out.Results[1].Offering.ID)
	assert.Equal(t, int64(3), out.Results[2].Offering.ID)
}

func TestEngineSearchUnknownMetric(t *testing.T) {
	e := newTestEngine(&fakeCatalogStore{eligibleIDs: []int64{1}}, &fakeInstructorStore{}, &fakeEvalStore{})

	_, err := e.Search(context.Background(), Input{
		Year:        "2024-2025",
		Page:        1,
		EvalFilters: []EvalRange{{Slug: "vibes", Min: fv(1)}},
	})
	assert.ErrorIs(t, err, apperrors.ErrUnknownEvalMetric)
}

func TestEngineSearchUnknownSort(t *testing.T) {
	e := newTestEngine(&fakeCatalogStore{}, &fakeInstructorStore{}, &fakeEvalStore{})

	_, err := e.Search(context.Background(), Input{Year: "2024-2025", Page: 1, Sort: "popularity"})
	assert.ErrorIs(t, err, apperrors.ErrUnknownSortKey)
}

func TestEngineSearchNoMatches(t *testing.T) {
	e := newTestEngine(&fakeCatalogStore{}, &fakeInstructorStore{}, &fakeEvalStore{})

	out, err := e.Search(context.Background(), Input{Year: "2024-2025", Query: "CS 999", Page: 1})
	require.NoError(t, err)
	assert.Empty(t, out.Results)
	assert.False(t, out.HasMore)
}

func TestEngineSearchStoreFailureIsOpaque(t *testing.T) {
	catalog := &fakeCatalogStore{err: errors.New("connection refused")}
	e := newTestEngine(catalog, &fakeInstructorStore{}, &fakeEvalStore{})

	_, err := e.Search(context.Background(), Input{Year: "2024-2025", Query: "CS 106A", Page: 1})
	assert.ErrorIs(t, err, apperrors.ErrSearchUnavailable)
}

func TestEngineSearchRefDataFailureFailsRequest(t *testing.T) {
	e := NewEngine(
		&fakeCatalogStore{},
		&fakeInstructorStore{},
		&fakeEvalStore{},
		&fakeOfferingStore{},
		&fakeRefData{err: errors.New("cache load failed")},
		DefaultOptions(),
		zerolog.Nop(),
	)

	_, err := e.Search(context.Background(), Input{Year: "2024-2025", Query: "anything", Page: 1})
	assert.ErrorIs(t, err, apperrors.ErrSearchUnavailable)
}
