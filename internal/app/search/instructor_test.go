package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateScore(t *testing.T) {
	assert.Equal(t, 1.0, CandidateScore(InstructorCandidate{ExactAccount: true, FullNameSim: 0.1}))
	assert.Equal(t, 0.8, CandidateScore(InstructorCandidate{FullNameSim: 0.8, LastNameSim: 0.4}))
	assert.Equal(t, 0.9, CandidateScore(InstructorCandidate{FullNameSim: 0.3, LastNameSim: 0.9}))
}

func TestFilterCandidates(t *testing.T) {
	p := DefaultResolverParams()

	t.Run("weak best match admits nobody", func(t *testing.T) {
		candidates := []InstructorCandidate{
			{InstructorID: 1, LastNameSim: 0.7},
			{InstructorID: 2, LastNameSim: 0.5},
		}
		assert.Nil(t, FilterCandidates(candidates, p))
	})

	t.Run("threshold is strict", func(t *testing.T) {
		candidates := []InstructorCandidate{{InstructorID: 1, LastNameSim: p.TrustThreshold}}
		assert.Nil(t, FilterCandidates(candidates, p))
	})

	t.Run("strong best keeps everyone within the ratio", func(t *testing.T) {
		candidates := []InstructorCandidate{
			{InstructorID: 1, LastNameSim: 0.9},
			{InstructorID: 2, LastNameSim: 0.6}, // 0.6 >= 0.6*0.9
			{InstructorID: 3, LastNameSim: 0.5}, // below the cutoff
			{InstructorID: 4, ExactAccount: true},
		}
		kept := FilterCandidates(candidates, p)
		require.Len(t, kept, 3)
		assert.Equal(t, int64(1), kept[0].InstructorID)
		assert.Equal(t, int64(2), kept[1].InstructorID)
		assert.Equal(t, int64(4), kept[2].InstructorID)
	})

	t.Run("lowering keep ratio never drops an admitted candidate", func(t *testing.T) {
		candidates := []InstructorCandidate{
			{InstructorID: 1, LastNameSim: 0.95},
			{InstructorID: 2, LastNameSim: 0.62},
		}
		strict := FilterCandidates(candidates, p)

		loose := p
		loose.KeepRatio = 0.3
		relaxed := FilterCandidates(candidates, loose)
		assert.GreaterOrEqual(t, len(relaxed), len(strict))
	})
}

func TestAdjustedScore(t *testing.T) {
	p := DefaultResolverParams()

	assert.Equal(t, 1.0, AdjustedScore(InstructorCandidate{ExactAccount: true}, false, p))
	assert.Equal(t, p.AssistantFactor, AdjustedScore(InstructorCandidate{ExactAccount: true}, true, p))

	// Perfect similarity on all three fields under the multiplicative blend:
	// 1 - (1-0.55)(1-0.95)(1-0.15)
	c := InstructorCandidate{FullNameSim: 1, LastNameSim: 1, FirstNameSim: 1}
	assert.InDelta(t, 0.980875, AdjustedScore(c, false, p), 1e-9)

	// Last-name similarity dominates the blend.
	lastOnly := AdjustedScore(InstructorCandidate{LastNameSim: 1}, false, p)
	firstOnly := AdjustedScore(InstructorCandidate{FirstNameSim: 1}, false, p)
	assert.Greater(t, lastOnly, firstOnly)
}

func TestAggregateOffering(t *testing.T) {
	p := DefaultResolverParams()

	assert.Zero(t, AggregateOffering(nil, 0, p))

	// A single assignment passes through untouched: best == avg, no penalty.
	assert.InDelta(t, 0.9, AggregateOffering([]float64{0.9}, 1, p), 1e-9)

	// (0.97*1.0 + 0.03*0.75) / (1 + 0.05*1)
	got := AggregateOffering([]float64{1.0, 0.5}, 2, p)
	assert.InDelta(t, (0.97+0.03*0.75)/1.05, got, 1e-9)

	// More loosely matching instructors means a lower aggregate.
	crowded := AggregateOffering([]float64{1.0, 1.0, 1.0}, 3, p)
	single := AggregateOffering([]float64{1.0}, 1, p)
	assert.Less(t, crowded, single)
}

func TestResolverSignals(t *testing.T) {
	store := &fakeInstructorStore{
		candidates: []InstructorCandidate{
			{InstructorID: 10, LastNameSim: 0.9},
			{InstructorID: 11, LastNameSim: 0.2}, // filtered out
		},
		assignments: []TeachingAssignment{
			{OfferingID: 1, SectionID: 100, InstructorID: 10},
			{OfferingID: 1, SectionID: 101, InstructorID: 10, IsAssistant: true},
			{OfferingID: 2, SectionID: 200, InstructorID: 10},
		},
	}
	r := NewResolver(store, DefaultResolverParams())

	signals, err := r.Signals(context.Background(), Filter{Year: "2024-2025"}, "sahami")
	require.NoError(t, err)
	require.Len(t, signals, 2)

	assert.Equal(t, int64(1), signals[0].OfferingID)
	assert.Equal(t, int64(2), signals[1].OfferingID)
	for _, s := range signals {
		assert.Equal(t, SignalInstructor, s.Kind)
		assert.Greater(t, s.Score, 0.0)
	}

	// The offering taught only as principal outranks the one where half the
	// assignments were assistant roles.
	assert.Greater(t, signals[1].Score, signals[0].Score)

	// Only admitted candidates reach the assignment query.
	assert.Equal(t, []int64{10}, store.requestedIDs)
}

func TestResolverSignalsNoTrustedCandidate(t *testing.T) {
	store := &fakeInstructorStore{
		candidates: []InstructorCandidate{{InstructorID: 10, LastNameSim: 0.4}},
	}
	r := NewResolver(store, DefaultResolverParams())

	signals, err := r.Signals(context.Background(), Filter{Year: "2024-2025"}, "smith")
	require.NoError(t, err)
	assert.Empty(t, signals)
	assert.False(t, store.assignmentsCalled)
}

type fakeInstructorStore struct {
	candidates        []InstructorCandidate
	assignments       []TeachingAssignment
	requestedIDs      []int64
	assignmentsCalled bool
	candidatesErr     error
	assignmentsErr    error
}

func (s *fakeInstructorStore) Candidates(_ context.Context, _ string) ([]InstructorCandidate, error) {
	return s.candidates, s.candidatesErr
}

func (s *fakeInstructorStore) Assignments(_ context.Context, _ Filter, ids []int64) ([]TeachingAssignment, error) {
	s.assignmentsCalled = true
	s.requestedIDs = ids
	return s.assignments, s.assignmentsErr
}
