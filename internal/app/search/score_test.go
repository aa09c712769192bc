package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombine(t *testing.T) {
	w := DefaultWeights()

	t.Run("weighted sum of per-strategy maxima", func(t *testing.T) {
		signals := []Signal{
			{OfferingID: 1, Score: 1.0, Kind: SignalCode},
			{OfferingID: 1, Score: 0.5, Kind: SignalContent},
			{OfferingID: 1, Score: 0.3, Kind: SignalContent}, // weaker duplicate, ignored
			{OfferingID: 2, Score: 0.4, Kind: SignalSubjectName},
		}

		scores := Combine(signals, w)
		require.Len(t, scores, 2)

		assert.InDelta(t, 7*1.0+6*0.5, scores[1].Relevance, 1e-9)
		assert.Equal(t, []SignalKind{SignalCode, SignalContent}, scores[1].MatchedOn)

		assert.InDelta(t, 3*0.4, scores[2].Relevance, 1e-9)
		assert.Equal(t, []SignalKind{SignalSubjectName}, scores[2].MatchedOn)
	})

	t.Run("subject code shares the code slot", func(t *testing.T) {
		signals := []Signal{
			{OfferingID: 1, Score: 0.7, Kind: SignalCode},
			{OfferingID: 1, Score: 0.3, Kind: SignalSubjectCode},
		}

		scores := Combine(signals, w)
		require.Contains(t, scores, int64(1))

		// One slot, the stronger raw score wins; both labels survive.
		assert.InDelta(t, 7*0.7, scores[1].Relevance, 1e-9)
		assert.Equal(t, []SignalKind{SignalCode, SignalSubjectCode}, scores[1].MatchedOn)
	})

	t.Run("bare subject ranks below a partial code match", func(t *testing.T) {
		signals := []Signal{
			{OfferingID: 1, Score: 0.7, Kind: SignalCode},
			{OfferingID: 2, Score: 0.3, Kind: SignalSubjectCode},
		}
		scores := Combine(signals, w)
		assert.Greater(t, scores[1].Relevance, scores[2].Relevance)
	})

	t.Run("fallback weight", func(t *testing.T) {
		signals := []Signal{{OfferingID: 9, Score: 0.5, Kind: SignalFallback}}
		scores := Combine(signals, w)
		assert.InDelta(t, 0.5, scores[9].Relevance, 1e-9)
		assert.Equal(t, []SignalKind{SignalFallback}, scores[9].MatchedOn)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Combine(nil, w))
	})
}
