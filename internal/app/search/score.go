package search

// Weights are the per-strategy multipliers fusing signal maxima into one
// relevance score. Ordering reflects precision: an exact code match is the
// strongest signal, fallback the weakest.
type Weights struct {
	Code        float64
	Content     float64
	Instructor  float64
	SubjectName float64
	Fallback    float64
}

// DefaultWeights returns the multipliers the ranking was calibrated with.
func DefaultWeights() Weights {
	return Weights{
		Code:        7,
		Content:     6,
		Instructor:  4,
		SubjectName: 3,
		Fallback:    1,
	}
}

// OfferingScore is the combined relevance of one offering plus the distinct
// signal kinds that contributed to it.
type OfferingScore struct {
	OfferingID int64
	Relevance  float64
	MatchedOn  []SignalKind
}

// Combine groups signal tuples by offering and computes a weighted relevance
// score per offering, taking the maximum raw score per strategy. Subject-code
// tuples share the code term: their raw score is already damped, so bare
// subject matches rank below exact and partial code matches.
func Combine(signals []Signal, w Weights) map[int64]*OfferingScore {
	type acc struct {
		maxCode        float64
		maxContent     float64
		maxInstructor  float64
		maxSubjectName float64
		maxFallback    float64
		kinds          map[SignalKind]struct{}
	}

	accs := make(map[int64]*acc)
	for _, s := range signals {
		a := accs[s.OfferingID]
		if a == nil {
			a = &acc{kinds: make(map[SignalKind]struct{})}
			accs[s.OfferingID] = a
		}

		switch s.Kind {
		case SignalCode, SignalSubjectCode:
			if s.Score > a.maxCode {
				a.maxCode = s.Score
			}
		case SignalContent:
			if s.Score > a.maxContent {
				a.maxContent = s.Score
			}
		case SignalInstructor:
			if s.Score > a.maxInstructor {
				a.maxInstructor = s.Score
			}
		case SignalSubjectName:
			if s.Score > a.maxSubjectName {
				a.maxSubjectName = s.Score
			}
		case SignalFallback:
			if s.Score > a.maxFallback {
				a.maxFallback = s.Score
			}
		default:
			continue
		}
		a.kinds[s.Kind] = struct{}{}
	}

	scores := make(map[int64]*OfferingScore, len(accs))
	for id, a := range accs {
		relevance := w.Code*a.maxCode +
			w.Content*a.maxContent +
			w.Instructor*a.maxInstructor +
			w.SubjectName*a.maxSubjectName +
			w.Fallback*a.maxFallback

		matchedOn := make([]SignalKind, 0, len(a.kinds))
		for _, kind := range signalKindOrder {
			if _, ok := a.kinds[kind]; ok {
				matchedOn = append(matchedOn, kind)
			}
		}

		scores[id] = &OfferingScore{
			OfferingID: id,
			Relevance:  relevance,
			MatchedOn:  matchedOn,
		}
	}
	return scores
}
