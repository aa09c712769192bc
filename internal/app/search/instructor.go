package search

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// ResolverParams are the tuning constants of the instructor matcher. The
// defaults were chosen empirically when the ranking was calibrated; they are
// parameters rather than constants so deployments can re-tune without a
// rebuild.
type ResolverParams struct {
	FullNameWeight  float64
	LastNameWeight  float64
	FirstNameWeight float64
	TrustThreshold  float64
	KeepRatio       float64
	AssistantFactor float64
	BestWeight      float64
	AvgWeight       float64
	CrowdPenalty    float64
}

// DefaultResolverParams returns the calibrated instructor-matching constants.
func DefaultResolverParams() ResolverParams {
	return ResolverParams{
		FullNameWeight:  0.55,
		LastNameWeight:  0.95,
		FirstNameWeight: 0.15,
		TrustThreshold:  0.8,
		KeepRatio:       0.6,
		AssistantFactor: 0.5,
		BestWeight:      0.97,
		AvgWeight:       0.03,
		CrowdPenalty:    0.05,
	}
}

// Resolver turns a free-text query into per-offering instructor signals.
type Resolver struct {
	store  InstructorStore
	params ResolverParams
}

// NewResolver creates an instructor resolver over the given store.
func NewResolver(store InstructorStore, params ResolverParams) *Resolver {
	return &Resolver{
		store:  store,
		params: params,
	}
}

// CandidateScore is the per-candidate similarity the adaptive threshold works
// on: 1.0 for an exact account-identifier match, otherwise the better of
// full-name and last-name similarity.
func CandidateScore(c InstructorCandidate) float64 {
	if c.ExactAccount {
		return 1.0
	}
	return math.Max(c.FullNameSim, c.LastNameSim)
}

// FilterCandidates applies the adaptive threshold. When the best candidate
// scores above TrustThreshold, every candidate within KeepRatio of the best
// survives; when even the best match is weak, nobody does. Lowering KeepRatio
// never removes a previously admitted candidate.
func FilterCandidates(candidates []InstructorCandidate, p ResolverParams) []InstructorCandidate {
	var maxScore float64
	for _, c := range candidates {
		if s := CandidateScore(c); s > maxScore {
			maxScore = s
		}
	}
	if maxScore <= p.TrustThreshold {
		return nil
	}

	cutoff := p.KeepRatio * maxScore
	var kept []InstructorCandidate
	for _, c := range candidates {
		if CandidateScore(c) >= cutoff {
			kept = append(kept, c)
		}
	}
	return kept
}

// AdjustedScore blends a candidate's per-field similarities into one score for
// a single teaching assignment. The multiplicative blend emphasizes last-name
// similarity; assistant roles count for less.
func AdjustedScore(c InstructorCandidate, isAssistant bool, p ResolverParams) float64 {
	score := 1.0
	if !c.ExactAccount {
		score = 1 -
			(1-p.FullNameWeight*c.FullNameSim)*
				(1-p.LastNameWeight*c.LastNameSim)*
				(1-p.FirstNameWeight*c.FirstNameSim)
	}
	if isAssistant {
		score *= p.AssistantFactor
	}
	return score
}

// AggregateOffering folds all qualifying assignment scores of one offering
// into a single signal score. The best match dominates; a mild penalty grows
// with the number of distinct loosely matching instructors, since many weak
// matches indicate a noisy query rather than a precise one.
func AggregateOffering(scores []float64, distinctInstructors int, p ResolverParams) float64 {
	if len(scores) == 0 {
		return 0
	}
	var best, sum float64
	for _, s := range scores {
		if s > best {
			best = s
		}
		sum += s
	}
	avg := sum / float64(len(scores))
	return (p.BestWeight*best + p.AvgWeight*avg) / (1 + p.CrowdPenalty*float64(distinctInstructors-1))
}

// Signals resolves the query to instructor candidates, joins their teaching
// assignments within the eligibility filter, and emits one instructor signal
// per offering.
func (r *Resolver) Signals(ctx context.Context, f Filter, query string) ([]Signal, error) {
	candidates, err := r.store.Candidates(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("resolving instructor candidates: %w", err)
	}

	kept := FilterCandidates(candidates, r.params)
	if len(kept) == 0 {
		return nil, nil
	}

	byID := make(map[int64]InstructorCandidate, len(kept))
	ids := make([]int64, 0, len(kept))
	for _, c := range kept {
		byID[c.InstructorID] = c
		ids = append(ids, c.InstructorID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	assignments, err := r.store.Assignments(ctx, f, ids)
	if err != nil {
		return nil, fmt.Errorf("loading teaching assignments: %w", err)
	}

	type offeringAcc struct {
		scores      []float64
		instructors map[int64]struct{}
	}
	accs := make(map[int64]*offeringAcc)
	for _, a := range assignments {
		candidate, ok := byID[a.InstructorID]
		if !ok {
			continue
		}
		acc := accs[a.OfferingID]
		if acc == nil {
			acc = &offeringAcc{instructors: make(map[int64]struct{})}
			accs[a.OfferingID] = acc
		}
		acc.scores = append(acc.scores, AdjustedScore(candidate, a.IsAssistant, r.params))
		acc.instructors[a.InstructorID] = struct{}{}
	}

	signals := make([]Signal, 0, len(accs))
	for offeringID, acc := range accs {
		signals = append(signals, Signal{
			OfferingID: offeringID,
			Score:      AggregateOffering(acc.scores, len(acc.instructors), r.params),
			Kind:       SignalInstructor,
		})
	}
	sort.Slice(signals, func(i, j int) bool { return signals[i].OfferingID < signals[j].OfferingID })
	return signals, nil
}
