package search

import "github.com/yigit/coursehub/internal/app/models"

// EvalRange is one [min,max] filter over a metric's smart averages. A nil
// bound is open.
type EvalRange struct {
	Slug models.EvalSlug
	Min  *float64
	Max  *float64
}

// Representative is the section chosen to stand for an offering in
// eval-filtered or eval-sorted results.
type Representative struct {
	SectionID int64
	Values    map[models.EvalSlug]*float64
}

// sectionQualifies reports whether a section satisfies every active range
// filter simultaneously. A section with no statistic for a filtered metric
// fails that filter.
func sectionQualifies(s SectionStats, filters []EvalRange) bool {
	for _, f := range filters {
		v := s.Values[f.Slug]
		if v == nil {
			return false
		}
		if f.Min != nil && *v < *f.Min {
			return false
		}
		if f.Max != nil && *v > *f.Max {
			return false
		}
	}
	return true
}

// SelectRepresentatives groups section statistics by offering, drops sections
// failing any active range filter, and keeps exactly one representative per
// offering. Offerings with no qualifying section are absent from the result:
// the eval filter is an existential filter over a per-section predicate, since
// the same offering can have sections that pass and sections that fail.
//
// When sortSlug is set, the winner is the section whose value for that metric
// is extremal under the requested direction, non-null beating null; otherwise
// the lowest qualifying section id wins. All ties break to the lower id.
func SelectRepresentatives(stats []SectionStats, filters []EvalRange, sortSlug models.EvalSlug, descending bool) map[int64]*Representative {
	reps := make(map[int64]*Representative)
	for _, s := range stats {
		if !sectionQualifies(s, filters) {
			continue
		}
		current := reps[s.OfferingID]
		if current == nil || betterRepresentative(s, current, sortSlug, descending) {
			reps[s.OfferingID] = &Representative{
				SectionID: s.SectionID,
				Values:    s.Values,
			}
		}
	}
	return reps
}

// betterRepresentative reports whether candidate should replace current.
func betterRepresentative(candidate SectionStats, current *Representative, sortSlug models.EvalSlug, descending bool) bool {
	if sortSlug != "" {
		cv := candidate.Values[sortSlug]
		xv := current.Values[sortSlug]
		switch {
		case cv == nil && xv == nil:
			// both unrated for the sort metric, fall through to the id tie-break
		case cv == nil:
			return false
		case xv == nil:
			return true
		case *cv != *xv:
			if descending {
				return *cv > *xv
			}
			return *cv < *xv
		}
	}
	return candidate.SectionID < current.SectionID
}
