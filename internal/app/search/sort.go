package search

import (
	"fmt"
	"sort"

	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/helpers"
)

// SortKey selects one of the supported sort families.
type SortKey int

// Sort families
const (
	SortRelevance SortKey = iota
	SortCode
	SortUnits
	SortEval
)

// SortSpec fully describes the requested ordering.
type SortSpec struct {
	Key        SortKey
	EvalSlug   models.EvalSlug // set when Key == SortEval
	Descending bool
}

// ParseSort maps request sort/order values to a SortSpec. An empty sort means
// relevance; an empty order defaults to descending for relevance and
// ascending for everything else.
func ParseSort(sortValue, order string) (SortSpec, error) {
	var spec SortSpec
	switch sortValue {
	case "", "relevance":
		spec.Key = SortRelevance
	case "code":
		spec.Key = SortCode
	case "units":
		spec.Key = SortUnits
	default:
		if !models.IsValidEvalSlug(sortValue) {
			return SortSpec{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownSortKey, sortValue)
		}
		spec.Key = SortEval
		spec.EvalSlug = models.EvalSlug(sortValue)
	}

	switch order {
	case "":
		spec.Descending = spec.Key == SortRelevance
	case "desc":
		spec.Descending = true
	case "asc":
		spec.Descending = false
	default:
		return SortSpec{}, fmt.Errorf("%w: order %q", apperrors.ErrValidationFailed, order)
	}
	return spec, nil
}

// Row is one ranked offering before hydration.
type Row struct {
	OfferingID int64
	Score      *OfferingScore
	Key        OfferingKey
	Rep        *Representative // nil unless the evaluation join ran
}

// SortRows orders rows under the requested sort family. Every family ends in
// a total-order tie-break chain so identical requests paginate identically.
func SortRows(rows []*Row, spec SortSpec) {
	var less func(a, b *Row) bool
	switch spec.Key {
	case SortCode:
		less = func(a, b *Row) bool {
			if c := compareCode(a.Key, b.Key); c != 0 {
				if spec.Descending {
					return c > 0
				}
				return c < 0
			}
			if a.Score.Relevance != b.Score.Relevance {
				return a.Score.Relevance > b.Score.Relevance
			}
			return a.OfferingID < b.OfferingID
		}
	case SortUnits:
		less = func(a, b *Row) bool {
			// Descending unit sort ranks by the top of the range, ascending by the bottom.
			ua, ub := a.Key.UnitsMin, b.Key.UnitsMin
			if spec.Descending {
				ua, ub = a.Key.UnitsMax, b.Key.UnitsMax
			}
			if c, decided := compareNullable(ua, ub, spec.Descending); decided {
				return c
			}
			if a.Score.Relevance != b.Score.Relevance {
				return a.Score.Relevance > b.Score.Relevance
			}
			if c := compareCode(a.Key, b.Key); c != 0 {
				return c < 0
			}
			return a.OfferingID < b.OfferingID
		}
	case SortEval:
		less = func(a, b *Row) bool {
			va := repValue(a.Rep, spec.EvalSlug)
			vb := repValue(b.Rep, spec.EvalSlug)
			if c, decided := compareNullableFloat(va, vb, spec.Descending); decided {
				return c
			}
			if a.Score.Relevance != b.Score.Relevance {
				return a.Score.Relevance > b.Score.Relevance
			}
			if c := compareCode(a.Key, b.Key); c != 0 {
				return c < 0
			}
			return a.OfferingID < b.OfferingID
		}
	default: // SortRelevance
		less = func(a, b *Row) bool {
			if a.Score.Relevance != b.Score.Relevance {
				if spec.Descending {
					return a.Score.Relevance > b.Score.Relevance
				}
				return a.Score.Relevance < b.Score.Relevance
			}
			if c := compareCode(a.Key, b.Key); c != 0 {
				return c < 0
			}
			return a.OfferingID < b.OfferingID
		}
	}

	sort.Slice(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
}

// Paginate windows rows for a 1-based page. One extra row is fetched beyond
// the page size; its presence sets hasMore and it is trimmed from the result.
func Paginate(rows []*Row, page, size int) ([]*Row, bool) {
	offset, limit := helpers.PageWindow(page, size)
	if offset >= len(rows) {
		return nil, false
	}
	end := offset + limit + 1
	if end > len(rows) {
		end = len(rows)
	}
	window := rows[offset:end]
	if len(window) > limit {
		return window[:limit], true
	}
	return window, false
}

// compareCode orders by subject asc, number asc, suffix asc with the empty
// suffix first. Returns -1, 0 or 1.
func compareCode(a, b OfferingKey) int {
	if a.Subject != b.Subject {
		if a.Subject < b.Subject {
			return -1
		}
		return 1
	}
	if a.Number != b.Number {
		if a.Number < b.Number {
			return -1
		}
		return 1
	}
	if a.Suffix != b.Suffix {
		if a.Suffix < b.Suffix {
			return -1
		}
		return 1
	}
	return 0
}

// compareNullable orders two optional ints in the given direction with nulls
// always last. The second return is false when the pair ties.
func compareNullable(a, b *int, descending bool) (less, decided bool) {
	switch {
	case a == nil && b == nil:
		return false, false
	case a == nil:
		return false, true
	case b == nil:
		return true, true
	case *a == *b:
		return false, false
	}
	if descending {
		return *a > *b, true
	}
	return *a < *b, true
}

// compareNullableFloat is compareNullable for optional floats.
func compareNullableFloat(a, b *float64, descending bool) (less, decided bool) {
	switch {
	case a == nil && b == nil:
		return false, false
	case a == nil:
		return false, true
	case b == nil:
		return true, true
	case *a == *b:
		return false, false
	}
	if descending {
		return *a > *b, true
	}
	return *a < *b, true
}

// repValue safely extracts a representative's value for a metric.
func repValue(rep *Representative, slug models.EvalSlug) *float64 {
	if rep == nil {
		return nil
	}
	return rep.Values[slug]
}
