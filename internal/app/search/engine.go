package search

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// fallbackScore is the flat score every eligible offering receives in pure
// browse mode, when no structured or free-text input is present at all.
const fallbackScore = 0.5

// Input is the search request. Schema validation happens upstream; the engine
// assumes well-formed input.
type Input struct {
	Year        string
	Query       string
	Quarters    []models.Term
	Ways        []string
	UnitsMin    *int
	UnitsMax    *int
	Sort        string
	Order       string
	EvalFilters []EvalRange
	Page        int
}

// Result is one hydrated search hit.
type Result struct {
	Offering  *models.CourseOffering
	MatchedOn []string
	Relevance float64
}

// Output is one page of results plus the over-fetch-by-one hasMore flag.
type Output struct {
	Results []*Result
	HasMore bool
}

// Options bundles the engine tuning knobs.
type Options struct {
	Weights        Weights
	Resolver       ResolverParams
	PageSize       int
	MinQueryLength int
}

// DefaultOptions returns the calibrated engine configuration.
func DefaultOptions() Options {
	return Options{
		Weights:        DefaultWeights(),
		Resolver:       DefaultResolverParams(),
		PageSize:       10,
		MinQueryLength: 4,
	}
}

// Engine fuses the five matching strategies into one ranked result set and
// layers evaluation-based filtering and sorting on top. It is stateless and
// request-scoped: concurrent searches share nothing but the read-only
// reference caches behind RefData.
type Engine struct {
	catalog     CatalogStore
	resolver    *Resolver
	evals       EvalStore
	offerings   OfferingStore
	refdata     RefData
	weights     Weights
	pageSize    int
	minQueryLen int
	log         zerolog.Logger
}

// NewEngine wires the engine from its store collaborators.
func NewEngine(
	catalog CatalogStore,
	instructors InstructorStore,
	evals EvalStore,
	offerings OfferingStore,
	refdata RefData,
	opts Options,
	log zerolog.Logger,
) *Engine {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultOptions().PageSize
	}
	return &Engine{
		catalog:     catalog,
		resolver:    NewResolver(instructors, opts.Resolver),
		evals:       evals,
		offerings:   offerings,
		refdata:     refdata,
		weights:     opts.Weights,
		pageSize:    opts.PageSize,
		minQueryLen: opts.MinQueryLength,
		log:         log,
	}
}

// Search runs the full pipeline: parse, collect signals, combine, join
// evaluations, sort, paginate, hydrate. No partial results are ever returned
// for a failed query.
func (e *Engine) Search(ctx context.Context, in Input) (*Output, error) {
	spec, err := ParseSort(in.Sort, in.Order)
	if err != nil {
		return nil, err
	}

	subjects, err := e.refdata.SubjectCodes(ctx)
	if err != nil {
		return nil, unavailable("loading subject codes", err)
	}

	parsed := ParseQuery(in.Query, subjects)
	f := Filter{
		Year:     in.Year,
		Quarters: in.Quarters,
		Ways:     in.Ways,
		UnitsMin: in.UnitsMin,
		UnitsMax: in.UnitsMax,
	}

	signals, err := e.collect(ctx, f, parsed)
	if err != nil {
		return nil, err
	}

	scores := Combine(signals, e.weights)
	if len(scores) == 0 {
		return &Output{Results: []*Result{}}, nil
	}

	var reps map[int64]*Representative
	if len(in.EvalFilters) > 0 || spec.Key == SortEval {
		reps, err = e.evalJoin(ctx, f, in.EvalFilters, spec, scoreIDs(scores))
		if err != nil {
			return nil, err
		}
		for id := range scores {
			if _, ok := reps[id]; !ok {
				delete(scores, id)
			}
		}
		if len(scores) == 0 {
			return &Output{Results: []*Result{}}, nil
		}
	}

	ids := scoreIDs(scores)
	keys, err := e.catalog.OfferingKeys(ctx, in.Year, ids)
	if err != nil {
		return nil, unavailable("loading offering keys", err)
	}

	rows := make([]*Row, 0, len(ids))
	for _, id := range ids {
		key, ok := keys[id]
		if !ok {
			continue
		}
		row := &Row{OfferingID: id, Score: scores[id], Key: key}
		if reps != nil {
			row.Rep = reps[id]
		}
		rows = append(rows, row)
	}

	SortRows(rows, spec)
	pageRows, hasMore := Paginate(rows, in.Page, e.pageSize)

	results, err := e.assemble(ctx, in.Year, pageRows, parsed.IsEmpty())
	if err != nil {
		return nil, err
	}

	e.log.Debug().
		Str("year", in.Year).
		Str("query", in.Query).
		Int("matches", len(rows)).
		Int("page", in.Page).
		Bool("hasMore", hasMore).
		Msg("Search completed")

	return &Output{Results: results, HasMore: hasMore}, nil
}

// collect runs every matching strategy whose input is non-empty. The fallback
// fires only in pure browse mode, mutually exclusive with all other signals:
// once any text is present it must stay silent or relevance ranking would be
// diluted by noise.
func (e *Engine) collect(ctx context.Context, f Filter, parsed ParsedQuery) ([]Signal, error) {
	var signals []Signal

	if len(parsed.Codes) > 0 {
		s, err := e.catalog.CodeSignals(ctx, f, parsed.Codes)
		if err != nil {
			return nil, unavailable("matching course codes", err)
		}
		signals = append(signals, s...)
	}

	if len(parsed.Subjects) > 0 {
		s, err := e.catalog.SubjectCodeSignals(ctx, f, parsed.Subjects)
		if err != nil {
			return nil, unavailable("matching subject codes", err)
		}
		signals = append(signals, s...)
	}

	if parsed.Remaining != "" {
		s, err := e.catalog.ContentSignals(ctx, f, parsed.Remaining)
		if err != nil {
			return nil, unavailable("matching course content", err)
		}
		signals = append(signals, s...)
	}

	// Short leftovers are too noisy for fuzzy matching and would trigger
	// expensive trigram scans for nothing.
	if utf8.RuneCountInString(parsed.Remaining) >= e.minQueryLen {
		s, err := e.resolver.Signals(ctx, f, parsed.Remaining)
		if err != nil {
			return nil, unavailable("matching instructors", err)
		}
		signals = append(signals, s...)

		s, err = e.catalog.SubjectNameSignals(ctx, f, parsed.Remaining)
		if err != nil {
			return nil, unavailable("matching subject names", err)
		}
		signals = append(signals, s...)
	}

	if parsed.IsEmpty() {
		ids, err := e.catalog.EligibleOfferingIDs(ctx, f)
		if err != nil {
			return nil, unavailable("listing eligible offerings", err)
		}
		for _, id := range ids {
			signals = append(signals, Signal{OfferingID: id, Score: fallbackScore, Kind: SignalFallback})
		}
	}

	return signals, nil
}

// evalJoin resolves metric slugs, fetches per-section smart averages for the
// surviving offerings and reduces them to one representative section each.
func (e *Engine) evalJoin(ctx context.Context, f Filter, filters []EvalRange, spec SortSpec, ids []int64) (map[int64]*Representative, error) {
	metrics, err := e.refdata.EvalMetricIDs(ctx)
	if err != nil {
		return nil, unavailable("loading evaluation metrics", err)
	}

	for _, r := range filters {
		if _, ok := metrics[r.Slug]; !ok {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownEvalMetric, r.Slug)
		}
	}
	if spec.Key == SortEval {
		if _, ok := metrics[spec.EvalSlug]; !ok {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownEvalMetric, spec.EvalSlug)
		}
	}

	stats, err := e.evals.SectionStats(ctx, f, ids, metrics)
	if err != nil {
		return nil, unavailable("joining section evaluations", err)
	}

	sortSlug := models.EvalSlug("")
	if spec.Key == SortEval {
		sortSlug = spec.EvalSlug
	}
	return SelectRepresentatives(stats, filters, sortSlug, spec.Descending), nil
}

// scoreIDs returns the offering ids of a score map in ascending order, for
// deterministic store queries and row construction.
func scoreIDs(scores map[int64]*OfferingScore) []int64 {
	ids := make([]int64, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// unavailable wraps a store failure into the single opaque search error the
// caller sees. The cause is flattened into the message for logs.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperrors.ErrSearchUnavailable, op, err)
}
