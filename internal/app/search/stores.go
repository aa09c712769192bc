package search

import (
	"context"

	"github.com/yigit/coursehub/internal/app/models"
)

// Filter restricts candidates to offerings eligible under the requested
// year/term/GER/units combination. Each store implementation appends a
// predicate only for the fields that are present; the zero value of an
// optional field means "no constraint".
type Filter struct {
	Year     string
	Quarters []models.Term
	Ways     []string
	UnitsMin *int
	UnitsMax *int
}

// OfferingKey carries the sortable identity fields of an offering.
type OfferingKey struct {
	OfferingID int64
	Subject    string
	Number     int
	Suffix     string // "" when the offering has no suffix
	UnitsMin   *int
	UnitsMax   *int
}

// CatalogStore produces match signals from the catalog, always constrained by
// the eligibility filter.
type CatalogStore interface {
	// CodeSignals matches offerings by parsed subject+number(+suffix) codes.
	CodeSignals(ctx context.Context, f Filter, codes []CourseCode) ([]Signal, error)
	// SubjectCodeSignals matches every offering under a bare mentioned subject.
	SubjectCodeSignals(ctx context.Context, f Filter, subjects []string) ([]Signal, error)
	// ContentSignals scores title+description text relevance against the query.
	ContentSignals(ctx context.Context, f Filter, query string) ([]Signal, error)
	// SubjectNameSignals scores fuzzy similarity of the query against subject long names.
	SubjectNameSignals(ctx context.Context, f Filter, query string) ([]Signal, error)
	// EligibleOfferingIDs lists every offering satisfying the filter, for browse mode.
	EligibleOfferingIDs(ctx context.Context, f Filter) ([]int64, error)
	// OfferingKeys fetches the sortable fields for the given offerings.
	OfferingKeys(ctx context.Context, year string, ids []int64) (map[int64]OfferingKey, error)
}

// InstructorCandidate is one instructor matched against the raw query,
// with per-field similarity scores.
type InstructorCandidate struct {
	InstructorID int64
	ExactAccount bool // lower-cased query equals the account identifier
	FullNameSim  float64
	LastNameSim  float64
	FirstNameSim float64
}

// TeachingAssignment is one (section, instructor) pair within the eligibility
// filter. Only principal, non-cancelled sections appear here.
type TeachingAssignment struct {
	OfferingID   int64
	SectionID    int64
	InstructorID int64
	IsAssistant  bool
}

// InstructorStore resolves instructors and their teaching assignments.
type InstructorStore interface {
	Candidates(ctx context.Context, query string) ([]InstructorCandidate, error)
	Assignments(ctx context.Context, f Filter, instructorIDs []int64) ([]TeachingAssignment, error)
}

// SectionStats holds the smart averages of one principal, non-cancelled,
// term-matching section. A metric with no precomputed statistic maps to nil,
// not zero.
type SectionStats struct {
	OfferingID int64
	SectionID  int64
	Values     map[models.EvalSlug]*float64
}

// EvalStore joins per-section crowd-evaluation statistics.
type EvalStore interface {
	SectionStats(ctx context.Context, f Filter, offeringIDs []int64, metrics map[models.EvalSlug]int64) ([]SectionStats, error)
}

// OfferingStore hydrates final result pages with display metadata.
type OfferingStore interface {
	// Hydrate returns full offering records with nested sections, schedules
	// and instructors, keyed by offering id.
	Hydrate(ctx context.Context, year string, ids []int64) (map[int64]*models.CourseOffering, error)
}

// RefData exposes the two small read-through reference caches the engine
// needs: the known subject codes and the metric slug-to-id mapping.
// Population failure must fail the current request; an empty subject list
// would silently disable all code matching.
type RefData interface {
	SubjectCodes(ctx context.Context) ([]string, error)
	EvalMetricIDs(ctx context.Context) (map[models.EvalSlug]int64, error)
}
