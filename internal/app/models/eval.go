package models

// EvalSlug identifies one crowd-sourced evaluation metric.
type EvalSlug string

// Evaluation metric slugs
const (
	EvalRating         EvalSlug = "rating"
	EvalHours          EvalSlug = "hours"
	EvalLearning       EvalSlug = "learning"
	EvalOrganized      EvalSlug = "organized"
	EvalGoals          EvalSlug = "goals"
	EvalAttendInPerson EvalSlug = "attend_inperson"
	EvalAttendOnline   EvalSlug = "attend_online"
)

// AllEvalSlugs lists every known evaluation metric.
var AllEvalSlugs = []EvalSlug{
	EvalRating,
	EvalHours,
	EvalLearning,
	EvalOrganized,
	EvalGoals,
	EvalAttendInPerson,
	EvalAttendOnline,
}

// IsValidEvalSlug reports whether s names a known evaluation metric.
func IsValidEvalSlug(s string) bool {
	for _, slug := range AllEvalSlugs {
		if EvalSlug(s) == slug {
			return true
		}
	}
	return false
}

// EvalDirection describes which end of a metric's range is desirable.
type EvalDirection string

const (
	// DirectionHigherBetter means larger values are desirable (e.g. rating)
	DirectionHigherBetter EvalDirection = "HIGHER_BETTER"
	// DirectionLowerBetter means smaller values are desirable (e.g. hours)
	DirectionLowerBetter EvalDirection = "LOWER_BETTER"
	// DirectionNeutral means the metric carries no preference
	DirectionNeutral EvalDirection = "NEUTRAL"
)

// EvalMetric describes one evaluation question with its direction and range.
type EvalMetric struct {
	ID        int64         `json:"id" db:"id"`
	Slug      EvalSlug      `json:"slug" db:"slug" example:"rating"`
	Direction EvalDirection `json:"direction" db:"direction" example:"HIGHER_BETTER"`
	RangeMin  float64       `json:"rangeMin" db:"range_min" example:"1"`
	RangeMax  float64       `json:"rangeMax" db:"range_max" example:"5"`
}

// SmartAverage is a precomputed statistic for one (section, metric) pair.
type SmartAverage struct {
	SectionID int64   `json:"sectionId" db:"section_id"`
	MetricID  int64   `json:"metricId" db:"metric_id"`
	Value     float64 `json:"value" db:"value"`
}
