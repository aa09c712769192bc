package models

// Section represents one enrollable instance of an offering in a specific term.
// Non-principal sections are duplicate listings and are excluded from
// instructor and evaluation joins.
type Section struct {
	ID          int64 `json:"id" db:"id"`
	OfferingID  int64 `json:"offeringId" db:"offering_id"`
	Term        Term  `json:"term" db:"term"`
	ClassNumber int   `json:"classNumber" db:"class_number"`
	IsCancelled bool  `json:"isCancelled" db:"is_cancelled"`
	IsPrincipal bool  `json:"isPrincipal" db:"is_principal"`

	// Relations (populated when needed)
	Schedules []*Schedule `json:"schedules,omitempty"`
}
