package models

// Term represents an academic quarter
type Term string

// Term constants
const (
	TermAutumn Term = "AUTUMN"
	TermWinter Term = "WINTER"
	TermSpring Term = "SPRING"
	TermSummer Term = "SUMMER"
)

// AllTerms lists every known quarter in academic-year order.
var AllTerms = []Term{TermAutumn, TermWinter, TermSpring, TermSummer}

// IsValidTerm reports whether s names a known quarter.
func IsValidTerm(s string) bool {
	switch Term(s) {
	case TermAutumn, TermWinter, TermSpring, TermSummer:
		return true
	}
	return false
}

// InstructorRole defines the role an instructor has on a schedule
type InstructorRole string

const (
	// RolePrimaryInstructor is the main teaching role
	RolePrimaryInstructor InstructorRole = "PI"
	// RoleTeachingAssistant covers assistant roles, which score lower in search
	RoleTeachingAssistant InstructorRole = "TA"
)
