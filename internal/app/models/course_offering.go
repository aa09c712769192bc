package models

import "fmt"

// CourseOffering represents a course as taught in a specific academic year.
// Identity is (subject, code number, optional suffix, year).
type CourseOffering struct {
	ID             int64    `json:"id" db:"id"`
	SubjectID      int64    `json:"subjectId" db:"subject_id"`
	SubjectCode    string   `json:"subjectCode" db:"subject_code" example:"CS"`
	CodeNumber     int      `json:"codeNumber" db:"code_number" example:"106"`
	CodeSuffix     *string  `json:"codeSuffix,omitempty" db:"code_suffix" example:"A"` // Nullable
	Year           string   `json:"year" db:"year" example:"2024-2025"`
	Title          string   `json:"title" db:"title"`
	Description    *string  `json:"description,omitempty" db:"description"` // Nullable
	AcademicGroup  string   `json:"academicGroup" db:"academic_group"`
	AcademicCareer string   `json:"academicCareer" db:"academic_career"`
	AcademicOrg    string   `json:"academicOrg" db:"academic_org"`
	UnitsMin       *int     `json:"unitsMin,omitempty" db:"units_min"` // Nullable
	UnitsMax       *int     `json:"unitsMax,omitempty" db:"units_max"` // Nullable
	Ways           []string `json:"ways" db:"ways"`                    // GER tags

	// Relations (populated when needed)
	Subject  *Subject   `json:"subject,omitempty"`
	Sections []*Section `json:"sections,omitempty"`
}

// CodeString formats the display course code, e.g. "CS 106A".
func (o *CourseOffering) CodeString() string {
	suffix := ""
	if o.CodeSuffix != nil {
		suffix = *o.CodeSuffix
	}
	return fmt.Sprintf("%s %d%s", o.SubjectCode, o.CodeNumber, suffix)
}
