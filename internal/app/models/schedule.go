package models

// Schedule represents a meeting pattern of a section.
type Schedule struct {
	ID        int64   `json:"id" db:"id"`
	SectionID int64   `json:"sectionId" db:"section_id"`
	Days      string  `json:"days" db:"days" example:"MWF"`
	StartTime *string `json:"startTime,omitempty" db:"start_time"` // Nullable
	EndTime   *string `json:"endTime,omitempty" db:"end_time"`     // Nullable
	Location  *string `json:"location,omitempty" db:"location"`    // Nullable

	// Relations (populated when needed)
	Instructors []*ScheduleInstructor `json:"instructors,omitempty"`
}

// ScheduleInstructor is an instructor attached to a schedule with a role.
type ScheduleInstructor struct {
	Instructor
	Role InstructorRole `json:"role" db:"role" example:"PI"`
}
