package models

// Subject represents an academic subject, e.g. (CS, "Computer Science").
type Subject struct {
	ID   int64  `json:"id" db:"id"`
	Code string `json:"code" db:"code" example:"CS"`
	Name string `json:"name" db:"name" example:"Computer Science"`
}
