package models

// Instructor defines the instructor model based on the 'instructors' table
type Instructor struct {
	ID        int64  `json:"id" db:"id" example:"1"`
	AccountID string `json:"accountId" db:"account_id" example:"jdoe"` // Campus account identifier
	FirstName string `json:"firstName" db:"first_name" example:"Jane"`
	LastName  string `json:"lastName" db:"last_name" example:"Doe"`
	FullName  string `json:"fullName" db:"full_name" example:"Jane Doe"`
}
