package models

// Employee represents an employee entity.
type Employee struct {
	ID        int64  `json:"id"        db:"id"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName"  db:"last_name"`
	Email     string `json:"email"     db:"email"`
}
