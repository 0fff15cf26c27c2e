package models

import "time"

// Identity is an authentication principal. Subject is the role-specific
// identifier: a USN for students, the employer id for employers.
type Identity struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	Subject      string    `json:"subject" db:"subject"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
