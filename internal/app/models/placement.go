package models

import "time"

// Placement defines the placement model based on the 'placements' table
type Placement struct {
	PlacementID    int64     `json:"placement_id" db:"placement_id" example:"5"`
	USN            string    `json:"usn" db:"usn" example:"1RV20CS001"`
	JobID          int64     `json:"job_id" db:"job_id" example:"12"`
	PackageOffered float64   `json:"package_offered" db:"package_offered" example:"1200000"`
	JoiningDate    time.Time `json:"joining_date" db:"joining_date"`
}
