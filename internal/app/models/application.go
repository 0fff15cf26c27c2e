package models

import "time"

// ApplicationStatus is the review state of an application
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusAccepted ApplicationStatus = "Accepted"
	StatusRejected ApplicationStatus = "Rejected"
)

// IsValid reports whether s is one of the known statuses
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether an application may move from s to next.
// Without strict mode any known status may overwrite any other.
func (s ApplicationStatus) CanTransition(next ApplicationStatus, strict bool) bool {
	if !next.IsValid() {
		return false
	}
	if !strict {
		return true
	}
	return s == StatusPending && (next == StatusAccepted || next == StatusRejected)
}

// Application defines the application model based on the 'applications' table
type Application struct {
	AppID       int64             `json:"app_id" db:"app_id" example:"40"`
	USN         string            `json:"usn" db:"usn" example:"1RV20CS001"`
	JobID       int64             `json:"job_id" db:"job_id" example:"12"`
	Status      ApplicationStatus `json:"status" db:"status" example:"Pending"`
	DateApplied time.Time         `json:"date_applied" db:"date_applied"`
}
