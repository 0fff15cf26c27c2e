package models

import "time"

// InterviewMode is how an interview is conducted
type InterviewMode string

const (
	InterviewOnline  InterviewMode = "Online"
	InterviewOffline InterviewMode = "Offline"
)

// IsValid reports whether m is a known mode
func (m InterviewMode) IsValid() bool {
	return m == InterviewOnline || m == InterviewOffline
}

// Interview defines the interview model based on the 'interviews' table
type Interview struct {
	InterviewID   int64         `json:"interview_id" db:"interview_id" example:"3"`
	USN           string        `json:"usn" db:"usn" example:"1RV20CS001"`
	JobID         int64         `json:"job_id" db:"job_id" example:"12"`
	Date          time.Time     `json:"date" db:"date"`
	InterviewMode InterviewMode `json:"interview_mode" db:"interview_mode" example:"Online"`
	Round         string        `json:"round" db:"round" example:"Technical 1"`
	Result        *string       `json:"result" db:"result" example:"Cleared"`
}
