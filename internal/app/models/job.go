package models

import "time"

// Job defines the job model based on the 'jobs' table
type Job struct {
	JobID          int64     `json:"job_id" db:"job_id" example:"12"`
	EmployerID     int64     `json:"employer_id" db:"employer_id" example:"1001"`
	Title          string    `json:"title" db:"title" example:"Backend Engineer"`
	RequiredSkills string    `json:"required_skills" db:"required_skills" example:"Go, PostgreSQL"`
	Description    string    `json:"description" db:"description"`
	Salary         string    `json:"salary" db:"salary" example:"12 LPA"`
	Eligibility    string    `json:"eligibility" db:"eligibility" example:"CGPA >= 7"`
	Location       string    `json:"location" db:"location" example:"Remote"`
	PostDate       time.Time `json:"post_date" db:"post_date"`
}

// JobFields are the mutable job columns
type JobFields struct {
	Title          string
	RequiredSkills string
	Description    string
	Salary         string
	Eligibility    string
	Location       string
}

// Complete reports whether every field is set
func (f JobFields) Complete() bool {
	return f.Title != "" && f.RequiredSkills != "" && f.Description != "" &&
		f.Salary != "" && f.Eligibility != "" && f.Location != ""
}
