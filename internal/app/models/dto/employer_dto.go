package dto

// UpdateEmployerRequest is a partial employer profile update
type UpdateEmployerRequest struct {
	CompanyName  *string `json:"company_name" binding:"omitempty,max=255"`
	Website      *string `json:"website" binding:"omitempty,max=255"`
	IndustryType *string `json:"industry_type" binding:"omitempty,max=100"`
	Location     *string `json:"location" binding:"omitempty,max=255"`
}

// JobRequest carries the mutable job fields for create and full replace
type JobRequest struct {
	Title          string `json:"title" binding:"omitempty,max=255" example:"Backend Engineer"`
	RequiredSkills string `json:"required_skills" example:"Go, PostgreSQL"`
	Description    string `json:"description" example:"Build and run the placement APIs"`
	Salary         string `json:"salary" binding:"omitempty,max=100" example:"12 LPA"`
	Eligibility    string `json:"eligibility" example:"CGPA >= 7"`
	Location       string `json:"location" binding:"omitempty,max=255" example:"Remote"`
}

// ApplicationStatusRequest sets an application's review status
type ApplicationStatusRequest struct {
	Status string `json:"status" example:"Accepted"`
}

// InterviewRequest schedules an interview. Date accepts RFC 3339, a
// datetime-local value or a plain date.
type InterviewRequest struct {
	USN           string `json:"usn" binding:"omitempty,max=20" example:"1RV20CS001"`
	JobID         *int64 `json:"job_id" example:"12"`
	Date          string `json:"date" example:"2026-07-01T10:30:00Z"`
	InterviewMode string `json:"interview_mode" example:"Online"`
	Round         string `json:"round" binding:"omitempty,max=100" example:"Technical 1"`
}

// InterviewResultRequest records or clears an interview outcome
type InterviewResultRequest struct {
	Result *string `json:"result" binding:"omitempty,max=255" example:"Cleared"`
}

// PlacementRequest records a placement offer
type PlacementRequest struct {
	USN            string   `json:"usn" binding:"omitempty,max=20" example:"1RV20CS001"`
	JobID          *int64   `json:"job_id" example:"12"`
	PackageOffered *float64 `json:"package_offered" binding:"omitempty,gte=0" example:"1200000"`
	JoiningDate    string   `json:"joining_date" example:"2026-08-01"`
}

// UpdatePlacementRequest revises a placement's package or joining date
type UpdatePlacementRequest struct {
	PackageOffered *float64 `json:"package_offered" binding:"omitempty,gte=0" example:"1500000"`
	JoiningDate    *string  `json:"joining_date" example:"2026-09-01"`
}
