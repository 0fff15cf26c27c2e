package models

// EmployerSummary is the employer slice nested into job views
type EmployerSummary struct {
	CompanyName  string  `json:"company_name"`
	EmployerID   *int64  `json:"employer_id,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	IndustryType *string `json:"industry_type,omitempty"`
}

// JobListing is a job with its employer's company name
type JobListing struct {
	Job
	Employers *EmployerSummary `json:"employers"`
}

// ApplicationJob is the job slice nested into a student's application
type ApplicationJob struct {
	Title      string           `json:"title"`
	EmployerID int64            `json:"employer_id"`
	Employers  *EmployerSummary `json:"employers"`
}

// ApplicationWithJob is an application with its job and company
type ApplicationWithJob struct {
	Application
	Jobs *ApplicationJob `json:"jobs"`
}

// InterviewJob is the job slice nested into a student's interview
type InterviewJob struct {
	Title     string           `json:"title"`
	Employers *EmployerSummary `json:"employers"`
}

// InterviewWithJob is an interview with its job title and company
type InterviewWithJob struct {
	Interview
	Jobs *InterviewJob `json:"jobs"`
}

// PlacementWithEmployer is a placement with the hiring employer's full row
type PlacementWithEmployer struct {
	Placement
	Employers *Employer `json:"employers"`
}
