package models

// Employer defines the employer model based on the 'employers' table
type Employer struct {
	EmployerID   int64  `json:"employer_id" db:"employer_id" example:"1001"`
	CompanyName  string `json:"company_name" db:"company_name" example:"Acme Corp"`
	Website      string `json:"website" db:"website" example:"https://acme.example"`
	IndustryType string `json:"industry_type" db:"industry_type" example:"Software"`
	ContactEmail string `json:"contact_email" db:"contact_email" example:"hr@acme.example"`
	Location     string `json:"location" db:"location" example:"Bengaluru"`
}

// EmployerUpdate is a sparse employer profile update
type EmployerUpdate struct {
	CompanyName  *string
	Website      *string
	IndustryType *string
	Location     *string
}
