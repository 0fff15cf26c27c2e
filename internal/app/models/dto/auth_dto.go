package dto

import (
	"time"

	"github.com/yigit/placementportal/internal/app/models"
)

// RegisterStudentRequest is the student sign-up form. Required fields are
// checked by the service so every failure can be reported at once.
type RegisterStudentRequest struct {
	USN       string   `json:"usn" binding:"omitempty,max=20" example:"1RV20CS001"`
	FirstName string   `json:"first_name" binding:"omitempty,max=100" example:"Asha"`
	LastName  string   `json:"last_name" binding:"omitempty,max=100" example:"Rao"`
	Email     string   `json:"email" binding:"omitempty,max=255" example:"asha@example.com"`
	Phone     string   `json:"phone" binding:"omitempty,max=20" example:"9876543210"`
	Branch    string   `json:"branch" binding:"omitempty,max=100" example:"CSE"`
	Year      *int     `json:"year" example:"4"`
	CGPA      *float64 `json:"cgpa" example:"8.7"`
	Password  string   `json:"password" binding:"omitempty,max=72" example:"secret123"`
}

// RegisterEmployerRequest is the employer sign-up form
type RegisterEmployerRequest struct {
	EmployerID   *int64 `json:"employer_id" binding:"omitempty,gt=0" example:"1001"`
	CompanyName  string `json:"company_name" binding:"omitempty,max=255" example:"Acme Corp"`
	Website      string `json:"website" binding:"omitempty,max=255" example:"https://acme.example"`
	IndustryType string `json:"industry_type" binding:"omitempty,max=100" example:"Software"`
	ContactEmail string `json:"contact_email" binding:"omitempty,max=255" example:"hr@acme.example"`
	Location     string `json:"location" binding:"omitempty,max=255" example:"Bengaluru"`
	Password     string `json:"password" binding:"omitempty,max=72" example:"secret123"`
}

// LoginRequest is the password sign-in form for both roles
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"asha@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// SessionData is the bearer token handed out on sign-in
type SessionData struct {
	AccessToken string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIs..."`
	TokenType   string    `json:"token_type" example:"Bearer"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// NewSessionData builds the token payload
func NewSessionData(accessToken string, expiresAt time.Time) SessionData {
	return SessionData{AccessToken: accessToken, TokenType: "Bearer", ExpiresAt: expiresAt}
}

// StudentLoginResponse is returned by a successful student sign-in
type StudentLoginResponse struct {
	Session SessionData     `json:"session"`
	Student *models.Student `json:"student"`
}

// EmployerLoginResponse is returned by a successful employer sign-in
type EmployerLoginResponse struct {
	Session  SessionData      `json:"session"`
	Employer *models.Employer `json:"employer"`
}
