package dto

// UpdateStudentRequest is a partial profile update. Absent or empty fields
// keep their stored value.
type UpdateStudentRequest struct {
	FirstName *string  `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string  `json:"last_name" binding:"omitempty,max=100"`
	Phone     *string  `json:"phone" binding:"omitempty,max=20"`
	Branch    *string  `json:"branch" binding:"omitempty,max=100"`
	Year      *int     `json:"year" binding:"omitempty,gte=0"`
	CGPA      *float64 `json:"cgpa"`
	Resume    *string  `json:"resume" binding:"omitempty,max=512"`
}

// ResumeResponse locates a student's resume
type ResumeResponse struct {
	USN    string `json:"usn" example:"1RV20CS001"`
	Resume string `json:"resume" example:"resumes/1RV20CS001_1700000000000.pdf"`
	URL    string `json:"url" example:"http://localhost:8080/files/resumes/resumes/1RV20CS001_1700000000000.pdf"`
}
