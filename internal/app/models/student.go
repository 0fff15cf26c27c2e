package models

// Student defines the student model based on the 'students' table
type Student struct {
	USN       string  `json:"usn" db:"usn" example:"1RV20CS001"`
	FirstName string  `json:"first_name" db:"first_name" example:"Asha"`
	LastName  string  `json:"last_name" db:"last_name" example:"Rao"`
	Email     string  `json:"email" db:"email" example:"asha@example.com"`
	Phone     string  `json:"phone" db:"phone" example:"9876543210"`
	Branch    string  `json:"branch" db:"branch" example:"CSE"`
	Year      int     `json:"year" db:"year" example:"4"`
	CGPA      float64 `json:"cgpa" db:"cgpa" example:"8.7"`
	Resume    *string `json:"resume" db:"resume" example:"resumes/1RV20CS001_1700000000000.pdf"` // storage path, nullable
}

// PlaceholderResume is stored for new students until they upload a resume
const PlaceholderResume = "dummy.pdf"

// StudentUpdate is a sparse student update; nil or empty fields are left as is
type StudentUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Branch    *string
	Year      *int
	CGPA      *float64
	Resume    *string
}
