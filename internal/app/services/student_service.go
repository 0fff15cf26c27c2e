package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/app/models/dto"
	"github.com/yigit/placementportal/internal/pkg/email"
	"github.com/yigit/placementportal/internal/pkg/helpers"
	"github.com/yigit/placementportal/internal/pkg/identity"
	"github.com/yigit/placementportal/internal/pkg/validation"
)

// StudentService defines the interface for student directory operations
type StudentService interface {
	RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*models.Student, error)
	LoginStudent(ctx context.Context, email, password string) (*dto.StudentLoginResponse, error)
	LogoutStudent(ctx context.Context, accessToken string) error
	GetStudentByUSN(ctx context.Context, usn string) (*models.Student, error)
	GetStudentByEmail(ctx context.Context, email string) (*models.Student, error)
	UpdateStudentDetails(ctx context.Context, usn string, req *dto.UpdateStudentRequest) (*models.Student, error)
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	registrar
	students StudentStore
	mailer   email.EmailService
}

// NewStudentService creates a new StudentService
func NewStudentService(
	tx TxManager,
	directory EmailDirectory,
	provider IdentityProvider,
	students StudentStore,
	mailer email.EmailService,
	logger zerolog.Logger,
) StudentService {
	return &studentServiceImpl{
		registrar: registrar{tx: tx, directory: directory, provider: provider, logger: logger},
		students:  students,
		mailer:    mailer,
	}
}

func validateStudentRegistration(req *dto.RegisterStudentRequest) error {
	return validation.New().
		Required(req.USN, "USN is required").
		Required(req.FirstName, "First Name is required").
		Required(req.LastName, "Last Name is required").
		Check(validation.IsValidEmail(req.Email), "Valid email is required").
		String(validation.NewStringValidation(req.Phone).WithMinLength(validation.PhoneMinLength), "Valid phone number is required").
		Check(req.Year != nil && *req.Year != 0, "Year is required").
		Required(req.Branch, "Branch is required").
		String(validation.NewStringValidation(req.Password).WithMinLength(validation.PasswordMinLength), "Password must be at least 6 characters").
		Check(validation.ValidCGPA(req.CGPA), "CGPA must be between 0 and 10").
		Err()
}

// RegisterStudent validates the form, claims the email and creates the
// student with the placeholder resume.
func (s *studentServiceImpl) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*models.Student, error) {
	req.Email = identity.NormalizeEmail(req.Email)
	if err := validateStudentRegistration(req); err != nil {
		return nil, err
	}

	resume := models.PlaceholderResume
	student := &models.Student{
		USN:       req.USN,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Branch:    req.Branch,
		Year:      *req.Year,
		CGPA:      *req.CGPA,
		Resume:    &resume,
	}

	meta := identity.Metadata{Role: models.RoleStudent, Subject: req.USN}
	err := s.register(ctx, req.Email, req.Password, meta, func(ctx context.Context) error {
		return s.students.Create(ctx, student)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("usn", student.USN).Msg("Student registered")
	if err := s.mailer.SendWelcomeEmail(student.Email, student.FirstName, string(models.RoleStudent)); err != nil {
		s.logger.Warn().Err(err).Str("usn", student.USN).Msg("Failed to send welcome email")
	}
	return student, nil
}

// LoginStudent signs in and returns the session with the student's profile
func (s *studentServiceImpl) LoginStudent(ctx context.Context, email, password string) (*dto.StudentLoginResponse, error) {
	session, err := s.signInAs(ctx, email, password, models.RoleStudent, ErrInvalidStudentLogin)
	if err != nil {
		return nil, err
	}

	student, err := s.students.GetByEmail(ctx, session.Identity.Email)
	if err != nil {
		s.signOutQuietly(ctx, session.AccessToken)
		return nil, err
	}

	return &dto.StudentLoginResponse{
		Session: dto.NewSessionData(session.AccessToken, session.ExpiresAt),
		Student: student,
	}, nil
}

// LogoutStudent terminates the session
func (s *studentServiceImpl) LogoutStudent(ctx context.Context, accessToken string) error {
	return s.provider.SignOut(ctx, accessToken)
}

// GetStudentByUSN returns exactly one student
func (s *studentServiceImpl) GetStudentByUSN(ctx context.Context, usn string) (*models.Student, error) {
	return s.students.GetByUSN(ctx, usn)
}

// GetStudentByEmail returns exactly one student
func (s *studentServiceImpl) GetStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	return s.students.GetByEmail(ctx, identity.NormalizeEmail(email))
}

// blankWhenSet reports a value that was sent but holds only whitespace
func blankWhenSet(value *string) bool {
	return value != nil && *value != "" && strings.TrimSpace(*value) == ""
}

func valueOf(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func validateStudentUpdate(req *dto.UpdateStudentRequest) error {
	return validation.New().
		Check(!blankWhenSet(req.FirstName), "First name cannot be empty").
		Check(!blankWhenSet(req.LastName), "Last name cannot be empty").
		String(validation.NewStringValidation(valueOf(req.Phone)).WithMinLength(validation.PhoneMinLength).WithRequired(false), "Invalid phone number").
		Check(req.CGPA == nil || validation.ValidCGPA(req.CGPA), "CGPA must be between 0 and 10").
		Err()
}

// UpdateStudentDetails applies the present fields and returns the stored row
func (s *studentServiceImpl) UpdateStudentDetails(ctx context.Context, usn string, req *dto.UpdateStudentRequest) (*models.Student, error) {
	if err := validateStudentUpdate(req); err != nil {
		return nil, err
	}

	set := helpers.SparseSet{}.
		String("first_name", req.FirstName).
		String("last_name", req.LastName).
		String("phone", req.Phone).
		String("branch", req.Branch).
		Int("year", req.Year).
		Float("cgpa", req.CGPA).
		String("resume", req.Resume)

	student, err := s.students.Update(ctx, usn, set)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("usn", usn).Int("fields", len(set)).Msg("Student details updated")
	return student, nil
}
