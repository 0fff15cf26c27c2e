package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/app/models/dto"
	"github.com/yigit/placementportal/internal/pkg/email"
	"github.com/yigit/placementportal/internal/pkg/helpers"
	"github.com/yigit/placementportal/internal/pkg/identity"
	"github.com/yigit/placementportal/internal/pkg/validation"
)

// EmployerService defines the interface for employer directory operations
type EmployerService interface {
	RegisterEmployer(ctx context.Context, req *dto.RegisterEmployerRequest) (*models.Employer, error)
	LoginEmployer(ctx context.Context, email, password string) (*dto.EmployerLoginResponse, error)
	LogoutEmployer(ctx context.Context, accessToken string) error
	GetEmployer(ctx context.Context, employerID int64) (*models.Employer, error)
	GetEmployerByEmail(ctx context.Context, email string) (*models.Employer, error)
	UpdateEmployerProfile(ctx context.Context, employerID int64, req *dto.UpdateEmployerRequest) (*models.Employer, error)
}

// employerServiceImpl implements EmployerService
type employerServiceImpl struct {
	registrar
	employers EmployerStore
	mailer    email.EmailService
}

// NewEmployerService creates a new EmployerService
func NewEmployerService(
	tx TxManager,
	directory EmailDirectory,
	provider IdentityProvider,
	employers EmployerStore,
	mailer email.EmailService,
	logger zerolog.Logger,
) EmployerService {
	return &employerServiceImpl{
		registrar: registrar{tx: tx, directory: directory, provider: provider, logger: logger},
		employers: employers,
		mailer:    mailer,
	}
}

func validateEmployerRegistration(req *dto.RegisterEmployerRequest) error {
	return validation.New().
		Check(req.EmployerID != nil && *req.EmployerID != 0, "Employer ID is required").
		Required(req.Location, "Location is required").
		Required(req.CompanyName, "Company Name is required").
		Required(req.IndustryType, "Industry Type is required").
		Required(req.Website, "Website is required").
		Check(validation.IsValidEmail(req.ContactEmail), "Valid email is required").
		String(validation.NewStringValidation(req.Password).WithMinLength(validation.PasswordMinLength), "Password must be at least 6 characters").
		Err()
}

// RegisterEmployer validates the form, claims the contact email and creates
// the employer under its caller-supplied id.
func (s *employerServiceImpl) RegisterEmployer(ctx context.Context, req *dto.RegisterEmployerRequest) (*models.Employer, error) {
	req.ContactEmail = identity.NormalizeEmail(req.ContactEmail)
	if err := validateEmployerRegistration(req); err != nil {
		return nil, err
	}

	employer := &models.Employer{
		EmployerID:   *req.EmployerID,
		CompanyName:  req.CompanyName,
		Website:      req.Website,
		IndustryType: req.IndustryType,
		ContactEmail: req.ContactEmail,
		Location:     req.Location,
	}

	meta := identity.Metadata{Role: models.RoleEmployer, Subject: strconv.FormatInt(employer.EmployerID, 10)}
	err := s.register(ctx, req.ContactEmail, req.Password, meta, func(ctx context.Context) error {
		return s.employers.Create(ctx, employer)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("employerID", employer.EmployerID).Msg("Employer registered")
	if err := s.mailer.SendWelcomeEmail(employer.ContactEmail, employer.CompanyName, string(models.RoleEmployer)); err != nil {
		s.logger.Warn().Err(err).Int64("employerID", employer.EmployerID).Msg("Failed to send welcome email")
	}
	return employer, nil
}

// LoginEmployer signs in and returns the session with the employer's profile
func (s *employerServiceImpl) LoginEmployer(ctx context.Context, email, password string) (*dto.EmployerLoginResponse, error) {
	session, err := s.signInAs(ctx, email, password, models.RoleEmployer, ErrInvalidEmployerLogin)
	if err != nil {
		return nil, err
	}

	employer, err := s.employers.GetByEmail(ctx, session.Identity.Email)
	if err != nil {
		s.signOutQuietly(ctx, session.AccessToken)
		return nil, err
	}

	return &dto.EmployerLoginResponse{
		Session:  dto.NewSessionData(session.AccessToken, session.ExpiresAt),
		Employer: employer,
	}, nil
}

// LogoutEmployer terminates the session
func (s *employerServiceImpl) LogoutEmployer(ctx context.Context, accessToken string) error {
	return s.provider.SignOut(ctx, accessToken)
}

// GetEmployer returns exactly one employer
func (s *employerServiceImpl) GetEmployer(ctx context.Context, employerID int64) (*models.Employer, error) {
	return s.employers.GetByID(ctx, employerID)
}

// GetEmployerByEmail returns exactly one employer
func (s *employerServiceImpl) GetEmployerByEmail(ctx context.Context, email string) (*models.Employer, error) {
	return s.employers.GetByEmail(ctx, identity.NormalizeEmail(email))
}

// blankWhenPresent reports a value that was sent but holds nothing
func blankWhenPresent(value *string) bool {
	return value != nil && strings.TrimSpace(*value) == ""
}

func validateEmployerUpdate(req *dto.UpdateEmployerRequest) error {
	return validation.New().
		Check(!blankWhenPresent(req.CompanyName), "Company name cannot be empty").
		Check(!blankWhenPresent(req.Website), "website URL cannot be empty").
		Check(!blankWhenPresent(req.IndustryType), "Industry type cannot be empty").
		Err()
}

// UpdateEmployerProfile applies the present fields and returns the stored row
func (s *employerServiceImpl) UpdateEmployerProfile(ctx context.Context, employerID int64, req *dto.UpdateEmployerRequest) (*models.Employer, error) {
	if err := validateEmployerUpdate(req); err != nil {
		return nil, err
	}

	set := helpers.SparseSet{}.
		String("company_name", req.CompanyName).
		String("website", req.Website).
		String("industry_type", req.IndustryType).
		String("location", req.Location)

	employer, err := s.employers.Update(ctx, employerID, set)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("employerID", employerID).Int("fields", len(set)).Msg("Employer profile updated")
	return employer, nil
}
