package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/app/repositories"
	"github.com/yigit/placementportal/internal/pkg/apperrors"
)

// ErrApplicationFieldsRequired is returned when an application names no job or student
var ErrApplicationFieldsRequired = apperrors.NewValidationError("Job ID and USN are required")

// PortalService defines the job board and a student's own records
type PortalService interface {
	FetchJobs(ctx context.Context) ([]*models.JobListing, error)
	FetchJobDetails(ctx context.Context, jobID int64) (*models.JobListing, error)
	InsertApplication(ctx context.Context, jobID int64, usn string) (*models.Application, error)
	FetchApplicationsByUSN(ctx context.Context, usn string) ([]*models.Application, error)
	FetchApplicationsWithJobDetails(ctx context.Context, usn string) ([]*models.ApplicationWithJob, error)
	FetchInterviewsWithJobDetails(ctx context.Context, usn string) ([]*models.InterviewWithJob, error)
	FetchPlacementDetails(ctx context.Context, usn string) (*models.PlacementWithEmployer, error)
}

// portalServiceImpl implements PortalService
type portalServiceImpl struct {
	jobs         JobStore
	applications ApplicationStore
	interviews   InterviewStore
	placements   PlacementStore
	logger       zerolog.Logger
}

// NewPortalService creates a new PortalService
func NewPortalService(
	jobs JobStore,
	applications ApplicationStore,
	interviews InterviewStore,
	placements PlacementStore,
	logger zerolog.Logger,
) PortalService {
	return &portalServiceImpl{
		jobs:         jobs,
		applications: applications,
		interviews:   interviews,
		placements:   placements,
		logger:       logger,
	}
}

// FetchJobs lists every job with its company name
func (s *portalServiceImpl) FetchJobs(ctx context.Context) ([]*models.JobListing, error) {
	return s.jobs.ListWithCompany(ctx)
}

// FetchJobDetails returns exactly one job with its employer summary
func (s *portalServiceImpl) FetchJobDetails(ctx context.Context, jobID int64) (*models.JobListing, error) {
	return s.jobs.GetWithEmployer(ctx, jobID)
}

// InsertApplication applies the student to a job once
func (s *portalServiceImpl) InsertApplication(ctx context.Context, jobID int64, usn string) (*models.Application, error) {
	if jobID == 0 || usn == "" {
		return nil, ErrApplicationFieldsRequired
	}

	exists, err := s.applications.Exists(ctx, usn, jobID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repositories.ErrAlreadyApplied
	}

	// The unique index still refuses a concurrent duplicate.
	application, err := s.applications.Create(ctx, usn, jobID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("appID", application.AppID).Int64("jobID", jobID).Str("usn", usn).Msg("Application submitted")
	return application, nil
}

// FetchApplicationsByUSN lists the student's applications
func (s *portalServiceImpl) FetchApplicationsByUSN(ctx context.Context, usn string) ([]*models.Application, error) {
	return s.applications.ListByUSN(ctx, usn)
}

// FetchApplicationsWithJobDetails lists the student's applications with job
// title and company
func (s *portalServiceImpl) FetchApplicationsWithJobDetails(ctx context.Context, usn string) ([]*models.ApplicationWithJob, error) {
	return s.applications.ListWithJobByUSN(ctx, usn)
}

// FetchInterviewsWithJobDetails lists the student's interviews with job
// title and company
func (s *portalServiceImpl) FetchInterviewsWithJobDetails(ctx context.Context, usn string) ([]*models.InterviewWithJob, error) {
	return s.interviews.ListWithJobByUSN(ctx, usn)
}

// FetchPlacementDetails returns the student's first placement with the full
// employer row, or nil when there is none
func (s *portalServiceImpl) FetchPlacementDetails(ctx context.Context, usn string) (*models.PlacementWithEmployer, error) {
	return s.placements.FirstWithEmployerByUSN(ctx, usn)
}
