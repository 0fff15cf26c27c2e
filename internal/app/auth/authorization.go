package auth

import (
	"context"
	"fmt"

	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/pkg/apperrors"
	"github.com/yigit/placementportal/internal/pkg/logger"
)

// ErrNotJobOwner is returned when an employer touches another employer's job
var ErrNotJobOwner = apperrors.NewForbiddenError("This job belongs to another employer")

// JobLookup resolves jobs by id
type JobLookup interface {
	GetByID(ctx context.Context, jobID int64) (*models.Job, error)
}

// ApplicationLookup resolves applications by id
type ApplicationLookup interface {
	GetByID(ctx context.Context, appID int64) (*models.Application, error)
}

// InterviewLookup resolves interviews by id
type InterviewLookup interface {
	GetByID(ctx context.Context, interviewID int64) (*models.Interview, error)
}

// PlacementLookup resolves placements by id
type PlacementLookup interface {
	GetByID(ctx context.Context, placementID int64) (*models.Placement, error)
}

// AuthorizationService checks that rows an employer mutates hang off one of
// that employer's jobs.
type AuthorizationService struct {
	jobs         JobLookup
	applications ApplicationLookup
	interviews   InterviewLookup
	placements   PlacementLookup
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(jobs JobLookup, applications ApplicationLookup, interviews InterviewLookup, placements PlacementLookup) *AuthorizationService {
	return &AuthorizationService{
		jobs:         jobs,
		applications: applications,
		interviews:   interviews,
		placements:   placements,
	}
}

// CanModifyJob reports whether employerID owns the job
func (s *AuthorizationService) CanModifyJob(ctx context.Context, jobID, employerID int64) (bool, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return false, err
	}
	return job.EmployerID == employerID, nil
}

// ValidateJobOwnership validates that employerID owns the job or returns an error
func (s *AuthorizationService) ValidateJobOwnership(ctx context.Context, jobID, employerID int64) error {
	owns, err := s.CanModifyJob(ctx, jobID, employerID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return err
		}
		logger.Error().Err(err).Int64("jobID", jobID).Int64("employerID", employerID).Msg("Unexpected error during job ownership validation")
		return fmt.Errorf("failed to check job ownership: %w", err)
	}

	if !owns {
		logger.Warn().Int64("jobID", jobID).Int64("employerID", employerID).Msg("Employer attempted to modify a job they do not own")
		return ErrNotJobOwner
	}
	return nil
}

// ValidateApplicationOwnership validates that the application's job belongs to employerID
func (s *AuthorizationService) ValidateApplicationOwnership(ctx context.Context, appID, employerID int64) (*models.Application, error) {
	application, err := s.applications.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if err := s.ValidateJobOwnership(ctx, application.JobID, employerID); err != nil {
		return nil, err
	}
	return application, nil
}

// ValidateInterviewOwnership validates that the interview's job belongs to employerID
func (s *AuthorizationService) ValidateInterviewOwnership(ctx context.Context, interviewID, employerID int64) (*models.Interview, error) {
	interview, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if err := s.ValidateJobOwnership(ctx, interview.JobID, employerID); err != nil {
		return nil, err
	}
	return interview, nil
}

// ValidatePlacementOwnership validates that the placement's job belongs to employerID
func (s *AuthorizationService) ValidatePlacementOwnership(ctx context.Context, placementID, employerID int64) (*models.Placement, error) {
	placement, err := s.placements.GetByID(ctx, placementID)
	if err != nil {
		return nil, err
	}
	if err := s.ValidateJobOwnership(ctx, placement.JobID, employerID); err != nil {
		return nil, err
	}
	return placement, nil
}
