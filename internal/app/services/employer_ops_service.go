package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placementportal/internal/app/auth"
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/app/models/dto"
	"github.com/yigit/placementportal/internal/pkg/apperrors"
	"github.com/yigit/placementportal/internal/pkg/email"
	"github.com/yigit/placementportal/internal/pkg/helpers"
)

// Employer operation errors
var (
	ErrNoJobsForEmployer         = apperrors.NewResourceNotFoundError(apperrors.MsgNoJobsForEmployer)
	ErrJobFieldsRequired         = apperrors.NewValidationError(apperrors.MsgAllFieldsRequired)
	ErrJobUpdateFieldsRequired   = apperrors.NewValidationError(apperrors.MsgAllJobFieldsRequired)
	ErrJobIDRequired             = apperrors.NewValidationError(apperrors.MsgJobIDRequired)
	ErrAppIDAndStatusRequired    = apperrors.NewValidationError(apperrors.MsgAppIDAndStatusRequired)
	ErrInvalidApplicationStatus  = apperrors.NewValidationError(apperrors.MsgInvalidApplicationStatus)
	ErrStatusTransitionRefused   = apperrors.NewConflictError(apperrors.MsgStatusTransitionRefused)
	ErrInterviewFieldsRequired   = apperrors.NewValidationError(apperrors.MsgAllFieldsRequired)
	ErrInterviewIDRequired       = apperrors.NewValidationError(apperrors.MsgInterviewIDRequired)
	ErrInvalidInterviewMode      = apperrors.NewValidationError("Interview mode must be Online or Offline")
	ErrInvalidInterviewDate      = apperrors.NewValidationError("Invalid interview date")
	ErrPlacementFieldsRequired   = apperrors.NewValidationError(apperrors.MsgAllFieldsRequired)
	ErrInvalidJoiningDate        = apperrors.NewValidationError("Invalid joining date")
	ErrInterviewResultIDRequired = apperrors.NewValidationError("Interview ID is required for recording a result")
)

// EmployerOpsService defines the operations an employer runs on their own
// jobs and the rows hanging off them
type EmployerOpsService interface {
	GetJobsByEmployer(ctx context.Context, employerID int64) ([]*models.Job, error)
	InsertJob(ctx context.Context, employerID int64, req *dto.JobRequest) (*models.Job, error)
	UpdateJob(ctx context.Context, employerID, jobID int64, req *dto.JobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, employerID, jobID int64) error

	GetJobsAndApplicationsByEmployer(ctx context.Context, jobs []*models.Job, employerID int64) ([]helpers.Record, error)
	GetJobsAndInterviewsByEmployer(ctx context.Context, jobs []*models.Job, employerID int64) ([]helpers.Record, error)
	GetJobsAndPlacementsByEmployer(ctx context.Context, jobs []*models.Job, employerID int64) ([]helpers.Record, error)

	UpdateApplicationStatus(ctx context.Context, employerID, appID int64, status string) (*models.Application, error)

	InsertInterview(ctx context.Context, employerID int64, req *dto.InterviewRequest) (*models.Interview, error)
	DeleteInterview(ctx context.Context, employerID, interviewID int64) error
	SetInterviewResult(ctx context.Context, employerID, interviewID int64, result *string) (*models.Interview, error)

	InsertPlacement(ctx context.Context, employerID int64, req *dto.PlacementRequest) (*models.Placement, error)
	UpdatePlacement(ctx context.Context, employerID, placementID int64, req *dto.UpdatePlacementRequest) (*models.Placement, error)
}

// EmployerOpsConfig tunes employer operations
type EmployerOpsConfig struct {
	// StrictTransitions only lets Pending applications move to Accepted or Rejected
	StrictTransitions bool
}

// employerOpsServiceImpl implements EmployerOpsService
type employerOpsServiceImpl struct {
	jobs         JobStore
	applications ApplicationStore
	interviews   InterviewStore
	placements   PlacementStore
	students     StudentStore
	employers    EmployerStore
	authz        *auth.AuthorizationService
	mailer       email.EmailService
	config       EmployerOpsConfig
	logger       zerolog.Logger
}

// NewEmployerOpsService creates a new EmployerOpsService
func NewEmployerOpsService(
	jobs JobStore,
	applications ApplicationStore,
	interviews InterviewStore,
	placements PlacementStore,
	students StudentStore,
	employers EmployerStore,
	authz *auth.AuthorizationService,
	mailer email.EmailService,
	config EmployerOpsConfig,
	logger zerolog.Logger,
) EmployerOpsService {
	return &employerOpsServiceImpl{
		jobs:         jobs,
		applications: applications,
		interviews:   interviews,
		placements:   placements,
		students:     students,
		employers:    employers,
		authz:        authz,
		mailer:       mailer,
		config:       config,
		logger:       logger,
	}
}

func jobFields(req *dto.JobRequest) models.JobFields {
	return models.JobFields{
		Title:          req.Title,
		RequiredSkills: req.RequiredSkills,
		Description:    req.Description,
		Salary:         req.Salary,
		Eligibility:    req.Eligibility,
		Location:       req.Location,
	}
}

// GetJobsByEmployer lists the employer's jobs, newest first
func (s *employerOpsServiceImpl) GetJobsByEmployer(ctx context.Context, employerID int64) ([]*models.Job, error) {
	return s.jobs.ListByEmployer(ctx, employerID)
}

// InsertJob posts a job dated now
func (s *employerOpsServiceImpl) InsertJob(ctx context.Context, employerID int64, req *dto.JobRequest) (*models.Job, error) {
	fields := jobFields(req)
	if !fields.Complete() {
		return nil, ErrJobFieldsRequired
	}

	job, err := s.jobs.Create(ctx, employerID, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("jobID", job.JobID).Int64("employerID", employerID).Msg("Job posted")
	return job, nil
}

// UpdateJob replaces every mutable field of one of the employer's jobs
func (s *employerOpsServiceImpl) UpdateJob(ctx context.Context, employerID, jobID int64, req *dto.JobRequest) (*models.Job, error) {
	fields := jobFields(req)
	if jobID == 0 || !fields.Complete() {
		return nil, ErrJobUpdateFieldsRequired
	}

	if err := s.authz.ValidateJobOwnership(ctx, jobID, employerID); err != nil {
		return nil, err
	}

	return s.jobs.Update(ctx, jobID, fields)
}

// DeleteJob removes one of the employer's jobs together with its
// applications and interviews. A job with recorded placements is refused
// with a conflict and kept.
func (s *employerOpsServiceImpl) DeleteJob(ctx context.Context, employerID, jobID int64) error {
	if jobID == 0 {
		return ErrJobIDRequired
	}

	if err := s.authz.ValidateJobOwnership(ctx, jobID, employerID); err != nil {
		return err
	}

	if err := s.jobs.Delete(ctx, jobID); err != nil {
		return err
	}

	s.logger.Info().Int64("jobID", jobID).Int64("employerID", employerID).Msg("Job deleted")
	return nil
}

// employerJobs returns the supplied jobs or loads the employer's own, and
// refuses an empty set.
func (s *employerOpsServiceImpl) employerJobs(ctx context.Context, jobs []*models.Job, employerID int64) (jobIndex, error) {
	if jobs == nil {
		var err error
		jobs, err = s.jobs.ListByEmployer(ctx, employerID)
		if err != nil {
			return nil, err
		}
	}

	if len(jobs) == 0 {
		return nil, ErrNoJobsForEmployer
	}
	return indexJobs(jobs), nil
}

// GetJobsAndApplicationsByEmployer flattens every application for the
// employer's jobs over its job
func (s *employerOpsServiceImpl) GetJobsAndApplicationsByEmployer(ctx context.Context, jobs []*models.Job, employerID int64) ([]helpers.Record, error) {
	idx, err := s.employerJobs(ctx, jobs, employerID)
	if err != nil {
		return nil, err
	}

	applications, err := s.applications.ListByJobIDs(ctx, idx.ids())
	if err != nil {
		return nil, err
	}
	return stitch(idx, applications, func(a *models.Application) int64 { return a.JobID }), nil
}

// GetJobsAndInterviewsByEmployer flattens every interview for the
// employer's jobs over its job
func (s *employerOpsServiceImpl) GetJobsAndInterviewsByEmployer(ctx context.Context, jobs []*models.Job, employerID int64) ([]helpers.Record, error) {
	idx, err := s.employerJobs(ctx, jobs, employerID)
	if err != nil {
		return nil, err
	}

	interviews, err := s.interviews.ListByJobIDs(ctx, idx.ids())
	if err != nil {
		return nil, err
	}
	return stitch(idx, interviews, func(i *models.Interview) int64 { return i.JobID }), nil
}

// GetJobsAndPlacementsByEmployer flattens every placement for the
// employer's jobs over its job
func (s *employerOpsServiceImpl) GetJobsAndPlacementsByEmployer(ctx context.Context, jobs []*models.Job, employerID int64) ([]helpers.Record, error) {
	idx, err := s.employerJobs(ctx, jobs, employerID)
	if err != nil {
		return nil, err
	}

	placements, err := s.placements.ListByJobIDs(ctx, idx.ids())
	if err != nil {
		return nil, err
	}
	return stitch(idx, placements, func(p *models.Placement) int64 { return p.JobID }), nil
}

// UpdateApplicationStatus sets the review status of an application to one of
// the employer's jobs. In strict mode only a Pending application moves, and
// the stored status is re-checked by the update itself.
func (s *employerOpsServiceImpl) UpdateApplicationStatus(ctx context.Context, employerID, appID int64, status string) (*models.Application, error) {
	if appID == 0 || status == "" {
		return nil, ErrAppIDAndStatusRequired
	}

	next := models.ApplicationStatus(status)
	if !next.IsValid() {
		return nil, ErrInvalidApplicationStatus
	}

	application, err := s.authz.ValidateApplicationOwnership(ctx, appID, employerID)
	if err != nil {
		return nil, err
	}

	var from models.ApplicationStatus
	if s.config.StrictTransitions {
		if !application.Status.CanTransition(next, true) {
			return nil, ErrStatusTransitionRefused
		}
		from = models.StatusPending
	}

	updated, err := s.applications.UpdateStatus(ctx, appID, next, from)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("appID", appID).Str("from", string(application.Status)).Str("to", string(next)).Msg("Application status updated")
	return updated, nil
}

// InsertInterview schedules an interview for one of the employer's jobs and
// notifies the student
func (s *employerOpsServiceImpl) InsertInterview(ctx context.Context, employerID int64, req *dto.InterviewRequest) (*models.Interview, error) {
	if req.USN == "" || req.JobID == nil || *req.JobID == 0 || req.Date == "" || req.InterviewMode == "" || req.Round == "" {
		return nil, ErrInterviewFieldsRequired
	}

	mode := models.InterviewMode(req.InterviewMode)
	if !mode.IsValid() {
		return nil, ErrInvalidInterviewMode
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidInterviewDate
	}

	if err := s.authz.ValidateJobOwnership(ctx, *req.JobID, employerID); err != nil {
		return nil, err
	}

	interview, err := s.interviews.Create(ctx, &models.Interview{
		USN:           req.USN,
		JobID:         *req.JobID,
		Date:          date,
		InterviewMode: mode,
		Round:         req.Round,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("interviewID", interview.InterviewID).Int64("jobID", interview.JobID).Str("usn", interview.USN).Msg("Interview scheduled")
	s.notifyInterview(ctx, employerID, interview)
	return interview, nil
}

// notifyInterview mails the student about a new interview. Failures are
// logged only.
func (s *employerOpsServiceImpl) notifyInterview(ctx context.Context, employerID int64, interview *models.Interview) {
	student, err := s.students.GetByUSN(ctx, interview.USN)
	if err != nil {
		s.logger.Warn().Err(err).Str("usn", interview.USN).Msg("Interview notice skipped: student lookup failed")
		return
	}

	notice := email.InterviewNotice{
		Date:  interview.Date,
		Mode:  string(interview.InterviewMode),
		Round: interview.Round,
	}
	if job, err := s.jobs.GetByID(ctx, interview.JobID); err == nil {
		notice.JobTitle = job.Title
	}
	if employer, err := s.employers.GetByID(ctx, employerID); err == nil {
		notice.Company = employer.CompanyName
	}

	if err := s.mailer.SendInterviewScheduledEmail(student.Email, student.FirstName, notice); err != nil {
		s.logger.Warn().Err(err).Int64("interviewID", interview.InterviewID).Msg("Failed to send interview notice")
	}
}

// DeleteInterview removes an interview for one of the employer's jobs
func (s *employerOpsServiceImpl) DeleteInterview(ctx context.Context, employerID, interviewID int64) error {
	if interviewID == 0 {
		return ErrInterviewIDRequired
	}

	if _, err := s.authz.ValidateInterviewOwnership(ctx, interviewID, employerID); err != nil {
		return err
	}

	if err := s.interviews.Delete(ctx, interviewID); err != nil {
		return err
	}

	s.logger.Info().Int64("interviewID", interviewID).Msg("Interview deleted")
	return nil
}

// SetInterviewResult records the outcome of an interview; an empty result
// clears it
func (s *employerOpsServiceImpl) SetInterviewResult(ctx context.Context, employerID, interviewID int64, result *string) (*models.Interview, error) {
	if interviewID == 0 {
		return nil, ErrInterviewResultIDRequired
	}

	if _, err := s.authz.ValidateInterviewOwnership(ctx, interviewID, employerID); err != nil {
		return nil, err
	}

	if result != nil {
		result = helpers.StringOrNil(*result)
	}
	return s.interviews.SetResult(ctx, interviewID, result)
}

// InsertPlacement records an offer for one of the employer's jobs
func (s *employerOpsServiceImpl) InsertPlacement(ctx context.Context, employerID int64, req *dto.PlacementRequest) (*models.Placement, error) {
	if req.USN == "" || req.JobID == nil || *req.JobID == 0 || req.PackageOffered == nil || *req.PackageOffered == 0 || req.JoiningDate == "" {
		return nil, ErrPlacementFieldsRequired
	}

	joiningDate, err := helpers.ParseDate(req.JoiningDate)
	if err != nil {
		return nil, ErrInvalidJoiningDate
	}

	if err := s.authz.ValidateJobOwnership(ctx, *req.JobID, employerID); err != nil {
		return nil, err
	}

	placement, err := s.placements.Create(ctx, &models.Placement{
		USN:            req.USN,
		JobID:          *req.JobID,
		PackageOffered: *req.PackageOffered,
		JoiningDate:    joiningDate,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("placementID", placement.PlacementID).Str("usn", placement.USN).Msg("Placement recorded")
	return placement, nil
}

// UpdatePlacement revises the package, the joining date or both
func (s *employerOpsServiceImpl) UpdatePlacement(ctx context.Context, employerID, placementID int64, req *dto.UpdatePlacementRequest) (*models.Placement, error) {
	packageOffered := req.PackageOffered
	if packageOffered != nil && *packageOffered == 0 {
		packageOffered = nil
	}
	hasDate := req.JoiningDate != nil && *req.JoiningDate != ""

	if placementID == 0 || (packageOffered == nil && !hasDate) {
		return nil, ErrPlacementFieldsRequired
	}

	var joiningDate *time.Time
	if hasDate {
		parsed, err := helpers.ParseDate(*req.JoiningDate)
		if err != nil {
			return nil, ErrInvalidJoiningDate
		}
		joiningDate = &parsed
	}

	if _, err := s.authz.ValidatePlacementOwnership(ctx, placementID, employerID); err != nil {
		return nil, err
	}

	return s.placements.Update(ctx, placementID, packageOffered, joiningDate)
}
