package services

import (
	"context"
	"time"

	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/pkg/helpers"
	"github.com/yigit/placementportal/internal/pkg/identity"
)

// Services defined in this package:
// - StudentService: student registration, sign-in and profile
// - EmployerService: employer registration, sign-in and profile
// - EmployerOpsService: jobs, applications, interviews and placements of one employer
// - PortalService: job board and a student's own applications, interviews and placement
// - ResumeService: resume upload, removal and public URL

// TxManager runs fn inside one database transaction carried by ctx
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// IdentityProvider authenticates identities and issues access tokens
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string, meta identity.Metadata) (*models.Identity, error)
	SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*models.Identity, error)
}

// EmailDirectory guards the email space shared by students and employers
type EmailDirectory interface {
	LockEmail(ctx context.Context, email string) error
	EmailInUse(ctx context.Context, email string) (bool, error)
}

// StudentStore persists students
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByUSN(ctx context.Context, usn string) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	Update(ctx context.Context, usn string, set helpers.SparseSet) (*models.Student, error)
	SetResume(ctx context.Context, usn string, resume *string) (*models.Student, error)
}

// EmployerStore persists employers
type EmployerStore interface {
	Create(ctx context.Context, employer *models.Employer) error
	GetByID(ctx context.Context, employerID int64) (*models.Employer, error)
	GetByEmail(ctx context.Context, email string) (*models.Employer, error)
	Update(ctx context.Context, employerID int64, set helpers.SparseSet) (*models.Employer, error)
}

// JobStore persists jobs
type JobStore interface {
	GetByID(ctx context.Context, jobID int64) (*models.Job, error)
	ListByEmployer(ctx context.Context, employerID int64) ([]*models.Job, error)
	ListWithCompany(ctx context.Context) ([]*models.JobListing, error)
	GetWithEmployer(ctx context.Context, jobID int64) (*models.JobListing, error)
	Create(ctx context.Context, employerID int64, fields models.JobFields) (*models.Job, error)
	Update(ctx context.Context, jobID int64, fields models.JobFields) (*models.Job, error)
	Delete(ctx context.Context, jobID int64) error
}

// ApplicationStore persists applications
type ApplicationStore interface {
	Exists(ctx context.Context, usn string, jobID int64) (bool, error)
	Create(ctx context.Context, usn string, jobID int64) (*models.Application, error)
	GetByID(ctx context.Context, appID int64) (*models.Application, error)
	ListByUSN(ctx context.Context, usn string) ([]*models.Application, error)
	ListByJobIDs(ctx context.Context, jobIDs []int64) ([]*models.Application, error)
	ListWithJobByUSN(ctx context.Context, usn string) ([]*models.ApplicationWithJob, error)
	UpdateStatus(ctx context.Context, appID int64, status, from models.ApplicationStatus) (*models.Application, error)
}

// InterviewStore persists interviews
type InterviewStore interface {
	Create(ctx context.Context, interview *models.Interview) (*models.Interview, error)
	GetByID(ctx context.Context, interviewID int64) (*models.Interview, error)
	Delete(ctx context.Context, interviewID int64) error
	SetResult(ctx context.Context, interviewID int64, result *string) (*models.Interview, error)
	ListByJobIDs(ctx context.Context, jobIDs []int64) ([]*models.Interview, error)
	ListWithJobByUSN(ctx context.Context, usn string) ([]*models.InterviewWithJob, error)
}

// PlacementStore persists placements
type PlacementStore interface {
	Create(ctx context.Context, placement *models.Placement) (*models.Placement, error)
	GetByID(ctx context.Context, placementID int64) (*models.Placement, error)
	Update(ctx context.Context, placementID int64, packageOffered *float64, joiningDate *time.Time) (*models.Placement, error)
	ListByJobIDs(ctx context.Context, jobIDs []int64) ([]*models.Placement, error)
	FirstWithEmployerByUSN(ctx context.Context, usn string) (*models.PlacementWithEmployer, error)
}
