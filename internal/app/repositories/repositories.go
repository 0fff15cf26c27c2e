package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/placementportal/internal/db"
	"github.com/yigit/placementportal/internal/pkg/apperrors"
)

// Not-found errors returned by strict single-row lookups
var (
	ErrStudentNotFound     = apperrors.NewResourceNotFoundError("Student not found")
	ErrEmployerNotFound    = apperrors.NewResourceNotFoundError("Employer not found")
	ErrJobNotFound         = apperrors.NewResourceNotFoundError("Job not found")
	ErrApplicationNotFound = apperrors.NewResourceNotFoundError("Application not found")
	ErrInterviewNotFound   = apperrors.NewResourceNotFoundError("Interview not found")
	ErrPlacementNotFound   = apperrors.NewResourceNotFoundError("Placement not found")
	ErrIdentityNotFound    = apperrors.NewResourceNotFoundError("Identity not found")
)

// Conflict errors raised by unique constraints
var (
	ErrEmailInUse       = apperrors.NewConflictError(apperrors.MsgUserAlreadyExists)
	ErrUSNExists        = apperrors.NewConflictError(apperrors.MsgStudentUSNAlreadyExists)
	ErrEmployerIDExists = apperrors.NewConflictError(apperrors.MsgEmployerIDAlreadyExists)
	ErrAlreadyApplied   = apperrors.NewConflictError(apperrors.MsgAlreadyApplied)
	ErrIdentityExists   = apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, "User already registered")
	ErrJobHasPlacements = apperrors.NewConflictError("Job has placements and cannot be deleted")
)

// baseRepository gives every repository the statement builder and a
// connection that joins the caller's transaction when there is one.
type baseRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

func newBaseRepository(database *db.PostgresDB) baseRepository {
	return baseRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r baseRepository) conn(ctx context.Context) db.Querier {
	return r.db.Conn(ctx)
}

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository     *StudentRepository
	EmployerRepository    *EmployerRepository
	DirectoryRepository   *DirectoryRepository
	JobRepository         *JobRepository
	ApplicationRepository *ApplicationRepository
	InterviewRepository   *InterviewRepository
	PlacementRepository   *PlacementRepository
	IdentityRepository    *IdentityRepository
	TokenRepository       *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		StudentRepository:     NewStudentRepository(database),
		EmployerRepository:    NewEmployerRepository(database),
		DirectoryRepository:   NewDirectoryRepository(database),
		JobRepository:         NewJobRepository(database),
		ApplicationRepository: NewApplicationRepository(database),
		InterviewRepository:   NewInterviewRepository(database),
		PlacementRepository:   NewPlacementRepository(database),
		IdentityRepository:    NewIdentityRepository(database),
		TokenRepository:       NewTokenRepository(database),
	}
}
