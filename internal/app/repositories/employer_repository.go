package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/db"
	"github.com/yigit/placementportal/internal/pkg/dberrors"
	"github.com/yigit/placementportal/internal/pkg/helpers"
	"github.com/yigit/placementportal/internal/pkg/logger"
)

var employerColumns = []string{"employer_id", "company_name", "website", "industry_type", "contact_email", "location"}

// EmployerRepository handles employer database operations
type EmployerRepository struct {
	baseRepository
}

// NewEmployerRepository creates a new EmployerRepository
func NewEmployerRepository(database *db.PostgresDB) *EmployerRepository {
	return &EmployerRepository{baseRepository: newBaseRepository(database)}
}

func scanEmployer(row pgx.Row) (*models.Employer, error) {
	var e models.Employer
	if err := row.Scan(&e.EmployerID, &e.CompanyName, &e.Website, &e.IndustryType, &e.ContactEmail, &e.Location); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts an employer with its caller-supplied id. An existing id is
// reported as a conflict, never overwritten.
func (r *EmployerRepository) Create(ctx context.Context, employer *models.Employer) error {
	sql, args, err := r.sb.Insert("employers").
		Columns(employerColumns...).
		Values(employer.EmployerID, employer.CompanyName, employer.Website, employer.IndustryType,
			employer.ContactEmail, employer.Location).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create employer SQL")
		return fmt.Errorf("failed to build create employer query: %w", err)
	}

	if _, err = r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, dberrors.EmployersPK):
			logger.Warn().Int64("employerID", employer.EmployerID).Msg("Attempted to create employer with duplicate id")
			return ErrEmployerIDExists
		case dberrors.IsDuplicateConstraintError(err, dberrors.EmployersEmailUnique):
			logger.Warn().Str("email", employer.ContactEmail).Msg("Attempted to create employer with duplicate email")
			return ErrEmailInUse
		}
		logger.Error().Err(err).Int64("employerID", employer.EmployerID).Msg("Error executing create employer query")
		return fmt.Errorf("error creating employer: %w", err)
	}

	logger.Info().Int64("employerID", employer.EmployerID).Msg("Employer created successfully")
	return nil
}

func (r *EmployerRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Employer, error) {
	sql, args, err := r.sb.Select(employerColumns...).From("employers").Where(where).Limit(1).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get employer SQL")
		return nil, fmt.Errorf("failed to build get employer query: %w", err)
	}

	employer, err := scanEmployer(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployerNotFound
		}
		logger.Error().Err(err).Interface("where", where).Msg("Error scanning employer row")
		return nil, fmt.Errorf("error retrieving employer: %w", err)
	}
	return employer, nil
}

// GetByID retrieves an employer by employer_id
func (r *EmployerRepository) GetByID(ctx context.Context, employerID int64) (*models.Employer, error) {
	return r.getOne(ctx, squirrel.Eq{"employer_id": employerID})
}

// GetByEmail retrieves an employer by contact email
func (r *EmployerRepository) GetByEmail(ctx context.Context, email string) (*models.Employer, error) {
	return r.getOne(ctx, squirrel.Eq{"contact_email": email})
}

// Update applies a sparse profile update and returns the stored row
func (r *EmployerRepository) Update(ctx context.Context, employerID int64, set helpers.SparseSet) (*models.Employer, error) {
	if set.Empty() {
		return r.GetByID(ctx, employerID)
	}

	sql, args, err := r.sb.Update("employers").
		SetMap(set).
		Where(squirrel.Eq{"employer_id": employerID}).
		Suffix("RETURNING " + joinColumns(employerColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update employer SQL")
		return nil, fmt.Errorf("failed to build update employer query: %w", err)
	}

	employer, err := scanEmployer(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployerNotFound
		}
		logger.Error().Err(err).Int64("employerID", employerID).Msg("Error executing update employer query")
		return nil, fmt.Errorf("error updating employer: %w", err)
	}
	return employer, nil
}
