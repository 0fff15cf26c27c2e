package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/db"
	"github.com/yigit/placementportal/internal/pkg/apperrors"
	"github.com/yigit/placementportal/internal/pkg/dberrors"
	"github.com/yigit/placementportal/internal/pkg/logger"
)

var applicationColumns = []string{"app_id", "usn", "job_id", "status", "date_applied"}

// ApplicationRepository handles application database operations
type ApplicationRepository struct {
	baseRepository
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(database *db.PostgresDB) *ApplicationRepository {
	return &ApplicationRepository{baseRepository: newBaseRepository(database)}
}

func applicationScanTargets(a *models.Application) []any {
	return []any{&a.AppID, &a.USN, &a.JobID, &a.Status, &a.DateApplied}
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	var a models.Application
	if err := row.Scan(applicationScanTargets(&a)...); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*models.Application, error) {
	sql, args, err := r.sb.Select(applicationColumns...).From("applications").Where(where).OrderBy("app_id").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list applications SQL")
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list applications query")
		return nil, fmt.Errorf("error fetching applications: %w", err)
	}
	defer rows.Close()

	applications := make([]*models.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning application row")
			return nil, fmt.Errorf("error scanning application: %w", err)
		}
		applications = append(applications, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}
	return applications, nil
}

// Exists reports whether usn already applied to jobID
func (r *ApplicationRepository) Exists(ctx context.Context, usn string, jobID int64) (bool, error) {
	var exists bool
	sql, args, err := r.sb.Select("1").
		From("applications").
		Where(squirrel.Eq{"usn": usn, "job_id": jobID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building application exists SQL")
		return false, fmt.Errorf("failed to build application exists query: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("usn", usn).Int64("jobID", jobID).Msg("Error checking application existence")
		return false, fmt.Errorf("error checking application existence: %w", err)
	}
	return exists, nil
}

// Create inserts a Pending application. The (usn, job_id) unique index
// turns a lost race into ErrAlreadyApplied.
func (r *ApplicationRepository) Create(ctx context.Context, usn string, jobID int64) (*models.Application, error) {
	sql, args, err := r.sb.Insert("applications").
		Columns("usn", "job_id", "status").
		Values(usn, jobID, models.StatusPending).
		Suffix("RETURNING " + joinColumns(applicationColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create application SQL")
		return nil, fmt.Errorf("failed to build create application query: %w", err)
	}

	app, err := scanApplication(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, dberrors.ApplicationsUsnJobUniq):
			return nil, ErrAlreadyApplied
		case dberrors.IsForeignKeyViolation(err):
			return nil, ErrJobNotFound
		}
		logger.Error().Err(err).Str("usn", usn).Int64("jobID", jobID).Msg("Error executing create application query")
		return nil, fmt.Errorf("error creating application: %w", err)
	}

	logger.Info().Int64("appID", app.AppID).Str("usn", usn).Int64("jobID", jobID).Msg("Application submitted")
	return app, nil
}

// GetByID retrieves an application by id
func (r *ApplicationRepository) GetByID(ctx context.Context, appID int64) (*models.Application, error) {
	sql, args, err := r.sb.Select(applicationColumns...).From("applications").Where(squirrel.Eq{"app_id": appID}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get application SQL")
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	app, err := scanApplication(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		logger.Error().Err(err).Int64("appID", appID).Msg("Error scanning application row")
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}
	return app, nil
}

// ListByUSN returns a student's applications
func (r *ApplicationRepository) ListByUSN(ctx context.Context, usn string) ([]*models.Application, error) {
	return r.list(ctx, squirrel.Eq{"usn": usn})
}

// ListByJobIDs returns the applications to any of jobIDs
func (r *ApplicationRepository) ListByJobIDs(ctx context.Context, jobIDs []int64) ([]*models.Application, error) {
	return r.list(ctx, squirrel.Eq{"job_id": jobIDs})
}

// ListWithJobByUSN returns a student's applications with job title,
// employer id and company name
func (r *ApplicationRepository) ListWithJobByUSN(ctx context.Context, usn string) ([]*models.ApplicationWithJob, error) {
	sql, args, err := r.sb.Select(append(qualify("a", applicationColumns), "j.title", "j.employer_id", "e.company_name")...).
		From("applications a").
		Join("jobs j ON j.job_id = a.job_id").
		Join("employers e ON e.employer_id = j.employer_id").
		Where(squirrel.Eq{"a.usn": usn}).
		OrderBy("a.app_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list applications with job SQL")
		return nil, fmt.Errorf("failed to build list applications with job query: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("usn", usn).Msg("Error executing list applications with job query")
		return nil, fmt.Errorf("error fetching applications: %w", err)
	}
	defer rows.Close()

	result := make([]*models.ApplicationWithJob, 0)
	for rows.Next() {
		var item models.ApplicationWithJob
		job := &models.ApplicationJob{Employers: &models.EmployerSummary{}}
		if err := rows.Scan(append(applicationScanTargets(&item.Application),
			&job.Title, &job.EmployerID, &job.Employers.CompanyName)...); err != nil {
			logger.Error().Err(err).Msg("Error scanning application with job row")
			return nil, fmt.Errorf("error scanning application: %w", err)
		}
		item.Jobs = job
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}
	return result, nil
}

// UpdateStatus sets the status. When from is non-empty the row is only
// updated while it still holds that status; otherwise the refusal is
// reported as a conflict.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, appID int64, status, from models.ApplicationStatus) (*models.Application, error) {
	where := squirrel.Eq{"app_id": appID}
	if from != "" {
		where["status"] = from
	}

	sql, args, err := r.sb.Update("applications").
		Set("status", status).
		Where(where).
		Suffix("RETURNING " + joinColumns(applicationColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update application status SQL")
		return nil, fmt.Errorf("failed to build update application status query: %w", err)
	}

	app, err := scanApplication(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if from != "" {
				return nil, apperrors.NewConflictError(apperrors.MsgStatusTransitionRefused)
			}
			return nil, ErrApplicationNotFound
		}
		logger.Error().Err(err).Int64("appID", appID).Msg("Error executing update application status query")
		return nil, fmt.Errorf("error updating application status: %w", err)
	}

	logger.Info().Int64("appID", appID).Str("status", string(status)).Msg("Application status updated")
	return app, nil
}
