package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/db"
	"github.com/yigit/placementportal/internal/pkg/dberrors"
	"github.com/yigit/placementportal/internal/pkg/logger"
)

var jobColumns = []string{"job_id", "employer_id", "title", "required_skills", "description", "salary", "eligibility", "location", "post_date"}

// JobRepository handles job database operations
type JobRepository struct {
	baseRepository
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(database *db.PostgresDB) *JobRepository {
	return &JobRepository{baseRepository: newBaseRepository(database)}
}

func jobScanTargets(j *models.Job) []any {
	return []any{&j.JobID, &j.EmployerID, &j.Title, &j.RequiredSkills, &j.Description, &j.Salary, &j.Eligibility, &j.Location, &j.PostDate}
}

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	if err := row.Scan(jobScanTargets(&j)...); err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepository) queryJobs(ctx context.Context, query squirrel.SelectBuilder, op string) ([]*models.Job, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msgf("Error building %s SQL", op)
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msgf("Error executing %s query", op)
		return nil, fmt.Errorf("error querying jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]*models.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning job row")
			return nil, fmt.Errorf("error scanning job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}
	return jobs, nil
}

// GetByID retrieves a job by id
func (r *JobRepository) GetByID(ctx context.Context, jobID int64) (*models.Job, error) {
	sql, args, err := r.sb.Select(jobColumns...).From("jobs").Where(squirrel.Eq{"job_id": jobID}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get job SQL")
		return nil, fmt.Errorf("failed to build get job query: %w", err)
	}

	job, err := scanJob(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		logger.Error().Err(err).Int64("jobID", jobID).Msg("Error scanning job row")
		return nil, fmt.Errorf("error retrieving job: %w", err)
	}
	return job, nil
}

// ListByEmployer returns the employer's jobs, newest first
func (r *JobRepository) ListByEmployer(ctx context.Context, employerID int64) ([]*models.Job, error) {
	return r.queryJobs(ctx,
		r.sb.Select(jobColumns...).From("jobs").
			Where(squirrel.Eq{"employer_id": employerID}).
			OrderBy("post_date DESC", "job_id DESC"),
		"list jobs by employer")
}

// ListWithCompany returns every job with its employer's company name
func (r *JobRepository) ListWithCompany(ctx context.Context) ([]*models.JobListing, error) {
	sql, args, err := r.sb.Select(append(qualify("j", jobColumns), "e.company_name")...).
		From("jobs j").
		Join("employers e ON e.employer_id = j.employer_id").
		OrderBy("j.post_date DESC", "j.job_id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list jobs SQL")
		return nil, fmt.Errorf("failed to build list jobs query: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list jobs query")
		return nil, fmt.Errorf("error querying jobs: %w", err)
	}
	defer rows.Close()

	listings := make([]*models.JobListing, 0)
	for rows.Next() {
		var listing models.JobListing
		summary := &models.EmployerSummary{}
		if err := rows.Scan(append(jobScanTargets(&listing.Job), &summary.CompanyName)...); err != nil {
			logger.Error().Err(err).Msg("Error scanning job listing row")
			return nil, fmt.Errorf("error scanning job listing: %w", err)
		}
		listing.Employers = summary
		listings = append(listings, &listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}
	return listings, nil
}

// GetWithEmployer returns one job with the employer's name, id, contact
// email and industry
func (r *JobRepository) GetWithEmployer(ctx context.Context, jobID int64) (*models.JobListing, error) {
	sql, args, err := r.sb.Select(append(qualify("j", jobColumns),
		"e.company_name", "e.employer_id", "e.contact_email", "e.industry_type")...).
		From("jobs j").
		Join("employers e ON e.employer_id = j.employer_id").
		Where(squirrel.Eq{"j.job_id": jobID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get job details SQL")
		return nil, fmt.Errorf("failed to build get job details query: %w", err)
	}

	var listing models.JobListing
	var (
		employerID   int64
		contactEmail string
		industryType string
	)
	summary := &models.EmployerSummary{}
	err = r.conn(ctx).QueryRow(ctx, sql, args...).Scan(append(jobScanTargets(&listing.Job),
		&summary.CompanyName, &employerID, &contactEmail, &industryType)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		logger.Error().Err(err).Int64("jobID", jobID).Msg("Error scanning job details row")
		return nil, fmt.Errorf("error retrieving job details: %w", err)
	}

	summary.EmployerID = &employerID
	summary.ContactEmail = &contactEmail
	summary.IndustryType = &industryType
	listing.Employers = summary
	return &listing, nil
}

// Create inserts a job posted now by employerID
func (r *JobRepository) Create(ctx context.Context, employerID int64, fields models.JobFields) (*models.Job, error) {
	sql, args, err := r.sb.Insert("jobs").
		Columns("employer_id", "title", "required_skills", "description", "salary", "eligibility", "location", "post_date").
		Values(employerID, fields.Title, fields.RequiredSkills, fields.Description, fields.Salary,
			fields.Eligibility, fields.Location, time.Now().UTC()).
		Suffix("RETURNING " + joinColumns(jobColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create job SQL")
		return nil, fmt.Errorf("failed to build create job query: %w", err)
	}

	job, err := scanJob(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, ErrEmployerNotFound
		}
		logger.Error().Err(err).Int64("employerID", employerID).Msg("Error executing create job query")
		return nil, fmt.Errorf("error inserting job: %w", err)
	}

	logger.Info().Int64("jobID", job.JobID).Int64("employerID", employerID).Msg("Job created successfully")
	return job, nil
}

// Update replaces every mutable field of a job
func (r *JobRepository) Update(ctx context.Context, jobID int64, fields models.JobFields) (*models.Job, error) {
	sql, args, err := r.sb.Update("jobs").
		SetMap(map[string]interface{}{
			"title":           fields.Title,
			"required_skills": fields.RequiredSkills,
			"description":     fields.Description,
			"salary":          fields.Salary,
			"eligibility":     fields.Eligibility,
			"location":        fields.Location,
		}).
		Where(squirrel.Eq{"job_id": jobID}).
		Suffix("RETURNING " + joinColumns(jobColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update job SQL")
		return nil, fmt.Errorf("failed to build update job query: %w", err)
	}

	job, err := scanJob(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		logger.Error().Err(err).Int64("jobID", jobID).Msg("Error executing update job query")
		return nil, fmt.Errorf("error updating job: %w", err)
	}
	return job, nil
}

// Delete hard-deletes a job with its applications and interviews. A job with
// recorded placements is kept.
func (r *JobRepository) Delete(ctx context.Context, jobID int64) error {
	sql, args, err := r.sb.Delete("jobs").Where(squirrel.Eq{"job_id": jobID}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete job SQL")
		return fmt.Errorf("failed to build delete job query: %w", err)
	}

	cmdTag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return ErrJobHasPlacements
		}
		logger.Error().Err(err).Int64("jobID", jobID).Msg("Error executing delete job query")
		return fmt.Errorf("error deleting job: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrJobNotFound
	}

	logger.Info().Int64("jobID", jobID).Msg("Job deleted successfully")
	return nil
}
