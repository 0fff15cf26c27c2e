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
	"github.com/yigit/placementportal/internal/pkg/logger"
)

var interviewColumns = []string{"interview_id", "usn", "job_id", "date", "interview_mode", "round", "result"}

// InterviewRepository handles interview database operations
type InterviewRepository struct {
	baseRepository
}

// NewInterviewRepository creates a new InterviewRepository
func NewInterviewRepository(database *db.PostgresDB) *InterviewRepository {
	return &InterviewRepository{baseRepository: newBaseRepository(database)}
}

func interviewScanTargets(i *models.Interview) []any {
	return []any{&i.InterviewID, &i.USN, &i.JobID, &i.Date, &i.InterviewMode, &i.Round, &i.Result}
}

func scanInterview(row pgx.Row) (*models.Interview, error) {
	var i models.Interview
	if err := row.Scan(interviewScanTargets(&i)...); err != nil {
		return nil, err
	}
	return &i, nil
}

// Create inserts an interview with no result
func (r *InterviewRepository) Create(ctx context.Context, interview *models.Interview) (*models.Interview, error) {
	sql, args, err := r.sb.Insert("interviews").
		Columns("usn", "job_id", "date", "interview_mode", "round").
		Values(interview.USN, interview.JobID, interview.Date, interview.InterviewMode, interview.Round).
		Suffix("RETURNING " + joinColumns(interviewColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create interview SQL")
		return nil, fmt.Errorf("failed to build create interview query: %w", err)
	}

	created, err := scanInterview(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, ErrStudentNotFound
		}
		logger.Error().Err(err).Str("usn", interview.USN).Int64("jobID", interview.JobID).Msg("Error executing create interview query")
		return nil, fmt.Errorf("error inserting interview: %w", err)
	}

	logger.Info().Int64("interviewID", created.InterviewID).Msg("Interview scheduled")
	return created, nil
}

// GetByID retrieves an interview by id
func (r *InterviewRepository) GetByID(ctx context.Context, interviewID int64) (*models.Interview, error) {
	sql, args, err := r.sb.Select(interviewColumns...).From("interviews").Where(squirrel.Eq{"interview_id": interviewID}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get interview SQL")
		return nil, fmt.Errorf("failed to build get interview query: %w", err)
	}

	interview, err := scanInterview(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInterviewNotFound
		}
		logger.Error().Err(err).Int64("interviewID", interviewID).Msg("Error scanning interview row")
		return nil, fmt.Errorf("error retrieving interview: %w", err)
	}
	return interview, nil
}

// Delete hard-deletes an interview
func (r *InterviewRepository) Delete(ctx context.Context, interviewID int64) error {
	sql, args, err := r.sb.Delete("interviews").Where(squirrel.Eq{"interview_id": interviewID}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete interview SQL")
		return fmt.Errorf("failed to build delete interview query: %w", err)
	}

	cmdTag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("interviewID", interviewID).Msg("Error executing delete interview query")
		return fmt.Errorf("error deleting interview: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrInterviewNotFound
	}
	return nil
}

// SetResult records the outcome; nil clears it
func (r *InterviewRepository) SetResult(ctx context.Context, interviewID int64, result *string) (*models.Interview, error) {
	sql, args, err := r.sb.Update("interviews").
		Set("result", result).
		Where(squirrel.Eq{"interview_id": interviewID}).
		Suffix("RETURNING " + joinColumns(interviewColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set interview result SQL")
		return nil, fmt.Errorf("failed to build set interview result query: %w", err)
	}

	interview, err := scanInterview(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInterviewNotFound
		}
		logger.Error().Err(err).Int64("interviewID", interviewID).Msg("Error executing set interview result query")
		return nil, fmt.Errorf("error updating interview result: %w", err)
	}
	return interview, nil
}

// ListByJobIDs returns the interviews for any of jobIDs
func (r *InterviewRepository) ListByJobIDs(ctx context.Context, jobIDs []int64) ([]*models.Interview, error) {
	sql, args, err := r.sb.Select(interviewColumns...).
		From("interviews").
		Where(squirrel.Eq{"job_id": jobIDs}).
		OrderBy("date", "interview_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list interviews SQL")
		return nil, fmt.Errorf("failed to build list interviews query: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list interviews query")
		return nil, fmt.Errorf("error fetching interviews: %w", err)
	}
	defer rows.Close()

	interviews := make([]*models.Interview, 0)
	for rows.Next() {
		interview, err := scanInterview(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning interview row")
			return nil, fmt.Errorf("error scanning interview: %w", err)
		}
		interviews = append(interviews, interview)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interviews: %w", err)
	}
	return interviews, nil
}

// ListWithJobByUSN returns a student's interviews with job title and
// company name
func (r *InterviewRepository) ListWithJobByUSN(ctx context.Context, usn string) ([]*models.InterviewWithJob, error) {
	sql, args, err := r.sb.Select(append(qualify("i", interviewColumns), "j.title", "e.company_name")...).
		From("interviews i").
		Join("jobs j ON j.job_id = i.job_id").
		Join("employers e ON e.employer_id = j.employer_id").
		Where(squirrel.Eq{"i.usn": usn}).
		OrderBy("i.date", "i.interview_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list interviews with job SQL")
		return nil, fmt.Errorf("failed to build list interviews with job query: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("usn", usn).Msg("Error executing list interviews with job query")
		return nil, fmt.Errorf("error fetching interviews: %w", err)
	}
	defer rows.Close()

	result := make([]*models.InterviewWithJob, 0)
	for rows.Next() {
		var item models.InterviewWithJob
		job := &models.InterviewJob{Employers: &models.EmployerSummary{}}
		if err := rows.Scan(append(interviewScanTargets(&item.Interview), &job.Title, &job.Employers.CompanyName)...); err != nil {
			logger.Error().Err(err).Msg("Error scanning interview with job row")
			return nil, fmt.Errorf("error scanning interview: %w", err)
		}
		item.Jobs = job
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interviews: %w", err)
	}
	return result, nil
}
