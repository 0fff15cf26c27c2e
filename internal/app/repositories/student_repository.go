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

var studentColumns = []string{"usn", "first_name", "last_name", "email", "phone", "branch", "year", "cgpa", "resume"}

// StudentRepository handles student database operations
type StudentRepository struct {
	baseRepository
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database *db.PostgresDB) *StudentRepository {
	return &StudentRepository{baseRepository: newBaseRepository(database)}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(&s.USN, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.Branch, &s.Year, &s.CGPA, &s.Resume)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a student row
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns(studentColumns...).
		Values(student.USN, student.FirstName, student.LastName, student.Email, student.Phone,
			student.Branch, student.Year, student.CGPA, student.Resume).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if _, err = r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, dberrors.StudentsPK):
			logger.Warn().Str("usn", student.USN).Msg("Attempted to create student with duplicate USN")
			return ErrUSNExists
		case dberrors.IsDuplicateConstraintError(err, dberrors.StudentsEmailUnique):
			logger.Warn().Str("email", student.Email).Msg("Attempted to create student with duplicate email")
			return ErrEmailInUse
		}
		logger.Error().Err(err).Str("usn", student.USN).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Str("usn", student.USN).Msg("Student created successfully")
	return nil
}

func (r *StudentRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).From("students").Where(where).Limit(1).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		logger.Error().Err(err).Interface("where", where).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// GetByUSN retrieves a student by USN
func (r *StudentRepository) GetByUSN(ctx context.Context, usn string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"usn": usn})
}

// GetByEmail retrieves a student by email
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// Update applies a sparse update and returns the stored row
func (r *StudentRepository) Update(ctx context.Context, usn string, set helpers.SparseSet) (*models.Student, error) {
	if set.Empty() {
		return r.GetByUSN(ctx, usn)
	}

	sql, args, err := r.sb.Update("students").
		SetMap(set).
		Where(squirrel.Eq{"usn": usn}).
		Suffix("RETURNING " + joinColumns(studentColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return nil, fmt.Errorf("failed to build update student query: %w", err)
	}

	student, err := scanStudent(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		logger.Error().Err(err).Str("usn", usn).Msg("Error executing update student query")
		return nil, fmt.Errorf("error updating student: %w", err)
	}
	return student, nil
}

// SetResume stores the resume path; nil clears it
func (r *StudentRepository) SetResume(ctx context.Context, usn string, resume *string) (*models.Student, error) {
	sql, args, err := r.sb.Update("students").
		Set("resume", resume).
		Where(squirrel.Eq{"usn": usn}).
		Suffix("RETURNING " + joinColumns(studentColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set resume SQL")
		return nil, fmt.Errorf("failed to build set resume query: %w", err)
	}

	student, err := scanStudent(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		logger.Error().Err(err).Str("usn", usn).Msg("Error executing set resume query")
		return nil, fmt.Errorf("error updating resume: %w", err)
	}
	return student, nil
}
