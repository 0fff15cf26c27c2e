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

var placementColumns = []string{"placement_id", "usn", "job_id", "package_offered", "joining_date"}

// PlacementRepository handles placement database operations
type PlacementRepository struct {
	baseRepository
}

// NewPlacementRepository creates a new PlacementRepository
func NewPlacementRepository(database *db.PostgresDB) *PlacementRepository {
	return &PlacementRepository{baseRepository: newBaseRepository(database)}
}

func placementScanTargets(p *models.Placement) []any {
	return []any{&p.PlacementID, &p.USN, &p.JobID, &p.PackageOffered, &p.JoiningDate}
}

func scanPlacement(row pgx.Row) (*models.Placement, error) {
	var p models.Placement
	if err := row.Scan(placementScanTargets(&p)...); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create records a placement
func (r *PlacementRepository) Create(ctx context.Context, placement *models.Placement) (*models.Placement, error) {
	sql, args, err := r.sb.Insert("placements").
		Columns("usn", "job_id", "package_offered", "joining_date").
		Values(placement.USN, placement.JobID, placement.PackageOffered, placement.JoiningDate).
		Suffix("RETURNING " + joinColumns(placementColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create placement SQL")
		return nil, fmt.Errorf("failed to build create placement query: %w", err)
	}

	created, err := scanPlacement(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, ErrStudentNotFound
		}
		logger.Error().Err(err).Str("usn", placement.USN).Int64("jobID", placement.JobID).Msg("Error executing create placement query")
		return nil, fmt.Errorf("error inserting placement: %w", err)
	}

	logger.Info().Int64("placementID", created.PlacementID).Msg("Placement recorded")
	return created, nil
}

// GetByID retrieves a placement by id
func (r *PlacementRepository) GetByID(ctx context.Context, placementID int64) (*models.Placement, error) {
	sql, args, err := r.sb.Select(placementColumns...).From("placements").Where(squirrel.Eq{"placement_id": placementID}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get placement SQL")
		return nil, fmt.Errorf("failed to build get placement query: %w", err)
	}

	placement, err := scanPlacement(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlacementNotFound
		}
		logger.Error().Err(err).Int64("placementID", placementID).Msg("Error scanning placement row")
		return nil, fmt.Errorf("error retrieving placement: %w", err)
	}
	return placement, nil
}

// Update changes the package and/or joining date; nil values are kept
func (r *PlacementRepository) Update(ctx context.Context, placementID int64, packageOffered *float64, joiningDate *time.Time) (*models.Placement, error) {
	set := map[string]interface{}{}
	if packageOffered != nil {
		set["package_offered"] = *packageOffered
	}
	if joiningDate != nil {
		set["joining_date"] = *joiningDate
	}
	if len(set) == 0 {
		return r.GetByID(ctx, placementID)
	}

	sql, args, err := r.sb.Update("placements").
		SetMap(set).
		Where(squirrel.Eq{"placement_id": placementID}).
		Suffix("RETURNING " + joinColumns(placementColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update placement SQL")
		return nil, fmt.Errorf("failed to build update placement query: %w", err)
	}

	placement, err := scanPlacement(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlacementNotFound
		}
		logger.Error().Err(err).Int64("placementID", placementID).Msg("Error executing update placement query")
		return nil, fmt.Errorf("error updating placement: %w", err)
	}
	return placement, nil
}

// ListByJobIDs returns the placements for any of jobIDs
func (r *PlacementRepository) ListByJobIDs(ctx context.Context, jobIDs []int64) ([]*models.Placement, error) {
	sql, args, err := r.sb.Select(placementColumns...).
		From("placements").
		Where(squirrel.Eq{"job_id": jobIDs}).
		OrderBy("placement_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list placements SQL")
		return nil, fmt.Errorf("failed to build list placements query: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list placements query")
		return nil, fmt.Errorf("error fetching placements: %w", err)
	}
	defer rows.Close()

	placements := make([]*models.Placement, 0)
	for rows.Next() {
		placement, err := scanPlacement(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning placement row")
			return nil, fmt.Errorf("error scanning placement: %w", err)
		}
		placements = append(placements, placement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating placements: %w", err)
	}
	return placements, nil
}

// FirstWithEmployerByUSN returns the student's earliest placement with the
// hiring employer's full row, or nil when the student has none.
func (r *PlacementRepository) FirstWithEmployerByUSN(ctx context.Context, usn string) (*models.PlacementWithEmployer, error) {
	sql, args, err := r.sb.Select(append(qualify("p", placementColumns), qualify("e", employerColumns)...)...).
		From("placements p").
		Join("jobs j ON j.job_id = p.job_id").
		Join("employers e ON e.employer_id = j.employer_id").
		Where(squirrel.Eq{"p.usn": usn}).
		OrderBy("p.placement_id").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building placement details SQL")
		return nil, fmt.Errorf("failed to build placement details query: %w", err)
	}

	var item models.PlacementWithEmployer
	var e models.Employer
	err = r.conn(ctx).QueryRow(ctx, sql, args...).Scan(append(placementScanTargets(&item.Placement),
		&e.EmployerID, &e.CompanyName, &e.Website, &e.IndustryType, &e.ContactEmail, &e.Location)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("usn", usn).Msg("Error scanning placement details row")
		return nil, fmt.Errorf("error retrieving placement details: %w", err)
	}

	item.Employers = &e
	return &item, nil
}
