package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/placementportal/internal/db"
	"github.com/yigit/placementportal/internal/pkg/logger"
)

// DirectoryRepository answers questions spanning students and employers,
// which share one email space.
type DirectoryRepository struct {
	baseRepository
}

// NewDirectoryRepository creates a new DirectoryRepository
func NewDirectoryRepository(database *db.PostgresDB) *DirectoryRepository {
	return &DirectoryRepository{baseRepository: newBaseRepository(database)}
}

// LockEmail takes a transaction-scoped advisory lock on the email so that
// concurrent registrations for it run one at a time. Must be called inside
// a transaction.
func (r *DirectoryRepository) LockEmail(ctx context.Context, email string) error {
	sql, args, err := r.sb.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(hashtext(?))", strings.ToLower(email))).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building email lock SQL")
		return fmt.Errorf("failed to build email lock query: %w", err)
	}

	if _, err := r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error acquiring email lock")
		return fmt.Errorf("error acquiring email lock: %w", err)
	}
	return nil
}

// EmailInUse reports whether a student or an employer already uses email
func (r *DirectoryRepository) EmailInUse(ctx context.Context, email string) (bool, error) {
	var exists bool
	sql, args, err := r.sb.Select().
		Column(squirrel.Expr(
			"EXISTS (SELECT 1 FROM students WHERE email = ?) OR EXISTS (SELECT 1 FROM employers WHERE contact_email = ?)",
			email, email)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building email in use SQL")
		return false, fmt.Errorf("failed to build email in use query: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error checking email existence")
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}
