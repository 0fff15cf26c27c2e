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

var identityColumns = []string{"id", "email", "password_hash", "role", "subject", "created_at"}

// IdentityRepository stores authentication identities
type IdentityRepository struct {
	baseRepository
}

// NewIdentityRepository creates a new IdentityRepository
func NewIdentityRepository(database *db.PostgresDB) *IdentityRepository {
	return &IdentityRepository{baseRepository: newBaseRepository(database)}
}

func scanIdentity(row pgx.Row) (*models.Identity, error) {
	var i models.Identity
	if err := row.Scan(&i.ID, &i.Email, &i.PasswordHash, &i.Role, &i.Subject, &i.CreatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}

// Create inserts an identity
func (r *IdentityRepository) Create(ctx context.Context, identity *models.Identity) error {
	sql, args, err := r.sb.Insert("identities").
		Columns(identityColumns...).
		Values(identity.ID, identity.Email, identity.PasswordHash, identity.Role, identity.Subject, identity.CreatedAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create identity SQL")
		return fmt.Errorf("failed to build create identity query: %w", err)
	}

	if _, err := r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.IdentitiesEmailUnique) {
			return ErrIdentityExists
		}
		logger.Error().Err(err).Str("email", identity.Email).Msg("Error executing create identity query")
		return fmt.Errorf("error creating identity: %w", err)
	}
	return nil
}

func (r *IdentityRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Identity, error) {
	sql, args, err := r.sb.Select(identityColumns...).From("identities").Where(where).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get identity SQL")
		return nil, fmt.Errorf("failed to build get identity query: %w", err)
	}

	identity, err := scanIdentity(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		logger.Error().Err(err).Msg("Error scanning identity row")
		return nil, fmt.Errorf("error retrieving identity: %w", err)
	}
	return identity, nil
}

// GetByEmail retrieves an identity by email
func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*models.Identity, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// GetByID retrieves an identity by id
func (r *IdentityRepository) GetByID(ctx context.Context, id string) (*models.Identity, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}
