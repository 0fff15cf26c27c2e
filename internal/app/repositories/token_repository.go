package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/placementportal/internal/db"
	"github.com/yigit/placementportal/internal/pkg/logger"
)

// TokenRepository keeps the ids of signed-out access tokens until they
// would have expired anyway.
type TokenRepository struct {
	baseRepository
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(database *db.PostgresDB) *TokenRepository {
	return &TokenRepository{baseRepository: newBaseRepository(database)}
}

// Revoke records a token id as signed out. Revoking twice is a no-op.
func (r *TokenRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	sql, args, err := r.sb.Insert("revoked_tokens").
		Columns("token_id", "expires_at", "revoked_at").
		Values(tokenID, expiresAt, time.Now()).
		Suffix("ON CONFLICT (token_id) DO NOTHING").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building revoke token SQL")
		return fmt.Errorf("failed to build revoke token query: %w", err)
	}

	if _, err = r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("tokenID", tokenID).Msg("Error executing revoke token query")
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id was signed out
func (r *TokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var revoked bool
	sql, args, err := r.sb.Select("1").
		From("revoked_tokens").
		Where(squirrel.Eq{"token_id": tokenID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building token revoked SQL")
		return false, fmt.Errorf("failed to build token revoked query: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&revoked); err != nil {
		logger.Error().Err(err).Str("tokenID", tokenID).Msg("Error checking token revocation")
		return false, fmt.Errorf("error checking token revocation: %w", err)
	}
	return revoked, nil
}

// CleanupExpiredTokens removes revocations whose tokens have expired
func (r *TokenRepository) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete("revoked_tokens").
		Where(squirrel.Lt{"expires_at": time.Now()}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building cleanup tokens SQL")
		return 0, fmt.Errorf("failed to build cleanup tokens query: %w", err)
	}

	cmdTag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing cleanup tokens query")
		return 0, fmt.Errorf("error cleaning up tokens: %w", err)
	}

	deletedCount := cmdTag.RowsAffected()
	logger.Info().Int64("deletedCount", deletedCount).Msg("Cleaned up expired revocations")
	return deletedCount, nil
}
