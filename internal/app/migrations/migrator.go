package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const trackingTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version VARCHAR(255) PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// migration is one SQL file; version is the filename prefix before the
// first underscore
type migration struct {
	version string
	name    string
	path    string
}

// Migrator applies plain SQL files in version order, once each
type Migrator struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(pool *pgxpool.Pool, logger zerolog.Logger) *Migrator {
	return &Migrator{pool: pool, logger: logger}
}

func discover(dir string) ([]migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	seen := make(map[string]string)
	var found []migration
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".sql" {
			continue
		}
		version, _, _ := strings.Cut(entry.Name(), "_")
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("migrations %s and %s share version %s", other, entry.Name(), version)
		}
		seen[version] = entry.Name()
		found = append(found, migration{version: version, name: entry.Name(), path: filepath.Join(dir, entry.Name())})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].name < found[j].name })
	return found, nil
}

// MigrateFromDirectory applies every pending .sql file in dir. Each file
// runs in its own transaction holding an exclusive lock on the tracking
// table, so concurrent migrators apply a file at most once.
func (m *Migrator) MigrateFromDirectory(ctx context.Context, dir string) error {
	pending, err := discover(dir)
	if err != nil {
		return err
	}

	if _, err := m.pool.Exec(ctx, trackingTable); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}

	applied := 0
	for _, mig := range pending {
		ran, err := m.apply(ctx, mig)
		if err != nil {
			return err
		}
		if ran {
			applied++
		}
	}

	m.logger.Info().Int("applied", applied).Int("total", len(pending)).Msg("Migrations up to date")
	return nil
}

func (m *Migrator) apply(ctx context.Context, mig migration) (bool, error) {
	body, err := os.ReadFile(mig.path)
	if err != nil {
		return false, fmt.Errorf("failed to read migration %s: %w", mig.name, err)
	}

	ran := false
	err = pgx.BeginFunc(ctx, m.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `LOCK TABLE schema_migrations IN EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("failed to lock migration table: %w", err)
		}

		var done bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, mig.version).Scan(&done); err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if done {
			m.logger.Debug().Str("file", mig.name).Msg("Migration already applied, skipping")
			return nil
		}

		if _, err := tx.Exec(ctx, string(body)); err != nil {
			return fmt.Errorf("migration %s failed: %w", mig.name, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, mig.version); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", mig.name, err)
		}
		ran = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if ran {
		m.logger.Info().Str("file", mig.name).Msg("Migration applied")
	}
	return ran, nil
}
