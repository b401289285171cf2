// Package fixture creates the account_management table and seed rows for
// integration tests.
//
// The service itself never migrates: the table is owned by whoever operates
// the database. This package only exists so tests can bring up a throwaway
// database with a known state.
package fixture

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// VersionTable stores the applied fixture version. It is kept apart from any
// schema_version table an operator may already use.
const VersionTable = "account_fixture_version"

//go:embed migrations/*.sql
var migrations embed.FS

// Apply runs the embedded fixture migrations to the latest version using a
// connection borrowed from pool.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger *zerolog.Logger) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring fixture connection: %w", err)
	}
	defer conn.Release()

	m, err := tern.NewMigrator(ctx, conn.Conn(), VersionTable)
	if err != nil {
		return fmt.Errorf("constructing fixture migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving fixture migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading fixture migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current fixture version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("applying fixture migrations: %w", err)
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("fixture up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("applied fixture, from %d to %d", from, len(m.Migrations))
	}
	return nil
}
