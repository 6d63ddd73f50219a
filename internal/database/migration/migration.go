package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"solidgo/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  username      TEXT        NOT NULL UNIQUE,
  email         TEXT        NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_users_email",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_users_email ON users (email);`,
	},
	{
		Name: "create_index_users_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_users_created_at ON users (created_at);`,
	},
}

// EnsureMigrated checks if the 'users' table exists and runs migrations if it doesn't.
// Each step is idempotent, so a partially applied schema is completed on the next run.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logging.Logger) error {
	start := time.Now()
	log = log.With(map[string]any{"component": "database"})

	var exists bool
	query := "SELECT to_regclass('public.users') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed", map[string]any{
			"error":       fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip", map[string]any{
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	log.Info("db_migration_start", nil)

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed", map[string]any{
				"migration_step":   step.Name,
				"error":            err.Error(),
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step", map[string]any{
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	log.Info("db_migration_success", map[string]any{
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}
