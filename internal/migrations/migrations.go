package migrations

import (
	"database/sql"
	"fmt"
)

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "Add note column index and project/video indices",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_scores_project ON scores(project);
			CREATE INDEX IF NOT EXISTS idx_scores_video ON scores(video);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_scores_project;
			DROP INDEX IF EXISTS idx_scores_video;
		`,
	},
	{
		Version: 2,
		Name:    "Add composite index for project export ordering",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_scores_project_onset ON scores(project, onset_frame);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_scores_project_onset;
		`,
	},
}

// InitSchema creates all tables required by the score log.
// This must be called before running migrations to ensure all tables exist.
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project TEXT NOT NULL,
		video TEXT NOT NULL,
		kind TEXT NOT NULL,
		onset_frame INTEGER NOT NULL,
		offset_frame INTEGER NOT NULL,
		note TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_scores_created_at ON scores(created_at DESC);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// Run executes all pending migrations on the database
func Run(db *sql.DB) error {
	// Initialize schema first to ensure all tables exist
	if err := InitSchema(db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Create migrations tracking table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	// Apply pending migrations
	for _, migration := range AllMigrations {
		if migration.Version <= currentVersion {
			continue
		}

		_, err := db.Exec(migration.Up)
		if err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		_, err = db.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version,
			migration.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// GetCurrentVersion returns the current database schema version
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`
		SELECT COALESCE(MAX(version), 0)
		FROM schema_migrations
	`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}
