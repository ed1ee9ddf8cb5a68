package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds postgres-only checks and indexes that gorm tags
// cannot express.
func MigrateConstraints(db *gorm.DB) error {
	statements := []string{
		`DO $$ BEGIN
			ALTER TABLE events ADD CONSTRAINT chk_events_max_participants
			CHECK (max_participants IS NULL OR max_participants >= 1);
		EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,

		`CREATE INDEX IF NOT EXISTS idx_image_comments_image_created
			ON image_comments (image_id, created_at);`,

		`CREATE INDEX IF NOT EXISTS idx_events_name_lower
			ON events (LOWER(name));`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_user_expires
			ON sessions (user_id, expires_at);`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
