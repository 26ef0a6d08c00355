package db

import (
	"database/sql"
	"fmt"
)

// Migrate creates the schema when it does not exist yet. Listing payloads are
// stored as JSON columns; only the keys needed for lookups get real columns.
func Migrate(database *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id CHAR(26) PRIMARY KEY COMMENT 'ULID',
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS garage_items (
			id CHAR(26) PRIMARY KEY COMMENT 'ULID',
			user_id CHAR(26) NOT NULL,
			listing_id CHAR(26) NOT NULL,
			listing_json JSON NOT NULL,
			saved_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_user_listing (user_id, listing_id),
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS history_entries (
			id CHAR(26) PRIMARY KEY COMMENT 'ULID',
			user_id CHAR(26) NOT NULL,
			listing_json JSON NOT NULL,
			score_json JSON,
			risk_json JSON,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
	}

	for _, q := range queries {
		if _, err := database.Exec(q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
