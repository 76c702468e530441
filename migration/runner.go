package migration

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Simple migration runner - you might want to use a proper migration tool later
func RunMigrations(dbpool *pgxpool.Pool) error {
	migration := `
	CREATE TABLE IF NOT EXISTS horoscopes (
		day DATE NOT NULL,
		sign TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (day, sign)
	);

	CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY,
		username VARCHAR(255),
		first_name VARCHAR(255),
		last_name VARCHAR(255),
		is_bot BOOLEAN DEFAULT FALSE,
		language_code VARCHAR(10),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		last_seen TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_horoscopes_day ON horoscopes(day);
	CREATE INDEX IF NOT EXISTS idx_users_last_seen ON users(last_seen);
	`
	_, err := dbpool.Exec(context.Background(), migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}
