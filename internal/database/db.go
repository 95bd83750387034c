package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL URLs
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL URLs
)

// New creates a new database connection (supports both MySQL and PostgreSQL)
func New(databaseURL string) (*sqlx.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	// Auto-detect driver from URL
	const (
		driverMySQL    = "mysql"
		driverPostgres = "postgres"
	)
	driver := driverMySQL
	if len(databaseURL) > 8 && databaseURL[:8] == driverPostgres {
		driver = driverPostgres
	}

	db, err := sqlx.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool settings
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// CreateTables bootstraps the application schema. Errors from statements
// racing other instances ("already exists") are ignored.
func CreateTables(db *sqlx.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) PRIMARY KEY,
			email VARCHAR(320) NOT NULL UNIQUE,
			about TEXT NOT NULL DEFAULT '',
			ai_provider VARCHAR(32) NOT NULL DEFAULT '',
			ai_model VARCHAR(128) NOT NULL DEFAULT '',
			ai_api_key TEXT NOT NULL DEFAULT '',
			gmail_token TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS rules (
			id VARCHAR(64) PRIMARY KEY,
			user_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			from_pattern TEXT,
			to_pattern TEXT,
			subject_pattern TEXT,
			body_pattern TEXT,
			automate BOOLEAN NOT NULL DEFAULT FALSE,
			priority INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rules_user_priority ON rules(user_id, priority)`,
		`CREATE TABLE IF NOT EXISTS rule_actions (
			id VARCHAR(64) PRIMARY KEY,
			rule_id VARCHAR(64) NOT NULL,
			type VARCHAR(32) NOT NULL,
			label TEXT,
			subject TEXT,
			content TEXT,
			to_addr TEXT,
			cc_addr TEXT,
			bcc_addr TEXT,
			position INT NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rule_actions_rule ON rule_actions(rule_id, position)`,
		`CREATE TABLE IF NOT EXISTS planned_actions (
			id VARCHAR(64) PRIMARY KEY,
			user_id VARCHAR(64) NOT NULL,
			rule_id VARCHAR(64) NOT NULL,
			email_json TEXT NOT NULL,
			items_json TEXT NOT NULL,
			status VARCHAR(16) NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_planned_user_status ON planned_actions(user_id, status)`,
		`CREATE TABLE IF NOT EXISTS ai_usage (
			id SERIAL PRIMARY KEY,
			email VARCHAR(320) NOT NULL,
			provider VARCHAR(32) NOT NULL,
			model VARCHAR(128) NOT NULL,
			label VARCHAR(64) NOT NULL,
			prompt_tokens INT NOT NULL DEFAULT 0,
			completion_tokens INT NOT NULL DEFAULT 0,
			total_tokens INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ai_usage_email ON ai_usage(email, created_at)`,
		`CREATE TABLE IF NOT EXISTS ai_usage_daily (
			id SERIAL PRIMARY KEY,
			date DATE NOT NULL,
			email VARCHAR(320) NOT NULL,
			provider VARCHAR(32) NOT NULL,
			total_tokens INT NOT NULL DEFAULT 0,
			call_count INT NOT NULL DEFAULT 0,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(date, email, provider)
		)`,
		`CREATE TABLE IF NOT EXISTS user_notifications (
			id SERIAL PRIMARY KEY,
			user_email VARCHAR(320) NOT NULL,
			error_type VARCHAR(64) NOT NULL,
			message TEXT NOT NULL,
			seen BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user ON user_notifications(user_email, seen)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			// Ignore "already exists" errors from concurrent bootstraps
			continue
		}
	}

	return nil
}
