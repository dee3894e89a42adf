package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

type Database struct {
	db *sql.DB
}

// DB returns the underlying *sql.DB instance
func (d *Database) DB() *sql.DB {
	return d.db
}

func New(path string) (*Database, error) {
	// Create the directory if it doesn't exist (skip for in-memory DBs)
	if !strings.Contains(path, ":memory:") {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %v", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	dbInstance := &Database{db: db}

	if err := dbInstance.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %v", err)
	}

	return dbInstance, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Ping verifies the database is reachable
func (d *Database) Ping() error {
	return d.db.Ping()
}

// Begin starts a new transaction
func (d *Database) Begin() (*sql.Tx, error) {
	return d.db.Begin()
}

// migrate runs the database migrations
func (d *Database) migrate() error {
	var tableExists int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='_migrations'`,
	).Scan(&tableExists)

	if err != nil {
		return fmt.Errorf("failed to check migrations table: %v", err)
	}

	tx, err := d.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if tableExists == 0 {
		if _, err := tx.Exec(`
			CREATE TABLE _migrations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE,
				run_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
		`); err != nil {
			return fmt.Errorf("failed to create migrations table: %v", err)
		}
	}

	for _, migration := range getMigrations() {
		var count int
		err := tx.QueryRow(
			`SELECT COUNT(*) FROM _migrations WHERE name = ?`,
			migration.name,
		).Scan(&count)

		if err != nil {
			return fmt.Errorf("failed to check migration status: %v", err)
		}

		if count == 0 {
			if _, err := tx.Exec(migration.statement); err != nil {
				return fmt.Errorf("failed to run migration %s: %v", migration.name, err)
			}

			if _, err := tx.Exec(
				`INSERT INTO _migrations (name) VALUES (?)`,
				migration.name,
			); err != nil {
				return fmt.Errorf("failed to record migration %s: %v", migration.name, err)
			}
		}
	}

	return tx.Commit()
}

type migration struct {
	name      string
	statement string
}

func getMigrations() []migration {
	return []migration{
		{
			name: "initial_schema",
			statement: `
				-- Users table
				CREATE TABLE IF NOT EXISTS users (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					email TEXT NOT NULL UNIQUE,
					hashed_password TEXT NOT NULL,
					first_name TEXT NOT NULL DEFAULT '',
					last_name TEXT NOT NULL DEFAULT '',
					display_name TEXT NOT NULL DEFAULT '',
					bio TEXT NOT NULL DEFAULT '',
					timezone TEXT NOT NULL DEFAULT 'UTC',
					created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP
				);

				CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

				-- Per-user preferences, one row per user
				CREATE TABLE IF NOT EXISTS user_preferences (
					user_id INTEGER PRIMARY KEY,
					email_notifications BOOLEAN NOT NULL DEFAULT 1,
					push_notifications BOOLEAN NOT NULL DEFAULT 1,
					schedule_reminders BOOLEAN NOT NULL DEFAULT 1,
					daily_summary BOOLEAN NOT NULL DEFAULT 1,
					new_features BOOLEAN NOT NULL DEFAULT 0,
					work_hours_start TEXT NOT NULL DEFAULT '09:00',
					work_hours_end TEXT NOT NULL DEFAULT '17:00',
					break_duration INTEGER NOT NULL DEFAULT 15,
					lunch_duration INTEGER NOT NULL DEFAULT 60,
					prefer_morning_workouts BOOLEAN NOT NULL DEFAULT 0,
					include_travel_time BOOLEAN NOT NULL DEFAULT 1,
					default_schedule_type TEXT NOT NULL DEFAULT 'daily',
					conversation_style TEXT NOT NULL DEFAULT 'friendly',
					detail_level TEXT NOT NULL DEFAULT 'detailed',
					include_explanations BOOLEAN NOT NULL DEFAULT 1,
					suggest_optimizations BOOLEAN NOT NULL DEFAULT 1,
					learning_mode BOOLEAN NOT NULL DEFAULT 1,
					custom_settings TEXT NOT NULL DEFAULT '{}',
					updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
				);

				-- Chat history, one row per prompt/response turn
				CREATE TABLE IF NOT EXISTS chats (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER NOT NULL,
					prompt TEXT NOT NULL,
					response TEXT NOT NULL,
					created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
				);

				CREATE INDEX IF NOT EXISTS idx_chats_user_created ON chats(user_id, created_at);
			`,
		},
		// Add more migrations here as needed
	}
}
