package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory database with hand-written tables so
// the schema stays SQLite compatible
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	statements := []string{
		`CREATE TABLE clients (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			email TEXT,
			preferred_mode TEXT NOT NULL DEFAULT 'cash'
		)`,
		`CREATE TABLE projets (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			client_id TEXT NOT NULL,
			name TEXT NOT NULL,
			funding_type TEXT NOT NULL DEFAULT 'standard',
			total_amount REAL NOT NULL DEFAULT 0,
			paid_amount REAL NOT NULL DEFAULT 0,
			payment_status TEXT NOT NULL DEFAULT 'prepaye',
			status TEXT NOT NULL DEFAULT 'en_attente',
			urgent INTEGER NOT NULL DEFAULT 0,
			internal_priority INTEGER NOT NULL DEFAULT 0,
			deadline DATETIME NOT NULL,
			location TEXT
		)`,
		`CREATE TABLE activites (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			project_id TEXT NOT NULL,
			name TEXT NOT NULL,
			budget REAL NOT NULL DEFAULT 0,
			payment_status TEXT NOT NULL DEFAULT 'prepaye',
			deadline DATETIME NOT NULL
		)`,
		`CREATE TABLE phases (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			activity_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			expert_id TEXT,
			client_amount REAL NOT NULL DEFAULT 0,
			expert_fee REAL NOT NULL DEFAULT 0,
			progress TEXT NOT NULL DEFAULT 'en_attente',
			payment_status TEXT NOT NULL DEFAULT 'prepaye',
			deadline DATETIME NOT NULL,
			rework_count INTEGER NOT NULL DEFAULT 0,
			photo_keys TEXT,
			proof_url TEXT
		)`,
		`CREATE TABLE profils (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			name TEXT NOT NULL,
			title TEXT,
			role TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT,
			password_hash TEXT NOT NULL
		)`,
		`CREATE TABLE depenses_projets (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			project_id TEXT NOT NULL,
			amount REAL NOT NULL,
			motive TEXT NOT NULL,
			spent_at DATETIME NOT NULL
		)`,
		`CREATE TABLE investissements (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			name TEXT NOT NULL,
			total_amount REAL NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE photos_a_purger (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			phase_id TEXT NOT NULL,
			file_key TEXT NOT NULL,
			queued_at DATETIME NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create table: %v", err)
		}
	}

	return db
}
