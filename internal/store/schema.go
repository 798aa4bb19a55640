package store

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// schema statements are executed one at a time: the pgx driver's extended
// protocol rejects multi-statement strings.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		id            SERIAL PRIMARY KEY,
		username      TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS programs (
		id          SERIAL PRIMARY KEY,
		name        TEXT UNIQUE NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS subjects (
		id         SERIAL PRIMARY KEY,
		paper_id   TEXT UNIQUE NOT NULL,
		name       TEXT NOT NULL,
		program_id INTEGER NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
		year       INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS students (
		id         SERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		reg_number TEXT UNIQUE NOT NULL,
		program_id INTEGER NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
		year       INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS faculty (
		id            SERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS faculty_subjects (
		faculty_id INTEGER NOT NULL REFERENCES faculty(id) ON DELETE CASCADE,
		subject_id INTEGER NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		PRIMARY KEY (faculty_id, subject_id)
	)`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id         SERIAL PRIMARY KEY,
		student_id INTEGER NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		subject_id INTEGER NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		paper_id   TEXT NOT NULL,
		date       DATE NOT NULL,
		time       TEXT NOT NULL DEFAULT '',
		class_type TEXT NOT NULL,
		status     TEXT NOT NULL,
		remarks    TEXT NOT NULL DEFAULT '',
		marked_by  INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_student_subject ON attendance(student_id, subject_id)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance(date)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_session ON attendance(session_id)`,
	`CREATE TABLE IF NOT EXISTS faculty_activity_log (
		id         SERIAL PRIMARY KEY,
		faculty_id INTEGER NOT NULL REFERENCES faculty(id) ON DELETE CASCADE,
		action     TEXT NOT NULL,
		details    TEXT NOT NULL DEFAULT '',
		timestamp  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the schema when missing. Statements are idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// SeedAdmin inserts the bootstrap admin account when the admins table is empty.
func SeedAdmin(ctx context.Context, db *sql.DB, username, password string) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
	`, username, string(hash))
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
