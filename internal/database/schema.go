package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements create every table the stores rely on. Each statement is
// idempotent so EnsureSchema can run on every startup. Subtype tables cascade
// on base-row deletion; the exam and account join tables cascade on their
// owning side.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS modules (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		code VARCHAR(50) UNIQUE NOT NULL,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		text TEXT NOT NULL,
		estimated_time_minutes INTEGER NOT NULL,
		bloom_level VARCHAR(20) NOT NULL,
		task_format VARCHAR(20) NOT NULL,
		module_id INTEGER NOT NULL REFERENCES modules(id)
	)`,
	`CREATE TABLE IF NOT EXISTS open_tasks (
		task_id INTEGER PRIMARY KEY REFERENCES tasks(id) ON DELETE CASCADE,
		sample_solution TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS closed_tasks (
		task_id INTEGER PRIMARY KEY REFERENCES tasks(id) ON DELETE CASCADE,
		closed_task_type VARCHAR(20) NOT NULL,
		correct_answer TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS closed_task_options (
		id SERIAL PRIMARY KEY,
		task_id INTEGER NOT NULL REFERENCES closed_tasks(task_id) ON DELETE CASCADE,
		option_text TEXT NOT NULL,
		option_order INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS answers (
		id SERIAL PRIMARY KEY,
		task_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		submission_time TIMESTAMP NOT NULL,
		is_graded BOOLEAN NOT NULL DEFAULT FALSE,
		score DOUBLE PRECISION,
		feedback TEXT,
		answer_type VARCHAR(10) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS open_answers (
		answer_id INTEGER PRIMARY KEY REFERENCES answers(id) ON DELETE CASCADE,
		text TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS closed_answers (
		answer_id INTEGER PRIMARY KEY REFERENCES answers(id) ON DELETE CASCADE,
		selected_option TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS exams (
		id SERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT,
		exam_date DATE,
		duration_minutes INTEGER,
		module_id INTEGER NOT NULL REFERENCES modules(id)
	)`,
	`CREATE TABLE IF NOT EXISTS exam_tasks (
		exam_id INTEGER NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
		task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		task_order INTEGER NOT NULL,
		PRIMARY KEY (exam_id, task_id)
	)`,
	`CREATE TABLE IF NOT EXISTS nutzer (
		id SERIAL PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		role VARCHAR(50) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS nutzer_konto (
		id SERIAL PRIMARY KEY,
		username VARCHAR(100) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		last_login TIMESTAMP,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		nutzer_id INTEGER NOT NULL REFERENCES nutzer(id)
	)`,
	`CREATE TABLE IF NOT EXISTS nutzer_aufgaben (
		konto_id INTEGER NOT NULL REFERENCES nutzer_konto(id) ON DELETE CASCADE,
		task_id INTEGER NOT NULL,
		PRIMARY KEY (konto_id, task_id)
	)`,
	`CREATE TABLE IF NOT EXISTS nutzer_antworten (
		konto_id INTEGER NOT NULL REFERENCES nutzer_konto(id) ON DELETE CASCADE,
		task_id INTEGER NOT NULL,
		answer_text TEXT NOT NULL,
		PRIMARY KEY (konto_id, task_id)
	)`,
}

// EnsureSchema creates all tables if they do not exist yet. Production
// deployments run cmd/migrate instead; this routine backs tests and
// first-run bootstrap.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
