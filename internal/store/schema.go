package store

import (
	"database/sql"
	"fmt"
)

// schema lists the tables owned by the store. Statements are idempotent so
// migrate can run on every Open.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS vark_profiles (
		student_id TEXT PRIMARY KEY,
		visual REAL NOT NULL,
		auditory REAL NOT NULL,
		reading REAL NOT NULL,
		kinesthetic REAL NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS mastery_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id TEXT NOT NULL,
		concept_id TEXT NOT NULL,
		concept_name TEXT NOT NULL DEFAULT '',
		score INTEGER NOT NULL,
		assessment_score REAL NOT NULL,
		practice_accuracy REAL NOT NULL,
		ai_help_effectiveness REAL NOT NULL,
		engagement_consistency REAL NOT NULL,
		recorded_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS mastery_records_student_concept
		ON mastery_records (student_id, concept_id, recorded_at)`,
	`CREATE TABLE IF NOT EXISTS engagement_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		level TEXT NOT NULL,
		login_frequency REAL NOT NULL,
		content_interaction REAL NOT NULL,
		ai_usage REAL NOT NULL,
		project_participation REAL NOT NULL,
		consistency_score REAL NOT NULL,
		recorded_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS engagement_records_student
		ON engagement_records (student_id, recorded_at)`,
	`CREATE TABLE IF NOT EXISTS practice_sessions (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		concept_id TEXT NOT NULL,
		status TEXT NOT NULL,
		score INTEGER,
		started_at INTEGER NOT NULL,
		completed_at INTEGER,
		body TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS practice_sessions_student
		ON practice_sessions (student_id, started_at)`,
	`CREATE TABLE IF NOT EXISTS profile_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		student_id TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		learning_mode TEXT NOT NULL DEFAULT '',
		mastery_gain REAL NOT NULL DEFAULT 0,
		engagement_gain REAL NOT NULL DEFAULT 0,
		before TEXT NOT NULL,
		after TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS profile_events_student
		ON profile_events (student_id, sequence)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL DEFAULT '',
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
}

func migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
