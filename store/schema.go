package store

import (
	"database/sql"
	"fmt"
)

const schema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	company TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	project_type TEXT NOT NULL DEFAULT 'pitch_vendas',
	target_audience TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'draft' CHECK(status IN ('draft', 'in_progress', 'completed')),
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_projects_created_at ON projects(created_at DESC);

CREATE TABLE IF NOT EXISTS client_profiles (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL UNIQUE,
	company_name TEXT NOT NULL DEFAULT '',
	industry TEXT NOT NULL DEFAULT '',
	size TEXT NOT NULL DEFAULT '',
	disc_profile TEXT NOT NULL DEFAULT '',
	pain_points TEXT NOT NULL DEFAULT '',
	goals TEXT NOT NULL DEFAULT '',
	decision_makers TEXT NOT NULL DEFAULT '[]',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS market_intelligence (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL UNIQUE,
	industry_trends TEXT NOT NULL DEFAULT '[]',
	competitor_analysis TEXT NOT NULL DEFAULT '{}',
	news_insights TEXT NOT NULL DEFAULT '[]',
	market_opportunities TEXT NOT NULL DEFAULT '[]',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS objections (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	objection_text TEXT NOT NULL,
	response_text TEXT NOT NULL,
	category TEXT NOT NULL,
	confidence_score REAL NOT NULL,
	position INTEGER NOT NULL,
	created_at TEXT NOT NULL,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_objections_project_id ON objections(project_id);

CREATE TABLE IF NOT EXISTS presentations (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	style_config TEXT NOT NULL DEFAULT '{}',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_presentations_project_id ON presentations(project_id);
`

func initSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}
