package db

import "database/sql"

func init() {
	RegisterMigration(Migration{
		Version:     1,
		Description: "Initial schema - settings, matters, parties, hearings, analyses",
		Up:          migration001Initial,
	})
}

func migration001Initial(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS matters (
			id TEXT PRIMARY KEY,
			cnr TEXT,
			title TEXT NOT NULL,
			client_name TEXT NOT NULL,
			matter_type TEXT NOT NULL,
			court TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			search_dirty INTEGER NOT NULL DEFAULT 1,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matters_status ON matters(status)`,
		`CREATE INDEX IF NOT EXISTS idx_matters_search_dirty ON matters(search_dirty)`,

		`CREATE TABLE IF NOT EXISTS parties (
			id TEXT PRIMARY KEY,
			matter_id TEXT NOT NULL REFERENCES matters(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			role TEXT NOT NULL,
			contact TEXT,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_parties_matter ON parties(matter_id)`,

		`CREATE TABLE IF NOT EXISTS hearings (
			id TEXT PRIMARY KEY,
			matter_id TEXT NOT NULL REFERENCES matters(id) ON DELETE CASCADE,
			scheduled_at INTEGER NOT NULL,
			purpose TEXT NOT NULL,
			courtroom TEXT,
			judge TEXT,
			outcome TEXT,
			reminded INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_hearings_matter ON hearings(matter_id)`,
		`CREATE INDEX IF NOT EXISTS idx_hearings_scheduled ON hearings(scheduled_at)`,

		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			matter_id TEXT REFERENCES matters(id) ON DELETE SET NULL,
			title TEXT NOT NULL,
			document_text TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'todo',
			summary TEXT,
			risks TEXT,
			tags TEXT,
			error TEXT,
			attempts INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_status ON analyses(status)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_matter ON analyses(matter_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
