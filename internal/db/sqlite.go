package db

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite" // driver: sqlite
)

// OpenSQLite abre la base local de respuestas y asegura el schema.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = "file:responses.db?_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Un solo writer evita SQLITE_BUSY con escrituras concurrentes.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schemaSQLite); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS quiz_responses (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  answers_json TEXT NOT NULL,
  primary_type TEXT NOT NULL,
  secondary_type TEXT NOT NULL,
  scores_json TEXT NOT NULL,
  submitted_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS quiz_responses_user_idx ON quiz_responses (user_id, submitted_at);
`
