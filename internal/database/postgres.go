package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const schema = `
CREATE TABLE IF NOT EXISTS request_history (
	id                   SERIAL PRIMARY KEY,
	request_id           TEXT NOT NULL,
	executed_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	request_method       TEXT NOT NULL,
	request_url          TEXT NOT NULL,
	request_headers      JSONB,
	request_body         TEXT,
	response_status_code INTEGER,
	response_body        TEXT,
	response_size        BIGINT,
	duration_ms          INTEGER,
	error                TEXT
);
CREATE INDEX IF NOT EXISTS request_history_executed_at_idx ON request_history (executed_at DESC);`

// ConnectDB opens a pooled connection to the request history database and
// makes sure its table exists.
func ConnectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to verify database connection: %w", err)
	}

	if _, err = db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create request_history table: %w", err)
	}

	return db, nil
}
