package repository

import (
	"context"
	"database/sql"

	"github.com/suar-net/iberbanco-go/internal/model"
)

// requestRepository is the implementation of IRequestRepository.
type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) IRequestRepository {
	return &requestRepository{db: db}
}

// Record inserts one request log. It satisfies transport.Recorder.
func (r *requestRepository) Record(ctx context.Context, entry *model.RequestLog) error {
	query := `
		INSERT INTO request_history (request_id, executed_at, request_method, request_url, request_headers, request_body, response_status_code, response_body, response_size, duration_ms, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	var headers any
	if len(entry.RequestHeaders) > 0 {
		headers = string(entry.RequestHeaders)
	}

	return r.db.QueryRowContext(ctx, query,
		entry.RequestID,
		entry.ExecutedAt,
		entry.RequestMethod,
		entry.RequestURL,
		headers,
		entry.RequestBody,
		entry.ResponseStatusCode,
		entry.ResponseBody,
		entry.ResponseSize,
		entry.DurationMs,
		entry.Error,
	).Scan(&entry.ID)
}

// Recent returns the latest limit entries, newest first.
func (r *requestRepository) Recent(ctx context.Context, limit int) ([]*model.RequestLog, error) {
	query := `
		SELECT id, request_id, executed_at, request_method, request_url, request_headers, request_body, response_status_code, response_body, response_size, duration_ms, error
		FROM request_history
		ORDER BY executed_at DESC, id DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*model.RequestLog
	for rows.Next() {
		var (
			entry   model.RequestLog
			headers []byte
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.RequestID,
			&entry.ExecutedAt,
			&entry.RequestMethod,
			&entry.RequestURL,
			&headers,
			&entry.RequestBody,
			&entry.ResponseStatusCode,
			&entry.ResponseBody,
			&entry.ResponseSize,
			&entry.DurationMs,
			&entry.Error,
		); err != nil {
			return nil, err
		}
		entry.RequestHeaders = headers
		logs = append(logs, &entry)
	}

	return logs, rows.Err()
}
