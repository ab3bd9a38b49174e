package model

import (
	"encoding/json"
	"time"
)

// RequestLog is one API call as kept in the request history. Signing headers
// are redacted before a log is built.
type RequestLog struct {
	ID                 int             `json:"id"`
	RequestID          string          `json:"request_id"`
	ExecutedAt         time.Time       `json:"executed_at"`
	RequestMethod      string          `json:"request_method"`
	RequestURL         string          `json:"request_url"`
	RequestHeaders     json.RawMessage `json:"request_headers"`
	RequestBody        *string         `json:"request_body"`
	ResponseStatusCode *int            `json:"response_status_code"`
	ResponseBody       *string         `json:"response_body"`
	ResponseSize       *int64          `json:"response_size"`
	DurationMs         *int            `json:"duration_ms"`
	Error              *string         `json:"error,omitempty"`
}
