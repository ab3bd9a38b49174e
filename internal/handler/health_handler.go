package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type HealthHandler struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHealthHandler reports liveness. db is optional; when set, the request
// history database must answer a ping.
func NewHealthHandler(db *sql.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Warn("health check failed", zap.Error(err))
			respondWithError(w, http.StatusServiceUnavailable, "Database connection failed")
			return
		}
	}

	respondWithJson(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Service is healthy",
	})
}
