package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/suar-net/iberbanco-go/internal/auth"
)

// SetupRouter builds the mock platform. Login is open; every other /api/v2
// route needs a signed header set. db may be nil.
func SetupRouter(b *Bank, logger *zap.Logger, db *sql.DB) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept", "Content-Type", "X-Request-ID",
			auth.HeaderToken, auth.HeaderTimestamp, auth.HeaderHash, auth.HeaderPin,
		},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	authHandler := NewAuthHandler(b, logger)
	authMiddleware := NewAuthMiddleware(b, logger)
	bankHandler := NewBankHandler(b, logger)
	healthHandler := NewHealthHandler(db, logger)

	r.Get("/health", healthHandler.Check)

	r.Route("/api/v2", func(r chi.Router) {
		r.Post("/auth", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/exchange/rate", bankHandler.ExchangeRate)
			r.Get("/accounts", bankHandler.ListAccounts)
			r.Get("/accounts/total-balance", bankHandler.TotalBalance)
			r.Post("/accounts/create", bankHandler.CreateAccount)
			r.Get("/users", bankHandler.ListUsers)
			r.Post("/transactions/{type}", bankHandler.CreateTransaction)
			r.Post("/export/{resource}", bankHandler.StartExport)
		})
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("request",
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
