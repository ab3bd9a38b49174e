package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/suar-net/iberbanco-go/internal/database"
	"github.com/suar-net/iberbanco-go/internal/handler"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables from OS")
	}

	addr := getenv("MOCKBANK_ADDR", ":8080")
	bank := handler.NewBank()
	bank.AddAgent(getenv("MOCKBANK_AGENT", "agent01"), getenv("MOCKBANK_PASSWORD", "secret1"))

	var db *sql.DB
	if dsn := os.Getenv("IBERBANCO_HISTORY_DSN"); dsn != "" {
		db, err = database.ConnectDB(dsn)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		logger.Info("successfully connected to database")
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.SetupRouter(bank, logger, db),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("mock bank starting", zap.String("addr", addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("cannot run server", zap.String("addr", addr), zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down the server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server shutdown failed", zap.Error(err))
	}
	logger.Info("server successfully shut down")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
