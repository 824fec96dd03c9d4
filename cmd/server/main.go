package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/trenddash/image-pipeline/internal/config"
	"github.com/trenddash/image-pipeline/internal/database"
	"github.com/trenddash/image-pipeline/internal/pipeline"
	"github.com/trenddash/image-pipeline/internal/router"
	"github.com/trenddash/image-pipeline/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	bucket := storage.NewFileBucket(cfg.StoragePath, cfg.BaseURL)
	fetcher := storage.NewFetcher(cfg.FetchTimeout, cfg.MaxSourceBytes)
	svc := pipeline.New(db, bucket, fetcher, logger)

	srv := router.New(db, bucket, svc, cfg)

	slog.Info("starting server", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
