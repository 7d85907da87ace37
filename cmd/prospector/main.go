package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/pro-finder-service/internal/adapter/googlemaps"
	httpadapter "github.com/couchcryptid/pro-finder-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/pro-finder-service/internal/adapter/kafka"
	"github.com/couchcryptid/pro-finder-service/internal/adapter/notion"
	"github.com/couchcryptid/pro-finder-service/internal/adapter/sheets"
	"github.com/couchcryptid/pro-finder-service/internal/config"
	"github.com/couchcryptid/pro-finder-service/internal/observability"
	"github.com/couchcryptid/pro-finder-service/internal/prospect"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	places, err := googlemaps.NewClient(cfg.GoogleMapsAPIKey, cfg.GoogleMapsTimeout, logger, metrics)
	if err != nil {
		logger.Error("failed to create google maps client", "error", err)
		os.Exit(1)
	}

	deps := prospect.Dependencies{
		Places:      places,
		PhoneRegion: cfg.PhoneRegion,
	}

	// Optional adapters stay nil interfaces when disabled.
	if cfg.NotionEnabled() {
		deps.Workspace = notion.NewClient(cfg.NotionToken, cfg.NotionDatabaseID, cfg.NotionTimeout, logger, metrics)
		logger.Info("notion export enabled", "database_id", cfg.NotionDatabaseID)
	} else {
		logger.Warn("notion export disabled: NOTION_TOKEN or NOTION_DATABASE_ID missing")
	}

	if cfg.SheetsEnabled {
		if client, err := newSheetsClient(ctx, cfg.GoogleCredentialsFile, logger, metrics); err != nil {
			logger.Warn("google sheets export disabled", "error", err)
		} else {
			deps.Spreadsheets = client
			logger.Info("google sheets export enabled", "credentials", cfg.GoogleCredentialsFile)
		}
	} else {
		logger.Info("google sheets export disabled")
	}

	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled() {
		writer = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaExportTopic, logger)
		deps.Events = writer
		logger.Info("export events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaExportTopic)
	}

	svc := prospect.NewService(deps, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, httpadapter.Options{GeocodeCountry: cfg.GeocodeCountry}, logger, metrics)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

func newSheetsClient(ctx context.Context, credentialsFile string, logger *slog.Logger, metrics *observability.Metrics) (*sheets.Client, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, err
	}
	sheetsSvc, driveSvc, err := sheets.NewServices(ctx, data)
	if err != nil {
		return nil, err
	}
	return sheets.NewClient(sheetsSvc, driveSvc, logger, metrics), nil
}
