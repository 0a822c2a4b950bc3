/*
Package main is the entry point for the linewatch webhook receiver.

It loads configuration, initializes the global logger, resolves the storage
backend (PostgreSQL when configured and reachable, in-process memory otherwise),
wires the profile enrichment chain, and runs the HTTP server with graceful
shutdown on SIGINT/SIGTERM.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"linewatch/internal/app/enrich"
	"linewatch/internal/app/seen"
	"linewatch/internal/app/storage"
	"linewatch/internal/configs"
	"linewatch/internal/handler"
	"linewatch/internal/lineapi"
	"linewatch/internal/pkg/logx"
)

func main() {
	// Optional .env for local development; real deployments set the environment.
	_ = godotenv.Load()

	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Bool("signature_verification", cfg.LineChannelSecret != "").
		Bool("profile_enrichment", cfg.LineChannelAccessToken != "").
		Bool("database_configured", cfg.DatabaseDSN != "").
		Msg("Configuration loaded")

	if cfg.LineChannelSecret == "" {
		logx.Warn("LINE_CHANNEL_SECRET is not set: webhook signature verification is DISABLED (insecure local mode)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lineClient := lineapi.NewClient(cfg.LineChannelAccessToken)

	mirror, err := storage.NewAvatarMirror(storage.ServiceConfig{
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		logx.Fatal(err, "Failed to initialize avatar mirror")
	}

	enricher := enrich.New(lineClient, mirror)

	backend := seen.Resolve(cfg.DatabaseDSN, enricher)
	defer backend.Close()
	logx.Info("Storage backend resolved", "mode", backend.Mode)

	deps := &handler.AppDeps{
		Config:      cfg,
		Store:       backend.Store,
		Ledger:      backend.Ledger,
		Line:        lineClient,
		StorageMode: backend.Mode,
	}

	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("linewatch listening on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
