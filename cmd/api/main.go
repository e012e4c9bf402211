// Package main is the entry point for the fieldwatch API server.
//
// It loads configuration, builds the NWS fetcher and the outlook service,
// wires the Slack notifier when credentials are present, and serves the HTTP
// surface with graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fieldwatch/internal/config"
	"fieldwatch/internal/external"
	"fieldwatch/internal/nws"
	"fieldwatch/internal/observability"
	"fieldwatch/internal/outlook"
	"fieldwatch/internal/policy"
	"fieldwatch/internal/server"
	"fieldwatch/internal/types"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so that main() can cleanly exit on
// error.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("fieldwatch API starting",
		"environment", cfg.Environment,
		"station", cfg.Location.StationID,
		"port", cfg.Server.Port,
	)

	rules, err := policy.Load(cfg.Policy.Path)
	if err != nil {
		return fmt.Errorf("loading policy: %w", err)
	}
	logger.Info("policy loaded", "path", cfg.Policy.Path, "rules", len(rules.Rules))

	metrics := observability.NewMetrics()

	httpClient := &http.Client{Timeout: cfg.NWS.Timeout}
	nwsClient := nws.NewClient(httpClient, nws.ClientConfig{
		UserAgent: cfg.NWS.UserAgent,
		BaseURL:   cfg.NWS.BaseURL,
		Logger:    logger,
	})
	fetcher := nws.NewFetcher(nwsClient, nws.Location{
		Latitude:  cfg.Location.Latitude,
		Longitude: cfg.Location.Longitude,
		StationID: cfg.Location.StationID,
	}, logger)

	service := outlook.NewService(outlook.ServiceConfig{
		Source:        fetcher,
		Rules:         rules.Rules,
		FuturePeriods: cfg.Policy.FuturePeriods,
		Clock:         types.RealClock{},
		Metrics:       metrics,
		Logger:        logger,
	})

	// The notifier is optional for the API surface; without credentials the
	// notification endpoint reports config_missing_credential.
	var notifier server.Notifier
	if cfg.Slack.BotToken.Unmask() != "" && cfg.Slack.Channel != "" {
		slack, err := external.NewSlackClient(httpClient, external.SlackClientConfig{
			BotToken: cfg.Slack.BotToken,
			Channel:  cfg.Slack.Channel,
			BaseURL:  cfg.Slack.BaseURL,
			Logger:   logger,
		})
		if err != nil {
			return fmt.Errorf("building slack client: %w", err)
		}
		notifier = slack
	} else {
		logger.Warn("slack credentials not configured; notification endpoint disabled")
	}

	srv := server.New(server.Config{
		Service:  service,
		Notifier: notifier,
		Metrics:  metrics,
		Logger:   logger,
	})

	return runHTTPServer(srv.Routes(), cfg, logger)
}

// runHTTPServer starts the server with graceful shutdown.
func runHTTPServer(handler http.Handler, cfg *config.Config, logger *slog.Logger) error {
	addr := ":" + cfg.Server.Port

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("initiating graceful shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}

// newLogger creates a structured slog.Logger configured for the given level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}
