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

	"repo-insight/internal/adapter/gemini"
	"repo-insight/internal/adapter/github"
	"repo-insight/internal/adapter/httpapi"
	"repo-insight/internal/adapter/repository"
	"repo-insight/internal/config"
	"repo-insight/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration. Missing GITHUB_TOKEN or GEMINI_API_KEY is fatal.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("❌ config error: %w", err)
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"trending_window_days", cfg.TrendingWindowDays,
	)

	// 2. Signal-based context for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Idea-board store (creates the database file on first start).
	ideaStore, err := repository.NewSQLiteRepo(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("❌ database init failed: %w", err)
	}

	// 4. Upstream clients.
	summarizer, err := gemini.NewGeminiSummarizer(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("❌ gemini init failed: %w", err)
	}
	defer func() {
		if closeErr := summarizer.Close(); closeErr != nil {
			slog.Error("error closing gemini client", "error", closeErr)
		}
	}()

	fetcher := github.NewFetcher(cfg.GitHubToken)
	fetcher.SetTrendingWindow(cfg.TrendingWindowDays)

	// 5. Service and HTTP surface.
	svc := service.NewInsightService(fetcher, summarizer, ideaStore)
	handler := httpapi.NewHandler(svc, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httpapi.NewServeMux(handler, slog.Default()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      2 * time.Minute, // analyze holds up to five upstream calls
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		fmt.Printf("🚀 repo-insight listening on %s\n", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	// 6. Block until a stop signal, then drain in-flight requests.
	<-ctx.Done()
	slog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
