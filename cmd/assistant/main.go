package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/issa-compass/assistant/internal/api"
	"github.com/issa-compass/assistant/internal/bus"
	"github.com/issa-compass/assistant/internal/config"
	"github.com/issa-compass/assistant/internal/editor"
	"github.com/issa-compass/assistant/internal/llm"
	"github.com/issa-compass/assistant/internal/reply"
	"github.com/issa-compass/assistant/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("assistant starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	db, err := store.New(ctx, cfg.DatabaseURL, slog.Default())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database connected")

	// LLM provider, resolved once from the configured keys.
	client, _, err := llm.Detect(ctx, cfg, slog.Default())
	if err != nil {
		slog.Error("failed to select LLM provider", "error", err)
		os.Exit(1)
	}

	// Event bus (optional — revisions just go unannounced without it).
	var events editor.EventPublisher
	if cfg.NatsURL != "" {
		busClient, err := bus.Connect(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer busClient.Close()
		events = busClient
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured — running without revision events")
	}

	renderer := reply.NewRenderer(db, client, cfg.ReplyMaxTokens, slog.Default())
	ed := editor.New(db, client, events, cfg.EditorMaxTokens, slog.Default())

	srv := api.NewServer(cfg.Port, renderer, ed, db, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("assistant ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("assistant stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
