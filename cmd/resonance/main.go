package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/MikeSquared-Agency/resonance/internal/api"
	"github.com/MikeSquared-Agency/resonance/internal/config"
	"github.com/MikeSquared-Agency/resonance/internal/engine"
	"github.com/MikeSquared-Agency/resonance/internal/hermes"
	"github.com/MikeSquared-Agency/resonance/internal/lexicon"
	"github.com/MikeSquared-Agency/resonance/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel, cfg.LogFile)
	for _, w := range cfg.Warnings {
		slog.Warn("config", "warning", w)
	}

	slog.Info("resonance starting", "port", cfg.Port, "store", cfg.StoreBackend)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Lexicon
	mode := lexicon.ParseBoosterMode(cfg.BoosterMode)
	if !strings.EqualFold(string(mode), strings.TrimSpace(cfg.BoosterMode)) {
		slog.Warn("unknown BOOSTER_MODE, using stacked", "value", cfg.BoosterMode)
	}
	lex := lexicon.Default(lexicon.WithBoosterMode(mode), lexicon.WithMaxInputLen(cfg.MaxInputLen))

	// Store
	db, err := store.Open(ctx, store.Options{
		Backend:       cfg.StoreBackend,
		DatabaseURL:   cfg.DatabaseURL,
		RedisURL:      cfg.RedisURL,
		ExperienceCap: cfg.ExperienceCap,
	})
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("store ready", "backend", cfg.StoreBackend)

	// NATS/Hermes (optional: the HTTP API works without it)
	var hermesClient *hermes.Client
	var pub engine.Publisher
	if !cfg.NatsDisabled {
		hermesClient, err = hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer hermesClient.Close()
		pub = hermesClient
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS disabled, running HTTP only")
	}

	// Engine
	eng := engine.New(lex, db, pub, slog.Default(),
		engine.WithHistoryWindow(cfg.HistoryWindow),
		engine.WithDecayRate(cfg.DecayRate),
	)

	if hermesClient != nil {
		if err := hermesClient.Subscribe(hermes.SubjectMessageReceived, cfg.NatsQueue, eng.HandleMessage); err != nil {
			slog.Error("failed to subscribe to message events", "error", err)
			os.Exit(1)
		}
	}

	// HTTP API
	apiOpts := []api.Option{api.WithRateLimit(cfg.APIRateLimit, cfg.APIRateBurst)}
	if hermesClient != nil {
		apiOpts = append(apiOpts, api.WithBus(hermesClient))
	}
	srv := api.NewServer(cfg.Port, cfg.APIToken, eng, apiOpts...)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("resonance ready", "port", cfg.Port, "booster_mode", mode, "history_window", cfg.HistoryWindow)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown", "error", err)
	}
	cancel()
	slog.Info("resonance stopped")
}

func setupLogging(level, file string) {
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
	var out io.Writer = os.Stdout
	if file != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
