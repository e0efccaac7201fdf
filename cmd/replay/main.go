package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/resonance/internal/config"
	"github.com/MikeSquared-Agency/resonance/internal/engine"
	"github.com/MikeSquared-Agency/resonance/internal/lexicon"
	"github.com/MikeSquared-Agency/resonance/internal/replay"
	"github.com/MikeSquared-Agency/resonance/internal/slack"
	"github.com/MikeSquared-Agency/resonance/internal/store"
)

func main() {
	var (
		path      = flag.String("path", "", "JSONL file or directory of message logs (required)")
		statePath = flag.String("state", replay.DefaultStatePath, "resumable state file")
		since     = flag.String("since", "", "only replay messages at or after this date (YYYY-MM-DD or RFC3339)")
		until     = flag.String("until", "", "only replay messages at or before this date (YYYY-MM-DD or RFC3339)")
		dryRun    = flag.Bool("dry-run", false, "score and classify only; do not touch relationships or state")
	)
	flag.Parse()

	cfg := config.Load()
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: replay -path <file|dir> [-state file] [-since date] [-until date] [-dry-run]")
		os.Exit(2)
	}

	sinceT, err := replay.ParseSince(*since)
	if err != nil {
		logger.Error("invalid -since", "error", err)
		os.Exit(2)
	}
	untilT, err := replay.ParseUntil(*until)
	if err != nil {
		logger.Error("invalid -until", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, store.Options{
		Backend:       cfg.StoreBackend,
		DatabaseURL:   cfg.DatabaseURL,
		RedisURL:      cfg.RedisURL,
		ExperienceCap: cfg.ExperienceCap,
	})
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if cfg.StoreBackend == store.BackendMemory && !*dryRun {
		logger.Warn("replaying into the memory store; relationships are discarded on exit")
	}

	lex := lexicon.Default(
		lexicon.WithBoosterMode(lexicon.ParseBoosterMode(cfg.BoosterMode)),
		lexicon.WithMaxInputLen(cfg.MaxInputLen),
	)
	eng := engine.New(lex, db, nil, logger,
		engine.WithHistoryWindow(cfg.HistoryWindow),
		engine.WithDecayRate(cfg.DecayRate),
	)

	runner := replay.NewRunner(replay.Config{
		Path:      *path,
		StatePath: *statePath,
		Since:     sinceT,
		Until:     untilT,
		DryRun:    *dryRun,
	}, eng, logger)

	sum, err := runner.Run(ctx)
	if sum != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(sum)
	}
	if sum != nil && !sum.DryRun && cfg.SlackBotToken != "" && cfg.SlackChannel != "" {
		poster := slack.NewPoster(cfg.SlackBotToken, cfg.SlackChannel, logger)
		postCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if _, perr := poster.PostReplaySummary(postCtx, sum, *path); perr != nil {
			logger.Warn("failed to post replay summary", "error", perr)
		}
		cancel()
	}
	if err != nil {
		logger.Error("replay failed", "error", err)
		os.Exit(1)
	}
}
