package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tubebrief/internal/config"
	"tubebrief/internal/db"
	"tubebrief/internal/listener"
	"tubebrief/internal/messenger"
	"tubebrief/internal/summarizer"
	"tubebrief/internal/videosource"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := cfg.RequireBot(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	store, err := db.New(cfg)
	if err != nil {
		log.Fatalf("could not open store: %v", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Link submissions carry bare video ids, so the listener always uses
	// the API-based source regardless of the orchestrator's strategy.
	transcripts := videosource.NewTranscriptClient()
	source, err := videosource.NewAPISource(ctx, cfg.YouTubeAPIKey, transcripts, cfg.Location)
	if err != nil {
		log.Fatalf("could not create video source: %v", err)
	}

	gemini, err := summarizer.NewGemini(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("could not create summarizer: %v", err)
	}

	telegram, err := messenger.NewTelegram(cfg.TelegramBotToken)
	if err != nil {
		log.Fatalf("could not create messenger: %v", err)
	}
	defer telegram.StopPolling()

	l := listener.New(store, source, gemini, telegram, cfg.BotPassword, cfg.Location)

	log.Printf("Bot starting (commit: %s)", CommitSHA)
	l.Run(ctx, telegram.Updates(0))
	log.Println("Bot stopped")
}
