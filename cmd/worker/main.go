package main

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"tubebrief/internal/config"
	"tubebrief/internal/db"
	"tubebrief/internal/messenger"
	"tubebrief/internal/news"
	"tubebrief/internal/orchestrator"
	"tubebrief/internal/summarizer"
	"tubebrief/internal/videosource"
	"tubebrief/internal/worker"
	"tubebrief/pkg/tasks"
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
	if err := cfg.RequireWorker(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	store, err := db.New(cfg)
	if err != nil {
		log.Fatalf("could not open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	transcripts := videosource.NewTranscriptClient()

	var source orchestrator.VideoFetcher
	if cfg.VideoSource == "api" {
		source, err = videosource.NewAPISource(ctx, cfg.YouTubeAPIKey, transcripts, cfg.Location)
		if err != nil {
			log.Fatalf("could not create video source: %v", err)
		}
	} else {
		source = videosource.NewFeedSource(transcripts, cfg.Location)
	}

	gemini, err := summarizer.NewGemini(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("could not create summarizer: %v", err)
	}

	telegram, err := messenger.NewTelegram(cfg.TelegramBotToken)
	if err != nil {
		log.Fatalf("could not create messenger: %v", err)
	}

	orch := orchestrator.New(store, source, gemini, telegram, cfg.Location)

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer client.Close()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		asynq.Config{
			Concurrency: 1, // Process one channel at a time to be gentle with YouTube
			Queues: map[string]int{
				"high":    2,
				"default": 1,
			},
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				// Exponential backoff: 5min, 10min, 20min, ... capped at 24h.
				delay := 5 * time.Minute
				maxDelay := 24 * time.Hour
				for i := 0; i < n; i++ {
					delay *= 2
					if delay > maxDelay {
						delay = maxDelay
						break
					}
				}
				log.Printf("Task %s failed %d times, retrying in %v", task.Type(), n+1, delay)
				return delay
			},
		},
	)

	taskHandler := worker.NewTaskHandler(store, orch, gemini, news.NewAggregator(), telegram, client)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCheckAllChannels, taskHandler.HandleCheckAllChannelsTask)
	mux.HandleFunc(tasks.TypeCheckChannel, taskHandler.HandleCheckChannelTask)
	mux.HandleFunc(tasks.TypeNewsDigest, taskHandler.HandleNewsDigestTask)

	log.Printf("Worker starting (commit: %s, source: %s)", CommitSHA, cfg.VideoSource)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
