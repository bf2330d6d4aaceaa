package main

import (
	"log"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"tubebrief/internal/config"
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

	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		&asynq.SchedulerOpts{Location: cfg.Location},
	)

	checkAll, err := tasks.NewCheckAllChannelsTask()
	if err != nil {
		log.Fatalf("could not create channel sweep task: %v", err)
	}
	// The per-channel windows decide what actually runs each sweep.
	if _, err := scheduler.Register("@every 5m", checkAll); err != nil {
		log.Fatalf("could not register channel sweep: %v", err)
	}

	digest, err := tasks.NewNewsDigestTask()
	if err != nil {
		log.Fatalf("could not create news digest task: %v", err)
	}
	if _, err := scheduler.Register("0 8 * * *", digest); err != nil {
		log.Fatalf("could not register news digest: %v", err)
	}

	log.Printf("Scheduler starting (commit: %s)", CommitSHA)
	if err := scheduler.Run(); err != nil {
		log.Fatalf("could not run scheduler: %v", err)
	}
}
