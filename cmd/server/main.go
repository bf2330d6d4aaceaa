package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"tubebrief/internal/config"
	"tubebrief/internal/db"
	"tubebrief/internal/handlers"
	"tubebrief/internal/middleware"
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
	if err := cfg.RequireServer(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	store, err := db.New(cfg)
	if err != nil {
		log.Fatalf("could not open store: %v", err)
	}
	defer store.Close()

	h := handlers.New(store, cfg.BaseURL)
	auth := middleware.NewAuth(store, cfg.TelegramBotToken)
	limiter := middleware.NewRateLimiter(rate.Limit(1), 5)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet)
	r.Handle("/rss/{uuid}", limiter.Middleware(http.HandlerFunc(h.GetRSSFeed))).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth.Middleware)
	api.HandleFunc("/summaries", h.ListSummaries).Methods(http.MethodGet)

	log.Printf("Server starting on :%s (commit: %s)", cfg.Port, CommitSHA)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
