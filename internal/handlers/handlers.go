// Package handlers serves the read-only HTTP surface over the summaries
// log: a health check, a per-user RSS feed, and a JSON API.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"tubebrief/internal/db"
	"tubebrief/internal/feed"
	"tubebrief/internal/middleware"
	"tubebrief/internal/models"
)

const defaultSummaryLimit = 20

type Handlers struct {
	store   *db.Store
	baseURL string
}

func New(store *db.Store, baseURL string) *Handlers {
	return &Handlers{store: store, baseURL: baseURL}
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(); err != nil {
		log.Printf("Health check failed: %v", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// GetRSSFeed serves a user's subscribed-channel summaries as RSS. The uuid
// is an unguessable per-user token, which is the only access control here.
func (h *Handlers) GetRSSFeed(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	uuid := vars["uuid"]

	user, err := h.store.GetUserByRSSUUID(uuid)
	if err != nil {
		log.Printf("Error looking up feed %s: %v", uuid, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil || user.Active != 1 {
		http.Error(w, "Feed not found", http.StatusNotFound)
		return
	}

	summaries, err := h.store.GetSummariesForUser(user.ID, 50)
	if err != nil {
		log.Printf("Error getting summaries for user %s: %v", user.ID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	rss, err := feed.GenerateRSS(user, summaries, h.baseURL)
	if err != nil {
		log.Printf("Error generating RSS: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml")
	w.Write([]byte(rss))
}

type summaryResponse struct {
	ChannelHandle string    `json:"channel_handle"`
	VideoID       string    `json:"video_id,omitempty"`
	VideoTitle    string    `json:"video_title"`
	VideoURL      string    `json:"video_url"`
	SummaryText   string    `json:"summary_text"`
	VideoDate     string    `json:"video_date"`
	ProcessedAt   time.Time `json:"processed_at"`
}

// ListSummaries returns the caller's recent summaries as JSON. Requires the
// auth middleware.
func (h *Handlers) ListSummaries(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(middleware.UserContextKey).(*models.User)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := defaultSummaryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	summaries, err := h.store.GetSummariesForUser(user.ID, limit)
	if err != nil {
		log.Printf("Error getting summaries for user %s: %v", user.ID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]summaryResponse, 0, len(summaries))
	for _, s := range summaries {
		item := summaryResponse{
			ChannelHandle: s.ChannelHandle,
			VideoTitle:    s.VideoTitle,
			VideoURL:      s.VideoURL,
			SummaryText:   s.SummaryText,
			VideoDate:     s.VideoDate,
			ProcessedAt:   s.ProcessedAt,
		}
		if s.VideoID != nil {
			item.VideoID = *s.VideoID
		}
		resp = append(resp, item)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding summaries: %v", err)
	}
}
