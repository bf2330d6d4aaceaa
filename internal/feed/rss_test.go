package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubebrief/internal/models"
)

func TestGenerateRSS(t *testing.T) {
	username := "alice"
	user := &models.User{
		ID:        "12345",
		Username:  &username,
		Active:    1,
		RSSUUID:   "feed-uuid-1",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	videoID := "dQw4w9WgXcQ"
	summaries := []models.Summary{
		{
			ID:            1,
			ChannelHandle: "@finanzas",
			VideoID:       &videoID,
			VideoTitle:    "Mercados hoy",
			VideoURL:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			SummaryText:   "Un resumen del día.",
			VideoDate:     "2026-08-31",
			ProcessedAt:   time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
			Success:       1,
		},
	}

	rss, err := GenerateRSS(user, summaries, "http://localhost:8080")
	require.NoError(t, err)

	assert.Contains(t, rss, "alice")
	assert.Contains(t, rss, "http://localhost:8080/rss/feed-uuid-1")
	assert.Contains(t, rss, "@finanzas")
	assert.Contains(t, rss, "Mercados hoy")
	assert.Contains(t, rss, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
}

func TestGenerateRSS_Empty(t *testing.T) {
	user := &models.User{
		ID:        "12345",
		Active:    1,
		RSSUUID:   "feed-uuid-1",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	rss, err := GenerateRSS(user, nil, "http://localhost:8080")
	require.NoError(t, err)

	// An empty feed is still a valid channel document.
	assert.Contains(t, rss, "<rss")
	assert.NotContains(t, rss, "<item>")
}
