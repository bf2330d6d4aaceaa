package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>%s</title>
  %s
</channel>
</rss>`

func rssItem(title, link string, published time.Time) string {
	return fmt.Sprintf(`<item><title>%s</title><link>%s</link><pubDate>%s</pubDate></item>`,
		title, link, published.Format(time.RFC1123Z))
}

func TestTopHeadlines(t *testing.T) {
	now := time.Now().UTC()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/viejo":
			fmt.Fprintf(w, rssTemplate, "Viejo",
				rssItem("Noticia antigua", "https://example.com/1", now.Add(-2*time.Hour)))
		case "/nuevo":
			fmt.Fprintf(w, rssTemplate, "Nuevo",
				rssItem("Noticia fresca", "https://example.com/2", now)+
					rssItem("Segunda noticia", "https://example.com/3", now.Add(-time.Hour))+
					rssItem("Tercera noticia", "https://example.com/4", now.Add(-90*time.Minute))+
					rssItem("Cuarta fuera de cupo", "https://example.com/5", now.Add(-3*time.Hour)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	a := NewAggregatorWithFeeds(map[string]string{
		"Viejo": srv.URL + "/viejo",
		"Nuevo": srv.URL + "/nuevo",
	})

	headlines := a.TopHeadlines(context.Background(), 3)
	require.Len(t, headlines, 3)

	// Newest first, and each source contributes at most perFeedLimit items.
	assert.Equal(t, "Noticia fresca", headlines[0].Title)
	assert.Equal(t, "Nuevo", headlines[0].Source)
	for _, h := range headlines {
		assert.NotEqual(t, "Cuarta fuera de cupo", h.Title)
	}
}

func TestTopHeadlines_FailingSourceSkipped(t *testing.T) {
	now := time.Now().UTC()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok" {
			fmt.Fprintf(w, rssTemplate, "OK",
				rssItem("Única noticia", "https://example.com/1", now))
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := NewAggregatorWithFeeds(map[string]string{
		"OK":   srv.URL + "/ok",
		"Roto": srv.URL + "/roto",
	})

	headlines := a.TopHeadlines(context.Background(), 5)
	require.Len(t, headlines, 1)
	assert.Equal(t, "Única noticia", headlines[0].Title)
}

func TestFormatHeadlines(t *testing.T) {
	block := FormatHeadlines([]Headline{
		{Title: "Noticia uno", Link: "https://example.com/1", Source: "Fuente"},
	})

	assert.Contains(t, block, "Titulares")
	assert.Contains(t, block, "Noticia uno")
	assert.Contains(t, block, "(Fuente)")
	assert.Contains(t, block, "https://example.com/1")
}

func TestFormatHeadlines_Empty(t *testing.T) {
	assert.Empty(t, FormatHeadlines(nil))
}
