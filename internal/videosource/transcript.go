package videosource

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTranscriptBaseURL = "https://www.youtube.com"

// TranscriptClient fetches caption tracks from YouTube's public timedtext
// endpoint. For each language it tries the uploaded track first, then the
// auto-generated one. An empty response means the track does not exist,
// which is reported as plain absence, not an error.
type TranscriptClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewTranscriptClient returns a client with a conservative request timeout;
// a stuck call must not block a polling cycle indefinitely.
func NewTranscriptClient() *TranscriptClient {
	return &TranscriptClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultTranscriptBaseURL,
	}
}

// NewTranscriptClientWithBase is used by tests to point at a local server.
func NewTranscriptClientWithBase(baseURL string) *TranscriptClient {
	c := NewTranscriptClient()
	c.baseURL = baseURL
	return c
}

type timedTextDoc struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

// Fetch returns the transcript text for the video, trying the preferred
// languages in order and falling back to English. Returns "" when no track
// exists in any tried language.
func (c *TranscriptClient) Fetch(ctx context.Context, videoID string, languages []string) (string, error) {
	tried := map[string]bool{}
	candidates := append([]string{}, languages...)
	candidates = append(candidates, "en")

	for _, lang := range candidates {
		if lang == "" || tried[lang] {
			continue
		}
		tried[lang] = true

		for _, kind := range []string{"", "asr"} {
			text, err := c.fetchTrack(ctx, videoID, lang, kind)
			if err != nil {
				log.Printf("Transcript fetch failed for %s (lang=%s kind=%s): %v", videoID, lang, kind, err)
				continue
			}
			if text != "" {
				return text, nil
			}
		}
	}
	return "", nil
}

func (c *TranscriptClient) fetchTrack(ctx context.Context, videoID, lang, kind string) (string, error) {
	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", lang)
	if kind != "" {
		params.Set("kind", kind)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/timedtext?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("timedtext returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		// No track for this language.
		return "", nil
	}

	var doc timedTextDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("failed to parse timedtext response: %w", err)
	}

	parts := make([]string, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		// Caption payloads arrive double-escaped.
		line := strings.TrimSpace(html.UnescapeString(t.Value))
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " "), nil
}
