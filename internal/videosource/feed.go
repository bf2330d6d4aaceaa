package videosource

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const defaultFeedBaseURL = "https://www.youtube.com"

// FeedSource is the quota-free strategy: it reads the channel's public Atom
// feed. It requires the platform-native channel id (no @handle resolution)
// and, unlike the API-based strategy, yields nothing when a video has no
// transcript, because there is no cheaper second lookup to fall back to.
type FeedSource struct {
	parser      *gofeed.Parser
	transcripts *TranscriptClient
	loc         *time.Location
	baseURL     string
}

// NewFeedSource builds a feed-based source. "Published today" is evaluated
// in loc, the same timezone the polling windows use.
func NewFeedSource(transcripts *TranscriptClient, loc *time.Location) *FeedSource {
	return &FeedSource{
		parser:      gofeed.NewParser(),
		transcripts: transcripts,
		loc:         loc,
		baseURL:     defaultFeedBaseURL,
	}
}

// NewFeedSourceWithBase is used by tests to point at a local server.
func NewFeedSourceWithBase(transcripts *TranscriptClient, loc *time.Location, baseURL string) *FeedSource {
	s := NewFeedSource(transcripts, loc)
	s.baseURL = baseURL
	return s
}

// LatestVideoToday returns the channel's newest video if it was published
// today, nil otherwise.
func (s *FeedSource) LatestVideoToday(ctx context.Context, channelID string) (*VideoInfo, error) {
	if strings.HasPrefix(channelID, "@") {
		// The feed endpoint only takes native channel ids. A handle here
		// means the id was never backfilled for this channel; skip
		// instead of issuing a fetch that is guaranteed to fail.
		log.Printf("No YouTube channel id set for %s, skipping feed check", channelID)
		return nil, nil
	}

	feedURL := fmt.Sprintf("%s/feeds/videos.xml?channel_id=%s", s.baseURL, channelID)

	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel feed %s: %w", channelID, err)
	}
	if len(feed.Items) == 0 {
		log.Printf("No entries in feed for channel %s", channelID)
		return nil, nil
	}

	latest := feed.Items[0]
	if latest.PublishedParsed == nil {
		return nil, fmt.Errorf("feed entry for channel %s has no published date", channelID)
	}

	published := latest.PublishedParsed.In(s.loc)
	today := time.Now().In(s.loc)
	if published.Format("2006-01-02") != today.Format("2006-01-02") {
		log.Printf("Latest video for %s published %s, not today", channelID, published.Format("2006-01-02"))
		return nil, nil
	}

	info := &VideoInfo{
		Title:       latest.Title,
		Description: latest.Description,
		PublishedAt: *latest.PublishedParsed,
		URL:         latest.Link,
		Thumbnail:   feedThumbnail(latest),
	}
	if latest.Author != nil {
		info.ChannelTitle = latest.Author.Name
	}
	if ids, ok := latest.Extensions["yt"]["videoId"]; ok && len(ids) > 0 {
		info.ID = ids[0].Value
	}
	if info.ID == "" {
		// Shorts and regular watch links both carry the id.
		if id, ok := ExtractVideoID(latest.Link); ok {
			info.ID = id
		}
	}
	if info.URL == "" && info.ID != "" {
		info.URL = WatchURL(info.ID)
	}

	log.Printf("Found today's video for %s: %s", channelID, info.Title)
	return info, nil
}

// Transcript fetches the transcript for a video id.
func (s *FeedSource) Transcript(ctx context.Context, videoID string, languages []string) (string, error) {
	return s.transcripts.Fetch(ctx, videoID, languages)
}

// VideoWithTranscript returns today's video together with its transcript,
// or nil when there is no video today or no transcript in any tried
// language.
func (s *FeedSource) VideoWithTranscript(ctx context.Context, channelID string, languages []string) (*Video, error) {
	info, err := s.LatestVideoToday(ctx, channelID)
	if err != nil || info == nil {
		return nil, err
	}

	transcript, err := s.Transcript(ctx, info.ID, languages)
	if err != nil {
		return nil, err
	}
	if transcript == "" {
		log.Printf("No transcript available for %s", info.Title)
		return nil, nil
	}

	return &Video{VideoInfo: *info, Transcript: transcript}, nil
}

func feedThumbnail(item *gofeed.Item) string {
	group, ok := item.Extensions["media"]["group"]
	if !ok || len(group) == 0 {
		return ""
	}
	thumbs, ok := group[0].Children["thumbnail"]
	if !ok || len(thumbs) == 0 {
		return ""
	}
	return thumbs[0].Attrs["url"]
}
