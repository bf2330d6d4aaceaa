package videosource

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// APISource is the quota-based strategy over the YouTube Data API v3. It
// accepts both native channel ids and "@handle" references, and unlike the
// feed-based strategy it returns video metadata even when no transcript is
// available (the interactive flow wants the metadata regardless).
type APISource struct {
	svc         *youtube.Service
	transcripts *TranscriptClient
	loc         *time.Location
}

// NewAPISource builds an API-based source using an API key.
func NewAPISource(ctx context.Context, apiKey string, transcripts *TranscriptClient, loc *time.Location) (*APISource, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &APISource{svc: svc, transcripts: transcripts, loc: loc}, nil
}

// LatestVideoToday returns the channel's newest video if it was published
// today, nil otherwise. channelRef may be a native id or an "@handle".
func (s *APISource) LatestVideoToday(ctx context.Context, channelRef string) (*VideoInfo, error) {
	channelID, err := s.resolveChannelID(ctx, channelRef)
	if err != nil {
		return nil, err
	}

	resp, err := s.svc.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		MaxResults(1).
		Order("date").
		Type("video").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("video search failed for channel %s: %w", channelRef, err)
	}
	if len(resp.Items) == 0 {
		log.Printf("No videos found for channel %s", channelRef)
		return nil, nil
	}

	item := resp.Items[0]
	published, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid published timestamp %q: %w", item.Snippet.PublishedAt, err)
	}

	today := time.Now().In(s.loc).Format("2006-01-02")
	if published.In(s.loc).Format("2006-01-02") != today {
		log.Printf("No video published today for channel %s", channelRef)
		return nil, nil
	}

	info := snippetToInfo(item.Id.VideoId, item.Snippet.Title, item.Snippet.Description,
		item.Snippet.ChannelTitle, published)
	if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Medium != nil {
		info.Thumbnail = item.Snippet.Thumbnails.Medium.Url
	}

	log.Printf("Found today's video for %s: %s", channelRef, info.Title)
	return info, nil
}

// VideoByID fetches metadata for a single video, used by the interactive
// flow where the id comes from a user-submitted link.
func (s *APISource) VideoByID(ctx context.Context, videoID string) (*VideoInfo, error) {
	resp, err := s.svc.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("video lookup failed for %s: %w", videoID, err)
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}

	snippet := resp.Items[0].Snippet
	published, err := time.Parse(time.RFC3339, snippet.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid published timestamp %q: %w", snippet.PublishedAt, err)
	}

	info := snippetToInfo(videoID, snippet.Title, snippet.Description, snippet.ChannelTitle, published)
	if snippet.Thumbnails != nil && snippet.Thumbnails.Medium != nil {
		info.Thumbnail = snippet.Thumbnails.Medium.Url
	}
	return info, nil
}

// Transcript fetches the transcript for a video id.
func (s *APISource) Transcript(ctx context.Context, videoID string, languages []string) (string, error) {
	return s.transcripts.Fetch(ctx, videoID, languages)
}

// VideoWithTranscript returns today's video with its transcript when one
// exists. A video without a transcript is still returned, with an empty
// Transcript, as a partial result.
func (s *APISource) VideoWithTranscript(ctx context.Context, channelRef string, languages []string) (*Video, error) {
	info, err := s.LatestVideoToday(ctx, channelRef)
	if err != nil || info == nil {
		return nil, err
	}

	transcript, err := s.Transcript(ctx, info.ID, languages)
	if err != nil {
		return nil, err
	}
	if transcript == "" {
		log.Printf("No transcript available for %s", info.Title)
	}
	return &Video{VideoInfo: *info, Transcript: transcript}, nil
}

// resolveChannelID turns an "@handle" into a native channel id, first via
// the channels endpoint, then via a tolerant channel search.
func (s *APISource) resolveChannelID(ctx context.Context, ref string) (string, error) {
	if !strings.HasPrefix(ref, "@") {
		return ref, nil
	}

	resp, err := s.svc.Channels.List([]string{"id"}).ForHandle(ref).Context(ctx).Do()
	if err == nil && len(resp.Items) > 0 {
		return resp.Items[0].Id, nil
	}
	if err != nil {
		log.Printf("Handle lookup failed for %s, falling back to search: %v", ref, err)
	}

	search, err := s.svc.Search.List([]string{"snippet"}).
		Q(ref).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("channel search failed for %s: %w", ref, err)
	}
	if len(search.Items) == 0 {
		return "", fmt.Errorf("no channel found for handle %s", ref)
	}
	return search.Items[0].Snippet.ChannelId, nil
}

func snippetToInfo(id, title, description, channelTitle string, published time.Time) *VideoInfo {
	return &VideoInfo{
		ID:           id,
		Title:        title,
		Description:  description,
		PublishedAt:  published,
		ChannelTitle: channelTitle,
		URL:          WatchURL(id),
	}
}
