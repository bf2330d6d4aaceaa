// Package videosource fetches latest-video metadata and transcripts from
// YouTube, either through the public channel feeds (no quota) or through the
// Data API (quota-based, but able to resolve @handles).
package videosource

import (
	"context"
	"time"
)

// VideoInfo is the metadata of a single video.
type VideoInfo struct {
	ID           string
	Title        string
	Description  string
	PublishedAt  time.Time
	ChannelTitle string
	URL          string
	Thumbnail    string
}

// Video is a VideoInfo plus its transcript. Transcript may be empty for the
// API-based source when metadata was found but no transcript exists.
type Video struct {
	VideoInfo
	Transcript string
}

// Source is the contract shared by both strategies. channelRef is a
// platform-native channel id for the feed-based source; the API-based source
// additionally accepts "@handle" references and resolves them.
//
// LatestVideoToday returns (nil, nil) when the channel has no video
// published today; errors are reserved for transport failures.
type Source interface {
	LatestVideoToday(ctx context.Context, channelRef string) (*VideoInfo, error)
	Transcript(ctx context.Context, videoID string, languages []string) (string, error)
	VideoWithTranscript(ctx context.Context, channelRef string, languages []string) (*Video, error)
}

// WatchURL builds the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
