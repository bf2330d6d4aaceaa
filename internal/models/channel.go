package models

import "time"

// Channel is a YouTube channel tracked by the scheduler. The handle ("@name")
// is the human-facing identifier; YoutubeChannelID is the platform-native id
// required by the feed-based video source and stays nil until backfilled.
type Channel struct {
	ID                   int       `db:"channel_id"`
	Handle               string    `db:"channel_handle"`
	Name                 *string   `db:"channel_name"`
	YoutubeChannelID     *string   `db:"youtube_channel_id"`
	Language             string    `db:"language"`
	CheckStartHour       int       `db:"check_start_hour"`
	CheckStartMinute     int       `db:"check_start_minute"`
	CheckEndHour         int       `db:"check_end_hour"`
	CheckIntervalMinutes int       `db:"check_interval_minutes"`
	Active               int       `db:"active"`
	CreatedAt            time.Time `db:"created_at"`
}
