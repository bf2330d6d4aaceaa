package models

import "time"

// Summary is one row of the append-only summaries log: one attempt (success
// or failure) per video per day. The channel handle is denormalized on
// purpose so manually submitted videos from unknown channels can be logged.
type Summary struct {
	ID            int64     `db:"summary_id"`
	ChannelHandle string    `db:"channel_handle"`
	VideoID       *string   `db:"video_id"`
	VideoTitle    string    `db:"video_title"`
	VideoURL      string    `db:"video_url"`
	SummaryText   string    `db:"summary_text"`
	VideoDate     string    `db:"video_date"`
	ProcessedAt   time.Time `db:"processed_at"`
	Success       int       `db:"success"`
}
