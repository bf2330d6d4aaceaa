package db

import (
	"database/sql"
	"errors"
	"log"

	"tubebrief/internal/models"
)

const summaryColumns = `summary_id, channel_handle, video_id, video_title, video_url,
	summary_text, video_date, processed_at, success`

// SummaryEntry is one attempt to be appended to the summaries log.
type SummaryEntry struct {
	ChannelHandle string
	VideoID       string
	VideoTitle    string
	VideoURL      string
	SummaryText   string
	VideoDate     string // YYYY-MM-DD
	Success       bool
}

// AddSummary appends one attempt to the log. The log is never updated in
// place; dedup works through the existence checks below.
func (s *Store) AddSummary(e SummaryEntry) error {
	_, err := s.db.Exec(s.rebind(`
		INSERT INTO summaries
			(channel_handle, video_id, video_title, video_url, summary_text, video_date, success)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		e.ChannelHandle, nullString(e.VideoID), e.VideoTitle, e.VideoURL,
		e.SummaryText, e.VideoDate, boolToInt(e.Success))
	if err != nil {
		log.Printf("Error logging summary for %s: %v", e.ChannelHandle, err)
		return err
	}
	return nil
}

// HasChannelBeenProcessed reports whether the channel already has a
// successful summary for the given date. Failed attempts do not count, which
// is what allows same-day retries within the polling window.
func (s *Store) HasChannelBeenProcessed(channelHandle, date string) (bool, error) {
	var count int
	err := s.db.Get(&count, s.rebind(`
		SELECT COUNT(*) FROM summaries
		WHERE channel_handle = ? AND video_date = ? AND success = 1`),
		channelHandle, date)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasVideoBeenProcessed reports whether the video ever had a successful
// summary, independent of date.
func (s *Store) HasVideoBeenProcessed(videoID string) (bool, error) {
	var count int
	err := s.db.Get(&count, s.rebind(`
		SELECT COUNT(*) FROM summaries
		WHERE video_id = ? AND success = 1`),
		videoID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetSummaryByVideoID returns the most recent successful summary for the
// video, or nil when there is none.
func (s *Store) GetSummaryByVideoID(videoID string) (*models.Summary, error) {
	summary := &models.Summary{}
	err := s.db.Get(summary, s.rebind(`
		SELECT `+summaryColumns+` FROM summaries
		WHERE video_id = ? AND success = 1
		ORDER BY processed_at DESC
		LIMIT 1`),
		videoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// GetRecentSummaries returns the latest successful summaries, newest first.
func (s *Store) GetRecentSummaries(limit int) ([]models.Summary, error) {
	var summaries []models.Summary
	err := s.db.Select(&summaries, s.rebind(`
		SELECT `+summaryColumns+` FROM summaries
		WHERE success = 1
		ORDER BY processed_at DESC
		LIMIT ?`),
		limit)
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetSummariesForUser returns the latest successful summaries from channels
// the user subscribes to, newest first. Feeds the per-user RSS output.
func (s *Store) GetSummariesForUser(userID string, limit int) ([]models.Summary, error) {
	var summaries []models.Summary
	err := s.db.Select(&summaries, s.rebind(`
		SELECT s.summary_id, s.channel_handle, s.video_id, s.video_title, s.video_url,
		       s.summary_text, s.video_date, s.processed_at, s.success
		FROM summaries s
		INNER JOIN channels c ON c.channel_handle = s.channel_handle
		INNER JOIN user_channels uc ON uc.channel_id = c.channel_id
		WHERE uc.user_id = ? AND s.success = 1
		ORDER BY s.processed_at DESC
		LIMIT ?`),
		userID, limit)
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
