package db

import (
	"database/sql"
	"errors"

	"tubebrief/internal/models"
)

const channelColumns = `channel_id, channel_handle, channel_name, youtube_channel_id, language,
	check_start_hour, check_start_minute, check_end_hour, check_interval_minutes, active, created_at`

// ChannelConfig holds the optional attributes of a new channel.
type ChannelConfig struct {
	Name             string
	YoutubeChannelID string
	Language         string
	StartHour        int
	StartMinute      int
	EndHour          int
	IntervalMinutes  int
}

// DefaultChannelConfig returns the defaults used when a channel is added
// without explicit settings: Spanish content checked between 10:00 and 14:00.
func DefaultChannelConfig() ChannelConfig {
	return ChannelConfig{
		Language:        "es",
		StartHour:       10,
		StartMinute:     0,
		EndHour:         14,
		IntervalMinutes: 5,
	}
}

// AddChannel inserts a channel if the handle is not yet known. Adding an
// existing handle is a silent no-op that preserves the stored configuration.
func (s *Store) AddChannel(handle string, cfg ChannelConfig) error {
	_, err := s.db.Exec(s.rebind(`
		INSERT INTO channels
			(channel_handle, channel_name, youtube_channel_id, language,
			 check_start_hour, check_start_minute, check_end_hour, check_interval_minutes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (channel_handle) DO NOTHING`),
		handle, nullString(cfg.Name), nullString(cfg.YoutubeChannelID), cfg.Language,
		cfg.StartHour, cfg.StartMinute, cfg.EndHour, cfg.IntervalMinutes)
	return err
}

// GetChannel returns the channel or nil when the handle is unknown.
func (s *Store) GetChannel(handle string) (*models.Channel, error) {
	channel := &models.Channel{}
	err := s.db.Get(channel, s.rebind(`SELECT `+channelColumns+` FROM channels WHERE channel_handle = ?`), handle)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return channel, nil
}

// GetAllChannels returns all channels, optionally restricted to active ones.
func (s *Store) GetAllChannels(activeOnly bool) ([]models.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	var channels []models.Channel
	if err := s.db.Select(&channels, query); err != nil {
		return nil, err
	}
	return channels, nil
}

// SetChannelYoutubeID backfills the platform-native channel id needed by the
// feed-based video source.
func (s *Store) SetChannelYoutubeID(handle, youtubeChannelID string) error {
	_, err := s.db.Exec(s.rebind(`
		UPDATE channels SET youtube_channel_id = ? WHERE channel_handle = ?`),
		youtubeChannelID, handle)
	return err
}
