package db

import (
	"errors"
	"fmt"
	"log"

	"tubebrief/internal/models"
)

// ErrChannelNotFound is returned when an operation references a channel
// handle that is not in the channels table.
var ErrChannelNotFound = errors.New("channel not found")

// Subscribe adds a (user, channel) pair. Subscribing twice is a silent
// no-op; subscribing to an unknown handle fails with ErrChannelNotFound and
// leaves the store unchanged.
func (s *Store) Subscribe(userID, channelHandle string) error {
	channel, err := s.GetChannel(channelHandle)
	if err != nil {
		return err
	}
	if channel == nil {
		return fmt.Errorf("%w: %s", ErrChannelNotFound, channelHandle)
	}

	_, err = s.db.Exec(s.rebind(`
		INSERT INTO user_channels (user_id, channel_id)
		VALUES (?, ?)
		ON CONFLICT (user_id, channel_id) DO NOTHING`),
		userID, channel.ID)
	if err != nil {
		log.Printf("Error subscribing user %s to %s: %v", userID, channelHandle, err)
		return err
	}
	return nil
}

// Unsubscribe removes a (user, channel) pair. Removing a pair that does not
// exist is a no-op; an unknown handle fails with ErrChannelNotFound.
func (s *Store) Unsubscribe(userID, channelHandle string) error {
	channel, err := s.GetChannel(channelHandle)
	if err != nil {
		return err
	}
	if channel == nil {
		return fmt.Errorf("%w: %s", ErrChannelNotFound, channelHandle)
	}

	_, err = s.db.Exec(s.rebind(`
		DELETE FROM user_channels WHERE user_id = ? AND channel_id = ?`),
		userID, channel.ID)
	return err
}

// GetUserChannels returns the active channels a user is subscribed to.
func (s *Store) GetUserChannels(userID string) ([]models.Channel, error) {
	var channels []models.Channel
	err := s.db.Select(&channels, s.rebind(`
		SELECT c.channel_id, c.channel_handle, c.channel_name, c.youtube_channel_id, c.language,
		       c.check_start_hour, c.check_start_minute, c.check_end_hour, c.check_interval_minutes,
		       c.active, c.created_at
		FROM channels c
		INNER JOIN user_channels uc ON c.channel_id = uc.channel_id
		WHERE uc.user_id = ? AND c.active = 1`),
		userID)
	if err != nil {
		return nil, err
	}
	return channels, nil
}

// GetChannelSubscribers returns the ids of active users subscribed to the
// channel. Inactive users and inactive channels yield no rows.
func (s *Store) GetChannelSubscribers(channelHandle string) ([]string, error) {
	var ids []string
	err := s.db.Select(&ids, s.rebind(`
		SELECT u.user_id
		FROM users u
		INNER JOIN user_channels uc ON u.user_id = uc.user_id
		INNER JOIN channels c ON uc.channel_id = c.channel_id
		WHERE c.channel_handle = ? AND u.active = 1 AND c.active = 1`),
		channelHandle)
	if err != nil {
		return nil, err
	}
	return ids, nil
}
