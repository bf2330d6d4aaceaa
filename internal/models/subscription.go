package models

import "time"

// Subscription links a user to a channel. The (user, channel) pair is unique.
type Subscription struct {
	UserID       string    `db:"user_id"`
	ChannelID    int       `db:"channel_id"`
	SubscribedAt time.Time `db:"subscribed_at"`
}
