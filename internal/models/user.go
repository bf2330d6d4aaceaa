package models

import "time"

// User represents a registered bot user. Users are deactivated rather than
// deleted so the summaries log keeps its referential history.
type User struct {
	ID        string    `db:"user_id"`
	Username  *string   `db:"username"`
	WantsNews int       `db:"wants_news"`
	Active    int       `db:"active"`
	RSSUUID   string    `db:"rss_uuid"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Name returns the username, falling back to the user id when none is set.
func (u *User) Name() string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.ID
}
