package db

import (
	"database/sql"
	"errors"
	"log"

	"github.com/google/uuid"

	"tubebrief/internal/models"
)

const userColumns = `user_id, username, wants_news, active, rss_uuid, created_at, updated_at`

// AddUser inserts a new user or updates an existing one. Re-registering a
// deactivated user reactivates them; the rss_uuid assigned on first insert
// is kept forever.
func (s *Store) AddUser(id, username string, active bool) (*models.User, error) {
	query := s.rebind(`
		INSERT INTO users (user_id, username, active, rss_uuid)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			username = excluded.username,
			active = excluded.active,
			updated_at = CURRENT_TIMESTAMP
		RETURNING ` + userColumns)

	user := &models.User{}
	err := s.db.Get(user, query, id, nullString(username), boolToInt(active), uuid.NewString())
	if err != nil {
		log.Printf("Error upserting user %s: %v", id, err)
		return nil, err
	}
	return user, nil
}

// GetUser returns the user or nil when no such user exists.
func (s *Store) GetUser(id string) (*models.User, error) {
	user := &models.User{}
	err := s.db.Get(user, s.rebind(`SELECT `+userColumns+` FROM users WHERE user_id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByRSSUUID resolves the opaque feed identifier to a user.
func (s *Store) GetUserByRSSUUID(rssUUID string) (*models.User, error) {
	user := &models.User{}
	err := s.db.Get(user, s.rebind(`SELECT `+userColumns+` FROM users WHERE rss_uuid = ?`), rssUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// IsUserAuthorized reports whether the user exists and is active.
func (s *Store) IsUserAuthorized(id string) (bool, error) {
	var count int
	err := s.db.Get(&count, s.rebind(`SELECT COUNT(*) FROM users WHERE user_id = ? AND active = 1`), id)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetAllUsers returns all users, optionally restricted to active ones.
func (s *Store) GetAllUsers(activeOnly bool) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	var users []models.User
	if err := s.db.Select(&users, query); err != nil {
		return nil, err
	}
	return users, nil
}

// GetNewsRecipients returns the ids of active users who opted into the
// daily news digest.
func (s *Store) GetNewsRecipients() ([]string, error) {
	var ids []string
	err := s.db.Select(&ids, `SELECT user_id FROM users WHERE active = 1 AND wants_news = 1`)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// SetWantsNews updates the user's news digest preference.
func (s *Store) SetWantsNews(id string, wants bool) error {
	_, err := s.db.Exec(s.rebind(`
		UPDATE users SET wants_news = ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ?`),
		boolToInt(wants), id)
	return err
}

// DeactivateUser soft-deletes a user, keeping the summaries history intact.
func (s *Store) DeactivateUser(id string) error {
	_, err := s.db.Exec(s.rebind(`
		UPDATE users SET active = 0, updated_at = CURRENT_TIMESTAMP WHERE user_id = ?`), id)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
