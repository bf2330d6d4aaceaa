package db_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubebrief/internal/test"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"user_id", "username", "wants_news", "active", "rss_uuid", "created_at", "updated_at",
	})
}

func TestAddUser(t *testing.T) {
	store, mock := test.NewMockStore(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("12345", "alice", 1, sqlmock.AnyArg()).
		WillReturnRows(userRows().AddRow("12345", "alice", 0, 1, "feed-uuid-1", now, now))

	user, err := store.AddUser("12345", "alice", true)
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "12345", user.ID)
	assert.Equal(t, "alice", user.Name())
	assert.Equal(t, 1, user.Active)
	assert.Equal(t, "feed-uuid-1", user.RSSUUID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddUser_EmptyUsername(t *testing.T) {
	store, mock := test.NewMockStore(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("12345", nil, 1, sqlmock.AnyArg()).
		WillReturnRows(userRows().AddRow("12345", nil, 0, 1, "feed-uuid-1", now, now))

	user, err := store.AddUser("12345", "", true)
	require.NoError(t, err)

	// With no username, Name falls back to the id.
	assert.Equal(t, "12345", user.Name())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUser_NotFound(t *testing.T) {
	store, mock := test.NewMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE user_id = \?`).
		WithArgs("nope").
		WillReturnRows(userRows())

	user, err := store.GetUser("nope")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByRSSUUID(t *testing.T) {
	store, mock := test.NewMockStore(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE rss_uuid = \?`).
		WithArgs("feed-uuid-1").
		WillReturnRows(userRows().AddRow("12345", "alice", 1, 1, "feed-uuid-1", now, now))

	user, err := store.GetUserByRSSUUID("feed-uuid-1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "12345", user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUserAuthorized(t *testing.T) {
	store, mock := test.NewMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE user_id = \? AND active = 1`).
		WithArgs("12345").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := store.IsUserAuthorized("12345")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE user_id = \? AND active = 1`).
		WithArgs("99999").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ok, err = store.IsUserAuthorized("99999")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNewsRecipients(t *testing.T) {
	store, mock := test.NewMockStore(t)

	mock.ExpectQuery(`SELECT user_id FROM users WHERE active = 1 AND wants_news = 1`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("111").AddRow("222"))

	ids, err := store.GetNewsRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"111", "222"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetWantsNews(t *testing.T) {
	store, mock := test.NewMockStore(t)

	mock.ExpectExec(`UPDATE users SET wants_news = \?`).
		WithArgs(1, "12345").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.SetWantsNews("12345", true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateUser(t *testing.T) {
	store, mock := test.NewMockStore(t)

	mock.ExpectExec(`UPDATE users SET active = 0`).
		WithArgs("12345").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.DeactivateUser("12345"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
