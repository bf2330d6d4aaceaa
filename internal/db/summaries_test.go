package db_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubebrief/internal/db"
	"tubebrief/internal/test"
)

func summaryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"summary_id", "channel_handle", "video_id", "video_title", "video_url",
		"summary_text", "video_date", "processed_at", "success",
	})
}

func TestAddSummary(t *testing.T) {
	store, mock := test.NewMockStore(t)

	mock.ExpectExec(`INSERT INTO summaries`).
		WithArgs("@finanzas", "dQw4w9WgXcQ", "Mercados hoy",
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "Un resumen.", "2026-08-31", 1).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := store.AddSummary(db.SummaryEntry{
		ChannelHandle: "@finanzas",
		VideoID:       "dQw4w9WgXcQ",
		VideoTitle:    "Mercados hoy",
		VideoURL:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		SummaryText:   "Un resumen.",
		VideoDate:     "2026-08-31",
		Success:       true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddSummary_FailureRow(t *testing.T) {
	store, mock := test.NewMockStore(t)

	// Failed attempts are logged with success = 0 and no summary text.
	mock.ExpectExec(`INSERT INTO summaries`).
		WithArgs("@finanzas", "dQw4w9WgXcQ", "Mercados hoy",
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "", "2026-08-31", 0).
		WillReturnResult(sqlmock.NewResult(2, 1))

	err := store.AddSummary(db.SummaryEntry{
		ChannelHandle: "@finanzas",
		VideoID:       "dQw4w9WgXcQ",
		VideoTitle:    "Mercados hoy",
		VideoURL:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		VideoDate:     "2026-08-31",
		Success:       false,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasChannelBeenProcessed(t *testing.T) {
	store, mock := test.NewMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM summaries`).
		WithArgs("@finanzas", "2026-08-31").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	processed, err := store.HasChannelBeenProcessed("@finanzas", "2026-08-31")
	require.NoError(t, err)
	assert.True(t, processed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasChannelBeenProcessed_FailuresDoNotCount(t *testing.T) {
	store, mock := test.NewMockStore(t)

	// The query filters on success = 1, so a day with only failure rows
	// reports a count of zero and the channel stays eligible for retry.
	mock.ExpectQuery(`success = 1`).
		WithArgs("@finanzas", "2026-08-31").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	processed, err := store.HasChannelBeenProcessed("@finanzas", "2026-08-31")
	require.NoError(t, err)
	assert.False(t, processed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasVideoBeenProcessed(t *testing.T) {
	store, mock := test.NewMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM summaries`).
		WithArgs("dQw4w9WgXcQ").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	processed, err := store.HasVideoBeenProcessed("dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.True(t, processed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSummaryByVideoID(t *testing.T) {
	store, mock := test.NewMockStore(t)

	mock.ExpectQuery(`WHERE video_id = \? AND success = 1`).
		WithArgs("dQw4w9WgXcQ").
		WillReturnRows(summaryRows().
			AddRow(1, "@finanzas", "dQw4w9WgXcQ", "Mercados hoy",
				"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "Un resumen.",
				"2026-08-31", time.Now(), 1))

	summary, err := store.GetSummaryByVideoID("dQw4w9WgXcQ")
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, "Mercados hoy", summary.VideoTitle)
	assert.Equal(t, "Un resumen.", summary.SummaryText)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSummaryByVideoID_NotFound(t *testing.T) {
	store, mock := test.NewMockStore(t)

	mock.ExpectQuery(`WHERE video_id = \? AND success = 1`).
		WithArgs("unknownVid1").
		WillReturnRows(summaryRows())

	summary, err := store.GetSummaryByVideoID("unknownVid1")
	require.NoError(t, err)
	assert.Nil(t, summary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSummariesForUser(t *testing.T) {
	store, mock := test.NewMockStore(t)

	mock.ExpectQuery(`INNER JOIN channels c ON c\.channel_handle = s\.channel_handle`).
		WithArgs("12345", 50).
		WillReturnRows(sqlmock.NewRows([]string{
			"summary_id", "channel_handle", "video_id", "video_title", "video_url",
			"summary_text", "video_date", "processed_at", "success",
		}).AddRow(3, "@finanzas", "dQw4w9WgXcQ", "Mercados hoy",
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "Un resumen.",
			"2026-08-31", time.Now(), 1))

	summaries, err := store.GetSummariesForUser("12345", 50)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "@finanzas", summaries[0].ChannelHandle)
	assert.NoError(t, mock.ExpectationsWereMet())
}
