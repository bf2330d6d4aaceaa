package db

// Boolean-like flags are 0/1 integers on both backends so queries like
// `active = 1` behave identically. Dates in the summaries log are stored as
// YYYY-MM-DD strings; the calendar day is computed by the caller in the
// configured timezone.

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		username TEXT,
		wants_news SMALLINT NOT NULL DEFAULT 1,
		active SMALLINT NOT NULL DEFAULT 1,
		rss_uuid TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS channels (
		channel_id SERIAL PRIMARY KEY,
		channel_handle TEXT UNIQUE NOT NULL,
		channel_name TEXT,
		youtube_channel_id TEXT,
		language TEXT NOT NULL DEFAULT 'es',
		check_start_hour INTEGER NOT NULL DEFAULT 10,
		check_start_minute INTEGER NOT NULL DEFAULT 0,
		check_end_hour INTEGER NOT NULL DEFAULT 14,
		check_interval_minutes INTEGER NOT NULL DEFAULT 5,
		active SMALLINT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS user_channels (
		user_id TEXT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		channel_id INTEGER NOT NULL REFERENCES channels(channel_id) ON DELETE CASCADE,
		subscribed_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, channel_id)
	)`,
	`CREATE TABLE IF NOT EXISTS summaries (
		summary_id BIGSERIAL PRIMARY KEY,
		channel_handle TEXT NOT NULL,
		video_id TEXT,
		video_title TEXT NOT NULL DEFAULT '',
		video_url TEXT NOT NULL DEFAULT '',
		summary_text TEXT NOT NULL DEFAULT '',
		video_date TEXT NOT NULL,
		processed_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		success SMALLINT NOT NULL DEFAULT 1
	)`,
	`CREATE INDEX IF NOT EXISTS idx_summaries_date ON summaries(video_date)`,
	`CREATE INDEX IF NOT EXISTS idx_summaries_channel ON summaries(channel_handle)`,
	`CREATE INDEX IF NOT EXISTS idx_summaries_video ON summaries(video_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		username TEXT,
		wants_news INTEGER NOT NULL DEFAULT 1,
		active INTEGER NOT NULL DEFAULT 1,
		rss_uuid TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS channels (
		channel_id INTEGER PRIMARY KEY AUTOINCREMENT,
		channel_handle TEXT UNIQUE NOT NULL,
		channel_name TEXT,
		youtube_channel_id TEXT,
		language TEXT NOT NULL DEFAULT 'es',
		check_start_hour INTEGER NOT NULL DEFAULT 10,
		check_start_minute INTEGER NOT NULL DEFAULT 0,
		check_end_hour INTEGER NOT NULL DEFAULT 14,
		check_interval_minutes INTEGER NOT NULL DEFAULT 5,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS user_channels (
		user_id TEXT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		channel_id INTEGER NOT NULL REFERENCES channels(channel_id) ON DELETE CASCADE,
		subscribed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, channel_id)
	)`,
	`CREATE TABLE IF NOT EXISTS summaries (
		summary_id INTEGER PRIMARY KEY AUTOINCREMENT,
		channel_handle TEXT NOT NULL,
		video_id TEXT,
		video_title TEXT NOT NULL DEFAULT '',
		video_url TEXT NOT NULL DEFAULT '',
		summary_text TEXT NOT NULL DEFAULT '',
		video_date TEXT NOT NULL,
		processed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		success INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE INDEX IF NOT EXISTS idx_summaries_date ON summaries(video_date)`,
	`CREATE INDEX IF NOT EXISTS idx_summaries_channel ON summaries(channel_handle)`,
	`CREATE INDEX IF NOT EXISTS idx_summaries_video ON summaries(video_id)`,
}
