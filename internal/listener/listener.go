// Package listener implements the interactive flow: users register through a
// password handshake, then submit video links and get summaries back,
// cached per video id.
package listener

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tubebrief/internal/db"
	"tubebrief/internal/videosource"
)

// VideoLookup is the slice of the API-based video source the listener needs.
// Link submissions carry a bare video id, which only the API strategy can
// resolve to metadata.
type VideoLookup interface {
	VideoByID(ctx context.Context, videoID string) (*videosource.VideoInfo, error)
	Transcript(ctx context.Context, videoID string, languages []string) (string, error)
}

// Summarizer generates a summary from a transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, title, channelName string) (string, error)
}

// Sender delivers a message to one chat.
type Sender interface {
	SendMessage(text, chatID string) bool
}

// Listener consumes the bot's update stream. It keeps only two pieces of
// in-memory state: the set of chats waiting to submit the password, and the
// last seen update id as a guard against redelivery.
type Listener struct {
	store      *db.Store
	videos     VideoLookup
	summarizer Summarizer
	sender     Sender
	password   string
	languages  []string
	loc        *time.Location

	pending      map[int64]bool
	lastUpdateID int
}

func New(store *db.Store, videos VideoLookup, summarizer Summarizer, sender Sender, password string, loc *time.Location) *Listener {
	return &Listener{
		store:        store,
		videos:       videos,
		summarizer:   summarizer,
		sender:       sender,
		password:     password,
		languages:    []string{"es"},
		loc:          loc,
		pending:      make(map[int64]bool),
		lastUpdateID: -1,
	}
}

// Run consumes updates until the context is cancelled or the channel
// closes.
func (l *Listener) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	log.Println("Listener started, waiting for messages...")
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			l.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate processes one inbound update.
func (l *Listener) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	// The platform may redeliver updates; ids are monotonically increasing.
	if l.lastUpdateID >= 0 && update.UpdateID <= l.lastUpdateID {
		return
	}
	l.lastUpdateID = update.UpdateID

	message := update.Message
	chatID := strconv.FormatInt(message.Chat.ID, 10)
	username := senderName(message)
	text := message.Text

	if l.pending[message.Chat.ID] {
		l.handlePasswordAttempt(message.Chat.ID, chatID, username, text)
		return
	}

	authorized, err := l.store.IsUserAuthorized(chatID)
	if err != nil {
		log.Printf("Error checking authorization for %s: %v", chatID, err)
		return
	}
	if !authorized {
		log.Printf("Unauthorized user %s (%s), starting registration", username, chatID)
		l.pending[message.Chat.ID] = true
		l.sender.SendMessage(fmt.Sprintf(
			"👋 Hi %s!\n\nYou are not yet registered to use this bot.\n\n🔐 Please send the password to register.",
			username), chatID)
		return
	}

	log.Printf("New message from %s: %s", username, text)

	if strings.Contains(text, "youtube.com") || strings.Contains(text, "youtu.be") {
		videoID, ok := videosource.ExtractVideoID(text)
		if !ok {
			l.sender.SendMessage("❌ Could not extract video ID from URL", chatID)
			return
		}
		l.ProcessVideoLink(ctx, videoID, chatID)
		return
	}

	l.sender.SendMessage("ℹ️ Please send me a YouTube video URL to get a summary.", chatID)
}

// handlePasswordAttempt resolves a pending registration. One attempt per
// pending state: a wrong password clears it and the user has to re-trigger
// registration by sending another message.
func (l *Listener) handlePasswordAttempt(numericChatID int64, chatID, username, text string) {
	delete(l.pending, numericChatID)

	if l.password == "" {
		log.Println("BOT_PASSWORD is not configured")
		l.sender.SendMessage("❌ Registration is not configured. Please contact the admin.", chatID)
		return
	}

	if strings.TrimSpace(text) != l.password {
		log.Printf("Incorrect password from %s (%s)", username, chatID)
		l.sender.SendMessage("❌ Incorrect password. Send another message to try again.", chatID)
		return
	}

	if _, err := l.store.AddUser(chatID, username, true); err != nil {
		log.Printf("Failed to register user %s: %v", chatID, err)
		l.sender.SendMessage("❌ Registration failed. Please try again later.", chatID)
		return
	}

	log.Printf("Registered new user: %s (%s)", username, chatID)
	l.sender.SendMessage(fmt.Sprintf(
		"✅ Welcome %s! You are now registered.\n\nSend me a YouTube URL to get a summary.",
		username), chatID)
}

// ProcessVideoLink answers a submitted link, from the cache when the video
// was ever summarized before, otherwise by running the full pipeline keyed
// by video id.
func (l *Listener) ProcessVideoLink(ctx context.Context, videoID, chatID string) {
	processed, err := l.store.HasVideoBeenProcessed(videoID)
	if err != nil {
		log.Printf("Error checking video %s: %v", videoID, err)
		l.sender.SendMessage("❌ Something went wrong, please try again later.", chatID)
		return
	}

	if processed {
		summary, err := l.store.GetSummaryByVideoID(videoID)
		if err != nil {
			log.Printf("Error loading cached summary for %s: %v", videoID, err)
		}
		if summary != nil {
			log.Printf("Video %s already processed, serving cached summary", videoID)
			l.sender.SendMessage("📂 Found existing summary, retrieving...", chatID)
			l.sender.SendMessage(fmt.Sprintf("📺 %s\n\n%s\n\n%s",
				summary.VideoTitle, summary.SummaryText, summary.VideoURL), chatID)
			return
		}
	}

	log.Printf("Processing new video id: %s", videoID)
	l.sender.SendMessage("🔍 Processing your YouTube link...", chatID)

	info, err := l.videos.VideoByID(ctx, videoID)
	if err != nil || info == nil {
		log.Printf("Could not retrieve video info for %s: %v", videoID, err)
		l.sender.SendMessage("❌ Could not retrieve video information", chatID)
		return
	}

	transcript, err := l.videos.Transcript(ctx, videoID, l.languages)
	if err != nil {
		log.Printf("Transcript fetch failed for %s: %v", videoID, err)
	}
	if transcript == "" {
		l.sender.SendMessage("❌ No transcript available for this video", chatID)
		return
	}

	summaryText, err := l.summarizer.Summarize(ctx, transcript, info.Title, info.ChannelTitle)
	if err != nil {
		log.Printf("Failed to generate summary for %s: %v", videoID, err)
		l.sender.SendMessage("❌ Failed to generate summary", chatID)
		return
	}

	videoURL := videosource.WatchURL(videoID)
	handle := info.ChannelTitle
	if handle == "" {
		handle = "manual"
	}

	if err := l.store.AddSummary(db.SummaryEntry{
		ChannelHandle: handle,
		VideoID:       videoID,
		VideoTitle:    info.Title,
		VideoURL:      videoURL,
		SummaryText:   summaryText,
		VideoDate:     time.Now().In(l.loc).Format("2006-01-02"),
		Success:       true,
	}); err != nil {
		log.Printf("Failed to save summary for %s: %v", videoID, err)
	}

	l.sender.SendMessage(fmt.Sprintf("📺 %s\n\n%s\n\n%s", info.Title, summaryText, videoURL), chatID)
}

func senderName(message *tgbotapi.Message) string {
	if message.From != nil {
		if message.From.UserName != "" {
			return message.From.UserName
		}
		if message.From.FirstName != "" {
			return message.From.FirstName
		}
	}
	return "Unknown"
}
