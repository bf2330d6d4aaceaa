// Package orchestrator runs the scheduled summary pipeline: for every active
// channel with subscribers, inside its daily window, fetch today's video,
// summarize it, deliver to subscribers and record the outcome.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"tubebrief/internal/db"
	"tubebrief/internal/models"
	"tubebrief/internal/videosource"
)

// VideoFetcher is the slice of the video source the orchestrator needs.
type VideoFetcher interface {
	VideoWithTranscript(ctx context.Context, channelRef string, languages []string) (*videosource.Video, error)
}

// Summarizer generates a summary from a transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, title, channelName string) (string, error)
}

// Sender delivers a message to a set of chat ids.
type Sender interface {
	SendToMany(text string, chatIDs []string) map[string]bool
}

// Orchestrator coordinates one polling cycle. All state lives in the store;
// re-running a cycle is safe at any time.
type Orchestrator struct {
	store      *db.Store
	source     VideoFetcher
	summarizer Summarizer
	sender     Sender
	loc        *time.Location

	// now is swapped in tests to pin the clock.
	now func() time.Time
}

func New(store *db.Store, source VideoFetcher, summarizer Summarizer, sender Sender, loc *time.Location) *Orchestrator {
	return &Orchestrator{
		store:      store,
		source:     source,
		summarizer: summarizer,
		sender:     sender,
		loc:        loc,
		now:        time.Now,
	}
}

// CheckAllChannels runs one cycle over every active channel. A failing
// channel is logged and skipped; it never aborts the rest of the cycle.
func (o *Orchestrator) CheckAllChannels(ctx context.Context) error {
	channels, err := o.store.GetAllChannels(true)
	if err != nil {
		return fmt.Errorf("failed to load channels: %w", err)
	}

	for _, ch := range channels {
		if err := o.ProcessChannel(ctx, ch); err != nil {
			log.Printf("Error processing channel %s: %v", ch.Handle, err)
		}
	}
	return nil
}

// ProcessChannel runs the pipeline for a single channel: subscribers →
// window → already-processed → fetch → summarize → deliver → record.
//
// A day with no video writes nothing. A video whose summary fails writes a
// failure row, which does not count as processed, so the channel is retried
// on later cycles until its window closes. That omission is the only retry
// mechanism.
func (o *Orchestrator) ProcessChannel(ctx context.Context, ch models.Channel) error {
	subscribers, err := o.store.GetChannelSubscribers(ch.Handle)
	if err != nil {
		return fmt.Errorf("failed to load subscribers: %w", err)
	}
	if len(subscribers) == 0 {
		log.Printf("No users subscribed to %s, skipping", ch.Handle)
		return nil
	}

	now := o.now().In(o.loc)
	if !withinWindow(ch, now) {
		return nil
	}

	today := now.Format("2006-01-02")
	processed, err := o.store.HasChannelBeenProcessed(ch.Handle, today)
	if err != nil {
		return fmt.Errorf("failed to check processed state: %w", err)
	}
	if processed {
		log.Printf("%s already processed today", ch.Handle)
		return nil
	}

	ref := ch.Handle
	if ch.YoutubeChannelID != nil && *ch.YoutubeChannelID != "" {
		ref = *ch.YoutubeChannelID
	}

	log.Printf("Checking %s for today's video...", ch.Handle)
	video, err := o.source.VideoWithTranscript(ctx, ref, []string{ch.Language})
	if err != nil {
		return fmt.Errorf("video fetch failed: %w", err)
	}
	if video == nil || video.Transcript == "" {
		log.Printf("No video today from %s", ch.Handle)
		return nil
	}

	summary, err := o.summarizer.Summarize(ctx, video.Transcript, video.Title, video.ChannelTitle)
	if err != nil {
		log.Printf("Error generating summary for %s: %v", ch.Handle, err)
		// The failure row keeps the attempt visible without marking the
		// channel as done for today.
		return o.store.AddSummary(db.SummaryEntry{
			ChannelHandle: ch.Handle,
			VideoID:       video.ID,
			VideoTitle:    video.Title,
			VideoURL:      video.URL,
			VideoDate:     today,
			Success:       false,
		})
	}

	message := formatSummaryMessage(channelTitle(ch, video), video.Title, summary, video.URL)
	results := o.sender.SendToMany(message, subscribers)
	for chatID, ok := range results {
		if !ok {
			log.Printf("Failed to deliver %s summary to %s", ch.Handle, chatID)
		}
	}

	if err := o.store.AddSummary(db.SummaryEntry{
		ChannelHandle: ch.Handle,
		VideoID:       video.ID,
		VideoTitle:    video.Title,
		VideoURL:      video.URL,
		SummaryText:   summary,
		VideoDate:     today,
		Success:       true,
	}); err != nil {
		return fmt.Errorf("failed to record summary: %w", err)
	}

	log.Printf("Summary sent and saved for %s", ch.Handle)
	return nil
}

// withinWindow reports whether now's time of day falls in the channel's
// half-open window [start, end), measured in minutes since midnight.
func withinWindow(ch models.Channel, now time.Time) bool {
	current := now.Hour()*60 + now.Minute()
	start := ch.CheckStartHour*60 + ch.CheckStartMinute
	end := ch.CheckEndHour * 60
	return current >= start && current < end
}

func channelTitle(ch models.Channel, video *videosource.Video) string {
	if video.ChannelTitle != "" {
		return video.ChannelTitle
	}
	if ch.Name != nil && *ch.Name != "" {
		return *ch.Name
	}
	return ch.Handle
}

func formatSummaryMessage(channel, title, summary, url string) string {
	return fmt.Sprintf("📺 %s\n\n%s\n\n%s\n\n%s", channel, title, summary, url)
}
