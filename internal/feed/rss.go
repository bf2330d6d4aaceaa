package feed

import (
	"fmt"
	"time"

	"github.com/eduncan911/podcast"

	"tubebrief/internal/models"
)

// GenerateRSS renders a user's recent summaries as an RSS feed, so summaries
// can be followed from a feed reader as well as from the chat.
func GenerateRSS(user *models.User, summaries []models.Summary, baseURL string) (string, error) {
	now := time.Now()
	p := podcast.New(
		fmt.Sprintf("%s's video summaries", user.Name()),
		fmt.Sprintf("%s/rss/%s", baseURL, user.RSSUUID),
		"Daily AI summaries of subscribed YouTube channels.",
		&user.CreatedAt, &now,
	)

	for i := range summaries {
		s := &summaries[i]
		item := podcast.Item{
			Title:       fmt.Sprintf("%s — %s", s.ChannelHandle, s.VideoTitle),
			Description: s.SummaryText,
			Link:        s.VideoURL,
			PubDate:     &s.ProcessedAt,
		}
		if _, err := p.AddItem(item); err != nil {
			return "", err
		}
	}

	return p.String(), nil
}
