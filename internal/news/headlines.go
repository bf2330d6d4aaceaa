// Package news aggregates financial headlines from public RSS feeds for the
// daily digest.
package news

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// perFeedLimit caps how many entries each source contributes.
const perFeedLimit = 3

var defaultFeeds = map[string]string{
	"Expansión":     "https://www.expansion.com/rss/portada.xml",
	"El Economista": "https://www.eleconomista.es/rss/rss-economia.xml",
	"MarketWatch":   "https://feeds.marketwatch.com/marketwatch/topstories/",
	"BBC Business":  "https://feeds.bbci.co.uk/news/business/rss.xml",
	"CoinTelegraph": "https://cointelegraph.com/rss",
}

// Headline is one aggregated news entry.
type Headline struct {
	Title     string
	Link      string
	Source    string
	Published time.Time
}

// Aggregator fetches headlines from a fixed set of financial news feeds.
type Aggregator struct {
	parser *gofeed.Parser
	feeds  map[string]string
}

func NewAggregator() *Aggregator {
	return &Aggregator{parser: gofeed.NewParser(), feeds: defaultFeeds}
}

// NewAggregatorWithFeeds is used by tests.
func NewAggregatorWithFeeds(feeds map[string]string) *Aggregator {
	return &Aggregator{parser: gofeed.NewParser(), feeds: feeds}
}

// TopHeadlines returns up to max headlines across all sources, newest
// first. A source that fails is logged and skipped; the digest still goes
// out with whatever the other sources produced.
func (a *Aggregator) TopHeadlines(ctx context.Context, max int) []Headline {
	var all []Headline

	for source, feedURL := range a.feeds {
		feed, err := a.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			log.Printf("Error fetching news from %s: %v", source, err)
			continue
		}

		for i, item := range feed.Items {
			if i >= perFeedLimit {
				break
			}
			h := Headline{Title: item.Title, Link: item.Link, Source: source}
			if item.PublishedParsed != nil {
				h.Published = *item.PublishedParsed
			}
			all = append(all, h)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Published.After(all[j].Published)
	})
	if len(all) > max {
		all = all[:max]
	}
	return all
}

// FormatHeadlines renders headlines as a block to append to the digest
// message. Returns "" when there is nothing to show.
func FormatHeadlines(headlines []Headline) string {
	if len(headlines) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("📰 Titulares:\n")
	for _, h := range headlines {
		fmt.Fprintf(&b, "• %s (%s)\n%s\n", h.Title, h.Source, h.Link)
	}
	return strings.TrimRight(b.String(), "\n")
}
