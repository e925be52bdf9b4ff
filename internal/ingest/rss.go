package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/galenhq/rocketscreener/internal/config"
	"github.com/galenhq/rocketscreener/internal/infra"
	"github.com/galenhq/rocketscreener/pkg/models"
)

// DefaultFeeds lists the supplementary market-news RSS feeds used when the
// config does not name its own.
var DefaultFeeds = []config.RSSFeed{
	{Name: "CNBC Markets", URL: "https://www.cnbc.com/id/20910258/device/rss/rss.html"},
	{Name: "MarketWatch Top Stories", URL: "https://feeds.content.dowjones.io/public/rss/mw_topstories"},
	{Name: "Yahoo Finance", URL: "https://finance.yahoo.com/news/rssindex"},
}

// RSSSource reads supplementary general-market news from RSS feeds.
type RSSSource struct {
	feeds   []config.RSSFeed
	parser  *gofeed.Parser
	limiter *infra.RateLimiter
	now     func() time.Time
}

// NewRSSSource builds a source over the given feeds; an empty list falls
// back to DefaultFeeds.
func NewRSSSource(feeds []config.RSSFeed) *RSSSource {
	if len(feeds) == 0 {
		feeds = DefaultFeeds
	}
	return &RSSSource{
		feeds:   feeds,
		parser:  gofeed.NewParser(),
		limiter: infra.NewRateLimiter(2, time.Second),
		now:     time.Now,
	}
}

// Fetch pulls every configured feed and returns the combined items. A feed
// that fails to parse is skipped; an error is returned only when every
// feed fails.
func (s *RSSSource) Fetch(ctx context.Context, perFeedLimit int) ([]models.NewsItem, error) {
	var items []models.NewsItem
	var firstErr error

	for _, feed := range s.feeds {
		fetched, err := s.fetchFeed(ctx, feed, perFeedLimit)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		items = append(items, fetched...)
	}

	if len(items) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return items, nil
}

func (s *RSSSource) fetchFeed(ctx context.Context, src config.RSSFeed, limit int) ([]models.NewsItem, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	feed, err := s.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse RSS %s: %w", src.Name, err)
	}

	entries := feed.Items
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	items := make([]models.NewsItem, 0, len(entries))
	for _, entry := range entries {
		if entry.Title == "" || entry.Link == "" {
			continue
		}
		item := models.NewsItem{
			Title:       entry.Title,
			Text:        flattenHTML(entry.Description),
			URL:         entry.Link,
			Site:        src.Name,
			PublishedAt: s.now(),
		}
		if entry.PublishedParsed != nil {
			item.PublishedAt = *entry.PublishedParsed
		}
		if entry.Image != nil {
			item.ImageURL = entry.Image.URL
		}
		items = append(items, item)
	}
	return items, nil
}

// flattenHTML strips markup from a feed summary using goquery.
func flattenHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
