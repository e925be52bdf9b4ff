// Package models defines the core data structures used throughout Rocket Screener.
package models

import "time"

// NewsItem is a raw news record as delivered by an ingestion source.
type NewsItem struct {
	Title       string    `json:"title"`
	Text        string    `json:"text,omitempty"`
	URL         string    `json:"url"`
	Site        string    `json:"site"` // publishing site, e.g. "reuters.com"
	PublishedAt time.Time `json:"published_at"`
	Tickers     []string  `json:"tickers,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
}

// Event is a canonical, deduplicated news story with merged sources.
// SourceURLs and Sources preserve insertion order and contain no duplicates;
// every event holds at least one source URL and one original item.
type Event struct {
	Headline    string     `json:"headline"`
	Text        string     `json:"text,omitempty"`
	SourceURLs  []string   `json:"source_urls"`
	Sources     []string   `json:"sources"`
	Tickers     []string   `json:"tickers,omitempty"`
	PublishedAt string     `json:"published_at"` // ISO timestamp of the first-seen item
	Items       []NewsItem `json:"-"`            // all merged raw items, for audit
}

// PrimaryURL returns the first-seen source URL for the event.
func (e *Event) PrimaryURL() string {
	if len(e.SourceURLs) == 0 {
		return ""
	}
	return e.SourceURLs[0]
}
