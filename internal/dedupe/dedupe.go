// Package dedupe collapses near-duplicate news coverage into canonical
// events: exact-URL dedup first, then fuzzy title merging. Multiple outlets
// covering the same story end up as one event with all sources attached.
package dedupe

import (
	"regexp"
	"strings"
	"time"

	"github.com/galenhq/rocketscreener/pkg/models"
)

// DefaultSimilarityThreshold is the minimum title similarity at which two
// items are considered the same story.
const DefaultSimilarityThreshold = 0.7

var (
	// Letters and digits from any script count as word characters;
	// CJK headlines must survive normalization.
	nonWordRe    = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	// Articles, prepositions, and conjunctions that carry no signal for
	// title comparison.
	stopWords = map[string]struct{}{
		"the": {}, "a": {}, "an": {}, "in": {}, "on": {}, "at": {},
		"to": {}, "for": {}, "of": {}, "and": {}, "or": {},
	}
)

// NormalizeTitle canonicalizes a headline for comparison: lowercase, strip
// punctuation, collapse whitespace, drop stop words.
func NormalizeTitle(title string) string {
	title = strings.ToLower(title)
	title = nonWordRe.ReplaceAllString(title, " ")
	title = strings.TrimSpace(whitespaceRe.ReplaceAllString(title, " "))

	words := strings.Fields(title)
	kept := words[:0]
	for _, w := range words {
		if _, noise := stopWords[w]; !noise {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// TitleSimilarity returns a symmetric similarity ratio in [0,1] between two
// headlines, computed as 2*LCS/(len(a)+len(b)) over the runes of the
// normalized titles. Identical normalized titles score 1.0; disjoint ones
// score near 0.
func TitleSimilarity(a, b string) float64 {
	na := []rune(NormalizeTitle(a))
	nb := []rune(NormalizeTitle(b))
	if len(na) == 0 && len(nb) == 0 {
		return 1.0
	}
	if len(na) == 0 || len(nb) == 0 {
		return 0.0
	}
	lcs := lcsLength(na, nb)
	return 2.0 * float64(lcs) / float64(len(na)+len(nb))
}

// lcsLength computes the longest-common-subsequence length with a rolling
// one-row DP table.
func lcsLength(a, b []rune) int {
	if len(b) > len(a) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// Deduplicate merges raw news items into canonical events.
//
// Pass one drops repeated URLs (first occurrence wins, input order
// preserved). Pass two walks the remaining items in order and merges each
// into the first existing event whose headline similarity meets the
// threshold; first match wins rather than best match, which keeps the pass
// O(n*m) and deterministic under input order. Items matching no event start
// a new one.
func Deduplicate(items []models.NewsItem, threshold float64) []*models.Event {
	if len(items) == 0 {
		return nil
	}
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultSimilarityThreshold
	}

	seen := make(map[string]struct{}, len(items))
	unique := make([]models.NewsItem, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.URL]; dup {
			continue
		}
		seen[item.URL] = struct{}{}
		unique = append(unique, item)
	}

	var events []*models.Event
	for _, item := range unique {
		merged := false
		for _, event := range events {
			if TitleSimilarity(item.Title, event.Headline) < threshold {
				continue
			}
			mergeInto(event, item)
			merged = true
			break
		}
		if !merged {
			events = append(events, newEvent(item))
		}
	}
	return events
}

func newEvent(item models.NewsItem) *models.Event {
	return &models.Event{
		Headline:    item.Title,
		Text:        item.Text,
		SourceURLs:  []string{item.URL},
		Sources:     []string{item.Site},
		Tickers:     append([]string(nil), item.Tickers...),
		PublishedAt: item.PublishedAt.UTC().Format(time.RFC3339),
		Items:       []models.NewsItem{item},
	}
}

func mergeInto(event *models.Event, item models.NewsItem) {
	if !contains(event.SourceURLs, item.URL) {
		event.SourceURLs = append(event.SourceURLs, item.URL)
	}
	if !contains(event.Sources, item.Site) {
		event.Sources = append(event.Sources, item.Site)
	}
	for _, ticker := range item.Tickers {
		if !contains(event.Tickers, ticker) {
			event.Tickers = append(event.Tickers, ticker)
		}
	}
	event.Items = append(event.Items, item)
}

// FilterByUniverse keeps only events with at least one ticker in the
// universe and restricts each kept event's tickers to that intersection.
// Tickers are never added, and ordering within an event is preserved.
func FilterByUniverse(events []*models.Event, universe map[string]struct{}) []*models.Event {
	var filtered []*models.Event
	for _, event := range events {
		var matching []string
		for _, ticker := range event.Tickers {
			if _, ok := universe[ticker]; ok {
				matching = append(matching, ticker)
			}
		}
		if len(matching) == 0 {
			continue
		}
		event.Tickers = matching
		filtered = append(filtered, event)
	}
	return filtered
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
