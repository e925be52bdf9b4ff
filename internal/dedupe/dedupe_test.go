package dedupe

import (
	"strings"
	"testing"
	"time"

	"github.com/galenhq/rocketscreener/pkg/models"
)

func newsItem(title, url, site string, tickers ...string) models.NewsItem {
	return models.NewsItem{
		Title:       title,
		Text:        "body",
		URL:         url,
		Site:        site,
		PublishedAt: time.Now().UTC(),
		Tickers:     tickers,
	}
}

// --- NormalizeTitle ---

func TestNormalizeTitleLowercase(t *testing.T) {
	if got := NormalizeTitle("Hello World"); got != "hello world" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeTitlePunctuation(t *testing.T) {
	got := NormalizeTitle("Hello, World!")
	if strings.ContainsAny(got, ",!") {
		t.Errorf("punctuation not stripped: %q", got)
	}
}

func TestNormalizeTitleStopWords(t *testing.T) {
	got := NormalizeTitle("The quick brown fox")
	for _, w := range strings.Fields(got) {
		if w == "the" {
			t.Errorf("stop word survived: %q", got)
		}
	}
}

func TestNormalizeTitleCollapsesWhitespace(t *testing.T) {
	if got := NormalizeTitle("Fed   raises\trates"); got != "fed raises rates" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeTitleKeepsCJK(t *testing.T) {
	got := NormalizeTitle("輝達財報超乎預期")
	if got == "" {
		t.Fatal("CJK title normalized to empty string")
	}
	if !strings.Contains(got, "輝達") {
		t.Errorf("CJK characters stripped: %q", got)
	}
}

// --- TitleSimilarity ---

func TestTitleSimilarityIdentical(t *testing.T) {
	if sim := TitleSimilarity("Hello World", "Hello World"); sim != 1.0 {
		t.Errorf("identical titles: got %.4f, want 1.0", sim)
	}
}

func TestTitleSimilaritySimilar(t *testing.T) {
	sim := TitleSimilarity(
		"NVIDIA reports strong earnings",
		"NVIDIA reports strong quarterly earnings",
	)
	if sim <= 0.7 {
		t.Errorf("similar titles: got %.4f, want > 0.7", sim)
	}
}

func TestTitleSimilarityDifferent(t *testing.T) {
	sim := TitleSimilarity(
		"NVIDIA reports earnings",
		"Apple launches new iPhone",
	)
	if sim >= 0.5 {
		t.Errorf("unrelated titles: got %.4f, want < 0.5", sim)
	}
}

func TestTitleSimilarityUnrelatedCJK(t *testing.T) {
	sim := TitleSimilarity("輝達財報超乎預期", "聯準會宣布升息一碼")
	if sim >= 0.5 {
		t.Errorf("unrelated CJK titles: got %.4f, want < 0.5", sim)
	}
}

func TestTitleSimilaritySymmetric(t *testing.T) {
	a, b := "Fed raises interest rates", "Interest rates raised by Fed"
	if TitleSimilarity(a, b) != TitleSimilarity(b, a) {
		t.Error("similarity should be symmetric")
	}
}

// --- Deduplicate ---

func TestDeduplicateEmpty(t *testing.T) {
	if got := Deduplicate(nil, 0.7); len(got) != 0 {
		t.Errorf("expected empty result, got %d events", len(got))
	}
}

func TestDeduplicateSameURL(t *testing.T) {
	items := []models.NewsItem{
		newsItem("Title 1", "https://example.com/1", "Site A", "AAPL"),
		newsItem("Title 2", "https://example.com/1", "Site B", "AAPL"),
	}
	events := Deduplicate(items, 0.7)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Headline != "Title 1" {
		t.Errorf("first occurrence should win: got %q", events[0].Headline)
	}
}

func TestDeduplicateMergesSimilarTitles(t *testing.T) {
	items := []models.NewsItem{
		newsItem("NVIDIA beats earnings expectations", "https://example.com/1", "Site A", "NVDA"),
		newsItem("NVIDIA beats quarterly earnings expectations", "https://example.com/2", "Site B", "NVDA"),
	}
	events := Deduplicate(items, 0.7)
	if len(events) != 1 {
		t.Fatalf("expected 1 merged event, got %d", len(events))
	}
	ev := events[0]
	if len(ev.SourceURLs) != 2 {
		t.Errorf("expected 2 source URLs, got %v", ev.SourceURLs)
	}
	if len(ev.Sources) != 2 {
		t.Errorf("expected 2 sources, got %v", ev.Sources)
	}
	if len(ev.Items) != 2 {
		t.Errorf("expected both raw items recorded, got %d", len(ev.Items))
	}
	if len(ev.Tickers) != 1 || ev.Tickers[0] != "NVDA" {
		t.Errorf("tickers should stay unique: %v", ev.Tickers)
	}
}

func TestDeduplicateKeepsDissimilar(t *testing.T) {
	items := []models.NewsItem{
		newsItem("Fed raises rates", "https://example.com/1", "reuters.com"),
		newsItem("Apple launches new product", "https://example.com/2", "prnewswire.com", "AAPL"),
	}
	events := Deduplicate(items, 0.7)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
}

func TestDeduplicateKeepsDissimilarCJK(t *testing.T) {
	items := []models.NewsItem{
		newsItem("輝達財報超乎預期", "https://example.com.tw/1", "cnyes.com", "NVDA"),
		newsItem("聯準會宣布升息一碼", "https://example.com.tw/2", "cnyes.com"),
	}
	events := Deduplicate(items, 0.7)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
}

// Deduplicating an already-deduplicated list is a no-op.
func TestDeduplicateIdempotent(t *testing.T) {
	items := []models.NewsItem{
		newsItem("Fed raises interest rates again", "https://example.com/1", "reuters.com"),
		newsItem("Apple unveils flagship handset", "https://example.com/2", "bloomberg.com", "AAPL"),
		newsItem("Crude oil tumbles on supply glut", "https://example.com/3", "wsj.com", "XOM"),
	}
	first := Deduplicate(items, 0.7)
	if len(first) != 3 {
		t.Fatalf("setup: expected 3 events, got %d", len(first))
	}

	again := make([]models.NewsItem, 0, len(first))
	for _, ev := range first {
		again = append(again, ev.Items[0])
	}
	second := Deduplicate(again, 0.7)
	if len(second) != len(first) {
		t.Errorf("re-deduplication changed count: %d -> %d", len(first), len(second))
	}
	for i := range second {
		if second[i].Headline != first[i].Headline {
			t.Errorf("event %d headline changed: %q -> %q", i, first[i].Headline, second[i].Headline)
		}
	}
}

// Same-URL merge plus a distinct PR-wire item.
func TestDeduplicateScenario(t *testing.T) {
	items := []models.NewsItem{
		newsItem("Fed raises rates", "https://example.com/a", "reuters.com"),
		newsItem("Fed raises rates duplicate", "https://example.com/a", "reuters.com"),
		newsItem("Apple launches new product", "https://example.com/b", "prnewswire.com", "AAPL"),
	}
	events := Deduplicate(items, 0.7)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
}

// --- FilterByUniverse ---

func universeOf(tickers ...string) map[string]struct{} {
	u := make(map[string]struct{}, len(tickers))
	for _, t := range tickers {
		u[t] = struct{}{}
	}
	return u
}

func TestFilterByUniverseKeepsIntersection(t *testing.T) {
	events := []*models.Event{{
		Headline:   "Test",
		SourceURLs: []string{"https://example.com"},
		Sources:    []string{"Site"},
		Tickers:    []string{"AAPL", "UNKNOWN"},
	}}
	got := FilterByUniverse(events, universeOf("AAPL", "MSFT"))
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if len(got[0].Tickers) != 1 || got[0].Tickers[0] != "AAPL" {
		t.Errorf("expected [AAPL], got %v", got[0].Tickers)
	}
}

func TestFilterByUniverseDropsNonUniverse(t *testing.T) {
	events := []*models.Event{{
		Headline:   "Test",
		SourceURLs: []string{"https://example.com"},
		Sources:    []string{"Site"},
		Tickers:    []string{"UNKNOWN1", "UNKNOWN2"},
	}}
	if got := FilterByUniverse(events, universeOf("AAPL", "MSFT")); len(got) != 0 {
		t.Errorf("expected 0 events, got %d", len(got))
	}
}

func TestFilterByUniverseNeverAdds(t *testing.T) {
	events := []*models.Event{{
		Headline:   "Test",
		SourceURLs: []string{"https://example.com"},
		Sources:    []string{"Site"},
		Tickers:    []string{"NVDA"},
	}}
	got := FilterByUniverse(events, universeOf("NVDA", "AAPL", "MSFT"))
	if len(got[0].Tickers) != 1 {
		t.Errorf("filter must not add tickers: %v", got[0].Tickers)
	}
}
