package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/galenhq/rocketscreener/internal/config"
	"github.com/galenhq/rocketscreener/internal/hotstock"
	"github.com/galenhq/rocketscreener/internal/infra"
	"github.com/galenhq/rocketscreener/pkg/models"
)

type fakeNews struct {
	stock   []models.NewsItem
	general []models.NewsItem
	fail    bool
}

func (f *fakeNews) StockNews(_ context.Context, _ []string, _ int) ([]models.NewsItem, error) {
	if f.fail {
		return nil, errors.New("news down")
	}
	return f.stock, nil
}

func (f *fakeNews) GeneralNews(_ context.Context, _ int) ([]models.NewsItem, error) {
	if f.fail {
		return nil, errors.New("news down")
	}
	return f.general, nil
}

type fakeMarket struct {
	movers       models.Movers
	actives      []models.ActiveStock
	constituents []string
	failSP500    bool
	moversCalls  int
}

func (f *fakeMarket) Movers(_ context.Context) (models.Movers, error) {
	f.moversCalls++
	return f.movers, nil
}

func (f *fakeMarket) MostActive(_ context.Context) ([]models.ActiveStock, error) {
	return f.actives, nil
}

func (f *fakeMarket) SP500Constituents(_ context.Context) ([]string, error) {
	if f.failSP500 {
		return nil, errors.New("constituents down")
	}
	return f.constituents, nil
}

type fakeCompanyData struct{}

func (fakeCompanyData) CompanyProfile(_ context.Context, ticker string) (*models.CompanyProfile, error) {
	return &models.CompanyProfile{Ticker: ticker, Name: ticker + " Inc."}, nil
}

func (fakeCompanyData) FinancialRatios(_ context.Context, ticker string) (*models.FinancialRatios, error) {
	return &models.FinancialRatios{Ticker: ticker}, nil
}

func (fakeCompanyData) IncomeStatements(_ context.Context, ticker string) ([]models.IncomeStatement, error) {
	return []models.IncomeStatement{{Ticker: ticker, Date: "2025-01-01"}}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		News:      config.NewsConfig{StockLimit: 100, GeneralLimit: 50},
		Dedupe:    config.DedupeConfig{SimilarityThreshold: 0.7},
		Selection: config.SelectionConfig{MinCount: 5, MaxCount: 8, MaxLowQuality: 2},
		HotStock:  config.HotStockConfig{Workers: 4, Limit: 10, NewsTopN: 10},
		Universe: config.UniverseConfig{
			Seed:     []string{"AAPL", "NVDA", "TSLA", "MSFT", "AMZN", "META"},
			Priority: []string{"NVDA"},
		},
	}
}

func newsItem(title, url, site string, tickers ...string) models.NewsItem {
	return models.NewsItem{
		Title:       title,
		Text:        "body",
		URL:         url,
		Site:        site,
		PublishedAt: time.Now().Add(-2 * time.Hour),
		Tickers:     tickers,
	}
}

func testPipeline(news *fakeNews, market *fakeMarket) *Pipeline {
	enricher := hotstock.NewEnricher(fakeCompanyData{}, infra.NewCache(0), 4)
	return New(testConfig(), news, market, nil, enricher, nil)
}

func TestDailyBriefEndToEnd(t *testing.T) {
	news := &fakeNews{
		stock: []models.NewsItem{
			newsItem("NVIDIA beats earnings expectations", "https://example.com/1", "reuters.com", "NVDA"),
			newsItem("NVIDIA beats quarterly earnings expectations", "https://example.com/2", "cnbc.com", "NVDA"),
			newsItem("Apple unveils new handset lineup", "https://example.com/3", "wsj.com", "AAPL"),
			newsItem("Tesla deliveries miss estimates", "https://example.com/4", "bloomberg.com", "TSLA"),
			newsItem("Microsoft expands cloud region footprint", "https://example.com/5", "reuters.com", "MSFT"),
			newsItem("Amazon raises grocery delivery fees", "https://example.com/6", "cnbc.com", "AMZN"),
			newsItem("Meta tests paid verification tier", "https://example.com/7", "theverge.com", "META"),
		},
	}
	market := &fakeMarket{
		movers: models.Movers{
			Gainers: []models.Mover{{Ticker: "NVDA", ChangePct: 6.2}},
		},
		constituents: []string{"AAPL", "NVDA", "TSLA", "MSFT", "AMZN", "META", "JPM"},
	}

	brief, err := testPipeline(news, market).DailyBrief(context.Background())
	if err != nil {
		t.Fatalf("DailyBrief: %v", err)
	}
	if brief.TotalNews != 7 {
		t.Errorf("total news = %d, want 7", brief.TotalNews)
	}
	// The two NVIDIA headlines merge into one event.
	if brief.TotalEvents != 6 {
		t.Errorf("events = %d, want 6", brief.TotalEvents)
	}
	if len(brief.Slate) < 5 || len(brief.Slate) > 8 {
		t.Errorf("slate size = %d, want within [5,8]", len(brief.Slate))
	}
	if brief.PriceChanges["NVDA"] != 6.2 {
		t.Errorf("price changes = %v", brief.PriceChanges)
	}
	if _, ok := brief.Universe["JPM"]; !ok {
		t.Error("constituents missing from universe")
	}
	for i := 1; i < len(brief.Slate); i++ {
		if brief.Slate[i].Score > brief.Slate[i-1].Score {
			t.Fatal("slate not sorted by score")
		}
	}
}

func TestDailyBriefUniverseFallback(t *testing.T) {
	news := &fakeNews{
		stock: []models.NewsItem{
			newsItem("Apple unveils new handset lineup", "https://example.com/1", "wsj.com", "AAPL"),
			newsItem("JPMorgan posts record trading revenue", "https://example.com/2", "reuters.com", "JPM"),
		},
	}
	market := &fakeMarket{failSP500: true}

	brief, err := testPipeline(news, market).DailyBrief(context.Background())
	if err != nil {
		t.Fatalf("DailyBrief: %v", err)
	}
	if _, ok := brief.Universe["JPM"]; ok {
		t.Error("fallback universe must not include constituents")
	}
	// JPM event filtered out by the seed-only universe.
	if brief.TotalEvents != 1 {
		t.Errorf("events = %d, want 1", brief.TotalEvents)
	}
}

func TestDailyBriefAllSourcesDown(t *testing.T) {
	brief, err := testPipeline(&fakeNews{fail: true}, &fakeMarket{}).DailyBrief(context.Background())
	if err != nil {
		t.Fatalf("DailyBrief: %v", err)
	}
	if brief.TotalNews != 0 || len(brief.Slate) != 0 {
		t.Errorf("expected empty brief, got %d news, %d slate", brief.TotalNews, len(brief.Slate))
	}
}

func TestHotStockFromBrief(t *testing.T) {
	news := &fakeNews{}
	market := &fakeMarket{
		movers: models.Movers{
			Gainers: []models.Mover{{Ticker: "NVDA", ChangePct: 7.5}},
		},
		actives:      []models.ActiveStock{{Ticker: "TSLA", ChangePct: 1.0}},
		constituents: []string{"AAPL", "NVDA", "TSLA"},
	}
	p := testPipeline(news, market)

	brief := &Brief{
		Universe: map[string]struct{}{"AAPL": {}, "NVDA": {}, "TSLA": {}},
		Movers:   market.movers,
		Slate: []*models.ScoredEvent{
			{Event: &models.Event{Tickers: []string{"NVDA"}}},
			{Event: &models.Event{Tickers: []string{"NVDA", "AAPL"}}},
			{Event: &models.Event{Tickers: []string{"NVDA"}}},
		},
	}

	result, err := p.HotStock(context.Background(), brief)
	if err != nil {
		t.Fatalf("HotStock: %v", err)
	}
	if len(result.Candidates) == 0 {
		t.Fatal("no candidates scored")
	}
	if result.Pick == nil {
		t.Fatal("no pick")
	}
	if result.Pick.Ticker != "NVDA" {
		t.Errorf("pick = %s, want NVDA (mover + mentions + priority)", result.Pick.Ticker)
	}
	for _, c := range result.Candidates {
		if c.DataCompleteness < 0.3 {
			t.Errorf("candidate %s below completeness gate", c.Ticker)
		}
	}
}

// Movers are fetched once per run: DailyBrief carries them on the brief and
// HotStock reuses them rather than calling the API again.
func TestMoversFetchedOncePerRun(t *testing.T) {
	news := &fakeNews{
		stock: []models.NewsItem{
			newsItem("NVIDIA beats earnings expectations", "https://example.com/1", "reuters.com", "NVDA"),
		},
	}
	market := &fakeMarket{
		movers: models.Movers{
			Gainers: []models.Mover{{Ticker: "NVDA", ChangePct: 6.2}},
		},
		constituents: []string{"AAPL", "NVDA", "TSLA"},
	}
	p := testPipeline(news, market)

	brief, err := p.DailyBrief(context.Background())
	if err != nil {
		t.Fatalf("DailyBrief: %v", err)
	}
	result, err := p.HotStock(context.Background(), brief)
	if err != nil {
		t.Fatalf("HotStock: %v", err)
	}

	if market.moversCalls != 1 {
		t.Errorf("movers fetched %d times, want 1", market.moversCalls)
	}
	for _, c := range result.Candidates {
		if c.Ticker == "NVDA" && c.ChangePct != 6.2 {
			t.Errorf("mover change not carried into hot-stock scoring: %.1f", c.ChangePct)
		}
	}
}

func TestHotStockEmptyBrief(t *testing.T) {
	p := testPipeline(&fakeNews{}, &fakeMarket{})
	result, err := p.HotStock(context.Background(), &Brief{Universe: map[string]struct{}{}})
	if err != nil {
		t.Fatalf("HotStock: %v", err)
	}
	if result.Pick != nil {
		t.Errorf("pick = %+v, want nil", result.Pick)
	}
}

func TestHotStockNewsCounts(t *testing.T) {
	// Sanity check the mention counting feeding the pool.
	brief := &Brief{
		Universe: map[string]struct{}{"NVDA": {}},
		Slate: []*models.ScoredEvent{
			{Event: &models.Event{Tickers: []string{"NVDA"}}},
			{Event: &models.Event{Tickers: []string{"NVDA"}}},
			{Event: &models.Event{Tickers: []string{"NVDA"}}},
		},
	}
	p := testPipeline(&fakeNews{}, &fakeMarket{})
	result, err := p.HotStock(context.Background(), brief)
	if err != nil {
		t.Fatalf("HotStock: %v", err)
	}
	if len(result.Candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(result.Candidates))
	}
	if result.Candidates[0].NewsCount != 3 {
		t.Errorf("news count = %d, want 3", result.Candidates[0].NewsCount)
	}
	if want := fmt.Sprintf("heavy news coverage (%d stories)", 3); result.Candidates[0].Reason != want {
		t.Errorf("reason = %q, want %q", result.Candidates[0].Reason, want)
	}
}
