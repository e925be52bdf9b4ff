// Package pipeline orchestrates the daily signal run: news ingestion,
// deduplication, event scoring and slate selection, and the hot-stock
// candidate pick.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/galenhq/rocketscreener/internal/config"
	"github.com/galenhq/rocketscreener/internal/dedupe"
	"github.com/galenhq/rocketscreener/internal/hotstock"
	"github.com/galenhq/rocketscreener/internal/scoring"
	"github.com/galenhq/rocketscreener/pkg/models"
)

// NewsProvider supplies raw news items.
type NewsProvider interface {
	StockNews(ctx context.Context, tickers []string, limit int) ([]models.NewsItem, error)
	GeneralNews(ctx context.Context, limit int) ([]models.NewsItem, error)
}

// MarketProvider supplies market-wide price and membership data.
type MarketProvider interface {
	Movers(ctx context.Context) (models.Movers, error)
	MostActive(ctx context.Context) ([]models.ActiveStock, error)
	SP500Constituents(ctx context.Context) ([]string, error)
}

// FeedProvider supplies supplementary RSS items. Optional.
type FeedProvider interface {
	Fetch(ctx context.Context, perFeedLimit int) ([]models.NewsItem, error)
}

// Pipeline wires the ingestion collaborators to the ranking core.
type Pipeline struct {
	cfg      *config.Config
	news     NewsProvider
	market   MarketProvider
	feeds    FeedProvider
	enricher *hotstock.Enricher
	scorer   *scoring.Scorer
	log      *slog.Logger
}

// New builds a pipeline. feeds may be nil to skip RSS supplements.
func New(cfg *config.Config, news NewsProvider, market MarketProvider, feeds FeedProvider, enricher *hotstock.Enricher, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		cfg:      cfg,
		news:     news,
		market:   market,
		feeds:    feeds,
		enricher: enricher,
		scorer:   scoring.NewScorer(),
		log:      log,
	}
}

// Brief is the outcome of the event-ranking path. Movers carries the
// gainers/losers fetched for price changes so HotStock can reuse them
// instead of spending a second API call.
type Brief struct {
	Slate        []*models.ScoredEvent
	TotalNews    int
	TotalEvents  int
	PriceChanges map[string]float64
	Movers       models.Movers
	Universe     map[string]struct{}
}

// DailyBrief runs news ingestion through slate selection.
func (p *Pipeline) DailyBrief(ctx context.Context) (*Brief, error) {
	universe := p.buildUniverse(ctx)

	items := p.collectNews(ctx)
	p.log.Info("news collected", "items", len(items))

	events := dedupe.Deduplicate(items, p.cfg.Dedupe.SimilarityThreshold)
	events = dedupe.FilterByUniverse(events, universe)
	p.log.Info("events after dedupe and universe filter", "events", len(events))

	movers, err := p.market.Movers(ctx)
	if err != nil {
		p.log.Warn("movers unavailable", "error", err)
	}
	changes := priceChanges(movers)

	scored := p.scorer.ScoreEvents(events, changes)
	slate := scoring.SelectTopEvents(scored, scoring.SelectOptions{
		MinCount:      p.cfg.Selection.MinCount,
		MaxCount:      p.cfg.Selection.MaxCount,
		MaxLowQuality: p.cfg.Selection.MaxLowQuality,
	})
	p.log.Info("slate selected", "events", len(slate))

	return &Brief{
		Slate:        slate,
		TotalNews:    len(items),
		TotalEvents:  len(events),
		PriceChanges: changes,
		Movers:       movers,
		Universe:     universe,
	}, nil
}

// HotStockResult is the outcome of the candidate-ranking path.
type HotStockResult struct {
	Candidates []models.HotStockCandidate
	Pick       *models.HotStockCandidate
}

// HotStock ranks deep-dive candidates using the slate's ticker mentions as
// the news signal. Call DailyBrief first and pass its result.
func (p *Pipeline) HotStock(ctx context.Context, brief *Brief) (*HotStockResult, error) {
	newsCounts := make(map[string]int)
	for _, ev := range brief.Slate {
		for _, ticker := range ev.Event.Tickers {
			newsCounts[ticker]++
		}
	}

	actives, err := p.market.MostActive(ctx)
	if err != nil {
		p.log.Warn("most-actives unavailable", "error", err)
	}

	pool := hotstock.BuildPool(hotstock.PoolInputs{
		Universe:   brief.Universe,
		NewsCounts: newsCounts,
		Actives:    actives,
		Movers:     brief.Movers,
		Priority:   p.cfg.Universe.Priority,
		NewsTopN:   p.cfg.HotStock.NewsTopN,
	})
	p.log.Info("candidate pool built", "candidates", len(pool))

	tickers := make([]string, 0, len(pool))
	for ticker := range pool {
		tickers = append(tickers, ticker)
	}
	enrichment := p.enricher.Enrich(ctx, tickers)

	candidates := hotstock.ScoreCandidates(pool, enrichment, p.cfg.Universe.Priority, p.cfg.HotStock.Limit)
	pick := hotstock.SelectHotStock(candidates)
	if pick != nil {
		p.log.Info("hot stock selected", "ticker", pick.Ticker, "score", pick.Score)
	} else {
		p.log.Warn("no hot stock candidate available")
	}

	return &HotStockResult{Candidates: candidates, Pick: pick}, nil
}

// collectNews gathers stock news, general news, and RSS supplements.
// Each source degrades independently.
func (p *Pipeline) collectNews(ctx context.Context) []models.NewsItem {
	var items []models.NewsItem

	stock, err := p.news.StockNews(ctx, nil, p.cfg.News.StockLimit)
	if err != nil {
		p.log.Warn("stock news unavailable", "error", err)
	}
	items = append(items, stock...)

	general, err := p.news.GeneralNews(ctx, p.cfg.News.GeneralLimit)
	if err != nil {
		p.log.Warn("general news unavailable", "error", err)
	}
	items = append(items, general...)

	if p.feeds != nil {
		rss, err := p.feeds.Fetch(ctx, p.cfg.News.GeneralLimit)
		if err != nil {
			p.log.Warn("rss feeds unavailable", "error", err)
		}
		items = append(items, rss...)
	}
	return items
}

// buildUniverse merges the seed set with the S&P 500 constituents,
// falling back to the seed alone when the fetch fails.
func (p *Pipeline) buildUniverse(ctx context.Context) map[string]struct{} {
	universe := make(map[string]struct{}, len(p.cfg.Universe.Seed))
	for _, ticker := range p.cfg.Universe.Seed {
		universe[ticker] = struct{}{}
	}

	constituents, err := p.market.SP500Constituents(ctx)
	if err != nil {
		p.log.Warn("sp500 constituents unavailable, using seed universe", "error", err)
		return universe
	}
	for _, ticker := range constituents {
		universe[ticker] = struct{}{}
	}
	p.log.Info("universe built", "tickers", len(universe))
	return universe
}

// priceChanges maps mover tickers to their percentage change for event
// impact scoring.
func priceChanges(movers models.Movers) map[string]float64 {
	changes := make(map[string]float64)
	for _, m := range movers.All() {
		if m.Ticker != "" {
			changes[m.Ticker] = m.ChangePct
		}
	}
	return changes
}
