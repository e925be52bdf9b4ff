// Package hotstock selects the single equity worth a deep-dive write-up:
// it pools candidates from several independent signals, enriches them with
// cached company data under bounded concurrency, and ranks them.
package hotstock

import (
	"sort"

	"github.com/galenhq/rocketscreener/pkg/models"
)

// PoolInputs carries the raw signals the pool is built from.
type PoolInputs struct {
	Universe   map[string]struct{}
	NewsCounts map[string]int
	Actives    []models.ActiveStock
	Movers     models.Movers
	Priority   []string
	NewsTopN   int // how many news-ranked tickers to admit; 0 means 10
}

// BuildPool merges candidate tickers from the news-mention ranking, the
// most-actives list, the gainer/loser lists, and the priority allowlist.
// Each distinct ticker keeps its first-assigned source tag; mover data is
// authoritative for price change and overwrites it without retagging.
func BuildPool(in PoolInputs) map[string]*models.CandidateTicker {
	pool := make(map[string]*models.CandidateTicker)
	topN := in.NewsTopN
	if topN <= 0 {
		topN = 10
	}

	// 1. Most-mentioned tickers in the news, restricted to the universe.
	for _, ticker := range topMentioned(in.NewsCounts, in.Universe, topN) {
		pool[ticker] = &models.CandidateTicker{
			Ticker:    ticker,
			Source:    models.SourceNews,
			NewsCount: in.NewsCounts[ticker],
		}
	}

	// 2. Most-active volume list.
	for _, active := range in.Actives {
		if _, ok := in.Universe[active.Ticker]; !ok {
			continue
		}
		if _, present := pool[active.Ticker]; present {
			continue
		}
		pool[active.Ticker] = &models.CandidateTicker{
			Ticker:    active.Ticker,
			Source:    models.SourceActives,
			NewsCount: in.NewsCounts[active.Ticker],
			ChangePct: active.ChangePct,
		}
	}

	// 3. Gainers and losers. Movers know the day's change best, so an
	// existing candidate gets its price change updated in place.
	for _, mover := range in.Movers.All() {
		if _, ok := in.Universe[mover.Ticker]; !ok {
			continue
		}
		if existing, present := pool[mover.Ticker]; present {
			existing.ChangePct = mover.ChangePct
			continue
		}
		pool[mover.Ticker] = &models.CandidateTicker{
			Ticker:    mover.Ticker,
			Source:    models.SourceMovers,
			NewsCount: in.NewsCounts[mover.Ticker],
			ChangePct: mover.ChangePct,
		}
	}

	// 4. Priority tickers, only when the news actually mentions them.
	for _, ticker := range in.Priority {
		if _, present := pool[ticker]; present {
			continue
		}
		if in.NewsCounts[ticker] < 1 {
			continue
		}
		pool[ticker] = &models.CandidateTicker{
			Ticker:    ticker,
			Source:    models.SourcePriority,
			NewsCount: in.NewsCounts[ticker],
		}
	}

	return pool
}

// topMentioned returns up to n universe tickers with at least one mention,
// most-mentioned first; ties break alphabetically for determinism.
func topMentioned(counts map[string]int, universe map[string]struct{}, n int) []string {
	var tickers []string
	for ticker, count := range counts {
		if count < 1 {
			continue
		}
		if _, ok := universe[ticker]; !ok {
			continue
		}
		tickers = append(tickers, ticker)
	}
	sort.Slice(tickers, func(i, j int) bool {
		if counts[tickers[i]] != counts[tickers[j]] {
			return counts[tickers[i]] > counts[tickers[j]]
		}
		return tickers[i] < tickers[j]
	})
	if len(tickers) > n {
		tickers = tickers[:n]
	}
	return tickers
}
