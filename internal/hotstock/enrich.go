package hotstock

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/galenhq/rocketscreener/internal/infra"
	"github.com/galenhq/rocketscreener/pkg/models"
)

// DefaultWorkers bounds the enrichment worker pool.
const DefaultWorkers = 8

// CompanyDataFetcher provides the three per-ticker lookups the enricher
// performs. Implementations are expected to carry their own network
// timeouts; the enricher treats each call as independently fallible.
type CompanyDataFetcher interface {
	CompanyProfile(ctx context.Context, ticker string) (*models.CompanyProfile, error)
	FinancialRatios(ctx context.Context, ticker string) (*models.FinancialRatios, error)
	IncomeStatements(ctx context.Context, ticker string) ([]models.IncomeStatement, error)
}

// Enricher fetches profile/ratios/income data for candidate tickers in
// parallel, backed by a shared cache so repeated runs within the cache
// window skip the network entirely.
type Enricher struct {
	fetcher CompanyDataFetcher
	cache   *infra.Cache
	workers int
}

// NewEnricher wires an enricher to a fetcher and a shared cache. A nil
// cache gets a private no-expiry cache; workers <= 0 uses DefaultWorkers.
func NewEnricher(fetcher CompanyDataFetcher, cache *infra.Cache, workers int) *Enricher {
	if cache == nil {
		cache = infra.NewCache(0)
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Enricher{fetcher: fetcher, cache: cache, workers: workers}
}

// Enrich resolves company data for every ticker and blocks until all
// lookups reach a terminal state. A ticker whose sub-fetches all fail still
// yields a record, with zero completeness; no error is ever returned to the
// caller for a single bad ticker. Result map ordering is by ticker key;
// completion order across tickers is unspecified.
func (e *Enricher) Enrich(ctx context.Context, tickers []string) map[string]*models.CompanyData {
	results := make(map[string]*models.CompanyData, len(tickers))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for _, ticker := range tickers {
		ticker := ticker
		g.Go(func() error {
			record := e.lookup(gctx, ticker)
			mu.Lock()
			results[ticker] = record
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; Wait is for completion only.
	_ = g.Wait()
	return results
}

// Cache returns the enricher's shared cache, e.g. for explicit clearing.
func (e *Enricher) Cache() *infra.Cache { return e.cache }

func cacheKey(ticker string) string { return "company:" + ticker }

// lookup serves a ticker from cache or performs the three sub-fetches,
// each independently fault-tolerant.
func (e *Enricher) lookup(ctx context.Context, ticker string) *models.CompanyData {
	if cached, ok := e.cache.Get(cacheKey(ticker)); ok {
		if record, ok := cached.(*models.CompanyData); ok {
			return record
		}
	}

	record := &models.CompanyData{Ticker: ticker, Name: ticker}

	if profile, err := e.fetcher.CompanyProfile(ctx, ticker); err == nil && profile != nil {
		record.Profile = profile
		if profile.Name != "" {
			record.Name = profile.Name
		}
	}
	if ratios, err := e.fetcher.FinancialRatios(ctx, ticker); err == nil && ratios != nil {
		record.Ratios = ratios
	}
	if income, err := e.fetcher.IncomeStatements(ctx, ticker); err == nil && len(income) > 0 {
		record.Income = income
	}

	record.Completeness = completeness(record)

	e.cache.Set(cacheKey(ticker), record)
	return record
}

// completeness counts the populated components out of three.
func completeness(record *models.CompanyData) float64 {
	var have int
	if record.Profile != nil {
		have++
	}
	if record.Ratios != nil {
		have++
	}
	if len(record.Income) > 0 {
		have++
	}
	return float64(have) / 3.0
}
