// Package ingest pulls raw news and market data from external sources:
// the Financial Modeling Prep (FMP) stable REST API and supplementary RSS
// feeds. It extracts typed records and leaves ranking to other packages.
//
// Only /stable/ FMP endpoints are used; the v3 and v4 API families carry
// different shapes and deprecation timelines.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/galenhq/rocketscreener/internal/config"
	"github.com/galenhq/rocketscreener/internal/infra"
	"github.com/galenhq/rocketscreener/pkg/models"
)

// FMPClient is a typed client over the FMP stable API.
type FMPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *infra.RateLimiter
	now     func() time.Time
}

// NewFMPClient builds a client from configuration. The per-second rate
// limit guards the free-tier quota.
func NewFMPClient(cfg config.FMPConfig) *FMPClient {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rate := cfg.RatePerSec
	if rate <= 0 {
		rate = 5
	}
	return &FMPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		limiter: infra.NewRateLimiter(rate, time.Second),
		now:     time.Now,
	}
}

// get performs one rate-limited request against a stable endpoint and
// decodes the JSON body into out.
func (c *FMPClient) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("fmp %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fmp %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("fmp %s: status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("fmp %s: decode: %w", endpoint, err)
	}
	return nil
}

// calcChangePct derives the percentage change from price and absolute
// change instead of trusting the API's changesPercentage field, which has
// been inconsistent across endpoints.
func calcChangePct(price, change float64) float64 {
	if price == 0 || change == 0 {
		return 0
	}
	prev := price - change
	if prev == 0 {
		return 0
	}
	return math.Round(change/prev*10000) / 100
}

// StockNews fetches the latest stock news, optionally filtered to tickers.
// Individual items that fail to parse are skipped, not fatal.
func (c *FMPClient) StockNews(ctx context.Context, tickers []string, limit int) ([]models.NewsItem, error) {
	if limit <= 0 {
		limit = 50
	}
	params := url.Values{}
	params.Set("page", "0")
	params.Set("limit", fmt.Sprint(limit))

	endpoint := "news/stock-latest"
	if len(tickers) > 0 {
		endpoint = "news/stock"
		params.Set("symbols", strings.Join(tickers, ","))
	}

	var raw []fmpStockNews
	if err := c.get(ctx, endpoint, params, &raw); err != nil {
		return nil, err
	}

	items := make([]models.NewsItem, 0, len(raw))
	for _, r := range raw {
		if r.Title == "" || r.URL == "" {
			continue
		}
		items = append(items, models.NewsItem{
			Title:       r.Title,
			Text:        r.Text,
			URL:         r.URL,
			Site:        r.Site,
			PublishedAt: c.parseTime(r.PublishedDate),
			Tickers:     splitTickers(r.Symbol),
			ImageURL:    r.Image,
		})
	}
	return items, nil
}

// GeneralNews fetches broad market articles from fmp-articles.
func (c *FMPClient) GeneralNews(ctx context.Context, limit int) ([]models.NewsItem, error) {
	if limit <= 0 {
		limit = 30
	}
	params := url.Values{}
	params.Set("page", "0")
	params.Set("limit", fmt.Sprint(limit))

	var wrapped fmpArticles
	if err := c.get(ctx, "fmp-articles", params, &wrapped); err != nil {
		return nil, err
	}

	items := make([]models.NewsItem, 0, len(wrapped.Content))
	for _, a := range wrapped.Content {
		if a.Title == "" || a.Link == "" {
			continue
		}
		items = append(items, models.NewsItem{
			Title:       a.Title,
			Text:        a.Content,
			URL:         a.Link,
			Site:        "FMP",
			PublishedAt: c.parseTime(a.Date),
			Tickers:     splitTickers(a.Tickers),
			ImageURL:    a.Image,
		})
	}
	return items, nil
}

// Quote fetches a single real-time quote.
func (c *FMPClient) Quote(ctx context.Context, ticker string) (*models.Quote, error) {
	params := url.Values{}
	params.Set("symbol", ticker)

	var raw []fmpQuote
	if err := c.get(ctx, "quote", params, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("fmp quote: no data for %s", ticker)
	}
	q := raw[0]
	return &models.Quote{
		Ticker:    q.Symbol,
		Name:      q.Name,
		Price:     q.Price,
		Change:    q.Change,
		ChangePct: calcChangePct(q.Price, q.Change),
		Volume:    q.Volume,
		FetchedAt: c.now(),
	}, nil
}

// CompanyProfile fetches a company profile.
func (c *FMPClient) CompanyProfile(ctx context.Context, ticker string) (*models.CompanyProfile, error) {
	params := url.Values{}
	params.Set("symbol", ticker)

	var raw []fmpProfile
	if err := c.get(ctx, "profile", params, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("fmp profile: no data for %s", ticker)
	}
	p := raw[0]
	return &models.CompanyProfile{
		Ticker:      p.Symbol,
		Name:        p.CompanyName,
		Sector:      p.Sector,
		Industry:    p.Industry,
		Exchange:    p.Exchange,
		MarketCap:   p.MarketCap,
		Price:       p.Price,
		Description: p.Description,
		Website:     p.Website,
	}, nil
}

// FinancialRatios fetches trailing-twelve-month ratios.
func (c *FMPClient) FinancialRatios(ctx context.Context, ticker string) (*models.FinancialRatios, error) {
	params := url.Values{}
	params.Set("symbol", ticker)

	var raw []fmpRatiosTTM
	if err := c.get(ctx, "ratios-ttm", params, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("fmp ratios-ttm: no data for %s", ticker)
	}
	r := raw[0]
	return &models.FinancialRatios{
		Ticker:          ticker,
		PE:              r.PriceToEarningsRatioTTM,
		PB:              r.PriceToBookRatioTTM,
		PS:              r.PriceToSalesRatioTTM,
		GrossMargin:     r.GrossProfitMarginTTM,
		OperatingMargin: r.OperatingProfitMarginTTM,
		NetMargin:       r.NetProfitMarginTTM,
		ROE:             r.ReturnOnEquityTTM,
		DebtToEquity:    r.DebtToEquityRatioTTM,
		CurrentRatio:    r.CurrentRatioTTM,
	}, nil
}

// IncomeStatements fetches recent quarterly income statements.
func (c *FMPClient) IncomeStatements(ctx context.Context, ticker string) ([]models.IncomeStatement, error) {
	params := url.Values{}
	params.Set("symbol", ticker)
	params.Set("period", "quarter")
	params.Set("limit", "4")

	var raw []fmpIncomeStatement
	if err := c.get(ctx, "income-statement", params, &raw); err != nil {
		return nil, err
	}

	stmts := make([]models.IncomeStatement, 0, len(raw))
	for _, r := range raw {
		stmts = append(stmts, models.IncomeStatement{
			Ticker:          ticker,
			Date:            r.Date,
			Period:          r.Period,
			Revenue:         r.Revenue,
			GrossProfit:     r.GrossProfit,
			OperatingIncome: r.OperatingIncome,
			NetIncome:       r.NetIncome,
			EPS:             r.EPSDiluted,
		})
	}
	return stmts, nil
}

// Movers fetches the biggest gainers and losers, capped at 10 each. A
// failure on one list degrades to an empty list rather than failing both.
func (c *FMPClient) Movers(ctx context.Context) (models.Movers, error) {
	var movers models.Movers
	var firstErr error

	gainers, err := c.moverList(ctx, "biggest-gainers")
	if err != nil {
		firstErr = err
	}
	movers.Gainers = gainers

	losers, err := c.moverList(ctx, "biggest-losers")
	if err != nil && firstErr == nil {
		firstErr = err
	}
	movers.Losers = losers

	if len(movers.Gainers) == 0 && len(movers.Losers) == 0 && firstErr != nil {
		return movers, firstErr
	}
	return movers, nil
}

func (c *FMPClient) moverList(ctx context.Context, endpoint string) ([]models.Mover, error) {
	var raw []fmpMover
	if err := c.get(ctx, endpoint, nil, &raw); err != nil {
		return nil, err
	}
	if len(raw) > 10 {
		raw = raw[:10]
	}
	movers := make([]models.Mover, 0, len(raw))
	for _, r := range raw {
		movers = append(movers, models.Mover{
			Ticker:    r.Symbol,
			Name:      r.Name,
			Price:     r.Price,
			Change:    r.Change,
			ChangePct: calcChangePct(r.Price, r.Change),
		})
	}
	return movers, nil
}

// MostActive fetches the most-actives list, capped at 20.
func (c *FMPClient) MostActive(ctx context.Context) ([]models.ActiveStock, error) {
	var raw []fmpActive
	if err := c.get(ctx, "most-actives", nil, &raw); err != nil {
		return nil, err
	}
	if len(raw) > 20 {
		raw = raw[:20]
	}
	actives := make([]models.ActiveStock, 0, len(raw))
	for _, r := range raw {
		actives = append(actives, models.ActiveStock{
			Ticker:    r.Symbol,
			Name:      r.Name,
			Price:     r.Price,
			ChangePct: calcChangePct(r.Price, r.Change),
			Volume:    r.Volume,
		})
	}
	return actives, nil
}

// SP500Constituents fetches the S&P 500 member symbols.
func (c *FMPClient) SP500Constituents(ctx context.Context) ([]string, error) {
	var raw []fmpConstituent
	if err := c.get(ctx, "sp500-constituent", nil, &raw); err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(raw))
	for _, r := range raw {
		if r.Symbol != "" {
			symbols = append(symbols, r.Symbol)
		}
	}
	return symbols, nil
}

// EarningsCalendar fetches earnings events in the given date range.
// Either bound may be zero to leave it open.
func (c *FMPClient) EarningsCalendar(ctx context.Context, from, to time.Time) ([]models.EarningsEvent, error) {
	params := url.Values{}
	if !from.IsZero() {
		params.Set("from", from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		params.Set("to", to.Format("2006-01-02"))
	}

	var raw []fmpEarningsEvent
	if err := c.get(ctx, "earnings-calendar", params, &raw); err != nil {
		return nil, err
	}
	events := make([]models.EarningsEvent, 0, len(raw))
	for _, r := range raw {
		events = append(events, models.EarningsEvent{
			Ticker:       r.Symbol,
			Date:         r.Date,
			EPSEstimated: r.EPSEstimated,
			EPSActual:    r.EPSActual,
		})
	}
	return events, nil
}

// parseTime parses the handful of timestamp layouts FMP emits. A bad
// timestamp falls back to the current time rather than dropping the item.
func (c *FMPClient) parseTime(s string) time.Time {
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return c.now()
}

// splitTickers splits FMP's comma-joined symbol field.
func splitTickers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tickers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tickers = append(tickers, p)
		}
	}
	return tickers
}
