package models

import "time"

// Quote represents a real-time quote.
type Quote struct {
	Ticker    string    `json:"ticker"`
	Name      string    `json:"name,omitempty"`
	Price     float64   `json:"price"`
	Change    float64   `json:"change"`
	ChangePct float64   `json:"change_pct"`
	Volume    int64     `json:"volume,omitempty"`
	FetchedAt time.Time `json:"fetched_at,omitempty"`
}

// Mover is an entry from the biggest-gainers or biggest-losers lists.
type Mover struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
}

// Movers holds the day's gainer and loser lists.
type Movers struct {
	Gainers []Mover `json:"gainers"`
	Losers  []Mover `json:"losers"`
}

// All returns gainers followed by losers as one list.
func (m Movers) All() []Mover {
	out := make([]Mover, 0, len(m.Gainers)+len(m.Losers))
	out = append(out, m.Gainers...)
	out = append(out, m.Losers...)
	return out
}

// ActiveStock is an entry from the most-actives list.
type ActiveStock struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
	Volume    int64   `json:"volume,omitempty"`
}

// CompanyProfile is the subset of a company profile the pipeline consumes.
type CompanyProfile struct {
	Ticker      string  `json:"ticker"`
	Name        string  `json:"name"`
	Sector      string  `json:"sector,omitempty"`
	Industry    string  `json:"industry,omitempty"`
	Exchange    string  `json:"exchange,omitempty"`
	MarketCap   float64 `json:"market_cap,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Description string  `json:"description,omitempty"`
	Website     string  `json:"website,omitempty"`
}

// FinancialRatios holds trailing-twelve-month ratios.
type FinancialRatios struct {
	Ticker          string  `json:"ticker"`
	PE              float64 `json:"pe,omitempty"`
	PB              float64 `json:"pb,omitempty"`
	PS              float64 `json:"ps,omitempty"`
	GrossMargin     float64 `json:"gross_margin,omitempty"`
	OperatingMargin float64 `json:"operating_margin,omitempty"`
	NetMargin       float64 `json:"net_margin,omitempty"`
	ROE             float64 `json:"roe,omitempty"`
	DebtToEquity    float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio    float64 `json:"current_ratio,omitempty"`
}

// EarningsEvent is one entry from the earnings calendar.
type EarningsEvent struct {
	Ticker       string  `json:"ticker"`
	Date         string  `json:"date"`
	EPSEstimated float64 `json:"eps_estimated,omitempty"`
	EPSActual    float64 `json:"eps_actual,omitempty"`
}

// IncomeStatement is one reporting period of income-statement data.
type IncomeStatement struct {
	Ticker          string  `json:"ticker"`
	Date            string  `json:"date"`
	Period          string  `json:"period,omitempty"`
	Revenue         float64 `json:"revenue"`
	GrossProfit     float64 `json:"gross_profit,omitempty"`
	OperatingIncome float64 `json:"operating_income,omitempty"`
	NetIncome       float64 `json:"net_income"`
	EPS             float64 `json:"eps,omitempty"`
}
