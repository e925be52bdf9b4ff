package models

// CandidateSource tags which signal first surfaced a candidate ticker.
type CandidateSource string

const (
	SourceNews     CandidateSource = "news"
	SourceActives  CandidateSource = "actives"
	SourceMovers   CandidateSource = "movers"
	SourcePriority CandidateSource = "priority"
)

// CandidateTicker is an intermediate record produced during pool building.
// It exists only between pool construction and scoring.
type CandidateTicker struct {
	Ticker    string          `json:"ticker"`
	Source    CandidateSource `json:"source"`
	NewsCount int             `json:"news_count"`
	ChangePct float64         `json:"change_pct"`
}

// CompanyData aggregates the per-ticker enrichment results. Any of the three
// data fields may be nil when its fetch failed; Completeness counts the
// non-nil fields out of three.
type CompanyData struct {
	Ticker       string            `json:"ticker"`
	Name         string            `json:"name"`
	Profile      *CompanyProfile   `json:"profile,omitempty"`
	Ratios       *FinancialRatios  `json:"ratios,omitempty"`
	Income       []IncomeStatement `json:"income,omitempty"`
	Completeness float64           `json:"completeness"` // in [0,1]
}

// HotStockCandidate is a scored deep-dive candidate.
type HotStockCandidate struct {
	Ticker            string          `json:"ticker"`
	Name              string          `json:"name"`
	Score             float64         `json:"score"`
	ChangePct         float64         `json:"change_pct"`
	NewsCount         int             `json:"news_count"`
	HasRecentEarnings bool            `json:"has_recent_earnings"` // reserved, always false for now
	DataCompleteness  float64         `json:"data_completeness"`
	Reason            string          `json:"reason"`
	Source            CandidateSource `json:"source"`
}
