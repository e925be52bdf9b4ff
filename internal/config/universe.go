package config

// SeedUniverse is the baseline allow-set of tickers the pipeline may
// surface. It is merged with the S&P 500 constituents at run time; when
// the constituent fetch fails the seed alone is used.
var SeedUniverse = []string{
	// Mega caps
	"AAPL", "MSFT", "GOOGL", "GOOG", "AMZN", "NVDA", "META", "TSLA",
	"BRK.B", "JPM", "JNJ", "V", "UNH", "HD", "PG", "MA", "DIS",
	// Tech / AI
	"AMD", "INTC", "CRM", "ADBE", "NFLX", "PYPL", "AVGO", "QCOM",
	"MU", "AMAT", "LRCX", "KLAC", "ASML", "TSM", "ARM", "SMCI",
	// Other notable
	"COST", "WMT", "XOM", "CVX", "LLY", "NVO", "ABBV", "MRK", "PFE",
}

// PriorityTickers always enter the hot-stock candidate pool when they have
// at least one news mention, and earn a small scoring bonus.
var PriorityTickers = []string{
	"NVDA", "AAPL", "MSFT", "GOOGL", "AMZN", "META", "TSLA", "AMD",
}
