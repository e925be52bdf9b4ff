package ingest

// --- FMP stable API response types ---

type fmpStockNews struct {
	Symbol        string `json:"symbol"`
	PublishedDate string `json:"publishedDate"`
	Title         string `json:"title"`
	Image         string `json:"image"`
	Site          string `json:"site"`
	Text          string `json:"text"`
	URL           string `json:"url"`
}

// fmpArticle is one entry from /stable/fmp-articles.
type fmpArticle struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Content string `json:"content"`
	Tickers string `json:"tickers"`
	Image   string `json:"image"`
	Link    string `json:"link"`
	Author  string `json:"author"`
	Site    string `json:"site"`
}

// fmpArticles wraps the paginated fmp-articles response; FMP has returned
// both a bare array and a {"content": [...]} wrapper over time.
type fmpArticles struct {
	Content []fmpArticle `json:"content"`
}

type fmpQuote struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Change            float64 `json:"change"`
	ChangesPercentage float64 `json:"changesPercentage"`
	Volume            int64   `json:"volume"`
	Timestamp         int64   `json:"timestamp"`
}

type fmpMover struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Change            float64 `json:"change"`
	ChangesPercentage float64 `json:"changesPercentage"`
}

type fmpActive struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Change            float64 `json:"change"`
	ChangesPercentage float64 `json:"changesPercentage"`
	Volume            int64   `json:"volume"`
}

type fmpProfile struct {
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"companyName"`
	Price       float64 `json:"price"`
	MarketCap   float64 `json:"marketCap"`
	Industry    string  `json:"industry"`
	Sector      string  `json:"sector"`
	Exchange    string  `json:"exchange"`
	Website     string  `json:"website"`
	Description string  `json:"description"`
}

type fmpRatiosTTM struct {
	Symbol                   string  `json:"symbol"`
	PriceToEarningsRatioTTM  float64 `json:"priceToEarningsRatioTTM"`
	PriceToBookRatioTTM      float64 `json:"priceToBookRatioTTM"`
	PriceToSalesRatioTTM     float64 `json:"priceToSalesRatioTTM"`
	GrossProfitMarginTTM     float64 `json:"grossProfitMarginTTM"`
	OperatingProfitMarginTTM float64 `json:"operatingProfitMarginTTM"`
	NetProfitMarginTTM       float64 `json:"netProfitMarginTTM"`
	ReturnOnEquityTTM        float64 `json:"returnOnEquityTTM"`
	DebtToEquityRatioTTM     float64 `json:"debtToEquityRatioTTM"`
	CurrentRatioTTM          float64 `json:"currentRatioTTM"`
}

type fmpIncomeStatement struct {
	Symbol          string  `json:"symbol"`
	Date            string  `json:"date"`
	Period          string  `json:"period"`
	Revenue         float64 `json:"revenue"`
	GrossProfit     float64 `json:"grossProfit"`
	OperatingIncome float64 `json:"operatingIncome"`
	NetIncome       float64 `json:"netIncome"`
	EPSDiluted      float64 `json:"epsdiluted"`
}

type fmpConstituent struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

type fmpEarningsEvent struct {
	Symbol       string  `json:"symbol"`
	Date         string  `json:"date"`
	EPSEstimated float64 `json:"epsEstimated"`
	EPSActual    float64 `json:"epsActual"`
}
