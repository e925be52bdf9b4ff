// Package scoring ranks deduplicated news events by a multi-factor
// importance score and selects a bounded, diverse top-K slate.
package scoring

import (
	"strings"

	"github.com/galenhq/rocketscreener/pkg/models"
)

// eventTypeKeywords maps event types to the keywords that trigger them.
// Checked in classifyOrder; the first type with any keyword hit wins.
var eventTypeKeywords = map[models.EventType][]string{
	models.EventEarnings: {
		"earnings", "revenue", "profit", "loss", "eps", "beat", "miss",
		"quarterly", "q1", "q2", "q3", "q4", "guidance", "outlook",
		"財報", "營收", "獲利",
	},
	models.EventMacro: {
		"fed", "fomc", "rate", "inflation", "cpi", "ppi", "gdp", "jobs",
		"employment", "unemployment", "treasury", "yield", "bond",
		"利率", "通膨", "就業",
	},
	models.EventPolicy: {
		"regulation", "policy", "law", "congress", "senate", "house",
		"tariff", "sanction", "antitrust", "sec", "ftc",
		"政策", "監管", "關稅",
	},
	models.EventMnA: {
		"merger", "acquisition", "acquire", "takeover", "buyout", "deal",
		"bid", "offer", "purchase",
		"併購", "收購",
	},
	models.EventProduct: {
		"launch", "announce", "unveil", "release", "new product", "innovation",
		"發布", "推出",
	},
	models.EventLegal: {
		"lawsuit", "sue", "court", "settlement", "fine", "penalty",
		"訴訟", "罰款",
	},
}

// classifyOrder fixes the precedence between the keyword tables.
var classifyOrder = []models.EventType{
	models.EventEarnings,
	models.EventMacro,
	models.EventPolicy,
	models.EventMnA,
	models.EventProduct,
	models.EventLegal,
}

// ClassifyEventType tags an event from its headline and body text.
func ClassifyEventType(headline, text string) models.EventType {
	combined := strings.ToLower(headline + " " + text)
	for _, eventType := range classifyOrder {
		for _, keyword := range eventTypeKeywords[eventType] {
			if strings.Contains(combined, keyword) {
				return eventType
			}
		}
	}
	return models.EventOther
}
