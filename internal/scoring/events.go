package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/galenhq/rocketscreener/pkg/models"
)

// highImpactTickers are mega caps and habitual market movers whose
// involvement raises an event's impact sub-score.
var highImpactTickers = map[string]struct{}{
	"AAPL": {}, "MSFT": {}, "GOOGL": {}, "GOOG": {}, "AMZN": {}, "NVDA": {},
	"META": {}, "TSLA": {}, "BRK.A": {}, "BRK.B": {}, "JPM": {}, "JNJ": {},
	"V": {}, "UNH": {}, "HD": {}, "PG": {}, "MA": {}, "DIS": {}, "NFLX": {},
	"AMD": {}, "INTC": {}, "CRM": {}, "ADBE": {}, "PYPL": {},
}

// Scorer computes event importance scores. Now is injectable so recency is
// testable against a fixed clock; a nil Now uses the wall clock.
type Scorer struct {
	Now func() time.Time
}

// NewScorer returns a Scorer on the wall clock.
func NewScorer() *Scorer {
	return &Scorer{Now: time.Now}
}

// ScoreEvents scores every event and returns them sorted by score
// descending. Ties keep input order (stable sort). priceChanges maps
// ticker to day percentage change and may be nil.
func (s *Scorer) ScoreEvents(events []*models.Event, priceChanges map[string]float64) []*models.ScoredEvent {
	if len(events) == 0 {
		return nil
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	scored := make([]*models.ScoredEvent, 0, len(events))
	for _, event := range events {
		eventType := ClassifyEventType(event.Headline, event.Text)
		recency, hours := recencyScore(event.PublishedAt, now)
		impact, level := impactScore(event, priceChanges)
		sources := sourceCountScore(len(event.SourceURLs))
		quality, lowQuality := sourceQuality(event.SourceURLs)

		total := recency*0.30 + impact*0.40 + sources*0.15 +
			clamp(quality*0.15, -30, 30)
		if eventType == models.EventEarnings || eventType == models.EventMacro {
			total *= 1.1
		}

		scored = append(scored, &models.ScoredEvent{
			Event:            event,
			Score:            clamp(total, 0, 100),
			Type:             eventType,
			Impact:           level,
			RecencyHours:     hours,
			RecencyScore:     recency,
			ImpactScore:      impact,
			SourceScore:      sources,
			QualityScore:     quality,
			LowQualitySource: lowQuality,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// recencyScore maps hours since publication onto a 0-100 piecewise-linear
// decay: 100 at <=1h, reaching 0 at 88h. An unparsable timestamp counts as
// 24h old with a neutral score of 50 rather than failing the event.
func recencyScore(published string, now time.Time) (score, hours float64) {
	ts, err := time.Parse(time.RFC3339, published)
	if err != nil {
		return 50, 24
	}
	hours = now.Sub(ts).Hours()

	switch {
	case hours <= 1:
		score = 100
	case hours <= 6:
		score = 90 - (hours-1)*2
	case hours <= 12:
		score = 80 - (hours-6)*2
	case hours <= 24:
		score = 68 - (hours-12)*2
	case hours <= 48:
		score = 44 - (hours - 24)
	default:
		score = math.Max(0, 20-(hours-48)*0.5)
	}
	return score, hours
}

// impactScore combines ticker importance with the largest bucketed price
// move among the event's tickers, and classifies the impact level.
func impactScore(event *models.Event, priceChanges map[string]float64) (float64, models.ImpactLevel) {
	var tickerScore float64
	for _, ticker := range event.Tickers {
		if _, ok := highImpactTickers[ticker]; ok {
			tickerScore += 30
		} else {
			tickerScore += 10
		}
	}
	if tickerScore > 50 {
		tickerScore = 50
	}

	var priceScore float64
	for _, ticker := range event.Tickers {
		change, ok := priceChanges[ticker]
		if !ok {
			continue
		}
		priceScore = math.Max(priceScore, priceMoveBucket(math.Abs(change), 50))
	}

	total := tickerScore + priceScore

	level := models.ImpactLow
	switch {
	case total >= 70:
		level = models.ImpactHigh
	case total >= 40:
		level = models.ImpactMedium
	}
	return total, level
}

// priceMoveBucket maps an absolute percentage move onto the shared bucket
// boundaries, rescaled so a >=10% move scores maxScore.
func priceMoveBucket(absChange, maxScore float64) float64 {
	switch {
	case absChange >= 10:
		return maxScore
	case absChange >= 5:
		return maxScore * 0.8
	case absChange >= 3:
		return maxScore * 0.6
	case absChange >= 2:
		return maxScore * 0.4
	case absChange >= 1:
		return maxScore * 0.2
	default:
		return 0
	}
}

// sourceCountScore rewards multi-source confirmation, banded 0-30.
func sourceCountScore(numSources int) float64 {
	switch {
	case numSources >= 5:
		return 30
	case numSources >= 3:
		return 20
	case numSources >= 2:
		return 10
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
