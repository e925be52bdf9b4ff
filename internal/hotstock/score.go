package hotstock

import (
	"fmt"
	"math"
	"sort"

	"github.com/galenhq/rocketscreener/pkg/models"
)

// DefaultLimit caps how many scored candidates are returned.
const DefaultLimit = 10

// priorityBonus rewards tickers on the configured priority allowlist.
const priorityBonus = 5

// minCompleteness is the data floor below which a candidate is not worth
// writing about and is dropped from the ranking entirely.
const minCompleteness = 0.3

// ScoreCandidates ranks the candidate pool using price-move, news-mention,
// and data-completeness sub-scores. Candidates missing too much company
// data are dropped. Output is sorted by score descending (ties break by
// ticker) and truncated to limit; limit <= 0 means DefaultLimit.
func ScoreCandidates(
	pool map[string]*models.CandidateTicker,
	enrichment map[string]*models.CompanyData,
	priority []string,
	limit int,
) []models.HotStockCandidate {
	if limit <= 0 {
		limit = DefaultLimit
	}
	prioritySet := make(map[string]struct{}, len(priority))
	for _, ticker := range priority {
		prioritySet[ticker] = struct{}{}
	}

	candidates := make([]models.HotStockCandidate, 0, len(pool))
	for ticker, cand := range pool {
		data := enrichment[ticker]
		var comp float64
		name := ticker
		if data != nil {
			comp = data.Completeness
			if data.Name != "" {
				name = data.Name
			}
		}
		if comp < minCompleteness {
			continue
		}

		score := priceMoveScore(cand.ChangePct) + newsScore(cand.NewsCount) + dataScore(comp)
		if _, ok := prioritySet[ticker]; ok {
			score += priorityBonus
		}

		candidates = append(candidates, models.HotStockCandidate{
			Ticker:           ticker,
			Name:             name,
			Score:            score,
			ChangePct:        cand.ChangePct,
			NewsCount:        cand.NewsCount,
			DataCompleteness: comp,
			Reason:           selectionReason(cand),
			Source:           cand.Source,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Ticker < candidates[j].Ticker
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// SelectHotStock picks the day's deep-dive candidate: the highest-scored
// candidate with completeness >= 0.8, falling back to the highest-scored
// candidate overall. Returns nil only for an empty input.
func SelectHotStock(candidates []models.HotStockCandidate) *models.HotStockCandidate {
	if len(candidates) == 0 {
		return nil
	}
	for i := range candidates {
		if candidates[i].DataCompleteness >= 0.8 {
			return &candidates[i]
		}
	}
	return &candidates[0]
}

// priceMoveScore buckets the absolute percentage change, 0-35.
func priceMoveScore(changePct float64) float64 {
	abs := math.Abs(changePct)
	switch {
	case abs >= 10:
		return 35
	case abs >= 5:
		return 28
	case abs >= 3:
		return 21
	case abs >= 2:
		return 14
	case abs >= 1:
		return 7
	default:
		return 0
	}
}

// newsScore buckets the mention count, 0-35.
func newsScore(count int) float64 {
	switch {
	case count >= 5:
		return 35
	case count >= 3:
		return 25
	case count >= 2:
		return 15
	case count >= 1:
		return 8
	default:
		return 0
	}
}

// dataScore converts completeness to a 0-30 contribution.
func dataScore(completeness float64) float64 {
	return math.Floor(completeness * 30)
}

// selectionReason names the strongest signal behind a candidate, checked
// in a fixed priority order.
func selectionReason(cand *models.CandidateTicker) string {
	switch {
	case math.Abs(cand.ChangePct) >= 5:
		return fmt.Sprintf("sharp price move %+.1f%%", cand.ChangePct)
	case cand.NewsCount >= 3:
		return fmt.Sprintf("heavy news coverage (%d stories)", cand.NewsCount)
	case cand.Source == models.SourceActives:
		return "unusually active trading"
	default:
		return "rising market attention"
	}
}
