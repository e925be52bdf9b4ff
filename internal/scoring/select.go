package scoring

import "github.com/galenhq/rocketscreener/pkg/models"

// SelectOptions bounds the top-K slate.
type SelectOptions struct {
	MinCount      int // slate floor, reached via the fallback pass if needed
	MaxCount      int // slate ceiling
	MaxLowQuality int // cap on admitted low-quality-source events
}

// DefaultSelectOptions mirrors the production slate bounds.
func DefaultSelectOptions() SelectOptions {
	return SelectOptions{MinCount: 5, MaxCount: 8, MaxLowQuality: 2}
}

// SelectTopEvents greedily picks a slate from score-descending input. An
// event is admitted while the slate is under MaxCount, none of its tickers
// already appears in two admitted events, and the low-quality-source cap
// holds. If the first pass leaves the slate under MinCount, a second pass
// appends remaining events in score order ignoring the constraints until
// MinCount is reached or input is exhausted; relaxation only ever fills up
// to the floor, so homogeneous inputs still yield a usable slate.
func SelectTopEvents(scored []*models.ScoredEvent, opts SelectOptions) []*models.ScoredEvent {
	if opts.MaxCount <= 0 {
		return nil
	}

	selected := make([]*models.ScoredEvent, 0, opts.MaxCount)
	picked := make(map[*models.ScoredEvent]struct{})
	tickerCount := make(map[string]int)
	lowQuality := 0

	for _, ev := range scored {
		if len(selected) >= opts.MaxCount {
			break
		}
		if overTickerCap(ev, tickerCount) {
			continue
		}
		if ev.LowQualitySource && lowQuality >= opts.MaxLowQuality {
			continue
		}

		selected = append(selected, ev)
		picked[ev] = struct{}{}
		for _, ticker := range ev.Event.Tickers {
			tickerCount[ticker]++
		}
		if ev.LowQualitySource {
			lowQuality++
		}
	}

	// Fallback: top up to the floor without constraints.
	if len(selected) < opts.MinCount {
		for _, ev := range scored {
			if len(selected) >= opts.MinCount {
				break
			}
			if _, ok := picked[ev]; ok {
				continue
			}
			selected = append(selected, ev)
			picked[ev] = struct{}{}
		}
	}

	return selected
}

// overTickerCap reports whether any of the event's tickers already appears
// in two selected events.
func overTickerCap(ev *models.ScoredEvent, tickerCount map[string]int) bool {
	for _, ticker := range ev.Event.Tickers {
		if tickerCount[ticker] >= 2 {
			return true
		}
	}
	return false
}
