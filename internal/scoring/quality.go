package scoring

import "strings"

// sourcePenalties maps low-signal domains (PR wires, video aggregators) to
// score penalties. The keys double as the denylist used to flag an event
// whose primary source is low quality.
var sourcePenalties = map[string]float64{
	"prnewswire.com":    -40,
	"globenewswire.com": -40,
	"businesswire.com":  -35,
	"accesswire.com":    -35,
	"newsfilecorp.com":  -30,
	"openpr.com":        -30,
	"youtube.com":       -25,
	"zacks.com":         -25,
}

// sourceBonuses maps premium financial media, regulator sites, and
// investor-relations subdomains to score bonuses.
var sourceBonuses = map[string]float64{
	"reuters.com":        25,
	"bloomberg.com":      25,
	"wsj.com":            25,
	"sec.gov":            25,
	"ft.com":             20,
	"federalreserve.gov": 20,
	"cnbc.com":           15,
	"barrons.com":        15,
	"investor.":          15,
	"ir.":                10,
}

// sourceQuality sums the per-domain adjustments matched by substring
// against every source URL, and reports whether the primary (first) URL
// hits the denylist.
func sourceQuality(sourceURLs []string) (score float64, lowQualityPrimary bool) {
	for i, url := range sourceURLs {
		lower := strings.ToLower(url)
		for domain, penalty := range sourcePenalties {
			if strings.Contains(lower, domain) {
				score += penalty
				if i == 0 {
					lowQualityPrimary = true
				}
			}
		}
		for domain, bonus := range sourceBonuses {
			if strings.Contains(lower, domain) {
				score += bonus
			}
		}
	}
	return score, lowQualityPrimary
}
