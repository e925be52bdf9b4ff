package models

// EventType classifies what kind of story an event is.
type EventType string

const (
	EventEarnings EventType = "earnings"
	EventMacro    EventType = "macro"
	EventPolicy   EventType = "policy"
	EventMnA      EventType = "mna"
	EventProduct  EventType = "product"
	EventLegal    EventType = "legal"
	EventOther    EventType = "other"
)

// ImpactLevel buckets the impact sub-score.
type ImpactLevel string

const (
	ImpactHigh   ImpactLevel = "high"
	ImpactMedium ImpactLevel = "medium"
	ImpactLow    ImpactLevel = "low"
)

// ScoredEvent wraps an Event with its final score and component sub-scores.
// Score is always within [0,100].
type ScoredEvent struct {
	Event            *Event      `json:"event"`
	Score            float64     `json:"score"`
	Type             EventType   `json:"event_type"`
	Impact           ImpactLevel `json:"impact_level"`
	RecencyHours     float64     `json:"recency_hours"`
	RecencyScore     float64     `json:"recency_score"`
	ImpactScore      float64     `json:"impact_score"`
	SourceScore      float64     `json:"source_score"`
	QualityScore     float64     `json:"quality_score"` // signed source-quality adjustment
	LowQualitySource bool        `json:"low_quality_source"`
}
