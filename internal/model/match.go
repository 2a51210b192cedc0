package model

// MatchCandidate pairs an open lost report with an open found report on the
// same route. Candidates are rebuilt on every matcher run.
type MatchCandidate struct {
	Lost    Item     `json:"lostItem"`
	Found   Item     `json:"foundItem"`
	Score   int      `json:"matchScore"`
	Reasons []string `json:"matchReasons"`
}

// Key identifies the pairing, e.g. for list rendering.
func (m MatchCandidate) Key() string { return m.Lost.ID + "-" + m.Found.ID }

// Tier buckets a score for display.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

func (m MatchCandidate) Tier() Tier {
	switch {
	case m.Score >= 70:
		return TierHigh
	case m.Score >= 50:
		return TierMedium
	}
	return TierLow
}
