package model

import "strings"

// Stats are the dashboard counters.
type Stats struct {
	OpenLost  int `json:"openLost"`
	OpenFound int `json:"openFound"`
	Claimed   int `json:"claimed"`
	Returned  int `json:"returned"`
}

// Resolved is the number of reports no longer open.
func (s Stats) Resolved() int { return s.Claimed + s.Returned }

func CountStats(items []Item) Stats {
	var s Stats
	for _, it := range items {
		switch it.Status {
		case StatusOpen:
			if it.Kind == KindLost {
				s.OpenLost++
			} else if it.Kind == KindFound {
				s.OpenFound++
			}
		case StatusClaimed:
			s.Claimed++
		case StatusReturned:
			s.Returned++
		}
	}
	return s
}

// Filter narrows a listing. Zero Kind or Status means "all".
type Filter struct {
	Query  string
	Kind   Kind
	Status Status
}

// Matches applies a case-insensitive substring search over description,
// location and category, then the kind and status filters.
func (f Filter) Matches(it Item) bool {
	if f.Kind != 0 && it.Kind != f.Kind {
		return false
	}
	if f.Status != 0 && it.Status != f.Status {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(it.Description), q) ||
		strings.Contains(strings.ToLower(it.Location), q) ||
		strings.Contains(strings.ToLower(it.Category), q)
}

// Apply returns the matching items in their original order.
func (f Filter) Apply(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if f.Matches(it) {
			out = append(out, it)
		}
	}
	return out
}
